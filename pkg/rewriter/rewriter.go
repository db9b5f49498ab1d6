// This file contains the rule table and the single-step rewrite driver.

package rewriter

import (
	"fmt"

	"github.com/SeuperHakkerJa/pyret-lang/pkg/term"
)

// DsRuleCase is one ordered (lhs, rhs) rewrite case.
type DsRuleCase struct {
	Lhs term.Pattern
	Rhs term.Pattern
}

// DsRules maps an operator name to its ordered alternation of rewrite
// cases. The first case whose lhs matches wins.
type DsRules map[string][]DsRuleCase

// Rewriter executes rewrite rules against terms. It owns the registry of
// metafunctions and bijections and the fresh-atom counter; construct one
// per pipeline (or per test) rather than sharing ambient state.
type Rewriter struct {
	Registry *Registry
	GenSym   *GenSym
}

func NewRewriter(registry *Registry) *Rewriter {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Rewriter{
		Registry: registry,
		GenSym:   NewGenSym(),
	}
}

// Apply performs exactly one rewrite step at the root of a term. It looks
// up the term's operator, tries that operator's cases in declared order,
// and on the first lhs that matches returns the instantiated rhs. The
// boolean result is false when no rule applies, which is not an error:
// the caller decides whether to pass the term through or fail.
func (r *Rewriter) Apply(t term.Term, rules DsRules) (term.Term, bool, error) {
	op, _, tagged := term.Operator(skipTransparent(t))
	if !tagged {
		return nil, false, nil
	}
	cases, present := rules[op]
	if !present {
		return nil, false, nil
	}
	for i, c := range cases {
		env, ok, err := r.Match(c.Lhs, t)
		if err != nil {
			return nil, false, attachRuleContext(err, op, i)
		}
		if !ok {
			continue
		}
		out, err := r.Instantiate(c.Rhs, env)
		if err != nil {
			return nil, false, attachRuleContext(err, op, i)
		}
		return out, true, nil
	}
	return nil, false, nil
}

// RewriteAll applies the rule table at the root until no rule applies,
// returning the final term and the number of steps taken. The step limit
// guards against a divergent rule set; 0 means DefaultMaxSteps.
func (r *Rewriter) RewriteAll(t term.Term, rules DsRules, maxSteps int) (term.Term, int, error) {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	steps := 0
	for {
		out, applied, err := r.Apply(t, rules)
		if err != nil {
			return nil, steps, err
		}
		if !applied {
			return t, steps, nil
		}
		t = out
		steps++
		if steps >= maxSteps {
			return nil, steps, desugarErrf("rule table did not terminate within %d rewrite steps", maxSteps)
		}
	}
}

// DefaultMaxSteps bounds RewriteAll against rule tables that rewrite
// forever at the root.
const DefaultMaxSteps = 10000

// ShadowedCase reports a rule case that can never fire because an earlier
// case for the same operator matches everything it matches.
type ShadowedCase struct {
	Op        string
	CaseIndex int // the unreachable case
	ByIndex   int // the earlier case shadowing it
}

func (s ShadowedCase) String() string {
	return fmt.Sprintf("rule %q case %d is unreachable: case %d already matches everything it matches",
		s.Op, s.CaseIndex, s.ByIndex)
}

// CheckShadowing flags later cases that are provably subsumed by an earlier
// case of the same operator. The check is conservative: it only reports a
// case when subsumption is certain, and unreachability is a diagnostic, not
// a failure.
func (rules DsRules) CheckShadowing() []ShadowedCase {
	var out []ShadowedCase
	for op, cases := range rules {
		for i := 1; i < len(cases); i++ {
			for j := 0; j < i; j++ {
				if subsumes(cases[j].Lhs, cases[i].Lhs) {
					out = append(out, ShadowedCase{Op: op, CaseIndex: i, ByIndex: j})
					break
				}
			}
		}
	}
	return out
}

// subsumes conservatively decides whether every term matched by q is also
// matched by p. False negatives are fine; false positives are not.
func subsumes(p, q term.Pattern) bool {
	return subsumesInto(p, q, make(map[string]bool))
}

// seen records p-side capture names already encountered. A repeated name
// constrains its occurrences to be structurally equal, so a second
// occurrence no longer matches everything; the check gives up there.
func subsumesInto(p, q term.Pattern, seen map[string]bool) bool {
	switch pp := p.(type) {
	case *term.PDrop:
		return true
	case *term.PPVar:
		if seen[pp.Name] {
			return false
		}
		seen[pp.Name] = true
		if len(pp.Labels) == 0 {
			return true
		}
		switch qq := q.(type) {
		case *term.PCore:
			return stringIn(qq.Op, pp.Labels)
		case *term.PSurf:
			return stringIn(qq.Op, pp.Labels)
		case *term.PAux:
			return stringIn(qq.Op, pp.Labels)
		}
		return false
	case *term.PPrim:
		qq, ok := q.(*term.PPrim)
		return ok && term.SamePrim(pp.Prim, qq.Prim)
	case *term.PCore:
		qq, ok := q.(*term.PCore)
		return ok && pp.Op == qq.Op && subsumesAll(pp.Args, qq.Args, seen)
	case *term.PSurf:
		qq, ok := q.(*term.PSurf)
		return ok && pp.Op == qq.Op && subsumesAll(pp.Args, qq.Args, seen)
	case *term.PAux:
		qq, ok := q.(*term.PAux)
		return ok && pp.Op == qq.Op && subsumesAll(pp.Args, qq.Args, seen)
	case *term.POption:
		qq, ok := q.(*term.POption)
		if !ok {
			return false
		}
		if pp.Item == nil || qq.Item == nil {
			return pp.Item == nil && qq.Item == nil
		}
		return subsumesInto(pp.Item, qq.Item, seen)
	case *term.PList:
		qq, ok := q.(*term.PList)
		return ok && subsumesSeq(pp.Seq, qq.Seq, seen)
	}
	// Anything involving variable re-occurrences, tags, bijections or
	// generation-only forms is left undecided.
	return false
}

func subsumesAll(ps, qs []term.Pattern, seen map[string]bool) bool {
	if len(ps) != len(qs) {
		return false
	}
	for i := range ps {
		if !subsumesInto(ps[i], qs[i], seen) {
			return false
		}
	}
	return true
}

func subsumesSeq(p, q term.SeqPattern, seen map[string]bool) bool {
	switch pp := p.(type) {
	case *term.SeqEmpty:
		_, ok := q.(*term.SeqEmpty)
		return ok
	case *term.SeqCons:
		qq, ok := q.(*term.SeqCons)
		return ok && subsumesInto(pp.First, qq.First, seen) && subsumesSeq(pp.Rest, qq.Rest, seen)
	case *term.SeqEllipsis:
		switch qq := q.(type) {
		case *term.SeqEmpty:
			// An ellipsis admits the empty run.
			return true
		case *term.SeqEllipsis:
			return subsumesInto(pp.Item, qq.Item, seen)
		case *term.SeqEllipsisList:
			for _, item := range qq.Items {
				if !subsumesInto(pp.Item, item, seen) {
					return false
				}
			}
			return true
		case *term.SeqCons:
			return subsumesInto(pp.Item, qq.First, seen) && subsumesSeq(pp, qq.Rest, seen)
		}
	}
	return false
}

func stringIn(s string, xs []string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
