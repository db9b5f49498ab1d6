package rewriter

import (
	"github.com/SeuperHakkerJa/pyret-lang/pkg/term"
)

// Match matches a pattern against a term. The boolean result distinguishes
// ordinary no-match (expected, the driver moves on to the next case) from
// success; the error reports a structurally malformed pattern, which is a
// defect in the rule table rather than a failed match.
func (r *Rewriter) Match(p term.Pattern, t term.Term) (*Environment, bool, error) {
	env := NewEnvironment()
	ok, err := r.matchInto(p, t, env)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	return env, true, nil
}

func (r *Rewriter) matchInto(p term.Pattern, t term.Term, env *Environment) (bool, error) {
	// Matching always sees through resugaring tags; focus marks are
	// advisory and equally transparent.
	t = skipTransparent(t)

	switch patt := p.(type) {
	case *term.PPrim:
		prim, ok := t.(*term.PrimTerm)
		return ok && term.SamePrim(patt.Prim, prim.Prim), nil

	case *term.PCore:
		node, ok := t.(*term.CoreTerm)
		if !ok || node.Op != patt.Op || len(node.Args) != len(patt.Args) {
			return false, nil
		}
		return r.matchAll(patt.Args, node.Args, env)

	case *term.PSurf:
		node, ok := t.(*term.SurfTerm)
		if !ok || node.Op != patt.Op || len(node.Args) != len(patt.Args) {
			return false, nil
		}
		return r.matchAll(patt.Args, node.Args, env)

	case *term.PAux:
		node, ok := t.(*term.AuxTerm)
		if !ok || node.Op != patt.Op || len(node.Args) != len(patt.Args) {
			return false, nil
		}
		return r.matchAll(patt.Args, node.Args, env)

	case *term.PList:
		list, ok := t.(*term.ListTerm)
		if !ok {
			return false, nil
		}
		return r.matchSeq(patt.Seq, list.Items, env)

	case *term.POption:
		opt, ok := t.(*term.OptionTerm)
		if !ok {
			return false, nil
		}
		if patt.Item == nil || opt.Item == nil {
			return patt.Item == nil && opt.Item == nil, nil
		}
		return r.matchInto(patt.Item, opt.Item, env)

	case *term.PTag:
		// The lhs/rhs fields only matter when generating; matching just
		// descends into the body.
		return r.matchInto(patt.Body, t, env)

	case *term.PPVar:
		if !labelsAdmit(patt.Labels, t) {
			return false, nil
		}
		return env.BindPVar(patt.Name, t), nil

	case *term.PDrop:
		return true, nil

	case *term.PVar:
		v, ok := t.(*term.VarTerm)
		if !ok {
			return false, nil
		}
		if fresh, ok := env.LookupFresh(patt.Name); ok {
			return term.SameVariable(fresh, v.Var), nil
		}
		bound, ok := env.LookupPVar(patt.Name)
		if !ok {
			return false, internalErrf(term.PatternString(patt),
				"variable reference %q occurs before any binding of that name", patt.Name)
		}
		prior, ok := bound.(*term.VarTerm)
		if !ok {
			return false, nil
		}
		return term.SameVariable(prior.Var, v.Var), nil

	case *term.PMeta:
		return false, internalErrf(term.PatternString(patt),
			"metafunction %q used on the match side; metafunctions are generation-only", patt.Op)

	case *term.PBiject:
		bij, err := r.Registry.Bijection(patt.Op)
		if err != nil {
			return false, err
		}
		transformed, err := bij.Forward(t)
		if err != nil {
			// The candidate is outside the bijection's domain; that is an
			// ordinary no-match, not a defect.
			return false, nil
		}
		return r.matchInto(patt.Body, transformed, env)

	case *term.PFresh:
		return false, internalErrf(term.PatternString(patt),
			"fresh items used on the match side; fresh names are generation-only")

	case *term.PCapture:
		return false, internalErrf(term.PatternString(patt),
			"capture items used on the match side; fresh names are generation-only")
	}
	return false, internalErrf("", "unknown pattern variant %T", p)
}

func (r *Rewriter) matchAll(patts []term.Pattern, args []term.Term, env *Environment) (bool, error) {
	for i := range patts {
		ok, err := r.matchInto(patts[i], args[i], env)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// matchSeq matches a sequence pattern against list contents. Deterministic
// and greedy: an ellipsis consumes every remaining element, and there is no
// backtracking.
func (r *Rewriter) matchSeq(seq term.SeqPattern, items []term.Term, env *Environment) (bool, error) {
	switch s := seq.(type) {
	case *term.SeqEmpty:
		return len(items) == 0, nil

	case *term.SeqCons:
		if len(items) == 0 {
			return false, nil
		}
		ok, err := r.matchInto(s.First, items[0], env)
		if err != nil || !ok {
			return false, err
		}
		return r.matchSeq(s.Rest, items[1:], env)

	case *term.SeqEllipsis:
		subs := make([]*Environment, 0, len(items))
		for _, item := range items {
			sub := env.NewChild()
			ok, err := r.matchInto(s.Item, item, sub)
			if err != nil || !ok {
				return false, err
			}
			subs = append(subs, sub)
		}
		if !env.SetEllipsis(s.Label, subs) {
			return false, internalErrf("", "ellipsis label %q recorded twice in one rule case", s.Label)
		}
		return true, nil

	case *term.SeqEllipsisList:
		if len(items) != len(s.Items) {
			return false, nil
		}
		subs := make([]*Environment, 0, len(items))
		for i, item := range items {
			sub := env.NewChild()
			ok, err := r.matchInto(s.Items[i], item, sub)
			if err != nil || !ok {
				return false, err
			}
			subs = append(subs, sub)
		}
		if !env.SetEllipsis(s.Label, subs) {
			return false, internalErrf("", "ellipsis label %q recorded twice in one rule case", s.Label)
		}
		return true, nil
	}
	return false, internalErrf("", "unknown sequence pattern variant %T", seq)
}

// labelsAdmit checks a pattern variable's operator constraint. An empty
// label list admits anything; a non-empty one admits only operator-tagged
// nodes carrying a listed operator.
func labelsAdmit(labels []string, t term.Term) bool {
	if len(labels) == 0 {
		return true
	}
	op, _, ok := term.Operator(t)
	if !ok {
		return false
	}
	for _, label := range labels {
		if label == op {
			return true
		}
	}
	return false
}

// skipTransparent unwraps root tag annotations and focus marks, neither of
// which participates in matching semantics.
func skipTransparent(t term.Term) term.Term {
	for {
		switch node := t.(type) {
		case *term.TagTerm:
			t = node.Body
		case *term.FocusTerm:
			t = node.Body
		default:
			return t
		}
	}
}
