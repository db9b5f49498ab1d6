package rewriter

import (
	"github.com/SeuperHakkerJa/pyret-lang/pkg/term"
)

// Instantiate builds a term from a rule's right-hand side and the
// environment a successful match produced. An absent binding means the rhs
// references a pattern variable the lhs never bound, which is reported as a
// desugaring failure rather than silently defaulted.
func (r *Rewriter) Instantiate(p term.Pattern, env *Environment) (term.Term, error) {
	switch patt := p.(type) {
	case *term.PPrim:
		return &term.PrimTerm{Prim: patt.Prim}, nil

	case *term.PCore:
		args, err := r.instantiateAll(patt.Args, env)
		if err != nil {
			return nil, err
		}
		return &term.CoreTerm{Op: patt.Op, Args: args}, nil

	case *term.PSurf:
		args, err := r.instantiateAll(patt.Args, env)
		if err != nil {
			return nil, err
		}
		// Generated surface terms are synthesized, never user-written.
		return &term.SurfTerm{Op: patt.Op, FromUser: false, Args: args}, nil

	case *term.PAux:
		args, err := r.instantiateAll(patt.Args, env)
		if err != nil {
			return nil, err
		}
		return &term.AuxTerm{Op: patt.Op, Args: args}, nil

	case *term.PList:
		items, err := r.instantiateSeq(patt.Seq, env)
		if err != nil {
			return nil, err
		}
		return &term.ListTerm{Items: items}, nil

	case *term.POption:
		if patt.Item == nil {
			return &term.OptionTerm{}, nil
		}
		item, err := r.Instantiate(patt.Item, env)
		if err != nil {
			return nil, err
		}
		return &term.OptionTerm{Item: item}, nil

	case *term.PTag:
		body, err := r.Instantiate(patt.Body, env)
		if err != nil {
			return nil, err
		}
		return &term.TagTerm{Lhs: patt.Lhs, Rhs: patt.Rhs, Body: body}, nil

	case *term.PPVar:
		return r.replayBinding(patt.Name, env)

	case *term.PDrop:
		return nil, internalErrf(term.PatternString(patt),
			"drop pattern used on the generation side; drops are match-only")

	case *term.PVar:
		return r.replayBinding(patt.Name, env)

	case *term.PMeta:
		args, err := r.instantiateAll(patt.Args, env)
		if err != nil {
			return nil, err
		}
		meta, err := r.Registry.Metafunction(patt.Op)
		if err != nil {
			return nil, err
		}
		if meta.Arity != len(args) {
			return nil, desugarErrf("metafunction %q expects %d arguments, got %d",
				patt.Op, meta.Arity, len(args))
		}
		return meta.Fn(args)

	case *term.PBiject:
		body, err := r.Instantiate(patt.Body, env)
		if err != nil {
			return nil, err
		}
		bij, err := r.Registry.Bijection(patt.Op)
		if err != nil {
			return nil, err
		}
		out, err := bij.Reverse(body)
		if err != nil {
			return nil, desugarErrf("reverse of bijection %q failed: %v", patt.Op, err)
		}
		return out, nil

	case *term.PFresh:
		return r.instantiateFresh(patt.Fresh, patt.Body, env)

	case *term.PCapture:
		return r.instantiateFresh(patt.Fresh, patt.Body, env)
	}
	return nil, internalErrf("", "unknown pattern variant %T", p)
}

func (r *Rewriter) instantiateAll(patts []term.Pattern, env *Environment) ([]term.Term, error) {
	if len(patts) == 0 {
		return nil, nil
	}
	out := make([]term.Term, len(patts))
	for i := range patts {
		t, err := r.Instantiate(patts[i], env)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// replayBinding resolves a name against the captured pattern variables and
// the allocated fresh atoms of the current application.
func (r *Rewriter) replayBinding(name string, env *Environment) (term.Term, error) {
	if t, ok := env.LookupPVar(name); ok {
		return t, nil
	}
	if v, ok := env.LookupFresh(name); ok {
		return &term.VarTerm{Var: v}, nil
	}
	return nil, desugarErrf("pattern variable %q is referenced but was never bound", name)
}

func (r *Rewriter) instantiateSeq(seq term.SeqPattern, env *Environment) ([]term.Term, error) {
	var out []term.Term
	for {
		switch s := seq.(type) {
		case *term.SeqEmpty:
			return out, nil

		case *term.SeqCons:
			t, err := r.Instantiate(s.First, env)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
			seq = s.Rest

		case *term.SeqEllipsis:
			subs, ok := env.Ellipsis(s.Label)
			if !ok {
				return nil, desugarErrf("ellipsis label %q was never established by matching", s.Label)
			}
			for _, sub := range subs {
				t, err := r.Instantiate(s.Item, env.overlay(sub))
				if err != nil {
					return nil, err
				}
				out = append(out, t)
			}
			return out, nil

		case *term.SeqEllipsisList:
			subs, ok := env.Ellipsis(s.Label)
			if !ok {
				return nil, desugarErrf("ellipsis label %q was never established by matching", s.Label)
			}
			if len(subs) != len(s.Items) {
				return nil, desugarErrf("ellipsis label %q has %d repetitions but %d patterns reference it",
					s.Label, len(subs), len(s.Items))
			}
			for i, sub := range subs {
				t, err := r.Instantiate(s.Items[i], env.overlay(sub))
				if err != nil {
					return nil, err
				}
				out = append(out, t)
			}
			return out, nil

		default:
			return nil, internalErrf("", "unknown sequence pattern variant %T", seq)
		}
	}
}

// instantiateFresh allocates the requested atoms, at most once per distinct
// name per application, then instantiates the body under the extended
// environment.
func (r *Rewriter) instantiateFresh(fresh []term.FreshItem, body term.Pattern, env *Environment) (term.Term, error) {
	extended := env.NewChild()
	for _, item := range fresh {
		if err := r.allocFresh(item, extended); err != nil {
			return nil, err
		}
	}
	return r.Instantiate(body, extended)
}

func (r *Rewriter) allocFresh(item term.FreshItem, env *Environment) error {
	switch f := item.(type) {
	case *term.FreshName:
		if _, ok := env.LookupFresh(f.Name); ok {
			// Already allocated earlier in this application; reuse it.
			return nil
		}
		env.BindFresh(f.Name, r.GenSym.FreshAtom(f.Name))
		return nil

	case *term.FreshEllipsis:
		subs, ok := env.Ellipsis(f.Label)
		if !ok {
			return desugarErrf("fresh ellipsis label %q was never established by matching", f.Label)
		}
		for _, sub := range subs {
			if err := r.allocFresh(f.Item, sub); err != nil {
				return err
			}
		}
		return nil
	}
	return internalErrf("", "unknown fresh item variant %T", item)
}
