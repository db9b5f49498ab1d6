package rewriter

import (
	"errors"
	"testing"

	"github.com/SeuperHakkerJa/pyret-lang/pkg/term"
)

func num(v float64) term.Term {
	return &term.PrimTerm{Prim: &term.NumPrim{Value: v}}
}

func pnum(v float64) term.Pattern {
	return &term.PPrim{Prim: &term.NumPrim{Value: v}}
}

func pvar(name string) term.Pattern {
	return &term.PPVar{Name: name}
}

func srcVar(name string) term.Term {
	return &term.VarTerm{Var: &term.Name{Name: name}}
}

func TestMatchCoreNode(t *testing.T) {
	rw := NewRewriter(nil)

	lhs := &term.PCore{Op: "add1", Args: []term.Pattern{pvar("x")}}
	input := &term.CoreTerm{Op: "add1", Args: []term.Term{num(5)}}

	env, ok, err := rw.Match(lhs, input)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected match to succeed")
	}
	bound, found := env.LookupPVar("x")
	if !found {
		t.Fatal("Expected x to be bound")
	}
	if !term.Same(bound, num(5)) {
		t.Errorf("Expected x to be bound to 5, got %s", term.String(bound))
	}
}

func TestMatchWrongOperator(t *testing.T) {
	rw := NewRewriter(nil)

	lhs := &term.PCore{Op: "add1", Args: []term.Pattern{pvar("x")}}
	input := &term.CoreTerm{Op: "sub1", Args: []term.Term{num(5)}}

	_, ok, err := rw.Match(lhs, input)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if ok {
		t.Error("Expected no match for a different operator")
	}
}

func TestMatchWrongArity(t *testing.T) {
	rw := NewRewriter(nil)

	lhs := &term.PCore{Op: "pair", Args: []term.Pattern{pvar("x"), pvar("y")}}
	input := &term.CoreTerm{Op: "pair", Args: []term.Term{num(1)}}

	_, ok, err := rw.Match(lhs, input)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if ok {
		t.Error("Expected no match for a different arity")
	}
}

func TestMatchRepeatedVariableMustAgree(t *testing.T) {
	rw := NewRewriter(nil)

	lhs := &term.PCore{Op: "pair", Args: []term.Pattern{pvar("x"), pvar("x")}}

	// Same term twice: the second binding re-binds to an equal term.
	same := &term.CoreTerm{Op: "pair", Args: []term.Term{num(3), num(3)}}
	_, ok, err := rw.Match(lhs, same)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if !ok {
		t.Error("Expected match when both occurrences are equal")
	}

	// Different terms: the whole case fails.
	diff := &term.CoreTerm{Op: "pair", Args: []term.Term{num(3), num(4)}}
	_, ok, err = rw.Match(lhs, diff)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if ok {
		t.Error("Expected no match when the occurrences differ")
	}
}

func TestMatchDropAlwaysSucceeds(t *testing.T) {
	rw := NewRewriter(nil)

	candidates := []term.Term{
		num(1),
		srcVar("x"),
		&term.CoreTerm{Op: "anything", Args: []term.Term{num(1)}},
		&term.ListTerm{},
		&term.OptionTerm{},
	}
	for _, candidate := range candidates {
		env, ok, err := rw.Match(&term.PDrop{}, candidate)
		if err != nil {
			t.Fatalf("Match failed on %s: %v", term.String(candidate), err)
		}
		if !ok {
			t.Errorf("Expected drop to match %s", term.String(candidate))
		}
		if _, found := env.LookupPVar("_"); found {
			t.Error("Expected drop to produce no bindings")
		}
	}
}

func TestMatchPVarLabels(t *testing.T) {
	rw := NewRewriter(nil)

	constrained := &term.PPVar{Name: "e", Labels: []string{"lam", "app"}}

	lam := &term.CoreTerm{Op: "lam", Args: []term.Term{srcVar("x")}}
	_, ok, err := rw.Match(constrained, lam)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if !ok {
		t.Error("Expected a listed operator to be admitted")
	}

	other := &term.CoreTerm{Op: "if", Args: []term.Term{}}
	_, ok, err = rw.Match(constrained, other)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if ok {
		t.Error("Expected an unlisted operator to be rejected")
	}

	// A non-operator term has no operator to be a member of the labels.
	_, ok, err = rw.Match(constrained, num(1))
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if ok {
		t.Error("Expected a literal to be rejected by an operator constraint")
	}
}

func TestMatchOption(t *testing.T) {
	rw := NewRewriter(nil)

	somePatt := &term.POption{Item: pvar("x")}
	nonePatt := &term.POption{}

	someTerm := &term.OptionTerm{Item: num(7)}
	noneTerm := &term.OptionTerm{}

	if _, ok, _ := rw.Match(somePatt, someTerm); !ok {
		t.Error("Expected present option to match present pattern")
	}
	if _, ok, _ := rw.Match(nonePatt, noneTerm); !ok {
		t.Error("Expected absent option to match absent pattern")
	}
	if _, ok, _ := rw.Match(somePatt, noneTerm); ok {
		t.Error("Expected absent option not to match present pattern")
	}
	if _, ok, _ := rw.Match(nonePatt, someTerm); ok {
		t.Error("Expected present option not to match absent pattern")
	}
}

func TestMatchSeqEllipsisLengths(t *testing.T) {
	rw := NewRewriter(nil)

	lhs := &term.PList{Seq: &term.SeqEllipsis{Item: pvar("e"), Label: "es"}}

	for _, n := range []int{0, 1, 3} {
		items := make([]term.Term, n)
		for i := range items {
			items[i] = num(float64(i + 1))
		}
		env, ok, err := rw.Match(lhs, &term.ListTerm{Items: items})
		if err != nil {
			t.Fatalf("Match failed for length %d: %v", n, err)
		}
		if !ok {
			t.Fatalf("Expected match for length %d", n)
		}
		subs, found := env.Ellipsis("es")
		if !found {
			t.Fatalf("Expected ellipsis label to be recorded for length %d", n)
		}
		if len(subs) != n {
			t.Errorf("Expected %d repetitions, got %d", n, len(subs))
		}
		for i, sub := range subs {
			bound, found := sub.LookupPVar("e")
			if !found {
				t.Fatalf("Expected repetition %d to bind e", i)
			}
			if !term.Same(bound, items[i]) {
				t.Errorf("Repetition %d bound %s, want %s", i, term.String(bound), term.String(items[i]))
			}
		}
	}
}

func TestMatchSeqConsAndEmpty(t *testing.T) {
	rw := NewRewriter(nil)

	lhs := &term.PList{Seq: term.ConsList(pvar("a"), pvar("b"))}

	_, ok, err := rw.Match(lhs, &term.ListTerm{Items: []term.Term{num(1), num(2)}})
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if !ok {
		t.Error("Expected a two-element list to match a two-element sequence")
	}

	_, ok, _ = rw.Match(lhs, &term.ListTerm{Items: []term.Term{num(1)}})
	if ok {
		t.Error("Expected a short list not to match")
	}
	_, ok, _ = rw.Match(lhs, &term.ListTerm{Items: []term.Term{num(1), num(2), num(3)}})
	if ok {
		t.Error("Expected a long list not to match")
	}
}

func TestMatchSeqEllipsisList(t *testing.T) {
	rw := NewRewriter(nil)

	lhs := &term.PList{Seq: &term.SeqEllipsisList{
		Items: []term.Pattern{pvar("a"), pnum(2), pvar("c")},
		Label: "slots",
	}}

	env, ok, err := rw.Match(lhs, &term.ListTerm{Items: []term.Term{num(1), num(2), num(3)}})
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected match")
	}
	subs, found := env.Ellipsis("slots")
	if !found || len(subs) != 3 {
		t.Fatalf("Expected 3 repetition slots, got %d", len(subs))
	}
	if bound, _ := subs[0].LookupPVar("a"); !term.Same(bound, num(1)) {
		t.Error("Expected slot 0 to bind a to 1")
	}
	if bound, _ := subs[2].LookupPVar("c"); !term.Same(bound, num(3)) {
		t.Error("Expected slot 2 to bind c to 3")
	}

	// Length is exact for an ellipsis-list.
	_, ok, _ = rw.Match(lhs, &term.ListTerm{Items: []term.Term{num(1), num(2)}})
	if ok {
		t.Error("Expected no match for a list of a different length")
	}
}

func TestMatchSeesThroughTagsAndFocus(t *testing.T) {
	rw := NewRewriter(nil)

	inner := &term.CoreTerm{Op: "add1", Args: []term.Term{num(5)}}
	tagged := &term.TagTerm{
		Lhs:  pvar("x"),
		Rhs:  pvar("x"),
		Body: &term.FocusTerm{Body: inner},
	}

	lhs := &term.PCore{Op: "add1", Args: []term.Pattern{pvar("x")}}
	_, ok, err := rw.Match(lhs, tagged)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if !ok {
		t.Error("Expected matching to see through tag and focus wrappers")
	}
}

func TestMatchVarReoccurrence(t *testing.T) {
	rw := NewRewriter(nil)

	lhs := &term.PCore{Op: "pair", Args: []term.Pattern{pvar("x"), &term.PVar{Name: "x"}}}

	agree := &term.CoreTerm{Op: "pair", Args: []term.Term{srcVar("a"), srcVar("a")}}
	_, ok, err := rw.Match(lhs, agree)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if !ok {
		t.Error("Expected re-occurrence of the same variable to match")
	}

	disagree := &term.CoreTerm{Op: "pair", Args: []term.Term{srcVar("a"), srcVar("b")}}
	_, ok, err = rw.Match(lhs, disagree)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if ok {
		t.Error("Expected a different variable not to match a re-occurrence")
	}
}

func TestMatchMetaOnMatchSideIsInternalError(t *testing.T) {
	rw := NewRewriter(nil)

	lhs := &term.PMeta{Op: "concat", Args: nil}
	_, _, err := rw.Match(lhs, num(1))
	if err == nil {
		t.Fatal("Expected an internal error for a metafunction on the match side")
	}
	if _, ok := err.(*InternalError); !ok {
		t.Errorf("Expected *InternalError, got %T: %v", err, err)
	}
}

func TestMatchFreshOnMatchSideIsInternalError(t *testing.T) {
	rw := NewRewriter(nil)

	lhs := &term.PFresh{
		Fresh: []term.FreshItem{&term.FreshName{Name: "t"}},
		Body:  pvar("x"),
	}
	_, _, err := rw.Match(lhs, num(1))
	if err == nil {
		t.Fatal("Expected an internal error for fresh items on the match side")
	}
	if _, ok := err.(*InternalError); !ok {
		t.Errorf("Expected *InternalError, got %T: %v", err, err)
	}
}

func TestMatchBijectionAppliesForward(t *testing.T) {
	registry := NewRegistry()
	registry.AddBijection(Bijection{
		Name: "negate",
		Forward: func(t term.Term) (term.Term, error) {
			p := t.(*term.PrimTerm).Prim.(*term.NumPrim)
			return &term.PrimTerm{Prim: &term.NumPrim{Value: -p.Value}}, nil
		},
		Reverse: func(t term.Term) (term.Term, error) {
			p := t.(*term.PrimTerm).Prim.(*term.NumPrim)
			return &term.PrimTerm{Prim: &term.NumPrim{Value: -p.Value}}, nil
		},
	})
	rw := NewRewriter(registry)

	lhs := &term.PBiject{Op: "negate", Body: pvar("x")}
	env, ok, err := rw.Match(lhs, num(5))
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected match")
	}
	bound, _ := env.LookupPVar("x")
	if !term.Same(bound, num(-5)) {
		t.Errorf("Expected x to be bound to the transformed term, got %s", term.String(bound))
	}
}

func TestMatchUnregisteredBijectionIsInternalError(t *testing.T) {
	rw := NewRewriter(nil)

	lhs := &term.PBiject{Op: "missing", Body: pvar("x")}
	_, _, err := rw.Match(lhs, num(1))
	if err == nil {
		t.Fatal("Expected an internal error for an unregistered bijection")
	}
	if _, ok := err.(*InternalError); !ok {
		t.Errorf("Expected *InternalError, got %T: %v", err, err)
	}
}

func TestMatchBijectionDomainFailureIsNoMatch(t *testing.T) {
	registry := NewRegistry()
	registry.AddBijection(Bijection{
		Name: "numbersOnly",
		Forward: func(t term.Term) (term.Term, error) {
			if _, ok := t.(*term.PrimTerm); !ok {
				return nil, errOutsideDomain
			}
			return t, nil
		},
		Reverse: func(t term.Term) (term.Term, error) { return t, nil },
	})
	rw := NewRewriter(registry)

	lhs := &term.PBiject{Op: "numbersOnly", Body: &term.PDrop{}}
	_, ok, err := rw.Match(lhs, srcVar("x"))
	if err != nil {
		t.Fatalf("Expected ordinary no-match, got error: %v", err)
	}
	if ok {
		t.Error("Expected no match outside the bijection's domain")
	}
}

var errOutsideDomain = errors.New("outside domain")
