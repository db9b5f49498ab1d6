package term

import (
	"testing"

	"github.com/SeuperHakkerJa/pyret-lang/pkg/common"
)

func numT(v float64) Term {
	return &PrimTerm{Prim: &NumPrim{Value: v}}
}

func nameT(name string) Term {
	return &VarTerm{Var: &Name{Name: name}}
}

func TestSamePrims(t *testing.T) {
	if !Same(numT(1), numT(1)) {
		t.Error("Expected equal numbers to compare equal")
	}
	if Same(numT(1), numT(2)) {
		t.Error("Expected different numbers to compare unequal")
	}
	if Same(numT(1), &PrimTerm{Prim: &StrPrim{Value: "1"}}) {
		t.Error("Expected a number and a string to compare unequal")
	}
	if !Same(
		&PrimTerm{Prim: &BoolPrim{Value: true}},
		&PrimTerm{Prim: &BoolPrim{Value: true}},
	) {
		t.Error("Expected equal booleans to compare equal")
	}
}

func TestSameNamesIgnoreLocation(t *testing.T) {
	a := &VarTerm{Var: &Name{Name: "x", Loc: common.Loc{Source: "a.arr", StartLine: 1}}}
	b := &VarTerm{Var: &Name{Name: "x", Loc: common.Loc{Source: "b.arr", StartLine: 9}}}
	if !Same(a, b) {
		t.Error("Expected names to compare by spelling, not location")
	}
}

func TestSameAtomsCompareByHintAndSerial(t *testing.T) {
	a1 := &VarTerm{Var: &Atom{Hint: "t", Serial: 1}}
	a1again := &VarTerm{Var: &Atom{Hint: "t", Serial: 1}}
	a2 := &VarTerm{Var: &Atom{Hint: "t", Serial: 2}}
	if !Same(a1, a1again) {
		t.Error("Expected atoms with the same hint and serial to compare equal")
	}
	if Same(a1, a2) {
		t.Error("Expected atoms with different serials to compare unequal")
	}
	if Same(a1, nameT("t")) {
		t.Error("Expected an atom never to equal a source name")
	}
}

func TestSameNodes(t *testing.T) {
	x := &CoreTerm{Op: "plus", Args: []Term{numT(1), numT(2)}}
	y := &CoreTerm{Op: "plus", Args: []Term{numT(1), numT(2)}}
	if !Same(x, y) {
		t.Error("Expected structurally equal nodes to compare equal")
	}
	if Same(x, &CoreTerm{Op: "minus", Args: []Term{numT(1), numT(2)}}) {
		t.Error("Expected different operators to compare unequal")
	}
	if Same(x, &SurfTerm{Op: "plus", Args: []Term{numT(1), numT(2)}}) {
		t.Error("Expected core and surface nodes to compare unequal")
	}
	if Same(x, &CoreTerm{Op: "plus", Args: []Term{numT(1)}}) {
		t.Error("Expected different arities to compare unequal")
	}
}

func TestSameSurfTracksProvenance(t *testing.T) {
	user := &SurfTerm{Op: "and", FromUser: true}
	synthetic := &SurfTerm{Op: "and", FromUser: false}
	if Same(user, synthetic) {
		t.Error("Expected provenance to distinguish surface nodes")
	}
}

func TestSameOptions(t *testing.T) {
	if !Same(&OptionTerm{}, &OptionTerm{}) {
		t.Error("Expected two absent options to compare equal")
	}
	if Same(&OptionTerm{}, &OptionTerm{Item: numT(1)}) {
		t.Error("Expected absent and present options to compare unequal")
	}
	if !Same(&OptionTerm{Item: numT(1)}, &OptionTerm{Item: numT(1)}) {
		t.Error("Expected equal present options to compare equal")
	}
}

func TestSameTags(t *testing.T) {
	mk := func(op string) Term {
		return &TagTerm{
			Lhs:  &PSurf{Op: op},
			Rhs:  &PCore{Op: "out"},
			Body: numT(1),
		}
	}
	if !Same(mk("f"), mk("f")) {
		t.Error("Expected identical tags to compare equal")
	}
	if Same(mk("f"), mk("g")) {
		t.Error("Expected tags with different patterns to compare unequal")
	}
	if Same(mk("f"), numT(1)) {
		t.Error("Expected a tagged term not to equal its body")
	}
}

func TestSamePatternVariants(t *testing.T) {
	if !SamePattern(
		&PPVar{Name: "x", Labels: []string{"lam"}},
		&PPVar{Name: "x", Labels: []string{"lam"}},
	) {
		t.Error("Expected identical pattern variables to compare equal")
	}
	if SamePattern(&PPVar{Name: "x"}, &PPVar{Name: "y"}) {
		t.Error("Expected differently named pattern variables to compare unequal")
	}
	if SamePattern(&PPVar{Name: "x"}, &PDrop{}) {
		t.Error("Expected a pattern variable and a drop to compare unequal")
	}

	seq := func(label string) Pattern {
		return &PList{Seq: &SeqEllipsis{Item: &PPVar{Name: "e"}, Label: label}}
	}
	if !SamePattern(seq("es"), seq("es")) {
		t.Error("Expected identical sequences to compare equal")
	}
	if SamePattern(seq("es"), seq("xs")) {
		t.Error("Expected ellipsis labels to distinguish sequences")
	}
}
