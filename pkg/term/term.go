package term

// Term is a node in the program representation being rewritten.
//
// The engine never interprets terms; it only matches them against patterns
// and rebuilds them from environments. Every consumer of this type (the
// matcher, the instantiator, strip-tags, the renderers) dispatches
// exhaustively over the variants below, so adding a variant means visiting
// each of those in turn.
type Term interface {
	termValue()
}

// PrimTerm is a literal leaf.
type PrimTerm struct {
	Prim Prim
}

// CoreTerm is an operator-tagged node in the core language.
type CoreTerm struct {
	Op   string
	Args []Term
}

// SurfTerm is an operator-tagged node in the surface language. FromUser
// distinguishes terms the programmer wrote from terms synthesized by an
// earlier rewrite step; it matters only for diagnostics and resugaring,
// never for matching.
type SurfTerm struct {
	Op       string
	FromUser bool
	Args     []Term
}

// AuxTerm is an operator-tagged auxiliary node, for fragments that belong
// to neither the surface nor the core language proper.
type AuxTerm struct {
	Op   string
	Args []Term
}

// VarTerm is a variable reference.
type VarTerm struct {
	Var Variable
}

// ListTerm is an ordered sequence, used where an operator's arity varies.
type ListTerm struct {
	Items []Term
}

// OptionTerm is the presence or absence of a sub-term. A nil Item means
// absent.
type OptionTerm struct {
	Item Term
}

// TagTerm wraps a rewritten body with the forward/reverse pattern pair that
// produced it, so a resugaring pass can reconstruct the pre-rewrite shape.
// Matching always sees through tags.
type TagTerm struct {
	Lhs  Pattern
	Rhs  Pattern
	Body Term
}

// FocusTerm marks the point of interest of the current transformation step.
// Purely advisory.
type FocusTerm struct {
	Body Term
}

// ValueTerm carries an opaque host-level value. Only metafunctions produce
// these; the engine treats them as inert leaves.
type ValueTerm struct {
	Value any
}

func (t *PrimTerm) termValue()   {}
func (t *CoreTerm) termValue()   {}
func (t *SurfTerm) termValue()   {}
func (t *AuxTerm) termValue()    {}
func (t *VarTerm) termValue()    {}
func (t *ListTerm) termValue()   {}
func (t *OptionTerm) termValue() {}
func (t *TagTerm) termValue()    {}
func (t *FocusTerm) termValue()  {}
func (t *ValueTerm) termValue()  {}

// Operator returns the operator name and arguments of an operator-tagged
// term (core, surface or auxiliary), or ok=false for every other variant.
func Operator(t Term) (op string, args []Term, ok bool) {
	switch node := t.(type) {
	case *CoreTerm:
		return node.Op, node.Args, true
	case *SurfTerm:
		return node.Op, node.Args, true
	case *AuxTerm:
		return node.Op, node.Args, true
	}
	return "", nil, false
}
