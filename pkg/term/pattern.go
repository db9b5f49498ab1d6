package term

// Pattern describes how to match a term and/or how to generate one. The
// structural variants mirror Term; the remaining variants are specific to
// matching (captures, drops) or to generation (metafunctions, fresh names).
type Pattern interface {
	patternValue()
}

// PPrim matches (or generates) exactly the given literal leaf.
type PPrim struct {
	Prim Prim
}

// PCore matches a core node with the given operator and arity.
type PCore struct {
	Op   string
	Args []Pattern
}

// PSurf matches a surface node with the given operator and arity.
type PSurf struct {
	Op   string
	Args []Pattern
}

// PAux matches an auxiliary node with the given operator and arity.
type PAux struct {
	Op   string
	Args []Pattern
}

// PList matches a list term by its sequence pattern.
type PList struct {
	Seq SeqPattern
}

// POption matches an option term: both sides absent, or both present with
// the inner pattern matching. A nil Item means absent.
type POption struct {
	Item Pattern
}

// PTag generates a TagTerm recording the Lhs/Rhs pair around the
// instantiated Body. On the matching side the pair is ignored and the
// candidate's tag wrappers are stripped before matching Body.
type PTag struct {
	Lhs  Pattern
	Rhs  Pattern
	Body Pattern
}

// PPVar captures the matched sub-term under Name. If Labels is non-empty
// the candidate must be an operator-tagged node whose operator is listed.
// Type is rule-authoring metadata naming the sort the variable ranges over;
// terms declare no sorts, so it never constrains matching.
type PPVar struct {
	Name   string
	Labels []string
	Type   string
}

// PDrop matches anything without capturing.
type PDrop struct {
	Type string
}

// PVar matches only a variable reference equal to the variable already
// bound under Name earlier in the same rule application. On the generation
// side it replays that variable.
type PVar struct {
	Name string
}

// PMeta invokes the metafunction registered under Op with the instantiated
// Args. Generation-side only.
type PMeta struct {
	Op   string
	Args []Pattern
}

// PBiject applies the forward function of the bijection registered under
// Op before matching Body, and the reverse function after instantiating
// Body.
type PBiject struct {
	Op   string
	Body Pattern
}

// PFresh binds each listed fresh item to a newly allocated atom before
// instantiating Body. Generation-side only.
type PFresh struct {
	Fresh []FreshItem
	Body  Pattern
}

// PCapture is PFresh resugared back to a capturing occurrence visible in
// the user-facing reconstruction; the engine instantiates it identically.
type PCapture struct {
	Fresh []FreshItem
	Body  Pattern
}

func (p *PPrim) patternValue()    {}
func (p *PCore) patternValue()    {}
func (p *PSurf) patternValue()    {}
func (p *PAux) patternValue()     {}
func (p *PList) patternValue()    {}
func (p *POption) patternValue()  {}
func (p *PTag) patternValue()     {}
func (p *PPVar) patternValue()    {}
func (p *PDrop) patternValue()    {}
func (p *PVar) patternValue()     {}
func (p *PMeta) patternValue()    {}
func (p *PBiject) patternValue()  {}
func (p *PFresh) patternValue()   {}
func (p *PCapture) patternValue() {}

// SeqPattern describes the contents of a list term.
type SeqPattern interface {
	seqPatternValue()
}

// SeqEmpty matches an empty remainder.
type SeqEmpty struct{}

// SeqCons matches one element, then the rest.
type SeqCons struct {
	First Pattern
	Rest  SeqPattern
}

// SeqEllipsis greedily matches Item against every remaining element,
// recording one sub-environment per element under Label. It must be the
// final element of its enclosing sequence.
type SeqEllipsis struct {
	Item  Pattern
	Label string
}

// SeqEllipsisList matches a fixed list of distinct patterns, each
// contributing one repetition slot under the shared Label.
type SeqEllipsisList struct {
	Items []Pattern
	Label string
}

func (s *SeqEmpty) seqPatternValue()        {}
func (s *SeqCons) seqPatternValue()         {}
func (s *SeqEllipsis) seqPatternValue()     {}
func (s *SeqEllipsisList) seqPatternValue() {}

// FreshItem is a request for fresh atoms on the generation side.
type FreshItem interface {
	freshItemValue()
}

// FreshName requests one fresh atom per rule application.
type FreshName struct {
	Name string
}

// FreshEllipsis requests one fresh atom per repetition of the ellipsis
// group recorded under Label.
type FreshEllipsis struct {
	Item  FreshItem
	Label string
}

func (f *FreshName) freshItemValue()     {}
func (f *FreshEllipsis) freshItemValue() {}

// ConsList builds the sequence pattern matching exactly the given fixed
// elements.
func ConsList(patts ...Pattern) SeqPattern {
	var seq SeqPattern = &SeqEmpty{}
	for i := len(patts) - 1; i >= 0; i-- {
		seq = &SeqCons{First: patts[i], Rest: seq}
	}
	return seq
}
