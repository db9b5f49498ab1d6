package rewriter

import (
	"github.com/SeuperHakkerJa/pyret-lang/pkg/term"
)

// Metafunction is a named, externally supplied computation invoked during
// instantiation when a rule's right-hand side cannot be expressed
// declaratively.
type Metafunction struct {
	Name  string
	Arity int
	Fn    func(args []term.Term) (term.Term, error)
}

// Bijection is a registered pair of mutually inverse term transforms: the
// forward function desugars an operator form on the way in, the reverse
// function resugars it on the way out.
type Bijection struct {
	Name    string
	Forward func(t term.Term) (term.Term, error)
	Reverse func(t term.Term) (term.Term, error)
}

// Registry holds the metafunctions and bijections a rule table may name.
// The pipeline populates it during initialization; the engine only reads
// it, so one writer followed by any number of concurrent readers needs no
// locking. Tests construct a fresh registry each.
type Registry struct {
	metafunctions map[string]Metafunction
	bijections    map[string]Bijection
}

func NewRegistry() *Registry {
	return &Registry{
		metafunctions: make(map[string]Metafunction),
		bijections:    make(map[string]Bijection),
	}
}

// AddMetafunction registers a metafunction under its name, overwriting any
// previous registration of that name.
func (r *Registry) AddMetafunction(m Metafunction) {
	r.metafunctions[m.Name] = m
}

// AddBijection registers a bijection under its name, overwriting any
// previous registration of that name.
func (r *Registry) AddBijection(b Bijection) {
	r.bijections[b.Name] = b
}

// Metafunction looks up a metafunction by name. An unregistered name is a
// defect in the rule table, not a matching failure.
func (r *Registry) Metafunction(name string) (Metafunction, error) {
	m, ok := r.metafunctions[name]
	if !ok {
		return Metafunction{}, internalErrf("", "no metafunction registered under %q", name)
	}
	return m, nil
}

// Bijection looks up a bijection by name.
func (r *Registry) Bijection(name string) (Bijection, error) {
	b, ok := r.bijections[name]
	if !ok {
		return Bijection{}, internalErrf("", "no bijection registered under %q", name)
	}
	return b, nil
}
