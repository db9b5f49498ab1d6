package rewriter

import (
	"github.com/SeuperHakkerJa/pyret-lang/pkg/term"
)

// Environment accumulates what one rule case learned from matching and is
// consumed, read-only, while instantiating that case's right-hand side: the
// captured pattern-variable bindings, the atoms allocated for fresh items,
// and one ordered list of sub-environments per ellipsis label. Environments
// form a tree: each ellipsis repetition gets its own child, chained to the
// enclosing environment for lookups.
//
// An environment never outlives a single rule application.
type Environment struct {
	parent   *Environment
	pvars    map[string]term.Term
	fresh    map[string]term.Variable
	ellipsis map[string][]*Environment
}

func NewEnvironment() *Environment {
	return &Environment{
		pvars:    make(map[string]term.Term),
		fresh:    make(map[string]term.Variable),
		ellipsis: make(map[string][]*Environment),
	}
}

// NewChild creates an environment whose lookups fall back to e. Matching
// uses one child per ellipsis repetition; instantiation uses children for
// fresh-name extensions.
func (e *Environment) NewChild() *Environment {
	child := NewEnvironment()
	child.parent = e
	return child
}

// BindPVar records a pattern-variable capture. Re-binding a name already
// captured anywhere in the current application succeeds only when the new
// term is structurally equal to the old one.
func (e *Environment) BindPVar(name string, t term.Term) bool {
	if prev, ok := e.LookupPVar(name); ok {
		return term.Same(prev, t)
	}
	e.pvars[name] = t
	return true
}

func (e *Environment) LookupPVar(name string) (term.Term, bool) {
	for env := e; env != nil; env = env.parent {
		if t, ok := env.pvars[name]; ok {
			return t, true
		}
	}
	return nil, false
}

func (e *Environment) BindFresh(name string, v term.Variable) {
	e.fresh[name] = v
}

func (e *Environment) LookupFresh(name string) (term.Variable, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.fresh[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// SetEllipsis records the ordered per-repetition sub-environments for a
// label. A label is recorded at most once per case; a second recording
// reports failure so the matcher can flag the duplicate.
func (e *Environment) SetEllipsis(label string, subs []*Environment) bool {
	if _, ok := e.Ellipsis(label); ok {
		return false
	}
	e.ellipsis[label] = subs
	return true
}

func (e *Environment) Ellipsis(label string) ([]*Environment, bool) {
	for env := e; env != nil; env = env.parent {
		if subs, ok := env.ellipsis[label]; ok {
			return subs, true
		}
	}
	return nil, false
}

// overlay returns a view in which sub's bindings take precedence and every
// other lookup falls back to e. The underlying maps are shared, not copied.
func (e *Environment) overlay(sub *Environment) *Environment {
	return &Environment{
		parent:   e,
		pvars:    sub.pvars,
		fresh:    sub.fresh,
		ellipsis: sub.ellipsis,
	}
}
