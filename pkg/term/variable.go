package term

import (
	"fmt"

	"github.com/SeuperHakkerJa/pyret-lang/pkg/common"
)

// Variable is either a source-written name or a synthesized atom.
type Variable interface {
	variableRef()
	VarName() string
}

// Name is an identifier written in the source (or by a surface pass).
// Two names are the same variable iff they have the same spelling.
type Name struct {
	Loc  common.Loc // Where the identifier appeared.
	Name string
}

// Atom is a synthesized identifier. The hint is only for readability;
// identity is the (hint, serial) pair. Serials are process-unique, which
// is the whole hygiene guarantee: a fresh atom can never collide with a
// source name nor with any other atom.
type Atom struct {
	Hint   string
	Serial uint64
}

func (n *Name) variableRef() {}
func (a *Atom) variableRef() {}

func (n *Name) VarName() string { return n.Name }

func (a *Atom) VarName() string { return fmt.Sprintf("%s#%d", a.Hint, a.Serial) }

// SameVariable reports whether two variables are the same binder.
// A name never equals an atom, whatever the spelling.
func SameVariable(x, y Variable) bool {
	switch xv := x.(type) {
	case *Name:
		yv, ok := y.(*Name)
		return ok && xv.Name == yv.Name
	case *Atom:
		yv, ok := y.(*Atom)
		return ok && xv.Hint == yv.Hint && xv.Serial == yv.Serial
	}
	return false
}
