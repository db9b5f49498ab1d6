package rewriter

import (
	"sync/atomic"

	"github.com/SeuperHakkerJa/pyret-lang/pkg/term"
)

// GenSym allocates the serial numbers behind synthesized atoms. Serials are
// unique for the lifetime of the counter, which is the entire hygiene
// guarantee; the increment is atomic so rewrites of independent terms may
// share one counter.
type GenSym struct {
	counter atomic.Uint64
}

func NewGenSym() *GenSym {
	return &GenSym{}
}

// FreshAtom allocates an atom carrying the given readable hint and the next
// serial.
func (g *GenSym) FreshAtom(hint string) *term.Atom {
	return &term.Atom{Hint: hint, Serial: g.counter.Add(1)}
}
