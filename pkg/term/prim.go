package term

import (
	"fmt"
	"strconv"

	"github.com/SeuperHakkerJa/pyret-lang/pkg/common"
)

// Prim is a literal leaf: string, number, boolean or source location.
type Prim interface {
	primLeaf()
	PrimString() string
}

type StrPrim struct{ Value string }

type NumPrim struct{ Value float64 }

type BoolPrim struct{ Value bool }

type LocPrim struct{ Value common.Loc }

func (p *StrPrim) primLeaf()  {}
func (p *NumPrim) primLeaf()  {}
func (p *BoolPrim) primLeaf() {}
func (p *LocPrim) primLeaf()  {}

func (p *StrPrim) PrimString() string { return strconv.Quote(p.Value) }

func (p *NumPrim) PrimString() string { return strconv.FormatFloat(p.Value, 'g', -1, 64) }

func (p *BoolPrim) PrimString() string { return strconv.FormatBool(p.Value) }

func (p *LocPrim) PrimString() string { return p.Value.LocString() }

// SamePrim compares two literal leaves by value.
func SamePrim(x, y Prim) bool {
	switch xp := x.(type) {
	case *StrPrim:
		yp, ok := y.(*StrPrim)
		return ok && xp.Value == yp.Value
	case *NumPrim:
		yp, ok := y.(*NumPrim)
		return ok && xp.Value == yp.Value
	case *BoolPrim:
		yp, ok := y.(*BoolPrim)
		return ok && xp.Value == yp.Value
	case *LocPrim:
		yp, ok := y.(*LocPrim)
		return ok && common.SameLoc(xp.Value, yp.Value)
	}
	panic(fmt.Sprintf("unknown prim variant: %T", x))
}
