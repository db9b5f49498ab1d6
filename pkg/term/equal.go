package term

import (
	"fmt"
	"reflect"
)

// Same reports structural equality of two terms. Surface from-user flags
// participate: a user-written node is not the same term as a synthesized
// one, even with equal shape.
func Same(x, y Term) bool {
	switch xt := x.(type) {
	case *PrimTerm:
		yt, ok := y.(*PrimTerm)
		return ok && SamePrim(xt.Prim, yt.Prim)
	case *CoreTerm:
		yt, ok := y.(*CoreTerm)
		return ok && xt.Op == yt.Op && sameTerms(xt.Args, yt.Args)
	case *SurfTerm:
		yt, ok := y.(*SurfTerm)
		return ok && xt.Op == yt.Op && xt.FromUser == yt.FromUser && sameTerms(xt.Args, yt.Args)
	case *AuxTerm:
		yt, ok := y.(*AuxTerm)
		return ok && xt.Op == yt.Op && sameTerms(xt.Args, yt.Args)
	case *VarTerm:
		yt, ok := y.(*VarTerm)
		return ok && SameVariable(xt.Var, yt.Var)
	case *ListTerm:
		yt, ok := y.(*ListTerm)
		return ok && sameTerms(xt.Items, yt.Items)
	case *OptionTerm:
		yt, ok := y.(*OptionTerm)
		if !ok {
			return false
		}
		if xt.Item == nil || yt.Item == nil {
			return xt.Item == nil && yt.Item == nil
		}
		return Same(xt.Item, yt.Item)
	case *TagTerm:
		yt, ok := y.(*TagTerm)
		return ok && SamePattern(xt.Lhs, yt.Lhs) && SamePattern(xt.Rhs, yt.Rhs) && Same(xt.Body, yt.Body)
	case *FocusTerm:
		yt, ok := y.(*FocusTerm)
		return ok && Same(xt.Body, yt.Body)
	case *ValueTerm:
		yt, ok := y.(*ValueTerm)
		return ok && reflect.DeepEqual(xt.Value, yt.Value)
	}
	panic(fmt.Sprintf("unknown term variant: %T", x))
}

func sameTerms(xs, ys []Term) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !Same(xs[i], ys[i]) {
			return false
		}
	}
	return true
}

// SamePattern reports structural equality of two patterns.
func SamePattern(x, y Pattern) bool {
	switch xp := x.(type) {
	case *PPrim:
		yp, ok := y.(*PPrim)
		return ok && SamePrim(xp.Prim, yp.Prim)
	case *PCore:
		yp, ok := y.(*PCore)
		return ok && xp.Op == yp.Op && samePatterns(xp.Args, yp.Args)
	case *PSurf:
		yp, ok := y.(*PSurf)
		return ok && xp.Op == yp.Op && samePatterns(xp.Args, yp.Args)
	case *PAux:
		yp, ok := y.(*PAux)
		return ok && xp.Op == yp.Op && samePatterns(xp.Args, yp.Args)
	case *PList:
		yp, ok := y.(*PList)
		return ok && sameSeq(xp.Seq, yp.Seq)
	case *POption:
		yp, ok := y.(*POption)
		if !ok {
			return false
		}
		if xp.Item == nil || yp.Item == nil {
			return xp.Item == nil && yp.Item == nil
		}
		return SamePattern(xp.Item, yp.Item)
	case *PTag:
		yp, ok := y.(*PTag)
		return ok && SamePattern(xp.Lhs, yp.Lhs) && SamePattern(xp.Rhs, yp.Rhs) && SamePattern(xp.Body, yp.Body)
	case *PPVar:
		yp, ok := y.(*PPVar)
		return ok && xp.Name == yp.Name && xp.Type == yp.Type && sameStrings(xp.Labels, yp.Labels)
	case *PDrop:
		yp, ok := y.(*PDrop)
		return ok && xp.Type == yp.Type
	case *PVar:
		yp, ok := y.(*PVar)
		return ok && xp.Name == yp.Name
	case *PMeta:
		yp, ok := y.(*PMeta)
		return ok && xp.Op == yp.Op && samePatterns(xp.Args, yp.Args)
	case *PBiject:
		yp, ok := y.(*PBiject)
		return ok && xp.Op == yp.Op && SamePattern(xp.Body, yp.Body)
	case *PFresh:
		yp, ok := y.(*PFresh)
		return ok && sameFresh(xp.Fresh, yp.Fresh) && SamePattern(xp.Body, yp.Body)
	case *PCapture:
		yp, ok := y.(*PCapture)
		return ok && sameFresh(xp.Fresh, yp.Fresh) && SamePattern(xp.Body, yp.Body)
	}
	panic(fmt.Sprintf("unknown pattern variant: %T", x))
}

func samePatterns(xs, ys []Pattern) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !SamePattern(xs[i], ys[i]) {
			return false
		}
	}
	return true
}

func sameStrings(xs, ys []string) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if xs[i] != ys[i] {
			return false
		}
	}
	return true
}

func sameSeq(x, y SeqPattern) bool {
	switch xs := x.(type) {
	case *SeqEmpty:
		_, ok := y.(*SeqEmpty)
		return ok
	case *SeqCons:
		ys, ok := y.(*SeqCons)
		return ok && SamePattern(xs.First, ys.First) && sameSeq(xs.Rest, ys.Rest)
	case *SeqEllipsis:
		ys, ok := y.(*SeqEllipsis)
		return ok && xs.Label == ys.Label && SamePattern(xs.Item, ys.Item)
	case *SeqEllipsisList:
		ys, ok := y.(*SeqEllipsisList)
		return ok && xs.Label == ys.Label && samePatterns(xs.Items, ys.Items)
	}
	panic(fmt.Sprintf("unknown sequence pattern variant: %T", x))
}

func sameFresh(xs, ys []FreshItem) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !sameFreshItem(xs[i], ys[i]) {
			return false
		}
	}
	return true
}

func sameFreshItem(x, y FreshItem) bool {
	switch xf := x.(type) {
	case *FreshName:
		yf, ok := y.(*FreshName)
		return ok && xf.Name == yf.Name
	case *FreshEllipsis:
		yf, ok := y.(*FreshEllipsis)
		return ok && xf.Label == yf.Label && sameFreshItem(xf.Item, yf.Item)
	}
	panic(fmt.Sprintf("unknown fresh item variant: %T", x))
}
