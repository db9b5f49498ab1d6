package term

import (
	"fmt"
	"sort"
)

// FreePVars returns the set of pattern-variable names a pattern binds or
// references. Fresh names declared by a p-fresh/p-capture are removed from
// the free set of its body; they live in the fresh map, not the pattern
// variable map. A tag's lhs/rhs annotation patterns belong to another rule
// case and are opaque here; only its body contributes.
func FreePVars(p Pattern) map[string]bool {
	free := make(map[string]bool)
	freePVars(p, free)
	return free
}

func freePVars(p Pattern, free map[string]bool) {
	switch patt := p.(type) {
	case *PPrim, *PDrop:
	case *PCore:
		freePVarsAll(patt.Args, free)
	case *PSurf:
		freePVarsAll(patt.Args, free)
	case *PAux:
		freePVarsAll(patt.Args, free)
	case *PList:
		freePVarsSeq(patt.Seq, free)
	case *POption:
		if patt.Item != nil {
			freePVars(patt.Item, free)
		}
	case *PTag:
		freePVars(patt.Body, free)
	case *PPVar:
		free[patt.Name] = true
	case *PVar:
		free[patt.Name] = true
	case *PMeta:
		freePVarsAll(patt.Args, free)
	case *PBiject:
		freePVars(patt.Body, free)
	case *PFresh:
		freePVarsUnderFresh(patt.Fresh, patt.Body, free)
	case *PCapture:
		freePVarsUnderFresh(patt.Fresh, patt.Body, free)
	default:
		panic(fmt.Sprintf("unknown pattern variant: %T", p))
	}
}

func freePVarsAll(patts []Pattern, free map[string]bool) {
	for _, p := range patts {
		freePVars(p, free)
	}
}

func freePVarsSeq(seq SeqPattern, free map[string]bool) {
	switch s := seq.(type) {
	case *SeqEmpty:
	case *SeqCons:
		freePVars(s.First, free)
		freePVarsSeq(s.Rest, free)
	case *SeqEllipsis:
		freePVars(s.Item, free)
	case *SeqEllipsisList:
		freePVarsAll(s.Items, free)
	default:
		panic(fmt.Sprintf("unknown sequence pattern variant: %T", seq))
	}
}

func freePVarsUnderFresh(fresh []FreshItem, body Pattern, free map[string]bool) {
	inner := make(map[string]bool)
	freePVars(body, inner)
	for _, item := range fresh {
		delete(inner, freshItemName(item))
	}
	for name := range inner {
		free[name] = true
	}
}

func freshItemName(item FreshItem) string {
	for {
		switch f := item.(type) {
		case *FreshName:
			return f.Name
		case *FreshEllipsis:
			item = f.Item
		default:
			panic(fmt.Sprintf("unknown fresh item variant: %T", item))
		}
	}
}

// DroppedPVars returns, sorted, the pattern variables a rule case binds on
// its left-hand side but never uses on its right-hand side. Rule-authoring
// tools flag non-empty results; the engine itself accepts such rules.
func DroppedPVars(lhs, rhs Pattern) []string {
	bound := FreePVars(lhs)
	used := FreePVars(rhs)
	var dropped []string
	for name := range bound {
		if !used[name] {
			dropped = append(dropped, name)
		}
	}
	sort.Strings(dropped)
	return dropped
}
