package term

import (
	"fmt"
	"strings"
)

// String renders a term in a compact s-expression form for diagnostics.
// This is a debug aid, not a pretty-printer.
func String(t Term) string {
	var sb strings.Builder
	writeTerm(&sb, t)
	return sb.String()
}

func writeTerm(sb *strings.Builder, t Term) {
	switch node := t.(type) {
	case *PrimTerm:
		sb.WriteString(node.Prim.PrimString())
	case *CoreTerm:
		writeNode(sb, "core", node.Op, node.Args)
	case *SurfTerm:
		kind := "surf"
		if node.FromUser {
			kind = "surf!"
		}
		writeNode(sb, kind, node.Op, node.Args)
	case *AuxTerm:
		writeNode(sb, "aux", node.Op, node.Args)
	case *VarTerm:
		sb.WriteString(node.Var.VarName())
	case *ListTerm:
		sb.WriteString("[")
		for i, item := range node.Items {
			if i > 0 {
				sb.WriteString(" ")
			}
			writeTerm(sb, item)
		}
		sb.WriteString("]")
	case *OptionTerm:
		if node.Item == nil {
			sb.WriteString("(none)")
		} else {
			sb.WriteString("(some ")
			writeTerm(sb, node.Item)
			sb.WriteString(")")
		}
	case *TagTerm:
		sb.WriteString("(tag ")
		writeTerm(sb, node.Body)
		sb.WriteString(")")
	case *FocusTerm:
		sb.WriteString("(focus ")
		writeTerm(sb, node.Body)
		sb.WriteString(")")
	case *ValueTerm:
		fmt.Fprintf(sb, "(value %v)", node.Value)
	default:
		panic(fmt.Sprintf("unknown term variant: %T", t))
	}
}

func writeNode(sb *strings.Builder, kind, op string, args []Term) {
	sb.WriteString("(")
	sb.WriteString(kind)
	sb.WriteString(" ")
	sb.WriteString(op)
	for _, arg := range args {
		sb.WriteString(" ")
		writeTerm(sb, arg)
	}
	sb.WriteString(")")
}

// PatternString renders a pattern in a compact s-expression form for
// diagnostics.
func PatternString(p Pattern) string {
	var sb strings.Builder
	writePattern(&sb, p)
	return sb.String()
}

func writePattern(sb *strings.Builder, p Pattern) {
	switch patt := p.(type) {
	case *PPrim:
		sb.WriteString(patt.Prim.PrimString())
	case *PCore:
		writePatternNode(sb, "core", patt.Op, patt.Args)
	case *PSurf:
		writePatternNode(sb, "surf", patt.Op, patt.Args)
	case *PAux:
		writePatternNode(sb, "aux", patt.Op, patt.Args)
	case *PList:
		sb.WriteString("[")
		writeSeq(sb, patt.Seq, true)
		sb.WriteString("]")
	case *POption:
		if patt.Item == nil {
			sb.WriteString("(none)")
		} else {
			sb.WriteString("(some ")
			writePattern(sb, patt.Item)
			sb.WriteString(")")
		}
	case *PTag:
		sb.WriteString("(tag ")
		writePattern(sb, patt.Body)
		sb.WriteString(")")
	case *PPVar:
		sb.WriteString("{")
		sb.WriteString(patt.Name)
		if len(patt.Labels) > 0 {
			fmt.Fprintf(sb, " @%s", strings.Join(patt.Labels, ","))
		}
		if patt.Type != "" {
			fmt.Fprintf(sb, " :: %s", patt.Type)
		}
		sb.WriteString("}")
	case *PDrop:
		sb.WriteString("_")
		if patt.Type != "" {
			fmt.Fprintf(sb, " :: %s", patt.Type)
		}
	case *PVar:
		sb.WriteString(patt.Name)
	case *PMeta:
		writePatternNode(sb, "meta", patt.Op, patt.Args)
	case *PBiject:
		sb.WriteString("(biject ")
		sb.WriteString(patt.Op)
		sb.WriteString(" ")
		writePattern(sb, patt.Body)
		sb.WriteString(")")
	case *PFresh:
		writeFreshNode(sb, "fresh", patt.Fresh, patt.Body)
	case *PCapture:
		writeFreshNode(sb, "capture", patt.Fresh, patt.Body)
	default:
		panic(fmt.Sprintf("unknown pattern variant: %T", p))
	}
}

func writePatternNode(sb *strings.Builder, kind, op string, args []Pattern) {
	sb.WriteString("(")
	sb.WriteString(kind)
	sb.WriteString(" ")
	sb.WriteString(op)
	for _, arg := range args {
		sb.WriteString(" ")
		writePattern(sb, arg)
	}
	sb.WriteString(")")
}

func writeSeq(sb *strings.Builder, seq SeqPattern, first bool) {
	switch s := seq.(type) {
	case *SeqEmpty:
	case *SeqCons:
		if !first {
			sb.WriteString(" ")
		}
		writePattern(sb, s.First)
		writeSeq(sb, s.Rest, false)
	case *SeqEllipsis:
		if !first {
			sb.WriteString(" ")
		}
		writePattern(sb, s.Item)
		fmt.Fprintf(sb, " ...%s", s.Label)
	case *SeqEllipsisList:
		for i, item := range s.Items {
			if !first || i > 0 {
				sb.WriteString(" ")
			}
			writePattern(sb, item)
		}
		fmt.Fprintf(sb, " ...!%s", s.Label)
	default:
		panic(fmt.Sprintf("unknown sequence pattern variant: %T", seq))
	}
}

func writeFreshNode(sb *strings.Builder, kind string, fresh []FreshItem, body Pattern) {
	sb.WriteString("(")
	sb.WriteString(kind)
	sb.WriteString(" (")
	for i, item := range fresh {
		if i > 0 {
			sb.WriteString(" ")
		}
		writeFreshItem(sb, item)
	}
	sb.WriteString(") ")
	writePattern(sb, body)
	sb.WriteString(")")
}

func writeFreshItem(sb *strings.Builder, item FreshItem) {
	switch f := item.(type) {
	case *FreshName:
		sb.WriteString(f.Name)
	case *FreshEllipsis:
		writeFreshItem(sb, f.Item)
		fmt.Fprintf(sb, " ...%s", f.Label)
	default:
		panic(fmt.Sprintf("unknown fresh item variant: %T", item))
	}
}
