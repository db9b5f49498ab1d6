package term

import "fmt"

// StripTags removes every resugaring annotation from a term, yielding the
// plain term a downstream pass can consume when it does not need
// provenance. Focus marks are kept.
func StripTags(t Term) Term {
	switch node := t.(type) {
	case *PrimTerm, *VarTerm, *ValueTerm:
		return node
	case *CoreTerm:
		return &CoreTerm{Op: node.Op, Args: stripTagsAll(node.Args)}
	case *SurfTerm:
		return &SurfTerm{Op: node.Op, FromUser: node.FromUser, Args: stripTagsAll(node.Args)}
	case *AuxTerm:
		return &AuxTerm{Op: node.Op, Args: stripTagsAll(node.Args)}
	case *ListTerm:
		return &ListTerm{Items: stripTagsAll(node.Items)}
	case *OptionTerm:
		if node.Item == nil {
			return &OptionTerm{}
		}
		return &OptionTerm{Item: StripTags(node.Item)}
	case *TagTerm:
		return StripTags(node.Body)
	case *FocusTerm:
		return &FocusTerm{Body: StripTags(node.Body)}
	}
	panic(fmt.Sprintf("unknown term variant: %T", t))
}

func stripTagsAll(ts []Term) []Term {
	out := make([]Term, len(ts))
	for i, t := range ts {
		out[i] = StripTags(t)
	}
	return out
}

// SkipTags unwraps the tag annotations at the root of a term, if any,
// leaving nested tags in place. The matcher uses this to see through
// provenance.
func SkipTags(t Term) Term {
	for {
		tagged, ok := t.(*TagTerm)
		if !ok {
			return t
		}
		t = tagged.Body
	}
}

// TagInfo is one resugaring annotation found in a term, with the path of
// operator names from the root to the tagged node.
type TagInfo struct {
	Lhs  Pattern
	Rhs  Pattern
	Path []string
}

// CollectTags lists the resugaring annotations present in a term in
// pre-order, for diagnostics tooling.
func CollectTags(t Term) []TagInfo {
	var out []TagInfo
	collectTags(t, nil, &out)
	return out
}

func collectTags(t Term, path []string, out *[]TagInfo) {
	switch node := t.(type) {
	case *PrimTerm, *VarTerm, *ValueTerm:
	case *CoreTerm:
		collectTagsAll(node.Args, append(path, node.Op), out)
	case *SurfTerm:
		collectTagsAll(node.Args, append(path, node.Op), out)
	case *AuxTerm:
		collectTagsAll(node.Args, append(path, node.Op), out)
	case *ListTerm:
		collectTagsAll(node.Items, path, out)
	case *OptionTerm:
		if node.Item != nil {
			collectTags(node.Item, path, out)
		}
	case *TagTerm:
		info := TagInfo{Lhs: node.Lhs, Rhs: node.Rhs, Path: append([]string(nil), path...)}
		*out = append(*out, info)
		collectTags(node.Body, path, out)
	case *FocusTerm:
		collectTags(node.Body, path, out)
	default:
		panic(fmt.Sprintf("unknown term variant: %T", t))
	}
}

func collectTagsAll(ts []Term, path []string, out *[]TagInfo) {
	for _, t := range ts {
		collectTags(t, path, out)
	}
}
