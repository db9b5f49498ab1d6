package term

import (
	"fmt"
	"io"

	"github.com/SeuperHakkerJa/pyret-lang/pkg/common"
	asciitree "github.com/thediveo/go-asciitree"
)

type AsciiNode struct {
	Label    string      `asciitree:"label"`
	Props    []string    `asciitree:"properties"`
	Children []AsciiNode `asciitree:"children"`
}

func trimValue(value string, trimLength int) string {
	if trimLength > 0 && len(value) > trimLength {
		// Reserve space for Unicode ellipsis (1 character: "…")
		if trimLength >= 2 {
			return value[:trimLength-1] + "…"
		}
		return value[:trimLength]
	}
	return value
}

// convertToTree converts a term to an asciitree node with a readable label.
func convertToTree(t Term, options *common.PrintOptions) AsciiNode {
	switch node := t.(type) {
	case *PrimTerm:
		return AsciiNode{
			Label: "prim",
			Props: []string{fmt.Sprintf("value: %s", trimValue(node.Prim.PrimString(), options.TrimValueOnOutput))},
		}
	case *CoreTerm:
		return operatorAsciiNode("core", node.Op, nil, node.Args, options)
	case *SurfTerm:
		var props []string
		if node.FromUser {
			props = append(props, "from-user: true")
		}
		return operatorAsciiNode("surf", node.Op, props, node.Args, options)
	case *AuxTerm:
		return operatorAsciiNode("aux", node.Op, nil, node.Args, options)
	case *VarTerm:
		props := []string{fmt.Sprintf("name: %s", node.Var.VarName())}
		if name, ok := node.Var.(*Name); ok && options.IncludeLocs {
			props = append(props, fmt.Sprintf("loc: %s", name.Loc.LocString()))
		}
		return AsciiNode{Label: "var", Props: props}
	case *ListTerm:
		var children []AsciiNode
		for _, item := range node.Items {
			children = append(children, convertToTree(item, options))
		}
		return AsciiNode{
			Label:    "list",
			Props:    []string{fmt.Sprintf("length: %d", len(node.Items))},
			Children: children,
		}
	case *OptionTerm:
		if node.Item == nil {
			return AsciiNode{Label: "none"}
		}
		return AsciiNode{Label: "some", Children: []AsciiNode{convertToTree(node.Item, options)}}
	case *TagTerm:
		return AsciiNode{
			Label: "tag",
			Props: []string{
				fmt.Sprintf("lhs: %s", trimValue(PatternString(node.Lhs), options.TrimValueOnOutput)),
				fmt.Sprintf("rhs: %s", trimValue(PatternString(node.Rhs), options.TrimValueOnOutput)),
			},
			Children: []AsciiNode{convertToTree(node.Body, options)},
		}
	case *FocusTerm:
		return AsciiNode{Label: "focus", Children: []AsciiNode{convertToTree(node.Body, options)}}
	case *ValueTerm:
		return AsciiNode{
			Label: "value",
			Props: []string{fmt.Sprintf("host: %v", node.Value)},
		}
	}
	panic(fmt.Sprintf("unknown term variant: %T", t))
}

func operatorAsciiNode(kind, op string, props []string, args []Term, options *common.PrintOptions) AsciiNode {
	var children []AsciiNode
	for _, arg := range args {
		children = append(children, convertToTree(arg, options))
	}
	return AsciiNode{
		Label:    fmt.Sprintf("%s %s", kind, op),
		Props:    props,
		Children: children,
	}
}

func PrintTermAsciiTree(root Term, output io.Writer, options *common.PrintOptions) {
	fmt.Fprintln(output, asciitree.RenderFancy(convertToTree(root, options)))
}
