package basement

import "strings"

// Run is one contiguous span of rendered markup text and its resolved
// Style. A document flattens to a slice of these — the caller's own
// cell/span type maps onto Run 1:1, so no ANSI escape sequence is ever
// produced or reparsed along the way.
type Run struct {
	Text  string
	Style Style
}

// Render parses text as basement markup and flattens the resulting
// document straight to a slice of Runs.
func Render(text string) []Run {
	return flatten(ParseAST(text), nil)
}

// RenderArgs is Render, but each %v hole in text is replaced by the
// corresponding element of args (a hole past the end of args renders as
// empty text).
func RenderArgs(text string, args ...string) []Run {
	return flatten(ParseAST(text), args)
}

func flatten(root *Node, args []string) []Run {
	var runs []Run
	for i, child := range root.Children {
		if i > 0 {
			runs = append(runs, Run{Text: "\n"})
		}
		runs = append(runs, flattenNode(child, Style{}, args)...)
	}
	return runs
}

func flattenNode(n *Node, base Style, args []string) []Run {
	switch n.Type {
	case NodeText:
		if n.Content == "" {
			return nil
		}
		return []Run{{Text: n.Content, Style: base}}
	case NodeHole:
		text := ""
		if n.HoleID >= 0 && n.HoleID < len(args) {
			text = args[n.HoleID]
		}
		return []Run{{Text: text, Style: base}}
	case NodeStyle:
		return flattenChildren(n.Children, base.Merge(n.Style), args)
	case NodeBlock:
		return flattenChildren(n.Children, base, args)
	case NodeHeader:
		return flattenChildren(n.Children, base.Merge(n.Style), args)
	case NodeQuote:
		quoted := base.Merge(Style{Reverse: true})
		runs := []Run{{Text: " ", Style: quoted}}
		return append(runs, flattenChildren(n.Children, quoted, args)...)
	case NodeHR:
		return []Run{{Text: strings.Repeat("─", 72), Style: base.Merge(Style{Bold: true})}}
	case NodeCodeBlock:
		return []Run{{Text: strings.TrimSuffix(n.Content, "\n"), Style: base}}
	case NodeList:
		var runs []Run
		for i, item := range n.Children {
			if i > 0 {
				runs = append(runs, Run{Text: "\n"})
			}
			runs = append(runs, Run{Text: "• ", Style: base})
			runs = append(runs, flattenChildren(item.Children, base, args)...)
		}
		return runs
	default:
		return nil
	}
}

func flattenChildren(children []*Node, style Style, args []string) []Run {
	var runs []Run
	for _, c := range children {
		runs = append(runs, flattenNode(c, style, args)...)
	}
	return runs
}
