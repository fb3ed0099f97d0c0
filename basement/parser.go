package basement

import (
	"regexp"
	"strings"
)

var (
	// Block regexes
	headerBlockRe = regexp.MustCompile(`^(\#{1,6})[ \t]+(.+)`)
	hrBlockRe     = regexp.MustCompile(`^(\*{3,}|-{3,}|_{3,})$`)
	listBlockRe   = regexp.MustCompile(`^([ \t]*)([*+-]|\d+\.)[ \t]+(.+)`)
	quoteBlockRe  = regexp.MustCompile(`^>[ \t]*(.+)`)
	codeFenceRe   = regexp.MustCompile("^```(.*)")

	// Inline regex: a %v hole, **bold**, *italic*, __underline__,
	// ~~strike~~, or a #color(...)/!#color(...) foreground/background span.
	inlineTokenRe = regexp.MustCompile(`(%v)|(\*\*.+?\*\*)|(\*.+?\*)|(__.+?__)|(~~.+?~~)|(!?#[a-zA-Z0-9]{3,8}\(.+?\))`)
)

// ParseAST parses input into a document tree: one child of the root per
// line (paragraph, header, list run, blockquote, horizontal rule, or
// fenced code block), with inline styling resolved within each.
func ParseAST(input string) *Node {
	root := NewNode(NodeRoot)
	lines := strings.Split(input, "\n")

	holes := 0
	var currentList *Node
	var inCodeBlock bool
	var codeBlockLang string
	var codeBlockContent strings.Builder

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		// Fenced code blocks are stateful: everything between the opening
		// and closing fence is kept verbatim, with no inline parsing.
		if matches := codeFenceRe.FindStringSubmatch(trimmed); matches != nil {
			if inCodeBlock {
				node := NewNode(NodeCodeBlock)
				node.Content = codeBlockContent.String()
				node.Lang = codeBlockLang
				root.AddChild(node)
				codeBlockContent.Reset()
				inCodeBlock = false
				codeBlockLang = ""
			} else {
				inCodeBlock = true
				codeBlockLang = strings.TrimSpace(matches[1])
			}
			continue
		}
		if inCodeBlock {
			codeBlockContent.WriteString(line + "\n")
			continue
		}

		// Consecutive list-item lines are grouped under one NodeList.
		if matches := listBlockRe.FindStringSubmatch(line); matches != nil {
			if currentList == nil {
				currentList = NewNode(NodeList)
				root.AddChild(currentList)
			}
			item := NewNode(NodeListItem)
			item.Children = parseInline(matches[3], &holes)
			currentList.AddChild(item)
			continue
		}
		if trimmed != "" {
			currentList = nil
		}

		if matches := headerBlockRe.FindStringSubmatch(line); matches != nil {
			level := len(matches[1])
			style := Style{Bold: true}
			if level == 1 {
				style.Reverse = true
			} else if level == 2 {
				style.Underline = true
			}
			node := NewNode(NodeHeader)
			node.Style = style
			node.Children = parseInline(matches[2], &holes)
			root.AddChild(node)
			continue
		}

		if hrBlockRe.MatchString(trimmed) {
			root.AddChild(NewNode(NodeHR))
			continue
		}

		if matches := quoteBlockRe.FindStringSubmatch(line); matches != nil {
			node := NewNode(NodeQuote)
			node.Children = parseInline(matches[1], &holes)
			root.AddChild(node)
			continue
		}

		if trimmed == "" {
			root.AddChild(NewNode(NodeText))
			continue
		}

		node := NewNode(NodeBlock)
		node.Children = parseInline(line, &holes)
		root.AddChild(node)
	}

	return root
}

// parseInline parses one line's worth of inline style/color/hole tokens.
// holes counts %v occurrences across the whole document so each NodeHole
// gets the document-wide argument index a RenderArgs caller expects.
func parseInline(text string, holes *int) []*Node {
	var nodes []*Node

	lastIndex := 0
	matches := inlineTokenRe.FindAllStringIndex(text, -1)

	for _, match := range matches {
		start, end := match[0], match[1]

		if start > lastIndex {
			nodes = append(nodes, &Node{Type: NodeText, Content: text[lastIndex:start]})
		}

		token := text[start:end]

		switch {
		case token == "%v":
			nodes = append(nodes, &Node{Type: NodeHole, HoleID: *holes})
			*holes++
		case strings.HasPrefix(token, "**"):
			nodes = append(nodes, styleWrap(Style{Bold: true}, token[2:len(token)-2], holes))
		case strings.HasPrefix(token, "__"):
			nodes = append(nodes, styleWrap(Style{Underline: true}, token[2:len(token)-2], holes))
		case strings.HasPrefix(token, "~~"):
			nodes = append(nodes, styleWrap(Style{Strike: true}, token[2:len(token)-2], holes))
		case strings.HasPrefix(token, "*"):
			nodes = append(nodes, styleWrap(Style{Italic: true}, token[1:len(token)-1], holes))
		case strings.Contains(token, "#"):
			nodes = append(nodes, colorWrap(token, holes))
		}

		lastIndex = end
	}

	if lastIndex < len(text) {
		nodes = append(nodes, &Node{Type: NodeText, Content: text[lastIndex:]})
	}

	return nodes
}

func styleWrap(style Style, content string, holes *int) *Node {
	node := NewNode(NodeStyle)
	node.Style = style
	node.Children = parseInline(content, holes)
	return node
}

func colorWrap(token string, holes *int) *Node {
	isBg := strings.HasPrefix(token, "!")
	startParen := strings.Index(token, "(")
	endParen := strings.LastIndex(token, ")")
	if startParen < 0 || endParen <= startParen {
		return &Node{Type: NodeText, Content: token}
	}

	nameStart := 1
	if isBg {
		nameStart = 2
	}
	colorName := token[nameStart:startParen]
	content := token[startParen+1 : endParen]

	style := Style{}
	if c, ok := namedColor(colorName); ok {
		if isBg {
			style.Bg, style.HasBg = c, true
		} else {
			style.Fg, style.HasFg = c, true
		}
	}
	return styleWrap(style, content, holes)
}
