package widgets

import (
	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"

	"github.com/thorstone137/frankentui-sub012/tui"
)

// Highlight tokenizes code as lang using chroma and returns one Span per
// token, carrying chroma's own style resolution (monokai) through as true
// color, so the presenter's capability-driven downsample is what decides
// how much of it actually reaches the terminal.
func Highlight(code, lang string) []Span {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return []Span{{Text: code, Attrs: tui.AttrDim}}
	}

	var spans []Span
	for _, token := range iterator.Tokens() {
		entry := style.Get(token.Type)
		sp := Span{Text: token.Value}
		if entry.Bold == chroma.Yes {
			sp.Attrs |= tui.AttrBold
		}
		if entry.Underline == chroma.Yes {
			sp.Attrs |= tui.AttrUnderline
		}
		if entry.Italic == chroma.Yes {
			sp.Attrs |= tui.AttrItalic
		}
		if entry.Colour.IsSet() {
			sp.Fg = tui.RGB(entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue())
		} else {
			sp.Fg = tui.DefaultColor()
		}
		if entry.Background.IsSet() {
			sp.Bg = tui.RGB(entry.Background.Red(), entry.Background.Green(), entry.Background.Blue())
		} else {
			sp.Bg = tui.DefaultColor()
		}
		spans = append(spans, sp)
	}
	return spans
}

// HighlightBlock draws a highlighted code block starting at (x, y),
// wrapping to subsequent rows at embedded newlines, and returns the row
// immediately below the last line written.
func HighlightBlock(frame *tui.Frame, x, y int, code, lang string, maxX int) int {
	spans := Highlight(code, lang)
	row := y
	col := x
	for _, sp := range spans {
		for _, line := range splitKeepEmpty(sp.Text, '\n') {
			if line.text != "" {
				col = DrawSpans(frame, col, row, []Span{{Text: line.text, Fg: sp.Fg, Bg: sp.Bg, Attrs: sp.Attrs}}, maxX)
			}
			if line.hadNewline {
				row++
				col = x
			}
		}
	}
	if col == x {
		// The code ended with a newline: row is already the first row
		// below the last line written.
		return row
	}
	return row + 1
}

type splitLine struct {
	text       string
	hadNewline bool
}

func splitKeepEmpty(s string, sep byte) []splitLine {
	var out []splitLine
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			out = append(out, splitLine{text: s[start:i], hadNewline: true})
			start = i + 1
		}
	}
	out = append(out, splitLine{text: s[start:], hadNewline: false})
	return out
}
