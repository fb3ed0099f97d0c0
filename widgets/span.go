// Package widgets demonstrates the core tui engine being driven by a
// client library: markup parsing (adapted from basement) and syntax
// highlighting (via chroma) both resolve down to plain tui.Cell writes,
// exactly the "widgets are clients of the core" boundary the render
// kernel draws around itself.
package widgets

import "github.com/thorstone137/frankentui-sub012/tui"

// Span is one run of text sharing a single style, the common currency
// both the markup renderer and the syntax highlighter produce before
// writing cells into a Buffer.
type Span struct {
	Text  string
	Fg    tui.Color
	Bg    tui.Color
	Attrs tui.AttrFlags
}

// DrawSpans writes spans left to right on row y starting at column x,
// clipped at maxX (exclusive) via PrintTextClipped, and returns the column
// immediately after the last cell written. It does not wrap: text past
// maxX is dropped, and an embedded newline is written as a cell like any
// other rune rather than starting a new row.
func DrawSpans(frame *tui.Frame, x, y int, spans []Span, maxX int) int {
	buf := frame.Buffer()
	cx := x
	for _, sp := range spans {
		if cx >= maxX {
			break
		}
		pen := tui.EmptyCell().WithFg(sp.Fg).WithBg(sp.Bg).WithAttrs(sp.Attrs)
		before := cx
		buf.PrintTextClipped(cx, y, sp.Text, pen, maxX)
		cx += spanAdvance(sp.Text, maxX-before)
	}
	return cx
}

// spanAdvance estimates how many columns PrintTextClipped consumed; it
// mirrors PrintTextClipped's own width accounting closely enough for
// sequential spans to lay out without overlap; exact edge cases (a span
// truncated mid-grapheme) are rare enough for a widget-layer helper to
// approximate rather than duplicate Buffer's internals for.
func spanAdvance(s string, budget int) int {
	n := 0
	for _, r := range s {
		w := 1
		if r > 0xFFFF || (r >= 0x1100 && r <= 0x115F) {
			w = 2
		}
		if n+w > budget {
			break
		}
		n += w
	}
	return n
}
