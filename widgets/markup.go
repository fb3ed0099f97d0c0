package widgets

import (
	"github.com/thorstone137/frankentui-sub012/basement"
	"github.com/thorstone137/frankentui-sub012/tui"
)

// ParseMarkup runs basement's markup parser (headers, bold, italic,
// underline, strike, inline color, horizontal rules, lists, quotes, code
// fences) over text and maps the resulting Runs onto Spans the core's
// Buffer can draw directly.
func ParseMarkup(text string) []Span {
	return spansFromRuns(basement.Render(text))
}

// ParseMarkupArgs is ParseMarkup, but each %v hole in text is replaced by
// the corresponding element of args.
func ParseMarkupArgs(text string, args ...string) []Span {
	return spansFromRuns(basement.RenderArgs(text, args...))
}

func spansFromRuns(runs []basement.Run) []Span {
	spans := make([]Span, 0, len(runs))
	for _, r := range runs {
		spans = append(spans, Span{
			Text:  r.Text,
			Fg:    styleColor(r.Style.Fg, r.Style.HasFg),
			Bg:    styleColor(r.Style.Bg, r.Style.HasBg),
			Attrs: styleAttrs(r.Style),
		})
	}
	return spans
}

func styleColor(c tui.Color, has bool) tui.Color {
	if has {
		return c
	}
	return tui.DefaultColor()
}

func styleAttrs(s basement.Style) tui.AttrFlags {
	var a tui.AttrFlags
	if s.Bold {
		a |= tui.AttrBold
	}
	if s.Dim {
		a |= tui.AttrDim
	}
	if s.Italic {
		a |= tui.AttrItalic
	}
	if s.Underline {
		a |= tui.AttrUnderline
	}
	if s.Blink {
		a |= tui.AttrBlink
	}
	if s.Reverse {
		a |= tui.AttrReverse
	}
	if s.Hidden {
		a |= tui.AttrHidden
	}
	if s.Strike {
		a |= tui.AttrStrikethrough
	}
	return a
}
