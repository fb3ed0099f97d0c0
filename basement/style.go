package basement

import (
	"strconv"

	"github.com/thorstone137/frankentui-sub012/tui"
)

// Style is the resolved attribute/color state for a run of markup text,
// expressed directly in the core's own cell types rather than an
// intermediate ANSI escape string: a Flatten pass hands these straight to
// a widgets.Span without any SGR parsing round-trip.
type Style struct {
	Bold, Dim, Italic, Underline, Strike, Reverse, Blink, Hidden bool
	Fg, Bg                                                       tui.Color
	HasFg, HasBg                                                 bool
}

// Merge layers child over s: boolean attributes OR together, and a color
// child sets (HasFg/HasBg) overrides the parent's. Used when flattening a
// NodeStyle nested inside another NodeStyle, e.g. "**bold __and under__**".
func (s Style) Merge(child Style) Style {
	out := s
	out.Bold = out.Bold || child.Bold
	out.Dim = out.Dim || child.Dim
	out.Italic = out.Italic || child.Italic
	out.Underline = out.Underline || child.Underline
	out.Strike = out.Strike || child.Strike
	out.Reverse = out.Reverse || child.Reverse
	out.Blink = out.Blink || child.Blink
	out.Hidden = out.Hidden || child.Hidden
	if child.HasFg {
		out.Fg, out.HasFg = child.Fg, true
	}
	if child.HasBg {
		out.Bg, out.HasBg = child.Bg, true
	}
	return out
}

// namedColor resolves a markup color token (one of a handful of ANSI-ish
// names, or a bare "rrggbb" hex triplet) to a tui.Color. The empty string,
// or an unrecognized name, reports ok=false.
func namedColor(name string) (tui.Color, bool) {
	switch name {
	case "black":
		return tui.RGB(0, 0, 0), true
	case "red":
		return tui.RGB(205, 49, 49), true
	case "green":
		return tui.RGB(13, 188, 121), true
	case "yellow":
		return tui.RGB(229, 229, 16), true
	case "blue":
		return tui.RGB(36, 114, 200), true
	case "magenta":
		return tui.RGB(188, 63, 188), true
	case "cyan":
		return tui.RGB(17, 168, 205), true
	case "white":
		return tui.RGB(229, 229, 229), true
	case "gray", "grey":
		return tui.RGB(102, 102, 102), true
	}
	return parseHexColor(name)
}

func parseHexColor(s string) (tui.Color, bool) {
	if len(s) != 6 {
		return tui.Color{}, false
	}
	var v [3]uint64
	for i := 0; i < 3; i++ {
		n, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return tui.Color{}, false
		}
		v[i] = n
	}
	return tui.RGB(uint8(v[0]), uint8(v[1]), uint8(v[2])), true
}
