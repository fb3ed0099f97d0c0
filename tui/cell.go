package tui

import (
	"unicode/utf8"

	"github.com/unilibs/uniwidth"
)

// AttrFlags is a bitmask of cell rendering attributes, mirroring the
// flag-per-bit style used across the example corpus for terminal cell
// attributes (bold, dim, italic, ...).
type AttrFlags uint16

const (
	AttrBold AttrFlags = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
	AttrHidden
	AttrStrikethrough
)

// Has reports whether all bits in want are set.
func (a AttrFlags) Has(want AttrFlags) bool { return a&want == want }

// Color is a 24-bit RGB color, or the "default pen" sentinel when Default
// is true. Default colors never need an SGR color parameter: they are
// reached via the bare reset/39/49 codes.
type Color struct {
	R, G, B uint8
	Default bool
}

// DefaultColor is the terminal's ambient foreground/background color.
func DefaultColor() Color { return Color{Default: true} }

// RGB builds an opaque true-color value.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// Equal compares two colors for bit-identity (used by bits_eq, I-CELL-3).
func (c Color) Equal(o Color) bool {
	if c.Default || o.Default {
		return c.Default == o.Default
	}
	return c.R == o.R && c.G == o.G && c.B == o.B
}

// contentKind tags what a Cell's content slot holds.
type contentKind uint8

const (
	contentEmpty contentKind = iota
	contentInline
	contentPool
	contentContinuation
)

// maxInlineBytes bounds content that can be stored without touching the
// grapheme pool (spec §3: "inline grapheme (≤4 UTF-8 bytes)").
const maxInlineBytes = 4

// Cell is one character-grid position. The struct is kept small (a handful
// of machine words) in the spirit of the ≤16-byte budget in spec.md §3;
// Go's alignment rules make an exact 16-byte packing impractical without
// unsafe tricks we don't want in a rendering hot path, so this is a
// best-effort compact layout rather than a bit-for-bit one.
type Cell struct {
	kind      contentKind
	inlineLen uint8
	inline    [maxInlineBytes]byte
	poolID    uint32

	width uint8 // display width of the content: 0, 1, or 2

	Fg, Bg         Color
	Attrs          AttrFlags
	HyperlinkID    uint32 // 24-bit index into the per-frame link table; 0 = no link
	UnderlineColor Color
	hasULColor     bool
}

// EmptyCell is the zero-value cell: blank, default colors, no attributes.
func EmptyCell() Cell {
	return Cell{Fg: DefaultColor(), Bg: DefaultColor()}
}

// continuationCell marks the tail half of a wide grapheme (I-CELL-1). It
// carries no independent content or width of its own.
func continuationCell(head Cell) Cell {
	return Cell{kind: contentContinuation, Fg: head.Fg, Bg: head.Bg, Attrs: head.Attrs,
		HyperlinkID: head.HyperlinkID, UnderlineColor: head.UnderlineColor, hasULColor: head.hasULColor}
}

// IsEmpty reports whether the cell has no visible content.
func (c Cell) IsEmpty() bool { return c.kind == contentEmpty }

// IsContinuation reports whether c is the tail half of a wide grapheme.
func (c Cell) IsContinuation() bool { return c.kind == contentContinuation }

// Width returns the display width of the cell's content (0, 1 or 2).
// Continuation cells report width 0: they contribute no independent
// column advance of their own (the head already accounted for both).
func (c Cell) Width() int {
	if c.kind == contentContinuation {
		return 0
	}
	return int(c.width)
}

// Content returns the cell's inline text, if any (pool-backed content
// requires a *Pool to resolve and is read via Buffer.CellText).
func (c Cell) Content() (string, bool) {
	if c.kind != contentInline {
		return "", false
	}
	return string(c.inline[:c.inlineLen]), true
}

func widthOf(r rune) int {
	w := uniwidth.RuneWidth(r)
	if w < 0 {
		return 0
	}
	if w > 2 {
		return 2
	}
	return w
}

// FromChar builds a cell from a single rune with default pen. Width is
// computed from the Unicode width tables (via uniwidth); width-2 runes
// produce head-cell behavior at the call site (Buffer.Set pairs them with
// a continuation).
func FromChar(r rune) Cell {
	c := EmptyCell()
	n := utf8.RuneLen(r)
	if r == 0 {
		return c
	}
	w := widthOf(r)
	if n > 0 && n <= maxInlineBytes {
		c.kind = contentInline
		c.inlineLen = uint8(utf8.EncodeRune(c.inline[:], r))
		c.width = uint8(w)
		return c
	}
	// Runes that somehow need more than 4 UTF-8 bytes never occur (max is
	// 4 for valid runes), but guard defensively rather than silently drop.
	c.kind = contentInline
	c.inlineLen = uint8(copy(c.inline[:], string(utf8.RuneError)))
	c.width = 1
	return c
}

// FromGrapheme builds a cell from a (possibly multi-codepoint) grapheme
// cluster with an explicit display width. Clusters that fit in
// maxInlineBytes are stored inline; longer ones are interned into pool
// and referenced by id.
func FromGrapheme(s string, width int, pool *Pool) Cell {
	c := EmptyCell()
	if width < 0 {
		width = 0
	}
	if width > 2 {
		width = 2
	}
	c.width = uint8(width)
	if len(s) <= maxInlineBytes {
		c.kind = contentInline
		c.inlineLen = uint8(copy(c.inline[:], s))
		return c
	}
	id, ok := pool.Intern(s, width)
	if !ok {
		// Pool exhausted (capacity-exceeded, §7): fall back to a single
		// replacement-character cell rather than losing the slot entirely.
		return FromChar(utf8.RuneError)
	}
	c.kind = contentPool
	c.poolID = id
	return c
}

// WithFg returns a copy of c with the foreground color replaced.
func (c Cell) WithFg(fg Color) Cell { c.Fg = fg; return c }

// WithBg returns a copy of c with the background color replaced.
func (c Cell) WithBg(bg Color) Cell { c.Bg = bg; return c }

// WithAttrs returns a copy of c with the attribute bitset replaced.
func (c Cell) WithAttrs(a AttrFlags) Cell { c.Attrs = a; return c }

// WithUnderlineColor returns a copy of c with an explicit underline color.
func (c Cell) WithUnderlineColor(col Color) Cell {
	c.UnderlineColor = col
	c.hasULColor = true
	return c
}

// WithHyperlink returns a copy of c tagged with the given per-frame link id.
func (c Cell) WithHyperlink(id uint32) Cell { c.HyperlinkID = id & 0xFFFFFF; return c }

// BitsEq is the sole equality used by diffing (I-CELL-3): content, colors,
// flags, link id, and underline color must all match.
func BitsEq(a, b Cell) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case contentInline:
		if a.inlineLen != b.inlineLen || a.inline != b.inline {
			return false
		}
	case contentPool:
		if a.poolID != b.poolID {
			return false
		}
	}
	if a.width != b.width {
		return false
	}
	if !a.Fg.Equal(b.Fg) || !a.Bg.Equal(b.Bg) {
		return false
	}
	if a.Attrs != b.Attrs {
		return false
	}
	if a.HyperlinkID != b.HyperlinkID {
		return false
	}
	if a.hasULColor != b.hasULColor {
		return false
	}
	if a.hasULColor && !a.UnderlineColor.Equal(b.UnderlineColor) {
		return false
	}
	return true
}
