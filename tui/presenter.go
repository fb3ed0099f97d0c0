package tui

import (
	"bytes"
	"strconv"
)

// believedCursor tracks where the terminal's real cursor is thought to be,
// so the presenter only emits a cursor-positioning escape when the next
// write wouldn't land there on its own (ultraviolet's "believed cursor"
// trick, generalized here to the simpler rule set this presenter uses:
// always re-home with CUP unless the previous write already advanced the
// real cursor to exactly this column via plain character output).
type believedCursor struct {
	x, y  int
	valid bool
}

// pen is the believed SGR/hyperlink state of the real terminal, diffed
// against the next cell's pen so identical runs don't re-emit SGR.
type pen struct {
	fg, bg     Color
	attrs      AttrFlags
	ulColor    Color
	hasUL      bool
	linkID     uint32
	valid      bool
}

// Presenter turns a Buffer + Diff into an ANSI byte stream, maintaining
// believed cursor/pen/hyperlink state across calls so a cursor move, SGR or
// hyperlink escape is only emitted when that state changes. An SGR change
// is not minimal: writeSGR starts from a reset (ESC[0) and re-lists every
// attribute and color of the new pen, not only the ones that differ.
type Presenter struct {
	caps   Capabilities
	cur    believedCursor
	curPen pen
	links  map[uint32]string // per-frame hyperlink id -> URI table
	title  string
	titleSet bool
}

// NewPresenter creates a presenter for the given terminal capabilities.
func NewPresenter(caps Capabilities) *Presenter {
	return &Presenter{caps: caps}
}

// SetLinkTable installs the hyperlink id -> URI table for the frame about
// to be presented (cleared/replaced each frame by the caller).
func (p *Presenter) SetLinkTable(links map[uint32]string) { p.links = links }

// Reset forgets all believed state, forcing the next Present to re-home
// the cursor and re-emit SGR/hyperlink/title from scratch. Used after an
// external write (log interleaving, alt-screen transition) disturbs the
// real terminal out from under the presenter's assumptions.
func (p *Presenter) Reset() {
	p.cur = believedCursor{}
	p.curPen = pen{}
}

// sanitizeRune replaces raw control bytes (other than the ones we intentionally
// emit ourselves) with a space, so stray C0 control characters embedded in
// a Model's content can never desynchronize terminal state.
func sanitizeRune(r rune) rune {
	if r == '\x1b' || r < 0x20 || r == 0x7f {
		return ' '
	}
	return r
}

// Present writes the minimal ANSI byte sequence that transforms the
// terminal from whatever diff's "old" view showed to buf's content, for
// every position diff marks dirty, and returns it.
func (p *Presenter) Present(buf *Buffer, diff *Diff) []byte {
	var out bytes.Buffer
	if diff.Empty() {
		return nil
	}
	for _, run := range diff.Runs() {
		p.presentRun(&out, buf, run, 0)
	}
	return out.Bytes()
}

// PresentInline renders buf for an Inline/InlineAuto writer whose UI
// occupies terminal rows [anchorRow, anchorRow+height). Unlike Present, it
// walks every UI row from 0 to height-1 rather than only the dirty runs: the
// inline contract (spec.md §4.C7, "Move to UI anchor; for each UI row, emit
// erase-line, then the diffed/present bytes for that row") erases each row
// in the band, and since that erase also removes cells the diff did not
// mark, the whole row is then rewritten from buf. The diff only decides
// whether anything is written at all (an empty diff writes nothing).
func (p *Presenter) PresentInline(buf *Buffer, diff *Diff, height, anchorRow int) []byte {
	var out bytes.Buffer
	if diff.Empty() {
		return nil
	}
	for y := 0; y < height; y++ {
		p.moveCursorAbs(&out, 0, y, anchorRow)
		out.WriteString("\x1b[K")
		p.presentRun(&out, buf, Run{Y: y, X: 0, Len: buf.Width()}, anchorRow)
	}
	return out.Bytes()
}

func (p *Presenter) presentRun(out *bytes.Buffer, buf *Buffer, run Run, anchorRow int) {
	x := run.X
	for x < run.X+run.Len {
		cell := buf.Get(x, run.Y)
		if cell.IsContinuation() {
			// A continuation cell never starts a run on its own (I-CELL-1:
			// it's only reached by the head's 2-column advance), but guard
			// in case a diff run starts mid-wide-char after a resize.
			x++
			continue
		}
		p.moveCursorAbs(out, x, run.Y, anchorRow)
		p.applyPen(out, cell)
		p.writeContent(out, buf, cell)
		w := cell.Width()
		if w <= 0 {
			w = 1
		}
		p.cur.x += w
		x += w
	}
}

// moveCursorAbs emits CUP targeting terminal row y+anchorRow (0-indexed),
// eliding the escape entirely when the believed cursor is already there.
// anchorRow is 0 for AltScreen (the buffer's row 0 is the terminal's row 1)
// and the UI's terminal-row offset for Inline/InlineAuto.
func (p *Presenter) moveCursorAbs(out *bytes.Buffer, x, y, anchorRow int) {
	ty := y + anchorRow
	if p.cur.valid && p.cur.x == x && p.cur.y == ty {
		return
	}
	out.WriteString("\x1b[")
	out.WriteString(strconv.Itoa(ty + 1))
	out.WriteByte(';')
	out.WriteString(strconv.Itoa(x + 1))
	out.WriteByte('H')
	p.cur = believedCursor{x: x, y: ty, valid: true}
}

func (p *Presenter) applyPen(out *bytes.Buffer, cell Cell) {
	fg, bg := downsample(cell.Fg, p.caps), downsample(cell.Bg, p.caps)
	np := pen{fg: fg, bg: bg, attrs: cell.Attrs, ulColor: cell.UnderlineColor, hasUL: cell.hasULColor, linkID: cell.HyperlinkID, valid: true}
	if p.curPen.valid && penEqual(p.curPen, np) {
		return
	}
	p.writeSGR(out, np)
	p.writeHyperlink(out, np)
	p.curPen = np
}

func penEqual(a, b pen) bool {
	if a.attrs != b.attrs || !a.fg.Equal(b.fg) || !a.bg.Equal(b.bg) {
		return false
	}
	if a.hasUL != b.hasUL || (a.hasUL && !a.ulColor.Equal(b.ulColor)) {
		return false
	}
	return a.linkID == b.linkID
}

func (p *Presenter) writeSGR(out *bytes.Buffer, np pen) {
	out.WriteString("\x1b[0")
	if np.attrs.Has(AttrBold) {
		out.WriteString(";1")
	}
	if np.attrs.Has(AttrDim) {
		out.WriteString(";2")
	}
	if np.attrs.Has(AttrItalic) {
		out.WriteString(";3")
	}
	if np.attrs.Has(AttrUnderline) {
		out.WriteString(";4")
	}
	if np.attrs.Has(AttrBlink) {
		out.WriteString(";5")
	}
	if np.attrs.Has(AttrReverse) {
		out.WriteString(";7")
	}
	if np.attrs.Has(AttrHidden) {
		out.WriteString(";8")
	}
	if np.attrs.Has(AttrStrikethrough) {
		out.WriteString(";9")
	}
	p.writeColorSGR(out, np.fg, false)
	p.writeColorSGR(out, np.bg, true)
	if np.hasUL && !np.ulColor.Default {
		out.WriteString(";58;2;")
		out.WriteString(strconv.Itoa(int(np.ulColor.R)))
		out.WriteByte(';')
		out.WriteString(strconv.Itoa(int(np.ulColor.G)))
		out.WriteByte(';')
		out.WriteString(strconv.Itoa(int(np.ulColor.B)))
	}
	out.WriteByte('m')
}

// writeColorSGR emits the SGR color-setting suffix for c, in whatever wire
// format p.caps actually supports: 24-bit truecolor when available, an
// indexed 256-color entry when only Colors256 is, since by this point c
// has already been through downsample and a truecolor escape would be
// meaningless to a terminal that only understands the 256-color palette.
func (p *Presenter) writeColorSGR(out *bytes.Buffer, c Color, bg bool) {
	if c.Default {
		return
	}
	switch {
	case p.caps.TrueColor:
		if bg {
			out.WriteString(";48;2;")
		} else {
			out.WriteString(";38;2;")
		}
		out.WriteString(strconv.Itoa(int(c.R)))
		out.WriteByte(';')
		out.WriteString(strconv.Itoa(int(c.G)))
		out.WriteByte(';')
		out.WriteString(strconv.Itoa(int(c.B)))
	case p.caps.Colors256:
		if bg {
			out.WriteString(";48;5;")
		} else {
			out.WriteString(";38;5;")
		}
		out.WriteString(strconv.Itoa(paletteIndex256(c)))
	}
}

func (p *Presenter) writeHyperlink(out *bytes.Buffer, np pen) {
	if np.linkID == p.curPen.linkID && p.curPen.valid {
		return
	}
	if np.linkID == 0 {
		out.WriteString("\x1b]8;;\x1b\\")
		return
	}
	uri := ""
	if p.links != nil {
		uri = p.links[np.linkID]
	}
	out.WriteString("\x1b]8;;")
	out.WriteString(uri)
	out.WriteString("\x1b\\")
}

func (p *Presenter) writeContent(out *bytes.Buffer, buf *Buffer, cell Cell) {
	if cell.IsEmpty() {
		out.WriteByte(' ')
		return
	}
	s := buf.CellText(cell)
	if s == "" {
		out.WriteByte(' ')
		return
	}
	for _, r := range s {
		out.WriteRune(sanitizeRune(r))
	}
}

// SetTitle diffs title against the last emitted title and, if different,
// returns the OSC-2 escape to set it; otherwise returns nil.
func (p *Presenter) SetTitle(title string) []byte {
	if p.titleSet && p.title == title {
		return nil
	}
	p.title, p.titleSet = title, true
	var out bytes.Buffer
	out.WriteString("\x1b]2;")
	for _, r := range title {
		out.WriteRune(sanitizeRune(r))
	}
	out.WriteString("\x1b\\")
	return out.Bytes()
}
