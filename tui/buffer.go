package tui

// maxDim caps buffer width/height (spec.md §4.C3: "Width/height capped ≤
// 65535").
const maxDim = 65535

// maxScissorDepth bounds the scissor stack (spec.md §4.C3: "depth ≤ 64").
const maxScissorDepth = 64

// Rect is an inclusive-exclusive clipping rectangle: [X, X+W) x [Y, Y+H).
type Rect struct {
	X, Y, W, H int
}

// Intersect returns the largest rect contained in both r and o.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Contains reports whether (x, y) lies within r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clampDim(n int) int {
	if n < 0 {
		return 0
	}
	if n > maxDim {
		return maxDim
	}
	return n
}

// Buffer is a row-major grid of cells with a clipping (scissor) stack and
// bulk drawing operations. It owns a *Pool for any multi-codepoint
// graphemes its cells reference.
type Buffer struct {
	width, height int
	cells         []Cell
	pool          *Pool
	scissors      []Rect
}

// NewBuffer allocates a cleared w x h buffer backed by pool (shared across
// the front/back pair so grapheme refcounts stay consistent across swap).
func NewBuffer(w, h int, pool *Pool) *Buffer {
	w, h = clampDim(w), clampDim(h)
	b := &Buffer{width: w, height: h, pool: pool}
	b.cells = make([]Cell, w*h)
	b.fillRaw(EmptyCell())
	return b
}

// Width returns the buffer's column count.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer's row count.
func (b *Buffer) Height() int { return b.height }

// Pool returns the buffer's grapheme pool.
func (b *Buffer) Pool() *Pool { return b.pool }

func (b *Buffer) index(x, y int) int { return y*b.width + x }

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// currentScissor returns the active clip rect (the full buffer if the
// stack is empty).
func (b *Buffer) currentScissor() Rect {
	if len(b.scissors) == 0 {
		return Rect{X: 0, Y: 0, W: b.width, H: b.height}
	}
	return b.scissors[len(b.scissors)-1]
}

// PushScissor intersects rect with the current top-of-stack rect and
// pushes the result. Exceeding maxScissorDepth is fatal in a debug build;
// here, matching "release" behavior, it is clamped by simply not pushing
// further and reusing the deepest rect.
func (b *Buffer) PushScissor(rect Rect) {
	next := b.currentScissor().Intersect(rect)
	if len(b.scissors) >= maxScissorDepth {
		if debugAssertions {
			panic("tui: scissor stack depth exceeded")
		}
		return
	}
	b.scissors = append(b.scissors, next)
}

// PopScissor removes the top-of-stack clip rect, if any.
func (b *Buffer) PopScissor() {
	if len(b.scissors) == 0 {
		return
	}
	b.scissors = b.scissors[:len(b.scissors)-1]
}

// Get returns the cell at (x, y), or an empty cell if out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return EmptyCell()
	}
	return b.cells[b.index(x, y)]
}

// releaseCellAt releases any pool reference the cell at idx holds,
// and the paired continuation tail if idx is (or was) a wide head.
func (b *Buffer) releaseCellAt(x, y int) {
	idx := b.index(x, y)
	old := b.cells[idx]
	if old.kind == contentPool {
		b.pool.Release(old.poolID)
	}
	if old.Width() == 2 && x+1 < b.width {
		tail := b.cells[b.index(x+1, y)]
		if tail.kind == contentContinuation {
			b.cells[b.index(x+1, y)] = EmptyCell()
		}
	}
	if old.kind == contentContinuation && x > 0 {
		head := b.cells[b.index(x-1, y)]
		if head.Width() == 2 {
			if head.kind == contentPool {
				b.pool.Release(head.poolID)
			}
			b.cells[b.index(x-1, y)] = EmptyCell()
		}
	}
}

func (b *Buffer) retainCell(c Cell) {
	if c.kind == contentPool {
		b.pool.Retain(c.poolID)
	}
}

// Set writes cell at (x, y), honoring the current scissor, and maintaining
// the wide-head/continuation invariants (I-CELL-1, I-CELL-2):
//   - a head written at the last column becomes empty instead,
//   - setting any cell over an existing head/continuation releases the
//     paired half to avoid orphans.
func (b *Buffer) Set(x, y int, cell Cell) {
	if !b.inBounds(x, y) || !b.currentScissor().Contains(x, y) {
		return
	}
	b.setFastInternal(x, y, cell, true)
}

// SetFast writes cell at (x, y) without a scissor check; the caller
// guarantees (x, y) is in bounds (spec.md §4.C3).
func (b *Buffer) SetFast(x, y int, cell Cell) {
	b.setFastInternal(x, y, cell, false)
}

func (b *Buffer) setFastInternal(x, y int, cell Cell, checked bool) {
	if checked && !b.inBounds(x, y) {
		return
	}
	if cell.Width() == 2 && x == b.width-1 {
		// I-CELL-2: a head never appears as the last column of a row.
		cell = EmptyCell()
	}
	b.releaseCellAt(x, y)
	idx := b.index(x, y)
	b.retainCell(cell)
	b.cells[idx] = cell
	if cell.Width() == 2 && x+1 < b.width {
		b.releaseCellAt(x + 1, y)
		b.cells[b.index(x+1, y)] = continuationCell(cell)
	}
}

// CellText resolves a cell's displayable text, following the grapheme pool
// for pool-backed content.
func (b *Buffer) CellText(c Cell) string {
	switch c.kind {
	case contentInline:
		s, _ := c.Content()
		return s
	case contentPool:
		s, _, ok := b.pool.Get(c.poolID)
		if !ok {
			return ""
		}
		return s
	default:
		return ""
	}
}

// Fill writes cell into every position of rect intersected with the
// current scissor.
func (b *Buffer) Fill(rect Rect, cell Cell) {
	area := b.currentScissor().Intersect(rect)
	for y := area.Y; y < area.Y+area.H; y++ {
		for x := area.X; x < area.X+area.W; x++ {
			b.Set(x, y, cell)
		}
	}
}

// Clear resets every cell of the buffer to empty, bypassing the scissor
// stack (used between frames, not during drawing).
func (b *Buffer) Clear() { b.fillRaw(EmptyCell()) }

func (b *Buffer) fillRaw(cell Cell) {
	for i := range b.cells {
		old := b.cells[i]
		if old.kind == contentPool {
			b.pool.Release(old.poolID)
		}
		b.cells[i] = cell
	}
}

// CopyFrom copies srcRect from src into this buffer at (dstX, dstY),
// preserving head/continuation integrity: an orphaned tail becomes empty,
// and a head landing on the last column becomes empty (spec.md §4.C3).
func (b *Buffer) CopyFrom(src *Buffer, srcRect Rect, dstX, dstY int) {
	for row := 0; row < srcRect.H; row++ {
		sy := srcRect.Y + row
		if sy < 0 || sy >= src.height {
			continue
		}
		dy := dstY + row
		for col := 0; col < srcRect.W; col++ {
			sx := srcRect.X + col
			if sx < 0 || sx >= src.width {
				continue
			}
			dx := dstX + col
			cell := src.Get(sx, sy)
			if cell.kind == contentContinuation {
				// A continuation is only kept if its head was copied too
				// (i.e. the head is the immediately preceding column in
				// this same copy); the head's Set has then already written
				// the continuation here, and setting it again would release
				// that head. Otherwise it would orphan, so it becomes empty.
				if col > 0 && src.Get(sx-1, sy).Width() == 2 && b.Get(dx, dy).IsContinuation() {
					continue
				}
				cell = EmptyCell()
			}
			// Set retains cell's pool reference (if any) on the caller's
			// behalf, which is exactly what a new reference at (dx, dy)
			// needs; src and dst share one Pool per DoubleBuffer, so no
			// separate retain/release bookkeeping is required here.
			b.Set(dx, dy, cell)
		}
	}
}

// PrintTextClipped draws s starting at (x, y) with pen, truncating at
// max_x (exclusive). Wide graphemes that would straddle max_x are
// dropped rather than split.
func (b *Buffer) PrintTextClipped(x, y int, s string, pen Cell, maxX int) {
	cx := x
	for _, r := range s {
		w := widthOf(r)
		if cx+w > maxX {
			break
		}
		cell := FromChar(r)
		cell.Fg, cell.Bg, cell.Attrs = pen.Fg, pen.Bg, pen.Attrs
		cell.HyperlinkID = pen.HyperlinkID
		cell.UnderlineColor, cell.hasULColor = pen.UnderlineColor, pen.hasULColor
		b.Set(cx, y, cell)
		cx += max(w, 1)
	}
}

// debugAssertions toggles the strict (panic) scissor-depth check. Left
// false to match the "release" behavior spec.md §4.C3 calls for.
var debugAssertions = false
