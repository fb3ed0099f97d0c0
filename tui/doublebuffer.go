package tui

// DoubleBuffer owns a front/back Buffer pair sharing one grapheme pool, and
// performs the O(1) swap plus adaptive resize spec.md §4.C4 calls for.
type DoubleBuffer struct {
	front, back *Buffer
	pool        *Pool
}

// NewDoubleBuffer allocates a front/back pair at the given size.
func NewDoubleBuffer(w, h int) *DoubleBuffer {
	pool := NewPool()
	return &DoubleBuffer{
		front: NewBuffer(w, h, pool),
		back:  NewBuffer(w, h, pool),
		pool:  pool,
	}
}

// Front returns the buffer last presented to the terminal.
func (d *DoubleBuffer) Front() *Buffer { return d.front }

// Back returns the buffer the next frame should be drawn into.
func (d *DoubleBuffer) Back() *Buffer { return d.back }

// Pool returns the shared grapheme pool.
func (d *DoubleBuffer) Pool() *Pool { return d.pool }

// Swap exchanges front and back in O(1) (a pointer swap).
func (d *DoubleBuffer) Swap() { d.front, d.back = d.back, d.front }

// Resize adapts both buffers to a new size. Buffer owns an exact-size cell
// slice with no spare capacity to shrink into in place, so any change to
// either dimension reallocates both buffers; a session that briefly
// maximizes a window and then shrinks back down doesn't pin the larger
// allocation forever (spec.md §4.C4: "adaptive reallocation").
func (d *DoubleBuffer) Resize(w, h int) {
	w, h = clampDim(w), clampDim(h)
	if w == d.back.Width() && h == d.back.Height() {
		return
	}
	d.pool.Clear()
	d.front = NewBuffer(w, h, d.pool)
	d.back = NewBuffer(w, h, d.pool)
}

// CopyFrontToBack seeds the back buffer with the front's content, used
// when a resize needs the old picture preserved under the new dimensions
// before drawing continues (upper-left clip, per spec.md §4.C4/§4.C8).
func (d *DoubleBuffer) CopyFrontToBack() {
	w := min(d.front.Width(), d.back.Width())
	h := min(d.front.Height(), d.back.Height())
	d.back.Clear()
	d.back.CopyFrom(d.front, Rect{X: 0, Y: 0, W: w, H: h}, 0, 0)
}
