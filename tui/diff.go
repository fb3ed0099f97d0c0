package tui

// Pos is a single changed cell position.
type Pos struct{ X, Y int }

// Run is a coalesced horizontal span of changed cells on one row: columns
// [X, X+Len) on row Y all differ between old and new.
type Run struct {
	Y, X, Len int
}

// Diff holds the result of comparing two buffers of identical size:
// individual changed positions plus their row-coalesced runs.
type Diff struct {
	w, h  int
	dirty [][]bool
	runs  []Run
	any   bool
}

// ComputeDiff compares old and new cell-by-cell (I-CELL-3's BitsEq) and
// returns the set of changed positions, coalesced into row-runs. Buffers
// must share dimensions; a size mismatch is treated as "everything
// changed" (the caller is expected to have resized/repainted already).
func ComputeDiff(oldBuf, newBuf *Buffer) *Diff {
	w, h := newBuf.Width(), newBuf.Height()
	d := &Diff{w: w, h: h}
	if oldBuf.Width() != w || oldBuf.Height() != h {
		d.markAllDirty()
		return d
	}
	d.dirty = make([][]bool, h)
	for y := 0; y < h; y++ {
		row := make([]bool, w)
		rowDirty := false
		runStart := -1
		for x := 0; x < w; x++ {
			changed := !BitsEq(oldBuf.Get(x, y), newBuf.Get(x, y))
			row[x] = changed
			if changed {
				rowDirty = true
				d.any = true
				if runStart < 0 {
					runStart = x
				}
			} else if runStart >= 0 {
				d.runs = append(d.runs, Run{Y: y, X: runStart, Len: x - runStart})
				runStart = -1
			}
		}
		if runStart >= 0 {
			d.runs = append(d.runs, Run{Y: y, X: runStart, Len: w - runStart})
		}
		if rowDirty {
			d.dirty[y] = row
		} else {
			d.dirty[y] = nil
		}
	}
	return d
}

func (d *Diff) markAllDirty() {
	d.dirty = make([][]bool, d.h)
	d.runs = d.runs[:0]
	for y := 0; y < d.h; y++ {
		row := make([]bool, d.w)
		for x := range row {
			row[x] = true
		}
		d.dirty[y] = row
		if d.w > 0 {
			d.runs = append(d.runs, Run{Y: y, X: 0, Len: d.w})
		}
	}
	d.any = d.w > 0 && d.h > 0
}

// Empty reports whether no cell changed (the fast path: nothing to write).
func (d *Diff) Empty() bool { return !d.any }

// IsDirty reports whether (x, y) changed.
func (d *Diff) IsDirty(x, y int) bool {
	if y < 0 || y >= len(d.dirty) || d.dirty[y] == nil {
		return false
	}
	if x < 0 || x >= len(d.dirty[y]) {
		return false
	}
	return d.dirty[y][x]
}

// Runs returns the coalesced row-runs in row-major order.
func (d *Diff) Runs() []Run { return d.runs }

// Positions expands the runs back into individual positions, in row-major
// order. Provided for callers (and tests) that want the raw position set
// spec.md §4.C5 describes before coalescing.
func (d *Diff) Positions() []Pos {
	var out []Pos
	for _, r := range d.runs {
		for x := r.X; x < r.X+r.Len; x++ {
			out = append(out, Pos{X: x, Y: r.Y})
		}
	}
	return out
}
