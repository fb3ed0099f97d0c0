package tui

// ScrollbackRow is one retired row of cell content kept for history
// scrolling, stored independently of any Buffer so it survives resizes.
// Wrapped marks a row that is the continuation of a logical line too wide
// for the terminal rather than a line break the content itself chose, so a
// scrollback viewer can rejoin wrapped rows when reflowing to a new width.
type ScrollbackRow struct {
	Cells   []Cell
	Wrapped bool
}

// Scrollback is a bounded ring buffer of retired rows: O(1) push/pop,
// oldest-drops-first once at capacity, and a capacity of 0 silently drops
// everything pushed to it (spec.md §4.C10).
type Scrollback struct {
	rows     []ScrollbackRow
	capacity int
	start    int // index of the oldest row within rows
	count    int
}

// NewScrollback creates a scrollback ring with the given capacity.
func NewScrollback(capacity int) *Scrollback {
	if capacity < 0 {
		capacity = 0
	}
	return &Scrollback{capacity: capacity, rows: make([]ScrollbackRow, capacity)}
}

// PushRow appends (cells, wrapped) as the newest entry, evicting the oldest
// if the ring is already at capacity. A zero-capacity ring drops the row
// entirely. wrapped marks this row as a wrap-continuation of the previous
// one rather than a true line break.
func (s *Scrollback) PushRow(cells []Cell, wrapped bool) {
	if s.capacity == 0 {
		return
	}
	idx := (s.start + s.count) % s.capacity
	s.rows[idx] = ScrollbackRow{Cells: cells, Wrapped: wrapped}
	if s.count < s.capacity {
		s.count++
	} else {
		s.start = (s.start + 1) % s.capacity
	}
}

// PopNewest removes and returns the most recently pushed row, if any.
func (s *Scrollback) PopNewest() (ScrollbackRow, bool) {
	if s.count == 0 {
		return ScrollbackRow{}, false
	}
	idx := (s.start + s.count - 1) % s.capacity
	row := s.rows[idx]
	s.rows[idx] = ScrollbackRow{}
	s.count--
	return row, true
}

// PeekNewest returns the most recently pushed row without removing it.
func (s *Scrollback) PeekNewest() (ScrollbackRow, bool) {
	if s.count == 0 {
		return ScrollbackRow{}, false
	}
	idx := (s.start + s.count - 1) % s.capacity
	return s.rows[idx], true
}

// Get returns the row at logical index i (0 = oldest), if in range.
func (s *Scrollback) Get(i int) (ScrollbackRow, bool) {
	if i < 0 || i >= s.count {
		return ScrollbackRow{}, false
	}
	return s.rows[(s.start+i)%s.capacity], true
}

// Len returns the number of rows currently retained.
func (s *Scrollback) Len() int { return s.count }

// Capacity returns the ring's maximum row count.
func (s *Scrollback) Capacity() int { return s.capacity }

// SetCapacity resizes the ring, keeping as many of the newest rows as fit
// in the new capacity (oldest rows are dropped first on shrink).
func (s *Scrollback) SetCapacity(newCap int) {
	if newCap < 0 {
		newCap = 0
	}
	kept := s.count
	if kept > newCap {
		kept = newCap
	}
	newRows := make([]ScrollbackRow, newCap)
	for i := 0; i < kept; i++ {
		// keep the newest `kept` rows
		srcIdx := s.count - kept + i
		row, _ := s.Get(srcIdx)
		newRows[i] = row
	}
	s.rows = newRows
	s.capacity = newCap
	s.start = 0
	s.count = kept
}

// Clear empties the ring without changing its capacity.
func (s *Scrollback) Clear() {
	s.rows = make([]ScrollbackRow, s.capacity)
	s.start = 0
	s.count = 0
}

// Iter calls fn for each row oldest-to-newest, stopping early if fn
// returns false.
func (s *Scrollback) Iter(fn func(i int, row ScrollbackRow) bool) {
	for i := 0; i < s.count; i++ {
		row, _ := s.Get(i)
		if !fn(i, row) {
			return
		}
	}
}

// IterRev calls fn for each row newest-to-oldest, stopping early if fn
// returns false.
func (s *Scrollback) IterRev(fn func(i int, row ScrollbackRow) bool) {
	for i := s.count - 1; i >= 0; i-- {
		row, _ := s.Get(i)
		if !fn(i, row) {
			return
		}
	}
}
