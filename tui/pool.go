package tui

import "errors"

// ErrPoolCapacity is returned (and, at the runtime boundary, fatal per
// spec.md §7) when the grapheme pool has exhausted its 24-bit id space.
var ErrPoolCapacity = errors.New("tui: grapheme pool capacity exceeded")

// maxPoolSlots bounds ids to 24 bits (spec.md §4.C2: "ids ≥ 2^24 fail with
// capacity-exceeded").
const maxPoolSlots = 1 << 24

type poolSlot struct {
	text     string
	width    int
	refcount int
	used     bool
}

// Pool is a refcounted intern table for multi-codepoint grapheme clusters
// that don't fit in a Cell's inline storage. Slot ids are allocated from a
// LIFO free list; the low bits of the returned id never encode anything
// beyond the raw slot index — width is looked up from the slot, not
// derived from the id, since Go gives us no packing pressure a Rust
// bitfield would have had.
type Pool struct {
	slots    []poolSlot
	free     []uint32 // LIFO free list
	byText   map[string]uint32
}

// NewPool creates an empty grapheme pool.
func NewPool() *Pool {
	return &Pool{byText: make(map[string]uint32)}
}

// Intern deduplicates s and returns a packed slot id. ok is false only when
// the pool has exhausted its capacity (ErrPoolCapacity); callers should
// treat that as the fatal condition in spec.md §7.
func (p *Pool) Intern(s string, width int) (id uint32, ok bool) {
	if existing, found := p.byText[s]; found {
		p.slots[existing].refcount++
		return existing, true
	}

	var idx uint32
	if n := len(p.free); n > 0 {
		idx = p.free[n-1]
		p.free = p.free[:n-1]
		p.slots[idx] = poolSlot{text: s, width: width, refcount: 1, used: true}
	} else {
		if len(p.slots) >= maxPoolSlots {
			return 0, false
		}
		idx = uint32(len(p.slots))
		p.slots = append(p.slots, poolSlot{text: s, width: width, refcount: 1, used: true})
	}
	p.byText[s] = idx
	return idx, true
}

// Get returns the interned string and display width for id, if live.
func (p *Pool) Get(id uint32) (string, int, bool) {
	if int(id) >= len(p.slots) || !p.slots[id].used {
		return "", 0, false
	}
	return p.slots[id].text, p.slots[id].width, true
}

// Retain bumps the refcount of id. Retaining an unknown id is a silent
// no-op (spec.md §4.C2), not an error: callers copying cells around a
// Buffer shouldn't need to special-case stale ids.
func (p *Pool) Retain(id uint32) {
	if int(id) >= len(p.slots) || !p.slots[id].used {
		return
	}
	p.slots[id].refcount++
}

// Release drops the refcount of id, freeing the slot at zero.
func (p *Pool) Release(id uint32) {
	if int(id) >= len(p.slots) || !p.slots[id].used {
		return
	}
	s := &p.slots[id]
	s.refcount--
	if s.refcount <= 0 {
		delete(p.byText, s.text)
		*s = poolSlot{}
		p.free = append(p.free, id)
	}
}

// Len returns the number of live (used) slots.
func (p *Pool) Len() int {
	n := 0
	for _, s := range p.slots {
		if s.used {
			n++
		}
	}
	return n
}

// Capacity returns the total number of slots ever allocated (used + freed).
func (p *Pool) Capacity() int { return len(p.slots) }

// TotalRefcount sums the refcounts of all live slots; used by the
// refcount-balance property test (spec.md §8 item 4).
func (p *Pool) TotalRefcount() int {
	n := 0
	for _, s := range p.slots {
		if s.used {
			n += s.refcount
		}
	}
	return n
}

// Clear drops all interned strings and resets the free list.
func (p *Pool) Clear() {
	p.slots = p.slots[:0]
	p.free = p.free[:0]
	p.byText = make(map[string]uint32)
}
