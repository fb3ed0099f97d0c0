package tui

import "testing"

func newTestBuffer(w, h int) *Buffer {
	return NewBuffer(w, h, NewPool())
}

func TestBufferSetGet(t *testing.T) {
	b := newTestBuffer(10, 5)
	b.Set(3, 2, FromChar('x'))
	got := b.Get(3, 2)
	if s, _ := got.Content(); s != "x" {
		t.Fatalf("expected 'x', got %q", s)
	}
}

func TestBufferOutOfBoundsIsNoop(t *testing.T) {
	b := newTestBuffer(4, 4)
	b.Set(-1, 0, FromChar('x'))
	b.Set(0, -1, FromChar('x'))
	b.Set(100, 100, FromChar('x'))
	// must not panic; nothing else to assert
}

func TestBufferWideCharPairsContinuation(t *testing.T) {
	b := newTestBuffer(5, 1)
	b.Set(0, 0, FromChar('世'))
	tail := b.Get(1, 0)
	if !tail.IsContinuation() {
		t.Fatal("expected a continuation cell after a wide head")
	}
	if tail.Width() != 0 {
		t.Fatalf("continuation cell must report width 0, got %d", tail.Width())
	}
}

func TestBufferWideCharAtLastColumnBecomesEmpty(t *testing.T) {
	b := newTestBuffer(3, 1)
	b.Set(2, 0, FromChar('世'))
	cell := b.Get(2, 0)
	if !cell.IsEmpty() {
		t.Fatal("expected a wide char at the last column to degrade to empty")
	}
}

func TestBufferOverwriteOrphansContinuation(t *testing.T) {
	b := newTestBuffer(5, 1)
	b.Set(0, 0, FromChar('世'))
	b.Set(0, 0, FromChar('a'))
	tail := b.Get(1, 0)
	if !tail.IsEmpty() {
		t.Fatal("expected the old continuation cell to become empty after overwriting its head")
	}
}

func TestScissorClipsWrites(t *testing.T) {
	b := newTestBuffer(10, 10)
	b.PushScissor(Rect{X: 2, Y: 2, W: 3, H: 3})
	b.Set(0, 0, FromChar('x'))
	b.Set(3, 3, FromChar('y'))
	b.PopScissor()

	if !b.Get(0, 0).IsEmpty() {
		t.Fatal("expected write outside the scissor rect to be dropped")
	}
	if s, _ := b.Get(3, 3).Content(); s != "y" {
		t.Fatal("expected write inside the scissor rect to land")
	}
}

func TestScissorStackNests(t *testing.T) {
	b := newTestBuffer(10, 10)
	b.PushScissor(Rect{X: 0, Y: 0, W: 8, H: 8})
	b.PushScissor(Rect{X: 4, Y: 4, W: 8, H: 8})
	b.Set(1, 1, FromChar('x'))
	b.PopScissor()
	b.PopScissor()
	if !b.Get(1, 1).IsEmpty() {
		t.Fatal("expected nested scissor intersection to reject a write outside the inner rect")
	}
}

func TestFillCoversWholeRect(t *testing.T) {
	b := newTestBuffer(5, 5)
	b.Fill(Rect{X: 0, Y: 0, W: 5, H: 5}, FromChar('#'))
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if s, _ := b.Get(x, y).Content(); s != "#" {
				t.Fatalf("expected filled cell at (%d,%d)", x, y)
			}
		}
	}
}

func TestCopyFromPreservesContentAndDropsOrphans(t *testing.T) {
	src := newTestBuffer(4, 1)
	src.Set(0, 0, FromChar('世'))

	dst := newTestBuffer(4, 1)
	dst.CopyFrom(src, Rect{X: 1, Y: 0, W: 1, H: 1}, 0, 0)
	// only the continuation half was copied (without its head): must not
	// produce an orphaned continuation in dst.
	if !dst.Get(0, 0).IsEmpty() {
		t.Fatal("expected an orphaned continuation-only copy to become empty")
	}

	dst2 := newTestBuffer(4, 1)
	dst2.CopyFrom(src, Rect{X: 0, Y: 0, W: 2, H: 1}, 0, 0)
	if s, _ := dst2.Get(0, 0).Content(); s != "世" {
		t.Fatal("expected the full wide-char pair to copy across intact")
	}
	if !dst2.Get(1, 0).IsContinuation() {
		t.Fatal("expected the copied pair's tail to remain a continuation cell")
	}
}

func TestPrintTextClippedTruncatesAtMaxX(t *testing.T) {
	b := newTestBuffer(5, 1)
	pen := EmptyCell()
	b.PrintTextClipped(0, 0, "hello world", pen, 5)
	for x := 0; x < 5; x++ {
		if b.Get(x, 0).IsEmpty() {
			t.Fatalf("expected cell %d to be written within maxX", x)
		}
	}
}
