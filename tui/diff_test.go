package tui

import "testing"

func TestComputeDiffEmptyWhenIdentical(t *testing.T) {
	a := newTestBuffer(5, 5)
	b := newTestBuffer(5, 5)
	d := ComputeDiff(a, b)
	if !d.Empty() {
		t.Fatal("expected no diff between two identical empty buffers")
	}
}

func TestComputeDiffFindsSingleChange(t *testing.T) {
	a := newTestBuffer(5, 5)
	b := newTestBuffer(5, 5)
	b.Set(2, 3, FromChar('x'))
	d := ComputeDiff(a, b)
	if d.Empty() {
		t.Fatal("expected a diff")
	}
	if !d.IsDirty(2, 3) {
		t.Fatal("expected (2,3) to be dirty")
	}
	if d.IsDirty(0, 0) {
		t.Fatal("expected (0,0) to be clean")
	}
}

func TestComputeDiffCoalescesRuns(t *testing.T) {
	a := newTestBuffer(10, 1)
	b := newTestBuffer(10, 1)
	for x := 2; x < 6; x++ {
		b.Set(x, 0, FromChar('x'))
	}
	d := ComputeDiff(a, b)
	runs := d.Runs()
	if len(runs) != 1 {
		t.Fatalf("expected exactly 1 coalesced run, got %d: %+v", len(runs), runs)
	}
	if runs[0].X != 2 || runs[0].Len != 4 {
		t.Fatalf("expected run {X:2 Len:4}, got %+v", runs[0])
	}
}

func TestComputeDiffSizeMismatchMarksEverythingDirty(t *testing.T) {
	a := newTestBuffer(3, 3)
	b := newTestBuffer(5, 5)
	d := ComputeDiff(a, b)
	if d.Empty() {
		t.Fatal("expected a size mismatch to force a full repaint diff")
	}
	if len(d.Positions()) != 25 {
		t.Fatalf("expected all 25 positions dirty, got %d", len(d.Positions()))
	}
}

func TestComputeDiffTwoSeparateRuns(t *testing.T) {
	a := newTestBuffer(10, 1)
	b := newTestBuffer(10, 1)
	b.Set(1, 0, FromChar('x'))
	b.Set(7, 0, FromChar('y'))
	d := ComputeDiff(a, b)
	if len(d.Runs()) != 2 {
		t.Fatalf("expected 2 separate runs, got %d", len(d.Runs()))
	}
}
