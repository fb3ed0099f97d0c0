package tui

import "testing"

func TestFromCharWidth(t *testing.T) {
	cases := []struct {
		r    rune
		want int
	}{
		{'a', 1},
		{'世', 2},
		{'　', 2}, // ideographic space
	}
	for _, c := range cases {
		cell := FromChar(c.r)
		if got := cell.Width(); got != c.want {
			t.Errorf("FromChar(%q).Width() = %d, want %d", c.r, got, c.want)
		}
	}
}

func TestBitsEqComparesForeground(t *testing.T) {
	a := FromChar('x').WithFg(RGB(1, 2, 3))
	b := FromChar('x').WithFg(RGB(1, 2, 3))
	if !BitsEq(a, b) {
		t.Fatal("expected identical cells to be BitsEq")
	}
	c := b.WithFg(RGB(1, 2, 4))
	if BitsEq(a, c) {
		t.Fatal("expected differing fg to break BitsEq")
	}
}

func TestBitsEqHyperlinkAndUnderline(t *testing.T) {
	a := FromChar('x').WithHyperlink(5)
	b := FromChar('x').WithHyperlink(6)
	if BitsEq(a, b) {
		t.Fatal("different hyperlink ids must differ")
	}
	c := FromChar('x').WithUnderlineColor(RGB(9, 9, 9))
	d := FromChar('x')
	if BitsEq(c, d) {
		t.Fatal("presence of an explicit underline color must differ from its absence")
	}
}

func TestFromGraphemeInternsLongClusters(t *testing.T) {
	pool := NewPool()
	cell := FromGrapheme("👨‍👩‍👧‍👦", 2, pool)
	if cell.kind != contentPool {
		t.Fatalf("expected a long grapheme cluster to be pool-backed, got kind %v", cell.kind)
	}
	if pool.Len() != 1 {
		t.Fatalf("expected 1 live pool slot, got %d", pool.Len())
	}
}

func TestFromGraphemeInlineShortCluster(t *testing.T) {
	pool := NewPool()
	cell := FromGrapheme("a", 1, pool)
	if cell.kind != contentInline {
		t.Fatalf("expected a short cluster to stay inline, got kind %v", cell.kind)
	}
	if pool.Len() != 0 {
		t.Fatalf("expected no pool allocation for an inline-sized cluster, got %d", pool.Len())
	}
}

func TestColorEqualDefaultSentinel(t *testing.T) {
	if !DefaultColor().Equal(DefaultColor()) {
		t.Fatal("two default colors must be equal")
	}
	if DefaultColor().Equal(RGB(0, 0, 0)) {
		t.Fatal("default color must never equal an explicit black")
	}
}
