package tui

import "testing"

func TestPoolInternDeduplicates(t *testing.T) {
	p := NewPool()
	id1, ok := p.Intern("abc", 1)
	if !ok {
		t.Fatal("expected intern to succeed")
	}
	id2, ok := p.Intern("abc", 1)
	if !ok || id2 != id1 {
		t.Fatalf("expected re-interning the same text to return the same id, got %d vs %d", id1, id2)
	}
	if p.TotalRefcount() != 2 {
		t.Fatalf("expected refcount 2 after two interns, got %d", p.TotalRefcount())
	}
}

func TestPoolRetainRelease(t *testing.T) {
	p := NewPool()
	id, _ := p.Intern("hi", 1)
	p.Retain(id)
	if p.TotalRefcount() != 2 {
		t.Fatalf("expected refcount 2 after retain, got %d", p.TotalRefcount())
	}
	p.Release(id)
	if p.TotalRefcount() != 1 {
		t.Fatalf("expected refcount 1 after one release, got %d", p.TotalRefcount())
	}
	p.Release(id)
	if _, _, ok := p.Get(id); ok {
		t.Fatal("expected slot to be freed once refcount reaches zero")
	}
	if p.Len() != 0 {
		t.Fatalf("expected 0 live slots after full release, got %d", p.Len())
	}
}

func TestPoolFreeListReusesSlots(t *testing.T) {
	p := NewPool()
	id, _ := p.Intern("a", 1)
	p.Release(id)
	id2, _ := p.Intern("b", 1)
	if id2 != id {
		t.Fatalf("expected freed slot to be reused via LIFO free list, got new id %d instead of %d", id2, id)
	}
	if p.Capacity() != 1 {
		t.Fatalf("expected capacity to stay at 1 slot when reusing, got %d", p.Capacity())
	}
}

func TestPoolRetainReleaseUnknownIDIsNoop(t *testing.T) {
	p := NewPool()
	p.Retain(999)
	p.Release(999)
	if p.Len() != 0 {
		t.Fatalf("expected no slots after touching an unknown id, got %d", p.Len())
	}
}
