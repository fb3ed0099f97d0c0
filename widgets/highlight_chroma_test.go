package widgets

import (
	"testing"

	"github.com/thorstone137/frankentui-sub012/tui"
)

func TestHighlightProducesNonEmptySpans(t *testing.T) {
	spans := Highlight("package main\n\nfunc main() {}\n", "go")
	if len(spans) == 0 {
		t.Fatal("expected at least one highlighted span")
	}
}

func TestHighlightBlockWritesMultipleLines(t *testing.T) {
	buf := tui.NewBuffer(40, 4, tui.NewPool())
	frame := tui.NewFrame(buf)
	n := HighlightBlock(frame, 0, 0, "a := 1\nb := 2\n", "go", 40)
	if n < 2 {
		t.Fatalf("expected at least 2 lines advanced, got %d", n)
	}
	if s, _ := buf.Get(0, 0).Content(); s == "" {
		t.Fatal("expected first line's first cell to be populated")
	}
}
