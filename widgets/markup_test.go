package widgets

import (
	"testing"

	"github.com/thorstone137/frankentui-sub012/tui"
)

func TestParseMarkupBold(t *testing.T) {
	spans := ParseMarkup("**hi**")
	found := false
	for _, sp := range spans {
		if sp.Text == "hi" && sp.Attrs.Has(tui.AttrBold) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a bold 'hi' span, got %+v", spans)
	}
}

func TestDrawSpansWritesToBuffer(t *testing.T) {
	buf := tui.NewBuffer(10, 1, tui.NewPool())
	frame := tui.NewFrame(buf)
	DrawSpans(frame, 0, 0, []Span{{Text: "ab"}}, 10)
	if s, _ := buf.Get(0, 0).Content(); s != "a" {
		t.Fatalf("expected 'a' at column 0, got %q", s)
	}
	if s, _ := buf.Get(1, 0).Content(); s != "b" {
		t.Fatalf("expected 'b' at column 1, got %q", s)
	}
}
