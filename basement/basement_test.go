package basement

import "testing"

func TestRenderBold(t *testing.T) {
	runs := Render("**hi**")
	found := false
	for _, r := range runs {
		if r.Text == "hi" && r.Style.Bold {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a bold 'hi' run, got %+v", runs)
	}
}

func TestRenderColor(t *testing.T) {
	runs := Render("#red(alert)")
	found := false
	for _, r := range runs {
		if r.Text == "alert" && r.Style.HasFg {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a colored 'alert' run, got %+v", runs)
	}
}

func TestRenderArgsFillsHoles(t *testing.T) {
	runs := RenderArgs("count: %v", "42")
	var got string
	for _, r := range runs {
		got += r.Text
	}
	if got != "count: 42" {
		t.Fatalf("expected holes to be substituted, got %q", got)
	}
}

func TestRenderList(t *testing.T) {
	runs := Render("- one\n- two")
	var got string
	for _, r := range runs {
		got += r.Text
	}
	if got != "• one\n• two" {
		t.Fatalf("expected bulleted list items joined by newlines, got %q", got)
	}
}
