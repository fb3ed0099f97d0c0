package tui

import (
	"bytes"
	"testing"
)

func TestTerminalWriterAltScreenEnterExit(t *testing.T) {
	var buf bytes.Buffer
	w := NewTerminalWriter(&buf, Options{Mode: AltScreen, Caps: Capabilities{}})
	if err := w.Enter(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("\x1b[?1049h")) {
		t.Fatal("expected alt-screen enable sequence on Enter")
	}
	buf.Reset()
	if err := w.Exit(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("\x1b[?1049l")) {
		t.Fatal("expected alt-screen disable sequence on Exit")
	}
}

func TestTerminalWriterInlineEnterAvoidsAltScreen(t *testing.T) {
	var buf bytes.Buffer
	w := NewTerminalWriter(&buf, Options{Mode: Inline, MaxHeight: 3, Caps: Capabilities{}})
	w.Enter()
	if bytes.Contains(buf.Bytes(), []byte("?1049")) {
		t.Fatal("inline mode must never touch the alt-screen buffer")
	}
}

func TestTerminalWriterInlinePresentAnchorsBottomAndErasesEachRow(t *testing.T) {
	var buf bytes.Buffer
	w := NewTerminalWriter(&buf, Options{Mode: Inline, MaxHeight: 3, TerminalHeight: 24, Caps: Capabilities{TrueColor: true}})
	w.Enter()
	buf.Reset()
	old := newTestBuffer(80, 3)
	next := newTestBuffer(80, 3)
	next.Set(0, 0, FromChar('x'))
	d := ComputeDiff(old, next)
	if err := w.Present(next, d, nil); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, row := range []string{"22", "23", "24"} {
		if !bytes.Contains([]byte(out), []byte("\x1b["+row+";1H")) {
			t.Fatalf("expected a CUP to terminal row %s (bottom-anchored ui_height=3 in a 24-row terminal), got %q", row, out)
		}
	}
	if bytes.Count([]byte(out), []byte("\x1b[K")) != 3 {
		t.Fatalf("expected one erase-line per UI row (3 total), got %q", out)
	}
	if bytes.Contains([]byte(out), []byte("\x1b[2J")) {
		t.Fatal("inline present must never emit a full-screen clear (ED 2)")
	}
}

func TestTerminalWriterPresentSkipsEmptyDiff(t *testing.T) {
	var buf bytes.Buffer
	w := NewTerminalWriter(&buf, Options{Mode: AltScreen, Caps: Capabilities{TrueColor: true}})
	w.Enter()
	buf.Reset()
	b := newTestBuffer(4, 4)
	d := ComputeDiff(b, b)
	if err := w.Present(b, d, nil); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no bytes written for an empty diff, got %q", buf.String())
	}
}

func TestTerminalWriterPresentWrapsSyncOutput(t *testing.T) {
	var buf bytes.Buffer
	w := NewTerminalWriter(&buf, Options{Mode: AltScreen, Caps: Capabilities{TrueColor: true, SyncOutput: true}})
	w.Enter()
	buf.Reset()
	old := newTestBuffer(4, 4)
	next := newTestBuffer(4, 4)
	next.Set(0, 0, FromChar('x'))
	d := ComputeDiff(old, next)
	w.Present(next, d, nil)
	out := buf.String()
	if !bytes.Contains([]byte(out), []byte("\x1b[?2026h")) || !bytes.Contains([]byte(out), []byte("\x1b[?2026l")) {
		t.Fatalf("expected synchronized-output brackets, got %q", out)
	}
}

func TestTerminalWriterClosedRejectsOps(t *testing.T) {
	var buf bytes.Buffer
	w := NewTerminalWriter(&buf, Options{Mode: AltScreen})
	w.Enter()
	w.Close()
	b := newTestBuffer(2, 2)
	d := ComputeDiff(b, b)
	if err := w.Present(b, d, nil); err != ErrClosed {
		t.Fatalf("expected ErrClosed after Close, got %v", err)
	}
}
