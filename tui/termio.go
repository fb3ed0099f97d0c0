package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sync"
)

// ScreenMode selects how the terminal writer occupies the terminal.
type ScreenMode int

const (
	// AltScreen uses the alternate screen buffer (full-window apps).
	AltScreen ScreenMode = iota
	// Inline renders within the normal scrollback at a fixed height.
	Inline
	// InlineAuto renders inline, sizing itself to the Model's essential
	// height (or to maxHeight, if the Model doesn't report one).
	InlineAuto
)

// ErrClosed is returned by writer operations once Close has run.
var ErrClosed = errors.New("tui: terminal writer closed")

// InlineAnchor selects which edge of the terminal viewport an Inline or
// InlineAuto UI band is pinned to.
type InlineAnchor int

const (
	// AnchorBottom pins the UI band to the bottom rows of the terminal
	// (the common "status bar"/"footer" placement); the zero value.
	AnchorBottom InlineAnchor = iota
	// AnchorTop pins the UI band to the terminal's top rows.
	AnchorTop
)

// Options configures a TerminalWriter.
type Options struct {
	Mode       ScreenMode
	MaxHeight  int // for Inline/InlineAuto
	// TerminalHeight is the full terminal viewport height, used to compute
	// the UI band's anchor row for Inline/InlineAuto (ignored for
	// AltScreen, which always owns the whole viewport).
	TerminalHeight int
	Anchor         InlineAnchor
	Caps           Capabilities
	LogSink        *LogSink
}

// TerminalWriter is the single owner of terminal output: every byte that
// reaches the real terminal, whether a rendered frame, an interleaved log
// line, or a mode transition escape, passes through here (spec.md §4.C7:
// "one-writer discipline").
type TerminalWriter struct {
	mu        sync.Mutex
	out       *bufio.Writer
	raw       io.Writer
	opts      Options
	presenter *Presenter
	mode      ScreenMode
	height    int // current inline height, for Inline/InlineAuto
	anchorRow int // terminal row (0-indexed) that UI row 0 maps to
	entered   bool
	closed    bool
	savedCursor bool
}

// NewTerminalWriter wraps w (normally the raw terminal fd) and prepares it
// for the given mode. It does not write anything until Enter is called.
func NewTerminalWriter(w io.Writer, opts Options) *TerminalWriter {
	t := &TerminalWriter{
		out:       bufio.NewWriter(w),
		raw:       w,
		opts:      opts,
		presenter: NewPresenter(opts.Caps),
		mode:      opts.Mode,
		height:    opts.MaxHeight,
	}
	t.recomputeAnchor()
	return t
}

// recomputeAnchor derives anchorRow from the writer's current mode, UI
// height, and the terminal's total height: AltScreen always owns row 0,
// Inline/InlineAuto pin their band to whichever edge Options.Anchor names.
func (t *TerminalWriter) recomputeAnchor() {
	if t.mode == AltScreen || t.opts.Anchor == AnchorTop {
		t.anchorRow = 0
		return
	}
	ar := t.opts.TerminalHeight - t.height
	if ar < 0 {
		ar = 0
	}
	t.anchorRow = ar
}

// Enter performs the mode's opening sequence: alt-screen enable + hide
// cursor for AltScreen, or simply hide-cursor + reserve blank lines for
// Inline/InlineAuto.
func (t *TerminalWriter) Enter() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	if t.entered {
		return nil
	}
	t.entered = true
	switch t.mode {
	case AltScreen:
		t.writeRaw("\x1b[?1049h\x1b[2J\x1b[H\x1b[?25l")
	case Inline, InlineAuto:
		t.writeRaw("\x1b[?25l")
		for i := 1; i < t.height; i++ {
			t.writeRaw("\n")
		}
		if t.height > 1 {
			t.writeRaw(fmt.Sprintf("\x1b[%dA", t.height-1))
		}
	}
	if t.opts.Caps.BracketedPaste {
		t.writeRaw("\x1b[?2004h")
	}
	if t.opts.Caps.FocusEvents {
		t.writeRaw("\x1b[?1004h")
	}
	return t.out.Flush()
}

// Exit performs the mode's closing sequence and restores cursor visibility.
// It is safe to call multiple times and is the method deferred at the call
// site so a panic unwinding through the runtime boundary still restores
// the terminal.
func (t *TerminalWriter) Exit() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.entered || t.closed {
		return nil
	}
	if t.opts.Caps.FocusEvents {
		t.writeRaw("\x1b[?1004l")
	}
	if t.opts.Caps.BracketedPaste {
		t.writeRaw("\x1b[?2004l")
	}
	switch t.mode {
	case AltScreen:
		t.writeRaw("\x1b[?25h\x1b[?1049l")
	case Inline, InlineAuto:
		t.writeRaw("\x1b[?25h\r\n")
	}
	t.entered = false
	return t.out.Flush()
}

// Close exits (if entered) and marks the writer unusable.
func (t *TerminalWriter) Close() error {
	err := t.Exit()
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	return err
}

func (t *TerminalWriter) writeRaw(s string) { t.out.WriteString(s) }

// Present renders one frame from the caller's diff, wraps the output in
// a synchronized-output bracket when the capability allows it, and flushes
// exactly once. DECSC/DECRC (cursor save/restore) bracket the frame so a
// partially-drawn screen never leaves the real cursor somewhere a resize
// redraw couldn't recover from.
func (t *TerminalWriter) Present(buf *Buffer, diff *Diff, links map[uint32]string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	if diff.Empty() {
		return nil
	}
	t.presenter.SetLinkTable(links)
	sync := t.opts.Caps.SyncOutput
	if sync {
		t.writeRaw("\x1b[?2026h")
	}
	t.writeRaw("\x1b7") // DECSC
	t.savedCursor = true
	var body []byte
	switch t.mode {
	case AltScreen:
		body = t.presenter.Present(buf, diff)
	case Inline, InlineAuto:
		body = t.presenter.PresentInline(buf, diff, t.height, t.anchorRow)
	}
	if body != nil {
		t.out.Write(body)
	}
	t.writeRaw("\x1b8") // DECRC
	if sync {
		t.writeRaw("\x1b[?2026l")
	}
	return t.out.Flush()
}

// SetTitle emits the OSC-2 escape if title differs from the last one set.
func (t *TerminalWriter) SetTitle(title string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || !t.opts.Caps.Title {
		return nil
	}
	if esc := t.presenter.SetTitle(title); esc != nil {
		t.out.Write(esc)
		return t.out.Flush()
	}
	return nil
}

// WriteLog interleaves a diagnostic/print line above the live region: it
// scrolls the terminal up by the rendered height (Inline/InlineAuto) or
// writes directly (AltScreen has no "above" concept, so it's written at
// the top-left instead), then forces the presenter to re-home on the next
// Present (the real cursor moved out from under its believed position).
func (t *TerminalWriter) WriteLog(line string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	switch t.mode {
	case Inline, InlineAuto:
		t.writeRaw("\r\n")
		t.writeRaw(line)
	case AltScreen:
		t.writeRaw("\x1b[H")
		t.writeRaw(line)
		t.writeRaw("\x1b[K")
	}
	t.presenter.Reset()
	return t.out.Flush()
}

// Resize updates the writer's notion of inline height (Inline/InlineAuto)
// and the terminal's total height (used to recompute the anchor row for a
// bottom-anchored band), then forces the presenter to re-home, since a
// resize invalidates the believed cursor position.
func (t *TerminalWriter) Resize(height, terminalHeight int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.height = height
	if terminalHeight > 0 {
		t.opts.TerminalHeight = terminalHeight
	}
	t.recomputeAnchor()
	t.presenter.Reset()
}

// Mode returns the writer's screen mode.
func (t *TerminalWriter) Mode() ScreenMode { return t.mode }
