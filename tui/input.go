package tui

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"
)

// escTimeout is how long the reader waits after a bare ESC byte before
// deciding it really was the Escape key rather than the start of a CSI/SS3
// sequence (teacher's input.go uses the same disambiguation trick).
const escTimeout = 10 * time.Millisecond

// csiTimeout bounds how long an in-progress CSI sequence may take to
// complete before the reader gives up; the bytes read so far are discarded
// and no event is emitted for them.
const csiTimeout = 50 * time.Millisecond

// StdinSource reads raw terminal input from r (normally stdin in raw mode)
// on a single background goroutine and decodes it into Events.
type StdinSource struct {
	events chan Event
	done   chan struct{}
	r      *bufio.Reader
}

// NewStdinSource starts reading from r immediately.
func NewStdinSource(r io.Reader) *StdinSource {
	s := &StdinSource{
		events: make(chan Event, 256),
		done:   make(chan struct{}),
		r:      bufio.NewReader(r),
	}
	go s.loop()
	return s
}

func (s *StdinSource) Events() <-chan Event { return s.events }

func (s *StdinSource) Close() error {
	close(s.done)
	return nil
}

func (s *StdinSource) emit(e Event) {
	select {
	case s.events <- e:
	case <-s.done:
	}
}

func (s *StdinSource) loop() {
	defer close(s.events)
	for {
		select {
		case <-s.done:
			return
		default:
		}
		b, err := s.r.ReadByte()
		if err != nil {
			return
		}
		switch {
		case b == 0x1b:
			s.processEsc()
		case b == '\r' || b == '\n':
			s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyEnter}})
		case b == '\t':
			s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyTab}})
		case b == 0x7f || b == 0x08:
			s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyBackspace}})
		case b < 0x20:
			// C0 control byte from Ctrl+<letter>: recover the letter and
			// set ModCtrl, matching the teacher's processChar handling.
			s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyRune, Rune: rune(b + 0x60), Mod: ModCtrl}})
		default:
			s.processChar(b)
		}
	}
}

// processChar decodes a (possibly multi-byte) UTF-8 rune starting at the
// already-read lead byte b.
func (s *StdinSource) processChar(b byte) {
	n := utf8SeqLen(b)
	buf := []byte{b}
	for i := 1; i < n; i++ {
		nb, err := s.r.ReadByte()
		if err != nil {
			break
		}
		buf = append(buf, nb)
	}
	r := decodeRune(buf)
	s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyRune, Rune: r}})
}

func utf8SeqLen(b byte) int {
	switch {
	case b&0x80 == 0:
		return 1
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

func decodeRune(buf []byte) rune {
	r, _ := decodeRuneUTF8(buf)
	return r
}

// decodeRuneUTF8 is a tiny local decoder so this file doesn't need to pull
// in unicode/utf8 just for DecodeRune in one spot; kept here for symmetry
// with the teacher's self-contained input.go.
func decodeRuneUTF8(buf []byte) (rune, int) {
	if len(buf) == 0 {
		return 0, 0
	}
	if len(buf) == 1 {
		return rune(buf[0]), 1
	}
	// Minimal multi-byte reassembly; malformed input degrades to the lead
	// byte rather than panicking.
	first := buf[0]
	switch {
	case first&0xE0 == 0xC0 && len(buf) >= 2:
		return rune(first&0x1F)<<6 | rune(buf[1]&0x3F), 2
	case first&0xF0 == 0xE0 && len(buf) >= 3:
		return rune(first&0x0F)<<12 | rune(buf[1]&0x3F)<<6 | rune(buf[2]&0x3F), 3
	case first&0xF8 == 0xF0 && len(buf) >= 4:
		return rune(first&0x07)<<18 | rune(buf[1]&0x3F)<<12 | rune(buf[2]&0x3F)<<6 | rune(buf[3]&0x3F), 4
	default:
		return rune(first), 1
	}
}

// processEsc disambiguates a bare Escape keypress from the start of a
// CSI ([) or SS3 (O) sequence, via the same short read-timeout trick the
// teacher's input.go uses. Any other following byte, including the ] that
// opens an OSC sequence, is consumed and reported as a bare Escape; OSC
// sequences are not decoded.
func (s *StdinSource) processEsc() {
	b, ok := s.readByteTimeout(escTimeout)
	if !ok {
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyEscape}})
		return
	}
	switch b {
	case '[':
		s.parseCSI()
	case 'O':
		s.parseSS3()
	default:
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyEscape}})
	}
}

func (s *StdinSource) readByteTimeout(d time.Duration) (byte, bool) {
	type result struct {
		b   byte
		err error
	}
	ch := make(chan result, 1)
	go func() {
		b, err := s.r.ReadByte()
		ch <- result{b, err}
	}()
	select {
	case r := <-ch:
		if r.err != nil {
			return 0, false
		}
		return r.b, true
	case <-time.After(d):
		return 0, false
	}
}

// parseSS3 handles ESC O <letter> sequences (classic cursor keys / F1-F4
// in some terminal profiles).
func (s *StdinSource) parseSS3() {
	b, ok := s.readByteTimeout(csiTimeout)
	if !ok {
		return
	}
	switch b {
	case 'A':
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyUp}})
	case 'B':
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyDown}})
	case 'C':
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyRight}})
	case 'D':
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyLeft}})
	case 'P':
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyF1}})
	case 'Q':
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyF2}})
	case 'R':
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyF3}})
	case 'S':
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyF4}})
	}
}

// parseCSI reads the parameter bytes of a CSI sequence and dispatches on
// its final byte, handling the subset spec.md §6 requires: cursor keys,
// paging/navigation keys, SGR mouse reports (CSI < ... M/m), bracketed
// paste markers (200~/201~), and focus in/out (I/O).
func (s *StdinSource) parseCSI() {
	var params strings.Builder
	deadline := time.Now().Add(csiTimeout)
	private := byte(0)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return
		}
		b, ok := s.readByteTimeout(remaining)
		if !ok {
			return
		}
		if params.Len() == 0 && (b == '<' || b == '?') {
			private = b
			continue
		}
		if b >= '0' && b <= '9' || b == ';' {
			params.WriteByte(b)
			continue
		}
		s.dispatchCSI(private, params.String(), b)
		return
	}
}

func (s *StdinSource) dispatchCSI(private byte, params string, final byte) {
	switch {
	case private == '<':
		s.dispatchMouse(params, final)
		return
	}
	switch final {
	case 'A':
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyUp, Mod: csiMods(params)}})
	case 'B':
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyDown, Mod: csiMods(params)}})
	case 'C':
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyRight, Mod: csiMods(params)}})
	case 'D':
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyLeft, Mod: csiMods(params)}})
	case 'H':
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyHome}})
	case 'F':
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyEnd}})
	case 'I':
		s.emit(Event{Kind: EventFocusGained})
	case 'O':
		s.emit(Event{Kind: EventFocusLost})
	case '~':
		s.dispatchTilde(params)
	}
}

func csiMods(params string) Mod {
	parts := strings.Split(params, ";")
	if len(parts) < 2 {
		return 0
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	bits := n - 1
	var m Mod
	if bits&1 != 0 {
		m |= ModShift
	}
	if bits&2 != 0 {
		m |= ModAlt
	}
	if bits&4 != 0 {
		m |= ModCtrl
	}
	return m
}

func (s *StdinSource) dispatchTilde(params string) {
	code := strings.Split(params, ";")[0]
	switch code {
	case "2":
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyInsert}})
	case "3":
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyDelete}})
	case "5":
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyPageUp}})
	case "6":
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyPageDown}})
	case "1", "7":
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyHome}})
	case "4", "8":
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyEnd}})
	case "11":
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyF1}})
	case "12":
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyF2}})
	case "13":
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyF3}})
	case "14":
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyF4}})
	case "15":
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyF5}})
	case "17":
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyF6}})
	case "18":
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyF7}})
	case "19":
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyF8}})
	case "20":
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyF9}})
	case "21":
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyF10}})
	case "23":
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyF11}})
	case "24":
		s.emit(Event{Kind: EventKey, Key: KeyEvent{Key: KeyF12}})
	case "200":
		s.readPaste()
	}
}

// readPaste consumes bytes until the ESC[201~ bracketed-paste terminator
// and emits them as a single Paste event.
func (s *StdinSource) readPaste() {
	var sb strings.Builder
	const terminator = "\x1b[201~"
	for {
		b, err := s.r.ReadByte()
		if err != nil {
			break
		}
		sb.WriteByte(b)
		if strings.HasSuffix(sb.String(), terminator) {
			text := strings.TrimSuffix(sb.String(), terminator)
			s.emit(Event{Kind: EventPaste, Paste: text})
			return
		}
	}
}

// dispatchMouse decodes an SGR (1006) mouse report: CSI < Cb ; Cx ; Cy M/m.
func (s *StdinSource) dispatchMouse(params string, final byte) {
	parts := strings.Split(params, ";")
	if len(parts) != 3 {
		return
	}
	cb, err1 := strconv.Atoi(parts[0])
	cx, err2 := strconv.Atoi(parts[1])
	cy, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return
	}
	ev := MouseEvent{X: cx - 1, Y: cy - 1}
	if cb&32 != 0 {
		ev.Motion = true
	}
	base := cb &^ 0x3C // strip modifier+motion bits for button classification
	switch {
	case cb&0x40 != 0 && base&3 == 0:
		ev.Button = MouseWheelUp
	case cb&0x40 != 0 && base&3 == 1:
		ev.Button = MouseWheelDown
	case base&3 == 0:
		ev.Button = MouseLeft
	case base&3 == 1:
		ev.Button = MouseMiddle
	case base&3 == 2:
		ev.Button = MouseRight
	case base&3 == 3:
		ev.Button = MouseRelease
	}
	if final == 'm' {
		ev.Button = MouseRelease
	}
	if cb&4 != 0 {
		ev.Mod |= ModShift
	}
	if cb&8 != 0 {
		ev.Mod |= ModAlt
	}
	if cb&16 != 0 {
		ev.Mod |= ModCtrl
	}
	s.emit(Event{Kind: EventMouse, Mouse: ev})
}
