package tui

// Key identifies a non-printable or special key. Printable keys are
// carried as a rune on the KeyEvent instead (KeyRune).
type Key int

const (
	KeyRune Key = iota // KeyEvent.Rune holds the actual character
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Mod is a bitmask of modifier keys held during a KeyEvent.
type Mod uint8

const (
	ModShift Mod = 1 << iota
	ModAlt
	ModCtrl
)

// Has reports whether all bits in want are set.
func (m Mod) Has(want Mod) bool { return m&want == want }

// KeyEvent describes one keypress.
type KeyEvent struct {
	Key  Key
	Rune rune // valid when Key == KeyRune
	Mod  Mod
}

// MouseButton identifies which button a MouseEvent reports on.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
	MouseRelease
)

// MouseEvent describes a mouse action reported via SGR mouse tracking.
type MouseEvent struct {
	X, Y   int
	Button MouseButton
	Mod    Mod
	Motion bool // true for drag/move events, false for press/release
}
