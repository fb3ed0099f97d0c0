package tui

// Msg is the Elm-architecture message type: any value a Cmd, subscription,
// or the event source can produce and hand to Model.Update.
type Msg interface{}

// Model is the application capability the runtime loop drives. Update
// reacts to one message at a time and returns the next Cmd to run; View
// draws the current state into frame.
type Model interface {
	Update(msg Msg) Cmd
	View(frame *Frame)
}

// Titler is an optional Model capability: a Model that wants to control
// the terminal window title implements this instead of leaving it blank.
type Titler interface {
	Title() string
}

// Initializer is an optional Model capability: a Model that needs to kick
// off a Cmd before the first View (spawning a subscription, issuing a
// Task) implements this instead of waiting for the first external event.
type Initializer interface {
	Init() Cmd
}

// EssentialHeighter is an optional Model capability used by InlineAuto
// mode to size itself to content instead of guessing: if a Model
// implements this, the runtime asks it for the minimum height it needs
// to render legibly at the given width, rather than always using
// Options.MaxHeight.
type EssentialHeighter interface {
	EssentialHeight(width int) int
}

// Frame is the drawing surface a Model's View receives: a thin wrapper
// around a Buffer that also accumulates the per-frame hyperlink table so
// WithHyperlink ids resolve to URIs at presentation time.
type Frame struct {
	buf   *Buffer
	links map[uint32]string
	nextLinkID uint32
}

// NewFrame wraps buf for one View call.
func NewFrame(buf *Buffer) *Frame {
	return &Frame{buf: buf, links: make(map[uint32]string)}
}

// Buffer returns the underlying Buffer for direct drawing calls.
func (f *Frame) Buffer() *Buffer { return f.buf }

// Link interns uri into this frame's hyperlink table and returns the id
// to attach to cells via Cell.WithHyperlink.
func (f *Frame) Link(uri string) uint32 {
	f.nextLinkID++
	id := f.nextLinkID
	f.links[id] = uri
	return id
}

// Links returns the frame's accumulated hyperlink table.
func (f *Frame) Links() map[uint32]string { return f.links }
