package tui

import (
	"context"
	"io"
	"time"
)

// RuntimeOptions configures a Runtime.
type RuntimeOptions struct {
	Mode       ScreenMode
	MaxHeight  int
	Anchor     InlineAnchor
	Caps       Capabilities
	LogSink    *LogSink
	Clock      Clock
	Scrollback int
}

// Runtime drives a Model through the Elm-architecture loop: it owns the
// double buffer, the terminal writer, the resize coalescer, the
// subscription set, and the single-threaded scheduling of Update/View
// calls against events arriving from an EventSource.
type Runtime struct {
	model   Model
	writer  *TerminalWriter
	buffers *DoubleBuffer
	coalescer *ResizeCoalescer
	scrollback *Scrollback
	clock   Clock
	log     *LogSink
	opts    RuntimeOptions

	msgs   chan Msg
	subs   map[SubID]context.CancelFunc
	quit   bool
}

// NewRuntime constructs a Runtime for model, writing frames to w and
// reading the initial terminal size from width/height.
func NewRuntime(model Model, w io.Writer, width, height int, opts RuntimeOptions) *Runtime {
	if opts.Clock == nil {
		opts.Clock = NewRealClock()
	}
	if opts.LogSink == nil {
		opts.LogSink = NewLogSink(nil)
	}
	maxH := opts.MaxHeight
	if opts.Mode == AltScreen {
		maxH = height
	} else if maxH <= 0 {
		maxH = height
	}
	writer := NewTerminalWriter(w, Options{Mode: opts.Mode, MaxHeight: maxH, TerminalHeight: height, Anchor: opts.Anchor, Caps: opts.Caps, LogSink: opts.LogSink})
	return &Runtime{
		model:      model,
		writer:     writer,
		buffers:    NewDoubleBuffer(width, maxH),
		coalescer:  NewResizeCoalescer(),
		scrollback: NewScrollback(opts.Scrollback),
		clock:      opts.Clock,
		log:        opts.LogSink,
		opts:       opts,
		msgs:       make(chan Msg, 256),
		subs:       make(map[SubID]context.CancelFunc),
	}
}

// Run drives the loop until a Quit Cmd is processed or events closes.
// It recovers any panic escaping Update/View, restores the terminal, and
// re-panics (spec.md §4.C9 failure semantics): callers that want a clean
// process exit on a Model bug should not add their own recover above
// this call.
func (r *Runtime) Run(events EventSource) (err error) {
	if enterErr := r.writer.Enter(); enterErr != nil {
		return enterErr
	}
	defer func() {
		if p := recover(); p != nil {
			r.log.RecoveredPanic(p)
			r.writer.Close()
			panic(p)
		}
	}()
	defer r.stopAllSubs()
	defer func() {
		if closeErr := r.writer.Close(); err == nil {
			err = closeErr
		}
	}()

	if init, ok := r.model.(Initializer); ok {
		r.runCmd(init.Init())
	}
	r.renderFrame()

	for !r.quit {
		r.tick(events)
	}
	return nil
}

// tick runs one iteration of the loop and handles exactly one thing:
// whichever becomes ready first of one input event, one message posted by
// a subscription or Task, or the 10ms clock timer that services the
// coalescer. When several are ready at once, select picks among them at
// random; there is no fixed input-before-subscription-before-tick
// priority. A frame is rendered afterwards unless the runtime is quitting.
func (r *Runtime) tick(events EventSource) {
	select {
	case ev, ok := <-events.Events():
		if !ok {
			r.quit = true
			return
		}
		r.handleEvent(ev)
	case msg := <-r.msgs:
		r.dispatch(msg)
	case <-r.clock.After(10 * time.Millisecond):
		r.serviceCoalescer()
	}
	if !r.quit {
		r.renderFrame()
	}
}

func (r *Runtime) handleEvent(ev Event) {
	switch ev.Kind {
	case EventResize:
		r.coalescer.OnResize(ev.Width, ev.Height, r.clock.Now())
		return
	case EventKey:
		r.dispatch(ev.Key)
	case EventMouse:
		r.dispatch(ev.Mouse)
	case EventFocusGained, EventFocusLost, EventPaste, EventClipboard, EventTick:
		r.dispatch(ev)
	}
}

func (r *Runtime) serviceCoalescer() {
	switch r.coalescer.Tick(r.clock.Now()) {
	case DecisionApply:
		w, h := r.coalescer.Apply()
		r.applyResize(w, h)
	case DecisionPlaceholder:
		// Nothing to flush yet; the current frame stays on screen until
		// the burst settles.
	}
}

func (r *Runtime) applyResize(w, h int) {
	maxH := h
	if r.opts.Mode != AltScreen {
		maxH = r.resolveInlineHeight(w)
	}
	r.buffers.Resize(w, maxH)
	r.writer.Resize(maxH, h)
	r.dispatch(Event{Kind: EventResize, Width: w, Height: maxH})
}

func (r *Runtime) resolveInlineHeight(width int) int {
	if r.opts.Mode == Inline {
		return r.opts.MaxHeight
	}
	if eh, ok := r.model.(EssentialHeighter); ok {
		h := eh.EssentialHeight(width)
		if h > 0 && h <= r.opts.MaxHeight {
			return h
		}
	}
	return r.opts.MaxHeight
}

// dispatch runs Update(msg) and executes the returned Cmd tree.
func (r *Runtime) dispatch(msg Msg) {
	cmd := r.model.Update(msg)
	r.runCmd(cmd)
}

// runCmd executes cmd (recursively, for Batch). It returns true once a
// Quit has been encountered anywhere in the tree, so that a Batch walking
// its children stops dispatching the remaining siblings the moment one of
// them (or one of their own nested Batches) resolves to Quit.
func (r *Runtime) runCmd(cmd Cmd) bool {
	switch cmd.kind {
	case cmdNone:
	case cmdQuit:
		r.quit = true
		return true
	case cmdMsg:
		r.dispatch(cmd.msg)
	case cmdBatch:
		for _, c := range cmd.batch {
			if r.runCmd(c) {
				return true
			}
		}
	case cmdTask:
		r.runTask(cmd.task)
	case cmdSetTitle:
		r.writer.SetTitle(cmd.title)
	case cmdSpawnSub:
		r.spawnSub(cmd.subID, cmd.sub)
	case cmdStopSub:
		r.stopSub(cmd.subID)
	case cmdPrintLine:
		r.writer.WriteLog(cmd.line)
	}
	return r.quit
}

func (r *Runtime) runTask(fn func(ctx context.Context) Msg) {
	go func() {
		msg := fn(context.Background())
		if msg == nil {
			return
		}
		select {
		case r.msgs <- msg:
		default:
		}
	}()
}

func (r *Runtime) spawnSub(id SubID, sub Subscription) {
	r.stopSub(id)
	ctx, cancel := context.WithCancel(context.Background())
	r.subs[id] = cancel
	go sub.Run(ctx, r.msgs)
}

func (r *Runtime) stopSub(id SubID) {
	if cancel, ok := r.subs[id]; ok {
		cancel()
		delete(r.subs, id)
	}
}

func (r *Runtime) stopAllSubs() {
	for id, cancel := range r.subs {
		cancel()
		delete(r.subs, id)
	}
}

func (r *Runtime) renderFrame() {
	back := r.buffers.Back()
	back.Clear()
	frame := NewFrame(back)
	r.model.View(frame)
	diff := ComputeDiff(r.buffers.Front(), back)
	if err := r.writer.Present(back, diff, frame.Links()); err != nil {
		r.log.Diagnostics().Sugar().Errorw("present failed", "error", err)
	}
	if titler, ok := r.model.(Titler); ok {
		r.writer.SetTitle(titler.Title())
	}
	r.buffers.Swap()
}
