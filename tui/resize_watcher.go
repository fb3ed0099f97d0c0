package tui

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"
)

// SignalResizeSource watches SIGWINCH on the given file descriptor and
// emits EventResize with the terminal's freshly-queried size, mirroring
// the teacher's screen.go resize-signal handling but exposed as a
// composable EventSource instead of a screen-owned callback.
type SignalResizeSource struct {
	fd     int
	events chan Event
	sigCh  chan os.Signal
	done   chan struct{}
}

// NewSignalResizeSource starts watching fd for SIGWINCH immediately.
func NewSignalResizeSource(fd int) *SignalResizeSource {
	s := &SignalResizeSource{
		fd:     fd,
		events: make(chan Event, 16),
		sigCh:  make(chan os.Signal, 4),
		done:   make(chan struct{}),
	}
	signal.Notify(s.sigCh, syscall.SIGWINCH)
	go s.loop()
	return s
}

func (s *SignalResizeSource) loop() {
	defer close(s.events)
	for {
		select {
		case <-s.done:
			return
		case <-s.sigCh:
			w, h, err := term.GetSize(s.fd)
			if err != nil {
				continue
			}
			select {
			case s.events <- Event{Kind: EventResize, Width: w, Height: h}:
			case <-s.done:
				return
			}
		}
	}
}

func (s *SignalResizeSource) Events() <-chan Event { return s.events }

func (s *SignalResizeSource) Close() error {
	signal.Stop(s.sigCh)
	close(s.done)
	return nil
}

// mergedSource fans multiple EventSources into one channel, preserving
// each underlying source's arrival order but not imposing one across
// sources.
type mergedSource struct {
	events chan Event
	closes []func() error
	done   chan struct{}
}

// MergeSources combines several EventSources (e.g. stdin key/mouse input
// and a SIGWINCH resize watcher) into a single EventSource the runtime
// loop can read from.
func MergeSources(sources ...EventSource) EventSource {
	m := &mergedSource{events: make(chan Event, 256), done: make(chan struct{})}
	for _, src := range sources {
		m.closes = append(m.closes, src.Close)
		go m.pump(src)
	}
	return m
}

func (m *mergedSource) pump(src EventSource) {
	for {
		select {
		case ev, ok := <-src.Events():
			if !ok {
				return
			}
			select {
			case m.events <- ev:
			case <-m.done:
				return
			}
		case <-m.done:
			return
		}
	}
}

func (m *mergedSource) Events() <-chan Event { return m.events }

func (m *mergedSource) Close() error {
	close(m.done)
	for _, c := range m.closes {
		c()
	}
	return nil
}
