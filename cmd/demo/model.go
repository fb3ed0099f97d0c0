package main

import (
	"context"
	"fmt"
	"time"

	"github.com/thorstone137/frankentui-sub012/signals"
	"github.com/thorstone137/frankentui-sub012/tui"
	"github.com/thorstone137/frankentui-sub012/widgets"
)

// tickMsg carries a clock reading from the heartbeat subscription.
type tickMsg time.Time

// counterModel is the demo's Model: a counter driven both by a ticking
// subscription and by keypresses, rendered through the markup widget so
// the demo exercises the basement-derived client path end to end.
type counterModel struct {
	count    *signals.Signal[int]
	tickSub  tui.SubID
	quitting bool
	lang     string
	sample   string
}

func newCounterModel() *counterModel {
	return &counterModel{
		count:   signals.New(0),
		tickSub: tui.NewSubID(),
		lang:    "go",
		sample:  "func main() {\n\tfmt.Println(\"hello\")\n}\n",
	}
}

func (m *counterModel) Init() tui.Cmd {
	return tui.SpawnSub(m.tickSub, heartbeat{clock: tui.NewRealClock()})
}

func (m *counterModel) Update(msg tui.Msg) tui.Cmd {
	switch v := msg.(type) {
	case tui.KeyEvent:
		switch {
		case v.Rune == 'q':
			m.quitting = true
			return tui.Quit()
		case v.Key == tui.KeyRune && v.Rune == 'c' && v.Mod.Has(tui.ModCtrl):
			m.quitting = true
			return tui.Quit()
		case v.Key == tui.KeyUp:
			m.count.Set(m.count.Get() + 1)
		case v.Key == tui.KeyDown:
			m.count.Set(m.count.Get() - 1)
		}
	case tickMsg:
		m.count.Set(m.count.Get() + 1)
	case tui.Event:
		if v.Kind == tui.EventResize {
			return tui.Emit(tickMsg(time.Now()))
		}
	}
	return tui.None()
}

func (m *counterModel) View(frame *tui.Frame) {
	buf := frame.Buffer()
	w := buf.Width()

	markup := fmt.Sprintf("# Counter Demo\nCurrent count: **%d**\n(Press 'q' or Ctrl+C to exit, arrows to adjust)\n", m.count.Get())
	spans := widgets.ParseMarkup(markup)
	widgets.DrawSpans(frame, 0, 0, spans, w)

	widgets.HighlightBlock(frame, 0, 2, m.sample, m.lang, w)
}

func (m *counterModel) Title() string {
	return fmt.Sprintf("frankentui demo — count %d", m.count.Get())
}

// EssentialHeight lets InlineAuto mode size itself to exactly what this
// Model draws instead of guessing at Options.MaxHeight.
func (m *counterModel) EssentialHeight(width int) int { return 6 }

// heartbeat is a Subscription that ticks once a second, independent of
// the runtime's own internal coalescer tick.
type heartbeat struct{ clock tui.Clock }

func (h heartbeat) Run(ctx context.Context, out chan<- tui.Msg) {
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-h.clock.After(time.Second):
			select {
			case out <- tickMsg(t):
			case <-ctx.Done():
				return
			}
		}
	}
}
