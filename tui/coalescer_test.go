package tui

import (
	"testing"
	"time"
)

func TestCoalescerNoneWhenNothingPending(t *testing.T) {
	c := NewResizeCoalescer()
	if got := c.Tick(time.Unix(0, 0)); got != DecisionNone {
		t.Fatalf("expected None with nothing pending, got %v", got)
	}
}

func TestCoalescerAppliesAfterSteadyDelay(t *testing.T) {
	c := NewResizeCoalescer()
	cfg := DefaultCoalescerConfig()
	now := time.Unix(0, 0)
	c.OnResize(80, 24, now)

	if got := c.Tick(now); got != DecisionNone {
		t.Fatalf("expected None before the steady delay elapses, got %v", got)
	}
	settled := now.Add(time.Duration(cfg.SteadyDelayMs) * time.Millisecond)
	if got := c.Tick(settled); got != DecisionApply {
		t.Fatalf("expected Apply once the steady delay has elapsed, got %v", got)
	}
	w, h := c.Apply()
	if w != 80 || h != 24 {
		t.Fatalf("expected latched size 80x24, got %dx%d", w, h)
	}
	if c.Pending() {
		t.Fatal("expected Apply to clear pending")
	}
}

func TestCoalescerEntersBurstRegimeOnRapidEvents(t *testing.T) {
	c := NewResizeCoalescer()
	t0 := time.Unix(0, 0)

	c.OnResize(80, 24, t0)
	c.OnResize(81, 24, t0.Add(10*time.Millisecond))
	if got := c.Tick(t0.Add(10 * time.Millisecond)); got != DecisionPlaceholder {
		t.Fatalf("expected Placeholder once the rate crosses burst_enter_rate, got %v", got)
	}
	if c.Regime() != "burst" {
		t.Fatalf("expected regime to switch to burst, got %q", c.Regime())
	}

	c.OnResize(82, 24, t0.Add(20*time.Millisecond))
	if got := c.Tick(t0.Add(20 * time.Millisecond)); got != DecisionPlaceholder {
		t.Fatalf("expected Placeholder while the burst is still hot, got %v", got)
	}
}

// TestCoalescerBurstSettlesAndApplies isolates the burst regime's own
// coalesce window (burst_delay_ms, gated on the rate having already dropped
// below burst_exit_rate) from the hard deadline, by configuring a deadline
// far beyond the window this test actually exercises.
func TestCoalescerBurstSettlesAndApplies(t *testing.T) {
	cfg := DefaultCoalescerConfig()
	cfg.HardDeadlineMs = 5000
	c := NewResizeCoalescerWithConfig(cfg)
	t0 := time.Unix(0, 0)

	c.OnResize(80, 24, t0)
	c.OnResize(81, 24, t0.Add(10*time.Millisecond))
	c.Tick(t0.Add(10 * time.Millisecond))
	c.OnResize(82, 24, t0.Add(20*time.Millisecond))
	c.Tick(t0.Add(20 * time.Millisecond))
	if c.Regime() != "burst" {
		t.Fatalf("expected regime burst going into the quiet period, got %q", c.Regime())
	}

	// No further events: the rate, measured against now rather than the
	// window's own last timestamp, decays toward 0 as the burst goes quiet.
	quiet := t0.Add(260 * time.Millisecond)
	if got := c.Tick(quiet); got != DecisionApply {
		t.Fatalf("expected Apply once the burst has quieted and burst_delay_ms has elapsed, got %v", got)
	}
	w, _ := c.Apply()
	if w != 82 {
		t.Fatalf("expected the latched size to be the most recent one (82), got %d", w)
	}
}

func TestCoalescerHardDeadlineForcesApply(t *testing.T) {
	c := NewResizeCoalescer()
	t0 := time.Unix(0, 0)
	c.OnResize(80, 24, t0)
	// Keep feeding events fast enough that the burst never settles on its
	// own, ticking alongside them so the coalescer enters the burst regime
	// (an untouched steady coalescer would apply after steady_delay_ms), so
	// only the hard deadline can force the apply.
	last := 80
	for i := 1; i <= 9; i++ {
		last = 80 + i
		at := t0.Add(time.Duration(i) * 10 * time.Millisecond)
		c.OnResize(last, 24, at)
		c.Tick(at)
	}
	if got := c.Tick(t0.Add(95 * time.Millisecond)); got == DecisionApply {
		t.Fatal("expected the burst to still be withheld before the hard deadline")
	}
	if got := c.Tick(t0.Add(100 * time.Millisecond)); got != DecisionApply {
		t.Fatalf("expected the hard deadline to force Apply, got %v", got)
	}
	w, _ := c.Apply()
	if w != last {
		t.Fatalf("expected the latched size to be the most recent one (%d), got %d", last, w)
	}
}

// TestCoalescerReturnsToSteadyAfterQuietPeriod exercises the cooldown_frames
// hysteresis directly, with burst_delay_ms and the hard deadline both
// disabled so only the rate-window/cooldown mechanism can move the regime.
func TestCoalescerReturnsToSteadyAfterQuietPeriod(t *testing.T) {
	cfg := DefaultCoalescerConfig()
	cfg.BurstDelayMs = 100000
	cfg.HardDeadlineMs = 100000
	cfg.RateWindowSize = 2
	c := NewResizeCoalescerWithConfig(cfg)
	t0 := time.Unix(0, 0)

	c.OnResize(80, 24, t0)
	c.OnResize(81, 24, t0.Add(10*time.Millisecond))
	c.Tick(t0.Add(10 * time.Millisecond))
	c.OnResize(82, 24, t0.Add(20*time.Millisecond))
	c.Tick(t0.Add(20 * time.Millisecond))
	if c.Regime() != "burst" {
		t.Fatalf("expected regime burst before the quiet period, got %q", c.Regime())
	}

	// No further OnResize calls: the 2-entry rate window stays fixed at the
	// last two events, so as now advances the rate keeps decaying.
	if got := c.Tick(t0.Add(280 * time.Millisecond)); got != DecisionNone {
		t.Fatalf("expected None on the first quiet tick (cooldown not yet satisfied), got %v", got)
	}
	if got := c.Tick(t0.Add(290 * time.Millisecond)); got != DecisionNone {
		t.Fatalf("expected None on the second quiet tick, got %v", got)
	}
	if got := c.Tick(t0.Add(300 * time.Millisecond)); got != DecisionNone {
		t.Fatalf("expected None on the third quiet tick (the one that satisfies cooldown_frames), got %v", got)
	}
	if c.Regime() != "steady" {
		t.Fatalf("expected regime to relax back to steady after cooldown_frames quiet ticks, got %q", c.Regime())
	}

	// Back in steady, the (much shorter) steady_delay_ms governs again.
	settled := t0.Add(300*time.Millisecond + time.Duration(cfg.SteadyDelayMs)*time.Millisecond)
	if got := c.Tick(settled); got != DecisionApply {
		t.Fatalf("expected Apply once back in steady regime and steady_delay_ms has elapsed, got %v", got)
	}
	w, _ := c.Apply()
	if w != 82 {
		t.Fatalf("expected the latched size to still be 82, got %d", w)
	}
}

func TestCoalescerConfigIsCallerConfigurable(t *testing.T) {
	cfg := CoalescerConfig{
		SteadyDelayMs:  1,
		BurstDelayMs:   2,
		HardDeadlineMs: 3,
		BurstEnterRate: 1000,
		BurstExitRate:  1,
		CooldownFrames: 1,
		RateWindowSize: 4,
	}
	c := NewResizeCoalescerWithConfig(cfg)
	t0 := time.Unix(0, 0)
	c.OnResize(10, 10, t0)
	// A 3ms hard deadline forces Apply almost immediately, regardless of
	// the (unreachably high) burst_enter_rate configured above.
	if got := c.Tick(t0.Add(3 * time.Millisecond)); got != DecisionApply {
		t.Fatalf("expected the custom hard deadline to force Apply, got %v", got)
	}
}
