package tui

import "time"

// resizeRegime tracks whether resize events are arriving in a quiet trickle
// ("steady") or a rapid flurry ("burst"), so the coalescer can trade
// latency for fewer redraws exactly when the terminal is being dragged.
type resizeRegime int

const (
	regimeSteady resizeRegime = iota
	regimeBurst
)

// CoalescerConfig names every knob the resize coalescer's regime machine and
// delay schedule are driven by. Defaults match the ones spec.md §4.C8 gives
// explicitly (SteadyDelayMs, BurstDelayMs, HardDeadlineMs); the rate-based
// hysteresis knobs have no spec-given default, so DefaultCoalescerConfig
// picks conservative values and documents them as a resolved design choice.
type CoalescerConfig struct {
	// SteadyDelayMs is the coalesce window while in the steady regime.
	SteadyDelayMs int
	// BurstDelayMs is the coalesce window while in the burst regime, once
	// the rate-based predicate (see Tick) allows an apply.
	BurstDelayMs int
	// HardDeadlineMs is the maximum time a pending resize may wait before
	// being force-applied regardless of regime. 0 means "apply immediately".
	HardDeadlineMs int
	// BurstEnterRate is the events/s rate at or above which the regime
	// switches to burst.
	BurstEnterRate float64
	// BurstExitRate is the events/s rate below which, sustained for
	// CooldownFrames consecutive ticks, the regime returns to steady.
	BurstExitRate float64
	// CooldownFrames is how many consecutive ticks the rate must stay below
	// BurstExitRate before the regime leaves burst.
	CooldownFrames int
	// RateWindowSize is how many of the most recent resize events are kept
	// to estimate the current events/s rate.
	RateWindowSize int
}

// DefaultCoalescerConfig returns spec.md §4.C8's defaults: 16ms steady delay,
// 40ms burst delay, 100ms hard deadline. The rate-hysteresis knobs
// (burst_enter_rate/burst_exit_rate/cooldown_frames/rate_window_size) are not
// given explicit defaults in spec.md; 20 events/s to enter burst, 8 events/s
// to leave it (held for 3 ticks), measured over the last 8 events, is this
// repo's resolution of that Open Question.
func DefaultCoalescerConfig() CoalescerConfig {
	return CoalescerConfig{
		SteadyDelayMs:  16,
		BurstDelayMs:   40,
		HardDeadlineMs: 100,
		BurstEnterRate: 20,
		BurstExitRate:  8,
		CooldownFrames: 3,
		RateWindowSize: 8,
	}
}

// CoalesceDecision is the coalescer's verdict for a given Tick.
type CoalesceDecision int

const (
	// DecisionNone means no pending resize needs action yet.
	DecisionNone CoalesceDecision = iota
	// DecisionApply means the latched size should be applied now.
	DecisionApply
	// DecisionPlaceholder means a placeholder (e.g. "resizing…") should be
	// shown while a burst is still in progress.
	DecisionPlaceholder
)

// ResizeCoalescer latches the most recent size during a flurry of resize
// events and decides when it is safe to actually apply it, per the
// steady/burst hysteresis and hard-deadline rules in spec.md §4.C8.
type ResizeCoalescer struct {
	cfg      CoalescerConfig
	regime   resizeRegime
	pending  bool
	latchedW, latchedH int
	firstPending time.Time
	recent       []time.Time // sliding window of recent OnResize timestamps
	belowExitStreak int      // consecutive Ticks observed with rate < BurstExitRate
}

// NewResizeCoalescer creates a coalescer in the steady regime using
// DefaultCoalescerConfig.
func NewResizeCoalescer() *ResizeCoalescer {
	return NewResizeCoalescerWithConfig(DefaultCoalescerConfig())
}

// NewResizeCoalescerWithConfig creates a coalescer in the steady regime
// using an explicit configuration.
func NewResizeCoalescerWithConfig(cfg CoalescerConfig) *ResizeCoalescer {
	return &ResizeCoalescer{cfg: cfg}
}

// OnResize records a new (w, h) observation at time now, latching it as the
// pending target and folding it into the sliding rate window Tick uses to
// drive the regime machine.
func (c *ResizeCoalescer) OnResize(w, h int, now time.Time) {
	if !c.pending {
		c.firstPending = now
	}
	c.pending = true
	c.latchedW, c.latchedH = w, h
	c.recent = append(c.recent, now)
	if n := c.cfg.RateWindowSize; n > 0 && len(c.recent) > n {
		c.recent = c.recent[len(c.recent)-n:]
	}
}

// rate estimates the current events/s rate from the sliding window: the
// number of intervals between consecutive recorded events divided by the
// real time those intervals span. Fewer than two samples can't establish a
// rate, so it reports 0 (never enough, on its own, to enter burst).
func (c *ResizeCoalescer) rate(now time.Time) float64 {
	if len(c.recent) < 2 {
		return 0
	}
	// Measured against now, not the window's own last timestamp, so the
	// rate decays toward 0 as the burst goes quiet even if no further
	// OnResize call ever arrives to refresh the window.
	span := now.Sub(c.recent[0]).Seconds()
	if span <= 0 {
		// Multiple events landed at (or effectively at) the same instant:
		// treat this as an unambiguous burst signal.
		return c.cfg.BurstEnterRate
	}
	return float64(len(c.recent)-1) / span
}

// Tick evaluates the coalescer at time now and returns what the caller
// should do, per spec.md §4.C8's decision rule, in order:
//  1. nothing pending -> None.
//  2. elapsed since first pending >= hard deadline -> Apply (forced).
//  3. the active regime's coalesce window has elapsed, and (for burst) the
//     rate-based predicate allows it (the measured rate has already dropped
//     below BurstExitRate) -> Apply.
//  4. measured rate >= BurstEnterRate -> enter burst regime, Placeholder.
//  5. in burst regime with the rate held below BurstExitRate for
//     CooldownFrames consecutive ticks -> return to steady regime.
//  6. otherwise -> None.
func (c *ResizeCoalescer) Tick(now time.Time) CoalesceDecision {
	if !c.pending {
		return DecisionNone
	}
	elapsed := now.Sub(c.firstPending)
	hardDeadline := time.Duration(c.cfg.HardDeadlineMs) * time.Millisecond
	if elapsed >= hardDeadline {
		return DecisionApply
	}
	rate := c.rate(now)
	switch c.regime {
	case regimeSteady:
		if elapsed >= time.Duration(c.cfg.SteadyDelayMs)*time.Millisecond {
			return DecisionApply
		}
	case regimeBurst:
		quiet := rate < c.cfg.BurstExitRate
		if quiet && elapsed >= time.Duration(c.cfg.BurstDelayMs)*time.Millisecond {
			return DecisionApply
		}
	}
	if rate >= c.cfg.BurstEnterRate {
		c.regime = regimeBurst
		c.belowExitStreak = 0
		return DecisionPlaceholder
	}
	if c.regime == regimeBurst {
		if rate < c.cfg.BurstExitRate {
			c.belowExitStreak++
			if c.belowExitStreak >= c.cfg.CooldownFrames {
				c.regime = regimeSteady
				c.belowExitStreak = 0
			}
		} else {
			c.belowExitStreak = 0
		}
	}
	return DecisionNone
}

// Apply clears the pending latch and returns the latched size, marking it
// as consumed. Callers should call this exactly when Tick returned
// DecisionApply.
func (c *ResizeCoalescer) Apply() (w, h int) {
	w, h = c.latchedW, c.latchedH
	c.pending = false
	c.recent = nil
	c.belowExitStreak = 0
	return
}

// Regime reports the coalescer's current steady/burst classification, for
// diagnostics (LogSink.RegimeChange).
func (c *ResizeCoalescer) Regime() string {
	if c.regime == regimeBurst {
		return "burst"
	}
	return "steady"
}

// Pending reports whether a resize is latched and awaiting application.
func (c *ResizeCoalescer) Pending() bool { return c.pending }
