package engine

import (
	"fmt"
	"time"
)

// ModeTimer measures play time. Count-up timers accumulate elapsed time over
// running segments; countdown timers consume a fixed budget tick by tick.
// Both ignore time spent paused.
type ModeTimer struct {
	countdown bool
	total     time.Duration

	remaining time.Duration
	lastTick  time.Time

	elapsed      time.Duration
	segmentStart time.Time

	running bool // started and not stopped
	active  bool // running and not paused
}

// NewCountUpTimer returns a timer that shows elapsed play time.
func NewCountUpTimer() *ModeTimer {
	return &ModeTimer{}
}

// NewCountdownTimer returns a timer that runs out after total.
func NewCountdownTimer(total time.Duration) *ModeTimer {
	return &ModeTimer{countdown: true, total: total, remaining: total}
}

// Countdown reports whether t counts down.
func (t *ModeTimer) Countdown() bool { return t.countdown }

// Running reports whether t has been started and not stopped.
func (t *ModeTimer) Running() bool { return t.running }

// Start begins timing from zero (or from the full budget).
func (t *ModeTimer) Start(now time.Time) {
	t.remaining = t.total
	t.lastTick = now
	t.elapsed = 0
	t.segmentStart = now
	t.running = true
	t.active = true
}

// Pause credits the running segment and stops the clock.
func (t *ModeTimer) Pause(now time.Time) {
	if !t.active {
		return
	}
	t.credit(now)
	t.active = false
}

// Resume re-anchors the clock at now.
func (t *ModeTimer) Resume(now time.Time) {
	if !t.running || t.active {
		return
	}
	t.lastTick = now
	t.segmentStart = now
	t.active = true
}

// Tick advances a countdown and reports whether it has run out.
// Count-up timers never expire.
func (t *ModeTimer) Tick(now time.Time) bool {
	if !t.active || !t.countdown {
		return false
	}
	t.credit(now)
	return t.remaining <= 0
}

// Stop freezes the timer at its current value.
func (t *ModeTimer) Stop(now time.Time) {
	if t.active {
		t.credit(now)
	}
	t.running = false
	t.active = false
}

// Reset returns the timer to its unstarted state.
func (t *ModeTimer) Reset() {
	*t = ModeTimer{countdown: t.countdown, total: t.total, remaining: t.total}
}

// Value returns the remaining time for countdowns and elapsed time otherwise.
func (t *ModeTimer) Value(now time.Time) time.Duration {
	if t.countdown {
		return t.remaining
	}
	if t.active {
		return t.elapsed + now.Sub(t.segmentStart)
	}
	return t.elapsed
}

// Played returns how much play time has been used.
func (t *ModeTimer) Played(now time.Time) time.Duration {
	if t.countdown {
		return t.total - t.remaining
	}
	return t.Value(now)
}

func (t *ModeTimer) credit(now time.Time) {
	if t.countdown {
		t.remaining = max(0, t.remaining-now.Sub(t.lastTick))
		t.lastTick = now
		return
	}
	t.elapsed += now.Sub(t.segmentStart)
	t.segmentStart = now
}

// FormatClock renders d as mm:ss, rounding partial seconds down.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
