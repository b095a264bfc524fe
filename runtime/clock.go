package runtime

import "time"

// FrameClock measures the time between frames.
type FrameClock struct {
	maxDelta time.Duration
	last     time.Time
}

// NewFrameClock creates a clock whose ticks never report more than maxDelta.
func NewFrameClock(maxDelta time.Duration) *FrameClock {
	return &FrameClock{maxDelta: maxDelta}
}

// Tick returns the seconds elapsed since the previous tick, clamped to
// [0, maxDelta]. The first tick returns 0.
func (c *FrameClock) Tick(now time.Time) float64 {
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	elapsed := now.Sub(c.last)
	c.last = now
	if elapsed < 0 {
		elapsed = 0
	}
	if c.maxDelta > 0 && elapsed > c.maxDelta {
		elapsed = c.maxDelta
	}
	return elapsed.Seconds()
}

// Reset makes the next tick return 0.
func (c *FrameClock) Reset() {
	c.last = time.Time{}
}
