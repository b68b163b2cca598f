package app

import "time"

// maxDT caps a single step after a stall (debugger, window drag).
const maxDT = 0.25

// Clock measures the time between frames.
type Clock struct {
	now     func() time.Time
	last    time.Time
	started bool
	first   float64
}

// NewClock creates a clock reading time from now. The first Tick returns
// firstDT since there is no previous frame to measure against.
func NewClock(now func() time.Time, firstDT float64) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now, first: firstDT}
}

// Tick returns the seconds elapsed since the previous Tick.
func (c *Clock) Tick() float64 {
	t := c.now()
	if !c.started {
		c.started = true
		c.last = t
		return c.first
	}
	dt := t.Sub(c.last).Seconds()
	c.last = t
	if dt < 0 {
		return 0
	}
	return min(dt, maxDT)
}

// Reset makes the next Tick behave like the first one.
func (c *Clock) Reset() {
	c.started = false
}
