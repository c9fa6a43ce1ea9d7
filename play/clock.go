package play

import "time"

// Clock is the tick-driven accumulator that decides when the active
// frame should advance. It owns no goroutine or timer; an external
// render loop feeds it timestamps through Tick, so ticks may arrive at
// irregular intervals and no tick means no advance.
type Clock struct {
	running  bool
	hasLast  bool
	last     time.Time
	elapsed  time.Duration
	duration time.Duration
}

// NewClock creates an instance of a Clock for the given frame rate.
// The clock starts idle.
func NewClock(fps float64) *Clock {
	c := new(Clock)
	c.SetRate(fps)
	return c
}

// SetRate changes the frame duration to 1/fps seconds and resets the
// accumulator so the next advance is not evaluated against a stale
// interval. fps must be positive; callers validate.
func (c *Clock) SetRate(fps float64) {
	c.duration = time.Duration(float64(time.Second) / fps)
	c.Reset()
}

// FrameDuration returns the current frame interval.
func (c *Clock) FrameDuration() time.Duration {
	return c.duration
}

// Start moves the clock from idle to running. The first tick after
// Start establishes the reference timestamp with zero elapsed.
func (c *Clock) Start() {
	c.running = true
}

// Stop moves the clock to idle; subsequent ticks are ignored.
func (c *Clock) Stop() {
	c.running = false
	c.Reset()
}

// Running reports whether ticks currently accumulate.
func (c *Clock) Running() bool {
	return c.running
}

// Reset zeroes the accumulator and drops the reference timestamp
// without changing the idle/running state. Called on seek and on frame
// rate changes so stale elapsed time cannot trigger an immediate
// advance.
func (c *Clock) Reset() {
	c.elapsed = 0
	c.hasLast = false
}

// Progress returns how far the current frame interval has elapsed,
// in [0,1].
func (c *Clock) Progress() float64 {
	if c.duration <= 0 {
		return 0
	}
	p := float64(c.elapsed) / float64(c.duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Tick advances the accumulator to now and reports whether the active
// frame should move on. At most one advance is reported per tick. On
// advance exactly one frame duration is subtracted rather than zeroing
// the accumulator, so the fractional remainder carries over and long
// runs do not drift behind the wall clock.
func (c *Clock) Tick(now time.Time) bool {
	if !c.running {
		return false
	}
	if !c.hasLast {
		c.last = now
		c.hasLast = true
		return false
	}
	c.elapsed += now.Sub(c.last)
	c.last = now
	if c.elapsed >= c.duration {
		c.elapsed -= c.duration
		return true
	}
	return false
}
