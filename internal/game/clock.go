package game

import "time"

// maxCatchUp bounds the ticks run for one long frame so a stall does not
// replay seconds of simulation at once.
const maxCatchUp = 5

// Clock is a fixed-timestep accumulator. The render loop feeds it wall
// time; it reports how many simulation ticks are due.
type Clock struct {
	step time.Duration
	acc  time.Duration
}

// NewClock creates a clock ticking every step.
func NewClock(step time.Duration) *Clock {
	return &Clock{step: step}
}

// Step returns the fixed tick length.
func (c *Clock) Step() time.Duration { return c.step }

// Advance adds elapsed wall time and returns the number of ticks to run.
func (c *Clock) Advance(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	c.acc += elapsed
	n := int(c.acc / c.step)
	c.acc -= time.Duration(n) * c.step
	if n > maxCatchUp {
		n = maxCatchUp
	}
	return n
}
