package hal

import "time"

type wallClock struct {
	start time.Time
}

func (c *wallClock) Elapsed() time.Duration { return time.Since(c.start) }

// tickClock advances by a fixed step per tick, so headless runs are
// reproducible.
type tickClock struct {
	step time.Duration
	n    int64
}

func (c *tickClock) Elapsed() time.Duration { return time.Duration(c.n) * c.step }
func (c *tickClock) advance()               { c.n++ }
