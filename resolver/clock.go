package resolver

import "time"

// monotonicClock wraps a now() func, masking small clock regressions (up to
// one second) and flagging larger ones per spec.md §4.E / §5: "Clock
// regressions up to one second are masked; larger regressions immediately
// yield Timeout."
type monotonicClock struct {
	now  func() time.Time
	last time.Time
}

func newMonotonicClock(now func() time.Time) *monotonicClock {
	return &monotonicClock{now: now}
}

// tick returns the current time, or ok=false if a clock regression larger
// than one second was observed.
func (c *monotonicClock) tick() (t time.Time, ok bool) {
	now := c.now()

	if !c.last.IsZero() && now.Before(c.last) {
		if c.last.Sub(now) > time.Second {
			return now, false
		}
		now = c.last
	}

	c.last = now
	return now, true
}
