package lifecycle

import "time"

// Clock supplies the current time. Injectable so that time-dependent rules
// (auto-progress, lateness) are deterministic under test.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant. Test helper.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }
