package testhelpers

import (
	"time"
)

// FixedClock returns a constant time, for deterministic tests
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Time
}
