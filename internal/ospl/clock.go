package ospl

import (
	"sync"
	"time"
)

// Clock abstracts time retrieval so business logic is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// MonotonicClock hands out strictly increasing instants at microsecond
// resolution. Import timestamps come from it so two photos imported through
// the same library never derive the same display name.
type MonotonicClock struct {
	base Clock
	mu   sync.Mutex
	last time.Time
}

// NewMonotonicClock wraps base.
func NewMonotonicClock(base Clock) *MonotonicClock {
	return &MonotonicClock{base: base}
}

func (c *MonotonicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.base.Now().Truncate(time.Microsecond)
	if !now.After(c.last) {
		now = c.last.Add(time.Microsecond)
	}
	c.last = now
	return now
}
