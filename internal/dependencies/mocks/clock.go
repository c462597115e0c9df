package mocks

import (
	"sync"
	"time"
)

// Clock is a controllable clock for tests
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a mock clock fixed at the given time
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the mock's current time
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the mock clock forward
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
