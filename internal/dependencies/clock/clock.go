// Package clock abstracts the system clock so session expiry and
// resource timestamps can be tested against a fixed time.
package clock

import "time"

// Clock yields the current time
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// New creates a RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current system time
func (c *RealClock) Now() time.Time {
	return time.Now()
}
