// Package clock provides an abstraction for time operations to improve testability.
// Instead of calling time.Now() directly, code can use the Clock interface which
// can be replaced in tests to control stage timings.
package clock

import "time"

// Clock is an interface for time operations.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the actual system time.
type RealClock struct{}

// Now returns the current time from the system clock.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Func adapts a function to the Clock interface.
type Func func() time.Time

// Now calls f.
func (f Func) Now() time.Time {
	return f()
}

// Ticking returns a Clock that starts at start and advances by step on
// every call to Now. It is not safe for concurrent use.
func Ticking(start time.Time, step time.Duration) Clock {
	next := start
	return Func(func() time.Time {
		now := next
		next = next.Add(step)
		return now
	})
}

var (
	_ Clock = RealClock{}
	_ Clock = Func(nil)
)
