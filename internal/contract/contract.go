// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import "time"

// Clock supplies the current time to the pipeline.
// Aggregates never depend on it; it only stamps results and measures elapsed time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

// Now returns the time reported by the wrapped function.
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock is the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}
