package ports

import "time"

// Clock abstracts time for deterministic build timestamps in tests
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// RealClock implements Clock using the time package
type RealClock struct{}

// NewRealClock creates a wall clock
func NewRealClock() Clock {
	return RealClock{}
}

// Now returns the current time
func (RealClock) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed since t
func (RealClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// FixedClock always reports the same instant
type FixedClock struct {
	At time.Time
}

// Now returns the fixed instant
func (c FixedClock) Now() time.Time {
	return c.At
}

// Since measures from the fixed instant
func (c FixedClock) Since(t time.Time) time.Duration {
	return c.At.Sub(t)
}
