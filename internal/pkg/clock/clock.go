package clock

import "time"

// Clocker returns the current time.
type Clocker interface {
	Now() time.Time
}

// TimeClocker reads the system clock.
type TimeClocker struct{}

// New returns a TimeClocker.
func New() *TimeClocker {
	return &TimeClocker{}
}

// Now implements Clocker.
func (*TimeClocker) Now() time.Time {
	return time.Now()
}

// Fixed is a Clocker frozen at a single instant.
type Fixed time.Time

// Now implements Clocker.
func (f Fixed) Now() time.Time {
	return time.Time(f)
}
