package engine

import "time"

// Timer is a pending deferred callback
type Timer interface {
	// Stop cancels the callback; false if it already fired or was stopped
	Stop() bool
}

// Clock provides time readings and deferred callbacks
// Callbacks run on their own goroutine and must only push into the event queue
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// RealClock is the system monotonic clock
type RealClock struct{}

func NewRealClock() *RealClock {
	return &RealClock{}
}

// Now returns the current time with monotonic clock reading
func (RealClock) Now() time.Time {
	return time.Now()
}

func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
