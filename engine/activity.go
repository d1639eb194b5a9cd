package engine

import "time"

// InputActivity tracks pointer recency
// State machine: active (initial) <-> idle
//   - pointer move: Idle=false, restart countdown
//   - countdown elapsed with no move: Idle=true
//
// The countdown is a cancellable deferred task; its callback only reports the
// generation it was armed with, and stale generations are ignored
type InputActivity struct {
	MouseX, MouseY float64 // Local viewport pixels
	Idle           bool

	timeout time.Duration
	clock   Clock
	timer   Timer
	gen     uint64
	expire  func(gen uint64)
}

// NewInputActivity creates an active tracker; expire is invoked from the timer goroutine
func NewInputActivity(clock Clock, timeout time.Duration, expire func(gen uint64)) *InputActivity {
	return &InputActivity{
		timeout: timeout,
		clock:   clock,
		expire:  expire,
	}
}

// Move records a pointer move and restarts the countdown
func (a *InputActivity) Move(x, y float64) {
	a.MouseX, a.MouseY = x, y
	a.Idle = false
	a.Arm()
}

// Arm restarts the countdown without moving the pointer
func (a *InputActivity) Arm() {
	if a.timer != nil {
		a.timer.Stop()
	}
	a.gen++
	gen := a.gen
	a.timer = a.clock.AfterFunc(a.timeout, func() { a.expire(gen) })
}

// Expire handles a countdown callback; returns true on the active->idle edge
func (a *InputActivity) Expire(gen uint64) bool {
	if gen != a.gen || a.Idle {
		return false
	}
	a.Idle = true
	a.timer = nil
	return true
}

// Stop cancels any pending countdown
func (a *InputActivity) Stop() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}
