package engine

import (
	"testing"
	"time"
)

func TestMockClockAdvanceFiresInOrder(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)

	var fired []string
	var firedAt []time.Time
	clock.AfterFunc(2*time.Second, func() { fired = append(fired, "b"); firedAt = append(firedAt, clock.Now()) })
	clock.AfterFunc(1*time.Second, func() { fired = append(fired, "a"); firedAt = append(firedAt, clock.Now()) })
	stopped := clock.AfterFunc(1500*time.Millisecond, func() { fired = append(fired, "x") })

	if !stopped.Stop() {
		t.Fatal("Expected Stop to cancel a pending timer")
	}
	if stopped.Stop() {
		t.Error("Expected second Stop to report false")
	}

	clock.Advance(1999 * time.Millisecond)
	if len(fired) != 1 || fired[0] != "a" {
		t.Fatalf("Expected only a to fire, got %v", fired)
	}
	if !firedAt[0].Equal(start.Add(time.Second)) {
		t.Errorf("Expected a to observe its deadline, got %v", firedAt[0])
	}
	if clock.Pending() != 1 {
		t.Errorf("Expected 1 pending timer, got %d", clock.Pending())
	}

	clock.Advance(time.Millisecond)
	if len(fired) != 2 || fired[1] != "b" {
		t.Errorf("Expected b at its exact deadline, got %v", fired)
	}
	if !clock.Now().Equal(start.Add(2 * time.Second)) {
		t.Errorf("Unexpected clock time %v", clock.Now())
	}
}

func TestMockClockTimerArmedDuringAdvance(t *testing.T) {
	clock := NewMockClock(time.Unix(0, 0))
	count := 0
	var rearm func()
	rearm = func() {
		count++
		if count < 3 {
			clock.AfterFunc(time.Second, rearm)
		}
	}
	clock.AfterFunc(time.Second, rearm)

	clock.Advance(10 * time.Second)
	if count != 3 {
		t.Errorf("Expected chained timers to fire 3 times, got %d", count)
	}
}

func TestRealClockAfterFunc(t *testing.T) {
	done := make(chan struct{})
	NewRealClock().AfterFunc(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Timer did not fire")
	}
}
