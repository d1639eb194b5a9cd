package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/orbitals/parameter"
	"github.com/lixenwraith/orbitals/status"
)

// ErrSchedulerRunning is returned when Run is called on a running scheduler
var ErrSchedulerRunning = errors.New("engine: scheduler already running")

// Scheduler drives Engine.Tick once per frame until its context ends
// Handles deadline drift without busy-wait; nothing inside a frame blocks
type Scheduler struct {
	engine   *Engine
	clock    Clock
	interval time.Duration
	onFrame  func() // Render hook, runs after each tick on the scheduler goroutine

	running atomic.Bool
	frames  atomic.Uint64

	statFrameMs *status.AtomicFloat
}

// NewScheduler creates a scheduler at fps frames per second
func NewScheduler(e *Engine, clock Clock, fps int, onFrame func()) *Scheduler {
	if fps <= 0 {
		fps = parameter.FrameRate
	}
	if onFrame == nil {
		onFrame = func() {}
	}
	return &Scheduler{
		engine:      e,
		clock:       clock,
		interval:    time.Second / time.Duration(fps),
		onFrame:     onFrame,
		statFrameMs: e.Status.Floats.Get("engine.frame_ms"),
	}
}

// Interval returns the frame period
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Frames returns the number of frames run
func (s *Scheduler) Frames() uint64 {
	return s.frames.Load()
}

// Run ticks until ctx is cancelled
func (s *Scheduler) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrSchedulerRunning
	}
	defer s.running.Store(false)

	start := s.clock.Now()
	deadline := start

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		s.Step(s.clock.Now().Sub(start))

		now := s.clock.Now()
		deadline = deadline.Add(s.interval)
		if now.Sub(deadline) > s.interval*parameter.MaxFrameBehind {
			deadline = now.Add(s.interval)
		}

		wait := deadline.Sub(now)
		if wait <= 0 {
			continue
		}
		timer.Reset(wait)
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
	}
}

// Step runs one frame: tick then render hook
func (s *Scheduler) Step(elapsed time.Duration) {
	began := time.Now()
	s.engine.Tick(elapsed)
	s.onFrame()
	s.frames.Add(1)
	s.statFrameMs.Smooth(float64(time.Since(began).Microseconds())/1000, 0.1)
}
