package parameter

import "time"

// Frame Loop & Animation Timing
const (
	// FrameRate is the default scheduler frame rate
	FrameRate = 60

	// AnimationFalloff is the per-tick easing factor for offset and object transforms
	AnimationFalloff = 0.05

	// IdleTimeout is the quiet interval after the last pointer move before idle-orbit mode
	IdleTimeout = 5000 * time.Millisecond

	// MaxFrameBehind is the number of frame intervals the scheduler tolerates before resyncing its deadline
	MaxFrameBehind = 2
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 1024

	// EventBufferMask is the bitmask for fast modulo operations (1024 - 1)
	EventBufferMask = 1023
)

// Idle Orbit
const (
	// OrbitPhaseStep is the per-slot time phase offset in seconds
	OrbitPhaseStep = 0.5

	// OrbitRadiusBase is the orbit radius of slot 0 in pixels
	OrbitRadiusBase = 60.0

	// OrbitRadiusStep is the per-slot orbit radius increment
	OrbitRadiusStep = 10.0

	// OrbitSpeedBase is the angular speed of slot 0
	OrbitSpeedBase = 0.5

	// OrbitSpeedStep is the per-slot angular speed increment
	OrbitSpeedStep = 0.1

	// OrbitFlattenY squashes the vertical axis into an ellipse
	OrbitFlattenY = 0.7

	// OrbitDepthRate is the depth oscillation rate relative to the planar rate
	OrbitDepthRate = 0.5
)
