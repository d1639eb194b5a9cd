package parameter

import "time"

// Viewport Chimes
const (
	AudioSampleRate = 48000
	AudioBuffer     = 100 * time.Millisecond

	// Join plays low then high, leave plays high then low
	ChimeLowHz  = 1046.50 // C6
	ChimeHighHz = 1567.98 // G6

	ChimeNoteDuration = 90 * time.Millisecond
	ChimeAttack       = 5 * time.Millisecond
	ChimeRelease      = 70 * time.Millisecond
	ChimeOvertoneMix  = 0.25
	ChimeVolume       = 0.35
)
