package audio

import (
	"fmt"
	"log"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/orbitals/parameter"
)

// SoundManager owns the speaker and mixes chimes into it
// A manager that failed or was never initialized drops every cue
type SoundManager struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	played      int
}

func NewSoundManager() *SoundManager {
	return &SoundManager{
		rate:   beep.SampleRate(parameter.AudioSampleRate),
		mixer:  &beep.Mixer{},
		volume: parameter.ChimeVolume,
	}
}

// Initialize opens the speaker
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sm.rate, sm.rate.N(parameter.AudioBuffer)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Play queues a chime without blocking the caller beyond the speaker lock
func (sm *SoundManager) Play(c Chime) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s := NewChime(c, sm.rate, sm.volume)
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played++
	log.Printf("audio: %s chime", c)
}

// Played returns the number of chimes queued
func (sm *SoundManager) Played() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played
}

// Cleanup clears pending chimes and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}

// ChimeForChange maps a viewport count change to a cue; ok is false when the count is unchanged
func ChimeForChange(before, after int) (c Chime, ok bool) {
	switch {
	case after > before:
		return ChimeJoin, true
	case after < before:
		return ChimeLeave, true
	default:
		return 0, false
	}
}
