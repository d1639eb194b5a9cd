// Package audio plays short chimes when peers join or leave the shared space
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/orbitals/parameter"
)

// Chime selects a cue
type Chime int

const (
	ChimeJoin Chime = iota
	ChimeLeave
)

func (c Chime) String() string {
	switch c {
	case ChimeJoin:
		return "join"
	case ChimeLeave:
		return "leave"
	default:
		return "unknown"
	}
}

// oscillator generates a finite sine wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
}

// NewOscillator creates a sine oscillator lasting duration
func NewOscillator(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		val := math.Sin(2 * math.Pi * o.phase)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	release      int
	totalSamples int
}

// NewEnvelope wraps s with attack/release shaping over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:     s,
		attack:       rate.N(attack),
		release:      rate.N(release),
		totalSamples: rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.totalSamples - e.position; e.release > 0 && remaining < e.release {
			vol = math.Min(vol, float64(remaining)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume is expressed as Silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// note is a bell-like tone: fundamental plus an octave overtone
func note(freq float64, rate beep.SampleRate) beep.Streamer {
	d := parameter.ChimeNoteDuration
	fund := NewEnvelope(NewOscillator(freq, d, rate), d, parameter.ChimeAttack, parameter.ChimeRelease, rate)
	over := NewEnvelope(NewOscillator(freq*2, d, rate), d, parameter.ChimeAttack, parameter.ChimeRelease/2, rate)
	return beep.Mix(
		newVolume(fund, 1-parameter.ChimeOvertoneMix),
		newVolume(over, parameter.ChimeOvertoneMix),
	)
}

// NewChime builds the two-note cue for c at volume vol
func NewChime(c Chime, rate beep.SampleRate, vol float64) beep.Streamer {
	first, second := parameter.ChimeLowHz, parameter.ChimeHighHz
	if c == ChimeLeave {
		first, second = second, first
	}
	return newVolume(beep.Seq(note(first, rate), note(second, rate)), vol)
}

// ChimeLength returns the sample count of any chime at rate
func ChimeLength(rate beep.SampleRate) int {
	return 2 * rate.N(parameter.ChimeNoteDuration)
}
