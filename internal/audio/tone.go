// Package audio synthesizes sound effects and background music with beep.
// Nothing is sampled from files; every sound is a short enveloped oscillator.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave selects an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
	WaveSaw
)

// oscillator generates a fixed-length periodic wave.
type oscillator struct {
	freq     float64
	phase    float64
	wave     Wave
	rate     beep.SampleRate
	position int
	length   int
}

// NewOscillator returns a streamer playing freq for d.
func NewOscillator(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{freq: freq, wave: wave, rate: rate, length: rate.N(d)}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveTriangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope ramps linearly up to peak over the attack, then decays
// exponentially towards silence by the end of the note.
type envelope struct {
	streamer beep.Streamer
	peak     float64
	attack   int
	length   int
	decay    float64 // per-sample multiplier after the attack
	gain     float64
	position int
}

const envelopeFloor = 0.0001

// NewEnvelope shapes s to a percussive note of length d.
func NewEnvelope(s beep.Streamer, d, attack time.Duration, peak float64, rate beep.SampleRate) beep.Streamer {
	length := rate.N(d)
	att := min(rate.N(attack), length)
	decay := 1.0
	if tail := length - att; tail > 0 && peak > envelopeFloor {
		decay = math.Pow(envelopeFloor/peak, 1/float64(tail))
	}
	return &envelope{streamer: s, peak: peak, attack: att, length: length, decay: decay, gain: peak}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.length {
			return i, i > 0
		}
		vol := e.gain
		if e.position < e.attack {
			vol = e.peak * float64(e.position) / float64(e.attack)
		} else {
			e.gain *= e.decay
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

const noteAttack = 10 * time.Millisecond

// note is an enveloped tone.
func note(freq float64, d time.Duration, wave Wave, peak float64, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, noteAttack, peak, rate)
}

// delayed prefixes s with silence.
func delayed(s beep.Streamer, d time.Duration, rate beep.SampleRate) beep.Streamer {
	if d <= 0 {
		return s
	}
	return beep.Seq(beep.Silence(rate.N(d)), s)
}

// newVolume scales s linearly by vol. Zero or less is silent.
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	setVolume(v, vol)
	return v
}

func setVolume(v *effects.Volume, vol float64) {
	if vol <= 0 {
		v.Volume = 0
		v.Silent = true
		return
	}
	v.Volume = math.Log2(vol)
	v.Silent = false
}
