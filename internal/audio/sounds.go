package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Drop is played when a piece locks.
func Drop(rate beep.SampleRate) beep.Streamer {
	return note(220, 80*time.Millisecond, WaveSquare, 0.4, rate)
}

// Tick is played on every gravity step.
func Tick(rate beep.SampleRate) beep.Streamer {
	return note(660, 30*time.Millisecond, WaveTriangle, 0.08, rate)
}

// LineClear plays one rising sawtooth per cleared line, 70ms apart.
func LineClear(lines int, rate beep.SampleRate) beep.Streamer {
	lines = max(1, lines)
	parts := make([]beep.Streamer, 0, lines)
	for i := 0; i < lines; i++ {
		freq := 440 * (1 + float64(i)*0.15)
		parts = append(parts, delayed(note(freq, 150*time.Millisecond, WaveSaw, 0.25, rate), time.Duration(i)*70*time.Millisecond, rate))
	}
	return beep.Mix(parts...)
}

// LevelUp plays a C-E-G arpeggio, 90ms apart.
func LevelUp(rate beep.SampleRate) beep.Streamer {
	freqs := []float64{523.25, 659.25, 783.99}
	parts := make([]beep.Streamer, 0, len(freqs))
	for i, f := range freqs {
		parts = append(parts, delayed(note(f, 120*time.Millisecond, WaveSquare, 0.35, rate), time.Duration(i)*90*time.Millisecond, rate))
	}
	return beep.Mix(parts...)
}

// Melody is the background loop: soft sine notes on a fixed beat.
var Melody = []float64{196.0, 246.94, 293.66, 246.94, 220.0, 277.18, 329.63, 277.18}

const (
	musicBeat = 420 * time.Millisecond
	musicNote = 180 * time.Millisecond
)

// music loops the melody forever.
type music struct {
	rate    beep.SampleRate
	notes   []float64
	index   int
	current beep.Streamer
}

// NewMusic returns an endless streamer of the background melody.
func NewMusic(rate beep.SampleRate) beep.Streamer {
	return &music{rate: rate, notes: Melody}
}

func (m *music) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		if m.current == nil {
			f := m.notes[m.index%len(m.notes)]
			m.index++
			m.current = beep.Seq(
				note(f, musicNote, WaveSine, 0.08, m.rate),
				beep.Silence(m.rate.N(musicBeat-musicNote)),
			)
		}
		k, more := m.current.Stream(samples[n:])
		n += k
		if !more || k == 0 {
			m.current = nil
		}
	}
	return n, true
}

func (m *music) Err() error { return nil }
