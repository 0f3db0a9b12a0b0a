package audio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectLengths(t *testing.T) {
	tests := []struct {
		name string
		out  []float64
		d    time.Duration
		gain float64
	}{
		{"drop", drain(t, Drop(testRate)), 80 * time.Millisecond, 0.4},
		{"tick", drain(t, Tick(testRate)), 30 * time.Millisecond, 0.08},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, tt.out, testRate.N(tt.d))
			assert.LessOrEqual(t, peak(tt.out), tt.gain)
			assert.Greater(t, peak(tt.out), tt.gain/2)
		})
	}
}

func TestLineClearGrowsWithLines(t *testing.T) {
	one := drain(t, LineClear(1, testRate))
	four := drain(t, LineClear(4, testRate))

	require.GreaterOrEqual(t, len(one), testRate.N(150*time.Millisecond))
	assert.Greater(t, len(four), len(one))
	assert.LessOrEqual(t, peak(four), 1.0)

	// Zero lines still plays a single note.
	assert.Len(t, drain(t, LineClear(0, testRate)), len(one))
}

func TestLevelUpArpeggio(t *testing.T) {
	out := drain(t, LevelUp(testRate))
	require.GreaterOrEqual(t, len(out), testRate.N(300*time.Millisecond))
	assert.LessOrEqual(t, peak(out), 3*0.35)
}

func TestMusicNeverDrains(t *testing.T) {
	m := NewMusic(testRate)
	buf := make([][2]float64, testRate.N(time.Second))

	for i := 0; i < 5; i++ {
		n, ok := m.Stream(buf)
		require.True(t, ok)
		require.Equal(t, len(buf), n)
	}
	assert.NoError(t, m.Err())
}

func TestMusicBeat(t *testing.T) {
	m := NewMusic(testRate)
	buf := make([][2]float64, testRate.N(musicBeat))
	m.Stream(buf)

	left := make([]float64, len(buf))
	for i, smp := range buf {
		left[i] = smp[0]
	}
	sounding := testRate.N(musicNote)
	assert.Greater(t, peak(left[:sounding]), 0.04)
	assert.LessOrEqual(t, peak(left[:sounding]), 0.08)
	assert.Zero(t, peak(left[sounding:]), "silent between notes")
}
