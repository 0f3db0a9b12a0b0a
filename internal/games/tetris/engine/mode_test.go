package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeKey(t *testing.T) {
	sunday := time.Date(2026, 10, 18, 23, 59, 0, 0, time.UTC)
	newYear := time.Date(2027, 1, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		mode Mode
		at   time.Time
		want string
	}{
		{ModeMarathon, sunday, "marathon"},
		{ModeZen, sunday, "zen"},
		{ModeUltra120, sunday, "ultra120"},
		{ModeDaily, sunday, "daily-20261018"},
		{ModeWeekly, sunday, "weekly-2026W42"},
		{ModeWeekly, newYear, "weekly-2026W53"},
		{ModeDaily, newYear, "daily-20270101"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ModeKey(tt.mode, tt.at))
		})
	}
}

func TestSeedFor(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)

	assert.Equal(t, Seed{Text: "daily-" + DateKey(now)}, SeedFor(ModeDaily, now, 5))
	assert.Equal(t, Seed{Value: 5}, SeedFor(ModeMarathon, now, 5))
	assert.Equal(t, Seed{Value: now.UnixMilli()}, SeedFor(ModeZen, now, 0))
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
		assert.NotEmpty(t, m.Title())
		assert.NotEmpty(t, m.Description())
	}
	_, err := ParseMode("sprint")
	assert.Error(t, err)
}

func TestModeFlags(t *testing.T) {
	r := DefaultRules()
	assert.True(t, ModeZen.NoLoss())
	assert.False(t, ModeMarathon.NoLoss())

	d, ok := ModeUltra120.Countdown(r)
	assert.True(t, ok)
	assert.Equal(t, 2*time.Minute, d)
	d, ok = ModeUltra180.Countdown(r)
	assert.True(t, ok)
	assert.Equal(t, 3*time.Minute, d)
	_, ok = ModeDaily.Countdown(r)
	assert.False(t, ok)
}

func TestScoring(t *testing.T) {
	r := DefaultRules()
	assert.Equal(t, 0, r.LineScore(0, 3))
	assert.Equal(t, 100, r.LineScore(1, 1))
	assert.Equal(t, 600, r.LineScore(2, 3))
	assert.Equal(t, 800, r.LineScore(4, 1))
	assert.Equal(t, 1600, r.LineScore(4, 2))

	assert.Equal(t, 1, r.LevelFor(0))
	assert.Equal(t, 1, r.LevelFor(9))
	assert.Equal(t, 2, r.LevelFor(10))
	assert.Equal(t, 4, r.LevelFor(35))

	assert.Equal(t, time.Second, r.DropInterval(1))
	assert.Equal(t, 900*time.Millisecond, r.DropInterval(2))
	assert.Equal(t, 100*time.Millisecond, r.DropInterval(10))
	assert.Equal(t, 100*time.Millisecond, r.DropInterval(15))
}

func TestRulesValidate(t *testing.T) {
	require.NoError(t, DefaultRules().Validate())

	r := DefaultRules()
	r.Width = 2
	r.LinesPerLevel = 0
	r.Randomizer = "dice"
	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too small")
	assert.Contains(t, err.Error(), "lines per level")
	assert.Contains(t, err.Error(), "dice")
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "00:00", FormatClock(-time.Second))
	assert.Equal(t, "01:01", FormatClock(61900*time.Millisecond))
	assert.Equal(t, "02:00", FormatClock(2*time.Minute))
	assert.Equal(t, "61:00", FormatClock(61*time.Minute))
}

func TestModeTimerStopFreezesValue(t *testing.T) {
	start := time.Unix(0, 0)
	tm := NewCountUpTimer()
	tm.Start(start)
	tm.Stop(start.Add(3 * time.Second))

	assert.False(t, tm.Running())
	assert.Equal(t, 3*time.Second, tm.Value(start.Add(time.Hour)))

	tm.Reset()
	assert.Equal(t, time.Duration(0), tm.Value(start))
}
