package engine

import (
	"errors"
	"fmt"
	"time"
)

// Rules holds the tunable constants of a session.
type Rules struct {
	Width  int
	Height int

	BaseDrop      time.Duration // drop interval at level 1
	DropStep      time.Duration // reduction per level
	MinDrop       time.Duration // floor
	LinesPerLevel int

	LinePoints     int // per line, multiplied by level
	TetrisBonus    int // extra for four lines at once, multiplied by level
	HardDropPoints int // per row travelled

	ClearAnimation time.Duration
	TimerPeriod    time.Duration
	Ultra120       time.Duration
	Ultra180       time.Duration

	Randomizer    RandomizerKind
	ClearProtocol ClearProtocol
}

// DefaultRules returns the standard 10x20 rule set.
func DefaultRules() Rules {
	return Rules{
		Width:          10,
		Height:         20,
		BaseDrop:       1000 * time.Millisecond,
		DropStep:       100 * time.Millisecond,
		MinDrop:        100 * time.Millisecond,
		LinesPerLevel:  10,
		LinePoints:     100,
		TetrisBonus:    400,
		HardDropPoints: 2,
		ClearAnimation: 400 * time.Millisecond,
		TimerPeriod:    100 * time.Millisecond,
		Ultra120:       120 * time.Second,
		Ultra180:       180 * time.Second,
		Randomizer:     RandomizerBag,
		ClearProtocol:  ClearAnimated,
	}
}

// Validate checks that the rules describe a playable game.
func (r Rules) Validate() error {
	var errs []error
	if r.Width < 4 || r.Height < 4 {
		errs = append(errs, fmt.Errorf("board %dx%d is too small", r.Width, r.Height))
	}
	if r.MinDrop <= 0 || r.BaseDrop < r.MinDrop {
		errs = append(errs, fmt.Errorf("drop interval base %v must be >= min %v > 0", r.BaseDrop, r.MinDrop))
	}
	if r.DropStep < 0 {
		errs = append(errs, fmt.Errorf("negative drop step %v", r.DropStep))
	}
	if r.LinesPerLevel <= 0 {
		errs = append(errs, fmt.Errorf("lines per level must be positive, got %d", r.LinesPerLevel))
	}
	if r.LinePoints < 0 || r.TetrisBonus < 0 || r.HardDropPoints < 0 {
		errs = append(errs, errors.New("point values must not be negative"))
	}
	if r.ClearAnimation < 0 || r.TimerPeriod <= 0 {
		errs = append(errs, errors.New("clear animation must be >= 0 and timer period > 0"))
	}
	if r.Ultra120 <= 0 || r.Ultra180 <= 0 {
		errs = append(errs, errors.New("ultra durations must be positive"))
	}
	if _, err := ParseRandomizerKind(string(r.Randomizer)); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseClearProtocol(string(r.ClearProtocol)); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// LineScore returns the points for clearing n lines at once at level.
func (r Rules) LineScore(n, level int) int {
	if n <= 0 {
		return 0
	}
	points := r.LinePoints * level * n
	if n == 4 {
		points += r.TetrisBonus * level
	}
	return points
}

// LevelFor returns the level reached after clearing lines in total.
func (r Rules) LevelFor(lines int) int {
	return lines/r.LinesPerLevel + 1
}

// DropInterval returns the gravity period at level.
func (r Rules) DropInterval(level int) time.Duration {
	return max(r.MinDrop, r.BaseDrop-time.Duration(level-1)*r.DropStep)
}
