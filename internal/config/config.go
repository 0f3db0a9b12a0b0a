// Package config provides YAML-based rule configuration and environment
// loading for blockfall.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/blockfall/internal/games/tetris/engine"
)

// Config contains every tunable of the game and its ambient services.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Speed   SpeedConfig   `yaml:"speed"`
	Scoring ScoringConfig `yaml:"scoring"`
	Timing  TimingConfig  `yaml:"timing"`
	Modes   ModesConfig   `yaml:"modes"`
	Engine  EngineConfig  `yaml:"engine"`
	Audio   AudioConfig   `yaml:"audio"`
}

// BoardConfig defines the playfield size in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SpeedConfig defines gravity and its progression.
type SpeedConfig struct {
	BaseMs        int `yaml:"base_ms"`
	StepMs        int `yaml:"step_ms"`
	MinMs         int `yaml:"min_ms"`
	LinesPerLevel int `yaml:"lines_per_level"`
}

// ScoringConfig defines point values.
type ScoringConfig struct {
	LinePoints     int `yaml:"line_points"`
	TetrisBonus    int `yaml:"tetris_bonus"`
	HardDropPoints int `yaml:"hard_drop_points"`
}

// TimingConfig defines animation and clock periods.
type TimingConfig struct {
	ClearAnimationMs int `yaml:"clear_animation_ms"`
	TimerPeriodMs    int `yaml:"timer_period_ms"`
	FrameRate        int `yaml:"frame_rate"`
}

// ModesConfig defines per-mode parameters.
type ModesConfig struct {
	Ultra120Ms int `yaml:"ultra120_ms"`
	Ultra180Ms int `yaml:"ultra180_ms"`
}

// EngineConfig selects engine strategies.
type EngineConfig struct {
	Randomizer    string `yaml:"randomizer"`     // "bag" or "uniform"
	ClearProtocol string `yaml:"clear_protocol"` // "animated" or "immediate"
}

// AudioConfig defines sound defaults. Stored settings override them.
type AudioConfig struct {
	Volume float64 `yaml:"volume"`
	Muted  bool    `yaml:"muted"`
	Music  bool    `yaml:"music"`
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// Rules converts the configuration into engine rules.
func (c Config) Rules() engine.Rules {
	return engine.Rules{
		Width:          c.Board.Width,
		Height:         c.Board.Height,
		BaseDrop:       ms(c.Speed.BaseMs),
		DropStep:       ms(c.Speed.StepMs),
		MinDrop:        ms(c.Speed.MinMs),
		LinesPerLevel:  c.Speed.LinesPerLevel,
		LinePoints:     c.Scoring.LinePoints,
		TetrisBonus:    c.Scoring.TetrisBonus,
		HardDropPoints: c.Scoring.HardDropPoints,
		ClearAnimation: ms(c.Timing.ClearAnimationMs),
		TimerPeriod:    ms(c.Timing.TimerPeriodMs),
		Ultra120:       ms(c.Modes.Ultra120Ms),
		Ultra180:       ms(c.Modes.Ultra180Ms),
		Randomizer:     engine.RandomizerKind(c.Engine.Randomizer),
		ClearProtocol:  engine.ClearProtocol(c.Engine.ClearProtocol),
	}
}

// TimerPeriod returns the mode clock tick period.
func (c Config) TimerPeriod() time.Duration {
	return ms(c.Timing.TimerPeriodMs)
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if err := c.Rules().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Timing.FrameRate <= 0 || c.Timing.FrameRate > 240 {
		errs = append(errs, fmt.Errorf("frame rate %d out of range 1..240", c.Timing.FrameRate))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio volume %v out of range 0..1", c.Audio.Volume))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
