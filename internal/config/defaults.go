package config

import (
	_ "embed"
)

//go:embed defaults/blockfall.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{Width: 10, Height: 20},
		Speed: SpeedConfig{
			BaseMs:        1000,
			StepMs:        100,
			MinMs:         100,
			LinesPerLevel: 10,
		},
		Scoring: ScoringConfig{
			LinePoints:     100,
			TetrisBonus:    400,
			HardDropPoints: 2,
		},
		Timing: TimingConfig{
			ClearAnimationMs: 400,
			TimerPeriodMs:    100,
			FrameRate:        60,
		},
		Modes: ModesConfig{
			Ultra120Ms: 120000,
			Ultra180Ms: 180000,
		},
		Engine: EngineConfig{
			Randomizer:    "bag",
			ClearProtocol: "animated",
		},
		Audio: AudioConfig{
			Volume: 0.15,
			Music:  true,
		},
	}
}
