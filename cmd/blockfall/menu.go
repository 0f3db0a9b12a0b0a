package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/audio"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start blockfall in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play, Tab for scores.
After a game ends, press B to return to the menu.

Examples:
  blockfall menu
  blockfall menu --fps 30
  blockfall menu --db ./blockfall.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger := newLogger(io.Discard)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	st := loadSettings(store, logger)

	player := audio.NewPlayer(audio.Options{Volume: st.Volume, Muted: st.Muted, Music: st.Music}, logger)
	//nolint:errcheck // The player logs the failure and stays silent
	player.Start()
	defer player.Close()

	deps := tui.Deps{Store: store, Audio: player, Logger: logger}
	if err := tui.RunSession(deps, runtimeConfig(), gameConfig.TimerPeriod(), st); err != nil {
		return fmt.Errorf("error running menu: %w", err)
	}
	return nil
}
