package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/audio"
	"github.com/vovakirdan/blockfall/internal/games/tetris/engine"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/platform/web"
	"github.com/vovakirdan/blockfall/internal/registry"
)

var flagSpectate string

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode, or the last played one.

Controls:
  Left/Right, h/l  - Move
  Down, j          - Soft drop
  Up, k, x         - Rotate
  Space            - Hard drop
  C                - Hold
  P/Esc            - Pause
  R                - Restart (after game over)
  M, +/-           - Mute, volume
  Q/Ctrl+C         - Quit

Modes:
  marathon  - Classic endless play
  zen       - No game over: a blocked spawn wipes the board
  daily     - Same piece sequence for everyone today
  weekly    - Same piece sequence for everyone this ISO week
  ultra120  - Score as much as possible in 2 minutes
  ultra180  - Score as much as possible in 3 minutes

Examples:
  blockfall play
  blockfall play daily
  blockfall play marathon --seed 42
  blockfall play ultra120 --spectate :8080`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a spectator feed on this address (e.g. :8080)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger := newLogger(io.Discard)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	st := loadSettings(store, logger)

	modeID := st.Mode
	if len(args) > 0 {
		modeID = args[0]
	}
	mode, err := engine.ParseMode(modeID)
	if err != nil {
		return fmt.Errorf("%w (run 'blockfall modes' to see available modes)", err)
	}

	game, err := registry.Create(string(mode))
	if err != nil {
		return err
	}

	player := audio.NewPlayer(audio.Options{Volume: st.Volume, Muted: st.Muted, Music: st.Music}, logger)
	//nolint:errcheck // The player logs the failure and stays silent
	player.Start()
	defer player.Close()

	deps := tui.Deps{Store: store, Audio: player, Logger: logger}

	addr := flagSpectate
	if addr == "" && !cmd.Flags().Changed("spectate") {
		addr = env.SpectateAddr
	}
	if addr != "" {
		hub := web.NewHub(logger)
		go func() {
			if err := hub.ListenAndServe(addr); err != nil {
				logger.Error("spectator feed stopped", "err", err)
			}
		}()
		defer hub.Close()
		deps.Feed = hub
	}

	if err := tui.Run(game, deps, runtimeConfig(), gameConfig.TimerPeriod(), st); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
