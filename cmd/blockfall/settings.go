package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/tetris/engine"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagSetMode   string
	flagSetVolume float64
	flagSetMute   bool
	flagSetMusic  bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change stored preferences",
	Long: `Print the stored preferences, changing the ones given as flags first.

Examples:
  blockfall settings
  blockfall settings --volume 0.3 --mute=false
  blockfall settings --mode daily --music=false`,
	Args: cobra.NoArgs,
	RunE: runSettings,
}

func init() {
	settingsCmd.Flags().StringVar(&flagSetMode, "mode", "", "Default mode for 'play'")
	settingsCmd.Flags().Float64Var(&flagSetVolume, "volume", 0, "Master volume, 0 to 1")
	settingsCmd.Flags().BoolVar(&flagSetMute, "mute", false, "Mute all sound")
	settingsCmd.Flags().BoolVar(&flagSetMusic, "music", true, "Play background music")
}

func runSettings(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer store.Close()

	st := loadSettings(store, newLogger(io.Discard))

	flags := cmd.Flags()
	changed := false
	if flags.Changed("mode") {
		mode, err := engine.ParseMode(flagSetMode)
		if err != nil {
			return err
		}
		st.Mode = string(mode)
		changed = true
	}
	if flags.Changed("volume") {
		st.Volume = core.ClampF(flagSetVolume, 0, 1)
		changed = true
	}
	if flags.Changed("mute") {
		st.Muted = flagSetMute
		changed = true
	}
	if flags.Changed("music") {
		st.Music = flagSetMusic
		changed = true
	}

	if changed {
		if err := store.SaveSettings(st); err != nil {
			return err
		}
	}

	fmt.Printf("mode    %s\n", st.Mode)
	fmt.Printf("volume  %.2f\n", st.Volume)
	fmt.Printf("muted   %t\n", st.Muted)
	fmt.Printf("music   %t\n", st.Music)
	return nil
}
