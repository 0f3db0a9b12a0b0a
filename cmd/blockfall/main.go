// blockfall is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	blockfall modes            - List game modes
//	blockfall play [mode]      - Play a mode (default: last played)
//	blockfall menu             - Pick modes interactively
//	blockfall serve            - Start SSH server for remote play
//	blockfall scores [mode]    - Show score history
//	blockfall settings         - Show or change stored preferences
//
// Global flags:
//
//	--fps <rate>     - Frame rate (default: from config)
//	--seed <value>   - Fixed RNG seed for non-challenge modes
//	--db <path>      - Database path (default: ~/.blockfall/blockfall.db)
//	--config <path>  - Game config YAML
//	--log <path>     - Log file (interactive commands are silent otherwise)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/tetris"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogPath string

	// Set up by the root command before any subcommand runs
	gameConfig config.Config
	env        config.Env
	logFile    *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - a falling-block puzzle for your terminal",
	Long: `Blockfall is a falling-block puzzle played in the terminal.

Available commands:
  modes     - Show all game modes
  play      - Play a mode directly
  menu      - Interactive mode picker
  serve     - Start SSH server for remote play
  scores    - View score history
  settings  - Show or change stored preferences

Environment (also read from ./.env):
  BLOCKFALL_DB, BLOCKFALL_CONFIG, BLOCKFALL_LOG, BLOCKFALL_SPECTATE

Examples:
  blockfall play marathon
  blockfall play daily --spectate :8080
  blockfall menu
  blockfall serve --ssh :2222
  blockfall scores ultra120`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate (0 = timing.frame_rate from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed for non-challenge modes (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Path to log file")

	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(settingsCmd)
}

// setup loads the environment and configuration shared by every command.
// Flags given on the command line win over environment variables.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	env, err = config.LoadEnv()
	if err != nil {
		return fmt.Errorf("cannot load .env: %w", err)
	}

	flags := cmd.Flags()
	if env.DBPath != "" && !flags.Changed("db") {
		flagDBPath = env.DBPath
	}
	if env.ConfigPath != "" && !flags.Changed("config") {
		flagConfig = env.ConfigPath
	}
	if env.LogPath != "" && !flags.Changed("log") {
		flagLogPath = env.LogPath
	}

	gameConfig, err = config.Load(flagConfig)
	if err != nil {
		return err
	}
	tetris.Configure(gameConfig)

	if flagFPS <= 0 {
		flagFPS = gameConfig.Timing.FrameRate
	}
	return nil
}

// newLogger returns a logger writing to the --log file, or to w when no
// file is configured.
func newLogger(w io.Writer) *log.Logger {
	if flagLogPath != "" {
		f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		} else {
			logFile = f
			w = f
		}
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "blockfall",
	})
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// loadSettings returns stored preferences over the config defaults.
func loadSettings(store *storage.Store, logger *log.Logger) storage.Settings {
	defaults := defaultSettings()
	if store == nil {
		return defaults
	}
	st, err := store.LoadSettings(defaults)
	if err != nil {
		logger.Warn("settings unavailable", "err", err)
	}
	return st
}

// openStore opens the database, or returns nil with a warning so play can
// continue without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("storage unavailable", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// defaultSettings are the preferences used before any are stored.
func defaultSettings() storage.Settings {
	return storage.Settings{
		Mode:   "marathon",
		Volume: gameConfig.Audio.Volume,
		Muted:  gameConfig.Audio.Muted,
		Music:  gameConfig.Audio.Music,
	}
}
