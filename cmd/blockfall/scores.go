package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/games/tetris/engine"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagClearScores bool
	flagBrowse      bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show score history",
	Long: `Display the top 10 runs for a mode, or the 10 most recent runs of
any mode when none is given. Challenge modes also list their best score
per day or week.

Examples:
  blockfall scores
  blockfall scores marathon
  blockfall scores daily
  blockfall scores zen --clear
  blockfall scores --browse`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete the run history of the mode")
	scoresCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Browse the history in an interactive table")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	if flagBrowse {
		mode := string(engine.ModeMarathon)
		if len(args) > 0 {
			mode = args[0]
		}
		cfg := runtimeConfig()
		return tui.RunScoreboard(store, mode, cfg.ScreenW, cfg.ScreenH)
	}

	if len(args) == 0 {
		if flagClearScores {
			return errors.New("--clear needs a mode")
		}
		return printRecent(store)
	}

	mode, err := engine.ParseMode(args[0])
	if err != nil {
		return err
	}

	if flagClearScores {
		if err := store.ClearScores(string(mode)); err != nil {
			return err
		}
		fmt.Printf("Cleared run history for %s.\n", mode.Title())
		return nil
	}

	scores, err := store.TopScores(string(mode), 10)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", mode.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'blockfall play %s' to set the first high score!\n", mode)
	} else {
		printTable(os.Stdout, scores, false)
		fmt.Println()
		if high, err := store.HighScore(string(mode)); err == nil {
			fmt.Printf("Best: %s\n", humanize.Comma(int64(high)))
		}
	}

	if mode == engine.ModeDaily || mode == engine.ModeWeekly {
		best, err := store.BestScores(string(mode)+"-", 7)
		if err != nil {
			return fmt.Errorf("error retrieving best scores: %w", err)
		}
		if len(best) > 0 {
			fmt.Println()
			fmt.Println("Best per challenge:")
			for _, b := range best {
				fmt.Printf("  %-18s  %10s  %s\n", b.ModeKey, humanize.Comma(int64(b.Score)), humanize.Time(b.UpdatedAt))
			}
		}
	}
	return nil
}

func printRecent(store *storage.Store) error {
	scores, err := store.RecentScores(10)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Println("Recent runs")
	fmt.Println()
	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}
	printTable(os.Stdout, scores, true)
	return nil
}

func printTable(w io.Writer, scores []storage.ScoreEntry, withMode bool) {
	header := fmt.Sprintf("  %-4s  %10s  %5s  %3s  %5s  %s", "Rank", "Score", "Lines", "Lvl", "Time", "When")
	if withMode {
		header += "  Mode"
	}
	fmt.Fprintln(w, header)

	for i, e := range scores {
		line := fmt.Sprintf("  %-4d  %10s  %5d  %3d  %5s  %s",
			i+1, humanize.Comma(int64(e.Score)), e.Lines, e.Level,
			engine.FormatClock(e.Duration), humanize.Time(e.CreatedAt))
		if withMode {
			line += "  " + e.ModeKey
		}
		fmt.Fprintln(w, line)
	}
}
