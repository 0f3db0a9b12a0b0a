package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/games/tetris/engine"
	"github.com/vovakirdan/blockfall/internal/registry"
)

var modesCmd = &cobra.Command{
	Use:     "modes",
	Aliases: []string{"list"},
	Short:   "List all game modes",
	Long:    `Shows every playable mode with today's best-score key.`,
	Run:     runModes,
}

func runModes(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	now := time.Now()
	fmt.Printf("  %-*s  %-18s  %-16s  %s\n", maxIDLen, "ID", "Title", "Key", "Description")
	fmt.Printf("  %-*s  %-18s  %-16s  %s\n", maxIDLen, "--", "-----", "---", "-----------")
	for _, g := range games {
		key := engine.ModeKey(engine.Mode(g.ID), now)
		fmt.Printf("  %-*s  %-18s  %-16s  %s\n", maxIDLen, g.ID, g.Title, key, g.Description)
	}

	fmt.Println()
	fmt.Println("Run 'blockfall play <id>' to play a mode.")
}
