package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-classics/internal/platform/tui"
	"github.com/vovakirdan/arcade-classics/internal/registry"
)

var menuDifficulty string

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - High scores
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --difficulty hard
  arcade menu --db postgres://arcade@localhost/arcade`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&menuDifficulty, "difficulty", "", "Difficulty preset applied to every game: easy, normal, hard")
}

func runMenu(_ *cobra.Command, _ []string) {
	logger := newLogger("arcade")

	for _, g := range registry.List() {
		applyGameFlags(g.ID, "", menuDifficulty)
	}

	store := openStore(logger)
	err := tui.RunMenu(terminalConfig(), tui.Options{
		Store:  store,
		Logger: logger,
		Player: os.Getenv("USER"),
	})
	if store != nil {
		store.Close()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
