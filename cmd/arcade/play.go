package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/arcade-classics/internal/core"
	"github.com/vovakirdan/arcade-classics/internal/games/minesweeper"
	"github.com/vovakirdan/arcade-classics/internal/games/pacman"
	"github.com/vovakirdan/arcade-classics/internal/games/shooter"
	"github.com/vovakirdan/arcade-classics/internal/games/snake"
	"github.com/vovakirdan/arcade-classics/internal/games/tetris"
	"github.com/vovakirdan/arcade-classics/internal/platform/tui"
	"github.com/vovakirdan/arcade-classics/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD - Move
  Space/Enter - Act (reveal, drop, fire, place)
  F           - Flag (minesweeper)
  P/Esc       - Pause
  R           - Restart
  Q/Ctrl+C    - Quit

Difficulty options:
  easy, normal, hard - Generic presets applied to the game's config
  <board name>       - Minesweeper only: start on a named board

Examples:
  arcade play minesweeper
  arcade play minesweeper --difficulty hard
  arcade play snake --difficulty easy
  arcade play tetris --config ./my-tetris.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard (or a minesweeper board)")
}

// applyGameFlags hands --config and --difficulty to the game package before
// the game is created.
func applyGameFlags(gameID, configPath, difficulty string) {
	switch gameID {
	case minesweeper.ID:
		minesweeper.SetConfigPath(configPath)
		minesweeper.SetDifficultyPreset(difficulty)
	case "snake":
		snake.SetConfigPath(configPath)
		snake.SetDifficultyPreset(difficulty)
	case "tetris":
		tetris.SetConfigPath(configPath)
		tetris.SetDifficultyPreset(difficulty)
	case "pacman":
		pacman.SetConfigPath(configPath)
		pacman.SetDifficultyPreset(difficulty)
	case "shooter", shooter.ClassicID:
		shooter.SetConfigPath(configPath)
		shooter.SetDifficultyPreset(difficulty)
	}
}

// terminalConfig builds the runtime config from the current terminal size.
func terminalConfig() core.RuntimeConfig {
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

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]
	logger := newLogger("arcade")

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	applyGameFlags(gameID, flagConfig, flagDifficulty)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	runErr := tui.Run(game, terminalConfig(), tui.Options{
		Store:  store,
		Logger: logger,
		Player: os.Getenv("USER"),
	})
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
