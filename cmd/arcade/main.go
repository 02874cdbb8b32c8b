// arcade is a collection of classic games for the terminal.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start the SSH server (and optionally HTTP)
//	arcade scores [game]     - Show high scores
//	arcade config <game>     - Print a game's default config
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <dsn>          - SQLite path or postgres:// DSN (default: ~/.arcade/scores.db)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	_ "github.com/vovakirdan/arcade-classics/internal/games/minesweeper"
	_ "github.com/vovakirdan/arcade-classics/internal/games/pacman"
	_ "github.com/vovakirdan/arcade-classics/internal/games/shooter"
	_ "github.com/vovakirdan/arcade-classics/internal/games/snake"
	_ "github.com/vovakirdan/arcade-classics/internal/games/tetris"
	_ "github.com/vovakirdan/arcade-classics/internal/games/tictactoe"
	"github.com/vovakirdan/arcade-classics/internal/storage"
)

var (
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Arcade Classics - minesweeper, snake, tetris and friends in your terminal",
	Long: `Arcade Classics bundles six classic games for the terminal:
minesweeper, snake, tetris, tic-tac-toe, pac-man and a plane shooter
(with a fixed-formation classic variant).

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start the SSH server, plus the minesweeper HTTP API with --http
  scores   - View high scores
  config   - Print a game's default YAML config

Examples:
  arcade list
  arcade play minesweeper --difficulty hard
  arcade menu
  arcade serve --addr :2222 --http :8080
  arcade scores snake`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Scores database: SQLite path or postgres:// DSN")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds a stderr logger for one surface. An unknown --log-level
// falls back to info.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// openStore opens the scores database. Games still run without it, so a
// failure is only logged.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "db", flagDBPath, "error", err)
		return nil
	}
	logger.Debug("opened scores database", "dialect", store.Dialect())
	return store
}
