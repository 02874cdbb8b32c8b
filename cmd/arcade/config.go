package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-classics/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config <game>",
	Short: "Print a game's default config",
	Long: `Print the built-in YAML config of a game. Save it as
~/.arcade/configs/<game>.yaml or ./configs/<game>.yaml to customize it.

Games with a config: minesweeper, snake, tetris, pacman, shooter.

Examples:
  arcade config minesweeper > ~/.arcade/configs/minesweeper.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, args []string) {
	data := config.GetDefaultYAML(args[0])
	if data == nil {
		fmt.Fprintf(os.Stderr, "Error: game %q has no config\n", args[0])
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
