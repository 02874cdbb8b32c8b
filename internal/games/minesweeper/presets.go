package minesweeper

import (
	"fmt"

	"github.com/vovakirdan/arcade-classics/internal/config"
)

// Package-level launch options, set by the CLI before the game is created.
var (
	configPath       string
	difficultyPreset string
)

// SetConfigPath sets a custom minesweeper.yaml path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the --difficulty value: a board name or a
// generic preset (easy, normal, hard).
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// Presets returns the configured boards and the board a new game starts
// on. A broken config file falls back to the built-in boards.
func Presets() ([]Difficulty, string) {
	presets, def, err := LoadPresets(configPath)
	if err != nil {
		return DefaultPresets(), DefaultDifficulty
	}
	return presets, resolveDifficulty(presets, def, difficultyPreset)
}

// LoadPresets reads and validates the board presets. The returned default
// names one of the presets.
func LoadPresets(path string) ([]Difficulty, string, error) {
	cfg, err := config.LoadMinesweeper(path)
	if err != nil {
		return nil, "", err
	}

	presets := make([]Difficulty, 0, len(cfg.Presets))
	for _, p := range cfg.Presets {
		d := Difficulty{Name: p.Name, Rows: p.Rows, Cols: p.Cols, Mines: p.Mines}
		if err := d.Validate(); err != nil {
			return nil, "", fmt.Errorf("minesweeper: preset %q: %w", p.Name, err)
		}
		presets = append(presets, d)
	}

	def := cfg.Default
	if _, err := LookupDifficulty(presets, def); err != nil {
		return nil, "", fmt.Errorf("minesweeper: default board: %w", err)
	}
	return presets, def, nil
}

// resolveDifficulty maps a --difficulty value onto a preset name.
// A board name wins; otherwise the generic presets are applied.
func resolveDifficulty(presets []Difficulty, def, preset string) string {
	if preset == "" {
		return def
	}
	if d, err := LookupDifficulty(presets, preset); err == nil {
		return d.Name
	}
	p, err := config.ParsePreset(preset)
	if err != nil {
		return def
	}
	cfg := config.MinesweeperConfig{Default: def}
	config.ApplyMinesweeperPreset(&cfg, p)
	if _, err := LookupDifficulty(presets, cfg.Default); err != nil {
		return def
	}
	return cfg.Default
}
