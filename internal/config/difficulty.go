package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // no progression during a round
)

// ParsePreset parses a --difficulty value. Empty means normal and
// "medium" is accepted as an alias for normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case "medium":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", s)
	}
}

// ApplyMinesweeperPreset picks the default board for a preset.
// Fixed keeps the configured default.
func ApplyMinesweeperPreset(cfg *MinesweeperConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Default = "easy"
	case DifficultyNormal:
		cfg.Default = "medium"
	case DifficultyHard:
		cfg.Default = "hard"
	}
}

// ApplySnakePreset adjusts the starting and top speed.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Speed.Initial = 7
		cfg.Speed.Max = 14
	case DifficultyHard:
		cfg.Speed.Initial = 14
		cfg.Speed.Max = 25
	case DifficultyFixed:
		cfg.Speed.StepEvery = 0
	}
}

// ApplyTetrisPreset adjusts the starting level.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.StartLevel = 1
		cfg.Fall.InitialMS = 700
	case DifficultyHard:
		cfg.StartLevel = 5
	case DifficultyFixed:
		cfg.Scoring.LinesPerLevel = 0
	}
}

// ApplyPacmanPreset adjusts the maze speed.
func ApplyPacmanPreset(cfg *PacmanConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.StepsPerSecond = 7
	case DifficultyHard:
		cfg.StepsPerSecond = 13
	}
}

// ApplyShooterPreset adjusts lives and level pacing.
func ApplyShooterPreset(cfg *ShooterConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Lives = 5
		cfg.Enemy.BaseSpeed = 2
	case DifficultyHard:
		cfg.Lives = 2
		cfg.Enemy.SpawnMS = 700
	case DifficultyFixed:
		cfg.Enemy.LevelScore = 0
	}
}
