package config

import (
	_ "embed"
)

//go:embed defaults/minesweeper.yaml
var defaultMinesweeperYAML []byte

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

//go:embed defaults/pacman.yaml
var defaultPacmanYAML []byte

//go:embed defaults/shooter.yaml
var defaultShooterYAML []byte

// DefaultMinesweeperConfig returns the classic easy/medium/hard boards.
func DefaultMinesweeperConfig() MinesweeperConfig {
	return MinesweeperConfig{
		Default: "medium",
		Presets: []BoardPreset{
			{Name: "easy", Rows: 9, Cols: 9, Mines: 10},
			{Name: "medium", Rows: 16, Cols: 16, Mines: 40},
			{Name: "hard", Rows: 16, Cols: 30, Mines: 99},
		},
	}
}

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid:  GridSize{Width: 30, Height: 25},
		Speed: SnakeSpeed{Initial: 10, Max: 20, StepEvery: 50},
		Food:  SnakeFood{Score: 10},
	}
}

// DefaultTetrisConfig returns the default Tetris configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Well: GridSize{Width: 10, Height: 20},
		Fall: TetrisFall{
			InitialMS:       500,
			StepMS:          50,
			MinMS:           50,
			SoftDropDivisor: 10,
		},
		Scoring: TetrisScores{
			Lines:         []int{100, 300, 500, 800},
			LinesPerLevel: 10,
		},
		StartLevel: 1,
	}
}

// DefaultPacmanConfig returns the default Pac-Man configuration.
func DefaultPacmanConfig() PacmanConfig {
	return PacmanConfig{
		StepsPerSecond: 10,
		PelletScore:    10,
		PowerScore:     50,
	}
}

// DefaultShooterConfig returns the default plane shooter configuration.
func DefaultShooterConfig() ShooterConfig {
	return ShooterConfig{
		Lives:  3,
		Player: ShooterPlayer{Width: 60, Height: 40, Speed: 8},
		Bullet: ShooterBullet{Width: 6, Height: 20, Speed: 12, CooldownMS: 200},
		Enemy: ShooterEnemy{
			Width:         50,
			Height:        40,
			BaseSpeed:     3,
			MaxSpeed:      8,
			SpawnMS:       1000,
			MinSpawnMS:    200,
			KillScore:     100,
			LevelScore:    1000,
			SpeedPerLevel: 0.5,
			SpawnStepMS:   50,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game, or nil.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "minesweeper":
		return defaultMinesweeperYAML
	case "snake":
		return defaultSnakeYAML
	case "tetris":
		return defaultTetrisYAML
	case "pacman":
		return defaultPacmanYAML
	case "shooter":
		return defaultShooterYAML
	default:
		return nil
	}
}
