// Package config provides YAML-based game configuration with embedded
// defaults and named difficulty presets.
package config

// MinesweeperConfig holds the board presets offered by Minesweeper.
type MinesweeperConfig struct {
	Default string        `yaml:"default"`
	Presets []BoardPreset `yaml:"presets"`
}

// BoardPreset is one selectable minefield size.
type BoardPreset struct {
	Name  string `yaml:"name"`
	Rows  int    `yaml:"rows"`
	Cols  int    `yaml:"cols"`
	Mines int    `yaml:"mines"`
}

// SnakeConfig contains the tunables for Snake.
type SnakeConfig struct {
	Grid  GridSize   `yaml:"grid"`
	Speed SnakeSpeed `yaml:"speed"`
	Food  SnakeFood  `yaml:"food"`
}

// GridSize is a playfield size in cells.
type GridSize struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SnakeSpeed is measured in moves per second.
type SnakeSpeed struct {
	Initial   int `yaml:"initial"`
	Max       int `yaml:"max"`
	StepEvery int `yaml:"step_every"` // score interval that adds one move per second
}

// SnakeFood defines food scoring.
type SnakeFood struct {
	Score int `yaml:"score"`
}

// TetrisConfig contains the tunables for Tetris.
type TetrisConfig struct {
	Well       GridSize     `yaml:"well"`
	Fall       TetrisFall   `yaml:"fall"`
	Scoring    TetrisScores `yaml:"scoring"`
	StartLevel int          `yaml:"start_level"`
}

// TetrisFall defines the gravity timer.
type TetrisFall struct {
	InitialMS       int `yaml:"initial_ms"`
	StepMS          int `yaml:"step_ms"` // interval reduction per level
	MinMS           int `yaml:"min_ms"`
	SoftDropDivisor int `yaml:"soft_drop_divisor"`
}

// TetrisScores defines line clear rewards, multiplied by level.
type TetrisScores struct {
	Lines         []int `yaml:"lines"`
	LinesPerLevel int   `yaml:"lines_per_level"`
}

// PacmanConfig contains the tunables for Pac-Man.
type PacmanConfig struct {
	StepsPerSecond int `yaml:"steps_per_second"`
	PelletScore    int `yaml:"pellet_score"`
	PowerScore     int `yaml:"power_score"`
}

// ShooterConfig contains the tunables for the plane shooter.
type ShooterConfig struct {
	Lives  int           `yaml:"lives"`
	Player ShooterPlayer `yaml:"player"`
	Bullet ShooterBullet `yaml:"bullet"`
	Enemy  ShooterEnemy  `yaml:"enemy"`
}

// ShooterPlayer defines the player plane, in virtual pixels.
type ShooterPlayer struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`
}

// ShooterBullet defines player bullets.
type ShooterBullet struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Speed      float64 `yaml:"speed"`
	CooldownMS int     `yaml:"cooldown_ms"`
}

// ShooterEnemy defines enemy planes and their spawn pacing.
type ShooterEnemy struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	BaseSpeed     float64 `yaml:"base_speed"`
	MaxSpeed      float64 `yaml:"max_speed"`
	SpawnMS       int     `yaml:"spawn_ms"`
	MinSpawnMS    int     `yaml:"min_spawn_ms"`
	KillScore     int     `yaml:"kill_score"`
	LevelScore    int     `yaml:"score_per_level"`
	SpeedPerLevel float64 `yaml:"speed_per_level"`
	SpawnStepMS   int     `yaml:"spawn_per_level_ms"`
}
