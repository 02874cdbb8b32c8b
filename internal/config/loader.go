package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// load resolves a game config.
// Search order: customPath -> ~/.arcade/configs/<name>.yaml -> ./configs/<name>.yaml -> embedded -> fallback.
// Only an explicit customPath can fail; the other sources are skipped when unreadable.
func load[T any](name, customPath string, embedded []byte, fallback func() T) (T, error) {
	var cfg T

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := name + ".yaml"
	for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var fromFile T
		if err := yaml.Unmarshal(data, &fromFile); err == nil {
			return fromFile, nil
		}
	}

	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil
	}
	return cfg, nil
}

// LoadMinesweeper loads the Minesweeper board presets.
func LoadMinesweeper(customPath string) (MinesweeperConfig, error) {
	cfg, err := load("minesweeper", customPath, defaultMinesweeperYAML, DefaultMinesweeperConfig)
	if err != nil {
		return cfg, err
	}
	if len(cfg.Presets) == 0 {
		cfg.Presets = DefaultMinesweeperConfig().Presets
	}
	if cfg.Default == "" {
		cfg.Default = cfg.Presets[0].Name
	}
	return cfg, nil
}

// LoadSnake loads the Snake configuration.
func LoadSnake(customPath string) (SnakeConfig, error) {
	return load("snake", customPath, defaultSnakeYAML, DefaultSnakeConfig)
}

// LoadTetris loads the Tetris configuration.
func LoadTetris(customPath string) (TetrisConfig, error) {
	return load("tetris", customPath, defaultTetrisYAML, DefaultTetrisConfig)
}

// LoadPacman loads the Pac-Man configuration.
func LoadPacman(customPath string) (PacmanConfig, error) {
	return load("pacman", customPath, defaultPacmanYAML, DefaultPacmanConfig)
}

// LoadShooter loads the plane shooter configuration.
func LoadShooter(customPath string) (ShooterConfig, error) {
	return load("shooter", customPath, defaultShooterYAML, DefaultShooterConfig)
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
