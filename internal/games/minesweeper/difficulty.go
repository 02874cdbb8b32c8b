package minesweeper

import (
	"errors"
	"fmt"
	"strings"
)

// SafeZoneCells is the size of the 3x3 block kept free of mines around the first reveal.
const SafeZoneCells = 9

var (
	ErrBoardTooSmall = errors.New("minesweeper: board must have at least one row and column")
	ErrTooFewMines   = errors.New("minesweeper: at least one mine is required")
	ErrTooManyMines  = errors.New("minesweeper: too many mines for board")
	ErrUnknownPreset = errors.New("minesweeper: unknown difficulty")
)

// Difficulty is a board preset.
type Difficulty struct {
	Name  string `yaml:"name" json:"name"`
	Rows  int    `yaml:"rows" json:"rows"`
	Cols  int    `yaml:"cols" json:"cols"`
	Mines int    `yaml:"mines" json:"mines"`
}

// Built-in presets.
var (
	Easy   = Difficulty{Name: "easy", Rows: 9, Cols: 9, Mines: 10}
	Medium = Difficulty{Name: "medium", Rows: 16, Cols: 16, Mines: 40}
	Hard   = Difficulty{Name: "hard", Rows: 16, Cols: 30, Mines: 99}
)

// DefaultDifficulty is used when no preset is chosen.
const DefaultDifficulty = "medium"

// DefaultPresets returns the built-in presets in menu order.
func DefaultPresets() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// Validate rejects boards that cannot hold their mines outside the safe zone.
// The whole 3x3 zone is reserved even when the first click lands on an edge.
func (d Difficulty) Validate() error {
	if d.Rows < 1 || d.Cols < 1 {
		return ErrBoardTooSmall
	}
	if d.Mines < 1 {
		return ErrTooFewMines
	}
	if d.Mines > d.Rows*d.Cols-SafeZoneCells {
		return fmt.Errorf("%w: %d mines on %dx%d", ErrTooManyMines, d.Mines, d.Rows, d.Cols)
	}
	return nil
}

func (d Difficulty) String() string {
	return fmt.Sprintf("%s (%dx%d, %d mines)", d.Name, d.Cols, d.Rows, d.Mines)
}

// LookupDifficulty finds a preset by case-insensitive name.
func LookupDifficulty(presets []Difficulty, name string) (Difficulty, error) {
	for _, d := range presets {
		if strings.EqualFold(d.Name, name) {
			return d, nil
		}
	}
	return Difficulty{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}
