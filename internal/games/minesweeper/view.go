package minesweeper

import (
	"strconv"
	"time"
)

// Cell glyphs used by View. Revealed safe cells are their count as a digit.
const (
	GlyphHidden   = "#"
	GlyphFlag     = "F"
	GlyphQuestion = "?"
	GlyphMine     = "*"
)

// View is a serializable picture of a round. It never exposes the value of
// a cell the player cannot see.
type View struct {
	Difficulty  Difficulty `json:"difficulty"`
	Status      string     `json:"status"`
	MinesLeft   int        `json:"mines_left"`
	FlagsPlaced int        `json:"flags_placed"`
	Started     bool       `json:"started"`
	Elapsed     int        `json:"elapsed"` // whole seconds
	Cells       [][]string `json:"cells"`
}

// Glyph returns the View symbol for a single cell.
func (r *Round) Glyph(row, col int) string {
	switch r.State(row, col) {
	case Flagged:
		return GlyphFlag
	case Questioned:
		return GlyphQuestion
	case Revealed:
		v := r.Value(row, col)
		if v == Mine {
			return GlyphMine
		}
		return strconv.Itoa(v)
	default:
		return GlyphHidden
	}
}

// View captures the round as seen at the given time.
func (r *Round) View(now time.Time) View {
	cells := make([][]string, r.Rows())
	for row := range cells {
		cells[row] = make([]string, r.Cols())
		for col := range cells[row] {
			cells[row][col] = r.Glyph(row, col)
		}
	}
	return View{
		Difficulty:  r.diff,
		Status:      r.status.String(),
		MinesLeft:   r.MinesLeft(),
		FlagsPlaced: r.flagsPlaced,
		Started:     r.placed,
		Elapsed:     int(r.Elapsed(now) / time.Second),
		Cells:       cells,
	}
}

// Score is the reward for a finished round: zero unless won, otherwise
// 100 per mine plus a time bonus that runs out after 999 seconds.
func (r *Round) Score() int {
	if r.status != Win {
		return 0
	}
	secs := int(r.Elapsed(r.finishedAt) / time.Second)
	return r.diff.Mines*100 + max(0, 999-secs)
}
