package tictactoe

import "github.com/vovakirdan/arcade-classics/internal/core"

const (
	cellW  = 7
	cellH  = 3
	boardW = Size*cellW + Size + 1
	boardH = Size*cellH + Size + 1
	boardY = 3
)

var glyphs = map[Mark][cellH]string{
	X: {" \\   / ", "   X   ", " /   \\ "},
	O: {"  .-.  ", " (   ) ", "  '-'  "},
}

// Pos is a board coordinate.
type Pos struct {
	Row, Col int
}

// boardLayout places the board on a screen of a given size.
type boardLayout struct {
	origin   core.Rect
	tooSmall bool
}

func newBoardLayout(w, h, chromeRows int) boardLayout {
	ox := (w - boardW) / 2
	return boardLayout{
		origin:   core.NewRect(ox, boardY, boardW, boardH),
		tooSmall: w < boardW+2 || h < boardY+boardH+chromeRows,
	}
}

// cellAt maps a screen coordinate to a cell, skipping grid lines.
func (l boardLayout) cellAt(x, y int) (Pos, bool) {
	if l.tooSmall {
		return Pos{}, false
	}
	dx := x - l.origin.X - 1
	dy := y - l.origin.Y - 1
	if dx < 0 || dy < 0 || dx%(cellW+1) == cellW || dy%(cellH+1) == cellH {
		return Pos{}, false
	}
	p := Pos{Row: dy / (cellH + 1), Col: dx / (cellW + 1)}
	if p.Row >= Size || p.Col >= Size {
		return Pos{}, false
	}
	return p, true
}

func markColor(m Mark) core.Color {
	if m == X {
		return core.ColorBrightRed
	}
	return core.ColorBrightGreen
}

// drawBoard draws the grid, marks, the winning line and an optional cursor.
func drawBoard(dst *core.Screen, l boardLayout, cells [Size][Size]Mark, win Line, cursor Pos, showCursor bool) {
	o := l.origin
	dst.DrawBoxColor(o, core.ColorBlue)
	for i := 1; i < Size; i++ {
		x := o.X + i*(cellW+1)
		y := o.Y + i*(cellH+1)
		for k := 1; k < boardH-1; k++ {
			dst.SetColor(x, o.Y+k, '│', core.ColorBlue)
		}
		for k := 1; k < boardW-1; k++ {
			r := '─'
			if k%(cellW+1) == 0 {
				r = '┼'
			}
			dst.SetColor(o.X+k, y, r, core.ColorBlue)
		}
	}

	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			x := o.X + 1 + col*(cellW+1)
			y := o.Y + 1 + row*(cellH+1)
			m := cells[row][col]

			if showCursor && cursor == (Pos{Row: row, Col: col}) {
				dst.DrawRectColor(core.NewRect(x, y, cellW, cellH), '░', core.ColorGray)
			}
			if m == Empty {
				continue
			}
			c := markColor(m)
			if win.Contains(row, col) {
				c = core.ColorBrightYellow
			}
			for i, line := range glyphs[m] {
				for j, r := range line {
					if r != ' ' {
						dst.SetColor(x+j, y+i, r, c)
					}
				}
			}
		}
	}
}
