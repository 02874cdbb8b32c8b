package minesweeper

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/arcade-classics/internal/core"
)

// Screen rows used around the board: HUD, info bar, two border rows,
// control bar and help line.
const chromeRows = 6

type button struct {
	rect       core.Rect
	label      string
	difficulty string // empty for restart
}

// layout places the board on screen. It is recomputed on every Render so
// pointer hit-testing always matches what was last drawn.
type layout struct {
	screenW, screenH int
	board            core.Rect // cell area inside the border
	cellW            int
	controlY         int
	buttons          []button
	tooSmall         bool
}

func (g *Game) layoutFor(w, h int) layout {
	lay := layout{screenW: w, screenH: h}
	rows, cols := g.round.Rows(), g.round.Cols()

	switch {
	case cols*3+2 <= w:
		lay.cellW = 3
	case cols*2+2 <= w:
		lay.cellW = 2
	default:
		lay.cellW = 1
	}
	if cols*lay.cellW+2 > w || rows+chromeRows > h {
		lay.tooSmall = true
		return lay
	}

	boardW := cols * lay.cellW
	lay.board = core.NewRect((w-boardW)/2, 3, boardW, rows)
	lay.controlY = lay.board.Bottom() + 1

	labels := make([]button, 0, len(g.presets)+1)
	for _, p := range g.presets {
		labels = append(labels, button{label: "[" + p.Name + "]", difficulty: p.Name})
	}
	labels = append(labels, button{label: "[restart]"})

	total := 0
	for _, b := range labels {
		total += len(b.label) + 1
	}
	x := max(0, (w-total)/2)
	for _, b := range labels {
		b.rect = core.NewRect(x, lay.controlY, len(b.label), 1)
		lay.buttons = append(lay.buttons, b)
		x += len(b.label) + 1
	}
	return lay
}

// cellAt converts a screen position to board coordinates.
func (l layout) cellAt(x, y int) (row, col int, ok bool) {
	if l.tooSmall || !l.board.Contains(x, y) {
		return 0, 0, false
	}
	return y - l.board.Y, (x - l.board.X) / l.cellW, true
}

var numberColors = [...]core.Color{
	1: core.ColorBrightBlue,
	2: core.ColorGreen,
	3: core.ColorBrightRed,
	4: core.ColorBlue,
	5: core.ColorRed,
	6: core.ColorCyan,
	7: core.ColorMagenta,
	8: core.ColorGray,
}

func (g *Game) face() string {
	switch g.round.Status() {
	case Win:
		return "B)"
	case Lose:
		return "X("
	default:
		return ":)"
	}
}

// Render draws the HUD, info bar, board and control bar.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.layout = g.layoutFor(dst.Width(), dst.Height())

	d := g.round.Difficulty()
	hud := fmt.Sprintf(" Minesweeper - %s", d)
	switch g.round.Status() {
	case Win:
		hud += fmt.Sprintf("  You Win! Score: %d", g.round.Score())
	case Lose:
		hud += "  Game Over!"
	}
	dst.DrawText(0, 0, hud)

	if g.layout.tooSmall {
		core.DrawOverlay(dst, core.ColorYellow, "Window too small", "Resize to continue")
		return
	}

	secs := int(g.round.Elapsed(g.now()).Seconds())
	info := fmt.Sprintf("Mines: %-4d   %s   Time: %d", g.round.MinesLeft(), g.face(), secs)
	dst.DrawTextCentered(1, info)

	border := core.NewRect(g.layout.board.X-1, g.layout.board.Y-1, g.layout.board.W+2, g.layout.board.H+2)
	dst.DrawBoxColor(border, core.ColorGray)

	for row := 0; row < g.round.Rows(); row++ {
		for col := 0; col < g.round.Cols(); col++ {
			g.renderCell(dst, row, col)
		}
	}

	for _, b := range g.layout.buttons {
		color := core.ColorDefault
		if b.difficulty == g.diffName {
			color = core.ColorBrightCyan
		}
		dst.DrawTextColor(b.rect.X, b.rect.Y, b.label, color)
	}

	help := "arrows move  space reveal  f flag  r restart  1-3 board  q quit"
	if g.layout.controlY+1 < dst.Height() {
		dst.DrawTextCenteredColor(g.layout.controlY+1, help, core.ColorGray)
	}
}

func (g *Game) glyph(row, col int) (rune, core.Color) {
	switch g.round.State(row, col) {
	case Flagged:
		return 'F', core.ColorBrightRed
	case Questioned:
		return '?', core.ColorYellow
	case Revealed:
		v := g.round.Value(row, col)
		switch {
		case v == Mine:
			return '*', core.ColorBrightRed
		case v == 0:
			return ' ', core.ColorDefault
		default:
			return rune('0' + v), numberColors[v]
		}
	default:
		return '■', core.ColorGray
	}
}

func (g *Game) renderCell(dst *core.Screen, row, col int) {
	r, color := g.glyph(row, col)
	x := g.layout.board.X + col*g.layout.cellW
	y := g.layout.board.Y + row
	cursor := g.cursor == Pos{Row: row, Col: col} && g.round.Status() == Playing

	switch g.layout.cellW {
	case 3:
		dst.SetColor(x+1, y, r, color)
		if cursor {
			dst.SetColor(x, y, '[', core.ColorBrightYellow)
			dst.SetColor(x+2, y, ']', core.ColorBrightYellow)
		}
	case 2:
		dst.SetColor(x+1, y, r, color)
		if cursor {
			dst.SetColor(x, y, '>', core.ColorBrightYellow)
		}
	default:
		if cursor {
			color = core.ColorBrightYellow
			if r == ' ' {
				r = '_'
			}
		}
		dst.SetColor(x, y, r, color)
	}
}

// DebugBoard returns the full board including hidden mines, one row per line.
func (g *Game) DebugBoard() string {
	var b strings.Builder
	for row := 0; row < g.round.Rows(); row++ {
		for col := 0; col < g.round.Cols(); col++ {
			v := g.round.Value(row, col)
			if v == Mine {
				b.WriteByte('*')
			} else {
				b.WriteByte(byte('0' + v))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
