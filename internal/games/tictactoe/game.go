package tictactoe

import (
	"fmt"

	"github.com/vovakirdan/arcade-classics/internal/core"
	"github.com/vovakirdan/arcade-classics/internal/registry"
)

// chrome rows under the board: tally, buttons, help
const chromeRows = 6

// button is a clickable label on the control bar.
type button struct {
	label string
	rect  core.Rect
}

// Game is the hot-seat version: both players share one keyboard.
type Game struct {
	board  *Board
	cursor Pos
	tick   uint64

	winsX, winsO, draws int

	layout  boardLayout
	buttons []button
}

// New creates a hot-seat game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("tictactoe", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "tictactoe" }

// Title returns the display name.
func (g *Game) Title() string { return "Tic-Tac-Toe" }

// Reset starts a new game and clears the session tally.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.newGame()
	g.winsX, g.winsO, g.draws = 0, 0, 0
	g.tick = 0
	g.layout = newBoardLayout(rc.ScreenW, rc.ScreenH, chromeRows)
}

func (g *Game) newGame() {
	g.board = NewBoard()
	g.cursor = Pos{Row: 1, Col: 1}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	over := g.board.Over()
	if in.Has(core.ActionNewGame) || (over && in.Has(core.ActionRestart)) {
		g.newGame()
		return core.StepResult{State: g.State()}
	}

	for _, p := range in.Pointers() {
		if p.Button != core.PointerLeft {
			continue
		}
		if b, ok := g.buttonAt(p.X, p.Y); ok {
			if b.label == "[new game]" || b.label == "[restart]" {
				g.newGame()
				return core.StepResult{State: g.State()}
			}
			continue
		}
		if pos, ok := g.layout.cellAt(p.X, p.Y); ok {
			g.cursor = pos
			g.place(pos)
		}
	}

	if !g.board.Over() {
		switch {
		case in.Has(core.ActionUp):
			g.cursor.Row = core.Clamp(g.cursor.Row-1, 0, Size-1)
		case in.Has(core.ActionDown):
			g.cursor.Row = core.Clamp(g.cursor.Row+1, 0, Size-1)
		case in.Has(core.ActionLeft):
			g.cursor.Col = core.Clamp(g.cursor.Col-1, 0, Size-1)
		case in.Has(core.ActionRight):
			g.cursor.Col = core.Clamp(g.cursor.Col+1, 0, Size-1)
		}
		if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) {
			g.place(g.cursor)
		}
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) place(p Pos) {
	if err := g.board.Place(p.Row, p.Col); err != nil {
		return
	}
	if !g.board.Over() {
		return
	}
	switch g.board.Winner() {
	case X:
		g.winsX++
	case O:
		g.winsO++
	default:
		g.draws++
	}
}

func (g *Game) buttonAt(x, y int) (button, bool) {
	for _, b := range g.buttons {
		if b.rect.Contains(x, y) {
			return b, true
		}
	}
	return button{}, false
}

// Render draws the board, the status line and the control bar.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.layout = newBoardLayout(dst.Width(), dst.Height(), chromeRows)
	g.buttons = g.buttons[:0]
	if g.layout.tooSmall {
		core.DrawOverlay(dst, core.ColorYellow, "Window too small", "Resize to continue")
		return
	}

	dst.DrawTextCenteredColor(0, "TIC-TAC-TOE", core.ColorBrightCyan)
	b := g.board
	status, color := statusLine(b.Turn(), b.Winner(), b.Draw(), "")
	dst.DrawTextCenteredColor(1, status, color)

	drawBoard(dst, g.layout, g.board.Cells(), g.board.WinningLine(), g.cursor, !g.board.Over())

	y := g.layout.origin.Bottom() + 1
	dst.DrawTextCentered(y, fmt.Sprintf("X wins: %d   O wins: %d   Draws: %d", g.winsX, g.winsO, g.draws))

	label := "[new game]"
	if g.board.Over() {
		label = "[restart]"
	}
	bx := (dst.Width() - len(label)) / 2
	dst.DrawTextColor(bx, y+2, label, core.ColorBrightWhite)
	g.buttons = append(g.buttons, button{label: label, rect: core.NewRect(bx, y+2, len(label), 1)})

	dst.DrawTextCenteredColor(y+4, "Arrows move  Space place  N new  Q quit", core.ColorGray)
}

// statusLine describes whose turn it is or how the game ended. you names
// the local side in online play and is empty for hot-seat.
func statusLine(turn, winner Mark, draw bool, you string) (string, core.Color) {
	switch {
	case winner != Empty:
		w := winner.String()
		if you != "" {
			if w == you {
				return "You win!", core.ColorBrightGreen
			}
			return "You lose", core.ColorBrightRed
		}
		return w + " wins!", core.ColorBrightYellow
	case draw:
		return "Draw!", core.ColorBrightYellow
	case you != "" && turn.String() == you:
		return "Your turn (" + you + ")", markColor(turn)
	case you != "":
		return "Waiting for " + turn.String(), core.ColorGray
	default:
		return turn.String() + " to move", markColor(turn)
	}
}

// State reports the game state. Hot-seat play has no score; a finished
// board is not a game over for the platform because N or R starts the next one.
func (g *Game) State() core.GameState {
	return core.GameState{}
}

// Board returns the current board.
func (g *Game) Board() *Board { return g.board }
