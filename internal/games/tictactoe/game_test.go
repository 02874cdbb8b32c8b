package tictactoe

import (
	"strings"
	"testing"

	"github.com/vovakirdan/arcade-classics/internal/core"
)

func newTestGame() *Game {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
	g.Render(core.NewScreen(80, 24))
	return g
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func clickCell(g *Game, row, col int) core.InputFrame {
	o := g.layout.origin
	in := core.NewInputFrame()
	in.AddPointer(core.Pointer{
		X:      o.X + 1 + col*(cellW+1) + cellW/2,
		Y:      o.Y + 1 + row*(cellH+1) + 1,
		Button: core.PointerLeft,
	})
	return in
}

func TestGameIDs(t *testing.T) {
	g := New()
	if g.ID() != "tictactoe" || g.Title() != "Tic-Tac-Toe" {
		t.Errorf("ID/Title = %q/%q", g.ID(), g.Title())
	}
}

func TestKeyboardPlay(t *testing.T) {
	g := newTestGame()

	g.Step(press(core.ActionJump))
	if g.Board().At(1, 1) != X {
		t.Fatal("Space should place X in the centre")
	}
	g.Step(press(core.ActionUp))
	g.Step(press(core.ActionLeft))
	g.Step(press(core.ActionConfirm))
	if g.Board().At(0, 0) != O {
		t.Error("Enter should place O at the cursor")
	}

	for i := 0; i < 5; i++ {
		g.Step(press(core.ActionUp))
	}
	if g.cursor.Row != 0 {
		t.Errorf("cursor row = %d, expected clamp at 0", g.cursor.Row)
	}
}

func TestPointerPlay(t *testing.T) {
	g := newTestGame()

	for _, p := range []Pos{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}} {
		g.Step(clickCell(g, p.Row, p.Col))
	}
	if g.Board().Winner() != X {
		t.Fatalf("Winner() = %v, expected X", g.Board().Winner())
	}
	if g.winsX != 1 {
		t.Errorf("winsX = %d, expected 1", g.winsX)
	}

	// grid lines are not cells
	o := g.layout.origin
	if _, ok := g.layout.cellAt(o.X+cellW+1, o.Y+1); ok {
		t.Error("click on a vertical grid line mapped to a cell")
	}
	if _, ok := g.layout.cellAt(o.X+1, o.Y+cellH+1); ok {
		t.Error("click on a horizontal grid line mapped to a cell")
	}
}

func TestNewGameAndRestart(t *testing.T) {
	g := newTestGame()
	g.Step(press(core.ActionJump))

	g.Step(press(core.ActionRestart))
	if g.Board().At(1, 1) != X {
		t.Error("R must not restart a running game")
	}
	g.Step(press(core.ActionNewGame))
	if g.Board().At(1, 1) != Empty {
		t.Error("N should start a new game at any time")
	}

	for _, p := range []Pos{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}} {
		g.Step(clickCell(g, p.Row, p.Col))
	}
	g.Render(core.NewScreen(80, 24))
	var restart button
	for _, b := range g.buttons {
		if b.label == "[restart]" {
			restart = b
		}
	}
	if restart.label == "" {
		t.Fatalf("buttons = %+v, expected restart after the win", g.buttons)
	}

	in := core.NewInputFrame()
	in.AddPointer(core.Pointer{X: restart.rect.X, Y: restart.rect.Y, Button: core.PointerLeft})
	g.Step(in)
	if g.Board().Over() || g.Board().At(0, 0) != Empty {
		t.Error("restart button should clear the board")
	}
	if g.winsX != 1 {
		t.Error("restart keeps the session tally")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame()
	g.Step(press(core.ActionJump))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "O to move") {
		t.Error("status line should name the side to move")
	}
	if !strings.Contains(out, "[new game]") {
		t.Error("control bar missing")
	}
	if !strings.Contains(out, "X wins: 0") {
		t.Error("tally missing")
	}

	small := core.NewScreen(20, 10)
	g.Render(small)
	if !strings.Contains(small.String(), "Window too small") {
		t.Error("expected the resize hint")
	}
}
