package tictactoe

import (
	"github.com/vovakirdan/arcade-classics/internal/core"
	"github.com/vovakirdan/arcade-classics/internal/multiplayer"
)

// Online runs a match between two sessions. Player1 plays X and moves first.
// Each side steers its own cursor; only the side to move can place.
type Online struct {
	board   *Board
	cursors [3]Pos // indexed by PlayerID
	tick    uint64
}

// Snapshot is the state broadcast to both sessions every tick.
type Snapshot struct {
	Tick    uint64
	Cells   [Size][Size]Mark
	Turn    Mark
	Winner  Mark
	Draw    bool
	Line    Line
	Cursor1 Pos
	Cursor2 Pos
}

// IsGameSnapshot marks Snapshot as a multiplayer payload.
func (Snapshot) IsGameSnapshot() {}

// NewOnline creates an online match game.
func NewOnline() *Online {
	return &Online{board: NewBoard()}
}

// MarkFor returns the mark a player places.
func MarkFor(p core.PlayerID) Mark {
	if p == core.Player2 {
		return O
	}
	return X
}

// Reset starts a fresh board.
func (g *Online) Reset(core.RuntimeConfig) {
	g.board = NewBoard()
	g.cursors = [3]Pos{{1, 1}, {1, 1}, {1, 1}}
	g.tick = 0
}

// StepMulti applies one tick of input from both players.
func (g *Online) StepMulti(in core.MultiInputFrame) core.StepResult {
	g.tick++
	if g.board.Over() {
		return core.StepResult{State: g.state()}
	}

	for _, p := range []core.PlayerID{core.Player1, core.Player2} {
		frame := in.Player(p)
		cur := &g.cursors[p]
		switch {
		case frame.Has(core.ActionUp):
			cur.Row = core.Clamp(cur.Row-1, 0, Size-1)
		case frame.Has(core.ActionDown):
			cur.Row = core.Clamp(cur.Row+1, 0, Size-1)
		case frame.Has(core.ActionLeft):
			cur.Col = core.Clamp(cur.Col-1, 0, Size-1)
		case frame.Has(core.ActionRight):
			cur.Col = core.Clamp(cur.Col+1, 0, Size-1)
		}

		placing := frame.Has(core.ActionJump) || frame.Has(core.ActionConfirm)
		if placing && g.board.Turn() == MarkFor(p) {
			//nolint:errcheck // occupied cells are simply refused
			g.board.Place(cur.Row, cur.Col)
		}
	}

	return core.StepResult{State: g.state()}
}

func (g *Online) state() core.GameState {
	return core.GameState{GameOver: g.board.Over()}
}

// Snapshot returns the broadcast state.
func (g *Online) Snapshot() multiplayer.GameSnapshot {
	return Snapshot{
		Tick:    g.tick,
		Cells:   g.board.Cells(),
		Turn:    g.board.Turn(),
		Winner:  g.board.Winner(),
		Draw:    g.board.Draw(),
		Line:    g.board.WinningLine(),
		Cursor1: g.cursors[core.Player1],
		Cursor2: g.cursors[core.Player2],
	}
}

// IsGameOver reports a win or a draw.
func (g *Online) IsGameOver() bool { return g.board.Over() }

// Winner returns the winning player, or 0 for a draw or a running game.
func (g *Online) Winner() core.PlayerID {
	switch g.board.Winner() {
	case X:
		return core.Player1
	case O:
		return core.Player2
	default:
		return 0
	}
}

// Score1 is 1 when X won.
func (g *Online) Score1() int {
	if g.board.Winner() == X {
		return 1
	}
	return 0
}

// Score2 is 1 when O won.
func (g *Online) Score2() int {
	if g.board.Winner() == O {
		return 1
	}
	return 0
}

// RenderSnapshot draws a broadcast snapshot from one player's point of view.
func RenderSnapshot(dst *core.Screen, s Snapshot, side core.PlayerID) {
	dst.Clear()
	l := newBoardLayout(dst.Width(), dst.Height(), chromeRows)
	if l.tooSmall {
		core.DrawOverlay(dst, core.ColorYellow, "Window too small", "Resize to continue")
		return
	}

	you := MarkFor(side)
	dst.DrawTextCenteredColor(0, "TIC-TAC-TOE ONLINE", core.ColorBrightCyan)
	status, color := statusLine(s.Turn, s.Winner, s.Draw, you.String())
	dst.DrawTextCenteredColor(1, status, color)

	cursor := s.Cursor1
	if side == core.Player2 {
		cursor = s.Cursor2
	}
	over := s.Winner != Empty || s.Draw
	drawBoard(dst, l, s.Cells, s.Line, cursor, !over)

	y := l.origin.Bottom() + 1
	dst.DrawTextCenteredColor(y, "You play "+you.String(), markColor(you))
	dst.DrawTextCenteredColor(y+4, "Arrows move  Space place  Esc leave", core.ColorGray)
}
