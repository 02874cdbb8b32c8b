// Package tictactoe implements 3x3 noughts and crosses, hot-seat and online.
package tictactoe

import "errors"

// Size is the board edge length.
const Size = 3

var (
	ErrOccupied   = errors.New("tictactoe: cell is occupied")
	ErrOutOfRange = errors.New("tictactoe: cell is off the board")
	ErrFinished   = errors.New("tictactoe: game is over")
)

// Mark is the content of a cell.
type Mark int

const (
	Empty Mark = iota
	X
	O
)

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return " "
	}
}

// Other returns the opposing mark.
func (m Mark) Other() Mark {
	if m == X {
		return O
	}
	return X
}

// LineKind names the orientation of a winning line.
type LineKind int

const (
	LineNone LineKind = iota
	LineRow
	LineCol
	LineDiag
	LineAntiDiag
)

// Line identifies a winning line. Index is the row or column for
// LineRow and LineCol and unused for diagonals.
type Line struct {
	Kind  LineKind `json:"kind"`
	Index int      `json:"index"`
}

// Contains reports whether (row, col) lies on the line.
func (l Line) Contains(row, col int) bool {
	switch l.Kind {
	case LineRow:
		return row == l.Index
	case LineCol:
		return col == l.Index
	case LineDiag:
		return row == col
	case LineAntiDiag:
		return row+col == Size-1
	default:
		return false
	}
}

// Board is a single game. The zero value is not ready; use NewBoard.
type Board struct {
	cells  [Size][Size]Mark
	turn   Mark
	winner Mark
	line   Line
	draw   bool
	moves  int
}

// NewBoard returns an empty board with X to move.
func NewBoard() *Board {
	return &Board{turn: X}
}

// Place puts the side-to-move's mark at (row, col) and passes the turn.
func (b *Board) Place(row, col int) error {
	if b.Over() {
		return ErrFinished
	}
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return ErrOutOfRange
	}
	if b.cells[row][col] != Empty {
		return ErrOccupied
	}

	b.cells[row][col] = b.turn
	b.moves++
	b.evaluate()
	if !b.Over() {
		b.turn = b.turn.Other()
	}
	return nil
}

// evaluate checks rows, then columns, then the two diagonals.
func (b *Board) evaluate() {
	c := &b.cells
	for i := 0; i < Size; i++ {
		if c[i][0] != Empty && c[i][0] == c[i][1] && c[i][1] == c[i][2] {
			b.win(c[i][0], Line{Kind: LineRow, Index: i})
			return
		}
	}
	for i := 0; i < Size; i++ {
		if c[0][i] != Empty && c[0][i] == c[1][i] && c[1][i] == c[2][i] {
			b.win(c[0][i], Line{Kind: LineCol, Index: i})
			return
		}
	}
	if c[1][1] != Empty {
		if c[0][0] == c[1][1] && c[1][1] == c[2][2] {
			b.win(c[1][1], Line{Kind: LineDiag})
			return
		}
		if c[0][2] == c[1][1] && c[1][1] == c[2][0] {
			b.win(c[1][1], Line{Kind: LineAntiDiag})
			return
		}
	}
	if b.moves == Size*Size {
		b.draw = true
	}
}

func (b *Board) win(m Mark, l Line) {
	b.winner = m
	b.line = l
}

// At returns the mark at (row, col).
func (b *Board) At(row, col int) Mark { return b.cells[row][col] }

// Cells returns a copy of the grid.
func (b *Board) Cells() [Size][Size]Mark { return b.cells }

// Turn returns the side to move.
func (b *Board) Turn() Mark { return b.turn }

// Winner returns the winning mark or Empty.
func (b *Board) Winner() Mark { return b.winner }

// WinningLine returns the completed line; Kind is LineNone without a winner.
func (b *Board) WinningLine() Line { return b.line }

// Draw reports a full board without a winner.
func (b *Board) Draw() bool { return b.draw }

// Over reports whether the game has finished.
func (b *Board) Over() bool { return b.winner != Empty || b.draw }
