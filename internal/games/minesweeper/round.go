// Package minesweeper implements the minefield engine and its terminal game.
package minesweeper

import (
	"math/rand"
	"time"

	"github.com/gammazero/deque"
)

// Mine is the board value of a mined cell. Other cells hold their neighbor count.
const Mine = -1

// CellState is the player-visible marking of a cell.
type CellState int

const (
	Hidden CellState = iota
	Revealed
	Flagged
	Questioned
)

func (s CellState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Flagged:
		return "flagged"
	case Questioned:
		return "questioned"
	default:
		return "unknown"
	}
}

// Status is the round lifecycle state. Win and Lose are terminal until Reset.
type Status int

const (
	Playing Status = iota
	Win
	Lose
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Win:
		return "win"
	case Lose:
		return "lose"
	default:
		return "unknown"
	}
}

// Pos is a board coordinate.
type Pos struct {
	Row, Col int
}

// Round is one game of minesweeper on a fixed board.
// Mines are placed lazily on the first reveal.
type Round struct {
	diff    Difficulty
	presets []Difficulty

	board  [][]int
	states [][]CellState
	mines  []Pos
	placed bool

	flagsPlaced int
	status      Status
	startedAt   time.Time
	finishedAt  time.Time

	rng   *rand.Rand
	clock func() time.Time
}

// Option configures a Round.
type Option func(*Round)

// WithPresets replaces the difficulty table used by ChangeDifficulty.
func WithPresets(presets []Difficulty) Option {
	return func(r *Round) {
		r.presets = presets
	}
}

// WithClock overrides the time source for the elapsed timer.
func WithClock(clock func() time.Time) Option {
	return func(r *Round) {
		r.clock = clock
	}
}

// NewRound creates a fresh round. The difficulty must pass Validate.
func NewRound(d Difficulty, seed int64, opts ...Option) (*Round, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	r := &Round{
		diff:    d,
		presets: DefaultPresets(),
		rng:     rand.New(rand.NewSource(seed)),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Reset()
	return r, nil
}

// Reset discards the current round and starts a new one on the same board size.
func (r *Round) Reset() {
	r.board = make([][]int, r.diff.Rows)
	r.states = make([][]CellState, r.diff.Rows)
	for row := range r.board {
		r.board[row] = make([]int, r.diff.Cols)
		r.states[row] = make([]CellState, r.diff.Cols)
	}
	r.mines = nil
	r.placed = false
	r.flagsPlaced = 0
	r.status = Playing
	r.startedAt = time.Time{}
	r.finishedAt = time.Time{}
}

// ChangeDifficulty switches to a named preset and resets the round.
// An unknown or invalid preset leaves the round untouched.
func (r *Round) ChangeDifficulty(name string) error {
	d, err := LookupDifficulty(r.presets, name)
	if err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}
	r.diff = d
	r.Reset()
	return nil
}

func (r *Round) inBounds(row, col int) bool {
	return row >= 0 && row < r.diff.Rows && col >= 0 && col < r.diff.Cols
}

// neighbors calls fn for every in-bounds cell of the 8-neighborhood.
func (r *Round) neighbors(row, col int, fn func(nr, nc int)) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if nr, nc := row+dr, col+dc; r.inBounds(nr, nc) {
				fn(nr, nc)
			}
		}
	}
}

func inSafeZone(p Pos, row, col int) bool {
	return p.Row >= row-1 && p.Row <= row+1 && p.Col >= col-1 && p.Col <= col+1
}

// placeMines picks mine cells uniformly from everything outside the safe zone
// around (row, col) and fills in the neighbor counts.
func (r *Round) placeMines(row, col int) {
	candidates := make([]Pos, 0, r.diff.Rows*r.diff.Cols)
	for y := 0; y < r.diff.Rows; y++ {
		for x := 0; x < r.diff.Cols; x++ {
			p := Pos{Row: y, Col: x}
			if !inSafeZone(p, row, col) {
				candidates = append(candidates, p)
			}
		}
	}

	// partial Fisher-Yates; Validate guarantees enough candidates
	n := min(r.diff.Mines, len(candidates))
	for i := 0; i < n; i++ {
		j := i + r.rng.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}
	r.mines = append([]Pos(nil), candidates[:n]...)

	for _, m := range r.mines {
		r.board[m.Row][m.Col] = Mine
	}
	for _, m := range r.mines {
		r.neighbors(m.Row, m.Col, func(nr, nc int) {
			if r.board[nr][nc] != Mine {
				r.board[nr][nc]++
			}
		})
	}
	r.placed = true
}

// Reveal uncovers a cell. Revealed or flagged cells, out-of-bounds
// coordinates, and finished rounds are ignored.
func (r *Round) Reveal(row, col int) {
	if r.status != Playing || !r.inBounds(row, col) {
		return
	}
	if st := r.states[row][col]; st == Revealed || st == Flagged {
		return
	}

	if !r.placed {
		r.placeMines(row, col)
		r.startedAt = r.clock()
	}

	r.states[row][col] = Revealed

	if r.board[row][col] == Mine {
		r.finish(Lose)
		for _, m := range r.mines {
			r.states[m.Row][m.Col] = Revealed
		}
		return
	}

	if r.board[row][col] == 0 {
		r.cascade(row, col)
	}
	r.checkWin()
}

// cascade reveals the connected zero region starting at (row, col) and its
// numbered border. Only Hidden neighbors are touched, so flags and question
// marks stop the spread. A zero cell never borders a mine.
func (r *Round) cascade(row, col int) {
	var work deque.Deque[Pos]
	work.PushBack(Pos{Row: row, Col: col})

	for work.Len() > 0 {
		p := work.PopFront()
		r.neighbors(p.Row, p.Col, func(nr, nc int) {
			if r.states[nr][nc] != Hidden {
				return
			}
			r.states[nr][nc] = Revealed
			if r.board[nr][nc] == 0 {
				work.PushBack(Pos{Row: nr, Col: nc})
			}
		})
	}
}

// ToggleFlag cycles a cell Hidden -> Flagged -> Questioned -> Hidden.
func (r *Round) ToggleFlag(row, col int) {
	if r.status != Playing || !r.inBounds(row, col) {
		return
	}

	switch r.states[row][col] {
	case Hidden:
		r.states[row][col] = Flagged
		r.flagsPlaced++
	case Flagged:
		r.states[row][col] = Questioned
		r.flagsPlaced--
	case Questioned:
		r.states[row][col] = Hidden
	case Revealed:
		return
	}
	r.checkWin()
}

// checkWin ends the round once every non-mine cell is revealed.
// Remaining mines get flagged so the counter reads zero.
func (r *Round) checkWin() {
	if r.status != Playing || !r.placed {
		return
	}
	for row := range r.board {
		for col, v := range r.board[row] {
			if v != Mine && r.states[row][col] != Revealed {
				return
			}
		}
	}

	for _, m := range r.mines {
		if r.states[m.Row][m.Col] != Flagged {
			r.states[m.Row][m.Col] = Flagged
			r.flagsPlaced++
		}
	}
	r.finish(Win)
}

func (r *Round) finish(s Status) {
	r.status = s
	r.finishedAt = r.clock()
}

// Difficulty returns the active board preset.
func (r *Round) Difficulty() Difficulty { return r.diff }

// Presets returns the difficulty table available to ChangeDifficulty.
func (r *Round) Presets() []Difficulty { return r.presets }

// Rows returns the board height.
func (r *Round) Rows() int { return r.diff.Rows }

// Cols returns the board width.
func (r *Round) Cols() int { return r.diff.Cols }

// Value returns the board value of a cell: Mine or the neighbor count.
// Before the first reveal every cell reads 0.
func (r *Round) Value(row, col int) int {
	if !r.inBounds(row, col) {
		return 0
	}
	return r.board[row][col]
}

// State returns the marking of a cell. Out-of-bounds reads Hidden.
func (r *Round) State(row, col int) CellState {
	if !r.inBounds(row, col) {
		return Hidden
	}
	return r.states[row][col]
}

// Status returns the round status.
func (r *Round) Status() Status { return r.status }

// FlagsPlaced returns how many cells carry a flag.
func (r *Round) FlagsPlaced() int { return r.flagsPlaced }

// MinesLeft is the mine count minus placed flags, for display. It can go negative.
func (r *Round) MinesLeft() int { return r.diff.Mines - r.flagsPlaced }

// Mines returns a copy of the mine positions. Empty until the first reveal.
func (r *Round) Mines() []Pos {
	return append([]Pos(nil), r.mines...)
}

// Started reports whether the first reveal has happened.
func (r *Round) Started() bool { return r.placed }

// Elapsed returns the time since the first reveal, frozen once the round ends.
func (r *Round) Elapsed(now time.Time) time.Duration {
	switch {
	case !r.placed:
		return 0
	case r.status != Playing:
		return r.finishedAt.Sub(r.startedAt)
	default:
		return now.Sub(r.startedAt)
	}
}

// Now returns the round's clock reading.
func (r *Round) Now() time.Time { return r.clock() }
