package minesweeper

import (
	"errors"
	"testing"
	"time"
)

func newRound(t *testing.T, d Difficulty, seed int64) *Round {
	t.Helper()
	r, err := NewRound(d, seed)
	if err != nil {
		t.Fatalf("NewRound(%v) error = %v", d, err)
	}
	return r
}

// plant builds a round with mines at fixed positions, as if the first reveal had happened.
func plant(t *testing.T, rows, cols int, mines ...Pos) *Round {
	t.Helper()
	d := Difficulty{Name: "test", Rows: rows, Cols: cols, Mines: len(mines)}
	r, err := NewRound(d, 1)
	if err != nil {
		t.Fatalf("NewRound() error = %v", err)
	}
	r.mines = mines
	for _, m := range mines {
		r.board[m.Row][m.Col] = Mine
	}
	for _, m := range mines {
		r.neighbors(m.Row, m.Col, func(nr, nc int) {
			if r.board[nr][nc] != Mine {
				r.board[nr][nc]++
			}
		})
	}
	r.placed = true
	return r
}

func countRevealed(r *Round) int {
	n := 0
	for row := 0; row < r.Rows(); row++ {
		for col := 0; col < r.Cols(); col++ {
			if r.State(row, col) == Revealed {
				n++
			}
		}
	}
	return n
}

func TestDifficultyValidate(t *testing.T) {
	tests := []struct {
		name    string
		d       Difficulty
		wantErr error
	}{
		{"easy", Easy, nil},
		{"medium", Medium, nil},
		{"hard", Hard, nil},
		{"exact capacity", Difficulty{Rows: 4, Cols: 4, Mines: 7}, nil},
		{"over capacity", Difficulty{Rows: 4, Cols: 4, Mines: 8}, ErrTooManyMines},
		{"no mines", Difficulty{Rows: 9, Cols: 9, Mines: 0}, ErrTooFewMines},
		{"empty board", Difficulty{Rows: 0, Cols: 9, Mines: 1}, ErrBoardTooSmall},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.d.Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() = %v, expected %v", err, tc.wantErr)
			}
		})
	}

	if _, err := NewRound(Difficulty{Rows: 3, Cols: 3, Mines: 1}, 1); !errors.Is(err, ErrTooManyMines) {
		t.Errorf("NewRound(3x3) error = %v, expected ErrTooManyMines", err)
	}
}

func TestLazyPlacementAndSafeZone(t *testing.T) {
	r := newRound(t, Easy, 42)

	if r.Started() || len(r.Mines()) != 0 {
		t.Fatal("mines must not exist before the first reveal")
	}

	r.Reveal(4, 4)

	mines := r.Mines()
	if len(mines) != 10 {
		t.Fatalf("len(Mines()) = %d, expected 10", len(mines))
	}
	seen := make(map[Pos]bool)
	for _, m := range mines {
		if seen[m] {
			t.Errorf("duplicate mine at %v", m)
		}
		seen[m] = true
		if m.Row >= 3 && m.Row <= 5 && m.Col >= 3 && m.Col <= 5 {
			t.Errorf("mine %v inside the safe zone", m)
		}
	}

	// clicking a mine loses and reveals every mine
	r.Reveal(mines[0].Row, mines[0].Col)
	if r.Status() != Lose {
		t.Fatalf("Status() = %v, expected lose", r.Status())
	}
	for _, m := range mines {
		if r.State(m.Row, m.Col) != Revealed {
			t.Errorf("mine %v not revealed after loss", m)
		}
	}
}

func TestNeighborCountsProperty(t *testing.T) {
	for _, d := range DefaultPresets() {
		for seed := int64(1); seed <= 25; seed++ {
			r := newRound(t, d, seed)
			row, col := int(seed)%d.Rows, int(seed*7)%d.Cols
			r.Reveal(row, col)

			for y := 0; y < d.Rows; y++ {
				for x := 0; x < d.Cols; x++ {
					if r.Value(y, x) == Mine {
						continue
					}
					expected := 0
					r.neighbors(y, x, func(ny, nx int) {
						if r.Value(ny, nx) == Mine {
							expected++
						}
					})
					if got := r.Value(y, x); got != expected {
						t.Fatalf("%s seed %d: Value(%d, %d) = %d, expected %d", d.Name, seed, y, x, got, expected)
					}
				}
			}

			// the first click is always safe and its neighbors hold no mines
			r.neighbors(row, col, func(ny, nx int) {
				if r.Value(ny, nx) == Mine {
					t.Fatalf("%s seed %d: mine next to first click at (%d, %d)", d.Name, seed, ny, nx)
				}
			})
			if r.Status() == Lose {
				t.Fatalf("%s seed %d: first reveal lost", d.Name, seed)
			}
		}
	}
}

// floodRegion is an independent recursive flood fill of the zero region
// starting at (row, col) plus its numbered border.
func floodRegion(r *Round, row, col int, out map[Pos]bool) {
	p := Pos{Row: row, Col: col}
	if out[p] {
		return
	}
	out[p] = true
	if r.Value(row, col) != 0 {
		return
	}
	r.neighbors(row, col, func(nr, nc int) {
		floodRegion(r, nr, nc, out)
	})
}

func TestCascadeRevealsRegion(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		r := newRound(t, Hard, seed)
		r.Reveal(8, 15)

		// the first click has no adjacent mines, so it always cascades
		expected := make(map[Pos]bool)
		floodRegion(r, 8, 15, expected)

		for row := 0; row < r.Rows(); row++ {
			for col := 0; col < r.Cols(); col++ {
				revealed := r.State(row, col) == Revealed
				if revealed != expected[Pos{row, col}] {
					t.Fatalf("seed %d: (%d, %d) revealed = %v, expected %v", seed, row, col, revealed, !revealed)
				}
				if revealed && r.Value(row, col) == Mine {
					t.Fatalf("seed %d: cascade revealed a mine at (%d, %d)", seed, row, col)
				}
			}
		}
	}
}

func TestCascadeSkipsMarkedCells(t *testing.T) {
	// single mine in the corner; everything else is one region
	r := plant(t, 5, 5, Pos{0, 0})
	r.ToggleFlag(4, 4) // flagged
	r.ToggleFlag(4, 3)
	r.ToggleFlag(4, 3) // questioned
	r.Reveal(2, 2)

	if r.State(4, 4) != Flagged {
		t.Errorf("flagged cell state = %v, expected flagged", r.State(4, 4))
	}
	if r.State(4, 3) != Questioned {
		t.Errorf("questioned cell state = %v, expected questioned", r.State(4, 3))
	}
	if r.Status() != Playing {
		t.Fatalf("Status() = %v, expected playing with marked cells hidden", r.Status())
	}

	// a questioned cell can still be revealed directly
	r.Reveal(4, 3)
	if r.State(4, 3) != Revealed {
		t.Errorf("Reveal on questioned cell left it %v", r.State(4, 3))
	}

	// a flagged cell cannot
	r.Reveal(4, 4)
	if r.State(4, 4) != Flagged {
		t.Errorf("Reveal on flagged cell changed it to %v", r.State(4, 4))
	}
}

func TestFlagCyclePeriodThree(t *testing.T) {
	r := newRound(t, Easy, 1)
	expected := []CellState{Flagged, Questioned, Hidden, Flagged}
	flags := []int{1, 0, 0, 1}

	for i, want := range expected {
		r.ToggleFlag(0, 0)
		if got := r.State(0, 0); got != want {
			t.Errorf("toggle %d: State() = %v, expected %v", i+1, got, want)
		}
		if got := r.FlagsPlaced(); got != flags[i] {
			t.Errorf("toggle %d: FlagsPlaced() = %d, expected %d", i+1, got, flags[i])
		}
	}
	if r.MinesLeft() != 9 {
		t.Errorf("MinesLeft() = %d, expected 9", r.MinesLeft())
	}

	// revealed cells cannot be flagged
	r.Reveal(4, 4)
	r.ToggleFlag(4, 4)
	if r.State(4, 4) != Revealed {
		t.Errorf("ToggleFlag on revealed cell changed it to %v", r.State(4, 4))
	}
}

func TestWinAutoFlagsMines(t *testing.T) {
	mines := []Pos{{0, 0}, {4, 4}}
	r := plant(t, 5, 5, mines...)
	r.ToggleFlag(0, 0)

	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			if r.Value(row, col) != Mine {
				r.Reveal(row, col)
			}
		}
	}

	if r.Status() != Win {
		t.Fatalf("Status() = %v, expected win", r.Status())
	}
	for _, m := range mines {
		if r.State(m.Row, m.Col) != Flagged {
			t.Errorf("mine %v state = %v, expected flagged", m, r.State(m.Row, m.Col))
		}
	}
	if r.FlagsPlaced() != 2 || r.MinesLeft() != 0 {
		t.Errorf("FlagsPlaced() = %d MinesLeft() = %d, expected 2 and 0", r.FlagsPlaced(), r.MinesLeft())
	}

	// terminal: nothing changes until reset
	r.ToggleFlag(0, 0)
	r.Reveal(4, 4)
	if r.Status() != Win || r.State(0, 0) != Flagged {
		t.Error("finished round must ignore input")
	}
}

func TestWinRequiresEveryCell(t *testing.T) {
	r := plant(t, 4, 4, Pos{0, 0}, Pos{0, 3})
	r.Reveal(3, 0) // zero region covers rows 1-3
	if r.Status() != Playing {
		t.Fatalf("Status() = %v, expected playing", r.Status())
	}
	r.Reveal(0, 1)
	if r.Status() != Playing {
		t.Fatalf("Status() = %v, expected playing with (0, 2) hidden", r.Status())
	}
	r.Reveal(0, 2)
	if r.Status() != Win {
		t.Errorf("Status() = %v, expected win", r.Status())
	}
}

func TestResetAfterLose(t *testing.T) {
	r := newRound(t, Easy, 7)
	r.Reveal(4, 4)
	m := r.Mines()[0]
	r.ToggleFlag(m.Row, m.Col)
	r.ToggleFlag(m.Row, m.Col) // questioned, still revealable
	r.Reveal(m.Row, m.Col)
	if r.Status() != Lose {
		t.Fatalf("Status() = %v, expected lose", r.Status())
	}

	r.Reset()

	if r.Status() != Playing || r.FlagsPlaced() != 0 || r.Started() || len(r.Mines()) != 0 {
		t.Fatalf("after Reset: status=%v flags=%d started=%v mines=%d", r.Status(), r.FlagsPlaced(), r.Started(), len(r.Mines()))
	}
	if countRevealed(r) != 0 {
		t.Errorf("after Reset %d cells revealed, expected 0", countRevealed(r))
	}
	for row := 0; row < r.Rows(); row++ {
		for col := 0; col < r.Cols(); col++ {
			if r.State(row, col) != Hidden || r.Value(row, col) != 0 {
				t.Fatalf("after Reset (%d, %d) = %v/%d, expected hidden/0", row, col, r.State(row, col), r.Value(row, col))
			}
		}
	}
}

func TestChangeDifficulty(t *testing.T) {
	r := newRound(t, Medium, 3)
	r.Reveal(8, 8)

	if err := r.ChangeDifficulty("HARD"); err != nil {
		t.Fatalf("ChangeDifficulty(HARD) error = %v", err)
	}
	if r.Rows() != 16 || r.Cols() != 30 || r.Difficulty().Mines != 99 {
		t.Errorf("board = %dx%d/%d, expected 30x16/99", r.Cols(), r.Rows(), r.Difficulty().Mines)
	}
	if r.Started() {
		t.Error("ChangeDifficulty should start a fresh round")
	}

	err := r.ChangeDifficulty("expert")
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("ChangeDifficulty(expert) error = %v, expected ErrUnknownPreset", err)
	}
	if r.Difficulty().Name != "hard" {
		t.Errorf("failed change altered difficulty to %q", r.Difficulty().Name)
	}

	bad := []Difficulty{{Name: "cramped", Rows: 3, Cols: 3, Mines: 2}}
	r2, _ := NewRound(Easy, 1, WithPresets(bad))
	if err := r2.ChangeDifficulty("cramped"); !errors.Is(err, ErrTooManyMines) {
		t.Errorf("ChangeDifficulty(cramped) error = %v, expected ErrTooManyMines", err)
	}
}

func TestIgnoredInputs(t *testing.T) {
	r := newRound(t, Easy, 5)
	r.Reveal(-1, 0)
	r.Reveal(0, 99)
	r.ToggleFlag(9, 9)
	if r.Started() || r.FlagsPlaced() != 0 {
		t.Error("out-of-bounds input must be a no-op")
	}

	r.Reveal(4, 4)
	before := countRevealed(r)
	r.Reveal(4, 4)
	if countRevealed(r) != before {
		t.Error("double reveal must be a no-op")
	}
}

func TestElapsedFreezesOnFinish(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	r, err := NewRound(Easy, 11, WithClock(clock))
	if err != nil {
		t.Fatal(err)
	}

	if r.Elapsed(now.Add(time.Hour)) != 0 {
		t.Error("timer must not run before the first reveal")
	}

	r.Reveal(4, 4)
	now = now.Add(5 * time.Second)
	if got := r.Elapsed(now); got != 5*time.Second {
		t.Errorf("Elapsed() = %v, expected 5s", got)
	}

	m := r.Mines()[0]
	r.Reveal(m.Row, m.Col)
	if got := r.Elapsed(now.Add(time.Minute)); got != 5*time.Second {
		t.Errorf("Elapsed() after loss = %v, expected frozen 5s", got)
	}
	if r.Score() != 0 {
		t.Errorf("Score() after loss = %d, expected 0", r.Score())
	}
}

func TestViewHidesUnrevealedValues(t *testing.T) {
	r := plant(t, 4, 4, Pos{0, 0})
	v := r.View(time.Now())

	if v.Status != "playing" || v.MinesLeft != 1 || !v.Started {
		t.Errorf("View() = %+v", v)
	}
	for _, row := range v.Cells {
		for _, c := range row {
			if c != GlyphHidden {
				t.Fatalf("hidden board leaked %q", c)
			}
		}
	}

	r.Reveal(0, 1)
	if got := r.View(time.Now()).Cells[0][1]; got != "1" {
		t.Errorf("Cells[0][1] = %q, expected %q", got, "1")
	}
}
