package tetris

import (
	"strings"
	"testing"

	"github.com/vovakirdan/arcade-classics/internal/core"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	SetConfigPath("")
	SetDifficultyPreset("")

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
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

// place swaps in a fresh piece of the given kind at x, y.
func place(g *Game, k Kind, x, y int) {
	g.cur = Piece{Kind: k, Shape: ShapeOf(k), X: x, Y: y}
}

func fillRow(g *Game, y int, holes ...int) {
	for x := range g.well[y] {
		g.well[y][x] = 1
	}
	for _, x := range holes {
		g.well[y][x] = 0
	}
}

func TestRotate(t *testing.T) {
	for k := KindI; k < kindCount; k++ {
		s := ShapeOf(k)
		r := s.Rotate()
		if r.Width() != s.Height() || r.Height() != s.Width() {
			t.Errorf("%v rotated is %dx%d, expected %dx%d", k, r.Width(), r.Height(), s.Height(), s.Width())
		}
		full := r.Rotate().Rotate().Rotate()
		for y := range s {
			for x := range s[y] {
				if full[y][x] != s[y][x] {
					t.Errorf("%v: four rotations changed the shape", k)
				}
			}
		}
	}

	// T pointing up turns to point right
	got := ShapeOf(KindT).Rotate()
	expected := Shape{{true, false}, {true, true}, {true, false}}
	for y := range expected {
		for x := range expected[y] {
			if got[y][x] != expected[y][x] {
				t.Fatalf("T.Rotate() = %v, expected %v", got, expected)
			}
		}
	}
}

func TestSpawnPosition(t *testing.T) {
	g := newTestGame(t, 1)

	tests := []struct {
		kind     Kind
		expected int
	}{
		{KindI, 3},
		{KindO, 4},
		{KindT, 4},
	}
	for _, tc := range tests {
		g.next = tc.kind
		g.spawn()
		if g.cur.X != tc.expected || g.cur.Y != 0 {
			t.Errorf("spawn %v at (%d, %d), expected (%d, 0)", tc.kind, g.cur.X, g.cur.Y, tc.expected)
		}
	}
}

func TestWallsBlockMovement(t *testing.T) {
	g := newTestGame(t, 1)
	place(g, KindO, 4, 5)

	for i := 0; i < 20; i++ {
		g.Step(press(core.ActionLeft))
	}
	if g.cur.X != 0 {
		t.Errorf("X = %d, expected 0 at the left wall", g.cur.X)
	}
	for i := 0; i < 20; i++ {
		g.Step(press(core.ActionRight))
	}
	if g.cur.X != g.width-2 {
		t.Errorf("X = %d, expected %d at the right wall", g.cur.X, g.width-2)
	}
}

func TestRotationBlocked(t *testing.T) {
	g := newTestGame(t, 1)
	// horizontal I on the floor cannot stand up
	place(g, KindI, 3, g.height-1)
	g.Step(press(core.ActionUp))
	if g.cur.Shape.Height() != 1 {
		t.Error("rotation into the floor should be refused")
	}
}

func TestHardDropLocks(t *testing.T) {
	g := newTestGame(t, 1)
	place(g, KindO, 4, 0)
	next := g.next

	g.Step(press(core.ActionJump))

	if g.well[g.height-1][4] == 0 || g.well[g.height-2][5] == 0 {
		t.Error("O piece should lock at the bottom")
	}
	if g.Snapshot().Filled != 4 {
		t.Errorf("filled = %d, expected 4", g.Snapshot().Filled)
	}
	if g.cur.Kind != next || g.cur.Y != 0 {
		t.Errorf("current = %v at y %d, expected the preview piece %v at the top", g.cur.Kind, g.cur.Y, next)
	}
}

func TestLineClearScoring(t *testing.T) {
	tests := []struct {
		name     string
		rows     int
		level    int
		expected int
	}{
		{"single", 1, 1, 100},
		{"double", 2, 1, 300},
		{"triple", 3, 1, 500},
		{"tetris", 4, 1, 800},
		{"double level 3", 2, 3, 900},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, 1)
			g.level = tc.level
			for i := 0; i < tc.rows; i++ {
				fillRow(g, g.height-1-i, 0)
			}
			// vertical I down the left column
			g.cur = Piece{Kind: KindI, Shape: ShapeOf(KindI).Rotate(), X: 0, Y: 0}
			g.hardDrop()

			if g.score != tc.expected {
				t.Errorf("score = %d, expected %d", g.score, tc.expected)
			}
			if g.lines != tc.rows {
				t.Errorf("lines = %d, expected %d", g.lines, tc.rows)
			}
		})
	}
}

func TestClearShiftsRowsDown(t *testing.T) {
	g := newTestGame(t, 1)
	fillRow(g, g.height-1, 4, 5)
	g.well[g.height-2][7] = 3

	place(g, KindO, 4, 0)
	g.hardDrop()

	// the O's top half and the marker both drop one row
	if g.well[g.height-1][7] != 3 {
		t.Error("block above the cleared row should shift down")
	}
	if g.well[g.height-1][4] == 0 || g.well[g.height-1][5] == 0 {
		t.Error("upper half of the O should remain after the clear")
	}
	if g.well[g.height-2][4] != 0 {
		t.Error("row above should be empty after the shift")
	}
}

func TestLevelUpSpeedsGravity(t *testing.T) {
	g := newTestGame(t, 1)
	slow := g.fallInterval()
	if slow != 30 {
		t.Errorf("level 1 interval = %d ticks, expected 30", slow)
	}

	g.lines = 9
	fillRow(g, g.height-1, 0)
	g.cur = Piece{Kind: KindI, Shape: ShapeOf(KindI).Rotate(), X: 0, Y: 0}
	g.hardDrop()

	if g.level != 2 {
		t.Errorf("level = %d, expected 2 after 10 lines", g.level)
	}
	if got := g.fallInterval(); got != 27 {
		t.Errorf("level 2 interval = %d ticks, expected 27", got)
	}

	g.level = 50
	if got := g.fallInterval(); got != 3 {
		t.Errorf("interval = %d ticks, expected the 50ms floor", got)
	}
}

func TestGravityAndSoftDrop(t *testing.T) {
	g := newTestGame(t, 1)
	place(g, KindO, 4, 0)

	for i := 0; i < 29; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.cur.Y != 0 {
		t.Fatalf("Y = %d before the fall interval, expected 0", g.cur.Y)
	}
	g.Step(core.NewInputFrame())
	if g.cur.Y != 1 {
		t.Fatalf("Y = %d after 30 ticks, expected 1", g.cur.Y)
	}

	g.Step(press(core.ActionDown))
	g.Step(core.NewInputFrame())
	g.Step(core.NewInputFrame())
	if g.cur.Y != 2 {
		t.Errorf("Y = %d, expected soft drop to fall within 3 ticks", g.cur.Y)
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := newTestGame(t, 1)
	for y := 0; y < 3; y++ {
		fillRow(g, y, 0)
	}
	g.spawn()
	if !g.State().GameOver {
		t.Fatal("blocked spawn should end the game")
	}

	g.Step(press(core.ActionLeft))
	if !g.State().GameOver {
		t.Error("input other than restart should be ignored after game over")
	}

	g.Step(press(core.ActionRestart))
	if s := g.State(); s.GameOver || s.Score != 0 {
		t.Errorf("State() after restart = %+v", s)
	}
	if g.Snapshot().Filled != 0 {
		t.Error("restart should clear the well")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := newTestGame(t, 777)
		for i := 0; i < 2000; i++ {
			in := core.NewInputFrame()
			switch i % 45 {
			case 5:
				in.Set(core.ActionLeft)
			case 10:
				in.Set(core.ActionUp)
			case 20:
				in.Set(core.ActionJump)
			}
			g.Step(in)
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("snapshots differ:\n%+v\n%+v", a, b)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, 1)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"Next:", "Score: 0", "Level: 1", "Lines: 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	small := core.NewScreen(30, 12)
	g.Render(small)
	if !strings.Contains(small.String(), "Window too small") {
		t.Error("expected the resize hint")
	}
}
