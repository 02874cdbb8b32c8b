// Package tetris implements falling-block Tetris with a next-piece preview.
package tetris

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/arcade-classics/internal/config"
	"github.com/vovakirdan/arcade-classics/internal/core"
	"github.com/vovakirdan/arcade-classics/internal/registry"
)

// softDropMS is how long one Down press keeps the fast fall active.
// Terminals report no key release, so soft drop is a window.
const softDropMS = 150

// Game implements registry.Game for Tetris.
type Game struct {
	cfg config.TetrisConfig
	rc  core.RuntimeConfig
	rng *rand.Rand

	width, height int
	// well holds kind+1 per cell, 0 for empty
	well [][]int

	cur  Piece
	next Kind

	score int
	level int
	lines int

	fallTicks     int
	softDropTicks int
	tick          uint64

	gameOver bool
	paused   bool
	tooSmall bool

	restartBtn core.Rect
}

var (
	configPath       string
	difficultyPreset string
)

// SetConfigPath sets a custom tetris.yaml path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the --difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// New creates a Tetris game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("tetris", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "tetris" }

// Title returns the display name.
func (g *Game) Title() string { return "Tetris" }

func loadConfig() config.TetrisConfig {
	cfg, err := config.LoadTetris(configPath)
	if err != nil {
		cfg = config.DefaultTetrisConfig()
	}
	if p, err := config.ParsePreset(difficultyPreset); err == nil {
		config.ApplyTetrisPreset(&cfg, p)
	}
	def := config.DefaultTetrisConfig()
	if cfg.Well.Width < 4 || cfg.Well.Height < 4 {
		cfg.Well = def.Well
	}
	if len(cfg.Scoring.Lines) == 0 {
		cfg.Scoring.Lines = def.Scoring.Lines
	}
	if cfg.Fall.SoftDropDivisor < 1 {
		cfg.Fall.SoftDropDivisor = 1
	}
	cfg.StartLevel = max(cfg.StartLevel, 1)
	return cfg
}

// Reset clears the well and spawns the first piece.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.cfg = loadConfig()
	g.rc = rc
	g.rng = rand.New(rand.NewSource(rc.Seed))

	g.width, g.height = g.cfg.Well.Width, g.cfg.Well.Height
	g.well = make([][]int, g.height)
	for y := range g.well {
		g.well[y] = make([]int, g.width)
	}

	g.score = 0
	g.lines = 0
	g.level = g.cfg.StartLevel
	g.fallTicks = 0
	g.softDropTicks = 0
	g.tick = 0
	g.gameOver = false
	g.paused = false

	g.next = g.randomKind()
	g.spawn()
}

func (g *Game) randomKind() Kind {
	return Kind(g.rng.Intn(int(kindCount)))
}

// spawn promotes the preview piece. A blocked spawn ends the game.
func (g *Game) spawn() {
	shape := ShapeOf(g.next)
	g.cur = Piece{
		Kind:  g.next,
		Shape: shape,
		X:     g.width/2 - shape.Width()/2,
		Y:     0,
	}
	g.next = g.randomKind()
	if g.collides(g.cur) {
		g.gameOver = true
	}
}

func (g *Game) collides(p Piece) bool {
	hit := false
	p.cells(func(x, y int) {
		if x < 0 || x >= g.width || y >= g.height {
			hit = true
			return
		}
		if y >= 0 && g.well[y][x] != 0 {
			hit = true
		}
	})
	return hit
}

// try applies a candidate position if it is free.
func (g *Game) try(p Piece) bool {
	if g.collides(p) {
		return false
	}
	g.cur = p
	return true
}

// fallInterval is the gravity period in ticks for the current level.
func (g *Game) fallInterval() int {
	ms := max(g.cfg.Fall.MinMS, g.cfg.Fall.InitialMS-(g.level-1)*g.cfg.Fall.StepMS)
	ticks := g.rc.TicksFor(ms)
	if g.softDropTicks > 0 {
		ticks = max(1, ticks/g.cfg.Fall.SoftDropDivisor)
	}
	return ticks
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.gameOver {
		if in.Has(core.ActionRestart) || g.clickedRestart(in) {
			rc := g.rc
			rc.Seed = g.rng.Int63()
			g.Reset(rc)
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionLeft) {
		p := g.cur
		p.X--
		g.try(p)
	}
	if in.Has(core.ActionRight) {
		p := g.cur
		p.X++
		g.try(p)
	}
	if in.Has(core.ActionUp) {
		p := g.cur
		p.Shape = p.Shape.Rotate()
		g.try(p)
	}
	if in.Has(core.ActionDown) {
		g.softDropTicks = g.rc.TicksFor(softDropMS)
	}
	if in.Has(core.ActionJump) {
		g.hardDrop()
		return core.StepResult{State: g.State()}
	}

	g.fallTicks++
	if g.fallTicks >= g.fallInterval() {
		g.fallTicks = 0
		p := g.cur
		p.Y++
		if !g.try(p) {
			g.lock()
		}
	}
	if g.softDropTicks > 0 {
		g.softDropTicks--
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) clickedRestart(in core.InputFrame) bool {
	for _, p := range in.Pointers() {
		if p.Button == core.PointerLeft && g.restartBtn.Contains(p.X, p.Y) {
			return true
		}
	}
	return false
}

func (g *Game) hardDrop() {
	for {
		p := g.cur
		p.Y++
		if !g.try(p) {
			break
		}
	}
	g.lock()
}

// lock merges the piece, clears lines and spawns the next one.
func (g *Game) lock() {
	g.cur.cells(func(x, y int) {
		if y >= 0 && y < g.height {
			g.well[y][x] = int(g.cur.Kind) + 1
		}
	})
	g.clearLines()
	g.fallTicks = 0
	g.softDropTicks = 0
	g.spawn()
}

func (g *Game) clearLines() int {
	kept := make([][]int, 0, g.height)
	for _, row := range g.well {
		full := true
		for _, c := range row {
			if c == 0 {
				full = false
				break
			}
		}
		if !full {
			kept = append(kept, row)
		}
	}

	n := g.height - len(kept)
	if n == 0 {
		return 0
	}

	fresh := make([][]int, n, g.height)
	for i := range fresh {
		fresh[i] = make([]int, g.width)
	}
	g.well = append(fresh, kept...)

	table := g.cfg.Scoring.Lines
	g.score += table[min(n, len(table))-1] * g.level
	g.lines += n
	if per := g.cfg.Scoring.LinesPerLevel; per > 0 {
		g.level = g.lines/per + g.cfg.StartLevel
	}
	return n
}

// ghostY returns where a hard drop would land the current piece.
func (g *Game) ghostY() int {
	p := g.cur
	for {
		p.Y++
		if g.collides(p) {
			return p.Y - 1
		}
	}
}

// Render draws the well, the side panel and overlays.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	const panelW = 20
	cellW := 2
	boardW := g.width*cellW + 2
	boardH := g.height + 2
	g.tooSmall = boardW+panelW > dst.Width() || boardH > dst.Height()
	if g.tooSmall {
		core.DrawOverlay(dst, core.ColorYellow, "Window too small", "Resize to continue")
		return
	}

	ox := (dst.Width() - boardW - panelW) / 2
	oy := (dst.Height() - boardH) / 2
	dst.DrawBoxColor(core.NewRect(ox, oy, boardW, boardH), core.ColorGray)

	plot := func(x, y int, r rune, c core.Color) {
		if y < 0 {
			return
		}
		sx := ox + 1 + x*cellW
		dst.SetColor(sx, oy+1+y, r, c)
		dst.SetColor(sx+1, oy+1+y, r, c)
	}

	for y, row := range g.well {
		for x, c := range row {
			if c == 0 {
				plot(x, y, '·', core.ColorGray)
				continue
			}
			plot(x, y, '█', Kind(c-1).Color())
		}
	}

	if !g.gameOver {
		ghost := g.cur
		ghost.Y = g.ghostY()
		ghost.cells(func(x, y int) { plot(x, y, '░', core.ColorGray) })
		g.cur.cells(func(x, y int) { plot(x, y, '█', g.cur.Kind.Color()) })
	}

	px := ox + boardW + 2
	dst.DrawText(px, oy, "Next:")
	next := ShapeOf(g.next)
	for dy, row := range next {
		for dx, filled := range row {
			if filled {
				dst.SetColor(px+dx*2, oy+2+dy, '█', g.next.Color())
				dst.SetColor(px+dx*2+1, oy+2+dy, '█', g.next.Color())
			}
		}
	}

	dst.DrawText(px, oy+5, fmt.Sprintf("Score: %d", g.score))
	dst.DrawText(px, oy+6, fmt.Sprintf("Level: %d", g.level))
	dst.DrawText(px, oy+7, fmt.Sprintf("Lines: %d", g.lines))

	help := []string{"Controls:", "←/→ move", "↑ rotate", "↓ soft drop", "Space hard drop", "P pause  Q quit"}
	for i, line := range help {
		dst.DrawTextColor(px, oy+10+i, line, core.ColorGray)
	}

	switch {
	case g.gameOver:
		core.DrawOverlay(dst, core.ColorBrightRed, "GAME OVER", fmt.Sprintf("Final Score: %d", g.score), "[ RESTART ]")
		const label = "[ RESTART ]"
		y := (dst.Height()-7)/2 + 5
		g.restartBtn = core.NewRect((dst.Width()-len(label))/2, y, len(label), 1)
	case g.paused:
		core.DrawOverlay(dst, core.ColorYellow, "Paused", "Press P to continue")
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Snapshot captures the game for determinism tests.
type Snapshot struct {
	Tick     uint64
	Score    int
	Level    int
	Lines    int
	Current  Kind
	Next     Kind
	X, Y     int
	Filled   int
	GameOver bool
}

// Snapshot returns the current snapshot.
func (g *Game) Snapshot() Snapshot {
	filled := 0
	for _, row := range g.well {
		for _, c := range row {
			if c != 0 {
				filled++
			}
		}
	}
	return Snapshot{
		Tick:     g.tick,
		Score:    g.score,
		Level:    g.level,
		Lines:    g.lines,
		Current:  g.cur.Kind,
		Next:     g.next,
		X:        g.cur.X,
		Y:        g.cur.Y,
		Filled:   filled,
		GameOver: g.gameOver,
	}
}
