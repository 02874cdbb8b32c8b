// Package snake implements classic wrap-around Snake.
package snake

import (
	"fmt"
	"math/rand"

	"github.com/gammazero/deque"

	"github.com/vovakirdan/arcade-classics/internal/config"
	"github.com/vovakirdan/arcade-classics/internal/core"
	"github.com/vovakirdan/arcade-classics/internal/registry"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Point is a grid cell.
type Point struct {
	X, Y int
}

func (d Direction) delta() (int, int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

// opposite reports whether two directions point against each other.
func (d Direction) opposite(o Direction) bool {
	return (d+2)%4 == o
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Game implements Snake on a torus: leaving one edge enters the opposite one.
type Game struct {
	cfg  config.SnakeConfig
	rng  *rand.Rand
	rate int // ticks per second
	tick uint64

	width, height int

	// body holds the head at the front
	body     deque.Deque[Point]
	occupied map[Point]bool
	dir      Direction
	nextDir  Direction
	food     Point

	score     int
	speed     int // moves per second
	moveAccum int
	moves     uint64

	gameOver bool
	won      bool
	paused   bool
	tooSmall bool

	screenW, screenH int
	restartBtn       core.Rect
}

var (
	configPath       string
	difficultyPreset string
)

// SetConfigPath sets a custom snake.yaml path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the --difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// New creates a Snake game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "snake" }

// Title returns the display name.
func (g *Game) Title() string { return "Snake" }

func loadConfig() config.SnakeConfig {
	cfg, err := config.LoadSnake(configPath)
	if err != nil {
		cfg = config.DefaultSnakeConfig()
	}
	if p, err := config.ParsePreset(difficultyPreset); err == nil {
		config.ApplySnakePreset(&cfg, p)
	}
	if cfg.Grid.Width < 4 || cfg.Grid.Height < 4 {
		cfg.Grid = config.DefaultSnakeConfig().Grid
	}
	if cfg.Speed.Initial < 1 {
		cfg.Speed.Initial = 1
	}
	cfg.Speed.Max = max(cfg.Speed.Max, cfg.Speed.Initial)
	return cfg
}

// Reset starts a new round: a single segment in the middle, heading right.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.cfg = loadConfig()
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.rate = rc.TickRate
	if g.rate <= 0 {
		g.rate = 60
	}
	g.tick = 0
	g.screenW, g.screenH = rc.ScreenW, rc.ScreenH

	// shrink the grid to fit small terminals, border and HUD included
	g.width = min(g.cfg.Grid.Width, max(4, rc.ScreenW-2))
	g.height = min(g.cfg.Grid.Height, max(4, rc.ScreenH-4))

	g.body.Clear()
	g.occupied = make(map[Point]bool)
	start := Point{X: g.width / 2, Y: g.height / 2}
	g.body.PushFront(start)
	g.occupied[start] = true
	g.dir = DirRight
	g.nextDir = DirRight

	g.score = 0
	g.speed = g.cfg.Speed.Initial
	g.moveAccum = 0
	g.moves = 0
	g.gameOver = false
	g.won = false
	g.paused = false
	g.spawnFood()
}

// spawnFood picks a random free cell. A full board wins the game.
func (g *Game) spawnFood() {
	free := g.width*g.height - g.body.Len()
	if free <= 0 {
		g.won = true
		g.gameOver = true
		g.food = Point{X: -1, Y: -1}
		return
	}

	n := g.rng.Intn(free)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			p := Point{X: x, Y: y}
			if g.occupied[p] {
				continue
			}
			if n == 0 {
				g.food = p
				return
			}
			n--
		}
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.gameOver {
		if in.Has(core.ActionRestart) || g.clickedRestart(in) {
			g.Reset(core.RuntimeConfig{
				Seed:     g.rng.Int63(),
				ScreenW:  g.screenW,
				ScreenH:  g.screenH,
				TickRate: g.rate,
			})
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.steer(in)

	// speed is in moves per second; accumulate so any tick rate works
	g.moveAccum += g.speed
	for g.moveAccum >= g.rate && !g.gameOver {
		g.moveAccum -= g.rate
		g.move()
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

// steer buffers a new heading. Reversal is checked against the heading of
// the last move, so two quick turns cannot fold the snake onto itself.
func (g *Game) steer(in core.InputFrame) {
	want := g.nextDir
	switch {
	case in.Has(core.ActionUp):
		want = DirUp
	case in.Has(core.ActionDown):
		want = DirDown
	case in.Has(core.ActionLeft):
		want = DirLeft
	case in.Has(core.ActionRight):
		want = DirRight
	}
	if !want.opposite(g.dir) {
		g.nextDir = want
	}
}

func (g *Game) move() {
	g.moves++
	g.dir = g.nextDir
	head := g.body.Front()
	dx, dy := g.dir.delta()
	next := Point{X: core.Wrap(head.X+dx, g.width), Y: core.Wrap(head.Y+dy, g.height)}

	if g.occupied[next] {
		g.gameOver = true
		return
	}

	g.body.PushFront(next)
	g.occupied[next] = true

	if next == g.food {
		g.score += g.cfg.Food.Score
		step := g.cfg.Speed.StepEvery
		if step > 0 && g.score%step == 0 && g.speed < g.cfg.Speed.Max {
			g.speed++
		}
		g.spawnFood()
		return
	}

	tail := g.body.PopBack()
	delete(g.occupied, tail)
}

// Render draws the HUD, the board and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	hud := fmt.Sprintf(" Snake - Score: %d  Length: %d  Speed: %d", g.score, g.body.Len(), g.speed)
	dst.DrawText(0, 0, hud)

	cellW := 2
	if g.width*2+2 > dst.Width() {
		cellW = 1
	}
	boardW := g.width*cellW + 2
	boardH := g.height + 2
	g.tooSmall = boardW > dst.Width() || boardH+1 > dst.Height()
	if g.tooSmall {
		core.DrawOverlay(dst, core.ColorYellow, "Window too small", "Resize to continue")
		return
	}

	ox := (dst.Width() - boardW) / 2
	oy := 1
	dst.DrawBoxColor(core.NewRect(ox, oy, boardW, boardH), core.ColorGreen)

	plot := func(p Point, r rune, c core.Color) {
		x := ox + 1 + p.X*cellW
		for i := 0; i < cellW; i++ {
			dst.SetColor(x+i, oy+1+p.Y, r, c)
		}
	}

	if g.food.X >= 0 {
		plot(g.food, '●', core.ColorBrightRed)
	}
	for i := g.body.Len() - 1; i >= 0; i-- {
		if i == 0 {
			plot(g.body.At(i), '█', core.ColorBrightGreen)
		} else {
			plot(g.body.At(i), '▓', core.ColorGreen)
		}
	}

	switch {
	case g.won:
		core.DrawOverlay(dst, core.ColorBrightGreen, "Board cleared!", fmt.Sprintf("Final Score: %d", g.score), "[ RESTART ]")
		g.placeRestartButton(dst)
	case g.gameOver:
		core.DrawOverlay(dst, core.ColorBrightRed, "GAME OVER", fmt.Sprintf("Final Score: %d", g.score), "[ RESTART ]")
		g.placeRestartButton(dst)
	case g.paused:
		core.DrawOverlay(dst, core.ColorYellow, "Paused", "Press P to continue")
	}
}

// placeRestartButton records where the overlay drew its third line.
func (g *Game) placeRestartButton(dst *core.Screen) {
	const label = "[ RESTART ]"
	boxH := 7
	y := (dst.Height()-boxH)/2 + 5
	x := (dst.Width() - len(label)) / 2
	g.restartBtn = core.NewRect(x, y, len(label), 1)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
}
