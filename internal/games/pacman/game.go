// Package pacman implements a small single-maze Pac-Man.
package pacman

import (
	"fmt"

	"github.com/vovakirdan/arcade-classics/internal/config"
	"github.com/vovakirdan/arcade-classics/internal/core"
	"github.com/vovakirdan/arcade-classics/internal/registry"
)

// Ghost wanders straight ahead and turns clockwise at walls.
type Ghost struct {
	Pos   Cell
	Dir   Dir
	Color core.Color
}

// Game implements registry.Game for Pac-Man.
type Game struct {
	cfg  config.PacmanConfig
	rc   core.RuntimeConfig
	tick uint64

	maze    *Maze
	player  Cell
	dir     Dir
	nextDir Dir
	ghosts  []Ghost

	score    int
	accum    int
	steps    uint64
	gameOver bool
	won      bool
	paused   bool
	tooSmall bool
}

var (
	configPath       string
	difficultyPreset string
)

// SetConfigPath sets a custom pacman.yaml path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the --difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// New creates a Pac-Man game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("pacman", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "pacman" }

// Title returns the display name.
func (g *Game) Title() string { return "Pac-Man" }

func loadConfig() config.PacmanConfig {
	cfg, err := config.LoadPacman(configPath)
	if err != nil {
		cfg = config.DefaultPacmanConfig()
	}
	if p, err := config.ParsePreset(difficultyPreset); err == nil {
		config.ApplyPacmanPreset(&cfg, p)
	}
	cfg.StepsPerSecond = max(cfg.StepsPerSecond, 1)
	return cfg
}

// Reset restores the maze, the player and both ghosts.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.cfg = loadConfig()
	g.rc = rc
	if g.rc.TickRate <= 0 {
		g.rc.TickRate = 60
	}
	g.tick = 0
	g.maze = NewMaze()
	g.player = Cell{Row: Rows - 1, Col: 1}
	g.dir = DirUp
	g.nextDir = DirUp
	g.ghosts = []Ghost{
		{Pos: Cell{Row: 6, Col: 7}, Dir: DirRight, Color: core.ColorBrightRed},
		{Pos: Cell{Row: 7, Col: 7}, Dir: DirDown, Color: core.ColorBrightMagenta},
	}
	g.score = 0
	g.accum = 0
	g.steps = 0
	g.gameOver = false
	g.won = false
	g.paused = false
}

// Step advances one tick; the maze itself moves StepsPerSecond times a second.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.gameOver {
		if in.Has(core.ActionRestart) {
			g.Reset(g.rc)
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	switch {
	case in.Has(core.ActionRight):
		g.nextDir = DirRight
	case in.Has(core.ActionDown):
		g.nextDir = DirDown
	case in.Has(core.ActionLeft):
		g.nextDir = DirLeft
	case in.Has(core.ActionUp):
		g.nextDir = DirUp
	}

	g.accum += g.cfg.StepsPerSecond
	for g.accum >= g.rc.TickRate && !g.gameOver {
		g.accum -= g.rc.TickRate
		g.advance()
	}

	return core.StepResult{State: g.State()}
}

// advance runs one logical step: turn, move the player, move the ghosts,
// then resolve pellets and collisions.
func (g *Game) advance() {
	g.steps++
	g.dir = g.nextDir
	if next := g.player.Next(g.dir); g.maze.Open(next) {
		g.player = next
	}

	for i := range g.ghosts {
		gh := &g.ghosts[i]
		if next := gh.Pos.Next(gh.Dir); g.maze.Open(next) {
			gh.Pos = next
		} else {
			gh.Dir = gh.Dir.Clockwise()
		}
	}

	switch g.maze.Eat(g.player) {
	case TilePellet:
		g.score += g.cfg.PelletScore
	case TilePower:
		g.score += g.cfg.PowerScore
	}
	if g.maze.Pellets() == 0 {
		g.won = true
		g.gameOver = true
	}

	for _, gh := range g.ghosts {
		if gh.Pos == g.player {
			g.won = false
			g.gameOver = true
		}
	}
}

var playerGlyphs = [4]rune{DirRight: 'ᗧ', DirDown: 'ᗜ', DirLeft: 'ᗤ', DirUp: 'ᗢ'}

// Render draws the maze two columns per cell.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	w, h := Cols*2+2, Rows+2
	g.tooSmall = w > dst.Width() || h+1 > dst.Height()
	if g.tooSmall {
		core.DrawOverlay(dst, core.ColorYellow, "Window too small", "Resize to continue")
		return
	}

	ox := (dst.Width() - w) / 2
	oy := 1
	dst.DrawText(ox, 0, fmt.Sprintf("Score: %d   Pellets: %d", g.score, g.maze.Pellets()))
	dst.DrawBoxColor(core.NewRect(ox, oy, w, h), core.ColorBlue)

	plot := func(c Cell, r rune, color core.Color) {
		dst.SetColor(ox+1+c.Col*2, oy+1+c.Row, r, color)
	}

	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			c := Cell{Row: row, Col: col}
			switch g.maze.At(c) {
			case TileWall:
				plot(c, '█', core.ColorBlue)
				dst.SetColor(ox+2+col*2, oy+1+row, '█', core.ColorBlue)
			case TilePellet:
				plot(c, '·', core.ColorWhite)
			case TilePower:
				plot(c, '●', core.ColorBrightYellow)
			}
		}
	}

	plot(g.player, playerGlyphs[g.dir], core.ColorBrightYellow)
	for _, gh := range g.ghosts {
		plot(gh.Pos, 'ᗣ', gh.Color)
	}

	switch {
	case g.won:
		core.DrawOverlay(dst, core.ColorBrightGreen, "YOU WIN!", fmt.Sprintf("Score: %d", g.score), "Press R to restart")
	case g.gameOver:
		core.DrawOverlay(dst, core.ColorBrightRed, "GAME OVER", fmt.Sprintf("Score: %d", g.score), "Press R to restart")
	case g.paused:
		core.DrawOverlay(dst, core.ColorYellow, "Paused", "Press P to continue")
	}
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

// Snapshot captures the game for determinism tests.
type Snapshot struct {
	Steps    uint64
	Score    int
	Player   Cell
	Ghosts   [2]Cell
	Pellets  int
	GameOver bool
	Won      bool
}

// Snapshot returns the current snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Steps:    g.steps,
		Score:    g.score,
		Player:   g.player,
		Pellets:  g.maze.Pellets(),
		GameOver: g.gameOver,
		Won:      g.won,
	}
	for i := 0; i < len(g.ghosts) && i < len(s.Ghosts); i++ {
		s.Ghosts[i] = g.ghosts[i].Pos
	}
	return s
}
