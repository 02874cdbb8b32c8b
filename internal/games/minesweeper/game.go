package minesweeper

import (
	"time"

	"github.com/vovakirdan/arcade-classics/internal/core"
	"github.com/vovakirdan/arcade-classics/internal/registry"
)

// ID is the registry identifier.
const ID = "minesweeper"

// epoch anchors the tick clock so elapsed time is deterministic.
var epoch = time.Unix(0, 0).UTC()

// Game drives a Round from keyboard and pointer input.
type Game struct {
	cfg      core.RuntimeConfig
	presets  []Difficulty
	diffName string
	round    *Round
	cursor   Pos
	ticks    uint64
	layout   layout
	loadErr  error
	start    string
}

// New creates a Minesweeper game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Minesweeper" }

// Reset starts a new round. The board size carries over between rounds
// unless a start difficulty was selected.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	if g.cfg.TickRate <= 0 {
		g.cfg.TickRate = 60
	}
	g.ticks = 0

	if g.presets == nil {
		presets, def, err := LoadPresets(configPath)
		if err != nil {
			// keep playing on the built-in boards
			g.loadErr = err
			presets, def = DefaultPresets(), DefaultDifficulty
		}
		g.presets = presets
		g.diffName = resolveDifficulty(presets, def, difficultyPreset)
	}
	if g.start != "" {
		if d, err := LookupDifficulty(g.presets, g.start); err == nil {
			g.diffName = d.Name
		}
		g.start = ""
	}

	d, err := LookupDifficulty(g.presets, g.diffName)
	if err != nil {
		d = Medium
	}
	round, err := NewRound(d, cfg.Seed, WithPresets(g.presets), WithClock(g.now))
	if err != nil {
		round, _ = NewRound(Medium, cfg.Seed, WithClock(g.now))
	}
	g.round = round
	g.diffName = round.Difficulty().Name
	g.cursor = Pos{Row: round.Rows() / 2, Col: round.Cols() / 2}
	g.layout = g.layoutFor(cfg.ScreenW, cfg.ScreenH)
}

// StartOn selects the board for the next Reset. Later resets keep
// whatever board is in play.
func (g *Game) StartOn(name string) { g.start = name }

// now is the tick clock handed to the round.
func (g *Game) now() time.Time {
	return epoch.Add(time.Duration(g.ticks) * time.Second / time.Duration(g.cfg.TickRate))
}

// Round exposes the engine, mainly for tests and snapshots.
func (g *Game) Round() *Round { return g.round }

// LoadError reports a rejected config file; built-in boards are used instead.
func (g *Game) LoadError() error { return g.loadErr }

// Step applies one tick of input.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.ticks++

	if in.Has(core.ActionRestart) || in.Has(core.ActionNewGame) {
		g.round.Reset()
		return core.StepResult{State: g.State()}
	}

	for i, a := range []core.Action{core.ActionSelect1, core.ActionSelect2, core.ActionSelect3} {
		if in.Has(a) && i < len(g.presets) {
			g.changeDifficulty(g.presets[i].Name)
		}
	}

	g.moveCursor(in)

	switch {
	case in.Has(core.ActionJump) || in.Has(core.ActionConfirm):
		g.round.Reveal(g.cursor.Row, g.cursor.Col)
	case in.Has(core.ActionFlag):
		g.round.ToggleFlag(g.cursor.Row, g.cursor.Col)
	}

	for _, p := range in.Pointers() {
		g.handlePointer(p)
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) changeDifficulty(name string) {
	if err := g.round.ChangeDifficulty(name); err != nil {
		return
	}
	g.diffName = name
	g.cursor = Pos{Row: g.round.Rows() / 2, Col: g.round.Cols() / 2}
	g.layout = g.layoutFor(g.layout.screenW, g.layout.screenH)
}

func (g *Game) moveCursor(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row--
	case in.Has(core.ActionDown):
		g.cursor.Row++
	}
	switch {
	case in.Has(core.ActionLeft):
		g.cursor.Col--
	case in.Has(core.ActionRight):
		g.cursor.Col++
	}
	g.cursor.Row = core.Clamp(g.cursor.Row, 0, g.round.Rows()-1)
	g.cursor.Col = core.Clamp(g.cursor.Col, 0, g.round.Cols()-1)
}

// handlePointer maps a click onto the board or the control bar.
// Left reveals and right cycles the flag, as with a mouse on a real board.
func (g *Game) handlePointer(p core.Pointer) {
	if row, col, ok := g.layout.cellAt(p.X, p.Y); ok {
		g.cursor = Pos{Row: row, Col: col}
		switch p.Button {
		case core.PointerLeft:
			g.round.Reveal(row, col)
		case core.PointerRight:
			g.round.ToggleFlag(row, col)
		}
		return
	}

	if p.Button != core.PointerLeft {
		return
	}
	for _, b := range g.layout.buttons {
		if !b.rect.Contains(p.X, p.Y) {
			continue
		}
		if b.difficulty == "" {
			g.round.Reset()
		} else {
			g.changeDifficulty(b.difficulty)
		}
		return
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.round == nil {
		return core.GameState{}
	}
	st := g.round.Status()
	return core.GameState{
		Score:    g.round.Score(),
		GameOver: st != Playing,
		Won:      st == Win,
	}
}

// Snapshot captures the game for determinism checks and for the web view.
type Snapshot struct {
	Tick   uint64
	Cursor Pos
	View   View
}

// Snapshot returns the current snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:   g.ticks,
		Cursor: g.cursor,
		View:   g.round.View(g.now()),
	}
}
