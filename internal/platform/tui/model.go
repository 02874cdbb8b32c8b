package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-classics/internal/core"
	"github.com/vovakirdan/arcade-classics/internal/multiplayer"
	"github.com/vovakirdan/arcade-classics/internal/registry"
	"github.com/vovakirdan/arcade-classics/internal/storage"
)

// Options carries the services shared by every screen.
type Options struct {
	Store  *storage.Store
	Logger *log.Logger

	// Player is stored with local scores. SSH sessions use the login name.
	Player string

	// Coordinator and Session enable online tic-tac-toe. Both or neither.
	Coordinator *multiplayer.Coordinator
	Session     *multiplayer.ChannelSession
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard)
	}
	return o.Logger
}

func (o Options) online() bool {
	return o.Coordinator != nil && o.Session != nil
}

// GameModel runs one game. Standalone it quits the program on q; inside
// the launcher q returns to the menu instead.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	input      core.InputFrame
	state      core.GameState
	gen        uint64
	embedded   bool
	quitting   bool
	backToMenu bool
	scoreSaved bool
}

// NewGameModel creates a model for game. A zero seed is replaced by the clock.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts Options) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return GameModel{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:      opts,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		input:     core.NewInputFrame(),
		gen:       nextTickGen(),
	}
}

func newEmbeddedGameModel(game registry.Game, cfg core.RuntimeConfig, opts Options) GameModel {
	m := NewGameModel(game, cfg, opts)
	m.embedded = true
	return m
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if p, ok := m.keyMapper.MapMouse(msg); ok {
			m.input.AddPointer(p)
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.input) {
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	if m.embedded && m.input.Has(core.ActionBack) && (m.state.GameOver || m.state.Paused) {
		m.backToMenu = true
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.input)
	m.state = result.State
	m.input.Clear()

	switch {
	case !m.state.GameOver:
		m.scoreSaved = false
	case !m.scoreSaved:
		m.saveScore()
		m.scoreSaved = true
	}

	return m, tickCmd(m.config.TickRate, m.gen)
}

// saveScore records a finished round with a positive score.
func (m GameModel) saveScore() {
	if m.opts.Store == nil || m.state.Score <= 0 {
		return
	}
	if _, err := m.opts.Store.SaveScore(m.game.ID(), m.opts.Player, m.state.Score); err != nil {
		m.opts.logger().Warn("cannot save score", "game", m.game.ID(), "err", err)
		return
	}
	m.opts.logger().Debug("score saved", "game", m.game.ID(), "score", m.state.Score)
}

// saveScreenshot writes the current frame to ~/.arcade/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.logger().Warn("cannot create screenshot directory", "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.opts.logger().Warn("cannot save screenshot", "err", err)
	}
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the state after the last tick.
func (m GameModel) State() core.GameState { return m.state }

// IsQuitting reports a request to leave the program.
func (m GameModel) IsQuitting() bool { return m.quitting }

// BackToMenu reports a request to return to the launcher.
func (m GameModel) BackToMenu() bool { return m.backToMenu }

// Run plays a single game until the player quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewGameModel(game, cfg, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
