package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-classics/internal/core"
	"github.com/vovakirdan/arcade-classics/internal/games/minesweeper"
	"github.com/vovakirdan/arcade-classics/internal/multiplayer"
	"github.com/vovakirdan/arcade-classics/internal/registry"
)

type launcherScreen int

const (
	screenMenu launcherScreen = iota
	screenDifficulty
	screenScoreboard
	screenGame
	screenLobby
	screenMatch
)

// Launcher is the top-level model for `arcade menu` and SSH sessions:
// menu, then a game or the scoreboard or the online lobby, then back to
// the menu.
type Launcher struct {
	opts     Options
	config   core.RuntimeConfig
	screen   launcherScreen
	quitting bool

	menu       MenuModel
	difficulty DifficultyModel
	scoreboard ScoreboardModel
	game       GameModel
	lobby      OnlineLobbyModel
	match      OnlineMatchModel
}

// NewLauncher creates a launcher showing the game menu.
func NewLauncher(cfg core.RuntimeConfig, opts Options) Launcher {
	return Launcher{
		opts:   opts,
		config: cfg,
		menu:   NewMenuModel(opts.Store, cfg.ScreenW, cfg.ScreenH, opts.online()),
	}
}

// Init starts listening for coordinator events when online play is enabled.
func (l Launcher) Init() tea.Cmd {
	if l.opts.online() {
		return waitForEvent(l.opts.Session.Events())
	}
	return nil
}

// Update routes messages to the active screen.
func (l Launcher) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.config.ScreenW = msg.Width
		l.config.ScreenH = msg.Height
	case sessionEventMsg:
		l = l.handleSessionEvent(msg.evt)
		return l, waitForEvent(l.opts.Session.Events())
	case TickMsg:
		if l.screen != screenGame {
			return l, nil
		}
	}

	switch l.screen {
	case screenDifficulty:
		return l.updateDifficulty(msg)
	case screenScoreboard:
		return l.updateScoreboard(msg)
	case screenGame:
		return l.updateGame(msg)
	case screenLobby:
		return l.updateLobby(msg)
	case screenMatch:
		return l.updateMatch(msg)
	default:
		return l.updateMenu(msg)
	}
}

func (l Launcher) quit() (tea.Model, tea.Cmd) {
	l.quitting = true
	return l, tea.Quit
}

func (l Launcher) toMenu() (tea.Model, tea.Cmd) {
	l.screen = screenMenu
	l.menu = NewMenuModel(l.opts.Store, l.config.ScreenW, l.config.ScreenH, l.opts.online())
	return l, nil
}

func (l Launcher) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	l.menu, cmd = l.menu.Update(msg)

	switch {
	case l.menu.IsQuitting():
		return l.quit()
	case l.menu.WantsScoreboard():
		l.screen = screenScoreboard
		l.scoreboard = NewScoreboardModel(l.opts.Store, l.config.ScreenW, l.config.ScreenH)
		return l, nil
	}

	item := l.menu.Selected()
	switch {
	case item == nil:
		return l, cmd
	case item.Online:
		l.screen = screenLobby
		l.lobby = NewOnlineLobbyModel(item.GameID, l.opts.Session.ID(), l.opts.Coordinator, l.config.ScreenW, l.config.ScreenH)
		return l, nil
	case item.GameID == minesweeper.ID:
		l.screen = screenDifficulty
		l.difficulty = NewDifficultyModel(l.config.ScreenW, l.config.ScreenH)
		return l, nil
	}
	return l.startGame(item.GameID, nil)
}

// startGame launches a registered game. prepare, when set, configures the
// fresh instance before its first Reset.
func (l Launcher) startGame(id string, prepare func(registry.Game)) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id)
	if err != nil {
		l.opts.logger().Error("cannot create game", "game", id, "err", err)
		return l.toMenu()
	}
	if prepare != nil {
		prepare(game)
	}

	cfg := l.config
	cfg.Seed = time.Now().UnixNano()
	l.game = newEmbeddedGameModel(game, cfg, l.opts)
	l.screen = screenGame
	l.opts.logger().Debug("game started", "game", id, "player", l.opts.Player)
	return l, l.game.Init()
}

func (l Launcher) updateDifficulty(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	l.difficulty, cmd = l.difficulty.Update(msg)

	switch {
	case l.difficulty.IsQuitting():
		return l.quit()
	case l.difficulty.WantsBack():
		return l.toMenu()
	case l.difficulty.Chosen() != nil:
		name := l.difficulty.Chosen().Name
		return l.startGame(minesweeper.ID, func(g registry.Game) {
			if ms, ok := g.(*minesweeper.Game); ok {
				ms.StartOn(name)
			}
		})
	}
	return l, cmd
}

func (l Launcher) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	l.scoreboard, cmd = l.scoreboard.Update(msg)

	switch {
	case l.scoreboard.IsQuitting():
		return l.quit()
	case l.scoreboard.WantsBack():
		return l.toMenu()
	}
	return l, cmd
}

func (l Launcher) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := l.game.Update(msg)
	if gm, ok := next.(GameModel); ok {
		l.game = gm
	}

	switch {
	case l.game.IsQuitting():
		return l.quit()
	case l.game.BackToMenu():
		return l.toMenu()
	}
	return l, cmd
}

func (l Launcher) updateLobby(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	l.lobby, cmd = l.lobby.Update(msg)

	switch {
	case l.lobby.IsQuitting():
		return l.quit()
	case l.lobby.WantsBack():
		return l.toMenu()
	}
	return l, cmd
}

func (l Launcher) updateMatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	l.match, cmd = l.match.Update(msg)

	switch {
	case l.match.IsQuitting():
		return l.quit()
	case l.match.WantsBack():
		return l.toMenu()
	}
	return l, cmd
}

// handleSessionEvent routes a coordinator event. A started match takes over
// the screen from the lobby, and from a finished match when it is a rematch.
func (l Launcher) handleSessionEvent(evt multiplayer.SessionEvent) Launcher {
	switch evt := evt.(type) {
	case multiplayer.MatchStartedEvent:
		if l.screen != screenLobby && l.screen != screenMatch {
			// the player walked away; give the seat up
			l.opts.Coordinator.Send(multiplayer.LeaveMatchMsg{SessionID: l.opts.Session.ID(), MatchID: evt.MatchID})
			return l
		}
		l.screen = screenMatch
		l.match = NewOnlineMatchModel(l.opts.Coordinator, l.opts.Session.ID(), evt, l.config.ScreenW, l.config.ScreenH)
		l.opts.logger().Info("match started", "match", evt.MatchID, "side", evt.Side)
	case multiplayer.LobbyCreatedEvent, multiplayer.LobbyErrorEvent:
		if l.screen == screenLobby {
			l.lobby = l.lobby.HandleEvent(evt)
		}
	default:
		if l.screen == screenMatch {
			l.match = l.match.HandleEvent(evt)
		}
	}
	return l
}

// View renders the active screen.
func (l Launcher) View() string {
	if l.quitting {
		return ""
	}
	switch l.screen {
	case screenDifficulty:
		return l.difficulty.View()
	case screenScoreboard:
		return l.scoreboard.View()
	case screenGame:
		return l.game.View()
	case screenLobby:
		return l.lobby.View()
	case screenMatch:
		return l.match.View()
	default:
		return l.menu.View()
	}
}

// RunMenu runs the launcher until the player quits.
func RunMenu(cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewLauncher(cfg, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
