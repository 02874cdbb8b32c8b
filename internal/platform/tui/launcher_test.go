package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-classics/internal/core"
	"github.com/vovakirdan/arcade-classics/internal/games/minesweeper"
	"github.com/vovakirdan/arcade-classics/internal/games/tictactoe"
	"github.com/vovakirdan/arcade-classics/internal/multiplayer"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func update(t *testing.T, l Launcher, msg tea.Msg) (Launcher, tea.Cmd) {
	t.Helper()
	next, cmd := l.Update(msg)
	nl, ok := next.(Launcher)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return nl, cmd
}

func pressKeys(t *testing.T, l Launcher, keys ...string) Launcher {
	t.Helper()
	for _, k := range keys {
		l, _ = update(t, l, keyMsg(k))
	}
	return l
}

// selectItem moves the menu cursor onto the entry and presses Enter.
func selectItem(t *testing.T, l Launcher, match func(MenuItem) bool) Launcher {
	t.Helper()
	for i, item := range l.menu.Items() {
		if match(item) {
			for range i {
				l = pressKeys(t, l, "down")
			}
			return pressKeys(t, l, "enter")
		}
	}
	t.Fatal("menu entry not found")
	return l
}

func TestLauncherMenuEntries(t *testing.T) {
	isolate(t)
	l := NewLauncher(testConfig(), Options{})
	for _, item := range l.menu.Items() {
		if item.Online {
			t.Error("online entry should need a coordinator")
		}
	}
	if !strings.Contains(l.View(), "Minesweeper") {
		t.Error("menu should list Minesweeper")
	}
}

func TestLauncherMinesweeperDifficulty(t *testing.T) {
	isolate(t)
	l := NewLauncher(testConfig(), Options{})

	l = selectItem(t, l, func(i MenuItem) bool { return i.GameID == minesweeper.ID })
	if l.screen != screenDifficulty {
		t.Fatalf("screen = %v, expected difficulty selector", l.screen)
	}
	if !strings.Contains(l.View(), "hard") {
		t.Error("selector should list the hard board")
	}

	l = pressKeys(t, l, "1")
	if l.screen != screenGame {
		t.Fatalf("screen = %v, expected game", l.screen)
	}
	ms, ok := l.game.game.(*minesweeper.Game)
	if !ok {
		t.Fatalf("game = %T, expected minesweeper", l.game.game)
	}
	if d := ms.Round().Difficulty(); d != minesweeper.Easy {
		t.Errorf("Difficulty() = %v, expected easy", d)
	}

	l = pressKeys(t, l, "q")
	if l.screen != screenMenu || l.quitting {
		t.Error("q in a game should return to the menu")
	}
}

func TestLauncherDifficultyBack(t *testing.T) {
	isolate(t)
	l := NewLauncher(testConfig(), Options{})
	l = selectItem(t, l, func(i MenuItem) bool { return i.GameID == minesweeper.ID })
	l = pressKeys(t, l, "esc")
	if l.screen != screenMenu {
		t.Errorf("screen = %v, expected menu after esc", l.screen)
	}
}

func TestLauncherIgnoresTicksOutsideGames(t *testing.T) {
	isolate(t)
	l := NewLauncher(testConfig(), Options{})
	l, cmd := update(t, l, TickMsg{Gen: 1})
	if cmd != nil || l.screen != screenMenu {
		t.Error("a stray tick should be dropped in the menu")
	}
}

func TestLauncherScoreboard(t *testing.T) {
	isolate(t)
	store := openStore(t)
	if _, err := store.SaveScore("tictactoe", "zoe", 3); err != nil {
		t.Fatalf("SaveScore() error = %v", err)
	}

	l := NewLauncher(testConfig(), Options{Store: store})
	l = pressKeys(t, l, "tab")
	if l.screen != screenScoreboard {
		t.Fatalf("screen = %v, expected scoreboard", l.screen)
	}

	// advance to the tic-tac-toe tab
	for i := 0; i < len(l.scoreboard.games) && l.scoreboard.games[l.scoreboard.gameCursor].ID != "tictactoe"; i++ {
		l = pressKeys(t, l, "tab")
	}
	if len(l.scoreboard.scores) != 1 || l.scoreboard.scores[0].Player != "zoe" {
		t.Errorf("scores = %+v, expected zoe's score", l.scoreboard.scores)
	}
	if !strings.Contains(l.View(), "1 games") {
		t.Error("stats line should count one game")
	}

	l = pressKeys(t, l, "esc")
	if l.screen != screenMenu {
		t.Errorf("screen = %v, expected menu", l.screen)
	}
	l, cmd := update(t, l, keyMsg("q"))
	if !l.quitting || cmd == nil {
		t.Error("q in the menu should quit")
	}
}

func newOnlineLaunchers(t *testing.T) (Launcher, *multiplayer.ChannelSession, Launcher, *multiplayer.ChannelSession) {
	t.Helper()
	isolate(t)

	sessions := multiplayer.NewSessionRegistry()
	cfg := multiplayer.DefaultConfig()
	cfg.TickRate = 200
	coord := multiplayer.NewCoordinator(cfg, onlineGame, sessions)
	coord.Start()
	t.Cleanup(coord.Stop)

	a := multiplayer.NewChannelSession("alice", 1024)
	b := multiplayer.NewChannelSession("bob", 1024)
	sessions.Register(a)
	sessions.Register(b)

	la := NewLauncher(testConfig(), Options{Coordinator: coord, Session: a})
	lb := NewLauncher(testConfig(), Options{Coordinator: coord, Session: b})
	if la.Init() == nil {
		t.Fatal("Init() should wait for coordinator events")
	}
	return la, a, lb, b
}

// pumpUntil feeds session events into the launcher until done holds.
func pumpUntil(t *testing.T, l Launcher, s *multiplayer.ChannelSession, done func(Launcher) bool) Launcher {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for !done(l) {
		select {
		case evt := <-s.Events():
			l, _ = update(t, l, sessionEventMsg{evt: evt})
		case <-deadline:
			t.Fatal("timed out waiting for the launcher")
		}
	}
	return l
}

func TestLauncherOnlineMatch(t *testing.T) {
	la, a, lb, b := newOnlineLaunchers(t)
	online := func(i MenuItem) bool { return i.Online }

	la = selectItem(t, la, online)
	if la.screen != screenLobby {
		t.Fatalf("screen = %v, expected lobby", la.screen)
	}
	la = pressKeys(t, la, "h")
	la = pumpUntil(t, la, a, func(l Launcher) bool { return l.lobby.State() == OnlineStateHostWaiting })
	code := la.lobby.LobbyCode()
	if len(code) != 6 || !strings.Contains(la.View(), code) {
		t.Fatalf("lobby code %q should be shown", code)
	}

	lb = selectItem(t, lb, online)
	lb = pressKeys(t, lb, "j")
	for _, c := range strings.ToLower(code) {
		lb = pressKeys(t, lb, string(c))
	}
	lb = pressKeys(t, lb, "enter")

	inMatch := func(l Launcher) bool { return l.screen == screenMatch }
	la = pumpUntil(t, la, a, inMatch)
	lb = pumpUntil(t, lb, b, inMatch)
	if la.match.Side() != core.Player1 || lb.match.Side() != core.Player2 {
		t.Fatalf("sides = %v/%v, expected host plays first", la.match.Side(), lb.match.Side())
	}

	la = pressKeys(t, la, " ")
	la = pumpUntil(t, la, a, func(l Launcher) bool {
		return l.match.hasSnap && l.match.snap.Cells[1][1] == tictactoe.X
	})
	if !strings.Contains(la.View(), "TIC-TAC-TOE ONLINE") {
		t.Error("match view should render the board")
	}

	la = pressKeys(t, la, "esc")
	if la.screen != screenMenu {
		t.Errorf("screen = %v, expected menu after leaving", la.screen)
	}
	lb = pumpUntil(t, lb, b, func(l Launcher) bool { return l.match.Ended() != nil })
	if e := lb.match.Ended(); e.Reason != multiplayer.EndLeft || e.Winner != core.Player2 {
		t.Errorf("Ended() = %+v, expected a forfeit win for Player2", e)
	}
	if !strings.Contains(lb.View(), "YOU WIN") {
		t.Error("winner should see the result")
	}
}

func TestLauncherJoinError(t *testing.T) {
	_, _, lb, b := newOnlineLaunchers(t)
	lb = selectItem(t, lb, func(i MenuItem) bool { return i.Online })
	lb = pressKeys(t, lb, "j", "z", "z", "z", "z", "z", "z", "enter")
	if lb.lobby.State() != OnlineStateJoinWaiting {
		t.Fatalf("State() = %v, expected waiting", lb.lobby.State())
	}
	lb = pumpUntil(t, lb, b, func(l Launcher) bool { return l.lobby.State() == OnlineStateJoinEnterCode })
	if !strings.Contains(lb.View(), "Lobby not found") {
		t.Error("join error should be shown")
	}
}
