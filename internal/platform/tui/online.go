package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-classics/internal/core"
	"github.com/vovakirdan/arcade-classics/internal/games/tictactoe"
	"github.com/vovakirdan/arcade-classics/internal/multiplayer"
)

// sessionEventMsg wraps a coordinator event for the Bubble Tea loop.
type sessionEventMsg struct {
	evt multiplayer.SessionEvent
}

// waitForEvent reads the next coordinator event. The launcher keeps exactly
// one of these pending while a session is attached.
func waitForEvent(events <-chan multiplayer.SessionEvent) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-events
		if !ok {
			return nil
		}
		return sessionEventMsg{evt: evt}
	}
}

// OnlineState is a step of the matchmaking flow.
type OnlineState int

const (
	OnlineStateChooseMode OnlineState = iota
	OnlineStateHostWaiting
	OnlineStateJoinEnterCode
	OnlineStateJoinWaiting
)

const joinCodeLength = 6

// OnlineLobbyModel hosts or joins a lobby. Once the coordinator starts the
// match the launcher switches to an OnlineMatchModel.
type OnlineLobbyModel struct {
	state       OnlineState
	width       int
	height      int
	gameID      string
	sessionID   multiplayer.SessionID
	coordinator *multiplayer.Coordinator

	lobbyCode string
	joinCode  string
	errMsg    string

	back     bool
	quitting bool
}

// NewOnlineLobbyModel creates a lobby screen for gameID.
func NewOnlineLobbyModel(gameID string, sessionID multiplayer.SessionID, coordinator *multiplayer.Coordinator, width, height int) OnlineLobbyModel {
	return OnlineLobbyModel{
		width:       width,
		height:      height,
		gameID:      gameID,
		sessionID:   sessionID,
		coordinator: coordinator,
	}
}

// HandleEvent applies a lobby event.
func (m OnlineLobbyModel) HandleEvent(evt multiplayer.SessionEvent) OnlineLobbyModel {
	switch evt := evt.(type) {
	case multiplayer.LobbyCreatedEvent:
		m.lobbyCode = evt.Code
		m.errMsg = ""
		m.state = OnlineStateHostWaiting
	case multiplayer.LobbyErrorEvent:
		m.errMsg = evt.Message
		switch m.state {
		case OnlineStateJoinWaiting:
			m.state = OnlineStateJoinEnterCode
		case OnlineStateHostWaiting:
			m.lobbyCode = ""
			m.state = OnlineStateChooseMode
		}
	}
	return m
}

// Update handles keys and resizes.
func (m OnlineLobbyModel) Update(msg tea.Msg) (OnlineLobbyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancelHosting()
			m.quitting = true
			return m, nil
		}
		switch m.state {
		case OnlineStateChooseMode:
			m.handleChooseMode(msg.String())
		case OnlineStateHostWaiting:
			m.handleHostWaiting(msg.String())
		case OnlineStateJoinEnterCode:
			m.handleJoinCode(msg.String())
		case OnlineStateJoinWaiting:
			if msg.String() == "esc" {
				m.state = OnlineStateJoinEnterCode
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m *OnlineLobbyModel) handleChooseMode(key string) {
	switch key {
	case "h", "H", "1":
		m.errMsg = ""
		m.coordinator.Send(multiplayer.CreateLobbyMsg{SessionID: m.sessionID, GameID: m.gameID})
	case "j", "J", "2":
		m.state = OnlineStateJoinEnterCode
		m.joinCode = ""
		m.errMsg = ""
	case "esc", "b":
		m.back = true
	case "q":
		m.quitting = true
	}
}

func (m *OnlineLobbyModel) handleHostWaiting(key string) {
	switch key {
	case "esc", "b":
		m.cancelHosting()
		m.state = OnlineStateChooseMode
	case "q":
		m.cancelHosting()
		m.quitting = true
	}
}

func (m *OnlineLobbyModel) cancelHosting() {
	if m.state != OnlineStateHostWaiting || m.lobbyCode == "" {
		return
	}
	m.coordinator.Send(multiplayer.LeaveLobbyMsg{SessionID: m.sessionID, Code: m.lobbyCode})
	m.lobbyCode = ""
}

func (m *OnlineLobbyModel) handleJoinCode(key string) {
	switch key {
	case "esc":
		m.state = OnlineStateChooseMode
		m.errMsg = ""
	case "enter":
		if len(m.joinCode) == joinCodeLength {
			m.state = OnlineStateJoinWaiting
			m.errMsg = ""
			m.coordinator.Send(multiplayer.JoinLobbyMsg{SessionID: m.sessionID, Code: m.joinCode})
		}
	case "backspace":
		if m.joinCode != "" {
			m.joinCode = m.joinCode[:len(m.joinCode)-1]
		}
	default:
		if len(key) == 1 && len(m.joinCode) < joinCodeLength {
			c := strings.ToUpper(key)[0]
			if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
				m.joinCode += string(c)
			}
		}
	}
}

// View renders the current step.
func (m OnlineLobbyModel) View() string {
	var lines []string
	switch m.state {
	case OnlineStateChooseMode:
		lines = []string{
			menuTitleStyle.Render("TIC-TAC-TOE ONLINE"), "",
			"Choose an option:", "",
			"[H] Host a game",
			"[J] Join a game", "",
			menuHintStyle.Render("Esc: Back  |  Q: Quit"),
		}
	case OnlineStateHostWaiting:
		lines = []string{
			menuTitleStyle.Render("HOSTING GAME"), "",
			"Share this code with your opponent:", "",
			menuCursorStyle.Render(fmt.Sprintf("[ %s ]", m.lobbyCode)), "",
			"Waiting for player to join...", "",
			menuHintStyle.Render("Esc: Cancel  |  Q: Quit"),
		}
	case OnlineStateJoinEnterCode:
		code := m.joinCode
		if len(code) < joinCodeLength {
			code += "_" + strings.Repeat(" ", joinCodeLength-1-len(code))
		}
		lines = []string{
			menuTitleStyle.Render("JOIN GAME"), "",
			"Enter the game code:", "",
			fmt.Sprintf("[ %s ]", code), "",
			menuHintStyle.Render("Enter: Connect  |  Esc: Back"),
		}
	case OnlineStateJoinWaiting:
		lines = []string{
			menuTitleStyle.Render("CONNECTING"), "",
			"Joining game: " + m.joinCode, "",
			menuHintStyle.Render("Esc: Cancel"),
		}
	}
	if m.errMsg != "" {
		lines = append(lines, "", "Error: "+m.errMsg)
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, l := range lines {
		b.WriteString(centerText(l, m.width))
		b.WriteString("\n")
	}
	return b.String()
}

// State returns the current step.
func (m OnlineLobbyModel) State() OnlineState { return m.state }

// LobbyCode returns the code of the hosted lobby.
func (m OnlineLobbyModel) LobbyCode() string { return m.lobbyCode }

// WantsBack reports a request to return to the menu.
func (m OnlineLobbyModel) WantsBack() bool { return m.back }

// IsQuitting reports a quit request.
func (m OnlineLobbyModel) IsQuitting() bool { return m.quitting }

// OnlineMatchModel shows a running match and forwards local input to it.
type OnlineMatchModel struct {
	coordinator *multiplayer.Coordinator
	sessionID   multiplayer.SessionID
	matchID     multiplayer.MatchID
	side        core.PlayerID
	screen      *core.Screen
	keyMapper   *KeyMapper

	snap    tictactoe.Snapshot
	hasSnap bool
	ended   *multiplayer.MatchEndedEvent

	rematchOffered bool
	rematchSent    bool
	opponentGone   bool

	back     bool
	quitting bool
}

// NewOnlineMatchModel starts showing the match announced by evt.
func NewOnlineMatchModel(coordinator *multiplayer.Coordinator, sessionID multiplayer.SessionID, evt multiplayer.MatchStartedEvent, width, height int) OnlineMatchModel {
	return OnlineMatchModel{
		coordinator: coordinator,
		sessionID:   sessionID,
		matchID:     evt.MatchID,
		side:        evt.Side,
		screen:      core.NewScreen(width, height),
		keyMapper:   NewKeyMapper(),
	}
}

// HandleEvent applies an event addressed to this match.
func (m OnlineMatchModel) HandleEvent(evt multiplayer.SessionEvent) OnlineMatchModel {
	switch evt := evt.(type) {
	case multiplayer.SnapshotEvent:
		if evt.MatchID != m.matchID {
			return m
		}
		if s, ok := evt.Snapshot.(tictactoe.Snapshot); ok {
			m.snap = s
			m.hasSnap = true
		}
	case multiplayer.MatchEndedEvent:
		if evt.MatchID == m.matchID {
			m.ended = &evt
		}
	case multiplayer.RematchRequestedEvent:
		if evt.MatchID == m.matchID {
			m.rematchOffered = true
		}
	case multiplayer.LobbyClosedEvent:
		if m.ended != nil {
			m.opponentGone = true
		}
	}
	return m
}

// Update handles keys and resizes.
func (m OnlineMatchModel) Update(msg tea.Msg) (OnlineMatchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

func (m *OnlineMatchModel) handleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "ctrl+c":
		m.leave()
		m.quitting = true
		return
	case "esc", "q", "b":
		m.leave()
		m.back = true
		return
	}

	if m.ended != nil {
		if msg.String() == "r" && m.canRematch() && !m.rematchSent {
			m.rematchSent = true
			m.coordinator.Send(multiplayer.RematchMsg{SessionID: m.sessionID, MatchID: m.matchID})
		}
		return
	}

	frame := core.NewInputFrame()
	m.keyMapper.MapKeyToFrame(msg, &frame)
	if !frame.Empty() {
		m.coordinator.Send(multiplayer.InputMsg{MatchID: m.matchID, Player: m.side, Input: frame})
	}
}

// leave forfeits a running match, or declines the rematch of a finished one.
func (m *OnlineMatchModel) leave() {
	if m.ended != nil && !m.canRematch() {
		return
	}
	m.coordinator.Send(multiplayer.LeaveMatchMsg{SessionID: m.sessionID, MatchID: m.matchID})
}

func (m OnlineMatchModel) canRematch() bool {
	return m.ended != nil && m.ended.Reason == multiplayer.EndCompleted && !m.opponentGone
}

// View renders the board and, after the end, the result.
func (m OnlineMatchModel) View() string {
	if !m.hasSnap {
		m.screen.Clear()
		core.DrawOverlay(m.screen, core.ColorCyan, "MATCH STARTING", "You play "+tictactoe.MarkFor(m.side).String())
		return RenderScreen(m.screen)
	}

	tictactoe.RenderSnapshot(m.screen, m.snap, m.side)
	if m.ended != nil {
		lines := []string{m.resultLine()}
		if m.ended.Reason != multiplayer.EndCompleted {
			lines = append(lines, strings.ToUpper(m.ended.Reason.String()[:1])+m.ended.Reason.String()[1:])
		}
		switch {
		case m.opponentGone:
			lines = append(lines, "Opponent left", "Esc: Menu")
		case !m.canRematch():
			lines = append(lines, "Esc: Menu")
		case m.rematchSent:
			lines = append(lines, "Waiting for opponent...", "Esc: Menu")
		case m.rematchOffered:
			lines = append(lines, "Opponent wants a rematch!", "R: Rematch  Esc: Menu")
		default:
			lines = append(lines, "R: Rematch  Esc: Menu")
		}
		core.DrawOverlay(m.screen, m.resultColor(), lines...)
	}
	return RenderScreen(m.screen)
}

func (m OnlineMatchModel) resultLine() string {
	switch m.ended.Winner {
	case 0:
		return "DRAW"
	case m.side:
		return "YOU WIN!"
	default:
		return "YOU LOSE"
	}
}

func (m OnlineMatchModel) resultColor() core.Color {
	switch m.ended.Winner {
	case 0:
		return core.ColorYellow
	case m.side:
		return core.ColorBrightGreen
	default:
		return core.ColorBrightRed
	}
}

// MatchID returns the match being shown.
func (m OnlineMatchModel) MatchID() multiplayer.MatchID { return m.matchID }

// Side returns the side this session plays.
func (m OnlineMatchModel) Side() core.PlayerID { return m.side }

// Ended returns the final result, or nil while the match runs.
func (m OnlineMatchModel) Ended() *multiplayer.MatchEndedEvent { return m.ended }

// WantsBack reports a request to return to the menu.
func (m OnlineMatchModel) WantsBack() bool { return m.back }

// IsQuitting reports a quit request.
func (m OnlineMatchModel) IsQuitting() bool { return m.quitting }
