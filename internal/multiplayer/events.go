package multiplayer

import "github.com/vovakirdan/arcade-classics/internal/core"

// SessionEvent is sent from the coordinator or a match to a session.
type SessionEvent interface {
	sessionEvent()
}

// LobbyCreatedEvent carries the join code to the host.
type LobbyCreatedEvent struct {
	Code   string
	GameID string
}

// LobbyErrorEvent reports a refused lobby operation.
type LobbyErrorEvent struct {
	Message string
}

// LobbyClosedEvent tells a waiting joiner the host went away.
type LobbyClosedEvent struct {
	Code string
}

// MatchStartedEvent is sent to both players when a match (or rematch) begins.
type MatchStartedEvent struct {
	MatchID MatchID
	Code    string
	Side    PlayerID
}

// MatchEndedEvent carries the final result.
type MatchEndedEvent struct {
	MatchID MatchID
	Reason  EndReason
	Winner  PlayerID // 0 on a draw
	Score1  int
	Score2  int
}

// RematchRequestedEvent tells a player the opponent wants another round.
type RematchRequestedEvent struct {
	MatchID MatchID
}

// SnapshotEvent carries the match state after a tick.
type SnapshotEvent struct {
	MatchID  MatchID
	Tick     uint64
	Snapshot GameSnapshot
}

func (LobbyCreatedEvent) sessionEvent()     {}
func (LobbyErrorEvent) sessionEvent()       {}
func (LobbyClosedEvent) sessionEvent()      {}
func (MatchStartedEvent) sessionEvent()     {}
func (MatchEndedEvent) sessionEvent()       {}
func (RematchRequestedEvent) sessionEvent() {}
func (SnapshotEvent) sessionEvent()         {}

// GameSnapshot is a game-specific state payload.
type GameSnapshot interface {
	IsGameSnapshot()
}

// EndReason says why a match stopped.
type EndReason int

const (
	EndCompleted EndReason = iota
	EndDisconnect
	EndLeft
)

func (r EndReason) String() string {
	switch r {
	case EndCompleted:
		return "completed"
	case EndDisconnect:
		return "opponent disconnected"
	case EndLeft:
		return "opponent left"
	default:
		return "unknown"
	}
}

// Message is sent from a session to the coordinator.
type Message interface {
	message()
}

// CreateLobbyMsg hosts a new lobby for a game.
type CreateLobbyMsg struct {
	SessionID SessionID
	GameID    string
}

// JoinLobbyMsg joins a lobby by code. Codes are case-insensitive.
type JoinLobbyMsg struct {
	SessionID SessionID
	Code      string
}

// LeaveLobbyMsg withdraws from a lobby that has not started.
type LeaveLobbyMsg struct {
	SessionID SessionID
	Code      string
}

// LeaveMatchMsg forfeits a running match.
type LeaveMatchMsg struct {
	SessionID SessionID
	MatchID   MatchID
}

// InputMsg forwards one frame of input to a match.
type InputMsg struct {
	MatchID MatchID
	Player  PlayerID
	Input   core.InputFrame
}

// RematchMsg asks for another round against the same opponent.
type RematchMsg struct {
	SessionID SessionID
	MatchID   MatchID
}

// DisconnectedMsg is sent by the transport when a client goes away.
type DisconnectedMsg struct {
	SessionID SessionID
}

func (CreateLobbyMsg) message()  {}
func (JoinLobbyMsg) message()    {}
func (LeaveLobbyMsg) message()   {}
func (LeaveMatchMsg) message()   {}
func (InputMsg) message()        {}
func (RematchMsg) message()      {}
func (DisconnectedMsg) message() {}
