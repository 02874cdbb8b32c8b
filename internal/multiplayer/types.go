// Package multiplayer pairs two sessions into a match and runs the match
// loop on the server. Sessions talk to the Coordinator with messages and
// receive events back; neither side knows about SSH or Bubble Tea.
package multiplayer

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/arcade-classics/internal/core"
)

// PlayerID is core.PlayerID. Player1 hosts and moves first.
type PlayerID = core.PlayerID

const (
	Player1 = core.Player1
	Player2 = core.Player2
)

// SessionID identifies one connected client.
type SessionID string

// MatchID identifies one match. A rematch gets a new id.
type MatchID string

// NewMatchID returns a random match id.
func NewMatchID() MatchID {
	return MatchID(uuid.NewString())
}

// NewSessionID returns a random session id for transports that have none.
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// Seats maps each side of a match to its session.
type Seats struct {
	P1, P2 SessionHandle
}

// Of returns the session playing a side.
func (s Seats) Of(p PlayerID) SessionHandle {
	if p == Player2 {
		return s.P2
	}
	return s.P1
}

// SideOf returns which side a session plays, or 0.
func (s Seats) SideOf(id SessionID) PlayerID {
	switch {
	case s.P1 != nil && s.P1.ID() == id:
		return Player1
	case s.P2 != nil && s.P2.ID() == id:
		return Player2
	default:
		return 0
	}
}

// Swapped returns the seats with sides exchanged.
func (s Seats) Swapped() Seats {
	return Seats{P1: s.P2, P2: s.P1}
}

func (s Seats) each(fn func(SessionHandle)) {
	fn(s.P1)
	fn(s.P2)
}
