package multiplayer

import (
	"context"
	"time"

	"github.com/vovakirdan/arcade-classics/internal/core"
)

// OnlineGame is a game the server can run for two players.
type OnlineGame interface {
	Reset(cfg core.RuntimeConfig)
	StepMulti(in core.MultiInputFrame) core.StepResult
	Snapshot() GameSnapshot
	IsGameOver() bool

	// Winner returns the winning side, or 0 for a draw.
	Winner() PlayerID
	Score1() int
	Score2() int
}

// MatchResult is the outcome of a finished match.
type MatchResult struct {
	MatchID MatchID
	Reason  EndReason
	Winner  PlayerID
	Score1  int
	Score2  int
	Ticks   uint64
}

type sideInput struct {
	player PlayerID
	input  core.InputFrame
}

// OnlineMatch owns one game and ticks it at a fixed rate. Inputs that
// arrive between ticks are merged and consumed by the next tick.
type OnlineMatch struct {
	id       MatchID
	code     string
	gameID   string
	game     OnlineGame
	seats    Seats
	tickRate int

	inputs chan sideInput
	leave  chan SessionID

	// owned by the Run goroutine
	pending [3]core.InputFrame
	tick    uint64
}

// NewOnlineMatch prepares a match. The game must already be Reset.
func NewOnlineMatch(id MatchID, code, gameID string, game OnlineGame, seats Seats, tickRate int) *OnlineMatch {
	return &OnlineMatch{
		id:       id,
		code:     code,
		gameID:   gameID,
		game:     game,
		seats:    seats,
		tickRate: max(tickRate, 1),
		inputs:   make(chan sideInput, 64),
		leave:    make(chan SessionID, 2),
		pending:  [3]core.InputFrame{core.NewInputFrame(), core.NewInputFrame(), core.NewInputFrame()},
	}
}

func (m *OnlineMatch) ID() MatchID    { return m.id }
func (m *OnlineMatch) Code() string   { return m.code }
func (m *OnlineMatch) GameID() string { return m.gameID }
func (m *OnlineMatch) Seats() Seats   { return m.seats }
func (m *OnlineMatch) TickRate() int  { return m.tickRate }

// SendInput queues input for a side. Input is dropped when the queue is full.
func (m *OnlineMatch) SendInput(p PlayerID, in core.InputFrame) {
	if p != Player1 && p != Player2 {
		return
	}
	select {
	case m.inputs <- sideInput{player: p, input: in}:
	default:
	}
}

// Leave forfeits the match for a session.
func (m *OnlineMatch) Leave(id SessionID) {
	select {
	case m.leave <- id:
	default:
	}
}

// Run ticks the match until the game ends, a player leaves or
// disconnects, or ctx is cancelled. onEnd is not called on cancellation.
func (m *OnlineMatch) Run(ctx context.Context, onEnd func(MatchResult)) {
	ticker := time.NewTicker(time.Second / time.Duration(m.tickRate))
	defer ticker.Stop()

	finish := func(r MatchResult) {
		if onEnd != nil {
			onEnd(r)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.seats.P1.Done():
			finish(m.forfeit(Player1, EndDisconnect))
			return
		case <-m.seats.P2.Done():
			finish(m.forfeit(Player2, EndDisconnect))
			return
		case id := <-m.leave:
			if side := m.seats.SideOf(id); side != 0 {
				finish(m.forfeit(side, EndLeft))
				return
			}
		case <-ticker.C:
			if r, over := m.step(); over {
				finish(r)
				return
			}
		}
	}
}

// step runs one tick and broadcasts the resulting snapshot.
func (m *OnlineMatch) step() (MatchResult, bool) {
	m.drain()

	frame := core.NewMultiInputFrame()
	for _, p := range []PlayerID{Player1, Player2} {
		frame.SetPlayer(p, m.pending[p].Clone())
		m.pending[p].Clear()
	}

	m.game.StepMulti(frame)
	m.tick++

	evt := SnapshotEvent{MatchID: m.id, Tick: m.tick, Snapshot: m.game.Snapshot()}
	m.seats.each(func(s SessionHandle) { s.Send(evt) })

	if !m.game.IsGameOver() {
		return MatchResult{}, false
	}
	return m.result(EndCompleted, m.game.Winner()), true
}

// drain merges every queued input into the pending frames.
func (m *OnlineMatch) drain() {
	for {
		select {
		case si := <-m.inputs:
			dst := &m.pending[si.player]
			for a, on := range si.input.Actions {
				if on {
					dst.Set(a)
				}
			}
			for _, p := range si.input.Pointers() {
				dst.AddPointer(p)
			}
		default:
			return
		}
	}
}

func (m *OnlineMatch) forfeit(loser PlayerID, reason EndReason) MatchResult {
	return m.result(reason, loser.Other())
}

func (m *OnlineMatch) result(reason EndReason, winner PlayerID) MatchResult {
	return MatchResult{
		MatchID: m.id,
		Reason:  reason,
		Winner:  winner,
		Score1:  m.game.Score1(),
		Score2:  m.game.Score2(),
		Ticks:   m.tick,
	}
}
