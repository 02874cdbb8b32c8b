package multiplayer

import (
	"context"
	"crypto/rand"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-classics/internal/core"
)

const codeLength = 6

// Lobby is a hosted game waiting for an opponent.
type Lobby struct {
	Code      string
	GameID    string
	Host      SessionHandle
	CreatedAt time.Time
}

// Config tunes the coordinator.
type Config struct {
	TickRate       int
	LobbyTimeout   time.Duration // unjoined lobbies expire after this
	RematchTimeout time.Duration // how long a finished pair may ask for a rematch
	CleanupPeriod  time.Duration
}

// DefaultConfig returns the server defaults.
func DefaultConfig() Config {
	return Config{
		TickRate:       30,
		LobbyTimeout:   5 * time.Minute,
		RematchTimeout: 2 * time.Minute,
		CleanupPeriod:  30 * time.Second,
	}
}

// GameFactory builds the game for a new match.
type GameFactory func(gameID string) (OnlineGame, error)

// MatchResultSaver persists finished matches.
type MatchResultSaver interface {
	SaveMatchResult(MatchResultData) error
}

// MatchResultData is the stored form of a match result.
type MatchResultData struct {
	MatchID        string
	GameID         string
	Player1Session string
	Player2Session string
	Score1         int
	Score2         int
	WinnerSession  string
	EndReason      string
	DurationSecs   int
}

// rematch remembers a finished pair so either side can ask for another round.
type rematch struct {
	code    string
	gameID  string
	seats   Seats
	ready   SessionID
	endedAt time.Time
}

// Coordinator hosts lobbies, starts matches and records their results.
// Messages are handled one at a time on a background goroutine.
type Coordinator struct {
	cfg      Config
	factory  GameFactory
	sessions *SessionRegistry
	saver    MatchResultSaver
	logger   *log.Logger

	ctx    context.Context
	cancel context.CancelFunc
	msgs   chan Message
	wg     sync.WaitGroup

	mu           sync.Mutex
	lobbies      map[string]*Lobby
	matches      map[MatchID]*OnlineMatch
	rematches    map[MatchID]*rematch
	sessionLobby map[SessionID]string
	sessionMatch map[SessionID]MatchID
}

// NewCoordinator creates a coordinator. Call Start before sending messages.
func NewCoordinator(cfg Config, factory GameFactory, sessions *SessionRegistry) *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		cfg:          cfg,
		factory:      factory,
		sessions:     sessions,
		logger:       log.New(io.Discard),
		ctx:          ctx,
		cancel:       cancel,
		msgs:         make(chan Message, 256),
		lobbies:      make(map[string]*Lobby),
		matches:      make(map[MatchID]*OnlineMatch),
		rematches:    make(map[MatchID]*rematch),
		sessionLobby: make(map[SessionID]string),
		sessionMatch: make(map[SessionID]MatchID),
	}
}

// SetResultSaver enables match persistence.
func (c *Coordinator) SetResultSaver(s MatchResultSaver) { c.saver = s }

// SetLogger replaces the default discarding logger.
func (c *Coordinator) SetLogger(l *log.Logger) { c.logger = l }

// Start launches the message loop and the expiry sweep.
func (c *Coordinator) Start() {
	c.wg.Go(c.loop)
	c.wg.Go(c.sweepLoop)
}

// Stop cancels running matches and waits for background work.
func (c *Coordinator) Stop() {
	c.cancel()
	c.wg.Wait()
}

// Send queues a message. It blocks only while the queue is full.
func (c *Coordinator) Send(msg Message) {
	select {
	case c.msgs <- msg:
	case <-c.ctx.Done():
	}
}

func (c *Coordinator) loop() {
	for {
		select {
		case msg := <-c.msgs:
			c.handle(msg)
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Coordinator) handle(msg Message) {
	switch m := msg.(type) {
	case CreateLobbyMsg:
		c.createLobby(m)
	case JoinLobbyMsg:
		c.joinLobby(m)
	case LeaveLobbyMsg:
		c.leaveLobby(m)
	case LeaveMatchMsg:
		c.leaveMatch(m)
	case InputMsg:
		if match, ok := c.match(m.MatchID); ok {
			match.SendInput(m.Player, m.Input)
		}
	case RematchMsg:
		c.requestRematch(m)
	case DisconnectedMsg:
		c.disconnected(m.SessionID)
	}
}

func (c *Coordinator) match(id MatchID) (*OnlineMatch, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.matches[id]
	return m, ok
}

// busy reports whether a session is already hosting or playing.
func (c *Coordinator) busy(id SessionID) bool {
	_, inLobby := c.sessionLobby[id]
	_, inMatch := c.sessionMatch[id]
	return inLobby || inMatch
}

func (c *Coordinator) createLobby(msg CreateLobbyMsg) {
	s, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy(msg.SessionID) {
		s.Send(LobbyErrorEvent{Message: "Already in a game"})
		return
	}

	code := c.freeCode()
	c.lobbies[code] = &Lobby{Code: code, GameID: msg.GameID, Host: s, CreatedAt: time.Now()}
	c.sessionLobby[msg.SessionID] = code
	c.logger.Info("lobby created", "code", code, "game", msg.GameID, "host", msg.SessionID)

	s.Send(LobbyCreatedEvent{Code: code, GameID: msg.GameID})
}

func (c *Coordinator) joinLobby(msg JoinLobbyMsg) {
	s, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	code := strings.ToUpper(strings.TrimSpace(msg.Code))
	lobby, ok := c.lobbies[code]
	switch {
	case c.busy(msg.SessionID):
		s.Send(LobbyErrorEvent{Message: "Already in a game"})
	case !ok:
		s.Send(LobbyErrorEvent{Message: "Lobby not found"})
	case lobby.Host.ID() == msg.SessionID:
		s.Send(LobbyErrorEvent{Message: "Cannot join your own lobby"})
	default:
		delete(c.lobbies, code)
		delete(c.sessionLobby, lobby.Host.ID())
		c.startMatch(code, lobby.GameID, Seats{P1: lobby.Host, P2: s})
	}
}

func (c *Coordinator) leaveLobby(msg LeaveLobbyMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	code := strings.ToUpper(msg.Code)
	if lobby, ok := c.lobbies[code]; ok && lobby.Host.ID() == msg.SessionID {
		delete(c.lobbies, code)
		delete(c.sessionLobby, msg.SessionID)
		c.logger.Info("lobby cancelled", "code", code)
	}
}

// startMatch must be called with c.mu held.
func (c *Coordinator) startMatch(code, gameID string, seats Seats) {
	game, err := c.factory(gameID)
	if err != nil {
		c.logger.Error("cannot create game", "game", gameID, "err", err)
		seats.each(func(s SessionHandle) {
			s.Send(LobbyErrorEvent{Message: "Cannot start " + gameID})
		})
		return
	}
	game.Reset(core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: c.cfg.TickRate,
		Seed:     time.Now().UnixNano(),
	})

	m := NewOnlineMatch(NewMatchID(), code, gameID, game, seats, c.cfg.TickRate)
	c.matches[m.ID()] = m
	c.sessionMatch[seats.P1.ID()] = m.ID()
	c.sessionMatch[seats.P2.ID()] = m.ID()
	c.logger.Info("match started", "match", m.ID(), "game", gameID, "p1", seats.P1.ID(), "p2", seats.P2.ID())

	seats.P1.Send(MatchStartedEvent{MatchID: m.ID(), Code: code, Side: Player1})
	seats.P2.Send(MatchStartedEvent{MatchID: m.ID(), Code: code, Side: Player2})

	c.wg.Go(func() {
		m.Run(c.ctx, func(r MatchResult) { c.matchEnded(m, r) })
	})
}

func (c *Coordinator) matchEnded(m *OnlineMatch, r MatchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.matches[m.ID()]; !ok {
		return
	}
	delete(c.matches, m.ID())
	seats := m.Seats()
	seats.each(func(s SessionHandle) { delete(c.sessionMatch, s.ID()) })

	if r.Reason == EndCompleted {
		c.rematches[m.ID()] = &rematch{code: m.Code(), gameID: m.GameID(), seats: seats, endedAt: time.Now()}
	}
	c.logger.Info("match ended", "match", m.ID(), "reason", r.Reason, "winner", r.Winner)

	evt := MatchEndedEvent{MatchID: m.ID(), Reason: r.Reason, Winner: r.Winner, Score1: r.Score1, Score2: r.Score2}
	seats.each(func(s SessionHandle) { s.Send(evt) })

	if c.saver != nil {
		data := resultData(m, r)
		c.wg.Go(func() {
			if err := c.saver.SaveMatchResult(data); err != nil {
				c.logger.Error("cannot save match", "match", data.MatchID, "err", err)
			}
		})
	}
}

func resultData(m *OnlineMatch, r MatchResult) MatchResultData {
	seats := m.Seats()
	var winner string
	if r.Winner != 0 {
		winner = string(seats.Of(r.Winner).ID())
	}
	return MatchResultData{
		MatchID:        string(m.ID()),
		GameID:         m.GameID(),
		Player1Session: string(seats.P1.ID()),
		Player2Session: string(seats.P2.ID()),
		Score1:         r.Score1,
		Score2:         r.Score2,
		WinnerSession:  winner,
		EndReason:      r.Reason.String(),
		DurationSecs:   int(r.Ticks) / m.TickRate(),
	}
}

// requestRematch starts a new match once both players of a finished
// match have asked. Sides swap so the other player moves first.
func (c *Coordinator) requestRematch(msg RematchMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rm, ok := c.rematches[msg.MatchID]
	if !ok {
		return
	}
	side := rm.seats.SideOf(msg.SessionID)
	if side == 0 || c.busy(msg.SessionID) {
		return
	}

	switch rm.ready {
	case "":
		rm.ready = msg.SessionID
		rm.seats.Of(side.Other()).Send(RematchRequestedEvent{MatchID: msg.MatchID})
	case msg.SessionID:
	default:
		delete(c.rematches, msg.MatchID)
		c.startMatch(rm.code, rm.gameID, rm.seats.Swapped())
	}
}

// leaveMatch forfeits a running match or declines a pending rematch.
func (c *Coordinator) leaveMatch(msg LeaveMatchMsg) {
	if match, ok := c.match(msg.MatchID); ok {
		match.Leave(msg.SessionID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	rm, ok := c.rematches[msg.MatchID]
	if !ok {
		return
	}
	if side := rm.seats.SideOf(msg.SessionID); side != 0 {
		delete(c.rematches, msg.MatchID)
		rm.seats.Of(side.Other()).Send(LobbyClosedEvent{Code: rm.code})
	}
}

func (c *Coordinator) disconnected(id SessionID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if code, ok := c.sessionLobby[id]; ok {
		delete(c.lobbies, code)
		delete(c.sessionLobby, id)
	}
	if mid, ok := c.sessionMatch[id]; ok {
		if m, ok := c.matches[mid]; ok {
			m.Leave(id)
		}
	}
	for mid, rm := range c.rematches {
		if side := rm.seats.SideOf(id); side != 0 {
			delete(c.rematches, mid)
			rm.seats.Of(side.Other()).Send(LobbyClosedEvent{Code: rm.code})
		}
	}
}

func (c *Coordinator) sweepLoop() {
	period := c.cfg.CleanupPeriod
	if period <= 0 {
		period = DefaultConfig().CleanupPeriod
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			c.sweep(now)
		case <-c.ctx.Done():
			return
		}
	}
}

// sweep expires idle lobbies and stale rematch offers.
func (c *Coordinator) sweep(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for code, l := range c.lobbies {
		if now.Sub(l.CreatedAt) > c.cfg.LobbyTimeout {
			l.Host.Send(LobbyErrorEvent{Message: "Lobby expired"})
			delete(c.sessionLobby, l.Host.ID())
			delete(c.lobbies, code)
		}
	}
	for id, rm := range c.rematches {
		if now.Sub(rm.endedAt) > c.cfg.RematchTimeout {
			delete(c.rematches, id)
		}
	}
}

// freeCode returns an unused join code. Must be called with c.mu held.
func (c *Coordinator) freeCode() string {
	for {
		code := rand.Text()[:codeLength]
		if _, taken := c.lobbies[code]; !taken {
			return code
		}
	}
}

// Lobby returns a waiting lobby by code.
func (c *Coordinator) Lobby(code string) (*Lobby, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.lobbies[strings.ToUpper(code)]
	return l, ok
}

// LobbyCount returns the number of waiting lobbies.
func (c *Coordinator) LobbyCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lobbies)
}

// MatchCount returns the number of running matches.
func (c *Coordinator) MatchCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.matches)
}
