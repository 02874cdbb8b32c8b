package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/arcade-classics/internal/games/minesweeper"
)

// roundIdleTTL is how long an untouched round is kept.
const roundIdleTTL = time.Hour

// liveRound is a round plus the bookkeeping the service needs. Round is not
// safe for concurrent use, so every access goes through mu.
type liveRound struct {
	mu       sync.Mutex
	id       string
	round    *minesweeper.Round
	player   string
	saved    bool
	lastUsed time.Time
}

// roundTable maps round ids to live rounds.
type roundTable struct {
	mu     sync.RWMutex
	rounds map[string]*liveRound
}

func newRoundTable() *roundTable {
	return &roundTable{rounds: make(map[string]*liveRound)}
}

// add stores a round under a fresh id.
func (t *roundTable) add(round *minesweeper.Round, player string, now time.Time) *liveRound {
	lr := &liveRound{
		id:       uuid.NewString(),
		round:    round,
		player:   player,
		lastUsed: now,
	}
	t.mu.Lock()
	t.rounds[lr.id] = lr
	t.mu.Unlock()
	return lr
}

func (t *roundTable) get(id string) (*liveRound, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	lr, ok := t.rounds[id]
	return lr, ok
}

func (t *roundTable) remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rounds[id]; !ok {
		return false
	}
	delete(t.rounds, id)
	return true
}

func (t *roundTable) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rounds)
}

// prune drops rounds last used before cutoff and returns how many went.
func (t *roundTable) prune(cutoff time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for id, lr := range t.rounds {
		lr.mu.Lock()
		idle := lr.lastUsed.Before(cutoff)
		lr.mu.Unlock()
		if idle {
			delete(t.rounds, id)
			n++
		}
	}
	return n
}
