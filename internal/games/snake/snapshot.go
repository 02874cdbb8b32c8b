package snake

// GameStateType names the lifecycle state in a snapshot.
type GameStateType string

const (
	StatePlaying  GameStateType = "playing"
	StatePaused   GameStateType = "paused"
	StateGameOver GameStateType = "game_over"
	StateWin      GameStateType = "win"
)

// Snapshot captures the game for determinism tests.
type Snapshot struct {
	Tick     uint64
	Score    int
	Speed    int
	SnakeLen int
	HeadX    int
	HeadY    int
	Dir      Direction
	FoodX    int
	FoodY    int
	State    GameStateType
}

// Snapshot returns the current snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	head := g.body.Front()
	return Snapshot{
		Tick:     g.tick,
		Score:    g.score,
		Speed:    g.speed,
		SnakeLen: g.body.Len(),
		HeadX:    head.X,
		HeadY:    head.Y,
		Dir:      g.dir,
		FoodX:    g.food.X,
		FoodY:    g.food.Y,
		State:    state,
	}
}
