package threes

// Snapshot is a read-only copy of the engine state for rendering and
// determinism checks. It shares no memory with the engine.
type Snapshot struct {
	Width      int
	Height     int
	Grid       Grid
	Vocabulary []int
	Score      int
	Moves      int
	Result     Result
	LossReason LossReason
	LastScore  int   // Score of the latest changing move
	LastTile   Point // Tile inserted by the latest changing move
	HasLast    bool  // Whether LastScore and LastTile are set
	MaxTile    int   // Highest tile on the grid
	Target     int   // Winning tile value
}

// Snapshot returns a copy of the current engine state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Width:      e.width,
		Height:     e.height,
		Grid:       e.grid.Clone(),
		Vocabulary: e.vocab.Values(),
		Score:      e.score,
		Moves:      e.moves,
		Result:     e.result,
		LossReason: e.lossReason,
		LastScore:  e.lastScore,
		LastTile:   e.lastTile,
		HasLast:    e.hasLastTile,
		MaxTile:    e.grid.MaxTile(),
		Target:     e.vocab.Max(),
	}
}

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateWon         GameStateType = "won"
	StateLost        GameStateType = "lost"
	StatePausedSmall GameStateType = "paused_small_window"
)

// GameSnapshot captures the adapter state for determinism testing.
type GameSnapshot struct {
	Tick    uint64
	Variant string
	State   GameStateType
	Engine  Snapshot
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() GameSnapshot {
	if g.engine == nil {
		return GameSnapshot{Tick: g.tick, Variant: g.variant.ID, State: StatePlaying}
	}

	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.engine.Result() == ResultWon:
		state = StateWon
	case g.engine.Result() == ResultLost:
		state = StateLost
	case g.paused:
		state = StatePaused
	}

	return GameSnapshot{
		Tick:    g.tick,
		Variant: g.variant.ID,
		State:   state,
		Engine:  g.engine.Snapshot(),
	}
}
