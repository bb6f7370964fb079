package threes

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// DefaultHighNumberProbability is the chance that a new tile is the
// vocabulary's second value instead of its first.
const DefaultHighNumberProbability = 0.3

// ErrInvalidConfig is returned by NewEngine for unusable parameters.
var ErrInvalidConfig = errors.New("threes: invalid engine configuration")

// Result is the terminal status of a game.
type Result int

const (
	ResultPlaying Result = iota
	ResultWon
	ResultLost
)

// String returns a human-readable name for the result.
func (r Result) String() string {
	switch r {
	case ResultPlaying:
		return "playing"
	case ResultWon:
		return "won"
	case ResultLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Finished reports whether the result ends the game.
func (r Result) Finished() bool {
	return r != ResultPlaying
}

// LossReason tells why a game was lost.
type LossReason int

const (
	LossNone     LossReason = iota
	LossGridFull            // No empty cell to place a tile
	LossNoMoves             // No direction changes the grid
)

// String returns a human-readable name for the loss reason.
func (l LossReason) String() string {
	switch l {
	case LossGridFull:
		return "grid full"
	case LossNoMoves:
		return "no valid moves"
	default:
		return ""
	}
}

// MoveOutcome describes the effect of a single Move call.
type MoveOutcome struct {
	Changed    bool   // Whether the grid changed
	ScoreDelta int    // Score earned: 1 plus the merge score, or 0 for a no-op
	MergeScore int    // Sum of values created by merges
	Inserted   Point  // Cell of the new tile, valid when TileAdded is true
	TileAdded  bool   // Whether a tile was placed after the move
	Result     Result // Game result after the move
}

// Placement describes the effect of a tile insertion.
type Placement struct {
	Tile   Point
	Value  int
	Placed bool
	Result Result
}

// Option customizes an Engine.
type Option func(*Engine)

// WithRand sets the random source used for tile placement.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithSeed seeds a new random source for tile placement.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithHighNumberProbability sets the chance of placing the second value.
func WithHighNumberProbability(p float64) Option {
	return func(e *Engine) {
		e.highProb = p
	}
}

// Engine holds the state of one game and applies moves to it.
// It is not safe for concurrent use.
type Engine struct {
	width  int
	height int
	vocab  Vocabulary
	grid   Grid

	rng      *rand.Rand
	highProb float64

	score      int
	moves      int
	result     Result
	lossReason LossReason

	lastScore   int
	lastTile    Point
	hasLastTile bool
}

// NewEngine creates an engine with an empty width x height grid using the
// first vocabularyLength tile values. A length above MaxVocabularyLength
// is clamped.
func NewEngine(width, height, vocabularyLength int, opts ...Option) (*Engine, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: grid size %dx%d", ErrInvalidConfig, width, height)
	}
	if vocabularyLength <= 0 {
		return nil, fmt.Errorf("%w: vocabulary length %d", ErrInvalidConfig, vocabularyLength)
	}

	e := &Engine{
		width:    width,
		height:   height,
		vocab:    NewVocabulary(vocabularyLength),
		grid:     NewGrid(width, height),
		highProb: DefaultHighNumberProbability,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.highProb < 0 || e.highProb > 1 {
		return nil, fmt.Errorf("%w: high number probability %v", ErrInvalidConfig, e.highProb)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return e, nil
}

// Initialize places the two starting tiles. It returns the result after
// seeding, which is only terminal on degenerate grids or vocabularies.
func (e *Engine) Initialize() Result {
	e.AddTile()
	e.AddTile()
	return e.result
}

// Move shifts the grid in the given direction. A move that changes the
// grid is followed by a new tile and scores 1 plus the merged values.
// Moves on a finished game are ignored.
func (e *Engine) Move(dir Direction) MoveOutcome {
	if e.result.Finished() {
		return MoveOutcome{Result: e.result}
	}

	candidate, mergeScore := Transform(e.grid, dir, e.vocab)
	if candidate.Equal(e.grid) {
		return MoveOutcome{Result: e.result}
	}

	e.grid = candidate
	e.moves++
	placement := e.AddTile()

	delta := 1 + mergeScore
	e.score += delta
	e.lastScore = delta
	e.lastTile = placement.Tile
	e.hasLastTile = placement.Placed

	return MoveOutcome{
		Changed:    true,
		ScoreDelta: delta,
		MergeScore: mergeScore,
		Inserted:   placement.Tile,
		TileAdded:  placement.Placed,
		Result:     e.result,
	}
}

// AddTile places a new tile on a random empty cell and then checks for
// the end of the game. A full grid loses without being modified.
func (e *Engine) AddTile() Placement {
	if e.result.Finished() {
		return Placement{Result: e.result}
	}

	empty := e.grid.EmptyCells()
	if len(empty) == 0 {
		e.finish(ResultLost, LossGridFull)
		return Placement{Result: e.result}
	}

	cell := empty[e.rng.Intn(len(empty))]
	value := e.vocab.First()
	if e.rng.Float64() < e.highProb {
		value = e.vocab.Second()
	}
	e.grid[cell.Col][cell.Row] = value

	switch {
	case e.grid.Contains(e.vocab.Max()):
		e.finish(ResultWon, LossNone)
	case !e.ValidMoves():
		e.finish(ResultLost, LossNoMoves)
	}

	return Placement{Tile: cell, Value: value, Placed: true, Result: e.result}
}

// ValidMoves reports whether at least one direction changes the grid.
func (e *Engine) ValidMoves() bool {
	return HasValidMove(e.grid, e.vocab)
}

func (e *Engine) finish(r Result, reason LossReason) {
	e.result = r
	e.lossReason = reason
}

// IsFinished reports whether the game has been won or lost.
func (e *Engine) IsFinished() bool {
	return e.result.Finished()
}

// Result returns the current game result.
func (e *Engine) Result() Result {
	return e.result
}

// LossReason returns why the game was lost, or LossNone.
func (e *Engine) LossReason() LossReason {
	return e.lossReason
}

// Score returns the cumulative score.
func (e *Engine) Score() int {
	return e.score
}

// Moves returns the number of moves that changed the grid.
func (e *Engine) Moves() int {
	return e.moves
}

// Width returns the number of grid columns.
func (e *Engine) Width() int {
	return e.width
}

// Height returns the number of grid rows.
func (e *Engine) Height() int {
	return e.height
}

// Vocabulary returns the tile vocabulary.
func (e *Engine) Vocabulary() Vocabulary {
	return e.vocab
}

// Grid returns a copy of the current grid.
func (e *Engine) Grid() Grid {
	return e.grid.Clone()
}

// LastMove returns the score of the latest changing move and the tile it
// inserted. ok is false until a move has placed a tile.
func (e *Engine) LastMove() (score int, tile Point, ok bool) {
	return e.lastScore, e.lastTile, e.hasLastTile
}

func corruptedGrid(value int) string {
	return fmt.Sprintf("threes: corrupted grid: value %d is not in the vocabulary", value)
}
