package threes

import (
	"github.com/vovakirdan/tui-threes/internal/config"
	"github.com/vovakirdan/tui-threes/internal/core"
	"github.com/vovakirdan/tui-threes/internal/registry"
)

// Game adapts an Engine to the terminal platform.
type Game struct {
	variant  Variant
	engine   *Engine
	settings config.ThreesConfig
	tick     uint64

	// Screen dimensions
	screenW int
	screenH int

	paused    bool
	tooSmall  bool
	configErr error
}

// Package-level variables for config
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets a custom config file used on the next Reset.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset used on the next Reset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// New creates a game for the given variant.
func New(v Variant) *Game {
	return &Game{variant: v}
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, func() registry.Game {
			return New(v)
		})
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Name
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.paused = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	g.settings, g.configErr = ResolveSettings(g.variant)

	engine, err := newEngine(g.settings, cfg.Seed)
	if err != nil {
		// Validated settings only fail here if the variant table is broken
		g.configErr = err
		g.settings = config.DefaultThreesConfig()
		engine = mustEngine(g.settings, cfg.Seed)
	}
	g.engine = engine
	g.engine.Initialize()

	g.checkScreenSize()
}

func newEngine(s config.ThreesConfig, seed int64) (*Engine, error) {
	return NewEngine(
		s.Grid.Width,
		s.Grid.Height,
		s.Vocabulary.Length,
		WithSeed(seed),
		WithHighNumberProbability(s.Spawn.HighNumberProbability),
	)
}

// mustEngine is newEngine for settings that are known to be valid.
func mustEngine(s config.ThreesConfig, seed int64) *Engine {
	e, err := newEngine(s, seed)
	if err != nil {
		panic("threes: default settings rejected: " + err.Error())
	}
	return e
}

// ResolveSettings loads the configuration and applies the difficulty
// preset and the variant's overrides. Fixed variants keep their own size
// and target, so a preset only changes their spawn odds. A load error is
// returned together with the defaults, which are still usable.
func ResolveSettings(v Variant) (config.ThreesConfig, error) {
	settings, err := config.LoadThrees(configPath)
	if err != nil {
		settings = config.DefaultThreesConfig()
	}
	config.ApplyThreesPreset(&settings, difficultyPreset)

	if v.Width > 0 && v.Height > 0 {
		settings.Grid.Width = v.Width
		settings.Grid.Height = v.Height
	}
	if v.VocabularyLength > 0 {
		settings.Vocabulary.Length = v.VocabularyLength
	}
	return settings, err
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	boardW, boardH := boardSize(g.engine.Width(), g.engine.Height())
	minW := boardW + 2
	minH := boardH + hudHeight + footerHeight
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall || g.engine == nil {
		return core.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(core.ActionPause) && !g.engine.IsFinished() {
		g.paused = !g.paused
	}

	if g.paused || g.engine.IsFinished() {
		return core.StepResult{State: g.State()}
	}

	dir, ok := directionFor(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	outcome := g.engine.Move(dir)
	return core.StepResult{State: g.State(), Moved: outcome.Changed}
}

// directionFor picks the move requested by the input frame.
// Only one move is applied per tick.
func directionFor(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return Up, true
	case in.Has(core.ActionDown):
		return Down, true
	case in.Has(core.ActionLeft):
		return Left, true
	case in.Has(core.ActionRight):
		return Right, true
	}
	return 0, false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.engine.Score(),
		GameOver: g.engine.IsFinished(),
		Won:      g.engine.Result() == ResultWon,
		Paused:   g.paused || g.tooSmall,
	}
}

// ConfigErr returns the error met while loading configuration on the last
// Reset, if the defaults had to be used instead.
func (g *Game) ConfigErr() error {
	return g.configErr
}

// Summary reports the current round for the result history.
func (g *Game) Summary() core.Summary {
	if g.engine == nil {
		return core.Summary{}
	}
	return core.Summary{
		Score:   g.engine.Score(),
		Won:     g.engine.Result() == ResultWon,
		Lost:    g.engine.Result() == ResultLost,
		MaxTile: g.engine.grid.MaxTile(),
		Moves:   g.engine.Moves(),
	}
}

// Resize follows a terminal resize, keeping the current round.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	if g.engine != nil {
		g.checkScreenSize()
	}
}
