package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-threes/internal/core"
	"github.com/vovakirdan/tui-threes/internal/registry"
	"github.com/vovakirdan/tui-threes/internal/storage"
)

// helpHeight is the number of terminal rows reserved for the help bar.
const helpHeight = 1

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	scoreSaved bool // Whether the result has been saved for the current round

	// A seed given by the user makes every round reproducible: round n
	// uses baseSeed+n. Otherwise each round is seeded from the clock.
	fixedSeed bool
	baseSeed  int64
	round     int64

	notice string // Shown instead of the help bar until the next key press
}

// NewModel creates a new Bubble Tea model for the given game.
// The game is reset here so its state is ready before the first frame.
func NewModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) *Model {
	fixedSeed := cfg.Seed != 0
	if !fixedSeed {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	screenH := core.Max(1, cfg.ScreenH-helpHeight)
	gameCfg := cfg
	gameCfg.ScreenH = screenH

	m := &Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, screenH),
		store:      store,
		logger:     logger.WithPrefix(game.ID()),
		config:     gameCfg,
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		fixedSeed:  fixedSeed,
		baseSeed:   cfg.Seed,
	}
	m.help.Width = cfg.ScreenW
	m.startRound()
	return m
}

// startRound resets the game for a new round.
func (m *Model) startRound() {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.logger.Info("round started", "round", m.round, "seed", m.config.Seed)

	if r, ok := m.game.(registry.ConfigReporter); ok {
		if err := r.ConfigErr(); err != nil {
			m.logger.Warn("using default config", "err", err)
			m.notice = "Config error, playing with defaults: " + err.Error()
		}
	}
}

// nextSeed returns the seed for the next round.
func (m *Model) nextSeed() int64 {
	m.round++
	if m.fixedSeed {
		return m.baseSeed + m.round
	}
	return time.Now().UnixNano()
}

// Init starts the tick loop.
func (m *Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.saveResult(storage.OutcomeAbandoned)
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	screenH := core.Max(1, msg.Height-helpHeight)
	m.config.ScreenW = msg.Width
	m.config.ScreenH = screenH
	m.screen.Resize(msg.Width, screenH)
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, screenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	m.gameState = m.game.State()

	return m, nil
}

// handleTick processes simulation ticks.
func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = m.nextSeed()
		m.startRound()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save the result on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		outcome := storage.OutcomeLost
		if m.gameState.Won {
			outcome = storage.OutcomeWon
		}
		m.logger.Info("round finished", "outcome", outcome, "score", m.gameState.Score)
		m.saveResult(outcome)
	}

	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveResult records the current round once. Rounds without a scoring
// move are not recorded.
func (m *Model) saveResult(outcome string) {
	if m.scoreSaved || m.gameState.Score == 0 {
		return
	}
	m.scoreSaved = true

	if m.store == nil {
		return
	}

	result := storage.GameResult{
		GameID:  m.game.ID(),
		Score:   m.gameState.Score,
		Outcome: outcome,
	}
	if s, ok := m.game.(registry.Summarizer); ok {
		sum := s.Summary()
		result.MaxTile = sum.MaxTile
		result.Moves = sum.Moves
	}

	best, err := m.store.HighScore(result.GameID)
	if err != nil {
		m.logger.Warn("cannot read high score", "err", err)
	}
	if _, err := m.store.SaveResult(result); err != nil {
		m.logger.Error("cannot save result", "err", err)
		return
	}
	m.logger.Debug("result saved", "outcome", outcome, "score", result.Score)
	if result.Score > best {
		m.logger.Info("new high score", "score", result.Score, "previous", best)
	}
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".threes", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	footer := helpStyle.Render(m.help.View(m.keyMapper.Keys()))
	if m.notice != "" {
		footer = noticeStyle.Render(m.notice)
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// State returns the latest game state seen by the model.
func (m *Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program for the given game.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
