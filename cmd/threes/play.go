package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-threes/internal/core"
	"github.com/vovakirdan/tui-threes/internal/platform/tui"
	"github.com/vovakirdan/tui-threes/internal/registry"
	"github.com/vovakirdan/tui-threes/internal/storage"
)

const defaultBoard = "threes"

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Start playing the given board (default: threes).

Controls:
  Arrows/WASD/hjkl  - Slide tiles
  P                 - Pause
  R                 - Restart (after the game ends)
  Ctrl+S            - Save a text screenshot
  Q/Esc/Ctrl+C      - Quit

Difficulty presets set the target tile and how often a 2 appears:
  easy   - target 55, 40% twos
  normal - target 144, 30% twos
  hard   - target 377, 20% twos
Fixed boards such as threes_mini keep their own target.

Examples:
  threes play
  threes play threes_large
  threes play --difficulty hard
  threes play --config ./my-threes.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := defaultBoard
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown board %q, run 'threes list' to see available boards", gameID)
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	// Continue without storage if the database cannot be opened
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("scores disabled", "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, logger, runtimeConfig()); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// runtimeConfig builds the runtime config from the global flags and the
// current terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
