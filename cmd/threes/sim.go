package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-threes/internal/autoplay"
	"github.com/vovakirdan/tui-threes/internal/games/threes"
)

var (
	flagStrategy string
	flagGames    int
	flagWorkers  int
	flagBoard    string
	flagMaxMoves int
	flagOrder    string
	flagVerbose  bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Simulate games with an automatic player",
	Long: `Play many games without a terminal UI and report how a simple
strategy performs. Games run in parallel; game i uses seed+i, so a fixed
--seed gives the same results on every run.

Strategies:
  random  - any move that changes the board
  greedy  - the move with the biggest immediate merge
  corner  - prefer up, then left, right and down (see --order)

Examples:
  threes sim
  threes sim --strategy corner --games 1000 --seed 7
  threes sim --strategy corner --order down,right,left,up
  threes sim --board threes_mini --workers 2 -v`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagStrategy, "strategy", "greedy", "Strategy: "+strings.Join(autoplay.StrategyNames, ", "))
	simCmd.Flags().IntVar(&flagGames, "games", 100, "Number of games to play")
	simCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Parallel workers (0 = number of CPUs)")
	simCmd.Flags().StringVar(&flagBoard, "board", defaultBoard, "Board to play")
	simCmd.Flags().IntVar(&flagMaxMoves, "max-moves", 0, "Move limit per game (0 = none)")
	simCmd.Flags().StringVar(&flagOrder, "order", "", "Direction preference for the corner strategy, e.g. up,left,right,down")
	simCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print every game")
}

func runSim(cmd *cobra.Command, _ []string) error {
	variant, ok := threes.GetVariant(flagBoard)
	if !ok {
		return fmt.Errorf("unknown board %q, run 'threes list' to see available boards", flagBoard)
	}

	var order []threes.Direction
	if flagOrder != "" {
		parsed, err := autoplay.ParseOrder(flagOrder)
		if err != nil {
			return err
		}
		order = parsed
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	settings, err := threes.ResolveSettings(variant)
	if err != nil {
		logger.Warn("using default config", "err", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger.Info("simulation started",
		"board", variant.ID, "strategy", flagStrategy, "games", flagGames, "seed", seed)

	report, err := autoplay.Run(ctx, autoplay.Options{
		Strategy:    flagStrategy,
		Games:       flagGames,
		Workers:     flagWorkers,
		Seed:        seed,
		Width:       settings.Grid.Width,
		Height:      settings.Grid.Height,
		Vocabulary:  settings.Vocabulary.Length,
		Probability: settings.Spawn.HighNumberProbability,
		MaxMoves:    flagMaxMoves,
		CornerOrder: order,
		Logger:      logger,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		logger.Warn("simulation interrupted", "finished", len(report.Games))
	}

	out := cmd.OutOrStdout()
	if flagVerbose {
		fmt.Fprintf(out, "  %-5s  %-20s  %-6s  %-6s  %-5s  %s\n", "Game", "Seed", "Score", "Moves", "Tile", "Result")
		for _, g := range report.Games {
			result := g.Result.String()
			if g.Reason != threes.LossNone {
				result += " (" + g.Reason.String() + ")"
			}
			fmt.Fprintf(out, "  %-5d  %-20d  %-6d  %-6d  %-5d  %s\n",
				g.Index, g.Seed, g.Score, g.Moves, g.MaxTile, result)
		}
		fmt.Fprintln(out)
	}

	target := threes.NewVocabulary(settings.Vocabulary.Length).Max()
	fmt.Fprintf(out, "Board:     %s (%dx%d, target %d)\n", variant.Name, settings.Grid.Width, settings.Grid.Height, target)
	fmt.Fprintf(out, "Strategy:  %s\n", report.Strategy)
	fmt.Fprintf(out, "Games:     %d in %s\n", len(report.Games), report.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(out, "Wins:      %d (%.1f%%)\n", report.Wins, report.WinRate()*100)
	fmt.Fprintf(out, "Best:      %d (tile %d)\n", report.BestScore, report.BestTile)
	fmt.Fprintf(out, "Average:   %.1f points, %.1f moves\n", report.AvgScore, report.AvgMoves)
	return nil
}
