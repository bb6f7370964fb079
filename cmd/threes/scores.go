package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-threes/internal/registry"
	"github.com/vovakirdan/tui-threes/internal/storage"
)

var (
	flagClear bool
	flagAll   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <board>",
	Short: "Show recorded games for a board",
	Long: `Display the top 10 games and overall statistics for the board.

Examples:
  threes scores threes
  threes scores threes --all
  threes scores threes_mini --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagAll, "all", false, "Show every recorded game instead of the top 10")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded games for the board")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown board %q, run 'threes list' to see available boards", gameID)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		logger.Info("scores cleared", "board", gameID)
		return nil
	}

	var scores []storage.ScoreEntry
	if flagAll {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, 10)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", game.Title())

	if len(scores) == 0 {
		fmt.Fprintln(out, "No games recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'threes play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-8s  %-9s  %-6s  %-6s  %s\n", "Rank", "Score", "Result", "Tile", "Moves", "Date")
	fmt.Fprintf(out, "  %-4s  %-8s  %-9s  %-6s  %-6s  %s\n", "----", "-----", "------", "----", "-----", "----")
	for i, e := range scores {
		fmt.Fprintf(out, "  %-4d  %-8d  %-9s  %-6d  %-6d  %s\n",
			i+1, e.Score, e.Outcome, e.MaxTile, e.Moves, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Games: %d  Wins: %d (%.0f%%)  Best: %d  Best tile: %d  Average: %.1f\n",
		stats.GamesCount, stats.Wins, stats.WinRate()*100, stats.HighScore, stats.BestTile, stats.AvgScore)
	return nil
}
