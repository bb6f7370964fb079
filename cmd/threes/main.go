// threes is a terminal Threes puzzle: slide numbered tiles, merge 1 with 2
// and neighbouring Fibonacci numbers, and reach the target tile.
//
// Usage:
//
//	threes list               - List available boards
//	threes play [board]       - Play a board (default: threes)
//	threes menu               - Pick boards interactively
//	threes scores <board>     - Show recorded games for a board
//	threes sim                - Run headless strategy simulations
//	threes config             - Print the default config YAML
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.threes/scores.db)
//	--config <path>      - Use a custom config YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard
//	--log-level <level>  - debug, info, warn or error
//
// Flags not given on the command line fall back to THREES_DB, THREES_CONFIG
// and THREES_LOG_LEVEL, which may also be set in a .env file.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-threes/internal/config"
	"github.com/vovakirdan/tui-threes/internal/games/threes"
	"github.com/vovakirdan/tui-threes/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

// Environment variables that supply flag defaults.
var envFlags = map[string]string{
	"db":        "THREES_DB",
	"config":    "THREES_CONFIG",
	"log-level": "THREES_LOG_LEVEL",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "threes",
	Short: "Threes - slide and merge numbered tiles in your terminal",
	Long: `Threes is a sliding tile puzzle. Every move shifts all tiles one way;
a 1 merges with a 2, and neighbouring numbers of 1, 2, 3, 5, 8, 13, ...
merge into their sum. Reach the target tile to win.

Available commands:
  list     - Show all boards
  play     - Play a board directly
  menu     - Interactive board picker
  scores   - View recorded games
  sim      - Simulate automatic players
  config   - Print the default config

Examples:
  threes play
  threes play threes_mini --difficulty easy
  threes menu
  threes scores threes
  threes sim --strategy greedy --games 500`,
	SilenceUsage:      true,
	PersistentPreRunE: applyEnvironment,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	flags.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	flags.StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	flags.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	flags.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	flags.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// applyEnvironment loads .env, fills unset flags from the environment and
// hands the config path and difficulty to the game package.
func applyEnvironment(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	for name, env := range envFlags {
		value, ok := os.LookupEnv(env)
		if !ok || cmd.Flags().Changed(name) {
			continue
		}
		if err := cmd.Flags().Set(name, value); err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	threes.SetConfigPath(flagConfig)
	threes.SetDifficultyPreset(preset)

	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	return nil
}
