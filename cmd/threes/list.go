package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-threes/internal/config"
	"github.com/vovakirdan/tui-threes/internal/games/threes"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all boards",
	Long:  `Shows every board with its size and target tile.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	if threes.VariantCount() == 0 {
		fmt.Println("No boards available.")
		return
	}

	// Boards without a fixed size follow the loaded config
	settings, err := config.LoadThrees(flagConfig)
	if err != nil {
		settings = config.DefaultThreesConfig()
	}

	maxIDLen := 2 // "ID" header
	for _, v := range threes.Variants {
		maxIDLen = max(maxIDLen, len(v.ID))
	}

	fmt.Println("Available boards:")
	fmt.Println()
	fmt.Printf("  %-*s  %-14s  %s\n", maxIDLen, "ID", "Title", "Board")
	fmt.Printf("  %-*s  %-14s  %s\n", maxIDLen, "--", "-----", "-----")

	for _, v := range threes.Variants {
		desc := v.Describe()
		if desc == "configurable" {
			target := threes.NewVocabulary(settings.Vocabulary.Length).Max()
			desc = fmt.Sprintf("%dx%d, up to %d (from config)", settings.Grid.Width, settings.Grid.Height, target)
		}
		fmt.Printf("  %-*s  %-14s  %s\n", maxIDLen, v.ID, v.Name, desc)
	}

	fmt.Println()
	fmt.Println("Run 'threes play <id>' to play a board.")
}
