package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-threes/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in configuration as YAML. Save it to
~/.threes/configs/threes.yaml or ./configs/threes.yaml and edit it to
change the board, the target tile or the spawn odds.

Examples:
  threes config > ~/.threes/configs/threes.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		data := config.GetDefaultYAML("threes")
		if data == nil {
			return fmt.Errorf("no default config embedded")
		}
		_, err := cmd.OutOrStdout().Write(data)
		return err
	},
}
