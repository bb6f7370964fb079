package config

import (
	_ "embed"
)

//go:embed defaults/threes.yaml
var defaultThreesYAML []byte

// DefaultThreesConfig returns the default Threes configuration.
func DefaultThreesConfig() ThreesConfig {
	return ThreesConfig{
		Grid: GridConfig{
			Width:  4,
			Height: 4,
		},
		Vocabulary: VocabularyConfig{
			Length: 12,
		},
		Spawn: SpawnConfig{
			HighNumberProbability: 0.3,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "threes":
		return defaultThreesYAML
	default:
		return nil
	}
}
