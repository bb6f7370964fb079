// Package config provides YAML-based game configuration loading and
// difficulty presets for the threes game.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// MaxGridSize bounds each grid dimension so the board fits a terminal.
const MaxGridSize = 8

// ThreesConfig contains all configuration for the Threes game.
type ThreesConfig struct {
	Grid       GridConfig       `yaml:"grid"`
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
	Spawn      SpawnConfig      `yaml:"spawn"`
}

// GridConfig defines the board dimensions.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// VocabularyConfig defines how many tile values are in play.
// The last value in play is the winning tile.
type VocabularyConfig struct {
	Length int `yaml:"length"`
}

// SpawnConfig defines how new tiles are chosen.
type SpawnConfig struct {
	HighNumberProbability float64 `yaml:"high_number_probability"` // Chance of spawning a 2 instead of a 1
}

// Validate checks that the configuration describes a playable game.
func (c ThreesConfig) Validate() error {
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return fmt.Errorf("%w: grid %dx%d must be positive", ErrInvalidConfig, c.Grid.Width, c.Grid.Height)
	}
	if c.Grid.Width > MaxGridSize || c.Grid.Height > MaxGridSize {
		return fmt.Errorf("%w: grid %dx%d exceeds %dx%d", ErrInvalidConfig, c.Grid.Width, c.Grid.Height, MaxGridSize, MaxGridSize)
	}
	if c.Vocabulary.Length <= 0 {
		return fmt.Errorf("%w: vocabulary length %d must be positive", ErrInvalidConfig, c.Vocabulary.Length)
	}
	p := c.Spawn.HighNumberProbability
	if p < 0 || p > 1 {
		return fmt.Errorf("%w: high_number_probability %v outside [0, 1]", ErrInvalidConfig, p)
	}
	return nil
}
