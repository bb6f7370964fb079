package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset parses a preset name. An empty name means no preset.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name))); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", name)
	}
}

// VocabularyLengthForPreset returns the vocabulary length for a preset,
// which sets the winning tile: 55 on easy, 144 on normal, 377 on hard.
func VocabularyLengthForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 9
	case DifficultyHard:
		return 14
	default:
		return 12
	}
}

// ApplyThreesPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config unchanged.
func ApplyThreesPreset(cfg *ThreesConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}

	cfg.Vocabulary.Length = VocabularyLengthForPreset(preset)

	// More 2s means fewer dead 1s on a crowded board
	switch preset {
	case DifficultyEasy:
		cfg.Spawn.HighNumberProbability = 0.4
	case DifficultyNormal:
		cfg.Spawn.HighNumberProbability = 0.3
	case DifficultyHard:
		cfg.Spawn.HighNumberProbability = 0.2
	}
}
