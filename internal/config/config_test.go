package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultThreesConfigIsValid(t *testing.T) {
	if err := DefaultThreesConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := ParseThrees(GetDefaultYAML("threes"))
	if err != nil {
		t.Fatalf("ParseThrees(embedded) failed: %v", err)
	}
	if cfg != DefaultThreesConfig() {
		t.Errorf("embedded default = %+v, want %+v", cfg, DefaultThreesConfig())
	}
}

func TestParseThreesPartial(t *testing.T) {
	cfg, err := ParseThrees([]byte("grid:\n  width: 5\n  height: 3\n"))
	if err != nil {
		t.Fatalf("ParseThrees() failed: %v", err)
	}

	if cfg.Grid.Width != 5 || cfg.Grid.Height != 3 {
		t.Errorf("grid = %dx%d, want 5x3", cfg.Grid.Width, cfg.Grid.Height)
	}
	// Unset keys keep their defaults
	if cfg.Vocabulary.Length != 12 {
		t.Errorf("vocabulary length = %d, want default 12", cfg.Vocabulary.Length)
	}
	if cfg.Spawn.HighNumberProbability != 0.3 {
		t.Errorf("probability = %v, want default 0.3", cfg.Spawn.HighNumberProbability)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*ThreesConfig)
	}{
		{"zero width", func(c *ThreesConfig) { c.Grid.Width = 0 }},
		{"negative height", func(c *ThreesConfig) { c.Grid.Height = -1 }},
		{"too wide", func(c *ThreesConfig) { c.Grid.Width = MaxGridSize + 1 }},
		{"zero vocabulary", func(c *ThreesConfig) { c.Vocabulary.Length = 0 }},
		{"probability above one", func(c *ThreesConfig) { c.Spawn.HighNumberProbability = 1.5 }},
		{"negative probability", func(c *ThreesConfig) { c.Spawn.HighNumberProbability = -0.1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultThreesConfig()
			tc.modify(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadThreesCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "threes.yaml")
	data := []byte("vocabulary:\n  length: 8\nspawn:\n  high_number_probability: 0.5\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadThrees(path)
	if err != nil {
		t.Fatalf("LoadThrees() failed: %v", err)
	}
	if cfg.Vocabulary.Length != 8 {
		t.Errorf("vocabulary length = %d, want 8", cfg.Vocabulary.Length)
	}
	if cfg.Spawn.HighNumberProbability != 0.5 {
		t.Errorf("probability = %v, want 0.5", cfg.Spawn.HighNumberProbability)
	}
}

func TestLoadThreesMissingFile(t *testing.T) {
	_, err := LoadThrees(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("LoadThrees should fail for a missing custom path")
	}
}

func TestLoadThreesInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("grid:\n  width: 0\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, err := LoadThrees(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadThrees() = %v, want ErrInvalidConfig", err)
	}
}

func TestParsePreset(t *testing.T) {
	for _, name := range []string{"", "easy", "Normal", " hard "} {
		if _, err := ParsePreset(name); err != nil {
			t.Errorf("ParsePreset(%q) failed: %v", name, err)
		}
	}
	if _, err := ParsePreset("fixed"); err == nil {
		t.Error("ParsePreset(fixed) should fail")
	}
}

func TestApplyThreesPreset(t *testing.T) {
	cfg := DefaultThreesConfig()
	ApplyThreesPreset(&cfg, DifficultyEasy)
	if cfg.Vocabulary.Length != 9 {
		t.Errorf("easy vocabulary length = %d, want 9", cfg.Vocabulary.Length)
	}

	ApplyThreesPreset(&cfg, DifficultyHard)
	if cfg.Vocabulary.Length != 14 {
		t.Errorf("hard vocabulary length = %d, want 14", cfg.Vocabulary.Length)
	}
	if cfg.Spawn.HighNumberProbability != 0.2 {
		t.Errorf("hard probability = %v, want 0.2", cfg.Spawn.HighNumberProbability)
	}

	before := cfg
	ApplyThreesPreset(&cfg, "")
	if cfg != before {
		t.Error("empty preset should leave config unchanged")
	}
}
