package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ParseThrees parses a YAML document on top of the defaults, so a file
// only needs the keys it changes.
func ParseThrees(data []byte) (ThreesConfig, error) {
	cfg := DefaultThreesConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: yaml unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadThrees loads Threes configuration.
// Search order: customPath -> ~/.threes/configs/threes.yaml -> ./configs/threes.yaml -> embedded default
func LoadThrees(customPath string) (ThreesConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultThreesConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseThrees(data)
		if err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("threes.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseThrees(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/threes.yaml"); err == nil {
		if cfg, err := ParseThrees(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseThrees(defaultThreesYAML)
	if err != nil {
		return DefaultThreesConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".threes", "configs", filename)
}
