package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file name looked up in the user and local directories.
const FileName = "clonebeat.yaml"

// Load loads the configuration and validates it.
// Search order: customPath -> ~/.clonebeat/config.yaml -> ./configs/clonebeat.yaml -> embedded default
//
// Files are decoded over DefaultConfig, so a file only needs the keys it changes.
// A custom path that cannot be read or parsed is an error; the other locations are skipped.
func Load(customPath string) (GameConfig, error) {
	cfg, err := load(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func load(customPath string) (GameConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := decode(data)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decode(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := decode(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := decode(defaultYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decode unmarshals data over the hardcoded defaults. A keys or buckets section in
// data replaces the default one entirely.
func decode(data []byte) (GameConfig, error) {
	cfg := DefaultConfig()

	var probe struct {
		Keys    KeyMap         `yaml:"keys"`
		Buckets []BucketConfig `yaml:"buckets"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return cfg, err
	}
	if probe.Keys != nil {
		cfg.Keys = nil
	}
	if probe.Buckets != nil {
		cfg.Buckets = nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".clonebeat", "config.yaml")
}
