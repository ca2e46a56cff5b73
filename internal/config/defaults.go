package config

import (
	_ "embed"
)

//go:embed defaults/encounter.yaml
var defaultConfigYAML []byte

// Default returns the hardcoded default configuration.
func Default() Config {
	return Config{
		System: "dnd5e",
		Party:  []int{3, 3, 3, 3},
		DBPath: "~/.encounter/ratings.db",
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultConfigYAML
}
