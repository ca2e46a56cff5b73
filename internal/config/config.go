// Package config provides YAML-based configuration loading for the
// encounter tracker.
package config

import (
	"github.com/charmbracelet/log"
)

// Config contains all user-tunable settings.
type Config struct {
	System   string    `yaml:"system"`   // Registry ID of the active rule system
	Party    []int     `yaml:"party"`    // Default party levels
	Bestiary string    `yaml:"bestiary"` // Bestiary file or directory; empty uses the embedded one
	DBPath   string    `yaml:"db"`       // Rating history database
	Log      LogConfig `yaml:"log"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Overrides holds values set from the command line. Zero values are ignored.
type Overrides struct {
	System   string
	Party    []int
	Bestiary string
	DBPath   string
	Verbose  bool
}

// Apply overlays command-line overrides onto the config.
func (c *Config) Apply(o Overrides) {
	if o.System != "" {
		c.System = o.System
	}
	if len(o.Party) > 0 {
		c.Party = append([]int(nil), o.Party...)
	}
	if o.Bestiary != "" {
		c.Bestiary = o.Bestiary
	}
	if o.DBPath != "" {
		c.DBPath = o.DBPath
	}
	if o.Verbose {
		c.Log.Level = "debug"
	}
}

// LogLevel parses the configured log level, defaulting to info.
func (c Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
