// Package config provides centralized configuration for the GitQuest tools.
package config

import (
	"os"
	"path/filepath"
)

// Config holds application-wide configuration.
type Config struct {
	// DataRoot is the base directory for persistent data (generated puzzles).
	DataRoot string
	// TierFile optionally points at a YAML difficulty-tier definition; the
	// built-in tiers are used when empty.
	TierFile string
}

// DefaultConfig returns the default configuration, reading from environment
// variables.
func DefaultConfig() *Config {
	dataRoot := os.Getenv("GITQUEST_DATA_ROOT")
	if dataRoot == "" {
		dataRoot = ".gitquest-data"
	}
	return &Config{
		DataRoot: dataRoot,
		TierFile: os.Getenv("GITQUEST_TIERS"),
	}
}

// PuzzlesDir returns the path for storing generated puzzles.
func (c *Config) PuzzlesDir() string {
	return filepath.Join(c.DataRoot, "puzzles")
}

// Global is the application-wide configuration instance.
var Global = DefaultConfig()
