// Package config provides configuration management for the eqc CLI.
//
// Configuration is merged from four sources with the usual precedence:
// flags > environment variables (EQCALC_ prefix) > config file
// (eqcalc.yaml) > built-in defaults.
package config

import (
	"os"
	"path/filepath"
)

// Config holds all CLI configuration options.
type Config struct {
	// Precision is the number of decimal places used when rendering
	// results. Negative means the shortest representation that
	// round-trips.
	Precision int `koanf:"precision"`

	// Format selects the output mode: auto, text or json. Auto picks
	// text on a terminal and json otherwise.
	Format string `koanf:"format"`

	Verbose bool `koanf:"verbose"`

	// Variables are ambient bindings available to every evaluation,
	// e.g. constants defined once in the config file.
	Variables map[string]float64 `koanf:"variables"`

	History HistoryConfig `koanf:"history"`

	// ConfigFile is the path of the file the configuration was loaded
	// from, empty when no file was found.
	ConfigFile string `koanf:"-"`
}

// HistoryConfig controls the persisted evaluation history.
type HistoryConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// Default configuration values.
const (
	DefaultPrecision = -1
	DefaultFormat    = "auto"
)

// DefaultHistoryPath returns the default location of the history
// database, under the user's home directory.
func DefaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".eqcalc", "history.db")
	}
	return filepath.Join(home, ".eqcalc", "history.db")
}

// DefaultReplHistoryPath returns the default location of the REPL line
// history file.
func DefaultReplHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".eqcalc", "repl_history")
	}
	return filepath.Join(home, ".eqcalc", "repl_history")
}
