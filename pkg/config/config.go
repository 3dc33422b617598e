// Package config holds the tablediff configuration file model.
package config

import (
	"github.com/sdejongh/tablediff/pkg/diff"
	"github.com/sdejongh/tablediff/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Tables  TablesConfig  `yaml:"tables" toml:"tables"`
	Output  OutputConfig  `yaml:"output" toml:"output"`
	Diff    DiffConfig    `yaml:"diff" toml:"diff"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
	Exclude []string      `yaml:"exclude" toml:"exclude"`
}

// TablesConfig locates the two table directories
type TablesConfig struct {
	LocalDir  string `yaml:"local_dir" toml:"local_dir"`
	RemoteDir string `yaml:"remote_dir" toml:"remote_dir"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Path     string `yaml:"path" toml:"path"`         // Report artifact path
	Format   string `yaml:"format" toml:"format"`     // "human" or "json"
	Progress bool   `yaml:"progress" toml:"progress"` // Show progress bar on terminals
	Quiet    bool   `yaml:"quiet" toml:"quiet"`       // Suppress non-error output
}

// DiffConfig tunes the structural differ
type DiffConfig struct {
	PairCutoff float64 `yaml:"pair_cutoff" toml:"pair_cutoff"`
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Format  string `yaml:"format" toml:"format"` // "json" or "text"
	Level   string `yaml:"level" toml:"level"`   // "debug", "info", "warn", "error"
	File    string `yaml:"file" toml:"file"`     // Log file path (empty = stderr)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Tables: TablesConfig{
			LocalDir:  "./local_tables/",
			RemoteDir: "./remote_tables/",
		},
		Output: OutputConfig{
			Path:     "compare_output.json",
			Format:   "human",
			Progress: false,
			Quiet:    false,
		},
		Diff: DiffConfig{
			PairCutoff: diff.DefaultPairCutoff,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Format:  "text",
			Level:   "info",
			File:    "",
		},
		Exclude: []string{},
	}
}

// DiffOptions returns the differ options described by the configuration
func (c *Config) DiffOptions() diff.Options {
	return diff.Options{PairCutoff: c.Diff.PairCutoff}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Tables.LocalDir == "" {
		return &models.ValidationError{
			Field:   "tables.local_dir",
			Message: "must not be empty",
		}
	}

	if c.Tables.RemoteDir == "" {
		return &models.ValidationError{
			Field:   "tables.remote_dir",
			Message: "must not be empty",
		}
	}

	if c.Output.Path == "" {
		return &models.ValidationError{
			Field:   "output.path",
			Message: "must not be empty",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	if c.Diff.PairCutoff < 0 || c.Diff.PairCutoff > 1 {
		return &models.ValidationError{
			Field:   "diff.pair_cutoff",
			Message: "must be between 0 and 1",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
