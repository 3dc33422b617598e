package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sdejongh/tablediff/internal/platform"
	"github.com/sdejongh/tablediff/pkg/config"
	"github.com/sdejongh/tablediff/pkg/models"
)

// validateCompareFlags validates the compare command flags
func validateCompareFlags() error {
	for _, p := range []struct{ flag, value string }{
		{"local", compareFlags.Local},
		{"remote", compareFlags.Remote},
		{"output", compareFlags.Output},
	} {
		if p.value == "" {
			continue
		}
		if err := platform.ValidatePath(p.value); err != nil {
			return fmt.Errorf("invalid --%s: %w", p.flag, err)
		}
	}

	validFormats := map[string]bool{"": true, "human": true, "json": true}
	if !validFormats[compareFlags.Format] {
		return fmt.Errorf("invalid output format: %s (valid: human, json)", compareFlags.Format)
	}

	validDiffFormats := map[string]bool{"human": true, "json": true}
	if !validDiffFormats[compareFlags.DiffFormat] {
		return fmt.Errorf("invalid diff format: %s (valid: human, json)", compareFlags.DiffFormat)
	}

	validLogFormats := map[string]bool{"text": true, "json": true}
	if !validLogFormats[compareFlags.LogFormat] {
		return fmt.Errorf("invalid log format: %s (valid: text, json)", compareFlags.LogFormat)
	}

	return nil
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(platform.ExpandHome(globalFlags.ConfigFile))
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cmd *cobra.Command, cfg *config.Config) {
	// Table directories
	if compareFlags.Local != "" {
		cfg.Tables.LocalDir = compareFlags.Local
	}
	if compareFlags.Remote != "" {
		cfg.Tables.RemoteDir = compareFlags.Remote
	}

	// Report artifact
	if compareFlags.Output != "" {
		cfg.Output.Path = compareFlags.Output
	}

	// Console format
	if compareFlags.Format != "" {
		cfg.Output.Format = compareFlags.Format
	}

	// Exclude patterns
	if len(compareFlags.Exclude) > 0 {
		cfg.Exclude = compareFlags.Exclude
	}

	// Logging: a log file enables logging
	if compareFlags.LogFile != "" {
		cfg.Logging.Enabled = true
		cfg.Logging.File = compareFlags.LogFile
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Logging.Format = compareFlags.LogFormat
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = compareFlags.LogLevel
	}

	// Disable progress in quiet mode
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}

	// Enable progress in verbose mode
	if globalFlags.Verbose {
		cfg.Output.Progress = true
	}
}

// createCompareOperation creates a compare operation from configuration
func createCompareOperation(cfg *config.Config) (*models.CompareOperation, error) {
	operation := &models.CompareOperation{
		ID:              uuid.New().String(),
		LocalDir:        platform.NormalizePath(cfg.Tables.LocalDir),
		RemoteDir:       platform.NormalizePath(cfg.Tables.RemoteDir),
		OutputPath:      platform.NormalizePath(cfg.Output.Path),
		ExcludePatterns: cfg.Exclude,
		PairCutoff:      cfg.Diff.PairCutoff,
		CreatedAt:       time.Now(),
	}

	if err := operation.Validate(); err != nil {
		return nil, err
	}

	return operation, nil
}
