package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sdejongh/tablediff/internal/platform"
	"github.com/sdejongh/tablediff/pkg/config"
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `View or create the tablediff configuration file.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigInitCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Local Tables: %s\n", cfg.Tables.LocalDir)
			fmt.Fprintf(w, "Remote Tables: %s\n", cfg.Tables.RemoteDir)
			fmt.Fprintf(w, "Report Path: %s\n", cfg.Output.Path)
			fmt.Fprintf(w, "Output Format: %s\n", cfg.Output.Format)
			fmt.Fprintf(w, "Pair Cutoff: %g\n", cfg.Diff.PairCutoff)
			fmt.Fprintf(w, "Exclude: %s\n", strings.Join(cfg.Exclude, ", "))
			fmt.Fprintf(w, "Logging Enabled: %v\n", cfg.Logging.Enabled)
			fmt.Fprintf(w, "Log Format: %s\n", cfg.Logging.Format)
			fmt.Fprintf(w, "Log Level: %s\n", cfg.Logging.Level)

			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Long: `Write the default configuration to --config, or to the default path.
A path ending in .toml is written as TOML.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := platform.ExpandHome(globalFlags.ConfigFile)
			if path == "" {
				var err error
				if path, err = config.DefaultConfigPath(); err != nil {
					return err
				}
			}

			cfg := config.Default()
			if err := config.SaveToFile(cfg, path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created at: %s\n", path)
			return nil
		},
	}
}
