package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCommand assembles the tablediff command tree
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tablediff",
		Short: "Structural comparison of YAML table directories",
		Long: `tablediff compares a local and a remote directory of YAML table files.
It reports tables present on one side only and, for tables present on
both sides, an order-insensitive structural difference of their contents.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags
	AddGlobalFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(NewCompareCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}
