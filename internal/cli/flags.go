package cli

import (
	"github.com/spf13/cobra"
)

// GlobalFlags holds the persistent flags shared by every command
type GlobalFlags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
}

var globalFlags GlobalFlags

// AddGlobalFlags registers the persistent flags on the root command.
// Registering resets the values, so each new command tree starts clean.
func AddGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&globalFlags.ConfigFile, "config", "",
		"config file, .yaml or .toml (default is $HOME/.config/tablediff/config.yaml)")
	flags.BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "show a progress bar on terminals")
	flags.BoolVarP(&globalFlags.Quiet, "quiet", "q", false, "suppress console output except errors")
}
