// Package cli implements the hevy2notion command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	EnvFile    string
	Verbose    bool
	Version    string
}

// NewRootCommand creates the root command for the hevy2notion CLI.
func NewRootCommand(version string) *cobra.Command {
	opts := &RootOptions{Version: version}

	cmd := &cobra.Command{
		Use:   "hevy2notion",
		Short: "Mirror the latest Hevy workout into Notion",
		Long: `hevy2notion fetches the most recent workout from Hevy and writes it to a
Notion page: the title goes into a rich text property and the exercises and
sets are appended to the page body. The id of the last written workout is
remembered so the same workout is never written twice.

Settings come from an optional YAML file (--config) and the environment,
including a .env file (--env-file).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to YAML config file (environment only when empty)")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file loaded before the config, ignored when missing")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	// Add subcommands
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewSyncCommand(opts))
	cmd.AddCommand(NewPreviewCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewMCPCommand(opts))

	return cmd
}
