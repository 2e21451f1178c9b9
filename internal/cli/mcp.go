package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/claude/hevy2notion/internal/mcp"
)

// NewMCPCommand creates the mcp command.
func NewMCPCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the sync tools over MCP on stdio",
		Long: `Run a Model Context Protocol server on stdin/stdout exposing the
sync_latest_workout, preview_latest_workout, get_sync_state and
clear_sync_state tools. Logs go to stderr.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol.
			a, err := newApp(cmd.Context(), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			a.log.Info("mcp server starting", "version", rootOpts.Version)
			return server.ServeStdio(mcp.New(a.syncer, rootOpts.Version, a.log))
		},
	}

	return cmd
}
