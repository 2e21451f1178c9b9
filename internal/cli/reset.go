package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/claude/hevy2notion/internal/server"
)

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "reset",
		Short:         "Forget the last synced workout id",
		Long:          "Clear the sync state so the next sync writes the latest workout again.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.syncer.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), server.MsgStateCleared)
			return nil
		},
	}

	return cmd
}
