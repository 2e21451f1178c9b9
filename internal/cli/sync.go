package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/claude/hevy2notion/internal/server"
	"github.com/claude/hevy2notion/internal/syncer"
)

// NewSyncCommand creates the sync command.
func NewSyncCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one sync cycle and print the result",
		Long: `Fetch the latest Hevy workout and write it to Notion unless it was already
synced. Exits non-zero when Hevy cannot be reached or a write fails.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.syncer.Run(cmd.Context())
			if err != nil {
				if errors.Is(err, syncer.ErrFetch) {
					fmt.Fprintln(cmd.OutOrStdout(), server.MsgFetchFailed)
				}
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return res.Err()
		},
	}

	return cmd
}

func printResult(w io.Writer, res *syncer.Result) {
	switch res.Status {
	case syncer.StatusSkipped:
		fmt.Fprintln(w, server.MsgSkipped)
	case syncer.StatusNoWorkouts:
		fmt.Fprintln(w, server.MsgNoWorkouts)
	default:
		if len(res.Errors) == 0 {
			fmt.Fprintln(w, server.MsgSynced)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Sync Summary ===")
	fmt.Fprintf(w, "  Run:      %s\n", res.RunID)
	fmt.Fprintf(w, "  Status:   %s\n", res.Status)
	if res.WorkoutID != "" {
		fmt.Fprintf(w, "  Workout:  %s (%s)\n", res.WorkoutTitle, res.WorkoutID)
	}
	fmt.Fprintf(w, "  Errors:   %d\n", len(res.Errors))
	for _, e := range res.Errors {
		fmt.Fprintf(w, "    - %s\n", e)
	}
	fmt.Fprintln(w)
}
