package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewPreviewCommand creates the preview command.
func NewPreviewCommand(rootOpts *RootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:           "preview",
		Short:         "Show the latest workout as it would be written, without writing",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := a.syncer.Preview(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}
			if p == nil {
				fmt.Fprintln(out, "Hevy returned no workouts.")
				return nil
			}

			fmt.Fprintf(out, "%s (%s)\n", p.Workout.Title, p.Workout.ID)
			if p.AlreadySynced {
				fmt.Fprintln(out, "already synced")
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, p.Description)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the preview as JSON")

	return cmd
}
