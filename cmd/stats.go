package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newStatsCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show tier distribution, conversion and today's activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := withProgress(cmd.Context(), cmd.ErrOrStderr(), "Computing stats...", app.queries.Stats)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, stats)
			}

			rendered, err := app.statsRenderer(stats)
			if err != nil {
				return fmt.Errorf("render stats: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON output")

	return cmd
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
