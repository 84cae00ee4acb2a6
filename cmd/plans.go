package cmd

import (
	"fmt"

	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/spf13/cobra"
)

func newPlansCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Show the tier catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog := domain.Catalog()
			if asJSON {
				return writeJSON(cmd, catalog)
			}

			rendered, err := app.plansRenderer(catalog)
			if err != nil {
				return fmt.Errorf("render plans: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON output")

	return cmd
}
