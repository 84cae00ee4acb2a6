package cmd

import (
	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/spf13/cobra"
)

func newSubscriptionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscription",
		Short: "Upgrade or cancel paid subscriptions (test-mode payments)",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "upgrade <id|identity> <tier>",
			Short: "Subscribe an account to a paid tier",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				tier, err := domain.ParseTier(args[1])
				if err != nil {
					return err
				}

				account, err := resolveAccount(cmd.Context(), app, args[0])
				if err != nil {
					return err
				}

				upgraded, err := app.subscriptions.Upgrade(cmd.Context(), account.ID, tier)
				if err != nil {
					return err
				}

				return printAccountLine(cmd, upgraded)
			},
		},
		&cobra.Command{
			Use:   "cancel <id|identity>",
			Short: "Cancel the subscription and return the account to free",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				account, err := resolveAccount(cmd.Context(), app, args[0])
				if err != nil {
					return err
				}

				canceled, err := app.subscriptions.Cancel(cmd.Context(), account.ID)
				if err != nil {
					return err
				}

				return printAccountLine(cmd, canceled)
			},
		},
	)

	return cmd
}
