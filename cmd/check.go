package cmd

import (
	"fmt"

	"github.com/bnema/chatline-entitlements/internal/application"
	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/spf13/cobra"
)

func newCheckCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate an entitlement without recording usage",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "personality <id|identity> <personality>",
			Short: "Check access to an AI personality",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				account, err := resolveAccount(cmd.Context(), app, args[0])
				if err != nil {
					return err
				}

				decision, err := app.entitlements.CheckPersonality(cmd.Context(), account.ID, args[1])
				if err != nil {
					return err
				}

				return printDecision(cmd, decision)
			},
		},
		&cobra.Command{
			Use:   "stream <id|identity>",
			Short: "Check access to streaming responses",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				account, err := resolveAccount(cmd.Context(), app, args[0])
				if err != nil {
					return err
				}

				decision, err := app.entitlements.CheckStreaming(cmd.Context(), account.ID)
				if err != nil {
					return err
				}

				return printDecision(cmd, decision)
			},
		},
		&cobra.Command{
			Use:   "quota <id|identity>",
			Short: "Check today's message quota",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				account, err := resolveAccount(cmd.Context(), app, args[0])
				if err != nil {
					return err
				}

				decision, err := app.entitlements.CheckQuota(cmd.Context(), account.ID)
				if err != nil {
					return err
				}

				return printDecision(cmd, decision)
			},
		},
	)

	return cmd
}

func printDecision(cmd *cobra.Command, d application.Decision) error {
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintln(out, d.String()); err != nil {
		return err
	}

	// Only quota decisions carry a quota.
	if d.Quota != 0 {
		quota := fmt.Sprintf("%d", d.Quota)
		if d.Quota == domain.UnlimitedMessages {
			quota = "unlimited"
		}
		if _, err := fmt.Fprintf(out, "used: %d/%s\n", d.Used, quota); err != nil {
			return err
		}
	}

	if !d.Allowed && d.Message != "" {
		_, err := fmt.Fprintln(out, d.Message)
		return err
	}
	return nil
}
