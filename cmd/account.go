package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	statusadapter "github.com/bnema/chatline-entitlements/internal/adapters/render/status"
	"github.com/bnema/chatline-entitlements/internal/application"
	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/spf13/cobra"
)

func newAccountCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}

	cmd.AddCommand(
		newAccountCreateCmd(app),
		newAccountGetCmd(app),
		newAccountListCmd(app),
		newAccountSetTierCmd(app),
		newAccountChurnRiskCmd(app),
	)

	return cmd
}

func newAccountCreateCmd(app *app) *cobra.Command {
	var tierName string

	cmd := &cobra.Command{
		Use:   "create <identity>",
		Short: "Create an account for an email identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tier, err := domain.ParseTier(tierName)
			if err != nil {
				return err
			}

			account, err := app.accounts.Create(cmd.Context(), args[0], tier)
			if err != nil {
				return err
			}

			return printAccountLine(cmd, account)
		},
	}
	cmd.Flags().StringVar(&tierName, "tier", string(domain.TierFree), "initial tier (free, premium, vip)")

	return cmd
}

func newAccountGetCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get <id|identity>",
		Short: "Show an account with its features and today's usage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := resolveAccount(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}

			status, err := app.queries.Status(cmd.Context(), account.ID)
			if err != nil {
				return err
			}

			return writeStatusesOutput(cmd, app, []application.Status{status}, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON output")

	return cmd
}

func newAccountListCmd(app *app) *cobra.Command {
	var (
		tierName string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts, optionally filtered by tier",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var filter *domain.Tier
			if tierName != "" {
				tier, err := domain.ParseTier(tierName)
				if err != nil {
					return err
				}
				filter = &tier
			}

			accounts, err := app.accounts.List(cmd.Context(), filter)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, accounts)
			}

			for _, account := range accounts {
				if err := printAccountLine(cmd, account); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&tierName, "tier", "", "only list accounts on this tier")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON output")

	return cmd
}

func newAccountSetTierCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-tier <id|identity> <tier>",
		Short: "Overwrite an account's tier without touching billing",
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

			updated, err := app.accounts.UpdateTier(cmd.Context(), application.UpdateTierCommand{ID: account.ID, Tier: tier})
			if err != nil {
				return err
			}

			return printAccountLine(cmd, updated)
		},
	}
}

func newAccountChurnRiskCmd(app *app) *cobra.Command {
	var idle time.Duration

	cmd := &cobra.Command{
		Use:   "churn-risk",
		Short: "List paying accounts that have not logged in recently",
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, err := withProgress(cmd.Context(), cmd.ErrOrStderr(), "Scanning accounts...",
				func(ctx context.Context) ([]domain.Account, error) {
					return app.queries.ChurnRisk(ctx, idle)
				})
			if err != nil {
				return err
			}

			for _, account := range accounts {
				if err := printAccountLine(cmd, account); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&idle, "idle", 7*24*time.Hour, "minimum time since last login")

	return cmd
}

// resolveAccount accepts either an account id or the identity it was
// derived from.
func resolveAccount(ctx context.Context, app *app, ref string) (domain.Account, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Account{}, errAccountRequired
	}

	if strings.Contains(ref, "@") {
		return app.accounts.GetByIdentity(ctx, ref)
	}

	return app.accounts.Get(ctx, domain.AccountID(ref))
}

func printAccountLine(cmd *cobra.Command, account domain.Account) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", account.ID, account.Identity, account.Tier)
	return err
}

func writeStatusesOutput(cmd *cobra.Command, app *app, statuses []application.Status, asJSON bool) error {
	if asJSON {
		return writeJSON(cmd, statuses)
	}

	rendered, err := app.statusRenderer(statuses, statusadapter.RenderOptions{
		Now:      app.now(),
		Location: app.cfg.Location,
	})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
