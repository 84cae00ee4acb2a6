package cmd

import (
	"fmt"

	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/spf13/cobra"
)

func newUsageCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Inspect and adjust daily message counters",
	}

	cmd.AddCommand(
		newUsageRecordCmd(app),
		newUsagePeekCmd(app),
		newUsageResetCmd(app),
		newUsagePurgeCmd(app),
	)

	return cmd
}

func newUsageRecordCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "record <id|identity>",
		Short: "Record one message for today and print the new count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := resolveAccount(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}

			count, err := app.ledger.Record(cmd.Context(), account.ID)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), count)
			return err
		},
	}
}

func newUsagePeekCmd(app *app) *cobra.Command {
	var dayFlag string

	cmd := &cobra.Command{
		Use:   "peek <id|identity>",
		Short: "Print the message count for a day (default today)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDayFlag(dayFlag)
			if err != nil {
				return err
			}

			account, err := resolveAccount(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}

			count, err := app.ledger.Peek(cmd.Context(), account.ID, day)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), count)
			return err
		},
	}
	cmd.Flags().StringVar(&dayFlag, "day", "", "day as YYYY-MM-DD")

	return cmd
}

func newUsageResetCmd(app *app) *cobra.Command {
	var dayFlag string

	cmd := &cobra.Command{
		Use:   "reset <id|identity>",
		Short: "Zero the message count for a day (default today)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDayFlag(dayFlag)
			if err != nil {
				return err
			}

			account, err := resolveAccount(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}

			return app.ledger.Reset(cmd.Context(), account.ID, day)
		},
	}
	cmd.Flags().StringVar(&dayFlag, "day", "", "day as YYYY-MM-DD")

	return cmd
}

func newUsagePurgeCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Drop counters past retention and idle sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			counters, sessions, err := purge(cmd.Context(), app)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "purged %d usage counters, %d sessions\n", counters, sessions)
			return err
		},
	}
}

func parseDayFlag(raw string) (*domain.Day, error) {
	if raw == "" {
		return nil, nil
	}

	day, err := domain.ParseDay(raw)
	if err != nil {
		return nil, err
	}
	return &day, nil
}
