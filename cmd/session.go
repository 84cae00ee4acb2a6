package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Create, validate and end login sessions",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "create <id|identity>",
			Short: "Start a session and print its bearer token",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				account, err := resolveAccount(cmd.Context(), app, args[0])
				if err != nil {
					return err
				}

				token, err := app.sessions.Create(cmd.Context(), account.ID)
				if err != nil {
					return err
				}

				_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
				return err
			},
		},
		&cobra.Command{
			Use:   "validate <token>",
			Short: "Print the account id a session token belongs to",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := app.sessions.Validate(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
				return err
			},
		},
		&cobra.Command{
			Use:   "end <token>",
			Short: "Terminate a session",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.sessions.Terminate(cmd.Context(), args[0])
			},
		},
	)

	return cmd
}
