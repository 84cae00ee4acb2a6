package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	app := &app{}
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "cle",
		Short:         "Chatline entitlements (cle): accounts, tiers, usage and sessions",
		Long:          "cle manages the account and entitlement engine behind Chatline: tier catalog, accounts, daily message usage, login sessions and feature gating. Run `cle serve` to expose it over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipWiring] == "true" {
				return nil
			}

			wired, err := wireApp(configFile, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			*app = *wired
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return app.Close()
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $HOME/.chatline/config.toml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newAccountCmd(app),
		newSubscriptionCmd(app),
		newSessionCmd(app),
		newUsageCmd(app),
		newCheckCmd(app),
		newPlansCmd(app),
		newStatsCmd(app),
		newServeCmd(app),
	)

	return rootCmd
}

const skipWiring = "cle/skip-wiring"

var errAccountRequired = errors.New("account id or identity is required")
