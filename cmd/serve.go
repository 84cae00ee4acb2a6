package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/bnema/chatline-entitlements/internal/adapters/httpapi"
	"github.com/bnema/chatline-entitlements/internal/version"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(app *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and run periodic purges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = app.cfg.Server.Addr
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", addr, err)
			}

			return serve(ctx, app, ln)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr)")

	return cmd
}

// serve runs the API on ln until ctx is canceled, then drains in-flight
// requests.
func serve(ctx context.Context, app *app, ln net.Listener) error {
	srv := httpapi.NewServer(ln.Addr().String(), httpapi.NewHandler(httpapi.Deps{
		Accounts:      app.accounts,
		Sessions:      app.sessions,
		Entitlements:  app.entitlements,
		Subscriptions: app.subscriptions,
		Queries:       app.queries,
		AdminKey:      app.cfg.Server.AdminKey,
	}))

	g, ctx := errgroup.WithContext(ctx)

	log.Info().
		Str("version", version.Version).
		Str("addr", ln.Addr().String()).
		Str("backend", app.cfg.Backend).
		Str("timezone", app.cfg.Location.String()).
		Msg("Starting chatline entitlements API")

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down API")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		runPurgeLoop(ctx, app, app.cfg.Server.PurgeInterval)
		return nil
	})

	return g.Wait()
}

func runPurgeLoop(ctx context.Context, app *app, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			counters, sessions, err := purge(ctx, app)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Warn().Err(err).Msg("Purge failed")
				continue
			}
			log.Debug().Int64("usage_counters", counters).Int64("sessions", sessions).Msg("Purge complete")
		}
	}
}

func purge(ctx context.Context, app *app) (int64, int64, error) {
	counters, err := app.ledger.PurgeExpired(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("purge usage counters: %w", err)
	}

	sessions, err := app.sessions.PurgeIdle(ctx)
	if err != nil {
		return counters, 0, fmt.Errorf("purge idle sessions: %w", err)
	}

	return counters, sessions, nil
}
