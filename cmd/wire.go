package cmd

import (
	"fmt"
	"io"
	"time"

	paymentmock "github.com/bnema/chatline-entitlements/internal/adapters/payment/mock"
	statusadapter "github.com/bnema/chatline-entitlements/internal/adapters/render/status"
	"github.com/bnema/chatline-entitlements/internal/adapters/repo/memory"
	sqliterepo "github.com/bnema/chatline-entitlements/internal/adapters/repo/sqlite"
	tomlrepo "github.com/bnema/chatline-entitlements/internal/adapters/repo/toml"
	"github.com/bnema/chatline-entitlements/internal/application"
	"github.com/bnema/chatline-entitlements/internal/config"
	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/bnema/chatline-entitlements/internal/logging"
	"github.com/bnema/chatline-entitlements/internal/ports"
	"github.com/rs/zerolog/log"
)

type app struct {
	cfg *config.Config

	accounts      *application.AccountService
	ledger        *application.UsageLedger
	sessions      *application.SessionService
	entitlements  *application.EntitlementService
	subscriptions *application.SubscriptionService
	queries       *application.Queries

	statusRenderer func([]application.Status, statusadapter.RenderOptions) (string, error)
	plansRenderer  func([]domain.TierDefinition) (string, error)
	statsRenderer  func(application.Stats) (string, error)
	now            func() time.Time

	closer io.Closer
}

type repositories struct {
	accounts ports.AccountRepository
	usage    ports.UsageRepository
	sessions ports.SessionRepository
	closer   io.Closer
}

func wireApp(configFile string, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Out: logOut})

	repos, err := openRepositories(cfg)
	if err != nil {
		return nil, err
	}

	clock := ports.SystemClock{}
	accounts := application.NewAccountService(repos.accounts, clock)
	ledger := application.NewUsageLedger(repos.usage, clock, cfg.Location, cfg.RetentionDays)
	sessions := application.NewSessionService(repos.sessions, accounts, clock, cfg.IdleTimeout)

	log.Debug().Str("backend", cfg.Backend).Str("data_dir", cfg.DataDir).Msg("Wired application")

	return &app{
		cfg:            cfg,
		accounts:       accounts,
		ledger:         ledger,
		sessions:       sessions,
		entitlements:   application.NewEntitlementService(accounts, ledger, sessions),
		subscriptions:  application.NewSubscriptionService(accounts, paymentmock.NewProvider()),
		queries:        application.NewQueries(accounts, ledger, clock),
		statusRenderer: statusadapter.Render,
		plansRenderer:  statusadapter.RenderPlans,
		statsRenderer:  statusadapter.RenderStats,
		now:            clock.Now,
		closer:         repos.closer,
	}, nil
}

func openRepositories(cfg *config.Config) (repositories, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return repositories{
			accounts: memory.NewAccountRepository(),
			usage:    memory.NewUsageRepository(),
			sessions: memory.NewSessionRepository(),
		}, nil
	case config.BackendTOML:
		accounts, err := tomlrepo.NewAccountRepository(cfg.Viper())
		if err != nil {
			return repositories{}, fmt.Errorf("wire account repository: %w", err)
		}
		usage, err := tomlrepo.NewUsageRepository(cfg.Viper())
		if err != nil {
			return repositories{}, fmt.Errorf("wire usage repository: %w", err)
		}
		sessions, err := tomlrepo.NewSessionRepository(cfg.Viper())
		if err != nil {
			return repositories{}, fmt.Errorf("wire session repository: %w", err)
		}
		return repositories{accounts: accounts, usage: usage, sessions: sessions}, nil
	default:
		store, err := sqliterepo.Open(cfg.DataDir)
		if err != nil {
			return repositories{}, fmt.Errorf("wire sqlite store: %w", err)
		}
		return repositories{
			accounts: store.Accounts(),
			usage:    store.Usage(),
			sessions: store.Sessions(),
			closer:   store,
		}, nil
	}
}

func (a *app) Close() error {
	if a == nil || a.closer == nil {
		return nil
	}

	err := a.closer.Close()
	a.closer = nil
	return err
}
