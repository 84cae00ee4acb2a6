package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/bnema/chatline-entitlements/internal/metrics"
	"github.com/bnema/chatline-entitlements/internal/ports"
	"github.com/rs/zerolog/log"
)

type AccountService struct {
	repo  ports.AccountRepository
	clock ports.Clock
}

func NewAccountService(repo ports.AccountRepository, clock ports.Clock) *AccountService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &AccountService{repo: repo, clock: clock}
}

func (s *AccountService) Create(ctx context.Context, identity string, tier domain.Tier) (domain.Account, error) {
	account, err := domain.NewAccount(identity, tier, s.clock.Now().UTC())
	if err != nil {
		return domain.Account{}, err
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	log.Info().Str("account_id", string(account.ID)).Str("tier", string(account.Tier)).Msg("Account created")
	return account, nil
}

func (s *AccountService) Get(ctx context.Context, id domain.AccountID) (domain.Account, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Account{}, fmt.Errorf("get account by id: %w", err)
	}

	return account, nil
}

func (s *AccountService) GetByIdentity(ctx context.Context, identity string) (domain.Account, error) {
	if domain.NormalizeIdentity(identity) == "" {
		return domain.Account{}, domain.ErrInvalidIdentity
	}

	return s.Get(ctx, domain.DeriveAccountID(identity))
}

// List returns every account, or only those on tier when tier is non-nil.
func (s *AccountService) List(ctx context.Context, tier *domain.Tier) ([]domain.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	if tier == nil {
		return accounts, nil
	}

	filtered := make([]domain.Account, 0, len(accounts))
	for _, account := range accounts {
		if account.Tier == *tier {
			filtered = append(filtered, account)
		}
	}

	return filtered, nil
}

// UpdateTier does not check refs against the payment provider; callers do
// that before switching tiers.
func (s *AccountService) UpdateTier(ctx context.Context, cmd UpdateTierCommand) (domain.Account, error) {
	if !cmd.Tier.Valid() {
		return domain.Account{}, fmt.Errorf("update tier: %w: %q", domain.ErrInvalidTier, cmd.Tier)
	}

	var previous domain.Tier
	account, err := s.repo.Update(ctx, cmd.ID, func(account *domain.Account) error {
		previous = account.Tier
		account.Tier = cmd.Tier
		if cmd.CustomerRef != "" {
			account.CustomerRef = cmd.CustomerRef
		}
		switch {
		case cmd.ClearSubscription:
			account.SubscriptionRef = ""
		case cmd.SubscriptionRef != "":
			account.SubscriptionRef = cmd.SubscriptionRef
		}
		return nil
	})
	if err != nil {
		return domain.Account{}, fmt.Errorf("update account tier: %w", err)
	}

	if previous != account.Tier {
		metrics.TierTransitionsTotal.WithLabelValues(string(previous), string(account.Tier)).Inc()
		log.Info().
			Str("account_id", string(account.ID)).
			Str("from", string(previous)).
			Str("to", string(account.Tier)).
			Msg("Account tier changed")
	}

	return account, nil
}

func (s *AccountService) RecordLogin(ctx context.Context, id domain.AccountID, at time.Time) error {
	_, err := s.repo.Update(ctx, id, func(account *domain.Account) error {
		at := at.UTC()
		account.LastLoginAt = &at
		return nil
	})
	if err != nil {
		return fmt.Errorf("record account login: %w", err)
	}

	return nil
}
