package application

import (
	"context"
	"fmt"

	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/bnema/chatline-entitlements/internal/ports"
	"github.com/rs/zerolog/log"
)

// SubscriptionService moves accounts between tiers through the payment
// provider. The account tier only changes after the provider confirms.
type SubscriptionService struct {
	accounts *AccountService
	payments ports.PaymentProvider
}

func NewSubscriptionService(accounts *AccountService, payments ports.PaymentProvider) *SubscriptionService {
	return &SubscriptionService{accounts: accounts, payments: payments}
}

// Upgrade moves an account onto a paid tier, in either direction between
// paid tiers. A previous subscription is cancelled once the new one is
// active and stored; if that cancel fails the tier change still stands and
// the error is returned alongside the updated account.
func (s *SubscriptionService) Upgrade(ctx context.Context, id domain.AccountID, tier domain.Tier) (domain.Account, error) {
	if !tier.Valid() || tier == domain.TierFree {
		return domain.Account{}, fmt.Errorf("upgrade subscription: %w: %q", domain.ErrInvalidTier, tier)
	}

	account, err := s.accounts.Get(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}

	customerRef := account.CustomerRef
	if customerRef == "" {
		customerRef, err = s.payments.CreateCustomer(ctx, account.Identity)
		if err != nil {
			return domain.Account{}, fmt.Errorf("create payment customer: %w", err)
		}
	}

	sub, err := s.payments.CreateSubscription(ctx, customerRef, tier)
	if err != nil {
		return domain.Account{}, fmt.Errorf("create payment subscription: %w", err)
	}
	if sub.Status != ports.SubscriptionStatusActive {
		return domain.Account{}, fmt.Errorf("%w: subscription %s is %s", domain.ErrSubscriptionFailed, sub.Ref, sub.Status)
	}

	updated, err := s.accounts.UpdateTier(ctx, UpdateTierCommand{
		ID:              id,
		Tier:            tier,
		CustomerRef:     customerRef,
		SubscriptionRef: sub.Ref,
	})
	if err != nil {
		return domain.Account{}, err
	}

	log.Info().Str("account_id", string(id)).Str("tier", string(tier)).Str("subscription_ref", sub.Ref).Msg("Subscription activated")

	if previous := account.SubscriptionRef; previous != "" && previous != sub.Ref {
		if _, err := s.payments.CancelSubscription(ctx, previous); err != nil {
			log.Error().Err(err).Str("account_id", string(id)).Str("subscription_ref", previous).Msg("Failed to cancel replaced subscription")
			return updated, fmt.Errorf("cancel replaced subscription %s: %w", previous, err)
		}
		log.Info().Str("account_id", string(id)).Str("subscription_ref", previous).Msg("Replaced subscription canceled")
	}

	return updated, nil
}

// Cancel ends the current subscription, if any, and downgrades to free.
func (s *SubscriptionService) Cancel(ctx context.Context, id domain.AccountID) (domain.Account, error) {
	account, err := s.accounts.Get(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}

	if account.SubscriptionRef != "" {
		if _, err := s.payments.CancelSubscription(ctx, account.SubscriptionRef); err != nil {
			return domain.Account{}, fmt.Errorf("cancel payment subscription: %w", err)
		}
	}

	updated, err := s.accounts.UpdateTier(ctx, UpdateTierCommand{
		ID:                id,
		Tier:              domain.TierFree,
		ClearSubscription: true,
	})
	if err != nil {
		return domain.Account{}, err
	}

	log.Info().Str("account_id", string(id)).Msg("Subscription canceled")
	return updated, nil
}
