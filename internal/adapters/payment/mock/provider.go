// Package mock is a test-mode payment provider. It never talks to a real
// processor; every subscription is immediately active.
package mock

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/bnema/chatline-entitlements/internal/ports"
	"github.com/google/uuid"
)

const (
	customerPrefix     = "cus_test_"
	subscriptionPrefix = "sub_test_"
)

type subscription struct {
	customerRef string
	tier        domain.Tier
	status      ports.SubscriptionStatus
}

type Provider struct {
	mu            sync.Mutex
	customers     map[string]string
	subscriptions map[string]subscription
}

var _ ports.PaymentProvider = (*Provider)(nil)

func NewProvider() *Provider {
	return &Provider{
		customers:     map[string]string{},
		subscriptions: map[string]subscription{},
	}
}

func (p *Provider) CreateCustomer(ctx context.Context, identity string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(identity) == "" {
		return "", fmt.Errorf("create customer: identity is empty")
	}

	ref := customerPrefix + uuid.NewString()

	p.mu.Lock()
	p.customers[ref] = identity
	p.mu.Unlock()

	return ref, nil
}

func (p *Provider) CreateSubscription(ctx context.Context, customerRef string, tier domain.Tier) (ports.PaymentSubscription, error) {
	if err := ctx.Err(); err != nil {
		return ports.PaymentSubscription{}, err
	}
	if !strings.HasPrefix(customerRef, customerPrefix) {
		return ports.PaymentSubscription{}, fmt.Errorf("create subscription: unknown customer %q", customerRef)
	}
	if !tier.Valid() || tier == domain.TierFree {
		return ports.PaymentSubscription{}, fmt.Errorf("create subscription: %w: %q", domain.ErrInvalidTier, tier)
	}

	ref := subscriptionPrefix + uuid.NewString()

	p.mu.Lock()
	p.subscriptions[ref] = subscription{customerRef: customerRef, tier: tier, status: ports.SubscriptionStatusActive}
	p.mu.Unlock()

	return ports.PaymentSubscription{Ref: ref, Status: ports.SubscriptionStatusActive}, nil
}

// CancelSubscription accepts refs it did not issue so that accounts created
// by an earlier process can still be downgraded.
func (p *Provider) CancelSubscription(ctx context.Context, subscriptionRef string) (ports.SubscriptionStatus, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(subscriptionRef) == "" {
		return "", fmt.Errorf("cancel subscription: ref is empty")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	sub := p.subscriptions[subscriptionRef]
	sub.status = ports.SubscriptionStatusCanceled
	p.subscriptions[subscriptionRef] = sub

	return ports.SubscriptionStatusCanceled, nil
}

// Status reports a subscription's state as this provider last recorded it.
func (p *Provider) Status(subscriptionRef string) (ports.SubscriptionStatus, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	sub, ok := p.subscriptions[subscriptionRef]
	return sub.status, ok
}
