package ports

import (
	"context"

	"github.com/bnema/chatline-entitlements/internal/domain"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive     SubscriptionStatus = "active"
	SubscriptionStatusIncomplete SubscriptionStatus = "incomplete"
	SubscriptionStatusCanceled   SubscriptionStatus = "canceled"
)

type PaymentSubscription struct {
	Ref    string
	Status SubscriptionStatus
}

// PaymentProvider is the external billing collaborator. The engine only
// persists the refs it returns.
type PaymentProvider interface {
	CreateCustomer(ctx context.Context, identity string) (string, error)
	CreateSubscription(ctx context.Context, customerRef string, tier domain.Tier) (PaymentSubscription, error)
	CancelSubscription(ctx context.Context, subscriptionRef string) (SubscriptionStatus, error)
}
