package application

import "github.com/bnema/chatline-entitlements/internal/domain"

// UpdateTierCommand overwrites an account's tier. Refs are only written when
// non-empty; ClearSubscription drops the stored subscription ref instead.
type UpdateTierCommand struct {
	ID                domain.AccountID
	Tier              domain.Tier
	CustomerRef       string
	SubscriptionRef   string
	ClearSubscription bool
}

// MessageRequest describes one inbound chat message to authorize.
type MessageRequest struct {
	Personality string
	Stream      bool
}
