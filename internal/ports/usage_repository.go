package ports

import (
	"context"

	"github.com/bnema/chatline-entitlements/internal/domain"
)

type UsageRepository interface {
	// Increment atomically adds one to the counter and returns the new value.
	Increment(ctx context.Context, id domain.AccountID, day domain.Day) (int64, error)
	Get(ctx context.Context, id domain.AccountID, day domain.Day) (int64, error)
	Reset(ctx context.Context, id domain.AccountID, day domain.Day) error
	// Purge drops every counter for days strictly before the given day.
	Purge(ctx context.Context, before domain.Day) (int64, error)
}
