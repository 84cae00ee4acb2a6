package ports

import (
	"context"

	"github.com/bnema/chatline-entitlements/internal/domain"
)

type AccountRepository interface {
	// Create fails with domain.ErrDuplicateIdentity when the id is taken.
	Create(ctx context.Context, account domain.Account) error
	GetByID(ctx context.Context, id domain.AccountID) (domain.Account, error)
	// Update applies fn to the stored account and persists the result. Calls
	// for the same id are serialized; an error from fn aborts the write.
	Update(ctx context.Context, id domain.AccountID, fn func(*domain.Account) error) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
}
