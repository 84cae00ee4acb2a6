package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/bnema/chatline-entitlements/internal/ports"
)

// AccountRepository keeps accounts in process memory. Updates for one id
// are serialized by a per-account lock; the map lock is held only while
// reading or swapping a record.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[domain.AccountID]domain.Account
	locks    keyedMutex
}

var _ ports.AccountRepository = (*AccountRepository)(nil)

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: map[domain.AccountID]domain.Account{}}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID]; ok {
		return domain.ErrDuplicateIdentity
	}
	r.accounts[account.ID] = cloneAccount(account)

	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id domain.AccountID) (domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return cloneAccount(account), nil
}

func (r *AccountRepository) Update(ctx context.Context, id domain.AccountID, fn func(*domain.Account) error) (domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}

	unlock := r.locks.lock(string(id))
	defer unlock()

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}

	if err := fn(&current); err != nil {
		return domain.Account{}, err
	}
	current.ID = id

	r.mu.Lock()
	r.accounts[id] = cloneAccount(current)
	r.mu.Unlock()

	return current, nil
}

func (r *AccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	accounts := make([]domain.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		accounts = append(accounts, cloneAccount(account))
	}
	r.mu.RUnlock()

	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].CreatedAt.Equal(accounts[j].CreatedAt) {
			return accounts[i].ID < accounts[j].ID
		}
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})

	return accounts, nil
}

func cloneAccount(account domain.Account) domain.Account {
	if account.LastLoginAt != nil {
		at := *account.LastLoginAt
		account.LastLoginAt = &at
	}
	return account
}
