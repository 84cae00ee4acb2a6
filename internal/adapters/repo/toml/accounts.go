package toml

import (
	"context"
	"sort"

	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/bnema/chatline-entitlements/internal/ports"
	"github.com/spf13/viper"
)

const (
	accountsPathKey  = "accounts.path"
	accountsFileName = "accounts.toml"
)

type AccountRepository struct {
	doc *document
}

var _ ports.AccountRepository = (*AccountRepository)(nil)

func NewAccountRepository(cfg *viper.Viper) (*AccountRepository, error) {
	doc, err := openDocument(cfg, accountsPathKey, accountsFileName, "accounts")
	if err != nil {
		return nil, err
	}

	return &AccountRepository{doc: doc}, nil
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	for _, entry := range file.Accounts {
		if entry.ID == string(account.ID) {
			return domain.ErrDuplicateIdentity
		}
	}
	file.Accounts = append(file.Accounts, toAccountSchema(account))

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.doc.write(file)
}

func (r *AccountRepository) GetByID(ctx context.Context, id domain.AccountID) (domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}

	r.doc.mu.RLock()
	defer r.doc.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Account{}, err
	}

	for _, entry := range file.Accounts {
		if entry.ID == string(id) {
			return fromAccountSchema(entry), nil
		}
	}

	return domain.Account{}, domain.ErrAccountNotFound
}

func (r *AccountRepository) Update(ctx context.Context, id domain.AccountID, fn func(*domain.Account) error) (domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}

	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Account{}, err
	}

	for i := range file.Accounts {
		if file.Accounts[i].ID != string(id) {
			continue
		}

		account := fromAccountSchema(file.Accounts[i])
		if err := fn(&account); err != nil {
			return domain.Account{}, err
		}
		account.ID = id
		file.Accounts[i] = toAccountSchema(account)

		if err := ctx.Err(); err != nil {
			return domain.Account{}, err
		}
		if err := r.doc.write(file); err != nil {
			return domain.Account{}, err
		}

		return account, nil
	}

	return domain.Account{}, domain.ErrAccountNotFound
}

func (r *AccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.doc.mu.RLock()
	defer r.doc.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(file.Accounts))
	for _, entry := range file.Accounts {
		accounts = append(accounts, fromAccountSchema(entry))
	}

	sort.SliceStable(accounts, func(i, j int) bool {
		if accounts[i].CreatedAt.Equal(accounts[j].CreatedAt) {
			return accounts[i].ID < accounts[j].ID
		}
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})

	return accounts, nil
}

func (r *AccountRepository) readSchema() (accountsFileSchema, error) {
	var file accountsFileSchema
	if err := r.doc.read(&file); err != nil {
		return accountsFileSchema{}, err
	}
	if err := file.validateVersion(); err != nil {
		return accountsFileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func toAccountSchema(account domain.Account) accountSchema {
	entry := accountSchema{
		ID:              string(account.ID),
		Identity:        account.Identity,
		Tier:            string(account.Tier),
		CreatedAt:       formatTime(account.CreatedAt),
		CustomerRef:     account.CustomerRef,
		SubscriptionRef: account.SubscriptionRef,
	}
	if account.LastLoginAt != nil {
		entry.LastLoginAt = formatTime(*account.LastLoginAt)
	}

	return entry
}

func fromAccountSchema(entry accountSchema) domain.Account {
	account := domain.Account{
		ID:              domain.AccountID(entry.ID),
		Identity:        entry.Identity,
		Tier:            domain.Tier(entry.Tier),
		CreatedAt:       parseTime(entry.CreatedAt),
		CustomerRef:     entry.CustomerRef,
		SubscriptionRef: entry.SubscriptionRef,
	}
	if entry.LastLoginAt != "" {
		at := parseTime(entry.LastLoginAt)
		account.LastLoginAt = &at
	}

	return account
}
