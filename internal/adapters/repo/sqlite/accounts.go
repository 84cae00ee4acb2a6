package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/bnema/chatline-entitlements/internal/ports"
)

const accountColumns = `id, identity, tier, created_at, last_login_at, customer_ref, subscription_ref`

type AccountRepository struct {
	db *sql.DB
}

var _ ports.AccountRepository = (*AccountRepository)(nil)

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create account tx: %w", err)
	}
	defer rollback(tx, "create account")

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM accounts WHERE id = ? OR identity = ?`,
		string(account.ID), account.Identity,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check account exists: %w", err)
	}
	if exists > 0 {
		return domain.ErrDuplicateIdentity
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO accounts (`+accountColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(account.ID), account.Identity, string(account.Tier), toUnix(account.CreatedAt),
		nullableTime(account), account.CustomerRef, account.SubscriptionRef,
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create account tx: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id domain.AccountID) (domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, string(id))
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		return domain.Account{}, fmt.Errorf("load account: %w", err)
	}
	return account, nil
}

func (r *AccountRepository) Update(ctx context.Context, id domain.AccountID, fn func(*domain.Account) error) (domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Account{}, fmt.Errorf("begin update account tx: %w", err)
	}
	defer rollback(tx, "update account")

	row := tx.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, string(id))
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		return domain.Account{}, fmt.Errorf("load account: %w", err)
	}

	if err := fn(&account); err != nil {
		return domain.Account{}, err
	}
	account.ID = id

	_, err = tx.ExecContext(ctx,
		`UPDATE accounts SET tier = ?, last_login_at = ?, customer_ref = ?, subscription_ref = ? WHERE id = ?`,
		string(account.Tier), nullableTime(account), account.CustomerRef, account.SubscriptionRef, string(id),
	)
	if err != nil {
		return domain.Account{}, fmt.Errorf("update account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Account{}, fmt.Errorf("commit update account tx: %w", err)
	}
	return account, nil
}

func (r *AccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}
	return accounts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var (
		id, identity, tier string
		createdAt          int64
		lastLoginAt        sql.NullInt64
		account            domain.Account
	)
	if err := row.Scan(&id, &identity, &tier, &createdAt, &lastLoginAt, &account.CustomerRef, &account.SubscriptionRef); err != nil {
		return domain.Account{}, err
	}

	account.ID = domain.AccountID(id)
	account.Identity = identity
	account.Tier = domain.Tier(tier)
	account.CreatedAt = fromUnix(createdAt)
	if lastLoginAt.Valid {
		at := fromUnix(lastLoginAt.Int64)
		account.LastLoginAt = &at
	}
	return account, nil
}

func nullableTime(account domain.Account) sql.NullInt64 {
	if account.LastLoginAt == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toUnix(*account.LastLoginAt), Valid: true}
}
