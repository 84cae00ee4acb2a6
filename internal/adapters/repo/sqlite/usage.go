package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/bnema/chatline-entitlements/internal/ports"
)

type UsageRepository struct {
	db *sql.DB
}

var _ ports.UsageRepository = (*UsageRepository)(nil)

func (r *UsageRepository) Increment(ctx context.Context, id domain.AccountID, day domain.Day) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO usage_counters (account_id, day, count) VALUES (?, ?, 1)
		 ON CONFLICT(account_id, day) DO UPDATE SET count = count + 1
		 RETURNING count`,
		string(id), string(day),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("increment usage counter: %w", err)
	}
	return count, nil
}

func (r *UsageRepository) Get(ctx context.Context, id domain.AccountID, day domain.Day) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT count FROM usage_counters WHERE account_id = ? AND day = ?`,
		string(id), string(day),
	).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("load usage counter: %w", err)
	}
	return count, nil
}

func (r *UsageRepository) Reset(ctx context.Context, id domain.AccountID, day domain.Day) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM usage_counters WHERE account_id = ? AND day = ?`,
		string(id), string(day),
	); err != nil {
		return fmt.Errorf("reset usage counter: %w", err)
	}
	return nil
}

func (r *UsageRepository) Purge(ctx context.Context, before domain.Day) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM usage_counters WHERE day < ?`, string(before))
	if err != nil {
		return 0, fmt.Errorf("purge usage counters: %w", err)
	}
	purged, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get purge rows affected: %w", err)
	}
	return purged, nil
}
