package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/bnema/chatline-entitlements/internal/ports"
)

type SessionRepository struct {
	db *sql.DB
}

var _ ports.SessionRepository = (*SessionRepository)(nil)

func (r *SessionRepository) Insert(ctx context.Context, session domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (token_hash, account_id, created_at, last_activity_at)
		 VALUES (?, ?, ?, ?) ON CONFLICT(token_hash) DO NOTHING`,
		string(session.Key), string(session.AccountID), toUnix(session.CreatedAt), toUnix(session.LastActivityAt),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get insert session rows affected: %w", err)
	}
	if inserted == 0 {
		return domain.ErrSessionExists
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, key domain.SessionKey) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}

	var (
		accountID          string
		createdAt, lastAct int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT account_id, created_at, last_activity_at FROM sessions WHERE token_hash = ?`,
		string(key),
	).Scan(&accountID, &createdAt, &lastAct)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Session{}, domain.ErrSessionNotFound
		}
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}

	return domain.Session{
		Key:            key,
		AccountID:      domain.AccountID(accountID),
		CreatedAt:      fromUnix(createdAt),
		LastActivityAt: fromUnix(lastAct),
	}, nil
}

func (r *SessionRepository) Touch(ctx context.Context, key domain.SessionKey, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET last_activity_at = ? WHERE token_hash = ?`,
		toUnix(at), string(key),
	)
	if err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get touch session rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, key domain.SessionKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token_hash = ?`, string(key)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) PurgeIdle(ctx context.Context, lastActivityBefore time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE last_activity_at < ?`, toUnix(lastActivityBefore))
	if err != nil {
		return 0, fmt.Errorf("purge idle sessions: %w", err)
	}
	purged, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get purge sessions rows affected: %w", err)
	}
	return purged, nil
}
