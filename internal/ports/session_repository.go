package ports

import (
	"context"
	"time"

	"github.com/bnema/chatline-entitlements/internal/domain"
)

type SessionRepository interface {
	// Insert never overwrites; an existing key yields domain.ErrSessionExists.
	Insert(ctx context.Context, session domain.Session) error
	Get(ctx context.Context, key domain.SessionKey) (domain.Session, error)
	// Touch updates LastActivityAt of a live session only.
	Touch(ctx context.Context, key domain.SessionKey, at time.Time) error
	Delete(ctx context.Context, key domain.SessionKey) error
	PurgeIdle(ctx context.Context, lastActivityBefore time.Time) (int64, error)
}
