package memory

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/bnema/chatline-entitlements/internal/ports"
)

type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[domain.SessionKey]domain.Session
}

var _ ports.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: map[domain.SessionKey]domain.Session{}}
}

func (r *SessionRepository) Insert(ctx context.Context, session domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session.Key]; ok {
		return domain.ErrSessionExists
	}
	r.sessions[session.Key] = session

	return nil
}

func (r *SessionRepository) Get(ctx context.Context, key domain.SessionKey) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[key]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	return session, nil
}

func (r *SessionRepository) Touch(ctx context.Context, key domain.SessionKey, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[key]
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.LastActivityAt = at
	r.sessions[key] = session

	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, key domain.SessionKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.sessions, key)
	r.mu.Unlock()

	return nil
}

func (r *SessionRepository) PurgeIdle(ctx context.Context, lastActivityBefore time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var purged int64
	for key, session := range r.sessions {
		if session.LastActivityAt.Before(lastActivityBefore) {
			delete(r.sessions, key)
			purged++
		}
	}

	return purged, nil
}
