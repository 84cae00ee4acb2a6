package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/bnema/chatline-entitlements/internal/metrics"
	"github.com/bnema/chatline-entitlements/internal/ports"
	"github.com/rs/zerolog/log"
)

const maxTokenAttempts = 5

type SessionService struct {
	sessions    ports.SessionRepository
	accounts    *AccountService
	clock       ports.Clock
	idleTimeout time.Duration
	newToken    func() (string, error)
}

// NewSessionService builds the session registry. A non-positive idleTimeout
// disables idle expiry.
func NewSessionService(sessions ports.SessionRepository, accounts *AccountService, clock ports.Clock, idleTimeout time.Duration) *SessionService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &SessionService{
		sessions:    sessions,
		accounts:    accounts,
		clock:       clock,
		idleTimeout: idleTimeout,
		newToken:    domain.GenerateSessionToken,
	}
}

// Create binds a fresh token to an existing account and stamps the
// account's last login.
func (s *SessionService) Create(ctx context.Context, id domain.AccountID) (string, error) {
	if _, err := s.accounts.Get(ctx, id); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	now := s.clock.Now().UTC()

	var token string
	for attempt := 1; ; attempt++ {
		candidate, err := s.newToken()
		if err != nil {
			return "", fmt.Errorf("generate session token: %w", err)
		}

		err = s.sessions.Insert(ctx, domain.Session{
			Key:            domain.SessionKeyFor(candidate),
			AccountID:      id,
			CreatedAt:      now,
			LastActivityAt: now,
		})
		if err == nil {
			token = candidate
			break
		}
		if !errors.Is(err, domain.ErrSessionExists) {
			return "", fmt.Errorf("insert session: %w", err)
		}
		if attempt >= maxTokenAttempts {
			return "", fmt.Errorf("create session after %d attempts: %w", attempt, err)
		}
		log.Warn().Int("attempt", attempt).Msg("Session token collision, regenerating")
	}

	if err := s.accounts.RecordLogin(ctx, id, now); err != nil {
		// The caller never sees the token, so the row must not outlive this call.
		key := domain.SessionKeyFor(token)
		if delErr := s.sessions.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			log.Error().Err(delErr).Str("account_id", string(id)).Msg("Failed to remove session after login stamp failed")
			return "", errors.Join(err, fmt.Errorf("remove orphaned session: %w", delErr))
		}
		return "", err
	}

	metrics.SessionsTotal.WithLabelValues("created").Inc()
	log.Info().Str("account_id", string(id)).Msg("Session created")
	return token, nil
}

// Validate resolves a token to its account. Unknown, terminated and idle
// tokens all yield domain.ErrInvalidSession; store failures are returned as-is.
func (s *SessionService) Validate(ctx context.Context, token string) (domain.AccountID, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		metrics.SessionsTotal.WithLabelValues("rejected").Inc()
		return "", domain.ErrInvalidSession
	}

	key := domain.SessionKeyFor(token)
	session, err := s.sessions.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			metrics.SessionsTotal.WithLabelValues("rejected").Inc()
			return "", domain.ErrInvalidSession
		}
		return "", fmt.Errorf("load session: %w", err)
	}

	now := s.clock.Now().UTC()
	if session.IdleSince(now, s.idleTimeout) {
		if err := s.sessions.Delete(ctx, key); err != nil {
			return "", fmt.Errorf("delete expired session: %w", err)
		}
		metrics.SessionsTotal.WithLabelValues("expired").Inc()
		return "", domain.ErrInvalidSession
	}

	if err := s.sessions.Touch(ctx, key, now); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			metrics.SessionsTotal.WithLabelValues("rejected").Inc()
			return "", domain.ErrInvalidSession
		}
		return "", fmt.Errorf("touch session: %w", err)
	}

	metrics.SessionsTotal.WithLabelValues("validated").Inc()
	return session.AccountID, nil
}

// Terminate is idempotent; unknown tokens are not an error.
func (s *SessionService) Terminate(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}

	if err := s.sessions.Delete(ctx, domain.SessionKeyFor(token)); err != nil {
		return fmt.Errorf("terminate session: %w", err)
	}

	metrics.SessionsTotal.WithLabelValues("terminated").Inc()
	return nil
}

// PurgeIdle removes sessions past the idle timeout. It is a no-op when idle
// expiry is disabled.
func (s *SessionService) PurgeIdle(ctx context.Context) (int64, error) {
	if s.idleTimeout <= 0 {
		return 0, nil
	}

	purged, err := s.sessions.PurgeIdle(ctx, s.clock.Now().UTC().Add(-s.idleTimeout))
	if err != nil {
		return 0, fmt.Errorf("purge idle sessions: %w", err)
	}

	metrics.SessionsTotal.WithLabelValues("purged").Add(float64(purged))
	return purged, nil
}
