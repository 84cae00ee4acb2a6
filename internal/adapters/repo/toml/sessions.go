package toml

import (
	"context"
	"time"

	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/bnema/chatline-entitlements/internal/ports"
	"github.com/spf13/viper"
)

const (
	sessionsPathKey  = "sessions.path"
	sessionsFileName = "sessions.toml"
)

type SessionRepository struct {
	doc *document
}

var _ ports.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(cfg *viper.Viper) (*SessionRepository, error) {
	doc, err := openDocument(cfg, sessionsPathKey, sessionsFileName, "sessions")
	if err != nil {
		return nil, err
	}

	return &SessionRepository{doc: doc}, nil
}

func (r *SessionRepository) Insert(ctx context.Context, session domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	for _, entry := range file.Sessions {
		if entry.TokenHash == string(session.Key) {
			return domain.ErrSessionExists
		}
	}
	file.Sessions = append(file.Sessions, sessionSchema{
		TokenHash:      string(session.Key),
		AccountID:      string(session.AccountID),
		CreatedAt:      formatTime(session.CreatedAt),
		LastActivityAt: formatTime(session.LastActivityAt),
	})

	return r.doc.write(file)
}

func (r *SessionRepository) Get(ctx context.Context, key domain.SessionKey) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}

	r.doc.mu.RLock()
	defer r.doc.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Session{}, err
	}

	for _, entry := range file.Sessions {
		if entry.TokenHash == string(key) {
			return fromSessionSchema(entry), nil
		}
	}

	return domain.Session{}, domain.ErrSessionNotFound
}

func (r *SessionRepository) Touch(ctx context.Context, key domain.SessionKey, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	for i := range file.Sessions {
		if file.Sessions[i].TokenHash == string(key) {
			file.Sessions[i].LastActivityAt = formatTime(at)
			return r.doc.write(file)
		}
	}

	return domain.ErrSessionNotFound
}

func (r *SessionRepository) Delete(ctx context.Context, key domain.SessionKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	for i := range file.Sessions {
		if file.Sessions[i].TokenHash == string(key) {
			file.Sessions = append(file.Sessions[:i], file.Sessions[i+1:]...)
			return r.doc.write(file)
		}
	}

	return nil
}

func (r *SessionRepository) PurgeIdle(ctx context.Context, lastActivityBefore time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return 0, err
	}

	kept := file.Sessions[:0]
	var purged int64
	for _, entry := range file.Sessions {
		if parseTime(entry.LastActivityAt).Before(lastActivityBefore) {
			purged++
			continue
		}
		kept = append(kept, entry)
	}
	if purged == 0 {
		return 0, nil
	}
	file.Sessions = kept

	if err := r.doc.write(file); err != nil {
		return 0, err
	}

	return purged, nil
}

func (r *SessionRepository) readSchema() (sessionsFileSchema, error) {
	var file sessionsFileSchema
	if err := r.doc.read(&file); err != nil {
		return sessionsFileSchema{}, err
	}
	if err := file.validateVersion(); err != nil {
		return sessionsFileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func fromSessionSchema(entry sessionSchema) domain.Session {
	return domain.Session{
		Key:            domain.SessionKey(entry.TokenHash),
		AccountID:      domain.AccountID(entry.AccountID),
		CreatedAt:      parseTime(entry.CreatedAt),
		LastActivityAt: parseTime(entry.LastActivityAt),
	}
}
