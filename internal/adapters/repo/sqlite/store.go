// Package sqlite is the durable store backend. Accounts, usage counters and
// sessions share one database file opened with a single connection, so every
// transaction is serialized by database/sql.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const (
	dbFileName     = "chatline.db"
	privateDirPerm = 0o700
)

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database file in dir.
func Open(dir string) (*Store, error) {
	dir = filepath.Clean(dir)
	if strings.TrimSpace(dir) == "" || dir == "." {
		return nil, fmt.Errorf("data dir is required")
	}
	if err := os.MkdirAll(dir, privateDirPerm); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	// synchronous(FULL): under WAL, NORMAL may drop commits on power loss.
	// Immediate transactions take the write lock up front, so a read inside
	// Create/Update never has to upgrade against another process's commit.
	dsn := filepath.Join(dir, dbFileName) + "?" + url.Values{
		"_pragma": []string{
			"busy_timeout(30000)",
			"journal_mode(WAL)",
			"synchronous(FULL)",
		},
		"_txlock": []string{"immediate"},
	}.Encode()

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open store db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, errors.Join(err, fmt.Errorf("close store db after schema init failure: %w", closeErr))
		}
		return nil, err
	}

	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		identity TEXT NOT NULL UNIQUE,
		tier TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		last_login_at INTEGER,
		customer_ref TEXT NOT NULL DEFAULT '',
		subscription_ref TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_accounts_tier ON accounts(tier);

	CREATE TABLE IF NOT EXISTS usage_counters (
		account_id TEXT NOT NULL,
		day TEXT NOT NULL,
		count INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (account_id, day)
	);
	CREATE INDEX IF NOT EXISTS idx_usage_day ON usage_counters(day);

	CREATE TABLE IF NOT EXISTS sessions (
		token_hash TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		last_activity_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_last_activity ON sessions(last_activity_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("init store schema: %w", err)
	}
	return nil
}

func (s *Store) Accounts() *AccountRepository {
	return &AccountRepository{db: s.db}
}

func (s *Store) Usage() *UsageRepository {
	return &UsageRepository{db: s.db}
}

func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close store db: %w", err)
	}
	return nil
}

func rollback(tx *sql.Tx, op string) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		log.Warn().Err(err).Str("op", op).Msg("Failed to rollback store transaction")
	}
}

func toUnix(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromUnix(n int64) time.Time {
	return time.Unix(0, n).UTC()
}
