package toml

import (
	"fmt"
	"time"
)

const (
	currentAccountsSchemaVersion = 1
	currentUsageSchemaVersion    = 1
	currentSessionsSchemaVersion = 1
)

type accountsFileSchema struct {
	Version  int             `toml:"version"`
	Accounts []accountSchema `toml:"accounts"`
}

func (s *accountsFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentAccountsSchemaVersion
	}
}

func (s accountsFileSchema) validateVersion() error {
	if s.Version > currentAccountsSchemaVersion {
		return fmt.Errorf("unsupported accounts schema version %d (current %d)", s.Version, currentAccountsSchemaVersion)
	}

	return nil
}

type accountSchema struct {
	ID              string `toml:"id"`
	Identity        string `toml:"identity"`
	Tier            string `toml:"tier"`
	CreatedAt       string `toml:"created_at"`
	LastLoginAt     string `toml:"last_login_at,omitempty"`
	CustomerRef     string `toml:"customer_ref,omitempty"`
	SubscriptionRef string `toml:"subscription_ref,omitempty"`
}

type usageFileSchema struct {
	Version  int             `toml:"version"`
	Counters []counterSchema `toml:"counters"`
}

func (s *usageFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentUsageSchemaVersion
	}
}

func (s usageFileSchema) validateVersion() error {
	if s.Version > currentUsageSchemaVersion {
		return fmt.Errorf("unsupported usage schema version %d (current %d)", s.Version, currentUsageSchemaVersion)
	}

	return nil
}

type counterSchema struct {
	AccountID string `toml:"account_id"`
	Day       string `toml:"day"`
	Count     int64  `toml:"count"`
}

type sessionsFileSchema struct {
	Version  int             `toml:"version"`
	Sessions []sessionSchema `toml:"sessions"`
}

func (s *sessionsFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSessionsSchemaVersion
	}
}

func (s sessionsFileSchema) validateVersion() error {
	if s.Version > currentSessionsSchemaVersion {
		return fmt.Errorf("unsupported sessions schema version %d (current %d)", s.Version, currentSessionsSchemaVersion)
	}

	return nil
}

type sessionSchema struct {
	TokenHash      string `toml:"token_hash"`
	AccountID      string `toml:"account_id"`
	CreatedAt      string `toml:"created_at"`
	LastActivityAt string `toml:"last_activity_at"`
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed.UTC()
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339Nano)
}
