package domain

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"
)

// sessionTokenBytes gives 256 bits of entropy per token.
const sessionTokenBytes = 32

// SessionKey is the hex SHA-256 of a session token. Stores only ever see the
// key, never the bearer token itself.
type SessionKey string

type Session struct {
	Key            SessionKey
	AccountID      AccountID
	CreatedAt      time.Time
	LastActivityAt time.Time
}

func GenerateSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random token bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func SessionKeyFor(token string) SessionKey {
	sum := sha256.Sum256([]byte(token))
	return SessionKey(hex.EncodeToString(sum[:]))
}

// IdleSince reports whether the session has seen no activity for at least
// timeout. A non-positive timeout disables idle expiry.
func (s Session) IdleSince(now time.Time, timeout time.Duration) bool {
	if timeout <= 0 {
		return false
	}

	return now.Sub(s.LastActivityAt) >= timeout
}
