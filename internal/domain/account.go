package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// accountIDLength is the number of hex characters kept from the identity hash.
const accountIDLength = 16

type AccountID string

type Account struct {
	ID              AccountID
	Identity        string
	Tier            Tier
	CreatedAt       time.Time
	LastLoginAt     *time.Time
	CustomerRef     string
	SubscriptionRef string
}

// NormalizeIdentity trims and lower-cases an email-like identity so that
// "Alice@Example.com " and "alice@example.com" resolve to the same account.
func NormalizeIdentity(identity string) string {
	return strings.ToLower(strings.TrimSpace(identity))
}

// DeriveAccountID maps an identity to its stable account id.
func DeriveAccountID(identity string) AccountID {
	sum := sha256.Sum256([]byte(NormalizeIdentity(identity)))
	return AccountID(hex.EncodeToString(sum[:])[:accountIDLength])
}

func NewAccount(identity string, tier Tier, createdAt time.Time) (Account, error) {
	normalized := NormalizeIdentity(identity)
	if normalized == "" {
		return Account{}, ErrInvalidIdentity
	}
	if !tier.Valid() {
		return Account{}, ErrInvalidTier
	}

	return Account{
		ID:        DeriveAccountID(normalized),
		Identity:  normalized,
		Tier:      tier,
		CreatedAt: createdAt,
	}, nil
}

func (a Account) Features() TierDefinition {
	return ResolveTier(a.Tier)
}

func (a Account) IsPaying() bool {
	return a.Tier != TierFree
}
