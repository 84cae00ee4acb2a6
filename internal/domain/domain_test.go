package domain

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveAccountIDIsStableAcrossCalls(t *testing.T) {
	identities := []string{"alice@example.com", "bob@example.com", "x", "ünïcödé@example.org"}

	for _, identity := range identities {
		first := DeriveAccountID(identity)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, DeriveAccountID(identity))
		}
		assert.Len(t, string(first), 16)
	}
}

func TestDeriveAccountIDNormalizesIdentity(t *testing.T) {
	assert.Equal(t, DeriveAccountID("alice@example.com"), DeriveAccountID("  Alice@Example.COM "))
	assert.NotEqual(t, DeriveAccountID("alice@example.com"), DeriveAccountID("alice@example.org"))
}

func TestNewAccountValidation(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		identity string
		tier     Tier
		wantErr  error
	}{
		{name: "valid free", identity: "a@example.com", tier: TierFree},
		{name: "valid vip", identity: "b@example.com", tier: TierVIP},
		{name: "empty identity", identity: "   ", tier: TierFree, wantErr: ErrInvalidIdentity},
		{name: "unknown tier", identity: "c@example.com", tier: Tier("gold"), wantErr: ErrInvalidTier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account, err := NewAccount(tt.identity, tt.tier, now)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, DeriveAccountID(tt.identity), account.ID)
			assert.Equal(t, tt.tier, account.Tier)
			assert.Equal(t, now, account.CreatedAt)
			assert.Nil(t, account.LastLoginAt)
		})
	}
}

func TestDayOfUsesCanonicalLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	instant := time.Date(2026, 3, 1, 20, 30, 0, 0, time.UTC)

	assert.Equal(t, Day("2026-03-01"), DayOf(instant, time.UTC))
	assert.Equal(t, Day("2026-03-02"), DayOf(instant, tokyo))
	assert.Equal(t, Day("2026-03-01"), DayOf(instant, nil))
}

func TestDayAddDaysAndParse(t *testing.T) {
	day, err := ParseDay("2026-02-28")
	require.NoError(t, err)

	assert.Equal(t, Day("2026-03-01"), day.AddDays(1))
	assert.Equal(t, Day("2026-02-21"), day.AddDays(-7))

	_, err = ParseDay("28/02/2026")
	require.Error(t, err)
}

func TestSessionTokenEntropyAndKey(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 64; i++ {
		token, err := GenerateSessionToken()
		require.NoError(t, err)
		assert.Len(t, token, 43)
		assert.NotContains(t, token, "+")
		assert.NotContains(t, token, "/")
		_, dup := seen[token]
		require.False(t, dup)
		seen[token] = struct{}{}
	}

	assert.Equal(t, SessionKeyFor("abc"), SessionKeyFor("abc"))
	assert.NotEqual(t, SessionKey("abc"), SessionKeyFor("abc"))
}

func TestSessionIdleSince(t *testing.T) {
	last := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := Session{LastActivityAt: last}

	assert.False(t, s.IdleSince(last.Add(59*time.Minute), time.Hour))
	assert.True(t, s.IdleSince(last.Add(time.Hour), time.Hour))
	assert.False(t, s.IdleSince(last.Add(1000*time.Hour), 0))
}

func TestCompactCountBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		value int64
		want  string
	}{
		{name: "below thousand", value: 999, want: "999"},
		{name: "thousand", value: 1_000, want: "1.0k"},
		{name: "million", value: 1_000_000, want: "1.0M"},
		{name: "negative", value: -1, want: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompactCount(tt.value))
		})
	}
}
