package application

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntitlementChecksPerTier(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	free, err := env.accounts.Create(ctx, "free@example.com", domain.TierFree)
	require.NoError(t, err)
	premium, err := env.accounts.Create(ctx, "premium@example.com", domain.TierPremium)
	require.NoError(t, err)

	d, err := env.entitlements.CheckPersonality(ctx, free.ID, domain.PersonalityFlirty)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Empty(t, d.Message)

	d, err = env.entitlements.CheckPersonality(ctx, free.ID, domain.PersonalityMysterious)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, domain.UpgradeReasonPersonality, d.Reason)
	assert.Contains(t, d.Message, "Premium")

	d, err = env.entitlements.CheckStreaming(ctx, free.ID)
	require.NoError(t, err)
	assert.False(t, d.Allowed)

	d, err = env.entitlements.CheckStreaming(ctx, premium.ID)
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	_, err = env.entitlements.CheckStreaming(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestCheckQuotaDoesNotRecord(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	account, err := env.accounts.Create(ctx, "free@example.com", domain.TierFree)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		d, err := env.entitlements.CheckQuota(ctx, account.ID)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
		assert.Equal(t, int64(10), d.Quota)
	}

	used, err := env.ledger.Peek(ctx, account.ID, nil)
	require.NoError(t, err)
	assert.Zero(t, used)
}

func TestAuthorizeMessageEnforcesDailyQuota(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	account, err := env.accounts.Create(ctx, "free@example.com", domain.TierFree)
	require.NoError(t, err)
	token, err := env.sessions.Create(ctx, account.ID)
	require.NoError(t, err)

	for i := 1; i <= 10; i++ {
		auth, err := env.entitlements.AuthorizeMessage(ctx, token, MessageRequest{Personality: domain.PersonalityFlirty})
		require.NoError(t, err)
		require.True(t, auth.Decision.Allowed, "message %d", i)
		assert.Equal(t, int64(i), auth.Decision.Used)
	}

	auth, err := env.entitlements.AuthorizeMessage(ctx, token, MessageRequest{})
	require.NoError(t, err)
	assert.False(t, auth.Decision.Allowed)
	assert.Equal(t, domain.UpgradeReasonQuota, auth.Decision.Reason)
	assert.Contains(t, auth.Decision.Message, "daily limit of 10")

	used, err := env.ledger.Peek(ctx, account.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(10), used, "denied messages are not recorded")

	got, err := env.accounts.Get(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TierFree, got.Tier, "exhaustion never changes tier")

	env.clock.Advance(24 * time.Hour)
	auth, err = env.entitlements.AuthorizeMessage(ctx, token, MessageRequest{})
	require.NoError(t, err)
	assert.True(t, auth.Decision.Allowed)
	assert.Equal(t, int64(1), auth.Decision.Used)
}

func TestAuthorizeMessageFeatureDenialsDoNotRecord(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	account, err := env.accounts.Create(ctx, "free@example.com", domain.TierFree)
	require.NoError(t, err)
	token, err := env.sessions.Create(ctx, account.ID)
	require.NoError(t, err)

	auth, err := env.entitlements.AuthorizeMessage(ctx, token, MessageRequest{Personality: domain.PersonalityRomantic})
	require.NoError(t, err)
	assert.Equal(t, domain.UpgradeReasonPersonality, auth.Decision.Reason)

	auth, err = env.entitlements.AuthorizeMessage(ctx, token, MessageRequest{Stream: true})
	require.NoError(t, err)
	assert.Equal(t, domain.UpgradeReasonStreaming, auth.Decision.Reason)

	used, err := env.ledger.Peek(ctx, account.ID, nil)
	require.NoError(t, err)
	assert.Zero(t, used)
}

func TestAuthorizeMessageRejectsInvalidSession(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	_, err := env.entitlements.AuthorizeMessage(context.Background(), "bogus", MessageRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidSession)
}

func TestAuthorizeMessageConcurrentRequestsNeverExceedQuota(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	account, err := env.accounts.Create(ctx, "premium@example.com", domain.TierPremium)
	require.NoError(t, err)
	token, err := env.sessions.Create(ctx, account.ID)
	require.NoError(t, err)

	const requests = 150
	var allowed atomic.Int64
	var wg sync.WaitGroup
	wg.Add(requests)
	for i := 0; i < requests; i++ {
		go func() {
			defer wg.Done()
			auth, err := env.entitlements.AuthorizeMessage(ctx, token, MessageRequest{})
			assert.NoError(t, err)
			if auth.Decision.Allowed {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(100), allowed.Load())
	used, err := env.ledger.Peek(ctx, account.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(100), used)
}

func TestAuthorizeMessageVIPIsUnlimited(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	account, err := env.accounts.Create(ctx, "vip@example.com", domain.TierVIP)
	require.NoError(t, err)
	token, err := env.sessions.Create(ctx, account.ID)
	require.NoError(t, err)

	for i := 0; i < 250; i++ {
		auth, err := env.entitlements.AuthorizeMessage(ctx, token, MessageRequest{Stream: true, Personality: domain.PersonalityPlayful})
		require.NoError(t, err)
		require.True(t, auth.Decision.Allowed)
		assert.Equal(t, domain.UnlimitedMessages, auth.Decision.Quota)
	}
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "allowed", Decision{Allowed: true}.String())
	assert.Equal(t, "denied (quota)", Decision{Reason: domain.UpgradeReasonQuota}.String())
}
