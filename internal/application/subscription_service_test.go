package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	paymentmock "github.com/bnema/chatline-entitlements/internal/adapters/payment/mock"
	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/bnema/chatline-entitlements/internal/ports"
	"github.com/bnema/chatline-entitlements/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionUpgradeAndCancel(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	subs := NewSubscriptionService(env.accounts, paymentmock.NewProvider())

	account, err := env.accounts.Create(ctx, "alice@example.com", domain.TierFree)
	require.NoError(t, err)

	upgraded, err := subs.Upgrade(ctx, account.ID, domain.TierPremium)
	require.NoError(t, err)
	assert.Equal(t, domain.TierPremium, upgraded.Tier)
	assert.True(t, strings.HasPrefix(upgraded.CustomerRef, "cus_test_"))
	assert.True(t, strings.HasPrefix(upgraded.SubscriptionRef, "sub_test_"))

	vip, err := subs.Upgrade(ctx, account.ID, domain.TierVIP)
	require.NoError(t, err)
	assert.Equal(t, upgraded.CustomerRef, vip.CustomerRef, "existing customer is reused")
	assert.NotEqual(t, upgraded.SubscriptionRef, vip.SubscriptionRef)

	canceled, err := subs.Cancel(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TierFree, canceled.Tier)
	assert.Empty(t, canceled.SubscriptionRef)
	assert.Equal(t, upgraded.CustomerRef, canceled.CustomerRef)
}

func TestSubscriptionChangeBetweenPaidTiersCancelsReplacedSubscription(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	provider := paymentmock.NewProvider()
	subs := NewSubscriptionService(env.accounts, provider)

	account, err := env.accounts.Create(ctx, "alice@example.com", domain.TierFree)
	require.NoError(t, err)

	premium, err := subs.Upgrade(ctx, account.ID, domain.TierPremium)
	require.NoError(t, err)

	vip, err := subs.Upgrade(ctx, account.ID, domain.TierVIP)
	require.NoError(t, err)
	assert.Equal(t, domain.TierVIP, vip.Tier)

	status, ok := provider.Status(premium.SubscriptionRef)
	require.True(t, ok)
	assert.Equal(t, ports.SubscriptionStatusCanceled, status)
	status, _ = provider.Status(vip.SubscriptionRef)
	assert.Equal(t, ports.SubscriptionStatusActive, status)

	back, err := subs.Upgrade(ctx, account.ID, domain.TierPremium)
	require.NoError(t, err)
	assert.Equal(t, domain.TierPremium, back.Tier)

	status, _ = provider.Status(vip.SubscriptionRef)
	assert.Equal(t, ports.SubscriptionStatusCanceled, status)
	status, _ = provider.Status(back.SubscriptionRef)
	assert.Equal(t, ports.SubscriptionStatusActive, status)
}

func TestSubscriptionChangeReportsFailedCancelOfReplacedSubscription(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	payments := mocks.NewMockPaymentProvider(t)
	subs := NewSubscriptionService(env.accounts, payments)

	account, err := env.accounts.Create(ctx, "alice@example.com", domain.TierFree)
	require.NoError(t, err)
	_, err = env.accounts.UpdateTier(ctx, UpdateTierCommand{ID: account.ID, Tier: domain.TierPremium, CustomerRef: "cus_1", SubscriptionRef: "sub_1"})
	require.NoError(t, err)

	providerErr := errors.New("provider down")
	payments.EXPECT().CreateSubscription(mockAnyContext(), "cus_1", domain.TierVIP).
		Return(ports.PaymentSubscription{Ref: "sub_2", Status: ports.SubscriptionStatusActive}, nil)
	payments.EXPECT().CancelSubscription(mockAnyContext(), "sub_1").Return("", providerErr)

	updated, err := subs.Upgrade(ctx, account.ID, domain.TierVIP)
	require.ErrorIs(t, err, providerErr)
	assert.Contains(t, err.Error(), "sub_1")
	assert.Equal(t, domain.TierVIP, updated.Tier)

	got, err := env.accounts.Get(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "sub_2", got.SubscriptionRef)
}

func TestSubscriptionUpgradeRejectsFreeTier(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	subs := NewSubscriptionService(env.accounts, paymentmock.NewProvider())

	_, err := subs.Upgrade(context.Background(), "acc", domain.TierFree)
	require.ErrorIs(t, err, domain.ErrInvalidTier)
}

func TestSubscriptionUpgradeKeepsTierWhenNotActive(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	payments := mocks.NewMockPaymentProvider(t)
	subs := NewSubscriptionService(env.accounts, payments)

	account, err := env.accounts.Create(ctx, "alice@example.com", domain.TierFree)
	require.NoError(t, err)

	payments.EXPECT().CreateCustomer(mockAnyContext(), "alice@example.com").Return("cus_1", nil)
	payments.EXPECT().CreateSubscription(mockAnyContext(), "cus_1", domain.TierVIP).
		Return(ports.PaymentSubscription{Ref: "sub_1", Status: ports.SubscriptionStatusIncomplete}, nil)

	_, err = subs.Upgrade(ctx, account.ID, domain.TierVIP)
	require.ErrorIs(t, err, domain.ErrSubscriptionFailed)

	got, err := env.accounts.Get(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TierFree, got.Tier)
	assert.Empty(t, got.CustomerRef)
}

func TestSubscriptionCancelPropagatesProviderFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	payments := mocks.NewMockPaymentProvider(t)
	subs := NewSubscriptionService(env.accounts, payments)

	account, err := env.accounts.Create(ctx, "alice@example.com", domain.TierFree)
	require.NoError(t, err)
	_, err = env.accounts.UpdateTier(ctx, UpdateTierCommand{ID: account.ID, Tier: domain.TierPremium, CustomerRef: "cus_1", SubscriptionRef: "sub_1"})
	require.NoError(t, err)

	providerErr := errors.New("provider down")
	payments.EXPECT().CancelSubscription(mockAnyContext(), "sub_1").Return("", providerErr)

	_, err = subs.Cancel(ctx, account.ID)
	require.ErrorIs(t, err, providerErr)

	got, err := env.accounts.Get(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TierPremium, got.Tier)
}
