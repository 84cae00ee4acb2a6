package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepositoryCreateRejectsDuplicate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewAccountRepository()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	first, err := domain.NewAccount("alice@example.com", domain.TierFree, now)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, first))

	dup, err := domain.NewAccount("ALICE@example.com", domain.TierVIP, now.Add(time.Hour))
	require.NoError(t, err)
	require.ErrorIs(t, repo.Create(ctx, dup), domain.ErrDuplicateIdentity)

	stored, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, stored)

	accounts, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestAccountRepositoryUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewAccountRepository()
	account, err := domain.NewAccount("bob@example.com", domain.TierFree, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, account))

	updated, err := repo.Update(ctx, account.ID, func(a *domain.Account) error {
		a.Tier = domain.TierPremium
		a.CustomerRef = "cus_1"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TierPremium, updated.Tier)

	stored, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TierPremium, stored.Tier)
	assert.Equal(t, "cus_1", stored.CustomerRef)

	boom := errors.New("boom")
	_, err = repo.Update(ctx, account.ID, func(a *domain.Account) error {
		a.Tier = domain.TierVIP
		return boom
	})
	require.ErrorIs(t, err, boom)

	stored, err = repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TierPremium, stored.Tier)

	_, err = repo.Update(ctx, "missing", func(*domain.Account) error { return nil })
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAccountRepositoryConcurrentUpdatesAreSerialized(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewAccountRepository()
	account, err := domain.NewAccount("carol@example.com", domain.TierFree, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, account))

	const writers = 50
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			_, err := repo.Update(ctx, account.ID, func(a *domain.Account) error {
				a.CustomerRef += "x"
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Len(t, stored.CustomerRef, writers)
}

func TestAccountRepositoryReturnsCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewAccountRepository()
	login := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	account, err := domain.NewAccount("dave@example.com", domain.TierFree, login)
	require.NoError(t, err)
	account.LastLoginAt = &login
	require.NoError(t, repo.Create(ctx, account))

	got, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	*got.LastLoginAt = login.Add(time.Hour)

	again, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, login, *again.LastLoginAt)
}

func TestUsageRepositoryConcurrentIncrements(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewUsageRepository()
	day := domain.Day("2026-03-01")

	const n = 100
	results := make([]int64, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			count, err := repo.Increment(ctx, "acc", day)
			assert.NoError(t, err)
			results[i] = count
		}(i)
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i] < results[j] })
	for i, count := range results {
		assert.Equal(t, int64(i+1), count)
	}

	got, err := repo.Get(ctx, "acc", day)
	require.NoError(t, err)
	assert.Equal(t, int64(n), got)
}

func TestUsageRepositoryIncrementsRaceWithPurge(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewUsageRepository()
	const (
		stale = domain.Day("2026-02-28")
		today = domain.Day("2026-03-01")
		n     = 200
	)

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		staleSeen  = map[int64]int{}
		stopPurges = make(chan struct{})
		purgesDone = make(chan struct{})
	)

	go func() {
		defer close(purgesDone)
		for {
			select {
			case <-stopPurges:
				return
			default:
			}
			_, err := repo.Purge(ctx, today)
			assert.NoError(t, err)
		}
	}()

	wg.Add(2 * n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := repo.Increment(ctx, "acc", today)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			count, err := repo.Increment(ctx, "acc", stale)
			assert.NoError(t, err)
			mu.Lock()
			staleSeen[count]++
			mu.Unlock()
		}()
	}
	wg.Wait()
	close(stopPurges)
	<-purgesDone

	got, err := repo.Get(ctx, "acc", today)
	require.NoError(t, err)
	assert.Equal(t, int64(n), got)

	// Each purged counter restarts at 1, so a count of k is only ever handed
	// out after k-1 was handed out on the same counter.
	total := 0
	for count, seen := range staleSeen {
		total += seen
		if count > 1 {
			assert.GreaterOrEqual(t, staleSeen[count-1], seen, "count %d", count)
		}
	}
	assert.Equal(t, n, total)
}

func TestUsageRepositoryDayIsolationResetAndPurge(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewUsageRepository()

	for i := 0; i < 3; i++ {
		_, err := repo.Increment(ctx, "acc", "2026-03-01")
		require.NoError(t, err)
	}

	next, err := repo.Get(ctx, "acc", "2026-03-02")
	require.NoError(t, err)
	assert.Zero(t, next)

	count, err := repo.Increment(ctx, "acc", "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.Reset(ctx, "acc", "2026-03-02"))
	require.NoError(t, repo.Reset(ctx, "other", "2026-03-02"))
	count, err = repo.Get(ctx, "acc", "2026-03-02")
	require.NoError(t, err)
	assert.Zero(t, count)

	purged, err := repo.Purge(ctx, "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	count, err = repo.Get(ctx, "acc", "2026-03-01")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSessionRepositoryLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewSessionRepository()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	session := domain.Session{Key: domain.SessionKeyFor("tok"), AccountID: "acc", CreatedAt: now, LastActivityAt: now}

	require.NoError(t, repo.Insert(ctx, session))
	require.ErrorIs(t, repo.Insert(ctx, session), domain.ErrSessionExists)

	require.NoError(t, repo.Touch(ctx, session.Key, now.Add(time.Minute)))
	got, err := repo.Get(ctx, session.Key)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Minute), got.LastActivityAt)

	require.NoError(t, repo.Delete(ctx, session.Key))
	require.NoError(t, repo.Delete(ctx, session.Key))
	_, err = repo.Get(ctx, session.Key)
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
	require.ErrorIs(t, repo.Touch(ctx, session.Key, now), domain.ErrSessionNotFound)
}

func TestSessionRepositoryPurgeIdle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewSessionRepository()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Insert(ctx, domain.Session{Key: "old", AccountID: "a", CreatedAt: now, LastActivityAt: now}))
	require.NoError(t, repo.Insert(ctx, domain.Session{Key: "fresh", AccountID: "a", CreatedAt: now, LastActivityAt: now.Add(2 * time.Hour)}))

	purged, err := repo.PurgeIdle(ctx, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = repo.Get(ctx, "fresh")
	require.NoError(t, err)
	_, err = repo.Get(ctx, "old")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestRepositoriesHonourCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAccountRepository().List(ctx)
	require.ErrorIs(t, err, context.Canceled)
	_, err = NewUsageRepository().Increment(ctx, "a", "2026-03-01")
	require.ErrorIs(t, err, context.Canceled)
	_, err = NewSessionRepository().Get(ctx, "k")
	require.ErrorIs(t, err, context.Canceled)
}
