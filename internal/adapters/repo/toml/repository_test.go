package toml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccountRepo(t *testing.T, path string) *AccountRepository {
	t.Helper()

	config := viper.New()
	config.Set("accounts.path", path)
	repo, err := NewAccountRepository(config)
	require.NoError(t, err)

	return repo
}

func TestAccountRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newAccountRepo(t, filepath.Join(t.TempDir(), "accounts.toml"))
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 9, 0, 0, 123, time.UTC)
	login := created.Add(time.Hour)

	first, err := domain.NewAccount("alice@example.com", domain.TierFree, created)
	require.NoError(t, err)
	second, err := domain.NewAccount("bob@example.com", domain.TierVIP, created.Add(time.Minute))
	require.NoError(t, err)
	second.LastLoginAt = &login
	second.CustomerRef = "cus_test_1"
	second.SubscriptionRef = "sub_test_1"

	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	got, err := repo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, second, got)

	accounts, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Account{first, second}, accounts)
}

func TestAccountRepositoryDuplicateLeavesFileUnchanged(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "accounts.toml")
	repo := newAccountRepo(t, path)
	ctx := context.Background()

	account, err := domain.NewAccount("alice@example.com", domain.TierFree, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, account))

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	account.Tier = domain.TierVIP
	require.ErrorIs(t, repo.Create(ctx, account), domain.ErrDuplicateIdentity)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestAccountRepositoryUpdatePersists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "accounts.toml")
	repo := newAccountRepo(t, path)
	ctx := context.Background()

	account, err := domain.NewAccount("alice@example.com", domain.TierFree, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, account))

	_, err = repo.Update(ctx, account.ID, func(a *domain.Account) error {
		a.Tier = domain.TierPremium
		return nil
	})
	require.NoError(t, err)

	reopened := newAccountRepo(t, path)
	got, err := reopened.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TierPremium, got.Tier)

	boom := errors.New("boom")
	_, err = repo.Update(ctx, account.ID, func(*domain.Account) error { return boom })
	require.ErrorIs(t, err, boom)

	_, err = repo.Update(ctx, "missing", func(*domain.Account) error { return nil })
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAccountRepositoryDefaultPathUnderDataDir(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	repo, err := NewAccountRepository(viper.New())
	require.NoError(t, err)

	account, err := domain.NewAccount("alice@example.com", domain.TierFree, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), account))

	info, err := os.Stat(filepath.Join(homeDir, ".chatline", "accounts.toml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestAccountRepositoryMissingFileBehaviors(t *testing.T) {
	t.Parallel()

	repo := newAccountRepo(t, filepath.Join(t.TempDir(), "missing", "accounts.toml"))

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accounts)

	_, err = repo.GetByID(context.Background(), "acc-1")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAccountRepositoryMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "accounts.toml")
	require.NoError(t, os.WriteFile(path, []byte("accounts = ["), 0o600))

	_, err := newAccountRepo(t, path).List(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode accounts file")
}

func TestAccountRepositoryCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	repo := newAccountRepo(t, filepath.Join(t.TempDir(), "accounts.toml"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Create(ctx, domain.Account{ID: "acc-1"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestAccountRepositoryConcurrentCreatesAcrossInstances(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "accounts.toml")
	repoA := newAccountRepo(t, path)
	repoB := newAccountRepo(t, path)

	const perRepoWrites = 50
	start := make(chan struct{})
	errCh := make(chan error, perRepoWrites*2)
	var wg sync.WaitGroup
	wg.Add(2)

	write := func(repo *AccountRepository, prefix string) {
		defer wg.Done()
		<-start
		for i := 0; i < perRepoWrites; i++ {
			account, err := domain.NewAccount(prefix+strconv.Itoa(i)+"@example.com", domain.TierFree, time.Now().UTC())
			if err != nil {
				errCh <- err
				continue
			}
			errCh <- repo.Create(context.Background(), account)
		}
	}
	go write(repoA, "a")
	go write(repoB, "b")

	close(start)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	accounts, err := repoA.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, accounts, perRepoWrites*2)
}

func TestAccountRepositoryFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "accounts.toml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
		"version = 999",
		"",
		"accounts = []",
		"",
	}, "\n")), 0o600))

	_, err := newAccountRepo(t, path).List(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported accounts schema version")
}

func TestUsageRepositoryConcurrentIncrements(t *testing.T) {
	t.Parallel()

	config := viper.New()
	config.Set("usage.path", filepath.Join(t.TempDir(), "usage.toml"))
	repo, err := NewUsageRepository(config)
	require.NoError(t, err)

	ctx := context.Background()
	const n = 100
	results := make([]int64, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			count, err := repo.Increment(ctx, "acc", "2026-03-01")
			assert.NoError(t, err)
			results[i] = count
		}(i)
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i] < results[j] })
	for i, count := range results {
		assert.Equal(t, int64(i+1), count)
	}

	count, err := repo.Get(ctx, "acc", "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, int64(n), count)
}

func TestUsageRepositoryResetAndPurge(t *testing.T) {
	t.Parallel()

	config := viper.New()
	config.Set("usage.path", filepath.Join(t.TempDir(), "usage.toml"))
	repo, err := NewUsageRepository(config)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = repo.Increment(ctx, "acc", "2026-02-20")
	require.NoError(t, err)
	_, err = repo.Increment(ctx, "acc", "2026-03-01")
	require.NoError(t, err)
	_, err = repo.Increment(ctx, "other", "2026-03-01")
	require.NoError(t, err)

	require.NoError(t, repo.Reset(ctx, "acc", "2026-03-01"))
	count, err := repo.Get(ctx, "acc", "2026-03-01")
	require.NoError(t, err)
	assert.Zero(t, count)
	count, err = repo.Get(ctx, "other", "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	purged, err := repo.Purge(ctx, "2026-02-22")
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
}

func TestSessionRepositoryLifecycle(t *testing.T) {
	t.Parallel()

	config := viper.New()
	config.Set("sessions.path", filepath.Join(t.TempDir(), "sessions.toml"))
	repo, err := NewSessionRepository(config)
	require.NoError(t, err)

	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	session := domain.Session{Key: domain.SessionKeyFor("tok"), AccountID: "acc", CreatedAt: now, LastActivityAt: now}

	require.NoError(t, repo.Insert(ctx, session))
	require.ErrorIs(t, repo.Insert(ctx, session), domain.ErrSessionExists)

	got, err := repo.Get(ctx, session.Key)
	require.NoError(t, err)
	assert.Equal(t, session, got)

	require.NoError(t, repo.Touch(ctx, session.Key, now.Add(time.Hour)))
	purged, err := repo.PurgeIdle(ctx, now.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Zero(t, purged)

	require.NoError(t, repo.Delete(ctx, session.Key))
	require.NoError(t, repo.Delete(ctx, session.Key))
	require.ErrorIs(t, repo.Touch(ctx, session.Key, now), domain.ErrSessionNotFound)
	_, err = repo.Get(ctx, session.Key)
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionFileNeverContainsToken(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sessions.toml")
	config := viper.New()
	config.Set("sessions.path", path)
	repo, err := NewSessionRepository(config)
	require.NoError(t, err)

	token, err := domain.GenerateSessionToken()
	require.NoError(t, err)
	now := time.Now().UTC()
	require.NoError(t, repo.Insert(context.Background(), domain.Session{
		Key: domain.SessionKeyFor(token), AccountID: "acc", CreatedAt: now, LastActivityAt: now,
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), token)
	assert.Contains(t, string(data), "version = 1")
}
