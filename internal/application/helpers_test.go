package application

import (
	"sync"
	"testing"
	"time"

	"github.com/bnema/chatline-entitlements/internal/adapters/repo/memory"
	"github.com/stretchr/testify/mock"
)

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type testEnv struct {
	clock        *fixedClock
	accounts     *AccountService
	ledger       *UsageLedger
	sessions     *SessionService
	entitlements *EntitlementService
	queries      *Queries
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	clock := &fixedClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	accounts := NewAccountService(memory.NewAccountRepository(), clock)
	ledger := NewUsageLedger(memory.NewUsageRepository(), clock, time.UTC, 7)
	sessions := NewSessionService(memory.NewSessionRepository(), accounts, clock, 72*time.Hour)

	return &testEnv{
		clock:        clock,
		accounts:     accounts,
		ledger:       ledger,
		sessions:     sessions,
		entitlements: NewEntitlementService(accounts, ledger, sessions),
		queries:      NewQueries(accounts, ledger, clock),
	}
}

func mockAnyContext() interface{} {
	return mock.Anything
}
