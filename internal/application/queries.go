package application

import (
	"context"
	"time"

	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/bnema/chatline-entitlements/internal/ports"
)

// Status is one account as shown to its owner: tier features plus today's
// usage.
type Status struct {
	Account   domain.Account
	Features  domain.TierDefinition
	Day       domain.Day
	UsedToday int64
	Remaining int64
}

// Stats is the admin overview. Revenue is list price times paying accounts
// per tier, in the catalog currency's minor units.
type Stats struct {
	Day                 domain.Day
	TotalAccounts       int
	ByTier              map[domain.Tier]int
	PayingAccounts      int
	ConversionRate      float64
	MessagesToday       int64
	ActiveAccountsToday int

	AverageMessagesPerActiveAccount float64

	Currency                         string
	MonthlyRecurringRevenueCents     int64
	AnnualRecurringRevenueCents      int64
	AverageRevenuePerPayingUserCents int64
}

// Queries derives read-only views from the account store and ledger. It owns
// no state of its own.
type Queries struct {
	accounts *AccountService
	ledger   *UsageLedger
	clock    ports.Clock
}

func NewQueries(accounts *AccountService, ledger *UsageLedger, clock ports.Clock) *Queries {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Queries{accounts: accounts, ledger: ledger, clock: clock}
}

func (q *Queries) Status(ctx context.Context, id domain.AccountID) (Status, error) {
	account, err := q.accounts.Get(ctx, id)
	if err != nil {
		return Status{}, err
	}

	day := q.ledger.Today()
	used, err := q.ledger.Peek(ctx, id, &day)
	if err != nil {
		return Status{}, err
	}

	return Status{
		Account:   account,
		Features:  account.Features(),
		Day:       day,
		UsedToday: used,
		Remaining: domain.RemainingMessages(account, used),
	}, nil
}

func (q *Queries) Stats(ctx context.Context) (Stats, error) {
	accounts, err := q.accounts.List(ctx, nil)
	if err != nil {
		return Stats{}, err
	}

	day := q.ledger.Today()
	stats := Stats{
		Day:           day,
		TotalAccounts: len(accounts),
		ByTier:        make(map[domain.Tier]int, len(domain.Tiers())),
	}
	for _, tier := range domain.Tiers() {
		stats.ByTier[tier] = 0
	}

	for _, account := range accounts {
		stats.ByTier[account.Features().Tier]++
		if account.IsPaying() {
			stats.PayingAccounts++
		}

		used, err := q.ledger.Peek(ctx, account.ID, &day)
		if err != nil {
			return Stats{}, err
		}
		if used > 0 {
			stats.ActiveAccountsToday++
			stats.MessagesToday += used
		}
	}

	if stats.TotalAccounts > 0 {
		stats.ConversionRate = float64(stats.PayingAccounts) / float64(stats.TotalAccounts) * 100
	}
	if stats.ActiveAccountsToday > 0 {
		stats.AverageMessagesPerActiveAccount = float64(stats.MessagesToday) / float64(stats.ActiveAccountsToday)
	}

	for _, def := range domain.Catalog() {
		if stats.Currency == "" {
			stats.Currency = def.Currency
		}
		stats.MonthlyRecurringRevenueCents += int64(stats.ByTier[def.Tier]) * def.MonthlyPriceCents
	}
	stats.AnnualRecurringRevenueCents = stats.MonthlyRecurringRevenueCents * 12
	if stats.PayingAccounts > 0 {
		stats.AverageRevenuePerPayingUserCents = stats.MonthlyRecurringRevenueCents / int64(stats.PayingAccounts)
	}

	return stats, nil
}

// ChurnRisk lists paying accounts that have not logged in for at least idle.
// Accounts that never logged in are measured from their creation time.
func (q *Queries) ChurnRisk(ctx context.Context, idle time.Duration) ([]domain.Account, error) {
	accounts, err := q.accounts.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	var risky []domain.Account
	for _, account := range accounts {
		if !account.IsPaying() {
			continue
		}
		last := account.CreatedAt
		if account.LastLoginAt != nil {
			last = *account.LastLoginAt
		}
		if now.Sub(last) >= idle {
			risky = append(risky, account)
		}
	}

	return risky, nil
}
