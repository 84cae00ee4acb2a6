package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/bnema/chatline-entitlements/internal/metrics"
	"github.com/bnema/chatline-entitlements/internal/ports"
	"github.com/rs/zerolog/log"
)

const defaultRetentionDays = 7

// UsageLedger counts messages per account and calendar day. Days are cut in
// one configured location for every account.
type UsageLedger struct {
	repo          ports.UsageRepository
	clock         ports.Clock
	loc           *time.Location
	retentionDays int
}

func NewUsageLedger(repo ports.UsageRepository, clock ports.Clock, loc *time.Location, retentionDays int) *UsageLedger {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	if retentionDays < 1 {
		retentionDays = defaultRetentionDays
	}

	return &UsageLedger{repo: repo, clock: clock, loc: loc, retentionDays: retentionDays}
}

// Today reads the clock once. Callers that both peek and record within one
// request must reuse the returned day.
func (l *UsageLedger) Today() domain.Day {
	return domain.DayOf(l.clock.Now(), l.loc)
}

func (l *UsageLedger) Record(ctx context.Context, id domain.AccountID) (int64, error) {
	return l.RecordOn(ctx, id, l.Today())
}

func (l *UsageLedger) RecordOn(ctx context.Context, id domain.AccountID, day domain.Day) (int64, error) {
	count, err := l.repo.Increment(ctx, id, day)
	if err != nil {
		return 0, fmt.Errorf("record usage: %w", err)
	}

	metrics.UsageRecordsTotal.Inc()
	return count, nil
}

// Peek returns the counter for day, or for today when day is nil.
func (l *UsageLedger) Peek(ctx context.Context, id domain.AccountID, day *domain.Day) (int64, error) {
	count, err := l.repo.Get(ctx, id, l.dayOrToday(day))
	if err != nil {
		return 0, fmt.Errorf("peek usage: %w", err)
	}

	return count, nil
}

func (l *UsageLedger) Reset(ctx context.Context, id domain.AccountID, day *domain.Day) error {
	target := l.dayOrToday(day)
	if err := l.repo.Reset(ctx, id, target); err != nil {
		return fmt.Errorf("reset usage: %w", err)
	}

	log.Info().Str("account_id", string(id)).Str("day", target.String()).Msg("Usage counter reset")
	return nil
}

// PurgeExpired drops counters older than the retention window. Today and
// the previous retentionDays days are kept.
func (l *UsageLedger) PurgeExpired(ctx context.Context) (int64, error) {
	before := l.Today().AddDays(-l.retentionDays)
	purged, err := l.repo.Purge(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("purge usage: %w", err)
	}

	metrics.UsagePurgedTotal.Add(float64(purged))
	return purged, nil
}

func (l *UsageLedger) dayOrToday(day *domain.Day) domain.Day {
	if day != nil {
		return *day
	}
	return l.Today()
}
