package memory

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/bnema/chatline-entitlements/internal/ports"
)

type usageKey struct {
	account domain.AccountID
	day     domain.Day
}

// UsageRepository stores one atomic counter per (account, day). Increments
// hold the read lock while they add, so Purge (write lock) can never detach a
// counter that an increment is still writing to.
type UsageRepository struct {
	mu       sync.RWMutex
	counters map[usageKey]*atomic.Int64
}

var _ ports.UsageRepository = (*UsageRepository)(nil)

func NewUsageRepository() *UsageRepository {
	return &UsageRepository{counters: map[usageKey]*atomic.Int64{}}
}

func (r *UsageRepository) Increment(ctx context.Context, id domain.AccountID, day domain.Day) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	key := usageKey{account: id, day: day}

	r.mu.RLock()
	if counter, ok := r.counters[key]; ok {
		n := counter.Add(1)
		r.mu.RUnlock()
		return n, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	counter, ok := r.counters[key]
	if !ok {
		counter = &atomic.Int64{}
		r.counters[key] = counter
	}

	return counter.Add(1), nil
}

func (r *UsageRepository) Get(ctx context.Context, id domain.AccountID, day domain.Day) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	counter, ok := r.counters[usageKey{account: id, day: day}]
	if !ok {
		return 0, nil
	}

	return counter.Load(), nil
}

func (r *UsageRepository) Reset(ctx context.Context, id domain.AccountID, day domain.Day) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if counter, ok := r.counters[usageKey{account: id, day: day}]; ok {
		counter.Store(0)
	}

	return nil
}

func (r *UsageRepository) Purge(ctx context.Context, before domain.Day) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var purged int64
	for key := range r.counters {
		if key.day < before {
			delete(r.counters, key)
			purged++
		}
	}

	return purged, nil
}
