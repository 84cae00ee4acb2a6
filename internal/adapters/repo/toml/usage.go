package toml

import (
	"context"

	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/bnema/chatline-entitlements/internal/ports"
	"github.com/spf13/viper"
)

const (
	usagePathKey  = "usage.path"
	usageFileName = "usage.toml"
)

type UsageRepository struct {
	doc *document
}

var _ ports.UsageRepository = (*UsageRepository)(nil)

func NewUsageRepository(cfg *viper.Viper) (*UsageRepository, error) {
	doc, err := openDocument(cfg, usagePathKey, usageFileName, "usage")
	if err != nil {
		return nil, err
	}

	return &UsageRepository{doc: doc}, nil
}

func (r *UsageRepository) Increment(ctx context.Context, id domain.AccountID, day domain.Day) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return 0, err
	}

	var count int64
	found := false
	for i := range file.Counters {
		if file.Counters[i].AccountID == string(id) && file.Counters[i].Day == string(day) {
			file.Counters[i].Count++
			count = file.Counters[i].Count
			found = true
			break
		}
	}
	if !found {
		count = 1
		file.Counters = append(file.Counters, counterSchema{AccountID: string(id), Day: string(day), Count: count})
	}

	if err := r.doc.write(file); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *UsageRepository) Get(ctx context.Context, id domain.AccountID, day domain.Day) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.doc.mu.RLock()
	defer r.doc.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return 0, err
	}

	for _, entry := range file.Counters {
		if entry.AccountID == string(id) && entry.Day == string(day) {
			return entry.Count, nil
		}
	}

	return 0, nil
}

func (r *UsageRepository) Reset(ctx context.Context, id domain.AccountID, day domain.Day) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	kept := file.Counters[:0]
	changed := false
	for _, entry := range file.Counters {
		if entry.AccountID == string(id) && entry.Day == string(day) {
			changed = true
			continue
		}
		kept = append(kept, entry)
	}
	if !changed {
		return nil
	}
	file.Counters = kept

	return r.doc.write(file)
}

func (r *UsageRepository) Purge(ctx context.Context, before domain.Day) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return 0, err
	}

	kept := file.Counters[:0]
	var purged int64
	for _, entry := range file.Counters {
		if domain.Day(entry.Day) < before {
			purged++
			continue
		}
		kept = append(kept, entry)
	}
	if purged == 0 {
		return 0, nil
	}
	file.Counters = kept

	if err := r.doc.write(file); err != nil {
		return 0, err
	}

	return purged, nil
}

func (r *UsageRepository) readSchema() (usageFileSchema, error) {
	var file usageFileSchema
	if err := r.doc.read(&file); err != nil {
		return usageFileSchema{}, err
	}
	if err := file.validateVersion(); err != nil {
		return usageFileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}
