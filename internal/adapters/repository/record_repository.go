package repository

import (
	"context"
	"sync"

	"github.com/vitaapp/core/internal/domain/entities"
	"github.com/vitaapp/core/internal/infrastructure/logger"
	"github.com/vitaapp/core/internal/infrastructure/storage"
)

// RecordRepository is the JSON-file-backed implementation of
// ports.RecordRepository. Every call re-reads the file from disk; there
// is no cache. Mutations hold a per-collection mutex across the whole
// read-mutate-write cycle, which serializes writers on one resource
// without changing the HTTP contract.
type RecordRepository struct {
	mu     sync.Mutex
	file   *storage.File
	logger *logger.Logger
}

// NewRecordRepository creates a repository over one data file.
func NewRecordRepository(file *storage.File, log *logger.Logger) *RecordRepository {
	return &RecordRepository{
		file:   file,
		logger: log.WithComponent("repository").WithFields("path", file.Path()),
	}
}

// List returns the full collection in file order.
func (r *RecordRepository) List(ctx context.Context) []entities.Record {
	return r.file.ReadArray()
}

// Insert appends the record at the tail and persists.
func (r *RecordRepository) Insert(ctx context.Context, record entities.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.file.ReadArray()
	records = append(records, record)
	if err := r.file.WriteArray(records); err != nil {
		return err
	}
	return nil
}

// Merge shallow-merges patch over the record with the given id.
func (r *RecordRepository) Merge(ctx context.Context, id string, patch entities.Record) (entities.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.file.ReadArray()
	for i, record := range records {
		if record.ID() != id {
			continue
		}
		merged := record.Merge(patch)
		records[i] = merged
		if err := r.file.WriteArray(records); err != nil {
			return nil, err
		}
		return merged, nil
	}
	return nil, entities.ErrRecordNotFound
}

// Remove deletes the record with the given id and returns it.
func (r *RecordRepository) Remove(ctx context.Context, id string) (entities.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.file.ReadArray()
	for i, record := range records {
		if record.ID() != id {
			continue
		}
		records = append(records[:i], records[i+1:]...)
		if err := r.file.WriteArray(records); err != nil {
			return nil, err
		}
		return record, nil
	}
	return nil, entities.ErrRecordNotFound
}
