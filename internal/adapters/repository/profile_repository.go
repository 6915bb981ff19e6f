package repository

import (
	"context"
	"sync"

	"github.com/vitaapp/core/internal/domain/entities"
	"github.com/vitaapp/core/internal/infrastructure/logger"
	"github.com/vitaapp/core/internal/infrastructure/storage"
)

// ProfileRepository persists the profile singleton to its own file,
// outside the resource data directory. The empty-file default is an
// empty object rather than an empty array.
type ProfileRepository struct {
	mu     sync.Mutex
	file   *storage.File
	logger *logger.Logger
}

// NewProfileRepository creates the profile repository.
func NewProfileRepository(file *storage.File, log *logger.Logger) *ProfileRepository {
	return &ProfileRepository{
		file:   file,
		logger: log.WithComponent("repository").WithFields("path", file.Path()),
	}
}

// Get returns the stored profile, or an empty object.
func (r *ProfileRepository) Get(ctx context.Context) entities.Record {
	return r.file.ReadObject()
}

// Merge lays patch fields over the stored profile and persists.
func (r *ProfileRepository) Merge(ctx context.Context, patch entities.Record) (entities.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	merged := r.file.ReadObject().Merge(patch)
	if err := r.file.WriteObject(merged); err != nil {
		return nil, err
	}
	return merged, nil
}
