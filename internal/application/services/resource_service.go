package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vitaapp/core/internal/domain/entities"
	"github.com/vitaapp/core/internal/infrastructure/logger"
	"github.com/vitaapp/core/internal/ports"
)

// ResourceService handles the CRUD operations of one resource collection
type ResourceService struct {
	resource entities.Resource
	repo     ports.RecordRepository
	logger   *logger.Logger
}

// NewResourceService creates a new resource service
func NewResourceService(resource entities.Resource, repo ports.RecordRepository, logger *logger.Logger) *ResourceService {
	return &ResourceService{
		resource: resource,
		repo:     repo,
		logger:   logger.WithFields("resource", resource.Name),
	}
}

// Resource returns the descriptor of the collection this service owns.
func (s *ResourceService) Resource() entities.Resource {
	return s.resource
}

// List returns every record of the collection in file order.
func (s *ResourceService) List(ctx context.Context) []entities.Record {
	return s.repo.List(ctx)
}

// Create assigns a fresh id and appends the record. The id is always
// server-assigned; an id field in the client body is overwritten.
func (s *ResourceService) Create(ctx context.Context, fields entities.Record) (entities.Record, error) {
	record := fields.Clone()
	record[entities.IDField] = uuid.New().String()

	if err := s.repo.Insert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create %s record: %w", s.resource.Name, err)
	}

	s.logger.Info("Record created", "id", record.ID())

	return record, nil
}

// Update shallow-merges patch over the record with the given id.
func (s *ResourceService) Update(ctx context.Context, id string, patch entities.Record) (entities.Record, error) {
	merged, err := s.repo.Merge(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s record %s: %w", s.resource.Name, id, err)
	}

	s.logger.Info("Record updated", "id", id)

	return merged, nil
}

// Delete removes the record with the given id and returns it.
func (s *ResourceService) Delete(ctx context.Context, id string) (entities.Record, error) {
	removed, err := s.repo.Remove(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete %s record %s: %w", s.resource.Name, id, err)
	}

	s.logger.Info("Record deleted", "id", id)

	return removed, nil
}
