package services

import (
	"context"
	"fmt"

	"github.com/vitaapp/core/internal/domain/entities"
	"github.com/vitaapp/core/internal/infrastructure/logger"
	"github.com/vitaapp/core/internal/ports"
)

// ProfileService handles the profile singleton. Exactly one profile
// exists per installation; it is only ever read and shallow-merged.
type ProfileService struct {
	repo   ports.ProfileRepository
	logger *logger.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(repo ports.ProfileRepository, logger *logger.Logger) *ProfileService {
	return &ProfileService{
		repo:   repo,
		logger: logger,
	}
}

// Get returns the profile object, an empty object when never saved.
func (s *ProfileService) Get(ctx context.Context) entities.Record {
	return s.repo.Get(ctx)
}

// Update shallow-merges patch over the stored profile.
func (s *ProfileService) Update(ctx context.Context, patch entities.Record) (entities.Record, error) {
	merged, err := s.repo.Merge(ctx, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("Profile updated")

	return merged, nil
}
