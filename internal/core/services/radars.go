package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/starradar-cli/internal/core/domain"
	"github.com/custodia-labs/starradar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/starradar-cli/internal/core/ports/driving"
)

// Ensure RadarsService implements the interface.
var _ driving.RadarsService = (*RadarsService)(nil)

// RadarsService manages radar collections on top of a RadarStore.
type RadarsService struct {
	store driven.RadarStore
	now   func() time.Time
}

// NewRadarsService creates a radars service.
func NewRadarsService(store driven.RadarStore) *RadarsService {
	return &RadarsService{store: store, now: time.Now}
}

// Create creates a new radar. Names must be unique.
func (s *RadarsService) Create(ctx context.Context, name, description string) (*domain.Radar, error) {
	radar := &domain.Radar{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		Description: description,
		CreatedAt:   s.now(),
		UpdatedAt:   s.now(),
	}
	if err := radar.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.store.GetByName(ctx, radar.Name); err == nil {
		return nil, fmt.Errorf("%w: radar %q", domain.ErrAlreadyExists, radar.Name)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if err := s.store.Save(ctx, radar); err != nil {
		return nil, fmt.Errorf("save radar: %w", err)
	}
	return radar, nil
}

// Get retrieves a radar by id, falling back to name lookup.
func (s *RadarsService) Get(ctx context.Context, idOrName string) (*domain.Radar, error) {
	radar, err := s.store.Get(ctx, idOrName)
	if err == nil {
		return radar, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return s.store.GetByName(ctx, idOrName)
}

// List returns all radars.
func (s *RadarsService) List(ctx context.Context) ([]domain.Radar, error) {
	return s.store.List(ctx)
}

// Rename updates a radar's name and description.
func (s *RadarsService) Rename(ctx context.Context, idOrName, name, description string) (*domain.Radar, error) {
	radar, err := s.Get(ctx, idOrName)
	if err != nil {
		return nil, err
	}

	radar.Name = strings.TrimSpace(name)
	radar.Description = description
	if err := radar.Validate(); err != nil {
		return nil, err
	}
	radar.UpdatedAt = s.now()

	if err := s.store.Save(ctx, radar); err != nil {
		return nil, fmt.Errorf("save radar: %w", err)
	}
	return radar, nil
}

// Delete removes a radar.
func (s *RadarsService) Delete(ctx context.Context, idOrName string) error {
	radar, err := s.Get(ctx, idOrName)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, radar.ID)
}

// AddRepo adds a repository to a radar. Adding an existing member is a
// no-op.
func (s *RadarsService) AddRepo(ctx context.Context, idOrName string, repoID int64) (*domain.Radar, error) {
	radar, err := s.Get(ctx, idOrName)
	if err != nil {
		return nil, err
	}

	if radar.AddRepo(repoID) {
		radar.UpdatedAt = s.now()
		if err := s.store.Save(ctx, radar); err != nil {
			return nil, fmt.Errorf("save radar: %w", err)
		}
	}
	return radar, nil
}

// RemoveRepo removes a repository from a radar.
func (s *RadarsService) RemoveRepo(ctx context.Context, idOrName string, repoID int64) (*domain.Radar, error) {
	radar, err := s.Get(ctx, idOrName)
	if err != nil {
		return nil, err
	}

	if radar.RemoveRepo(repoID) {
		radar.UpdatedAt = s.now()
		if err := s.store.Save(ctx, radar); err != nil {
			return nil, fmt.Errorf("save radar: %w", err)
		}
	}
	return radar, nil
}
