// Package memory provides in-memory implementations of the driven
// storage ports, used by tests and as a fallback when no data
// directory is available.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/starradar-cli/internal/core/domain"
	"github.com/custodia-labs/starradar-cli/internal/core/ports/driven"
)

// Ensure RadarStore implements the interface.
var _ driven.RadarStore = (*RadarStore)(nil)

// RadarStore is an in-memory implementation of driven.RadarStore.
type RadarStore struct {
	mu     sync.RWMutex
	radars map[string]domain.Radar
}

// NewRadarStore creates a new in-memory radar store.
func NewRadarStore() *RadarStore {
	return &RadarStore{
		radars: make(map[string]domain.Radar),
	}
}

// Save stores or updates a radar.
func (s *RadarStore) Save(_ context.Context, radar *domain.Radar) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *radar
	stored.RepoIDs = append([]int64(nil), radar.RepoIDs...)
	s.radars[radar.ID] = stored
	return nil
}

// Get retrieves a radar by id.
func (s *RadarStore) Get(_ context.Context, id string) (*domain.Radar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	radar, ok := s.radars[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := radar
	out.RepoIDs = append([]int64(nil), radar.RepoIDs...)
	return &out, nil
}

// GetByName retrieves a radar by display name.
func (s *RadarStore) GetByName(_ context.Context, name string) (*domain.Radar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id := range s.radars {
		if s.radars[id].Name == name {
			out := s.radars[id]
			out.RepoIDs = append([]int64(nil), out.RepoIDs...)
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns all radars ordered by creation time.
func (s *RadarStore) List(_ context.Context) ([]domain.Radar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Radar, 0, len(s.radars))
	for id := range s.radars {
		radar := s.radars[id]
		radar.RepoIDs = append([]int64(nil), radar.RepoIDs...)
		result = append(result, radar)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// Delete removes a radar by id.
func (s *RadarStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.radars[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.radars, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *RadarStore) Close() error {
	return nil
}
