package driven

import (
	"context"

	"github.com/custodia-labs/starradar-cli/internal/core/domain"
)

// RadarStore persists radar collections.
type RadarStore interface {
	// Save stores or updates a radar.
	Save(ctx context.Context, radar *domain.Radar) error

	// Get retrieves a radar by id.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Radar, error)

	// GetByName retrieves a radar by its display name.
	// Returns domain.ErrNotFound if it does not exist.
	GetByName(ctx context.Context, name string) (*domain.Radar, error)

	// List returns all radars ordered by creation time.
	List(ctx context.Context) ([]domain.Radar, error)

	// Delete removes a radar by id.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// Close releases any underlying resources.
	Close() error
}
