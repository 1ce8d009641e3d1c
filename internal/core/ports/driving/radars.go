package driving

import (
	"context"

	"github.com/custodia-labs/starradar-cli/internal/core/domain"
)

// RadarsService manages the user's radar collections.
type RadarsService interface {
	// Create creates a new radar with the given name and description.
	Create(ctx context.Context, name, description string) (*domain.Radar, error)

	// Get retrieves a radar by id or name.
	Get(ctx context.Context, idOrName string) (*domain.Radar, error)

	// List returns all radars.
	List(ctx context.Context) ([]domain.Radar, error)

	// Rename updates a radar's name and description.
	Rename(ctx context.Context, idOrName, name, description string) (*domain.Radar, error)

	// Delete removes a radar.
	Delete(ctx context.Context, idOrName string) error

	// AddRepo adds a repository to a radar.
	AddRepo(ctx context.Context, idOrName string, repoID int64) (*domain.Radar, error)

	// RemoveRepo removes a repository from a radar.
	RemoveRepo(ctx context.Context, idOrName string, repoID int64) (*domain.Radar, error)
}
