package driven

import (
	"context"

	"github.com/custodia-labs/starradar-cli/internal/core/domain"
)

// StarGateway is the upstream GitHub API surface consumed by the core.
// All methods classify upstream failures into the domain error
// taxonomy (ErrAuthExpired, ErrRateLimited, ErrForbidden, ErrNotFound,
// ErrInvalidQuery, ErrUpstream, ErrNetwork).
type StarGateway interface {
	// CountStarred returns the total number of starred repositories
	// using a minimal metadata probe, without downloading them.
	CountStarred(ctx context.Context) (int, error)

	// ListStarredPage fetches one page of the starred listing.
	// Page numbers are 1-based. Records carry their starred-at
	// timestamp and IsStarred set.
	ListStarredPage(ctx context.Context, page, perPage int) ([]domain.RepositoryRecord, error)

	// SearchRepositories runs a platform-wide repository search. The
	// query must already be in GitHub's search syntax; sort keys
	// outside GitHub's vocabulary are the caller's responsibility.
	SearchRepositories(ctx context.Context, query string, sort domain.SortKey, page, perPage int) (*domain.SearchPage, error)

	// GetRepository fetches a single repository by owner and name.
	GetRepository(ctx context.Context, owner, name string) (*domain.RepositoryRecord, error)

	// IsStarred checks whether the authenticated user has starred the
	// repository.
	IsStarred(ctx context.Context, owner, name string) (bool, error)

	// Star stars the repository for the authenticated user.
	// Idempotent upstream.
	Star(ctx context.Context, owner, name string) error

	// Unstar removes the star. Idempotent upstream.
	Unstar(ctx context.Context, owner, name string) error

	// RateLimit returns a snapshot of the remaining call budget.
	RateLimit(ctx context.Context) (*domain.RateLimitStatus, error)
}
