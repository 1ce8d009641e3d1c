package driving

import (
	"context"

	"github.com/custodia-labs/starradar-cli/internal/core/domain"
)

// SearchRequest describes one search submission.
type SearchRequest struct {
	// Query is the raw query text. Wrapping it in double quotes
	// restricts matching to the repository name.
	Query string

	// Mode selects platform-wide or within-starred search.
	Mode domain.SearchMode

	// Sort orders the results. Defaults to stars.
	Sort domain.SortKey

	// Page is the 1-based page to return. Defaults to 1.
	Page int

	// PerPage is the page size. Defaults to 30.
	PerPage int
}

// StarsService exposes the starred-repository working set to external
// actors.
type StarsService interface {
	// FetchStarred aggregates the user's starred repositories into a
	// sorted, deduplicated collection. A cap of 0 means unlimited.
	// The result is cached as the active working set.
	FetchStarred(ctx context.Context, cap int) (*domain.StarredCollection, error)

	// Browse returns one page of the cached working set, aggregating
	// first if needed.
	Browse(ctx context.Context, sort domain.SortKey, page, perPage int) (*domain.SearchPage, error)

	// Search runs a search in the requested mode. Superseded
	// submissions return domain.ErrSuperseded and leave all cached
	// state untouched.
	Search(ctx context.Context, req SearchRequest) (*domain.SearchPage, error)

	// Star stars a repository and optimistically updates the working
	// set. On upstream failure the cache change is rolled back.
	Star(ctx context.Context, record domain.RepositoryRecord) error

	// Unstar removes a star and optimistically updates the working set.
	// On upstream failure the cache change is rolled back.
	Unstar(ctx context.Context, record domain.RepositoryRecord) error

	// GetRepository fetches a single repository with its starred
	// status resolved against the working set, falling back to a
	// direct upstream check when the id is not cached.
	GetRepository(ctx context.Context, owner, name string) (*domain.RepositoryRecord, error)

	// RateLimit returns the upstream call budget snapshot.
	RateLimit(ctx context.Context) (*domain.RateLimitStatus, error)
}
