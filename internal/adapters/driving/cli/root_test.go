package cli

import (
	"context"
	"time"

	"github.com/custodia-labs/starradar-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/starradar-cli/internal/core/domain"
	"github.com/custodia-labs/starradar-cli/internal/core/ports/driving"
	"github.com/custodia-labs/starradar-cli/internal/core/services"
)

// mockStarsService serves canned data for command tests.
type mockStarsService struct {
	searchErr error
	starErr   error

	lastRequest driving.SearchRequest
}

var _ driving.StarsService = (*mockStarsService)(nil)

func mockRecords() []domain.RepositoryRecord {
	return []domain.RepositoryRecord{
		{
			ID:          1,
			Owner:       "custodia-labs",
			Name:        "starradar-cli",
			FullName:    "custodia-labs/starradar-cli",
			Description: "GitHub stars aggregator",
			Language:    "Go",
			Stars:       1200,
			Forks:       40,
			IsStarred:   true,
			StarredAt:   time.Now().Add(-24 * time.Hour),
		},
		{
			ID:       2,
			Owner:    "octocat",
			Name:     "hello-world",
			FullName: "octocat/hello-world",
			Stars:    800,
		},
	}
}

func (m *mockStarsService) FetchStarred(_ context.Context, _ int) (*domain.StarredCollection, error) {
	repos := mockRecords()
	return &domain.StarredCollection{Repos: repos, FetchedCount: len(repos), TotalStarred: len(repos)}, nil
}

func (m *mockStarsService) Browse(ctx context.Context, sort domain.SortKey, page, perPage int) (*domain.SearchPage, error) {
	return m.Search(ctx, driving.SearchRequest{Mode: domain.SearchModeStarred, Sort: sort, Page: page, PerPage: perPage})
}

func (m *mockStarsService) Search(_ context.Context, req driving.SearchRequest) (*domain.SearchPage, error) {
	m.lastRequest = req
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	repos := mockRecords()
	return &domain.SearchPage{
		Repos:         repos,
		TotalCount:    len(repos),
		RawTotalCount: len(repos),
		Page:          req.Page,
		PerPage:       req.PerPage,
	}, nil
}

func (m *mockStarsService) Star(_ context.Context, _ domain.RepositoryRecord) error {
	return m.starErr
}

func (m *mockStarsService) Unstar(_ context.Context, _ domain.RepositoryRecord) error {
	return m.starErr
}

func (m *mockStarsService) GetRepository(_ context.Context, owner, name string) (*domain.RepositoryRecord, error) {
	for _, r := range mockRecords() {
		if r.Owner == owner && r.Name == name {
			return &r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStarsService) RateLimit(_ context.Context) (*domain.RateLimitStatus, error) {
	return &domain.RateLimitStatus{Remaining: 4200, Limit: 5000, ResetAt: time.Now().Add(30 * time.Minute)}, nil
}

// setupTestServices swaps the package services for mocks and returns a
// cleanup restoring the originals.
func setupTestServices() func() {
	oldStars := starsService
	oldRadars := radarsService

	starsService = &mockStarsService{}
	radarsService = services.NewRadarsService(memory.NewRadarStore())

	return func() {
		starsService = oldStars
		radarsService = oldRadars
	}
}
