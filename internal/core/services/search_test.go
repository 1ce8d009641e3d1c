package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/starradar-cli/internal/core/domain"
	"github.com/custodia-labs/starradar-cli/internal/core/ports/driving"
)

func newSearchService(gw *mockGateway) *SearchService {
	return NewSearchService(gw, NewAggregator(gw), NewWorkingSet())
}

func TestSearchService_Validation(t *testing.T) {
	svc := newSearchService(&mockGateway{})

	_, err := svc.Search(context.Background(), driving.SearchRequest{Mode: "everything"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Search(context.Background(), driving.SearchRequest{Sort: "alphabetical"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchService_AllMode(t *testing.T) {
	t.Run("empty query falls back to the trending default", func(t *testing.T) {
		var gotQuery string
		gw := &mockGateway{}
		gw.searchFunc = func(_ context.Context, query string, _ domain.SortKey, page, perPage int) (*domain.SearchPage, error) {
			gotQuery = query
			return &domain.SearchPage{Page: page, PerPage: perPage}, nil
		}
		svc := newSearchService(gw)

		_, err := svc.Search(context.Background(), driving.SearchRequest{Mode: domain.SearchModeAll})

		require.NoError(t, err)
		assert.Equal(t, "stars:>=1", gotQuery)
	})

	t.Run("quoted query becomes an in-name qualifier", func(t *testing.T) {
		var gotQuery string
		gw := &mockGateway{}
		gw.searchFunc = func(_ context.Context, query string, _ domain.SortKey, page, perPage int) (*domain.SearchPage, error) {
			gotQuery = query
			return &domain.SearchPage{Page: page, PerPage: perPage}, nil
		}
		svc := newSearchService(gw)

		_, err := svc.Search(context.Background(), driving.SearchRequest{
			Mode:  domain.SearchModeAll,
			Query: `"terraform"`,
		})

		require.NoError(t, err)
		assert.Equal(t, "terraform in:name", gotQuery)
	})

	t.Run("totals above the index ceiling are clamped", func(t *testing.T) {
		gw := &mockGateway{}
		gw.searchFunc = func(_ context.Context, _ string, _ domain.SortKey, page, perPage int) (*domain.SearchPage, error) {
			return &domain.SearchPage{
				TotalCount:    54321,
				RawTotalCount: 54321,
				Page:          page,
				PerPage:       perPage,
			}, nil
		}
		svc := newSearchService(gw)

		page, err := svc.Search(context.Background(), driving.SearchRequest{
			Mode:  domain.SearchModeAll,
			Query: "kubernetes",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.SearchTotalCeiling, page.TotalCount)
		assert.Equal(t, 54321, page.RawTotalCount)
		assert.True(t, page.Clamped)
	})

	t.Run("totals at or below the ceiling pass through", func(t *testing.T) {
		gw := &mockGateway{}
		gw.searchFunc = func(_ context.Context, _ string, _ domain.SortKey, page, perPage int) (*domain.SearchPage, error) {
			return &domain.SearchPage{
				TotalCount:    712,
				RawTotalCount: 712,
				Page:          page,
				PerPage:       perPage,
			}, nil
		}
		svc := newSearchService(gw)

		page, err := svc.Search(context.Background(), driving.SearchRequest{
			Mode:  domain.SearchModeAll,
			Query: "starradar",
		})

		require.NoError(t, err)
		assert.Equal(t, 712, page.TotalCount)
		assert.False(t, page.Clamped)
	})

	t.Run("starred flags come from the membership set", func(t *testing.T) {
		gw := &mockGateway{repos: starredRepos(2)}
		gw.searchFunc = func(_ context.Context, _ string, _ domain.SortKey, page, perPage int) (*domain.SearchPage, error) {
			return &domain.SearchPage{
				Repos: []domain.RepositoryRecord{
					{ID: 1, Owner: "owner", Name: "repo-1"},
					{ID: 99, Owner: "other", Name: "elsewhere"},
				},
				TotalCount: 2,
				Page:       page,
				PerPage:    perPage,
			}, nil
		}
		agg := NewAggregator(gw)
		cache := NewWorkingSet()
		svc := NewSearchService(gw, agg, cache)

		corpus, err := agg.FetchAll(context.Background(), 0)
		require.NoError(t, err)
		cache.SetCollection(corpus)

		page, err := svc.Search(context.Background(), driving.SearchRequest{
			Mode:  domain.SearchModeAll,
			Query: "repo",
		})

		require.NoError(t, err)
		require.Len(t, page.Repos, 2)
		assert.True(t, page.Repos[0].IsStarred)
		assert.False(t, page.Repos[1].IsStarred)
	})
}

func TestSearchService_StarredMode(t *testing.T) {
	corpus := []domain.RepositoryRecord{
		{ID: 1, Owner: "a", Name: "vector-db", FullName: "a/vector-db", Description: "embedding store", Language: "Rust", Stars: 900, IsStarred: true},
		{ID: 2, Owner: "b", Name: "httprouter", FullName: "b/httprouter", Description: "fast router", Language: "Go", Stars: 500, IsStarred: true},
		{ID: 3, Owner: "c", Name: "dbmate", FullName: "c/dbmate", Description: "migrations", Language: "Go", Stars: 300, IsStarred: true},
	}

	t.Run("empty query returns the whole corpus sorted", func(t *testing.T) {
		gw := &mockGateway{repos: corpus}
		svc := newSearchService(gw)

		page, err := svc.Search(context.Background(), driving.SearchRequest{Mode: domain.SearchModeStarred})

		require.NoError(t, err)
		require.Len(t, page.Repos, 3)
		assert.Equal(t, 3, page.TotalCount)
		assert.Equal(t, 900, page.Repos[0].Stars)
		assert.Equal(t, 300, page.Repos[2].Stars)
	})

	t.Run("query filters across name description language and topics", func(t *testing.T) {
		gw := &mockGateway{repos: corpus}
		svc := newSearchService(gw)

		page, err := svc.Search(context.Background(), driving.SearchRequest{
			Mode:  domain.SearchModeStarred,
			Query: "go",
		})

		require.NoError(t, err)
		require.Len(t, page.Repos, 2)
		assert.Equal(t, "httprouter", page.Repos[0].Name)
		assert.Equal(t, "dbmate", page.Repos[1].Name)
	})

	t.Run("non-matching query yields an empty page", func(t *testing.T) {
		gw := &mockGateway{repos: corpus}
		svc := newSearchService(gw)

		page, err := svc.Search(context.Background(), driving.SearchRequest{
			Mode:  domain.SearchModeStarred,
			Query: "no-such-repo",
		})

		require.NoError(t, err)
		assert.Empty(t, page.Repos)
		assert.Equal(t, 0, page.TotalCount)
	})

	t.Run("corpus is aggregated once and reused across submissions", func(t *testing.T) {
		gw := &mockGateway{repos: corpus}
		svc := newSearchService(gw)

		_, err := svc.Search(context.Background(), driving.SearchRequest{Mode: domain.SearchModeStarred, Query: "db"})
		require.NoError(t, err)
		_, err = svc.Search(context.Background(), driving.SearchRequest{Mode: domain.SearchModeStarred, Query: "router"})
		require.NoError(t, err)
		_, err = svc.Search(context.Background(), driving.SearchRequest{
			Mode: domain.SearchModeStarred, Sort: domain.SortForks, Page: 2,
		})
		require.NoError(t, err)

		assert.Equal(t, 1, gw.countCalls)
		assert.Equal(t, 1, gw.pageCalls)
	})

	t.Run("pagination slices the filtered set", func(t *testing.T) {
		gw := &mockGateway{repos: starredRepos(75)}
		svc := newSearchService(gw)

		page, err := svc.Search(context.Background(), driving.SearchRequest{
			Mode:    domain.SearchModeStarred,
			Page:    3,
			PerPage: 30,
		})

		require.NoError(t, err)
		assert.Len(t, page.Repos, 15)
		assert.Equal(t, 75, page.TotalCount)
		assert.Equal(t, 3, page.Page)
	})

	t.Run("page beyond the end is empty not an error", func(t *testing.T) {
		gw := &mockGateway{repos: corpus}
		svc := newSearchService(gw)

		page, err := svc.Search(context.Background(), driving.SearchRequest{
			Mode: domain.SearchModeStarred,
			Page: 9,
		})

		require.NoError(t, err)
		assert.Empty(t, page.Repos)
		assert.Equal(t, 3, page.TotalCount)
	})
}

func TestSearchService_LastSubmittedWins(t *testing.T) {
	gw := &mockGateway{}
	started := make(chan struct{})
	release := make(chan struct{})
	gw.searchFunc = func(ctx context.Context, query string, _ domain.SortKey, page, perPage int) (*domain.SearchPage, error) {
		if query == "slow" {
			close(started)
			select {
			case <-release:
			case <-ctx.Done():
			}
			return &domain.SearchPage{TotalCount: 1, Page: page, PerPage: perPage}, nil
		}
		return &domain.SearchPage{TotalCount: 42, Page: page, PerPage: perPage}, nil
	}
	cache := NewWorkingSet()
	svc := NewSearchService(gw, NewAggregator(gw), cache)

	var wg sync.WaitGroup
	var slowErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, slowErr = svc.Search(context.Background(), driving.SearchRequest{
			Mode:  domain.SearchModeAll,
			Query: "slow",
		})
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("first search never reached the gateway")
	}

	fast, err := svc.Search(context.Background(), driving.SearchRequest{
		Mode:  domain.SearchModeAll,
		Query: "fast",
	})
	require.NoError(t, err)
	assert.Equal(t, 42, fast.TotalCount)

	close(release)
	wg.Wait()

	// The superseded submission reports ErrSuperseded and leaves the
	// cached snapshot showing the winner.
	assert.ErrorIs(t, slowErr, domain.ErrSuperseded)
	require.NotNil(t, cache.SearchPage())
	assert.Equal(t, 42, cache.SearchPage().TotalCount)
}

func TestSearchService_StaleResultCannotOverwriteNewerSnapshot(t *testing.T) {
	// The hostile interleaving: the first submission finishes its
	// fetch, and a second submission begins AND fully publishes before
	// the first gets to commit. The first must lose, even though it
	// passed every check up to the commit point.
	gw := &mockGateway{}
	gw.searchFunc = func(_ context.Context, query string, _ domain.SortKey, page, perPage int) (*domain.SearchPage, error) {
		if query == "stale" {
			return &domain.SearchPage{TotalCount: 1, Page: page, PerPage: perPage}, nil
		}
		return &domain.SearchPage{TotalCount: 42, Page: page, PerPage: perPage}, nil
	}
	cache := NewWorkingSet()
	svc := NewSearchService(gw, NewAggregator(gw), cache)

	interleaved := false
	svc.beforeCommit = func() {
		if interleaved {
			return
		}
		interleaved = true
		fresh, err := svc.Search(context.Background(), driving.SearchRequest{
			Mode:  domain.SearchModeAll,
			Query: "fresh",
		})
		require.NoError(t, err)
		require.Equal(t, 42, fresh.TotalCount)
	}

	_, err := svc.Search(context.Background(), driving.SearchRequest{
		Mode:  domain.SearchModeAll,
		Query: "stale",
	})

	assert.ErrorIs(t, err, domain.ErrSuperseded)
	require.NotNil(t, cache.SearchPage())
	assert.Equal(t, 42, cache.SearchPage().TotalCount)
}

func TestSearchService_CorpusCapBoundsAggregation(t *testing.T) {
	gw := &mockGateway{repos: starredRepos(250)}
	svc := newSearchService(gw)
	svc.SetCorpusCap(50)

	page, err := svc.Search(context.Background(), driving.SearchRequest{Mode: domain.SearchModeStarred})

	require.NoError(t, err)
	assert.Equal(t, 50, page.TotalCount)
	// Only the cap-covering page is fetched.
	assert.Equal(t, 1, gw.pageCalls)
}
