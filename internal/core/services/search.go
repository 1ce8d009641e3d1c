package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/starradar-cli/internal/core/domain"
	"github.com/custodia-labs/starradar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/starradar-cli/internal/core/ports/driving"
	"github.com/custodia-labs/starradar-cli/internal/logger"
)

const (
	// DefaultPerPage is the page size used when the caller gives none.
	DefaultPerPage = 30

	// trendingFallbackQuery stands in for an empty platform-wide
	// query: "anything with at least one star" gives a deterministic
	// popular/trending default view instead of an upstream error.
	trendingFallbackQuery = "stars:>=1"
)

// SearchService routes queries between two topologies: the upstream
// search endpoint for platform-wide mode, and a local filter/sort/
// slice pass over the aggregated corpus for starred mode. Overlapping
// submissions resolve last-submitted-wins through the Lifecycle.
type SearchService struct {
	gateway    driven.StarGateway
	aggregator *Aggregator
	cache      *WorkingSet
	lifecycle  *Lifecycle

	// corpusCap bounds the corpus aggregation for starred-mode
	// searches. 0 means unlimited.
	corpusCap int

	// beforeCommit, when set, runs after the search completes and
	// before the result is committed. Test seam for interleaving
	// concurrent submissions; nil in production.
	beforeCommit func()
}

// NewSearchService creates the search router.
func NewSearchService(gateway driven.StarGateway, aggregator *Aggregator, cache *WorkingSet) *SearchService {
	return &SearchService{
		gateway:    gateway,
		aggregator: aggregator,
		cache:      cache,
		lifecycle:  NewLifecycle(),
	}
}

// SetCorpusCap bounds the number of starred repositories aggregated
// for starred-mode searches.
func (s *SearchService) SetCorpusCap(cap int) {
	s.corpusCap = cap
}

// Close cancels any in-flight search.
func (s *SearchService) Close() {
	s.lifecycle.Close()
}

// Search runs one search submission. A submission superseded by a
// newer one returns domain.ErrSuperseded with no cached state touched.
func (s *SearchService) Search(ctx context.Context, req driving.SearchRequest) (*domain.SearchPage, error) {
	if req.Mode == "" {
		req.Mode = domain.SearchModeStarred
	}
	if !req.Mode.Valid() {
		return nil, fmt.Errorf("%w: unknown search mode %q", domain.ErrInvalidInput, req.Mode)
	}
	if req.Sort == "" {
		req.Sort = domain.SortStars
	}
	if !req.Sort.Valid() {
		return nil, fmt.Errorf("%w: unknown sort key %q", domain.ErrInvalidInput, req.Sort)
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 {
		req.PerPage = DefaultPerPage
	}

	logger.Section("Search Execution")
	logger.Debug("Query: %q mode=%s sort=%s page=%d", req.Query, req.Mode, req.Sort, req.Page)

	opCtx, tok := s.lifecycle.Begin(ctx)
	query := domain.ParseQuery(req.Query)

	var page *domain.SearchPage
	var err error
	switch req.Mode {
	case domain.SearchModeAll:
		page, err = s.searchAll(opCtx, query, req)
	case domain.SearchModeStarred:
		page, err = s.searchStarred(opCtx, tok, query, req)
	}

	if s.beforeCommit != nil {
		s.beforeCommit()
	}

	if err != nil {
		if !s.lifecycle.Current(tok) {
			logger.Debug("Search superseded, result discarded")
			return nil, domain.ErrSuperseded
		}
		return nil, err
	}

	// Check and publish atomically: a submission that began after ours
	// finished must not have its snapshot overwritten by our result.
	if !s.lifecycle.CommitIfCurrent(tok, func() {
		s.cache.SetSearchPage(page, req.Mode)
	}) {
		logger.Debug("Search superseded, result discarded")
		return nil, domain.ErrSuperseded
	}
	return page, nil
}

// searchAll forwards the query to the upstream search endpoint and
// clamps the reported total at the platform's index ceiling.
func (s *SearchService) searchAll(ctx context.Context, query domain.Query, req driving.SearchRequest) (*domain.SearchPage, error) {
	page, err := s.gateway.SearchRepositories(ctx, platformQuery(query), req.Sort, req.Page, req.PerPage)
	if err != nil {
		return nil, err
	}

	if page.RawTotalCount > domain.SearchTotalCeiling {
		page.TotalCount = domain.SearchTotalCeiling
		page.Clamped = true
	}

	// Resolve starred flags against the membership set when loaded.
	for i := range page.Repos {
		if s.cache.Contains(page.Repos[i].ID) {
			page.Repos[i].IsStarred = true
		}
	}
	return page, nil
}

// searchStarred filters, sorts, and paginates the aggregated corpus
// locally. The corpus is fetched once and reused across pages and sort
// changes; no upstream calls happen per keystroke or page turn.
func (s *SearchService) searchStarred(
	ctx context.Context, tok OpToken, query domain.Query, req driving.SearchRequest,
) (*domain.SearchPage, error) {
	collection := s.cache.Collection()
	if collection == nil {
		fetched, err := s.aggregator.FetchAll(ctx, s.corpusCap)
		if err != nil {
			return nil, err
		}
		if !s.lifecycle.CommitIfCurrent(tok, func() {
			s.cache.SetCollection(fetched)
		}) {
			return nil, domain.ErrSuperseded
		}
		collection = fetched
	} else {
		logger.Debug("Corpus cache hit: %d records", collection.FetchedCount)
	}

	filtered := make([]domain.RepositoryRecord, 0, len(collection.Repos))
	for i := range collection.Repos {
		if query.Matches(&collection.Repos[i]) {
			filtered = append(filtered, collection.Repos[i])
		}
	}
	domain.SortRecords(filtered, starredSort(req.Sort))

	total := len(filtered)
	start := (req.Page - 1) * req.PerPage
	if start > total {
		start = total
	}
	end := start + req.PerPage
	if end > total {
		end = total
	}

	return &domain.SearchPage{
		Repos:         filtered[start:end],
		TotalCount:    total,
		RawTotalCount: total,
		Page:          req.Page,
		PerPage:       req.PerPage,
	}, nil
}

// platformQuery renders a parsed query in GitHub search syntax.
func platformQuery(query domain.Query) string {
	if query.IsEmpty() {
		return trendingFallbackQuery
	}
	if query.Exact {
		return query.Term + " in:name"
	}
	return query.Term
}

// starredSort narrows the sort key to the orders the local pass
// supports; platform-only keys fall back to stars.
func starredSort(key domain.SortKey) domain.SortKey {
	switch key {
	case domain.SortStars, domain.SortStarredAt, domain.SortUpdated, domain.SortForks:
		return key
	default:
		return domain.SortStars
	}
}
