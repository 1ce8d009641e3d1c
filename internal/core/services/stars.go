package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/starradar-cli/internal/core/domain"
	"github.com/custodia-labs/starradar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/starradar-cli/internal/core/ports/driving"
	"github.com/custodia-labs/starradar-cli/internal/logger"
)

// Ensure StarsService implements the interface.
var _ driving.StarsService = (*StarsService)(nil)

// StarsService composes the aggregator, working set, and search router
// behind the driving port used by the CLI.
type StarsService struct {
	gateway    driven.StarGateway
	aggregator *Aggregator
	cache      *WorkingSet
	search     *SearchService
}

// NewStarsService creates the stars service with its own working set
// and search router.
func NewStarsService(gateway driven.StarGateway) *StarsService {
	aggregator := NewAggregator(gateway)
	cache := NewWorkingSet()
	return &StarsService{
		gateway:    gateway,
		aggregator: aggregator,
		cache:      cache,
		search:     NewSearchService(gateway, aggregator, cache),
	}
}

// WorkingSet exposes the cache for adapters that read derived views.
func (s *StarsService) WorkingSet() *WorkingSet {
	return s.cache
}

// SetCorpusCap bounds the starred-corpus aggregation used by browse
// and starred-mode searches. 0 means unlimited.
func (s *StarsService) SetCorpusCap(cap int) {
	s.search.SetCorpusCap(cap)
}

// Close releases in-flight work.
func (s *StarsService) Close() {
	s.search.Close()
}

// FetchStarred aggregates the starred corpus and caches it as the
// active working set.
func (s *StarsService) FetchStarred(ctx context.Context, cap int) (*domain.StarredCollection, error) {
	collection, err := s.aggregator.FetchAll(ctx, cap)
	if err != nil {
		return nil, err
	}
	s.cache.SetCollection(collection)
	return collection, nil
}

// Browse returns one page of the working set, aggregating on first
// use. Browsing is an empty-query starred-mode search, so page turns
// and sort changes reuse the cached corpus.
func (s *StarsService) Browse(ctx context.Context, sort domain.SortKey, page, perPage int) (*domain.SearchPage, error) {
	return s.search.Search(ctx, driving.SearchRequest{
		Mode:    domain.SearchModeStarred,
		Sort:    sort,
		Page:    page,
		PerPage: perPage,
	})
}

// Search runs a search submission in the requested mode.
func (s *StarsService) Search(ctx context.Context, req driving.SearchRequest) (*domain.SearchPage, error) {
	return s.search.Search(ctx, req)
}

// Star stars the repository upstream and optimistically applies the
// change to every cached view. If the upstream call fails the cache
// mutation is rolled back with the inverse operation.
func (s *StarsService) Star(ctx context.Context, record domain.RepositoryRecord) error {
	if err := validateRepoRef(record); err != nil {
		return err
	}

	s.cache.MarkStarred(record)
	if err := s.gateway.Star(ctx, record.Owner, record.Name); err != nil {
		logger.Warn("Star %s failed, rolling back cache: %v", record.FullName, err)
		s.cache.MarkUnstarred(record)
		return err
	}
	return nil
}

// Unstar removes the star upstream and optimistically applies the
// change to every cached view, rolling back on failure.
func (s *StarsService) Unstar(ctx context.Context, record domain.RepositoryRecord) error {
	if err := validateRepoRef(record); err != nil {
		return err
	}

	s.cache.MarkUnstarred(record)
	if err := s.gateway.Unstar(ctx, record.Owner, record.Name); err != nil {
		logger.Warn("Unstar %s failed, rolling back cache: %v", record.FullName, err)
		s.cache.MarkStarred(record)
		return err
	}
	return nil
}

// GetRepository fetches a single repository and resolves its starred
// status: the membership set answers when the id is cached, otherwise
// a direct upstream check runs and a positive answer back-fills the
// cache.
func (s *StarsService) GetRepository(ctx context.Context, owner, name string) (*domain.RepositoryRecord, error) {
	record, err := s.gateway.GetRepository(ctx, owner, name)
	if err != nil {
		return nil, err
	}

	if s.cache.Contains(record.ID) {
		record.IsStarred = true
		return record, nil
	}

	starred, err := s.gateway.IsStarred(ctx, owner, name)
	if err != nil {
		return nil, err
	}
	if starred {
		record.IsStarred = true
		// Membership only: the repository is already part of the
		// probed total, it just was not carried by the fetch.
		s.cache.MarkKnownStarred(record.ID)
	}
	return record, nil
}

// RateLimit returns the upstream call budget snapshot.
func (s *StarsService) RateLimit(ctx context.Context) (*domain.RateLimitStatus, error) {
	return s.gateway.RateLimit(ctx)
}

// validateRepoRef checks that a record carries enough identity for a
// star/unstar call.
func validateRepoRef(record domain.RepositoryRecord) error {
	if strings.TrimSpace(record.Owner) == "" || strings.TrimSpace(record.Name) == "" {
		return fmt.Errorf("%w: repository owner and name are required", domain.ErrInvalidInput)
	}
	return nil
}
