package services

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/starradar-cli/internal/core/domain"
	"github.com/custodia-labs/starradar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/starradar-cli/internal/logger"
)

const (
	// DefaultPageSize is the upstream maximum page size, used to
	// minimise the number of page requests.
	DefaultPageSize = 100

	// DefaultConcurrency bounds the page fan-out.
	DefaultConcurrency = 8
)

// Aggregator produces StarredCollections: it probes the upstream total,
// fans out the page fetches concurrently, and merges the results into
// one sorted, deduplicated set. It is the sole upstream-fetching entry
// point for both the browse and search-within-starred flows, which
// keeps request volume bounded however many surfaces read the data.
type Aggregator struct {
	gateway     driven.StarGateway
	pageSize    int
	concurrency int
}

// NewAggregator creates an aggregator with default page size and
// fan-out bounds.
func NewAggregator(gateway driven.StarGateway) *Aggregator {
	return &Aggregator{
		gateway:     gateway,
		pageSize:    DefaultPageSize,
		concurrency: DefaultConcurrency,
	}
}

// pageResult is the independent outcome of one page fetch.
type pageResult struct {
	page  int
	repos []domain.RepositoryRecord
	err   error
}

// FetchAll aggregates the user's starred repositories. A cap of 0
// means unlimited. The returned collection is sorted by descending
// star count and contains no duplicate ids.
//
// Partial page failures reduce FetchedCount instead of failing the
// whole run; only when every page fails does FetchAll return an error.
func (a *Aggregator) FetchAll(ctx context.Context, cap int) (*domain.StarredCollection, error) {
	logger.Section("Starred Aggregation")

	total, err := a.gateway.CountStarred(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("Count probe: %d starred", total)

	if total == 0 {
		return &domain.StarredCollection{Repos: []domain.RepositoryRecord{}}, nil
	}

	target := total
	if cap > 0 && cap < total {
		target = cap
	}
	pages := (target + a.pageSize - 1) / a.pageSize
	logger.Debug("Fetching %d of %d records across %d pages", target, total, pages)

	results := a.fetchPages(ctx, pages)

	var merged []domain.RepositoryRecord
	var failed []int
	for _, res := range results {
		if res.err != nil {
			failed = append(failed, res.page)
			continue
		}
		merged = append(merged, res.repos...)
	}

	if len(failed) == len(results) {
		// Every page lost: surface the first classified error.
		return nil, results[0].err
	}
	if len(failed) > 0 {
		logger.Warn("Lost %d of %d pages: %v", len(failed), pages, failed)
	}

	merged = dedupeByID(merged)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Stars > merged[j].Stars
	})
	if cap > 0 && len(merged) > cap {
		merged = merged[:cap]
	}

	// The cap only counts as the reason for truncation when it was
	// actually reached; a partial page failure that undershoots the
	// cap reports as incomplete (HasMore) rather than capped.
	isCapped := cap > 0 && total > cap && len(merged) == cap
	return &domain.StarredCollection{
		Repos:        merged,
		FetchedCount: len(merged),
		TotalStarred: total,
		IsCapped:     isCapped,
		HasMore:      total > len(merged),
	}, nil
}

// fetchPages issues all page requests concurrently through a bounded
// pool and collects each outcome independently. Pages carry no
// ordering guarantee among themselves; the caller imposes the final
// order.
func (a *Aggregator) fetchPages(ctx context.Context, pages int) []pageResult {
	results := make([]pageResult, pages)

	sem := make(chan struct{}, a.concurrency)
	var wg sync.WaitGroup

	for i := 0; i < pages; i++ {
		sem <- struct{}{} // acquire
		wg.Add(1)

		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }() // release

			page := idx + 1
			repos, err := a.gateway.ListStarredPage(ctx, page, a.pageSize)
			results[idx] = pageResult{page: page, repos: repos, err: err}
		}(i)
	}

	wg.Wait()
	return results
}

// dedupeByID removes duplicate records, keeping the first occurrence.
// Overlapping pages can hand back the same repository when the
// upstream listing shifts mid-fetch.
func dedupeByID(repos []domain.RepositoryRecord) []domain.RepositoryRecord {
	seen := make(map[int64]struct{}, len(repos))
	out := repos[:0]
	for _, r := range repos {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}
