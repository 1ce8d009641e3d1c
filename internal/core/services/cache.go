package services

import (
	"sync"
	"time"

	"github.com/custodia-labs/starradar-cli/internal/core/domain"
)

// WorkingSet is the single addressable store of the aggregated starred
// corpus plus its derived views: the id membership set and the current
// search page snapshot.
//
// Every mutation replaces whole values under the lock, never edits a
// published slice in place, so readers never observe a torn state.
// Star/unstar mutations update every view in the same pass.
type WorkingSet struct {
	mu         sync.RWMutex
	collection *domain.StarredCollection
	starredIDs map[int64]struct{}
	searchPage *domain.SearchPage
	searchMode domain.SearchMode

	// now is swappable for tests.
	now func() time.Time
}

// NewWorkingSet creates an empty working set.
func NewWorkingSet() *WorkingSet {
	return &WorkingSet{now: time.Now}
}

// Loaded reports whether a corpus has been aggregated yet.
func (w *WorkingSet) Loaded() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.collection != nil
}

// Collection returns the cached corpus, or nil before the first load.
func (w *WorkingSet) Collection() *domain.StarredCollection {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.collection
}

// SetCollection replaces the corpus and rebuilds the membership set.
func (w *WorkingSet) SetCollection(c *domain.StarredCollection) {
	ids := make(map[int64]struct{}, len(c.Repos))
	for _, r := range c.Repos {
		ids[r.ID] = struct{}{}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.collection = c
	w.starredIDs = ids
}

// Contains reports whether the repository id is in the starred
// membership set. Always false before the first load.
func (w *WorkingSet) Contains(id int64) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.starredIDs[id]
	return ok
}

// SearchPage returns the current search result snapshot, or nil.
func (w *WorkingSet) SearchPage() *domain.SearchPage {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.searchPage
}

// SetSearchPage replaces the search result snapshot.
func (w *WorkingSet) SetSearchPage(p *domain.SearchPage, mode domain.SearchMode) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.searchPage = p
	w.searchMode = mode
}

// Invalidate drops the corpus and every derived view, forcing the next
// read to re-aggregate.
func (w *WorkingSet) Invalidate() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.collection = nil
	w.starredIDs = nil
	w.searchPage = nil
}

// MarkStarred optimistically applies a star to every cached view: the
// record is prepended to the corpus (starred-at now) unless already
// present, the known total is incremented, the membership set gains
// the id, and a matching record in the search snapshot is flagged as
// starred. No-op before the first corpus load.
func (w *WorkingSet) MarkStarred(record domain.RepositoryRecord) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.collection == nil {
		return
	}
	if _, ok := w.starredIDs[record.ID]; ok {
		return
	}

	record.IsStarred = true
	record.StarredAt = w.now()

	old := w.collection
	repos := make([]domain.RepositoryRecord, 0, len(old.Repos)+1)
	repos = append(repos, record)
	repos = append(repos, old.Repos...)

	w.collection = &domain.StarredCollection{
		Repos:        repos,
		FetchedCount: old.FetchedCount + 1,
		TotalStarred: old.TotalStarred + 1,
		IsCapped:     old.IsCapped,
		HasMore:      old.HasMore,
	}

	ids := make(map[int64]struct{}, len(w.starredIDs)+1)
	for id := range w.starredIDs {
		ids[id] = struct{}{}
	}
	ids[record.ID] = struct{}{}
	w.starredIDs = ids

	w.searchPage = w.searchPageWithStarred(record.ID, true)
}

// MarkKnownStarred adds the id to the membership set without touching
// the corpus or its counters. Used when a direct upstream check
// confirms a star the capped or partial aggregation did not carry;
// the count probe already included such a repository in TotalStarred.
// No-op before the first corpus load.
func (w *WorkingSet) MarkKnownStarred(id int64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.collection == nil {
		return
	}
	if _, ok := w.starredIDs[id]; ok {
		return
	}

	ids := make(map[int64]struct{}, len(w.starredIDs)+1)
	for known := range w.starredIDs {
		ids[known] = struct{}{}
	}
	ids[id] = struct{}{}
	w.starredIDs = ids
}

// MarkUnstarred optimistically removes a star from every cached view:
// the record leaves the corpus and the membership set, the known total
// is decremented (floored at zero), and the search snapshot is updated
// so the repository disappears from starred-mode results without a
// refetch. No-op before the first corpus load.
func (w *WorkingSet) MarkUnstarred(record domain.RepositoryRecord) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.collection == nil {
		return
	}

	old := w.collection
	repos := make([]domain.RepositoryRecord, 0, len(old.Repos))
	removed := false
	for _, r := range old.Repos {
		if r.ID == record.ID {
			removed = true
			continue
		}
		repos = append(repos, r)
	}

	fetched := old.FetchedCount
	if removed && fetched > 0 {
		fetched--
	}
	total := old.TotalStarred
	if total > 0 {
		total--
	}

	w.collection = &domain.StarredCollection{
		Repos:        repos,
		FetchedCount: fetched,
		TotalStarred: total,
		IsCapped:     old.IsCapped,
		HasMore:      old.HasMore,
	}

	ids := make(map[int64]struct{}, len(w.starredIDs))
	for id := range w.starredIDs {
		if id != record.ID {
			ids[id] = struct{}{}
		}
	}
	w.starredIDs = ids

	if w.searchMode == domain.SearchModeStarred {
		w.searchPage = w.searchPageWithout(record.ID)
	} else {
		w.searchPage = w.searchPageWithStarred(record.ID, false)
	}
}

// searchPageWithStarred returns a snapshot copy with the record's
// starred flag updated. Caller holds the lock.
func (w *WorkingSet) searchPageWithStarred(id int64, starred bool) *domain.SearchPage {
	if w.searchPage == nil {
		return nil
	}
	page := *w.searchPage
	page.Repos = make([]domain.RepositoryRecord, len(w.searchPage.Repos))
	copy(page.Repos, w.searchPage.Repos)
	for i := range page.Repos {
		if page.Repos[i].ID == id {
			page.Repos[i].IsStarred = starred
		}
	}
	return &page
}

// searchPageWithout returns a snapshot copy with the record removed.
// Caller holds the lock.
func (w *WorkingSet) searchPageWithout(id int64) *domain.SearchPage {
	if w.searchPage == nil {
		return nil
	}
	page := *w.searchPage
	page.Repos = make([]domain.RepositoryRecord, 0, len(w.searchPage.Repos))
	for _, r := range w.searchPage.Repos {
		if r.ID == id {
			continue
		}
		page.Repos = append(page.Repos, r)
	}
	if len(page.Repos) < len(w.searchPage.Repos) {
		if page.TotalCount > 0 {
			page.TotalCount--
		}
		if page.RawTotalCount > 0 {
			page.RawTotalCount--
		}
	}
	return &page
}
