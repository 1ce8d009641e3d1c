package domain

import "time"

// SearchTotalCeiling is the maximum number of results GitHub's search
// index reports, regardless of the true match count. Reported totals
// are clamped to this value.
const SearchTotalCeiling = 1000

// StarredCollection is the outcome of one aggregation run over the
// user's starred repositories.
//
// Repos are sorted by descending star count (the aggregation's
// canonical order) and contain no duplicate ids. A collection is
// immutable after creation; the next aggregation run supersedes it
// with a new value rather than mutating it in place.
type StarredCollection struct {
	// Repos is the aggregated, sorted, deduplicated working set.
	Repos []RepositoryRecord

	// FetchedCount is the number of records actually fetched. It can
	// be lower than TotalStarred when pages were lost to partial
	// failures or a cap was applied.
	FetchedCount int

	// TotalStarred is the true upstream total, from the count probe.
	TotalStarred int

	// IsCapped reports that a fetch cap was supplied and the true
	// total exceeds it.
	IsCapped bool

	// HasMore reports that repositories exist beyond what was fetched.
	HasMore bool
}

// SearchPage is one page of search output, produced either by the
// upstream search endpoint or by a local filter/sort/slice pass over
// the starred corpus. Ephemeral; recomputed per page request.
type SearchPage struct {
	// Repos are the records on this page.
	Repos []RepositoryRecord

	// TotalCount is the total number of matches, clamped to
	// SearchTotalCeiling for platform-wide searches.
	TotalCount int

	// RawTotalCount is the total as reported upstream, before
	// clamping. Equals TotalCount for starred-mode searches.
	RawTotalCount int

	// Clamped reports whether TotalCount was reduced from
	// RawTotalCount.
	Clamped bool

	// Page is the 1-based page number this result covers.
	Page int

	// PerPage is the page size used.
	PerPage int
}

// RateLimitStatus is a read-only snapshot of the upstream call budget.
type RateLimitStatus struct {
	// Remaining is the number of calls left in the current window.
	Remaining int

	// Limit is the budget ceiling for the window.
	Limit int

	// ResetAt is when the budget resets.
	ResetAt time.Time
}
