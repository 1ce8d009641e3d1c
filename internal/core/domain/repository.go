package domain

import "time"

// trendingMinGrowth is the star growth rate (stars per day since
// creation) above which a repository is considered trending.
const trendingMinGrowth = 5.0

// trendingMaxPushAge is how recently a trending repository must have
// been pushed to.
const trendingMaxPushAge = 30 * 24 * time.Hour

// RepositoryRecord is a repository as seen by StarRadar.
//
// Identity (ID, Owner, Name, FullName) is immutable. Popularity
// counters, timestamps, and starred state are refreshed on each fetch.
// IsStarred may additionally be flipped locally by the star/unstar
// flow ahead of upstream confirmation.
type RepositoryRecord struct {
	// ID is the upstream numeric repository id.
	ID int64

	// Owner is the login of the owning user or organisation.
	Owner string

	// Name is the repository name without the owner.
	Name string

	// FullName is "owner/name".
	FullName string

	// Description is the repository description, possibly empty.
	Description string

	// Language is the primary language, possibly empty.
	Language string

	// Topics are the repository topic tags.
	Topics []string

	// License is the SPDX id of the license, possibly empty.
	License string

	// Stars is the stargazer count.
	Stars int

	// Forks is the fork count.
	Forks int

	// Watchers is the subscriber count.
	Watchers int

	// OpenIssues is the open issue count.
	OpenIssues int

	// CreatedAt is when the repository was created.
	CreatedAt time.Time

	// PushedAt is when the repository last received a push.
	PushedAt time.Time

	// UpdatedAt is when the repository metadata last changed.
	UpdatedAt time.Time

	// StarredAt is when the user starred the repository.
	// Zero for records that did not come from the starred listing.
	StarredAt time.Time

	// IsStarred reports whether the user has starred the repository.
	IsStarred bool

	// Metrics holds client-side derived popularity metrics.
	Metrics RepoMetrics
}

// RepoMetrics holds derived popularity metrics computed locally from
// timestamps and star count. A future server-computed historical
// metric may replace this.
type RepoMetrics struct {
	// GrowthRate is the average stars gained per day since creation.
	GrowthRate float64

	// Trending reports whether the repository is growing quickly and
	// still actively pushed to.
	Trending bool
}

// ComputeMetrics derives RepoMetrics from the record's counters and
// timestamps relative to now. The calculation is deterministic.
func (r *RepositoryRecord) ComputeMetrics(now time.Time) RepoMetrics {
	m := RepoMetrics{}
	if r.CreatedAt.IsZero() || !now.After(r.CreatedAt) {
		return m
	}

	ageDays := now.Sub(r.CreatedAt).Hours() / 24
	if ageDays < 1 {
		ageDays = 1
	}
	m.GrowthRate = float64(r.Stars) / ageDays

	recentlyPushed := !r.PushedAt.IsZero() && now.Sub(r.PushedAt) <= trendingMaxPushAge
	m.Trending = m.GrowthRate >= trendingMinGrowth && recentlyPushed
	return m
}
