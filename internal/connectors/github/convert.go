package github

import (
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/starradar-cli/internal/core/domain"
)

// recordFromRepository converts a go-github repository to a domain
// record. starredAt is zero for records outside the starred listing.
func recordFromRepository(repo *gh.Repository, starredAt time.Time, starred bool) domain.RepositoryRecord {
	r := domain.RepositoryRecord{
		ID:          repo.GetID(),
		Owner:       repo.GetOwner().GetLogin(),
		Name:        repo.GetName(),
		FullName:    repo.GetFullName(),
		Description: repo.GetDescription(),
		Language:    repo.GetLanguage(),
		Topics:      repo.Topics,
		License:     repo.GetLicense().GetSPDXID(),
		Stars:       repo.GetStargazersCount(),
		Forks:       repo.GetForksCount(),
		Watchers:    repo.GetSubscribersCount(),
		OpenIssues:  repo.GetOpenIssuesCount(),
		CreatedAt:   repo.GetCreatedAt().Time,
		PushedAt:    repo.GetPushedAt().Time,
		UpdatedAt:   repo.GetUpdatedAt().Time,
		StarredAt:   starredAt,
		IsStarred:   starred,
	}
	r.Metrics = r.ComputeMetrics(time.Now())
	return r
}

// recordsFromStarred converts a page of the starred listing.
func recordsFromStarred(stars []*gh.StarredRepository) []domain.RepositoryRecord {
	records := make([]domain.RepositoryRecord, 0, len(stars))
	for _, s := range stars {
		if s.Repository == nil {
			continue
		}
		records = append(records, recordFromRepository(s.Repository, s.GetStarredAt().Time, true))
	}
	return records
}

// searchSort maps a domain sort key onto GitHub's search vocabulary.
// Keys without an upstream equivalent fall back silently to the
// closest supported one; best-match maps to the endpoint's default
// relevance order (empty sort).
func searchSort(key domain.SortKey) string {
	switch key {
	case domain.SortStars:
		return "stars"
	case domain.SortForks:
		return "forks"
	case domain.SortUpdated:
		return "updated"
	case domain.SortStarredAt:
		// No "recently starred" sort exists upstream.
		return "updated"
	case domain.SortHelpWanted:
		return "help-wanted-issues"
	default:
		return ""
	}
}
