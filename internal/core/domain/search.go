package domain

import (
	"sort"
	"strings"
)

// SearchMode selects the search topology.
type SearchMode string

const (
	// SearchModeAll searches all of GitHub via the upstream search
	// endpoint, paginated server-side.
	SearchModeAll SearchMode = "all"

	// SearchModeStarred searches within the user's starred corpus,
	// filtered, sorted, and paginated locally.
	SearchModeStarred SearchMode = "starred"
)

// Valid reports whether the mode is a known search mode.
func (m SearchMode) Valid() bool {
	return m == SearchModeAll || m == SearchModeStarred
}

// SortKey orders search and browse results.
type SortKey string

const (
	// SortStars orders by descending star count.
	SortStars SortKey = "stars"

	// SortForks orders by descending fork count.
	SortForks SortKey = "forks"

	// SortUpdated orders by most recently updated.
	SortUpdated SortKey = "updated"

	// SortStarredAt orders by most recently starred. GitHub's search
	// endpoint has no equivalent; platform-wide searches fall back to
	// SortUpdated.
	SortStarredAt SortKey = "starred"

	// SortHelpWanted orders by descending help-wanted issue count.
	// Only meaningful for platform-wide searches.
	SortHelpWanted SortKey = "help-wanted"

	// SortBestMatch is GitHub's default relevance order.
	SortBestMatch SortKey = "best-match"
)

// Valid reports whether the key is a known sort key.
func (k SortKey) Valid() bool {
	switch k {
	case SortStars, SortForks, SortUpdated, SortStarredAt, SortHelpWanted, SortBestMatch:
		return true
	}
	return false
}

// Query is a parsed search query.
type Query struct {
	// Term is the search text with any exact-match quotes stripped.
	Term string

	// Exact restricts matching to the repository name field only.
	// Signalled by wrapping the query text in quotation marks; both
	// search topologies honour the convention identically.
	Exact bool
}

// ParseQuery interprets the raw query text. Surrounding whitespace is
// trimmed; a term wrapped in double quotes becomes an exact name
// match.
func ParseQuery(raw string) Query {
	term := strings.TrimSpace(raw)
	if len(term) >= 2 && strings.HasPrefix(term, `"`) && strings.HasSuffix(term, `"`) {
		return Query{Term: strings.TrimSpace(term[1 : len(term)-1]), Exact: true}
	}
	return Query{Term: term}
}

// IsEmpty reports whether the query has no search term.
func (q Query) IsEmpty() bool {
	return q.Term == ""
}

// Matches reports whether the record matches the query. Matching is a
// case-insensitive substring test over name, full name, description,
// language, and topics. Exact queries test the name field only. An
// empty query matches everything.
func (q Query) Matches(r *RepositoryRecord) bool {
	if q.IsEmpty() {
		return true
	}

	term := strings.ToLower(q.Term)
	if q.Exact {
		return strings.Contains(strings.ToLower(r.Name), term)
	}

	if strings.Contains(strings.ToLower(r.Name), term) ||
		strings.Contains(strings.ToLower(r.FullName), term) ||
		strings.Contains(strings.ToLower(r.Description), term) ||
		strings.Contains(strings.ToLower(r.Language), term) {
		return true
	}
	for _, topic := range r.Topics {
		if strings.Contains(strings.ToLower(topic), term) {
			return true
		}
	}
	return false
}

// SortRecords orders records in place by the given key. The sort is
// stable: ties keep their original order. Unknown keys (including
// platform-only keys like help-wanted) leave the input order intact.
func SortRecords(repos []RepositoryRecord, key SortKey) {
	switch key {
	case SortStars:
		sort.SliceStable(repos, func(i, j int) bool {
			return repos[i].Stars > repos[j].Stars
		})
	case SortForks:
		sort.SliceStable(repos, func(i, j int) bool {
			return repos[i].Forks > repos[j].Forks
		})
	case SortUpdated:
		sort.SliceStable(repos, func(i, j int) bool {
			return repos[i].UpdatedAt.After(repos[j].UpdatedAt)
		})
	case SortStarredAt:
		sort.SliceStable(repos, func(i, j int) bool {
			return repos[i].StarredAt.After(repos[j].StarredAt)
		})
	}
}
