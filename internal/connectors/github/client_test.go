package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/starradar-cli/internal/core/domain"
)

// newTestClient returns a Client pointed at a stub API server.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClientWithHTTPClient(server.Client())
	base, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.GitHub().BaseURL = base

	return client
}

func starredPageJSON(n int, startID int) string {
	out := "["
	for i := 0; i < n; i++ {
		if i > 0 {
			out += ","
		}
		id := startID + i
		out += fmt.Sprintf(`{"starred_at":"2026-01-02T15:04:05Z","repo":{"id":%d,"name":"repo-%d","full_name":"owner/repo-%d","owner":{"login":"owner"},"stargazers_count":%d}}`, id, id, id, id*10)
	}
	return out + "]"
}

func TestClient_CountStarred(t *testing.T) {
	t.Run("uses last page pointer from Link header", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/user/starred", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "1", r.URL.Query().Get("per_page"))
			w.Header().Set("Link",
				`<https://api.github.com/user/starred?per_page=1&page=2>; rel="next", `+
					`<https://api.github.com/user/starred?per_page=1&page=513>; rel="last"`)
			fmt.Fprint(w, starredPageJSON(1, 1))
		})
		client := newTestClient(t, mux)

		total, err := client.CountStarred(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 513, total)
	})

	t.Run("falls back to body length on single page", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/user/starred", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, starredPageJSON(1, 1))
		})
		client := newTestClient(t, mux)

		total, err := client.CountStarred(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, total)
	})

	t.Run("zero starred repositories", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/user/starred", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, "[]")
		})
		client := newTestClient(t, mux)

		total, err := client.CountStarred(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 0, total)
	})

	t.Run("classifies auth failure", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/user/starred", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"message":"Bad credentials"}`)
		})
		client := newTestClient(t, mux)

		_, err := client.CountStarred(context.Background())

		assert.ErrorIs(t, err, domain.ErrAuthExpired)
	})
}

func TestClient_ListStarredPage(t *testing.T) {
	t.Run("converts starred entries to records", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/user/starred", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "100", r.URL.Query().Get("per_page"))
			fmt.Fprint(w, starredPageJSON(3, 10))
		})
		client := newTestClient(t, mux)

		records, err := client.ListStarredPage(context.Background(), 2, 100)

		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, int64(10), records[0].ID)
		assert.Equal(t, "owner/repo-10", records[0].FullName)
		assert.Equal(t, 100, records[0].Stars)
		assert.True(t, records[0].IsStarred)
		assert.False(t, records[0].StarredAt.IsZero())
	})
}

func TestClient_SearchRepositories(t *testing.T) {
	t.Run("reports raw totals and maps sort", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/search/repositories", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "stars:>=1", r.URL.Query().Get("q"))
			assert.Equal(t, "stars", r.URL.Query().Get("sort"))
			assert.Equal(t, "desc", r.URL.Query().Get("order"))
			fmt.Fprint(w, `{"total_count":4321,"incomplete_results":false,"items":[{"id":7,"name":"linux","full_name":"torvalds/linux","owner":{"login":"torvalds"},"stargazers_count":150000}]}`)
		})
		client := newTestClient(t, mux)

		page, err := client.SearchRepositories(context.Background(), "stars:>=1", domain.SortStars, 1, 30)

		require.NoError(t, err)
		assert.Equal(t, 4321, page.TotalCount)
		assert.Equal(t, 4321, page.RawTotalCount)
		assert.False(t, page.Clamped)
		require.Len(t, page.Repos, 1)
		assert.Equal(t, "torvalds/linux", page.Repos[0].FullName)
		assert.False(t, page.Repos[0].IsStarred)
	})

	t.Run("classifies invalid query", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/search/repositories", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			fmt.Fprint(w, `{"message":"Validation Failed"}`)
		})
		client := newTestClient(t, mux)

		_, err := client.SearchRepositories(context.Background(), "???", domain.SortStars, 1, 30)

		assert.ErrorIs(t, err, domain.ErrInvalidQuery)
	})
}

func TestClient_StarUnstar(t *testing.T) {
	t.Run("star succeeds on no-content", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/user/starred/octocat/hello", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			w.WriteHeader(http.StatusNoContent)
		})
		client := newTestClient(t, mux)

		assert.NoError(t, client.Star(context.Background(), "octocat", "hello"))
	})

	t.Run("unstar succeeds on no-content", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/user/starred/octocat/hello", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			w.WriteHeader(http.StatusNoContent)
		})
		client := newTestClient(t, mux)

		assert.NoError(t, client.Unstar(context.Background(), "octocat", "hello"))
	})

	t.Run("star on missing repository classifies not found", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/user/starred/ghost/gone", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"Not Found"}`)
		})
		client := newTestClient(t, mux)

		err := client.Star(context.Background(), "ghost", "gone")

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestClient_IsStarred(t *testing.T) {
	t.Run("starred repository", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/user/starred/octocat/hello", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		client := newTestClient(t, mux)

		starred, err := client.IsStarred(context.Background(), "octocat", "hello")

		require.NoError(t, err)
		assert.True(t, starred)
	})

	t.Run("unstarred repository is not an error", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/user/starred/octocat/other", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		client := newTestClient(t, mux)

		starred, err := client.IsStarred(context.Background(), "octocat", "other")

		require.NoError(t, err)
		assert.False(t, starred)
	})
}

func TestClient_RateLimit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rate_limit", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"resources":{"core":{"limit":5000,"remaining":4321,"reset":1767225600}}}`)
	})
	client := newTestClient(t, mux)

	status, err := client.RateLimit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4321, status.Remaining)
	assert.Equal(t, 5000, status.Limit)
	assert.False(t, status.ResetAt.IsZero())
}

func TestClient_LimiterTracksResponseHeaders(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/starred", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-RateLimit-Limit", "5000")
		w.Header().Set("X-RateLimit-Remaining", "1234")
		w.Header().Set("X-RateLimit-Reset", "1767225600")
		fmt.Fprint(w, starredPageJSON(1, 1))
	})
	client := newTestClient(t, mux)

	_, err := client.ListStarredPage(context.Background(), 1, 100)
	require.NoError(t, err)

	status := client.Limiter().Status()
	assert.Equal(t, 1234, status.Remaining)
	assert.Equal(t, 5000, status.Limit)
	assert.False(t, status.ResetAt.IsZero())
}
