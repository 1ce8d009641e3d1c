package github

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/starradar-cli/internal/core/domain"
	"github.com/custodia-labs/starradar-cli/internal/core/ports/driven"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Ensure Client implements the gateway port.
var _ driven.StarGateway = (*Client)(nil)

// Client wraps the go-github client with rate limiting and error
// classification. It implements driven.StarGateway.
type Client struct {
	gh            *gh.Client
	tokenProvider driven.TokenProvider
	limiter       *Limiter
}

// NewClient creates a new GitHub API client with a token provider.
// The underlying client is initialised lazily so the token is only
// fetched when needed.
func NewClient(tokenProvider driven.TokenProvider) *Client {
	return &Client{
		tokenProvider: tokenProvider,
		limiter:       NewLimiter(),
	}
}

// NewClientWithToken creates a GitHub client with a static access token.
// Works for both PAT and OAuth access tokens.
func NewClientWithToken(ctx context.Context, token string) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout

	return &Client{
		gh:      gh.NewClient(tc),
		limiter: NewLimiter(),
	}
}

// NewClientWithHTTPClient creates a GitHub client with a custom
// http.Client. Used by tests to point at a stub server.
func NewClientWithHTTPClient(httpClient *http.Client) *Client {
	return &Client{
		gh:      gh.NewClient(httpClient),
		limiter: NewLimiter(),
	}
}

// GitHub returns the underlying go-github client.
func (c *Client) GitHub() *gh.Client {
	return c.gh
}

// ensureClient initializes the go-github client if not already done.
func (c *Client) ensureClient(ctx context.Context) error {
	if c.gh != nil {
		return nil
	}

	token, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return fmt.Errorf("get token: %w", err)
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout
	c.gh = gh.NewClient(tc)

	return nil
}

// CountStarred returns the total number of starred repositories via a
// minimal-page-size probe. With per_page=1 the Link header's last page
// number is the total; no Link header means the probe body already
// holds everything.
func (c *Client) CountStarred(ctx context.Context) (int, error) {
	if err := c.ensureClient(ctx); err != nil {
		return 0, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	opts := &gh.ActivityListStarredOptions{
		ListOptions: gh.ListOptions{PerPage: 1},
	}
	stars, resp, err := c.gh.Activity.ListStarred(ctx, "", opts)
	if err != nil {
		return 0, Classify(err)
	}
	c.updateLimiter(resp)

	if resp.LastPage > 0 {
		return resp.LastPage, nil
	}
	return len(stars), nil
}

// ListStarredPage fetches one page of the authenticated user's starred
// repositories, newest star first.
func (c *Client) ListStarredPage(ctx context.Context, page, perPage int) ([]domain.RepositoryRecord, error) {
	if err := c.ensureClient(ctx); err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	opts := &gh.ActivityListStarredOptions{
		Sort:      "created",
		Direction: "desc",
		ListOptions: gh.ListOptions{
			Page:    page,
			PerPage: perPage,
		},
	}
	stars, resp, err := c.gh.Activity.ListStarred(ctx, "", opts)
	if err != nil {
		return nil, Classify(err)
	}
	c.updateLimiter(resp)

	return recordsFromStarred(stars), nil
}

// SearchRepositories runs a platform-wide repository search. Totals
// are reported raw; the search router applies the index ceiling.
func (c *Client) SearchRepositories(
	ctx context.Context, query string, sort domain.SortKey, page, perPage int,
) (*domain.SearchPage, error) {
	if err := c.ensureClient(ctx); err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	opts := &gh.SearchOptions{
		Sort:  searchSort(sort),
		Order: "desc",
		ListOptions: gh.ListOptions{
			Page:    page,
			PerPage: perPage,
		},
	}
	result, resp, err := c.gh.Search.Repositories(ctx, query, opts)
	if err != nil {
		return nil, Classify(err)
	}
	c.updateLimiter(resp)

	records := make([]domain.RepositoryRecord, 0, len(result.Repositories))
	for _, repo := range result.Repositories {
		records = append(records, recordFromRepository(repo, time.Time{}, false))
	}

	total := result.GetTotal()
	return &domain.SearchPage{
		Repos:         records,
		TotalCount:    total,
		RawTotalCount: total,
		Page:          page,
		PerPage:       perPage,
	}, nil
}

// GetRepository fetches a single repository. Starred status is not
// resolved here; the stars service consults the working set.
func (c *Client) GetRepository(ctx context.Context, owner, name string) (*domain.RepositoryRecord, error) {
	if err := c.ensureClient(ctx); err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	repo, resp, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, Classify(err)
	}
	c.updateLimiter(resp)

	record := recordFromRepository(repo, time.Time{}, false)
	return &record, nil
}

// IsStarred checks whether the authenticated user starred the repository.
func (c *Client) IsStarred(ctx context.Context, owner, name string) (bool, error) {
	if err := c.ensureClient(ctx); err != nil {
		return false, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return false, err
	}

	starred, resp, err := c.gh.Activity.IsStarred(ctx, owner, name)
	if err != nil {
		return false, Classify(err)
	}
	c.updateLimiter(resp)

	return starred, nil
}

// Star stars a repository. Success is a no-content response upstream.
func (c *Client) Star(ctx context.Context, owner, name string) error {
	if err := c.ensureClient(ctx); err != nil {
		return err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	resp, err := c.gh.Activity.Star(ctx, owner, name)
	if err != nil {
		return Classify(err)
	}
	c.updateLimiter(resp)

	return nil
}

// Unstar removes a star.
func (c *Client) Unstar(ctx context.Context, owner, name string) error {
	if err := c.ensureClient(ctx); err != nil {
		return err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	resp, err := c.gh.Activity.Unstar(ctx, owner, name)
	if err != nil {
		return Classify(err)
	}
	c.updateLimiter(resp)

	return nil
}

// RateLimit returns the current upstream call budget. The probe itself
// does not count against the budget.
func (c *Client) RateLimit(ctx context.Context) (*domain.RateLimitStatus, error) {
	if err := c.ensureClient(ctx); err != nil {
		return nil, err
	}

	limits, resp, err := c.gh.RateLimit.Get(ctx)
	if err != nil {
		return nil, Classify(err)
	}
	c.updateLimiter(resp)

	core := limits.GetCore()
	if core == nil {
		return nil, fmt.Errorf("%w: rate limit response missing core resource", domain.ErrUpstream)
	}
	return &domain.RateLimitStatus{
		Remaining: core.Remaining,
		Limit:     core.Limit,
		ResetAt:   core.Reset.Time,
	}, nil
}

// Limiter returns the client-side rate limiter for external access.
func (c *Client) Limiter() *Limiter {
	return c.limiter
}

// updateLimiter feeds response headers into the client-side limiter.
func (c *Client) updateLimiter(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.limiter.UpdateFromResponse(resp.Response)
}
