package github

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/starradar-cli/internal/core/domain"
)

const (
	// authenticatedQuota is the authenticated rate limit (5000/hour).
	authenticatedQuota = 5000

	// proactiveRate is the proactive throttle rate (~1.2 req/sec = 4320/hr).
	proactiveRate = 1.2

	// minBuffer is the minimum remaining requests before waiting for reset.
	minBuffer = 100

	// headerRateLimit is the rate limit header.
	headerRateLimit = "X-RateLimit-Limit"

	// headerRateRemaining is the remaining requests header.
	headerRateRemaining = "X-RateLimit-Remaining"

	// headerRateReset is the reset timestamp header (Unix seconds).
	headerRateReset = "X-RateLimit-Reset"
)

// Limiter implements dual-strategy rate limiting for the GitHub API:
// a token bucket throttles proactively while response headers feed the
// reactive budget check.
type Limiter struct {
	mu        sync.Mutex
	remaining int
	limit     int
	resetTime time.Time
	bucket    *rate.Limiter
}

// NewLimiter creates a rate limiter with proactive throttling.
func NewLimiter() *Limiter {
	return &Limiter{
		remaining: authenticatedQuota, // assume full quota initially
		limit:     authenticatedQuota,
		bucket:    rate.NewLimiter(rate.Limit(proactiveRate), 1),
	}
}

// Wait blocks until it's safe to make a request. When the remaining
// budget drops under the buffer it waits for the reset instead.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.bucket.Wait(ctx); err != nil {
		return err
	}

	l.mu.Lock()
	remaining := l.remaining
	resetTime := l.resetTime
	l.mu.Unlock()

	if remaining < minBuffer && time.Now().Before(resetTime) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(resetTime)):
		}
	}

	return nil
}

// UpdateFromResponse updates rate limit state from response headers.
func (l *Limiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if remaining := resp.Header.Get(headerRateRemaining); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			l.remaining = val
		}
	}
	if limit := resp.Header.Get(headerRateLimit); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			l.limit = val
		}
	}
	if reset := resp.Header.Get(headerRateReset); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			l.resetTime = time.Unix(val, 0)
		}
	}
}

// Status returns the tracked budget as a read-only snapshot.
func (l *Limiter) Status() domain.RateLimitStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	return domain.RateLimitStatus{
		Remaining: l.remaining,
		Limit:     l.limit,
		ResetAt:   l.resetTime,
	}
}
