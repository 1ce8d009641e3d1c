package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/starradar-cli/internal/core/domain"
)

// RateLimitError represents a rate limit exceeded error with reset time.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("github: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// Unwrap ties the error into the domain taxonomy so that
// errors.Is(err, domain.ErrRateLimited) holds.
func (e *RateLimitError) Unwrap() error {
	return domain.ErrRateLimited
}

// APIError represents an unclassified GitHub API error response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Unwrap ties the error into the domain taxonomy so that
// errors.Is(err, domain.ErrUpstream) holds.
func (e *APIError) Unwrap() error {
	return domain.ErrUpstream
}

// Classify maps a go-github call outcome onto the domain error
// taxonomy. Every caller consumes this classification uniformly, so
// e.g. domain.ErrAuthExpired can trigger a forced sign-out regardless
// of which operation produced it.
//
// Rules:
//
//	401                          -> domain.ErrAuthExpired
//	403 with zero rate remaining -> *RateLimitError (domain.ErrRateLimited)
//	403 otherwise                -> domain.ErrForbidden
//	404                          -> domain.ErrNotFound
//	422                          -> domain.ErrInvalidQuery
//	other non-2xx                -> *APIError (domain.ErrUpstream)
//	no response received         -> domain.ErrNetwork
//
// Context cancellation passes through unchanged so supersession is
// never mistaken for a failure.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return &RateLimitError{
			ResetAt:   rateErr.Rate.Reset.Time,
			Remaining: rateErr.Rate.Remaining,
			Limit:     rateErr.Rate.Limit,
		}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		resetAt := time.Now()
		if abuseErr.RetryAfter != nil {
			resetAt = resetAt.Add(*abuseErr.RetryAfter)
		}
		return &RateLimitError{ResetAt: resetAt}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return classifyStatus(ghErr.Response, ghErr.Message)
	}

	return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
}

// classifyStatus maps an HTTP status plus headers to a domain error.
func classifyStatus(resp *http.Response, message string) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", domain.ErrAuthExpired, message)

	case http.StatusForbidden, http.StatusTooManyRequests:
		if remaining := resp.Header.Get(headerRateRemaining); remaining == "0" {
			rle := &RateLimitError{}
			if reset := resp.Header.Get(headerRateReset); reset != "" {
				if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
					rle.ResetAt = time.Unix(val, 0)
				}
			}
			if limit := resp.Header.Get(headerRateLimit); limit != "" {
				if val, err := strconv.Atoi(limit); err == nil {
					rle.Limit = val
				}
			}
			return rle
		}
		return fmt.Errorf("%w: %s", domain.ErrForbidden, message)

	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, message)

	case http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", domain.ErrInvalidQuery, message)

	default:
		url := ""
		if resp.Request != nil && resp.Request.URL != nil {
			url = resp.Request.URL.String()
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    message,
			URL:        url,
		}
	}
}
