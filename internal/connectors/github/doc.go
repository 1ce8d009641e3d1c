// Package github implements the StarGateway port against the GitHub
// REST API using go-github.
//
// # Components
//
//   - Client: API communication with lazy authentication and rate limiting
//   - Limiter: dual-strategy rate limiting (proactive token bucket plus
//     reactive header tracking)
//   - Classify: maps upstream failures onto the domain error taxonomy
//
// # Count probe
//
// The starred listing does not return a total count in the body. The
// client infers it from pagination metadata: a probe with per_page=1
// makes the Link header's last-page pointer equal to the total number
// of starred repositories. A missing pointer means the probe body holds
// the entire listing.
//
// # Authentication
//
// A personal access token is obtained from the configured TokenProvider
// on first use. Authenticated requests get 5,000 calls per hour;
// unauthenticated requests are limited to 60 per hour and are not
// supported.
package github
