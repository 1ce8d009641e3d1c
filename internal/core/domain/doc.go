// Package domain defines the core business entities for StarRadar.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RepositoryRecord: A repository with popularity counters and star state
//   - StarredCollection: The aggregated, sorted working set of starred repos
//   - SearchPage: One page of search output, server- or client-paginated
//   - Radar: A named collection of repositories curated by the user
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
