// Package services implements the application core use cases behind
// the driving ports.
//
// The pieces fit together as follows:
//
//   - Aggregator turns the paginated upstream starred listing into one
//     sorted, deduplicated StarredCollection (count probe, concurrent
//     page fan-out, merge).
//   - WorkingSet caches the latest collection plus derived views and
//     applies optimistic star/unstar mutations to all of them at once.
//   - Lifecycle issues per-operation cancellation tokens so a
//     superseded in-flight search is discarded, never applied.
//   - SearchService routes a query to the upstream search endpoint
//     (platform-wide mode) or to a local filter/sort/slice pass over
//     the aggregated corpus (starred mode).
//   - StarsService and RadarsService compose the above behind the
//     driving ports consumed by the CLI.
package services
