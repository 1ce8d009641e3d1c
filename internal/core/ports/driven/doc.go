// Package driven defines the driven ports (secondary ports) of the
// hexagonal architecture: interfaces the core services require from
// infrastructure adapters. The GitHub connector, the radar stores, and
// the config store implement these.
package driven
