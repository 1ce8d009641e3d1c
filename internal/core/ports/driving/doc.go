// Package driving defines the driving ports (primary ports) of the
// hexagonal architecture: the use-case interfaces offered to external
// actors such as the CLI adapter.
package driving
