// Package types defines the entities of the stockbook record keeper
// (profiles, logs, sections, tables), the SnapshotStore interface, and
// the standard errors shared across the module.
package types
