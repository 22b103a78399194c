// Package sqlite provides the public API for the SQLite snapshot store.
// It exposes the factory function while keeping implementation details
// internal.
package sqlite

import (
	"github.com/ledgerline/stockbook/internal/sqlite"
	"github.com/ledgerline/stockbook/pkg/types"
)

// NewBackend creates a new SQLite snapshot store instance.
// The store is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	store := sqlite.NewBackend()
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".stockbook-db",
//	})
//	defer store.Detach()
func NewBackend() types.SnapshotStore {
	return sqlite.NewBackend()
}
