package types

// Snapshot slot keys. Each slot holds one serialized JSON snapshot,
// rewritten in full whenever the corresponding in-memory state changes.
const (
	// SlotSession holds the current profile pointer and the active log
	// selection.
	SlotSession = "session"

	// SlotProfiles holds the full profile list.
	SlotProfiles = "profiles"

	// SlotLogs holds the full log collection.
	SlotLogs = "logs"
)

// SnapshotStore is string-keyed whole-snapshot storage. Callers attach to
// a backend, read and rewrite slots wholesale, and detach when done. There
// are no partial updates and no versioning.
type SnapshotStore interface {
	// Attach connects the store to the backend described by config.
	// Creates the DataDir if it does not exist. Returns
	// ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls
	// succeed. After Detach, Get and Set return ErrStoreDetached.
	Detach() error

	// Get returns the snapshot stored under key.
	// Returns ErrNotFound if the slot has never been written.
	Get(key string) (string, error)

	// Set rewrites the slot under key with the given snapshot.
	Set(key, value string) error
}
