package sqlite

// Schema DDL for the snapshot store. One row per slot; each slot holds
// a whole serialized snapshot and is rewritten in full on every change.
const createSnapshots = `CREATE TABLE IF NOT EXISTS snapshots (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`
