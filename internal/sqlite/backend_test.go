package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/stockbook/pkg/types"
)

func testConfig(t *testing.T) types.Config {
	t.Helper()
	return types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
}

func TestAttachCreatesDataDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "nested", "data")
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}))
	defer b.Detach()

	_, err := os.Stat(filepath.Join(dataDir, dbFileName))
	assert.NoError(t, err)
}

func TestAttachTwiceFails(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(testConfig(t)))
	defer b.Detach()

	assert.ErrorIs(t, b.Attach(testConfig(t)), types.ErrAlreadyAttached)
}

func TestAttachValidatesConfig(t *testing.T) {
	b := NewBackend()
	assert.ErrorIs(t, b.Attach(types.Config{Backend: "postgres"}), types.ErrBackendUnknown)
}

func TestDetachIsIdempotent(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(testConfig(t)))

	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach())
}

func TestGetSetRoundtrip(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(testConfig(t)))
	defer b.Detach()

	require.NoError(t, b.Set(types.SlotLogs, `{"logs":[]}`))

	got, err := b.Get(types.SlotLogs)
	require.NoError(t, err)
	assert.Equal(t, `{"logs":[]}`, got)
}

func TestSetRewritesSlotWholesale(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(testConfig(t)))
	defer b.Detach()

	require.NoError(t, b.Set(types.SlotProfiles, `["maja"]`))
	require.NoError(t, b.Set(types.SlotProfiles, `["maja","tomas"]`))

	got, err := b.Get(types.SlotProfiles)
	require.NoError(t, err)
	assert.Equal(t, `["maja","tomas"]`, got)
}

func TestGetMissingSlot(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(testConfig(t)))
	defer b.Detach()

	_, err := b.Get(types.SlotSession)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestOperationsAfterDetach(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(testConfig(t)))
	require.NoError(t, b.Detach())

	_, err := b.Get(types.SlotLogs)
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	assert.ErrorIs(t, b.Set(types.SlotLogs, "{}"), types.ErrStoreDetached)
}

func TestSnapshotsSurviveReattach(t *testing.T) {
	cfg := testConfig(t)

	b := NewBackend()
	require.NoError(t, b.Attach(cfg))
	require.NoError(t, b.Set(types.SlotSession, `{"current_profile":"maja"}`))
	require.NoError(t, b.Detach())

	b2 := NewBackend()
	require.NoError(t, b2.Attach(cfg))
	defer b2.Detach()

	got, err := b2.Get(types.SlotSession)
	require.NoError(t, err)
	assert.Equal(t, `{"current_profile":"maja"}`, got)
}

func TestEmptyKeyRejected(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(testConfig(t)))
	defer b.Detach()

	_, err := b.Get("")
	assert.ErrorIs(t, err, types.ErrInvalidID)
	assert.ErrorIs(t, b.Set("", "{}"), types.ErrInvalidID)
}
