package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedTable creates a profile, a log and a two-column inventory table
// with three rows of ticker data, returning the column and row IDs.
func seedTable(t *testing.T, env *TestEnv) (tickerCol, qtyCol string, rows []string) {
	t.Helper()

	env.MustRun("profile", "use", "maja")
	env.MustRun("log", "create")

	result := env.MustRun("column", "add", "Ticker", "-s", "inventory", "--json")
	tickerCol = ParseJSON[Column](t, result.Stdout).ColumnID
	result = env.MustRun("column", "add", "Qty", "-s", "inventory", "--json")
	qtyCol = ParseJSON[Column](t, result.Stdout).ColumnID

	for _, ticker := range []string{"msft", "AAPL", "goog"} {
		result = env.MustRun("row", "add", "-s", "inventory", "--json")
		rowID := ParseJSON[Row](t, result.Stdout).RowID
		env.MustRun("cell", "set", rowID, tickerCol, ticker, "-s", "inventory")
		rows = append(rows, rowID)
	}
	return tickerCol, qtyCol, rows
}

// inventoryRows reads the inventory section back through the JSON
// output of log list.
func inventoryRows(t *testing.T, env *TestEnv) []Row {
	t.Helper()

	result := env.MustRun("log", "list", "--json")
	logs := ParseJSON[[]Log](t, result.Stdout)
	require.Len(t, logs, 1)
	for _, sec := range logs[0].Sections {
		if sec.Name == "inventory" {
			return sec.Table.Rows
		}
	}
	t.Fatal("inventory section missing")
	return nil
}

func TestCellEditsPersist(t *testing.T) {
	env := NewTestEnv(t)
	tickerCol, qtyCol, rows := seedTable(t, env)

	env.MustRun("cell", "set", rows[0], qtyCol, "12", "-s", "inventory")

	got := inventoryRows(t, env)
	require.Len(t, got, 3)
	assert.Equal(t, "msft", got[0].Values[tickerCol])
	assert.Equal(t, "12", got[0].Values[qtyCol])
	_, hasQty := got[1].Values[qtyCol]
	assert.False(t, hasQty, "untouched cells stay absent")
}

func TestSortCycleAcrossInvocations(t *testing.T) {
	env := NewTestEnv(t)
	tickerCol, _, _ := seedTable(t, env)

	// First toggle: ascending, case-insensitive.
	result := env.MustRun("sort", tickerCol, "-s", "inventory")
	assert.Contains(t, result.Stdout, "Sorted asc")

	// Second toggle, in a fresh process: descending.
	result = env.MustRun("sort", tickerCol, "-s", "inventory")
	assert.Contains(t, result.Stdout, "Sorted desc")

	// Third toggle clears sorting.
	result = env.MustRun("sort", tickerCol, "-s", "inventory")
	assert.Contains(t, result.Stdout, "Sorting cleared")

	// Stored rows keep insertion order regardless of the sort view.
	got := inventoryRows(t, env)
	require.Len(t, got, 3)
	assert.Equal(t, "msft", got[0].Values[tickerCol])
	assert.Equal(t, "AAPL", got[1].Values[tickerCol])
	assert.Equal(t, "goog", got[2].Values[tickerCol])
}

func TestDeleteColumnPurgesValues(t *testing.T) {
	env := NewTestEnv(t)
	tickerCol, qtyCol, rows := seedTable(t, env)

	env.MustRun("cell", "set", rows[0], qtyCol, "12", "-s", "inventory")
	env.MustRun("column", "delete", qtyCol, "-s", "inventory")

	got := inventoryRows(t, env)
	for _, row := range got {
		_, ok := row.Values[qtyCol]
		assert.False(t, ok, "deleted column's values must be purged")
	}

	// Setting a cell on the deleted column now fails.
	result := env.Run("cell", "set", rows[0], qtyCol, "5", "-s", "inventory")
	assert.NotEqual(t, 0, result.ExitCode)

	// The remaining column is untouched.
	assert.Equal(t, "msft", got[0].Values[tickerCol])
}

func TestDeleteRowFromSection(t *testing.T) {
	env := NewTestEnv(t)
	tickerCol, _, rows := seedTable(t, env)

	env.MustRun("row", "delete", rows[1], "-s", "inventory")

	got := inventoryRows(t, env)
	require.Len(t, got, 2)
	assert.Equal(t, "msft", got[0].Values[tickerCol])
	assert.Equal(t, "goog", got[1].Values[tickerCol])
}

func TestRenameColumnKeepsValues(t *testing.T) {
	env := NewTestEnv(t)
	tickerCol, _, _ := seedTable(t, env)

	env.MustRun("column", "rename", tickerCol, "Symbol", "-s", "inventory")

	result := env.MustRun("column", "list", "-s", "inventory")
	assert.Contains(t, result.Stdout, "Symbol")
	assert.NotContains(t, result.Stdout, "Ticker")

	got := inventoryRows(t, env)
	assert.Equal(t, "msft", got[0].Values[tickerCol], "values key on column ID, not the name")
}

func TestSummarizeDryRunPrintsPrompt(t *testing.T) {
	env := NewTestEnv(t)
	seedTable(t, env)

	result := env.MustRun("summarize", "--dry-run")
	assert.Contains(t, result.Stdout, "# Stock log ")
	assert.Contains(t, result.Stdout, "msft")
}

func TestLogShowPlain(t *testing.T) {
	env := NewTestEnv(t)
	seedTable(t, env)

	result := env.MustRun("log", "show", "--plain")
	assert.Contains(t, result.Stdout, "## Inventory")
	assert.Contains(t, result.Stdout, "AAPL")
}
