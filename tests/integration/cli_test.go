package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain builds the stockbook binary once for all integration tests.
func TestMain(m *testing.M) {
	projectRoot, err := FindProjectRoot()
	if err != nil {
		buildErr = &BuildError{Err: err, Output: "could not find project root"}
		os.Exit(m.Run())
	}

	tempDir, err := os.MkdirTemp("", "stockbook-integration-*")
	if err != nil {
		buildErr = &BuildError{Err: err, Output: "could not create temp dir"}
		os.Exit(m.Run())
	}
	defer os.RemoveAll(tempDir)

	binPath := filepath.Join(tempDir, "stockbook")
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/stockbook")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	if err != nil {
		buildErr = &BuildError{Err: err, Output: string(output)}
		os.Exit(m.Run())
	}
	stockbookBin = binPath

	os.Exit(m.Run())
}

func TestVersion(t *testing.T) {
	env := NewTestEnv(t)

	result := env.MustRun("version")
	assert.Contains(t, result.Stdout, "stockbook v")
}

func TestInitCreatesDataDir(t *testing.T) {
	env := NewTestEnv(t)

	result := env.MustRun("init")
	assert.Contains(t, result.Stdout, "Initialized stock book in")

	_, err := os.Stat(filepath.Join(env.DataDir, "stockbook.db"))
	assert.NoError(t, err, "init should create the sqlite database file")
}

func TestProfileLifecycle(t *testing.T) {
	env := NewTestEnv(t)

	// No profile selected yet.
	result := env.Run("profile", "current")
	assert.NotEqual(t, 0, result.ExitCode)

	// Selecting a missing name creates the profile.
	result = env.MustRun("profile", "use", "maja")
	assert.Contains(t, result.Stdout, "Acting as maja")

	result = env.MustRun("profile", "current")
	assert.Equal(t, "maja", FirstLine(result.Stdout))

	// The selection survives across invocations.
	env.MustRun("profile", "use", "ivan")
	result = env.MustRun("profile", "current")
	assert.Equal(t, "ivan", FirstLine(result.Stdout))

	// Both profiles remain in the roster.
	result = env.MustRun("profile", "list")
	assert.Contains(t, result.Stdout, "maja")
	assert.Contains(t, result.Stdout, "ivan")

	env.MustRun("profile", "logout")
	result = env.Run("profile", "current")
	assert.NotEqual(t, 0, result.ExitCode)
}

func TestLogCreateRequiresProfile(t *testing.T) {
	env := NewTestEnv(t)

	result := env.Run("log", "create")
	assert.NotEqual(t, 0, result.ExitCode)
	assert.Contains(t, result.Stderr, "no profile selected")
}

func TestLogCreateShape(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRun("profile", "use", "maja")

	result := env.MustRun("log", "create", "--json")
	l := ParseJSON[Log](t, result.Stdout)

	assert.NotEmpty(t, l.LogID)
	assert.Equal(t, "maja", l.Author)
	assert.False(t, l.Locked)

	require.Len(t, l.Sections, 4)
	names := make([]string, 0, 4)
	for _, sec := range l.Sections {
		names = append(names, sec.Name)
		assert.Len(t, sec.Table.Columns, 1, "new section starts with one column")
		assert.Empty(t, sec.Table.Rows, "new section starts with zero rows")
	}
	assert.Equal(t, []string{"inventory", "purchases", "sales", "adjustments"}, names)
}

func TestLogListAndFilter(t *testing.T) {
	env := NewTestEnv(t)

	env.MustRun("profile", "use", "maja")
	env.MustRun("log", "create")
	env.MustRun("profile", "use", "ivan")
	env.MustRun("log", "create")

	result := env.MustRun("log", "list", "--json")
	logs := ParseJSON[[]Log](t, result.Stdout)
	require.Len(t, logs, 2)

	// Free-text query matches author substrings case-insensitively.
	result = env.MustRun("log", "list", "--query", "MAJ", "--json")
	logs = ParseJSON[[]Log](t, result.Stdout)
	require.Len(t, logs, 1)
	assert.Equal(t, "maja", logs[0].Author)

	// Exact author filter.
	result = env.MustRun("log", "list", "--author", "ivan", "--json")
	logs = ParseJSON[[]Log](t, result.Stdout)
	require.Len(t, logs, 1)
	assert.Equal(t, "ivan", logs[0].Author)

	// A query matching nothing yields an empty set, not an error.
	result = env.MustRun("log", "list", "--query", "1999", "--json")
	logs = ParseJSON[[]Log](t, result.Stdout)
	assert.Empty(t, logs)
}

func TestLogDeleteAuthorOnly(t *testing.T) {
	env := NewTestEnv(t)

	env.MustRun("profile", "use", "maja")
	result := env.MustRun("log", "create", "--json")
	l := ParseJSON[Log](t, result.Stdout)

	// A different profile may not delete it.
	env.MustRun("profile", "use", "ivan")
	result = env.Run("log", "delete", l.LogID, "--yes")
	assert.NotEqual(t, 0, result.ExitCode)
	assert.Contains(t, result.Stderr, "only the author")

	// The author may.
	env.MustRun("profile", "use", "maja")
	result = env.MustRun("log", "delete", l.LogID, "--yes")
	assert.Contains(t, result.Stdout, "Deleted log")

	result = env.MustRun("log", "list", "--json")
	logs := ParseJSON[[]Log](t, result.Stdout)
	assert.Empty(t, logs)
}

func TestLockBlocksEditsUntilUnlocked(t *testing.T) {
	env := NewTestEnv(t)

	env.MustRun("profile", "use", "maja")
	env.MustRun("log", "create")

	env.MustRun("log", "lock")
	result := env.Run("column", "add", "Ticker", "-s", "inventory")
	assert.NotEqual(t, 0, result.ExitCode)
	assert.Contains(t, result.Stderr, "locked")

	// Locking an already locked log is a no-op, not an error.
	result = env.MustRun("log", "lock")
	assert.Contains(t, result.Stdout, "already locked")

	env.MustRun("log", "unlock")
	env.MustRun("column", "add", "Ticker", "-s", "inventory")
}

func TestForeignLogIsReadOnly(t *testing.T) {
	env := NewTestEnv(t)

	env.MustRun("profile", "use", "maja")
	result := env.MustRun("log", "create", "--json")
	l := ParseJSON[Log](t, result.Stdout)

	env.MustRun("profile", "use", "ivan")

	result = env.Run("column", "add", "Ticker", "--log", l.LogID, "-s", "inventory")
	assert.NotEqual(t, 0, result.ExitCode)
	assert.Contains(t, result.Stderr, "read-only")

	result = env.Run("log", "lock", l.LogID)
	assert.NotEqual(t, 0, result.ExitCode)
	assert.Contains(t, result.Stderr, "only the author")
}

func TestDuplicateForeignLockedLog(t *testing.T) {
	env := NewTestEnv(t)

	env.MustRun("profile", "use", "maja")
	result := env.MustRun("log", "create", "--json")
	original := ParseJSON[Log](t, result.Stdout)

	env.MustRun("column", "add", "Ticker", "-s", "purchases")
	env.MustRun("log", "lock")

	// A foreign profile duplicates the locked log as a template.
	env.MustRun("profile", "use", "ivan")
	result = env.MustRun("log", "duplicate", original.LogID, "--json")
	dup := ParseJSON[Log](t, result.Stdout)

	assert.NotEqual(t, original.LogID, dup.LogID)
	assert.Equal(t, "ivan", dup.Author)
	assert.False(t, dup.Locked, "duplicates always start unlocked")

	var purchases *Section
	for i := range dup.Sections {
		if dup.Sections[i].Name == "purchases" {
			purchases = &dup.Sections[i]
		}
	}
	require.NotNil(t, purchases)
	assert.Len(t, purchases.Table.Columns, 2, "duplicate carries the copied columns")

	// The duplicate is immediately editable by its new author.
	env.MustRun("row", "add", "--log", dup.LogID, "-s", "purchases")
}

func TestSelectionPersistsAcrossInvocations(t *testing.T) {
	env := NewTestEnv(t)

	env.MustRun("profile", "use", "maja")
	result := env.MustRun("log", "create", "--json")
	first := ParseJSON[Log](t, result.Stdout)
	env.MustRun("log", "create")

	// Re-select the first log; table commands without --log use it.
	env.MustRun("log", "use", first.LogID)

	result = env.MustRun("column", "add", "Ticker", "-s", "inventory", "--json")
	added := ParseJSON[Column](t, result.Stdout)
	assert.Equal(t, "Ticker", added.Name)

	result = env.MustRun("column", "list", "-s", "inventory", "--log", first.LogID)
	assert.Contains(t, result.Stdout, "Ticker")
}

func TestUnknownSectionRejected(t *testing.T) {
	env := NewTestEnv(t)

	env.MustRun("profile", "use", "maja")
	env.MustRun("log", "create")

	result := env.Run("column", "add", "Ticker", "-s", "dividends")
	assert.NotEqual(t, 0, result.ExitCode)
	assert.Contains(t, result.Stderr, "unknown section")
}

func TestExportMarkdown(t *testing.T) {
	env := NewTestEnv(t)

	env.MustRun("profile", "use", "maja")
	env.MustRun("log", "create")
	result := env.MustRun("column", "add", "Ticker", "-s", "inventory", "--json")
	col := ParseJSON[Column](t, result.Stdout)
	result = env.MustRun("row", "add", "-s", "inventory", "--json")
	row := ParseJSON[Row](t, result.Stdout)
	env.MustRun("cell", "set", row.RowID, col.ColumnID, "AAPL", "-s", "inventory")

	outPath := filepath.Join(env.TempDir, "log.md")
	env.MustRun("export", "--out", outPath)

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	text := string(content)
	assert.True(t, strings.HasPrefix(text, "# Stock log "))
	assert.Contains(t, text, "Author: maja")
	assert.Contains(t, text, "## Inventory")
	assert.Contains(t, text, "AAPL")
}

func TestExportHTML(t *testing.T) {
	env := NewTestEnv(t)

	env.MustRun("profile", "use", "maja")
	env.MustRun("log", "create")

	outPath := filepath.Join(env.TempDir, "log.html")
	env.MustRun("export", "--out", outPath, "--format", "html")

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<table>")
}
