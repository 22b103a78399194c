package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/stockbook/pkg/types"
)

func sampleLog(t *testing.T) *types.Log {
	t.Helper()
	l := types.NewLog("maja")
	l.Date = "2026-08-26"

	sec, err := l.Section(types.SectionSales)
	require.NoError(t, err)
	require.NoError(t, sec.Table.RenameColumn(sec.Table.Columns[0].ColumnID, "Item"))
	qty := sec.Table.AddColumn("Qty")

	item := sec.Table.Columns[0]
	r1 := sec.Table.AddRow()
	r2 := sec.Table.AddRow()
	require.NoError(t, sec.Table.SetCell(r1.RowID, item.ColumnID, "whisky"))
	require.NoError(t, sec.Table.SetCell(r1.RowID, qty.ColumnID, "2"))
	require.NoError(t, sec.Table.SetCell(r2.RowID, item.ColumnID, "ale"))
	return l
}

func TestRenderHeader(t *testing.T) {
	l := sampleLog(t)
	got := Render(l)

	assert.Contains(t, got, "# Stock log 2026-08-26")
	assert.Contains(t, got, "Author: maja")
	assert.NotContains(t, got, "(locked)")

	l.Locked = true
	assert.Contains(t, Render(l), "(locked)")
}

func TestRenderSections(t *testing.T) {
	got := Render(sampleLog(t))

	for _, heading := range []string{"## Inventory", "## Purchases", "## Sales", "## Adjustments"} {
		assert.Contains(t, got, heading)
	}
	assert.Contains(t, got, "| Item | Qty |")
	assert.Contains(t, got, "| --- | --- |")
	assert.Contains(t, got, "| whisky | 2 |")
	assert.Contains(t, got, "| ale |  |")
}

func TestRenderHonorsSortView(t *testing.T) {
	l := sampleLog(t)
	sec, err := l.Section(types.SectionSales)
	require.NoError(t, err)
	require.NoError(t, sec.Table.ToggleSort(sec.Table.Columns[0].ColumnID))

	got := Render(l)
	assert.Less(t, indexOf(t, got, "| ale |"), indexOf(t, got, "| whisky |"))
}

func TestRenderEscapesCells(t *testing.T) {
	l := types.NewLog("maja")
	sec, err := l.Section(types.SectionInventory)
	require.NoError(t, err)
	col := sec.Table.Columns[0]
	row := sec.Table.AddRow()
	require.NoError(t, sec.Table.SetCell(row.RowID, col.ColumnID, "a|b\nc"))

	got := Render(l)
	assert.Contains(t, got, `a\|b c`)
}

func TestRenderHTML(t *testing.T) {
	got, err := RenderHTML(sampleLog(t))
	require.NoError(t, err)

	html := string(got)
	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "<title>Stock log 2026-08-26</title>")
	// GFM table extension turns the pipe table into real table markup.
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<td>whisky</td>")
}

func indexOf(t *testing.T, s, sub string) int {
	t.Helper()
	idx := strings.Index(s, sub)
	require.GreaterOrEqual(t, idx, 0, "%q not found in rendered output", sub)
	return idx
}
