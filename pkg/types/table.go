// Table editor entity: the freeform spreadsheet-like structure held by
// every log section, with column/row CRUD and per-column sort cycling.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Sort directions. An empty direction means unsorted (insertion order).
const (
	SortAsc  = "asc"
	SortDesc = "desc"
	SortNone = ""
)

// Column is one table column with a generated ID and a display name.
// Display names are not required to be unique.
type Column struct {
	ColumnID string `json:"column_id"`
	Name     string `json:"name"`
}

// Row is one table row. Values is keyed by column ID and may reference
// any subset of existing columns; absent keys read as empty cells.
type Row struct {
	RowID  string            `json:"row_id"`
	Values map[string]string `json:"values"`
}

// SortState records which column the table is sorted on, if any. Rows
// themselves stay in insertion order; SortedRows applies the view.
type SortState struct {
	ColumnID  string `json:"column_id,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// Table holds ordered columns and rows. Cell values are untyped text;
// no validation is applied to cell content.
type Table struct {
	Columns []Column  `json:"columns"`
	Rows    []Row     `json:"rows"`
	Sort    SortState `json:"sort"`
}

// NewTable returns a table seeded with one default column and no rows.
func NewTable() Table {
	t := Table{}
	t.AddColumn("")
	return t
}

// AddColumn appends a column with a generated ID. An empty name gets the
// default "Column N" where N is the new column count.
func (t *Table) AddColumn(name string) Column {
	if name == "" {
		name = fmt.Sprintf("Column %d", len(t.Columns)+1)
	}
	col := Column{ColumnID: NewID(), Name: name}
	t.Columns = append(t.Columns, col)
	return col
}

// RenameColumn changes a column's display name in place.
// Returns ErrColumnNotFound if no column has the given ID.
func (t *Table) RenameColumn(columnID, name string) error {
	for i := range t.Columns {
		if t.Columns[i].ColumnID == columnID {
			t.Columns[i].Name = name
			return nil
		}
	}
	return ErrColumnNotFound
}

// DeleteColumn removes the column and purges its key from every row's
// value map. If the table was sorted on the deleted column, the sort
// state resets to unsorted.
// Returns ErrColumnNotFound if no column has the given ID.
func (t *Table) DeleteColumn(columnID string) error {
	idx := -1
	for i := range t.Columns {
		if t.Columns[i].ColumnID == columnID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrColumnNotFound
	}
	t.Columns = append(t.Columns[:idx], t.Columns[idx+1:]...)
	for i := range t.Rows {
		delete(t.Rows[i].Values, columnID)
	}
	if t.Sort.ColumnID == columnID {
		t.Sort = SortState{}
	}
	return nil
}

// AddRow appends a row with a generated ID and an empty value map.
func (t *Table) AddRow() Row {
	row := Row{RowID: NewID(), Values: make(map[string]string)}
	t.Rows = append(t.Rows, row)
	return row
}

// SetCell sets one value for one row/column pair. Cell content is not
// validated. Returns ErrRowNotFound or ErrColumnNotFound.
func (t *Table) SetCell(rowID, columnID, value string) error {
	if !t.hasColumn(columnID) {
		return ErrColumnNotFound
	}
	for i := range t.Rows {
		if t.Rows[i].RowID == rowID {
			if t.Rows[i].Values == nil {
				t.Rows[i].Values = make(map[string]string)
			}
			t.Rows[i].Values[columnID] = value
			return nil
		}
	}
	return ErrRowNotFound
}

// DeleteRow removes the row with the given ID.
// Returns ErrRowNotFound if no row has that ID.
func (t *Table) DeleteRow(rowID string) error {
	for i := range t.Rows {
		if t.Rows[i].RowID == rowID {
			t.Rows = append(t.Rows[:i], t.Rows[i+1:]...)
			return nil
		}
	}
	return ErrRowNotFound
}

// ToggleSort cycles the sort state of a column: ascending, then
// descending, then back to unsorted. Toggling a different column starts
// that column at ascending. Returns ErrColumnNotFound.
func (t *Table) ToggleSort(columnID string) error {
	if !t.hasColumn(columnID) {
		return ErrColumnNotFound
	}
	if t.Sort.ColumnID != columnID {
		t.Sort = SortState{ColumnID: columnID, Direction: SortAsc}
		return nil
	}
	switch t.Sort.Direction {
	case SortAsc:
		t.Sort.Direction = SortDesc
	case SortDesc:
		t.Sort = SortState{}
	default:
		t.Sort = SortState{ColumnID: columnID, Direction: SortAsc}
	}
	return nil
}

// SortedRows returns the rows in display order: the stored insertion
// order when unsorted, otherwise a stable case-insensitive lexicographic
// sort on the sort column's text values. Missing cells compare as empty
// strings and ties keep their original relative order.
func (t *Table) SortedRows() []Row {
	rows := make([]Row, len(t.Rows))
	copy(rows, t.Rows)
	if t.Sort.Direction == SortNone {
		return rows
	}
	col := t.Sort.ColumnID
	desc := t.Sort.Direction == SortDesc
	sort.SliceStable(rows, func(i, j int) bool {
		a := strings.ToLower(rows[i].Values[col])
		b := strings.ToLower(rows[j].Values[col])
		if desc {
			return a > b
		}
		return a < b
	})
	return rows
}

// Clone returns a deep copy of the table. Row and column IDs are kept;
// duplication of a log reuses them since IDs only need to be unique
// within one table.
func (t Table) Clone() Table {
	dup := Table{Sort: t.Sort}
	dup.Columns = make([]Column, len(t.Columns))
	copy(dup.Columns, t.Columns)
	dup.Rows = make([]Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		values := make(map[string]string, len(r.Values))
		for k, v := range r.Values {
			values[k] = v
		}
		dup.Rows = append(dup.Rows, Row{RowID: r.RowID, Values: values})
	}
	return dup
}

func (t *Table) hasColumn(columnID string) bool {
	for i := range t.Columns {
		if t.Columns[i].ColumnID == columnID {
			return true
		}
	}
	return false
}
