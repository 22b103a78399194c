// Table editor commands: column and row CRUD, cell edits, and sort
// toggling on one section's table. All of them honor the log's
// authorship and lock rules; a rejected edit changes nothing.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerline/stockbook/pkg/types"
)

// Shared table-editing flag values.
var (
	tableLogID   string
	tableSection string
)

// addTableFlags registers the --log and --section flags shared by all
// table editor commands.
func addTableFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&tableLogID, "log", "", "log ID (default: the active selection)")
	cmd.PersistentFlags().StringVarP(&tableSection, "section", "s", "", "section name: inventory, purchases, sales or adjustments (required)")
	_ = cmd.MarkPersistentFlagRequired("section")
}

// editTable routes a table mutation through the keeper, translating the
// sentinel errors into user-facing messages.
func editTable(fn func(*types.Table) error) error {
	l, err := resolveTableLog()
	if err != nil {
		return err
	}

	err = book.EditTable(l.LogID, tableSection, fn)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, types.ErrNotAuthor):
		return fmt.Errorf("log %s is read-only: only its author (%s) may edit it", shortID(l.LogID), l.Author)
	case errors.Is(err, types.ErrLogLocked):
		return fmt.Errorf("log %s is locked; unlock it first", shortID(l.LogID))
	case errors.Is(err, types.ErrSectionNotFound):
		return fmt.Errorf("unknown section %q (one of: inventory, purchases, sales, adjustments)", tableSection)
	default:
		return err
	}
}

func resolveTableLog() (*types.Log, error) {
	if tableLogID != "" {
		return resolveLog([]string{tableLogID})
	}
	return resolveLog(nil)
}

// currentTable returns the addressed table for commands that only
// inspect state.
func currentTable() (*types.Table, error) {
	l, err := resolveTableLog()
	if err != nil {
		return nil, err
	}
	sec, err := l.Section(tableSection)
	if err != nil {
		return nil, fmt.Errorf("unknown section %q (one of: inventory, purchases, sales, adjustments)", tableSection)
	}
	return &sec.Table, nil
}

var columnCmd = &cobra.Command{
	Use:   "column",
	Short: "Manage a section's columns",
}

var columnAddCmd = &cobra.Command{
	Use:   "add [NAME]",
	Short: "Append a column",
	Long: `Add appends a column to the section's table. Without a name the column
gets a default name; duplicate names are allowed.

Example:
  stockbook column add Qty -s sales
  stockbook column add -s inventory --log 0198c9a1`,
	Args: cobra.MaximumNArgs(1),
	RunE: runColumnAdd,
}

var columnRenameCmd = &cobra.Command{
	Use:   "rename COLUMN_ID NAME",
	Short: "Rename a column in place",
	Args:  cobra.ExactArgs(2),
	RunE:  runColumnRename,
}

var columnDeleteCmd = &cobra.Command{
	Use:   "delete COLUMN_ID",
	Short: "Delete a column and purge its values from every row",
	Args:  cobra.ExactArgs(1),
	RunE:  runColumnDelete,
}

var columnListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a section's columns",
	RunE:  runColumnList,
}

var rowCmd = &cobra.Command{
	Use:   "row",
	Short: "Manage a section's rows",
}

var rowAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append an empty row",
	RunE:  runRowAdd,
}

var rowDeleteCmd = &cobra.Command{
	Use:   "delete ROW_ID",
	Short: "Delete a row",
	Args:  cobra.ExactArgs(1),
	RunE:  runRowDelete,
}

var cellCmd = &cobra.Command{
	Use:   "cell",
	Short: "Edit table cells",
}

var cellSetCmd = &cobra.Command{
	Use:   "set ROW_ID COLUMN_ID VALUE",
	Short: "Set one cell value",
	Long: `Set writes one text value for one row/column pair. Cell content is
free text; nothing is validated.

Example:
  stockbook cell set 0198c9b2 0198c9aa "12 bottles" -s purchases`,
	Args: cobra.ExactArgs(3),
	RunE: runCellSet,
}

var sortCmd = &cobra.Command{
	Use:   "sort COLUMN_ID",
	Short: "Toggle sorting on a column",
	Long: `Sort cycles a column's sort state: ascending, then descending, then
back to the original row order. Sorting is a view; the stored row order
never changes.

Example:
  stockbook sort 0198c9aa -s sales`,
	Args: cobra.ExactArgs(1),
	RunE: runSortToggle,
}

func init() {
	addTableFlags(columnCmd)
	addTableFlags(rowCmd)
	addTableFlags(cellCmd)
	addTableFlags(sortCmd)

	columnCmd.AddCommand(columnAddCmd)
	columnCmd.AddCommand(columnRenameCmd)
	columnCmd.AddCommand(columnDeleteCmd)
	columnCmd.AddCommand(columnListCmd)

	rowCmd.AddCommand(rowAddCmd)
	rowCmd.AddCommand(rowDeleteCmd)

	cellCmd.AddCommand(cellSetCmd)
}

func runColumnAdd(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	var added types.Column
	err := editTable(func(t *types.Table) error {
		added = t.AddColumn(name)
		return nil
	})
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(added)
	}
	fmt.Printf("Added column %q (%s)\n", added.Name, shortID(added.ColumnID))
	return nil
}

func runColumnRename(cmd *cobra.Command, args []string) error {
	err := editTable(func(t *types.Table) error {
		return t.RenameColumn(args[0], args[1])
	})
	if errors.Is(err, types.ErrColumnNotFound) {
		return fmt.Errorf("column %q not found", args[0])
	}
	if err != nil {
		return err
	}
	fmt.Printf("Renamed column %s to %q\n", shortID(args[0]), args[1])
	return nil
}

func runColumnDelete(cmd *cobra.Command, args []string) error {
	err := editTable(func(t *types.Table) error {
		return t.DeleteColumn(args[0])
	})
	if errors.Is(err, types.ErrColumnNotFound) {
		return fmt.Errorf("column %q not found", args[0])
	}
	if err != nil {
		return err
	}
	fmt.Printf("Deleted column %s\n", shortID(args[0]))
	return nil
}

func runColumnList(cmd *cobra.Command, args []string) error {
	t, err := currentTable()
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(t.Columns)
	}
	for _, col := range t.Columns {
		marker := ""
		if t.Sort.ColumnID == col.ColumnID {
			marker = " (" + t.Sort.Direction + ")"
		}
		fmt.Printf("%s  %s%s\n", col.ColumnID, col.Name, marker)
	}
	return nil
}

func runRowAdd(cmd *cobra.Command, args []string) error {
	var added types.Row
	err := editTable(func(t *types.Table) error {
		added = t.AddRow()
		return nil
	})
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(added)
	}
	fmt.Printf("Added row %s\n", shortID(added.RowID))
	return nil
}

func runRowDelete(cmd *cobra.Command, args []string) error {
	err := editTable(func(t *types.Table) error {
		return t.DeleteRow(args[0])
	})
	if errors.Is(err, types.ErrRowNotFound) {
		return fmt.Errorf("row %q not found", args[0])
	}
	if err != nil {
		return err
	}
	fmt.Printf("Deleted row %s\n", shortID(args[0]))
	return nil
}

func runCellSet(cmd *cobra.Command, args []string) error {
	err := editTable(func(t *types.Table) error {
		return t.SetCell(args[0], args[1], args[2])
	})
	switch {
	case errors.Is(err, types.ErrRowNotFound):
		return fmt.Errorf("row %q not found", args[0])
	case errors.Is(err, types.ErrColumnNotFound):
		return fmt.Errorf("column %q not found", args[1])
	case err != nil:
		return err
	}
	fmt.Println("Cell updated")
	return nil
}

func runSortToggle(cmd *cobra.Command, args []string) error {
	var state types.SortState
	err := editTable(func(t *types.Table) error {
		if err := t.ToggleSort(args[0]); err != nil {
			return err
		}
		state = t.Sort
		return nil
	})
	if errors.Is(err, types.ErrColumnNotFound) {
		return fmt.Errorf("column %q not found", args[0])
	}
	if err != nil {
		return err
	}

	if state.Direction == types.SortNone {
		fmt.Println("Sorting cleared; rows back in original order")
	} else {
		fmt.Printf("Sorted %s on column %s\n", state.Direction, shortID(state.ColumnID))
	}
	return nil
}
