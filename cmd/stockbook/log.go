// Log lifecycle commands: create, list, show, select, duplicate, delete,
// lock and unlock.
package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ledgerline/stockbook/pkg/keeper"
	"github.com/ledgerline/stockbook/pkg/types"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Manage stock logs",
}

var logCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new log for today",
	Long: `Create starts a new log dated today, authored by the acting profile,
with the four fixed sections each holding an empty table. The new log
becomes the active selection.

Example:
  stockbook log create`,
	RunE: runLogCreate,
}

var (
	listQuery  string
	listAuthor string
	listDesc   bool
)

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logs",
	Long: `List shows the log collection sorted by date. A free-text query
matches a substring of the date or a case-insensitive substring of the
author name; --author narrows to an exact author match.

Example:
  stockbook log list
  stockbook log list --query 2026-08
  stockbook log list --author maja --desc`,
	RunE: runLogList,
}

var logUseCmd = &cobra.Command{
	Use:   "use ID",
	Short: "Select a log as the active one",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogUse,
}

var logDuplicateCmd = &cobra.Command{
	Use:   "duplicate ID",
	Short: "Copy a log as a template for a new one",
	Long: `Duplicate deep-copies an existing log's sections into a new log dated
today, authored by the acting profile, always unlocked. Locked and
foreign logs can be duplicated; that is the template path.

Example:
  stockbook log duplicate 0198c9a1`,
	Args: cobra.ExactArgs(1),
	RunE: runLogDuplicate,
}

var deleteYes bool

var logDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a log (author only)",
	Long: `Delete removes a log from the collection. Only the log's author may
delete it. Without --yes an interactive confirmation is required.

Example:
  stockbook log delete 0198c9a1
  stockbook log delete 0198c9a1 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runLogDelete,
}

var logLockCmd = &cobra.Command{
	Use:   "lock [ID]",
	Short: "Lock a log against edits (author only)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLogLock,
}

var logUnlockCmd = &cobra.Command{
	Use:   "unlock [ID]",
	Short: "Unlock a log for edits (author only)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLogUnlock,
}

func init() {
	logListCmd.Flags().StringVar(&listQuery, "query", "", "free-text filter on date or author")
	logListCmd.Flags().StringVar(&listAuthor, "author", "", "exact author filter")
	logListCmd.Flags().BoolVar(&listDesc, "desc", false, "sort by date descending")

	logDeleteCmd.Flags().BoolVar(&deleteYes, "yes", false, "skip the confirmation prompt")

	logCmd.AddCommand(logCreateCmd)
	logCmd.AddCommand(logListCmd)
	logCmd.AddCommand(logShowCmd)
	logCmd.AddCommand(logUseCmd)
	logCmd.AddCommand(logDuplicateCmd)
	logCmd.AddCommand(logDeleteCmd)
	logCmd.AddCommand(logLockCmd)
	logCmd.AddCommand(logUnlockCmd)
}

func runLogCreate(cmd *cobra.Command, args []string) error {
	if _, err := requireProfile(); err != nil {
		return err
	}

	l, err := book.CreateLog()
	if err != nil {
		return fmt.Errorf("create log: %w", err)
	}
	if err := book.SelectLog(l.LogID); err != nil {
		return fmt.Errorf("select new log: %w", err)
	}

	if flagJSON {
		return printJSON(l)
	}
	fmt.Printf("Created log %s (%s)\n", shortID(l.LogID), l.Date)
	return nil
}

func runLogList(cmd *cobra.Command, args []string) error {
	logs := book.FilterLogs(listQuery, listAuthor)
	logs = keeper.SortByDate(logs, listDesc)

	if flagJSON {
		return printJSON(logs)
	}
	printLogTable(logs)
	return nil
}

func runLogUse(cmd *cobra.Command, args []string) error {
	if err := book.SelectLog(args[0]); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return fmt.Errorf("log %q not found", args[0])
		}
		return fmt.Errorf("select log: %w", err)
	}
	fmt.Printf("Selected log %s\n", shortID(args[0]))
	return nil
}

func runLogDuplicate(cmd *cobra.Command, args []string) error {
	if _, err := requireProfile(); err != nil {
		return err
	}

	dup, err := book.DuplicateLog(args[0])
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return fmt.Errorf("log %q not found", args[0])
		}
		return fmt.Errorf("duplicate log: %w", err)
	}

	if flagJSON {
		return printJSON(dup)
	}
	fmt.Printf("Duplicated into %s (%s)\n", shortID(dup.LogID), dup.Date)
	return nil
}

func runLogDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	l, err := book.GetLog(id)
	if err != nil {
		return fmt.Errorf("log %q not found", id)
	}

	if !deleteYes && !confirm(fmt.Sprintf("Delete log %s (%s)?", shortID(id), l.Date)) {
		fmt.Println("Aborted")
		return nil
	}

	if err := book.DeleteLog(id); err != nil {
		if errors.Is(err, types.ErrNotAuthor) {
			return fmt.Errorf("only the author (%s) may delete this log", l.Author)
		}
		return fmt.Errorf("delete log: %w", err)
	}
	fmt.Printf("Deleted log %s\n", shortID(id))
	return nil
}

func runLogLock(cmd *cobra.Command, args []string) error {
	return setLock(args, true)
}

func runLogUnlock(cmd *cobra.Command, args []string) error {
	return setLock(args, false)
}

// setLock flips the lock flag toward the wanted state. Re-locking a
// locked log (or unlocking an unlocked one) is a no-op.
func setLock(args []string, locked bool) error {
	l, err := resolveLog(args)
	if err != nil {
		return err
	}

	if l.Locked == locked {
		fmt.Printf("Log %s is already %s\n", shortID(l.LogID), lockWord(locked))
		return nil
	}

	if err := book.ToggleLock(l.LogID); err != nil {
		if errors.Is(err, types.ErrNotAuthor) {
			return fmt.Errorf("only the author (%s) may change this log's lock", l.Author)
		}
		return fmt.Errorf("toggle lock: %w", err)
	}
	fmt.Printf("Log %s is now %s\n", shortID(l.LogID), lockWord(locked))
	return nil
}

func lockWord(locked bool) string {
	if locked {
		return "locked"
	}
	return "unlocked"
}

// printLogTable prints logs in a human-readable table format.
func printLogTable(logs []*types.Log) {
	if len(logs) == 0 {
		fmt.Println("No logs found.")
		return
	}

	current, _ := book.CurrentProfile()
	selected, _ := book.SelectedLog()

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tAUTHOR\tSTATE\t")
	for _, l := range logs {
		state := "editable"
		switch {
		case !l.AuthoredBy(current.Name):
			state = "read-only"
		case l.Locked:
			state = "locked"
		}
		marker := ""
		if selected != nil && selected.LogID == l.LogID {
			marker = "*"
		}
		fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\t\n", shortID(l.LogID), marker, l.Date, l.Author, state)
	}
	w.Flush()
	fmt.Print(sb.String())
}
