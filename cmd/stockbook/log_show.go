// Log show command renders a log's document to the terminal.
package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/ledgerline/stockbook/internal/export"
)

var showPlain bool

var logShowCmd = &cobra.Command{
	Use:   "show [ID]",
	Short: "Render a log to the terminal",
	Long: `Show renders the log's document. Without an ID the active selection is
shown. By default the markdown is styled for the terminal; --plain
prints the raw markdown.

Example:
  stockbook log show
  stockbook log show 0198c9a1 --plain`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogShow,
}

func init() {
	logShowCmd.Flags().BoolVar(&showPlain, "plain", false, "print raw markdown without terminal styling")
}

func runLogShow(cmd *cobra.Command, args []string) error {
	l, err := resolveLog(args)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(l)
	}

	md := export.Render(l)
	if showPlain {
		fmt.Print(md)
		return nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		// Styling is cosmetic; fall back to the raw markdown.
		fmt.Print(md)
		return nil
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return nil
	}
	fmt.Print(out)
	return nil
}
