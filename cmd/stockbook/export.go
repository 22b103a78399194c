// Export command writes a log's document to a file. The contract is
// fire-and-forget: nothing from the export is consumed back.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgerline/stockbook/internal/export"
)

var (
	exportOut    string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export [ID]",
	Short: "Export a log to a document",
	Long: `Export writes the log's document to a file, markdown by default or
HTML with --format html. Without an ID the active selection is exported.

Example:
  stockbook export --out stock-2026-08-26.md
  stockbook export 0198c9a1 --out stock.html --format html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (required)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "markdown", "output format: markdown or html")
	_ = exportCmd.MarkFlagRequired("out")
}

func runExport(cmd *cobra.Command, args []string) error {
	l, err := resolveLog(args)
	if err != nil {
		return err
	}

	var data []byte
	switch exportFormat {
	case "markdown", "md":
		data = []byte(export.Render(l))
	case "html":
		data, err = export.RenderHTML(l)
		if err != nil {
			return fmt.Errorf("render html: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q (markdown or html)", exportFormat)
	}

	if err := os.WriteFile(exportOut, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", exportOut, err)
	}
	fmt.Printf("Exported log %s to %s\n", shortID(l.LogID), exportOut)
	return nil
}
