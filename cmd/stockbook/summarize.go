// Summarize command asks the configured Gemini model for a textual
// summary of one log's table data.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgerline/stockbook/internal/analysis"
)

var summarizeDryRun bool

var summarizeCmd = &cobra.Command{
	Use:   "summarize [ID]",
	Short: "Request an AI summary of a log",
	Long: `Summarize sends the log's table data to the configured Gemini model
and prints the plain-text summary. Without an ID the active selection
is summarized. The model name comes from analysis_model in config.yaml.

Credentials are read from the environment (GEMINI_API_KEY or Google
Cloud application defaults). If the call fails, no summary is shown.

Example:
  stockbook summarize
  stockbook summarize 0198c9a1 --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().BoolVar(&summarizeDryRun, "dry-run", false, "print the prompt instead of calling the model")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	l, err := resolveLog(args)
	if err != nil {
		return err
	}

	if summarizeDryRun {
		fmt.Print(analysis.BuildPrompt(l))
		return nil
	}

	ctx := cmd.Context()
	analyst, err := analysis.NewAnalyst(ctx, configAnalysisModel)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, "Analyzing...")
	summary, err := analyst.Summarize(ctx, l)
	if err != nil {
		// The analysis path fails silently: no summary is shown, the
		// rest of the tool stays usable.
		fmt.Fprintf(os.Stderr, "No summary available: %v\n", err)
		return nil
	}

	fmt.Println(summary)
	return nil
}
