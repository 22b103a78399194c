// Package main provides the stockbook CLI, a local-first stock-log
// record keeper: profiles, dated logs with four fixed sections, and a
// freeform table editor per section.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// Values loaded from config.yaml by PersistentPreRunE so all subcommands
// can use them.
var (
	configBackend       string
	configDataDir       string
	configAnalysisModel string
)

var rootCmd = &cobra.Command{
	Use:     "stockbook",
	Short:   "Stockbook is a local-first stock-log record keeper",
	Version: version,
	Long: `Stockbook keeps dated stock logs per profile. Every log carries four
fixed sections (inventory, purchases, sales, adjustments), each holding a
freeform table. Logs can be locked by their author, duplicated as
templates, exported to a document, and summarized by an AI model.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if skipSetup(cmd) {
			return nil
		}

		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		configBackend = cfg.GetString(cfgKeyBackend)
		configDataDir = cfg.GetString(cfgKeyDataDir)
		configAnalysisModel = cfg.GetString(cfgKeyAnalysisModel)

		return openBook()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeBook()
	},
}

// skipSetup reports whether a command runs without store access.
func skipSetup(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion":
		return true
	}
	return false
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.stockbook-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(columnCmd)
	rootCmd.AddCommand(rowCmd)
	rootCmd.AddCommand(cellCmd)
	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(summarizeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
	os.Exit(exitSuccess)
}
