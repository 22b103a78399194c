package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the stockbook storage",
	Long: `Init creates the configuration and data directories and the snapshot
store. The store is already opened by the root command; init only
confirms the setup.

Example:
  stockbook init
  stockbook init --data-dir ./books/bar-stock`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := resolveDataDir()
		if err != nil {
			return err
		}
		fmt.Printf("Initialized stock book in %s\n", dataDir)
		return nil
	},
}
