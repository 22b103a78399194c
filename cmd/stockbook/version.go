package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is the CLI version reported by the version command.
const version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("stockbook v" + version)
	},
}
