package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "trayctl",
	Short: "Cable routing project inspector",
	Long: `trayctl works with cable routing project files outside the editor:
print length statistics, export a bill of materials, and move layouts
between project files and a SQLite database.

Examples:
  trayctl stats farm.trayproj                 # Print route statistics
  trayctl export farm.trayproj -o bom.json    # Export a bill of materials
  trayctl db save farm.trayproj layouts.db    # Store the layout in SQLite
  trayctl db load layouts.db farm.trayproj    # Extract it again`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
