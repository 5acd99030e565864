package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"cable-router/internal/project"
	"cable-router/internal/routes"

	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats <project-file>",
	Short: "Print route statistics for a project file",
	Long: `Load a project file and print per-route and total tray lengths.
Routes with recoverable problems are repaired before counting, the way
the editor repairs them on load.

Examples:
  trayctl stats farm.trayproj
  trayctl stats --json farm.trayproj`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "emit JSON instead of a table")
}

func runStats(cmd *cobra.Command, args []string) error {
	mgr, warnings, err := loadManager(args[0])
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	global, perRoute := mgr.Stats()

	if statsJSON {
		out := struct {
			Global routes.GlobalStats  `json:"global"`
			Routes []routes.RouteStats `json:"routes"`
		}{global, perRoute}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, rs := range perRoute {
		fmt.Printf("%-30s %4d points %4d segments %10.2f m\n",
			rs.Name, rs.Points, rs.Segments, rs.TotalLength)
	}
	fmt.Printf("%-30s %4d points %4d segments %10.2f m\n",
		fmt.Sprintf("TOTAL (%d routes)", global.Routes),
		global.Points, global.Segments, global.TotalLength)
	return nil
}

// loadManager reads a project file into a hydrated route manager.
func loadManager(path string) (*routes.Manager, []string, error) {
	f, err := project.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "loaded %q: %d routes\n", path, len(f.Routes))
	}
	mgr := routes.NewManager()
	warnings := mgr.Hydrate(f.Routes)
	return mgr, warnings, nil
}
