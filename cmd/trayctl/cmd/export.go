package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"cable-router/internal/catalog"
	"cable-router/internal/route"

	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <project-file>",
	Short: "Export a bill of materials from a project file",
	Long: `Walk every route in a project file and total the tray length per
style plus the fitting counts, then write the result as JSON.

Examples:
  trayctl export farm.trayproj
  trayctl export farm.trayproj -o bom.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "",
		"output file (default stdout)")
}

// billOfMaterials totals tray runs and fittings across a layout.
type billOfMaterials struct {
	TrayLengths map[catalog.TrayStyle]float64 `json:"trayLengths"`
	Fittings    map[route.FittingType]int     `json:"fittings"`
	Routes      int                           `json:"routes"`
	TotalLength float64                       `json:"totalLength"`
}

func runExport(cmd *cobra.Command, args []string) error {
	mgr, warnings, err := loadManager(args[0])
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	bom := billOfMaterials{
		TrayLengths: make(map[catalog.TrayStyle]float64),
		Fittings:    make(map[route.FittingType]int),
	}
	for _, r := range mgr.Routes() {
		bom.Routes++
		bom.TotalLength += r.TotalLength
		for _, seg := range r.Segments {
			bom.TrayLengths[seg.Style] += r.SegmentLength(seg)
		}
		for _, p := range r.Points {
			if p.Fitting != nil {
				bom.Fittings[p.Fitting.Type]++
			}
		}
	}

	out := os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(bom); err != nil {
		return err
	}
	if exportOutput != "" && verbose {
		fmt.Fprintf(os.Stderr, "wrote %s\n", exportOutput)
	}
	return nil
}
