package cmd

import (
	"context"
	"fmt"
	"os"

	"cable-router/internal/project"
	"cable-router/internal/routes"

	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Move layouts between project files and a SQLite database",
}

var dbSaveCmd = &cobra.Command{
	Use:   "save <project-file> <database>",
	Short: "Store a project file's routes in a SQLite database",
	Args:  cobra.ExactArgs(2),
	RunE:  runDBSave,
}

var dbLoadCmd = &cobra.Command{
	Use:   "load <database> <project-file>",
	Short: "Write the routes stored in a SQLite database to a project file",
	Args:  cobra.ExactArgs(2),
	RunE:  runDBLoad,
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(dbSaveCmd)
	dbCmd.AddCommand(dbLoadCmd)
}

func runDBSave(cmd *cobra.Command, args []string) error {
	mgr, warnings, err := loadManager(args[0])
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	store, err := project.OpenStore(args[1])
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveRoutes(context.Background(), mgr.Routes()); err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "stored %d routes in %s\n", mgr.Count(), args[1])
	}
	return nil
}

func runDBLoad(cmd *cobra.Command, args []string) error {
	store, err := project.OpenStore(args[0])
	if err != nil {
		return err
	}
	defer store.Close()

	list, err := store.LoadRoutes(context.Background())
	if err != nil {
		return err
	}

	mgr := routes.NewManager()
	for _, w := range mgr.Hydrate(list) {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if err := project.Save(args[1], "", mgr.Routes(), nil); err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "wrote %d routes to %s\n", mgr.Count(), args[1])
	}
	return nil
}
