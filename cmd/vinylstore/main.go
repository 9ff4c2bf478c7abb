package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register migrations so `vinylstore migrate` sees them.
	_ "github.com/groovecrate/vinylstore/database/migrations"
)

var rootCmd = &cobra.Command{
	Use:   "vinylstore",
	Short: "vinylstore — vinyl record store backend",
	Long:  "Run and manage the vinyl record store: HTTP API, migrations, seeders.",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(routeListCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
