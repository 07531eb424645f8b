package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/contract-board/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate up|down",
	Short:     "Apply or roll back the database schema",
	Long:      "Run the embedded SQL migrations against DATABASE_URL. 'up' applies every pending migration; 'down' rolls all of them back.",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down"},
	RunE:      runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	databaseURL, err := requireDatabaseURL(cfg)
	if err != nil {
		return err
	}

	up := args[0] == "up"
	if err := db.Migrate(databaseURL, up); err != nil {
		return err
	}
	fmt.Printf("Migrations %s complete\n", args[0])
	return nil
}
