package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/contract-board/internal/db"
	"github.com/jonathan/contract-board/internal/observability"
	"github.com/jonathan/contract-board/internal/seed"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load companies and jobs from a JSON fixture",
	Long:  "Validate a JSON fixture against the seed schema and insert its companies, jobs and ignored postings. Without --file a single example company and job are inserted.",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Path to seed fixture JSON")
	rootCmd.AddCommand(seedCmd)
}

// loadFixture reads and validates path, or returns the built-in example
func loadFixture(path string) (*seed.Fixture, error) {
	if path == "" {
		return seed.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return seed.Parse(data)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	fx, err := loadFixture(seedFile)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	databaseURL, err := requireDatabaseURL(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	report, err := seed.Apply(ctx, database, fx)
	if err != nil {
		return err
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintSeedReport(report)
	return nil
}
