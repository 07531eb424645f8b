// Package main provides the jobboard CLI: the HTTP API server plus the
// migrate, seed, search and token maintenance commands.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/contract-board/internal/config"

	_ "time/tzdata" // SEARCH_TIMEZONE must resolve on hosts without zoneinfo
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "jobboard",
	Short: "Contract job board API server",
	Long:  "Contract job board: search, filter and paginate contract job listings over a REST API backed by PostgreSQL.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Optional JSON config file; environment variables take precedence")
}

// loadConfig reads the environment on top of the optional --config file and
// fills the remaining defaults.
func loadConfig() (*config.Config, error) {
	var defaults config.Config
	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		defaults = *fileCfg
	}

	envCfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}
	merged := envCfg.MergeWithDefaults(defaults)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// requireDatabaseURL returns cfg.DatabaseURL or an error naming the variable
func requireDatabaseURL(cfg *config.Config) (string, error) {
	if cfg.DatabaseURL == "" {
		return "", fmt.Errorf("DATABASE_URL environment variable is required")
	}
	return cfg.DatabaseURL, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
