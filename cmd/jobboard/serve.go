package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/contract-board/internal/config"
	"github.com/jonathan/contract-board/internal/db"
	"github.com/jonathan/contract-board/internal/server"
	"github.com/jonathan/contract-board/internal/server/ratelimit"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the job search endpoints and the authenticated company, job and profile endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	databaseURL, err := requireDatabaseURL(cfg)
	if err != nil {
		return err
	}

	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to load JWT config: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	srv, err := server.New(database, server.NewJWTService(jwtCfg), server.Config{
		Port:         cfg.Port,
		CORSOrigin:   cfg.CORSOrigin,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
		Location:     loc,
		RateLimit:    ratelimit.LoadConfig(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	log.Printf("[server] search time zone %s", loc)
	return srv.Start()
}
