package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/contract-board/internal/config"
	"github.com/jonathan/contract-board/internal/server"
	"github.com/jonathan/contract-board/internal/types"
)

var (
	tokenSubject string
	tokenHours   int
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the write endpoints",
	Long:  "Sign a JWT with JWT_SECRET for an ingestion or admin caller. Without --subject a new random subject is generated.",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "Subject (UUID) the token identifies")
	tokenCmd.Flags().IntVar(&tokenHours, "hours", 0, "Token lifetime in hours (default JWT_EXPIRATION_HOURS)")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	req := types.TokenRequest{Subject: tokenSubject, Hours: tokenHours}
	if req.Subject == "" {
		req.Subject = uuid.NewString()
	}
	if err := req.Validate(); err != nil {
		return err
	}

	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to load JWT config: %w", err)
	}

	ttl := time.Duration(req.Hours) * time.Hour
	token, err := server.NewJWTService(jwtCfg).GenerateToken(uuid.MustParse(req.Subject), ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
