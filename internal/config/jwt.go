package config

import (
	"fmt"
	"os"
	"strconv"
)

// DefaultJWTIssuer is the iss claim used when JWT_ISSUER is unset
const DefaultJWTIssuer = "contract-board"

// JWTConfig holds configuration for signing and verifying the bearer tokens
// that guard write endpoints.
type JWTConfig struct {
	Secret          string
	Issuer          string
	ExpirationHours int
}

// NewJWTConfig reads JWT_SECRET (required), JWT_ISSUER and
// JWT_EXPIRATION_HOURS (default 24) from the environment.
func NewJWTConfig() (*JWTConfig, error) {
	cfg := &JWTConfig{
		Secret:          os.Getenv("JWT_SECRET"),
		Issuer:          os.Getenv("JWT_ISSUER"),
		ExpirationHours: 24,
	}
	if cfg.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultJWTIssuer
	}

	if raw := os.Getenv("JWT_EXPIRATION_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %v", err)
		}
		cfg.ExpirationHours = hours
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the secret length and expiry bounds
func (c *JWTConfig) Validate() error {
	if len(c.Secret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	if c.ExpirationHours < 1 || c.ExpirationHours > 8760 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be between 1 and 8760, got: %d", c.ExpirationHours)
	}
	return nil
}
