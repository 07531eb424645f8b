package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Profile Methods
// -----------------------------------------------------------------------------

// CreateProfile registers a profile for an external identity.
// Returns ErrDuplicateEmail if the email is taken.
func (db *DB) CreateProfile(ctx context.Context, input *ProfileCreateInput) (*Profile, error) {
	var p Profile
	err := db.pool.QueryRow(ctx,
		`INSERT INTO profiles (id, email)
		 VALUES ($1, $2)
		 RETURNING id, email, is_paid, created_at`,
		input.ID, strings.ToLower(strings.TrimSpace(input.Email)),
	).Scan(&p.ID, &p.Email, &p.IsPaid, &p.CreatedAt)
	if err != nil {
		if classified := classifyWriteError(err); classified != nil {
			return nil, classified
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return &p, nil
}

// GetProfileByID retrieves a profile by identity ID
func (db *DB) GetProfileByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	var p Profile
	err := db.pool.QueryRow(ctx,
		`SELECT id, email, is_paid, created_at FROM profiles WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Email, &p.IsPaid, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}
