// Package db provides PostgreSQL access for companies, contract jobs and the
// job search queries built on top of them.
package db

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registers the pgx5:// driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgreSQL error codes inspected by the write paths
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// Sentinel errors returned by write paths
var (
	// ErrCompanyNotFound is returned when a write references a company that does not exist
	ErrCompanyNotFound = errors.New("company not found")
	// ErrDuplicateEmail is returned when a profile email is already registered
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrProfileExists is returned when the identity already has a profile
	ErrProfileExists = errors.New("profile already exists")
	// ErrSalaryRange is returned when salary_min exceeds salary_max
	ErrSalaryRange = errors.New("salary_min must not exceed salary_max")
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping checks that the database is reachable
func (db *DB) Ping(ctx context.Context) error {
	if db.pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}
	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Migrate applies (up=true) or rolls back (up=false) the embedded schema migrations.
func Migrate(databaseURL string, up bool) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, migrateURL(databaseURL))
	if err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}
	defer m.Close()

	if up {
		err = m.Up()
	} else {
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	log.Printf("[db] migrations at version %d (dirty=%v)", version, dirty)
	return nil
}

// migrateURL rewrites a postgres:// DSN to the pgx5:// scheme golang-migrate expects
func migrateURL(databaseURL string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(databaseURL, prefix) {
			return "pgx5://" + strings.TrimPrefix(databaseURL, prefix)
		}
	}
	return databaseURL
}

// classifyWriteError maps constraint violations to the package's sentinel errors
func classifyWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch pgErr.Code {
	case pgForeignKeyViolation:
		return ErrCompanyNotFound
	case pgUniqueViolation:
		if strings.Contains(pgErr.ConstraintName, "email") {
			return ErrDuplicateEmail
		}
		if pgErr.ConstraintName == "profiles_pkey" {
			return ErrProfileExists
		}
	case pgCheckViolation:
		if strings.Contains(pgErr.ConstraintName, "salary") {
			return ErrSalaryRange
		}
	}
	return nil
}

// nullIfEmpty returns nil for empty strings so optional text columns stay NULL
func nullIfEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
