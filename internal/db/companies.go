package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Company Methods
// -----------------------------------------------------------------------------

const companyColumns = `id, name, scrape_url, logo_url, first_page_hash`

// CreateCompany inserts a company and returns the stored row
func (db *DB) CreateCompany(ctx context.Context, input *CompanyCreateInput) (*Company, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("company name cannot be empty")
	}

	var c Company
	err := db.pool.QueryRow(ctx,
		`INSERT INTO companies (name, scrape_url, logo_url, first_page_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+companyColumns,
		input.Name, input.ScrapeURL, nullIfEmpty(input.LogoURL), nullIfEmpty(input.FirstPageHash),
	).Scan(&c.ID, &c.Name, &c.ScrapeURL, &c.LogoURL, &c.FirstPageHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return &c, nil
}

// GetCompanyByID retrieves a company by its UUID
func (db *DB) GetCompanyByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	var c Company
	err := db.pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.ScrapeURL, &c.LogoURL, &c.FirstPageHash)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return &c, nil
}

// ListCompanies returns every company, most recently assigned id first
func (db *DB) ListCompanies(ctx context.Context) ([]Company, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+companyColumns+` FROM companies ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []Company
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.ID, &c.Name, &c.ScrapeURL, &c.LogoURL, &c.FirstPageHash); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate companies: %w", err)
	}
	return companies, nil
}

// DeleteCompany removes a company; its jobs and ignored jobs go with it (cascade)
func (db *DB) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrCompanyNotFound
	}
	return nil
}
