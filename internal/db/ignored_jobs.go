package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Ignored Job Methods
// -----------------------------------------------------------------------------

// CreateIgnoredJob records a posting that ingestion must skip.
// Returns ErrCompanyNotFound for an unknown company.
func (db *DB) CreateIgnoredJob(ctx context.Context, input *IgnoredJobCreateInput) (*IgnoredJob, error) {
	var ij IgnoredJob
	err := db.pool.QueryRow(ctx,
		`INSERT INTO ignored_jobs (company_id, url, reason)
		 VALUES ($1, $2, $3)
		 RETURNING id, company_id, url, reason, created_at`,
		input.CompanyID, input.URL, nullIfEmpty(input.Reason),
	).Scan(&ij.ID, &ij.CompanyID, &ij.URL, &ij.Reason, &ij.CreatedAt)
	if err != nil {
		if classified := classifyWriteError(err); classified != nil {
			return nil, classified
		}
		return nil, fmt.Errorf("failed to create ignored job: %w", err)
	}
	return &ij, nil
}

// ListIgnoredJobsByCompany returns a company's ignored postings, newest first
func (db *DB) ListIgnoredJobsByCompany(ctx context.Context, companyID uuid.UUID) ([]IgnoredJob, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, company_id, url, reason, created_at
		 FROM ignored_jobs
		 WHERE company_id = $1
		 ORDER BY created_at DESC, id ASC`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list ignored jobs: %w", err)
	}
	defer rows.Close()

	var ignored []IgnoredJob
	for rows.Next() {
		var ij IgnoredJob
		if err := rows.Scan(&ij.ID, &ij.CompanyID, &ij.URL, &ij.Reason, &ij.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ignored job: %w", err)
		}
		ignored = append(ignored, ij)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ignored jobs: %w", err)
	}
	return ignored, nil
}

// IsJobIgnored reports whether a posting URL is on a company's ignore list
func (db *DB) IsJobIgnored(ctx context.Context, companyID uuid.UUID, url string) (bool, error) {
	var ignored bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM ignored_jobs WHERE company_id = $1 AND url = $2)`,
		companyID, url,
	).Scan(&ignored)
	if err != nil {
		return false, fmt.Errorf("failed to check ignored job: %w", err)
	}
	return ignored, nil
}
