package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Job Methods
// -----------------------------------------------------------------------------

// jobColumns lists the jobs columns (alias j) in scan order; enum columns are
// read as text.
const jobColumns = `j.id, j.company_id, j.url, j.title, j.summary, j.city, j.lat, j.lng,
	j.work_location_type::text, j.salary_min, j.salary_max, j.ir35_status::text,
	j.created_at, j.posted_at, j.seniority::text, j.years_of_experience,
	j.contract_length, j.tech_stack, j.tech_stack_text`

// jobWithCompanyColumns appends the joined company summary (alias c)
const jobWithCompanyColumns = jobColumns + `, c.id, c.name, c.logo_url`

// jobDest returns scan destinations for jobColumns
func jobDest(j *Job) []any {
	return []any{
		&j.ID, &j.CompanyID, &j.URL, &j.Title, &j.Summary, &j.City, &j.Lat, &j.Lng,
		&j.WorkLocationType, &j.SalaryMin, &j.SalaryMax, &j.IR35Status,
		&j.CreatedAt, &j.PostedAt, &j.Seniority, &j.YearsOfExperience,
		&j.ContractLength, &j.TechStack, &j.TechStackText,
	}
}

// scanJobWithCompany scans one row of jobWithCompanyColumns. A missing
// company leaves Company nil instead of dropping the job.
func scanJobWithCompany(row pgx.Row) (*JobWithCompany, error) {
	var jc JobWithCompany
	var companyID *uuid.UUID
	var companyName, companyLogo *string

	dest := append(jobDest(&jc.Job), &companyID, &companyName, &companyLogo)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if companyID != nil {
		jc.Company = &CompanySummary{ID: *companyID, LogoURL: companyLogo}
		if companyName != nil {
			jc.Company.Name = *companyName
		}
	}
	return &jc, nil
}

// CreateJob inserts a job. TechStackText is recomputed from TechStack on every
// write so the indexed text cannot drift from the tags. Returns
// ErrCompanyNotFound when CompanyID does not reference an existing company.
func (db *DB) CreateJob(ctx context.Context, input *JobCreateInput) (*Job, error) {
	if !input.SalaryRangeValid() {
		return nil, ErrSalaryRange
	}

	var j Job
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs AS j (company_id, url, title, summary, city, lat, lng,
		                        work_location_type, salary_min, salary_max, ir35_status,
		                        posted_at, seniority, years_of_experience, contract_length,
		                        tech_stack, tech_stack_text)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8::work_location_type, $9, $10,
		         $11::ir35_status, $12, $13::seniority_level, $14, $15, $16, $17)
		 RETURNING `+jobColumns,
		input.CompanyID, input.URL, input.Title, nullIfEmpty(input.Summary), nullIfEmpty(input.City),
		input.Lat, input.Lng, string(input.WorkLocationType), input.SalaryMin, input.SalaryMax,
		string(input.IR35Status), input.PostedAt, string(input.Seniority),
		input.YearsOfExperience, input.ContractLength, input.TechStack, TechStackText(input.TechStack),
	).Scan(jobDest(&j)...)
	if err != nil {
		if classified := classifyWriteError(err); classified != nil {
			return nil, classified
		}
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return &j, nil
}

// GetJobWithCompany retrieves a job and its company by job ID.
// Returns nil, nil when no job has that ID.
func (db *DB) GetJobWithCompany(ctx context.Context, id uuid.UUID) (*JobWithCompany, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobWithCompanyColumns+`
		 FROM jobs j
		 LEFT JOIN companies c ON c.id = j.company_id
		 WHERE j.id = $1`,
		id,
	)
	job, err := scanJobWithCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// CountJobs counts the jobs matching every predicate
func (db *DB) CountJobs(ctx context.Context, preds []Predicate) (int, error) {
	where, args, err := buildJobWhere(preds, 1)
	if err != nil {
		return 0, err
	}

	var total int
	err = db.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM jobs j %s", where), args...,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return total, nil
}

// FindJobs returns one sorted page of the jobs matching every predicate,
// each joined to its company.
func (db *DB) FindJobs(ctx context.Context, preds []Predicate, sort JobSort, limit, offset int) ([]JobWithCompany, error) {
	where, args, err := buildJobWhere(preds, 1)
	if err != nil {
		return nil, err
	}

	argIndex := len(args) + 1
	args = append(args, limit, offset)
	query := fmt.Sprintf(
		`SELECT %s
		 FROM jobs j
		 LEFT JOIN companies c ON c.id = j.company_id
		 %s
		 %s
		 LIMIT $%d OFFSET $%d`,
		jobWithCompanyColumns, where, buildJobOrderBy(sort), argIndex, argIndex+1,
	)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]JobWithCompany, 0, limit)
	for rows.Next() {
		job, err := scanJobWithCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	return jobs, nil
}

// ListJobsByCompany retrieves every job of a company, most recently posted first
func (db *DB) ListJobsByCompany(ctx context.Context, companyID uuid.UUID) ([]Job, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs j
		 WHERE j.company_id = $1
		 `+buildJobOrderBy(JobSortDate),
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list company jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(jobDest(&j)...); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate company jobs: %w", err)
	}
	return jobs, nil
}
