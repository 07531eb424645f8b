// Package seed loads fixture companies and jobs into a store.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/contract-board/internal/db"
	"github.com/jonathan/contract-board/internal/schemas"
	"github.com/jonathan/contract-board/internal/types"
)

// Store is the write side a fixture needs. *db.DB implements it.
type Store interface {
	CreateCompany(ctx context.Context, input *db.CompanyCreateInput) (*db.Company, error)
	CreateJob(ctx context.Context, input *db.JobCreateInput) (*db.Job, error)
	CreateIgnoredJob(ctx context.Context, input *db.IgnoredJobCreateInput) (*db.IgnoredJob, error)
	IsJobIgnored(ctx context.Context, companyID uuid.UUID, url string) (bool, error)
}

// Fixture is the document described by schemas/seed.schema.json
type Fixture struct {
	Companies []Company `json:"companies"`
}

// Company is a fixture company with its postings
type Company struct {
	Name        string       `json:"name"`
	ScrapeURL   string       `json:"scrapeUrl"`
	LogoURL     string       `json:"logoUrl,omitempty"`
	Jobs        []Job        `json:"jobs,omitempty"`
	IgnoredJobs []IgnoredJob `json:"ignoredJobs,omitempty"`
}

// Job is a fixture job; the company is implied by nesting
type Job struct {
	URL               string              `json:"url"`
	Title             string              `json:"title"`
	Summary           string              `json:"summary,omitempty"`
	City              string              `json:"city,omitempty"`
	Lat               *float64            `json:"lat,omitempty"`
	Lng               *float64            `json:"lng,omitempty"`
	WorkLocationType  db.WorkLocationType `json:"workLocationType"`
	SalaryMin         *int                `json:"salaryMin,omitempty"`
	SalaryMax         *int                `json:"salaryMax,omitempty"`
	IR35Status        db.IR35Status       `json:"ir35Status"`
	PostedAt          *time.Time          `json:"postedAt,omitempty"`
	Seniority         db.Seniority        `json:"seniority"`
	YearsOfExperience *int                `json:"yearsOfExperience,omitempty"`
	ContractLength    *int                `json:"contractLength,omitempty"`
	TechStack         []string            `json:"techStack,omitempty"`
}

// IgnoredJob is a posting ingestion must skip
type IgnoredJob struct {
	URL    string `json:"url"`
	Reason string `json:"reason,omitempty"`
}

// Report counts what Apply wrote
type Report struct {
	Companies   int
	Jobs        int
	IgnoredJobs int
	Skipped     int
}

// Default returns the single example company and job used when no fixture
// file is given.
func Default() *Fixture {
	return &Fixture{Companies: []Company{{
		Name:      "Example Ltd",
		ScrapeURL: "https://example.com/jobs",
		Jobs: []Job{{
			URL:              "https://example.com/jobs/123",
			Title:            "Senior TypeScript Contractor",
			Summary:          "Example job posting for a senior TypeScript engineer.",
			City:             "Remote",
			WorkLocationType: db.WorkLocationRemote,
			IR35Status:       db.IR35Outside,
			Seniority:        db.SenioritySenior,
		}},
	}}}
}

// Parse validates data against the seed schema and decodes it
func Parse(data []byte) (*Fixture, error) {
	if err := schemas.ValidateSeed(data); err != nil {
		return nil, err
	}

	var fx Fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("failed to decode seed fixture: %w", err)
	}
	return &fx, nil
}

// Apply writes the fixture company by company. Ignored postings are written
// before jobs, and jobs whose URL is ignored are skipped. It stops at the
// first error; rows already written stay.
func Apply(ctx context.Context, store Store, fx *Fixture) (*Report, error) {
	report := &Report{}
	for i := range fx.Companies {
		if err := applyCompany(ctx, store, &fx.Companies[i], report); err != nil {
			return report, err
		}
	}
	log.Printf("[seed] %d companies, %d jobs, %d ignored postings (%d jobs skipped)",
		report.Companies, report.Jobs, report.IgnoredJobs, report.Skipped)
	return report, nil
}

func applyCompany(ctx context.Context, store Store, fc *Company, report *Report) error {
	companyInput := &db.CompanyCreateInput{Name: fc.Name, ScrapeURL: fc.ScrapeURL, LogoURL: fc.LogoURL}
	if err := types.ValidateStruct(companyInput); err != nil {
		return fmt.Errorf("company %q: %w", fc.Name, err)
	}
	company, err := store.CreateCompany(ctx, companyInput)
	if err != nil {
		return fmt.Errorf("failed to seed company %q: %w", fc.Name, err)
	}
	report.Companies++

	for _, ij := range fc.IgnoredJobs {
		_, err := store.CreateIgnoredJob(ctx, &db.IgnoredJobCreateInput{
			CompanyID: company.ID,
			URL:       ij.URL,
			Reason:    ij.Reason,
		})
		if err != nil {
			return fmt.Errorf("failed to seed ignored job %s: %w", ij.URL, err)
		}
		report.IgnoredJobs++
	}

	for _, fj := range fc.Jobs {
		ignored, err := store.IsJobIgnored(ctx, company.ID, fj.URL)
		if err != nil {
			return fmt.Errorf("failed to check ignored job %s: %w", fj.URL, err)
		}
		if ignored {
			log.Printf("[seed] skipping ignored job %s", fj.URL)
			report.Skipped++
			continue
		}

		input := fj.input(company.ID)
		if err := types.ValidateStruct(input); err != nil {
			return fmt.Errorf("job %q: %w", fj.Title, err)
		}
		if _, err := store.CreateJob(ctx, input); err != nil {
			return fmt.Errorf("failed to seed job %q: %w", fj.Title, err)
		}
		report.Jobs++
	}
	return nil
}

func (j *Job) input(companyID uuid.UUID) *db.JobCreateInput {
	return &db.JobCreateInput{
		CompanyID:         companyID,
		URL:               j.URL,
		Title:             j.Title,
		Summary:           j.Summary,
		City:              j.City,
		Lat:               j.Lat,
		Lng:               j.Lng,
		WorkLocationType:  j.WorkLocationType,
		SalaryMin:         j.SalaryMin,
		SalaryMax:         j.SalaryMax,
		IR35Status:        j.IR35Status,
		PostedAt:          j.PostedAt,
		Seniority:         j.Seniority,
		YearsOfExperience: j.YearsOfExperience,
		ContractLength:    j.ContractLength,
		TechStack:         j.TechStack,
	}
}
