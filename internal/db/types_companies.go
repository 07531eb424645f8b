package db

import (
	"github.com/google/uuid"
)

// Company represents an employer whose careers page is scraped for contract jobs
type Company struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	ScrapeURL     string    `json:"scrapeUrl"`
	LogoURL       *string   `json:"logoUrl,omitempty"`
	FirstPageHash *string   `json:"firstPageHash,omitempty"`
}

// CompanySummary is the slice of a company attached to every listed job
type CompanySummary struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	LogoURL *string   `json:"logoUrl,omitempty"`
}

// CompanyCreateInput is used when creating a new company
type CompanyCreateInput struct {
	Name          string `json:"name" validate:"required,min=1,max=256"`
	ScrapeURL     string `json:"scrapeUrl" validate:"required,url"`
	LogoURL       string `json:"logoUrl,omitempty" validate:"omitempty,url"`
	FirstPageHash string `json:"firstPageHash,omitempty"`
}

// Summary returns the fields of the company exposed alongside its jobs
func (c *Company) Summary() *CompanySummary {
	if c == nil {
		return nil
	}
	return &CompanySummary{ID: c.ID, Name: c.Name, LogoURL: c.LogoURL}
}
