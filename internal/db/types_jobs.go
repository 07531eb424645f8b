package db

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// WorkLocationType is where the contractor is expected to work
type WorkLocationType string

// Work location values
const (
	WorkLocationRemote WorkLocationType = "remote"
	WorkLocationHybrid WorkLocationType = "hybrid"
	WorkLocationOnsite WorkLocationType = "onsite"
)

// Valid reports whether w is one of the known work location values
func (w WorkLocationType) Valid() bool {
	switch w {
	case WorkLocationRemote, WorkLocationHybrid, WorkLocationOnsite:
		return true
	}
	return false
}

// IR35Status is the UK contracting tax-status classification of a role
type IR35Status string

// IR35 values
const (
	IR35Inside  IR35Status = "inside"
	IR35Outside IR35Status = "outside"
)

// Valid reports whether s is a known IR35 status
func (s IR35Status) Valid() bool {
	return s == IR35Inside || s == IR35Outside
}

// Seniority is the experience level advertised for a job
type Seniority string

// Seniority values
const (
	SeniorityJunior Seniority = "junior"
	SeniorityMid    Seniority = "mid"
	SenioritySenior Seniority = "senior"
	SeniorityLead   Seniority = "lead"
)

// Valid reports whether s is a known seniority level
func (s Seniority) Valid() bool {
	switch s {
	case SeniorityJunior, SeniorityMid, SenioritySenior, SeniorityLead:
		return true
	}
	return false
}

// Job represents a contract job listing owned by a company
type Job struct {
	ID                uuid.UUID        `json:"id"`
	CompanyID         uuid.UUID        `json:"companyId"`
	URL               string           `json:"url"`
	Title             string           `json:"title"`
	Summary           *string          `json:"summary,omitempty"`
	City              *string          `json:"city,omitempty"`
	Lat               *float64         `json:"lat,omitempty"`
	Lng               *float64         `json:"lng,omitempty"`
	WorkLocationType  WorkLocationType `json:"workLocationType"`
	SalaryMin         *int             `json:"salaryMin,omitempty"`
	SalaryMax         *int             `json:"salaryMax,omitempty"`
	IR35Status        IR35Status       `json:"ir35Status"`
	CreatedAt         time.Time        `json:"createdAt"`
	PostedAt          *time.Time       `json:"postedAt,omitempty"`
	Seniority         Seniority        `json:"seniority"`
	YearsOfExperience *int             `json:"yearsOfExperience,omitempty"`
	ContractLength    *int             `json:"contractLength,omitempty"` // months
	TechStack         []string         `json:"techStack,omitempty"`
	TechStackText     *string          `json:"techStackText,omitempty"`
}

// JobWithCompany is a job enriched with its owning company.
// Company is nil if the referenced company row is missing.
type JobWithCompany struct {
	Job
	Company *CompanySummary `json:"company"`
}

// JobCreateInput is used when creating a new job. TechStackText is not part of
// the input: it is always derived from TechStack.
type JobCreateInput struct {
	CompanyID         uuid.UUID        `json:"companyId" validate:"required"`
	URL               string           `json:"url" validate:"required,url"`
	Title             string           `json:"title" validate:"required,min=1,max=256"`
	Summary           string           `json:"summary,omitempty" validate:"max=5000"`
	City              string           `json:"city,omitempty" validate:"max=191"`
	Lat               *float64         `json:"lat,omitempty" validate:"omitempty,latitude"`
	Lng               *float64         `json:"lng,omitempty" validate:"omitempty,longitude"`
	WorkLocationType  WorkLocationType `json:"workLocationType" validate:"required,oneof=remote hybrid onsite"`
	SalaryMin         *int             `json:"salaryMin,omitempty" validate:"omitempty,min=0"`
	SalaryMax         *int             `json:"salaryMax,omitempty" validate:"omitempty,min=0"`
	IR35Status        IR35Status       `json:"ir35Status" validate:"required,oneof=inside outside"`
	PostedAt          *time.Time       `json:"postedAt,omitempty"`
	Seniority         Seniority        `json:"seniority" validate:"required,oneof=junior mid senior lead"`
	YearsOfExperience *int             `json:"yearsOfExperience,omitempty" validate:"omitempty,min=0"`
	ContractLength    *int             `json:"contractLength,omitempty" validate:"omitempty,min=0"`
	TechStack         []string         `json:"techStack,omitempty"`
}

// SalaryRangeValid reports whether the salary bounds are consistent
func (in *JobCreateInput) SalaryRangeValid() bool {
	if in.SalaryMin == nil || in.SalaryMax == nil {
		return true
	}
	return *in.SalaryMin <= *in.SalaryMax
}

// EffectivePostedAt returns PostedAt when known, otherwise CreatedAt.
// Recency filters and the date sort both use this timestamp.
func (j *Job) EffectivePostedAt() time.Time {
	if j.PostedAt != nil {
		return *j.PostedAt
	}
	return j.CreatedAt
}

// TechStackText builds the denormalized, space-joined copy of a tech stack
// that is indexed for keyword search. Blank tags are dropped.
func TechStackText(stack []string) *string {
	tags := make([]string, 0, len(stack))
	for _, tag := range stack {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	text := strings.Join(tags, " ")
	return &text
}
