// Package searchtest provides an in-memory store for exercising search and
// the HTTP API without PostgreSQL.
package searchtest

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/jonathan/contract-board/internal/db"
)

// MemStore keeps companies, jobs, ignored jobs and profiles in memory and
// evaluates predicates the way the PostgreSQL queries do. Keyword matching
// approximates the english text search configuration with a stop-word list
// and a suffix stemmer.
type MemStore struct {
	mu        sync.RWMutex
	companies map[uuid.UUID]*db.Company
	jobs      map[uuid.UUID]*db.Job
	ignored   []db.IgnoredJob
	profiles  map[uuid.UUID]*db.Profile

	// FailCount and FailFind, when set, are returned by CountJobs and FindJobs
	FailCount error
	FailFind  error
	// PingErr is returned by Ping
	PingErr error

	CountCalls int
	FindCalls  int

	// Now stamps CreatedAt on inserted rows; defaults to time.Now
	Now func() time.Time
}

// NewMemStore creates an empty store
func NewMemStore() *MemStore {
	return &MemStore{
		companies: make(map[uuid.UUID]*db.Company),
		jobs:      make(map[uuid.UUID]*db.Job),
		profiles:  make(map[uuid.UUID]*db.Profile),
	}
}

func (m *MemStore) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// AddCompany stores c, assigning an ID when it has none
func (m *MemStore) AddCompany(c db.Company) db.Company {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.companies[c.ID] = &c
	return c
}

// AddJob stores j as is, assigning an ID and CreatedAt when missing and
// deriving TechStackText from TechStack. The company is not required to exist.
func (m *MemStore) AddJob(j db.Job) db.Job {
	m.mu.Lock()
	defer m.mu.Unlock()

	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = m.now()
	}
	j.TechStackText = db.TechStackText(j.TechStack)
	m.jobs[j.ID] = &j
	return j
}

// Ping reports PingErr
func (m *MemStore) Ping(context.Context) error {
	return m.PingErr
}

// -----------------------------------------------------------------------------
// Search
// -----------------------------------------------------------------------------

// CountJobs counts jobs matching every predicate
func (m *MemStore) CountJobs(_ context.Context, preds []db.Predicate) (int, error) {
	m.mu.Lock()
	m.CountCalls++
	m.mu.Unlock()

	if m.FailCount != nil {
		return 0, m.FailCount
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.match(preds)), nil
}

// FindJobs returns one sorted page of matching jobs with their companies
func (m *MemStore) FindJobs(_ context.Context, preds []db.Predicate, sortBy db.JobSort, limit, offset int) ([]db.JobWithCompany, error) {
	m.mu.Lock()
	m.FindCalls++
	m.mu.Unlock()

	if m.FailFind != nil {
		return nil, m.FailFind
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := m.match(preds)
	sortJobs(matched, sortBy)

	out := make([]db.JobWithCompany, 0, limit)
	for i := offset; i < len(matched) && len(out) < limit; i++ {
		out = append(out, m.withCompany(matched[i]))
	}
	return out, nil
}

// GetJobWithCompany returns a job or nil, nil
func (m *MemStore) GetJobWithCompany(_ context.Context, id uuid.UUID) (*db.JobWithCompany, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	j, ok := m.jobs[id]
	if !ok {
		return nil, nil
	}
	jc := m.withCompany(j)
	return &jc, nil
}

func (m *MemStore) withCompany(j *db.Job) db.JobWithCompany {
	jc := db.JobWithCompany{Job: *j}
	if c, ok := m.companies[j.CompanyID]; ok {
		jc.Company = c.Summary()
	}
	return jc
}

func (m *MemStore) match(preds []db.Predicate) []*db.Job {
	var out []*db.Job
	for _, j := range m.jobs {
		if matchesAll(j, preds) {
			out = append(out, j)
		}
	}
	return out
}

func matchesAll(j *db.Job, preds []db.Predicate) bool {
	for _, p := range preds {
		if !matches(j, p) {
			return false
		}
	}
	return true
}

func matches(j *db.Job, p db.Predicate) bool {
	switch p.Kind {
	case db.PredicateFullText:
		return matchesText(j, p.Text)
	case db.PredicateCityContains:
		return j.City != nil && strings.Contains(strings.ToLower(*j.City), strings.ToLower(p.Text))
	case db.PredicateIR35Status:
		return string(j.IR35Status) == p.Text
	case db.PredicateWorkLocationType:
		return string(j.WorkLocationType) == p.Text
	case db.PredicateSeniority:
		return string(j.Seniority) == p.Text
	case db.PredicateSalaryMinAtLeast:
		return j.SalaryMin != nil && *j.SalaryMin >= p.Number
	case db.PredicateSalaryMaxAtMost:
		return j.SalaryMax != nil && *j.SalaryMax <= p.Number
	case db.PredicatePostedSince:
		return !j.EffectivePostedAt().Before(p.Since)
	default:
		return false
	}
}

// sortJobs orders like the SQL: effective posted time or salary_max
// descending (nulls last), then id ascending.
func sortJobs(jobs []*db.Job, sortBy db.JobSort) {
	sort.SliceStable(jobs, func(a, b int) bool {
		ja, jb := jobs[a], jobs[b]
		if sortBy == db.JobSortSalary {
			switch {
			case ja.SalaryMax == nil && jb.SalaryMax != nil:
				return false
			case ja.SalaryMax != nil && jb.SalaryMax == nil:
				return true
			case ja.SalaryMax != nil && *ja.SalaryMax != *jb.SalaryMax:
				return *ja.SalaryMax > *jb.SalaryMax
			}
		} else {
			ta, tb := ja.EffectivePostedAt(), jb.EffectivePostedAt()
			if !ta.Equal(tb) {
				return ta.After(tb)
			}
		}
		return bytes.Compare(ja.ID[:], jb.ID[:]) < 0
	})
}

// -----------------------------------------------------------------------------
// Keyword matching
// -----------------------------------------------------------------------------

var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "in": true, "is": true,
	"it": true, "of": true, "on": true, "or": true, "the": true, "to": true,
	"with": true,
}

var suffixes = []string{"ations", "ation", "ings", "ing", "ers", "er", "ed", "es", "s"}

// lexemes splits text into lowercase, stemmed, non-stop-word terms
func lexemes(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := make([]string, 0, len(words))
	for _, w := range words {
		if stopWords[w] {
			continue
		}
		out = append(out, stem(w))
	}
	return out
}

func stem(w string) string {
	for _, suffix := range suffixes {
		if strings.HasSuffix(w, suffix) && len(w)-len(suffix) >= 3 {
			return strings.TrimSuffix(w, suffix)
		}
	}
	return w
}

// matchesText requires every query lexeme in the job's search document.
// A query made only of stop words matches nothing.
func matchesText(j *db.Job, query string) bool {
	terms := lexemes(query)
	if len(terms) == 0 {
		return false
	}

	doc := j.Title
	if j.TechStackText != nil {
		doc += " " + *j.TechStackText
	}
	if j.Summary != nil {
		doc += " " + *j.Summary
	}
	have := make(map[string]bool)
	for _, l := range lexemes(doc) {
		have[l] = true
	}

	for _, t := range terms {
		if !have[t] {
			return false
		}
	}
	return true
}

// -----------------------------------------------------------------------------
// Companies, ignored jobs, profiles
// -----------------------------------------------------------------------------

// CreateCompany stores a new company
func (m *MemStore) CreateCompany(_ context.Context, input *db.CompanyCreateInput) (*db.Company, error) {
	c := db.Company{
		Name:          input.Name,
		ScrapeURL:     input.ScrapeURL,
		LogoURL:       optional(input.LogoURL),
		FirstPageHash: optional(input.FirstPageHash),
	}
	c = m.AddCompany(c)
	return &c, nil
}

// GetCompanyByID returns a company or nil, nil
func (m *MemStore) GetCompanyByID(_ context.Context, id uuid.UUID) (*db.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

// ListCompanies returns every company ordered by id descending
func (m *MemStore) ListCompanies(context.Context) ([]db.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]db.Company, 0, len(m.companies))
	for _, c := range m.companies {
		out = append(out, *c)
	}
	sort.Slice(out, func(a, b int) bool {
		return bytes.Compare(out[a].ID[:], out[b].ID[:]) > 0
	})
	return out, nil
}

// DeleteCompany removes a company with its jobs and ignored jobs
func (m *MemStore) DeleteCompany(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.companies[id]; !ok {
		return db.ErrCompanyNotFound
	}
	delete(m.companies, id)
	for jobID, j := range m.jobs {
		if j.CompanyID == id {
			delete(m.jobs, jobID)
		}
	}
	kept := m.ignored[:0]
	for _, ij := range m.ignored {
		if ij.CompanyID != id {
			kept = append(kept, ij)
		}
	}
	m.ignored = kept
	return nil
}

// CreateJob stores a job, enforcing the same constraints as the database
func (m *MemStore) CreateJob(_ context.Context, input *db.JobCreateInput) (*db.Job, error) {
	if !input.SalaryRangeValid() {
		return nil, db.ErrSalaryRange
	}
	if !m.hasCompany(input.CompanyID) {
		return nil, db.ErrCompanyNotFound
	}

	j := m.AddJob(db.Job{
		CompanyID:         input.CompanyID,
		URL:               input.URL,
		Title:             input.Title,
		Summary:           optional(input.Summary),
		City:              optional(input.City),
		Lat:               input.Lat,
		Lng:               input.Lng,
		WorkLocationType:  input.WorkLocationType,
		SalaryMin:         input.SalaryMin,
		SalaryMax:         input.SalaryMax,
		IR35Status:        input.IR35Status,
		PostedAt:          input.PostedAt,
		Seniority:         input.Seniority,
		YearsOfExperience: input.YearsOfExperience,
		ContractLength:    input.ContractLength,
		TechStack:         input.TechStack,
	})
	return &j, nil
}

// ListJobsByCompany returns a company's jobs in date order
func (m *MemStore) ListJobsByCompany(_ context.Context, companyID uuid.UUID) ([]db.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []*db.Job
	for _, j := range m.jobs {
		if j.CompanyID == companyID {
			matched = append(matched, j)
		}
	}
	sortJobs(matched, db.JobSortDate)

	out := make([]db.Job, 0, len(matched))
	for _, j := range matched {
		out = append(out, *j)
	}
	return out, nil
}

// CreateIgnoredJob records an ignored posting
func (m *MemStore) CreateIgnoredJob(_ context.Context, input *db.IgnoredJobCreateInput) (*db.IgnoredJob, error) {
	if !m.hasCompany(input.CompanyID) {
		return nil, db.ErrCompanyNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ij := db.IgnoredJob{
		ID:        uuid.New(),
		CompanyID: input.CompanyID,
		URL:       input.URL,
		Reason:    optional(input.Reason),
		CreatedAt: m.now(),
	}
	m.ignored = append(m.ignored, ij)
	return &ij, nil
}

// ListIgnoredJobsByCompany returns a company's ignored postings, newest first
func (m *MemStore) ListIgnoredJobsByCompany(_ context.Context, companyID uuid.UUID) ([]db.IgnoredJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []db.IgnoredJob
	for i := len(m.ignored) - 1; i >= 0; i-- {
		if m.ignored[i].CompanyID == companyID {
			out = append(out, m.ignored[i])
		}
	}
	return out, nil
}

// IsJobIgnored reports whether url is ignored for the company
func (m *MemStore) IsJobIgnored(_ context.Context, companyID uuid.UUID, url string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, ij := range m.ignored {
		if ij.CompanyID == companyID && ij.URL == url {
			return true, nil
		}
	}
	return false, nil
}

// CreateProfile registers a profile; emails are unique case-insensitively
func (m *MemStore) CreateProfile(_ context.Context, input *db.ProfileCreateInput) (*db.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(input.Email))
	for _, p := range m.profiles {
		if p.Email == email {
			return nil, db.ErrDuplicateEmail
		}
	}
	if _, ok := m.profiles[input.ID]; ok {
		return nil, db.ErrProfileExists
	}

	p := &db.Profile{ID: input.ID, Email: email, CreatedAt: m.now()}
	m.profiles[p.ID] = p
	cp := *p
	return &cp, nil
}

// GetProfileByID returns a profile or nil, nil
func (m *MemStore) GetProfileByID(_ context.Context, id uuid.UUID) (*db.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *MemStore) hasCompany(id uuid.UUID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.companies[id]
	return ok
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
