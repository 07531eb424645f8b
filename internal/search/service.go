package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
	_ "time/tzdata" // DefaultTimezone must resolve on hosts without zoneinfo

	"github.com/google/uuid"

	"github.com/jonathan/contract-board/internal/db"
)

// DefaultTimezone is the zone whose calendar day "today" refers to unless
// WithLocation says otherwise. It matches the server's SEARCH_TIMEZONE default.
const DefaultTimezone = "Europe/London"

// ErrInvalidCriteria wraps validation failures of criteria passed to Search
var ErrInvalidCriteria = errors.New("invalid search criteria")

// Page is one page of search results
type Page struct {
	Jobs        []db.JobWithCompany `json:"jobs"`
	Total       int                 `json:"total"`
	Page        int                 `json:"page"`
	Limit       int                 `json:"limit"`
	TotalPages  int                 `json:"totalPages"`
	HasNextPage bool                `json:"hasNextPage"`
	HasPrevPage bool                `json:"hasPrevPage"`
}

// Service answers job searches and single-job lookups
type Service struct {
	store    Store
	executor *Executor
	now      func() time.Time
	location *time.Location
}

// Option configures a Service
type Option func(*Service)

// WithClock overrides the clock used to anchor recency filters
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLocation sets the time zone whose calendar day "today" refers to.
// A nil loc keeps DefaultTimezone.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// NewService creates a search service over store
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		executor: NewExecutor(store),
		now:      time.Now,
		location: defaultLocation(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search returns the requested page of jobs matching every filter in c.
// Text filters are normalized and zero page, limit and sort take their
// defaults; anything else out of range is rejected with ErrInvalidCriteria
// before the store is touched.
func (s *Service) Search(ctx context.Context, c FilterCriteria) (*Page, error) {
	c = c.Normalize().WithDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
	}

	start := time.Now()
	preds := BuildPredicates(c, s.now().In(s.location))
	for _, p := range preds {
		searchPredicates.WithLabelValues(p.Kind.String()).Inc()
	}

	result, err := s.executor.Execute(ctx, preds, c.SortBy, c.Page, c.Limit)
	searchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		searchTotal.WithLabelValues(string(c.SortBy), "error").Inc()
		return nil, fmt.Errorf("failed to search jobs: %w", err)
	}
	searchTotal.WithLabelValues(string(c.SortBy), "ok").Inc()
	searchResultTotal.Observe(float64(result.Total))

	page := newPage(result, c.Page, c.Limit)
	log.Printf("[search] %d predicate(s), sort=%s page=%d/%d: %d of %d job(s) in %s",
		len(preds), c.SortBy, page.Page, page.TotalPages, len(page.Jobs), page.Total, time.Since(start))
	return page, nil
}

// ByID returns a job with its company, or nil, nil when the job does not exist
func (s *Service) ByID(ctx context.Context, id uuid.UUID) (*db.JobWithCompany, error) {
	job, err := s.store.GetJobWithCompany(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get job %s: %w", id, err)
	}
	return job, nil
}

// defaultLocation loads DefaultTimezone, falling back to UTC
func defaultLocation() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func newPage(r *Result, page, limit int) *Page {
	totalPages := TotalPages(r.Total, limit)
	return &Page{
		Jobs:        r.Items,
		Total:       r.Total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// TotalPages is ceil(total/limit), or 0 when there is nothing to page
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
