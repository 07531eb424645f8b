// Package search implements job search: it turns filter criteria into store
// predicates, runs the count and page queries, and assembles result pages.
package search

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jonathan/contract-board/internal/db"
	"github.com/jonathan/contract-board/internal/types"
)

// AnyValue is the sentinel the job board UI sends for "no filter"
const AnyValue = "Any"

// Pagination defaults and bounds. MaxPage keeps (page-1)*limit inside int.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	MaxPage      = math.MaxInt32
)

// Recency windows accepted by DatePosted
const (
	DatePostedToday = "today"
	DatePostedWeek  = "week"
	DatePostedMonth = "month"
)

// FilterCriteria is the full set of user-supplied search inputs. Every
// filter is optional; empty values and AnyValue mean "not filtered".
type FilterCriteria struct {
	Keywords         string     `json:"keywords,omitempty"`
	City             string     `json:"city,omitempty"`
	Distance         string     `json:"distance,omitempty"` // accepted, never applied
	IR35Status       string     `json:"ir35Status,omitempty" validate:"omitempty,oneof=inside outside Any"`
	WorkLocationType string     `json:"workLocationType,omitempty" validate:"omitempty,oneof=remote hybrid onsite Any"`
	Seniority        string     `json:"seniority,omitempty" validate:"omitempty,oneof=junior mid senior lead Any"`
	DayRateMin       *int       `json:"dayRateMin,omitempty" validate:"omitempty,min=0"`
	DayRateMax       *int       `json:"dayRateMax,omitempty" validate:"omitempty,min=0"`
	DatePosted       string     `json:"datePosted,omitempty" validate:"omitempty,oneof=today week month Any"`
	Page             int        `json:"page" validate:"min=1,max=2147483647"`
	Limit            int        `json:"limit" validate:"min=1,max=100"`
	SortBy           db.JobSort `json:"sortBy" validate:"oneof=date salary"`
}

// WithDefaults returns a copy with zero page, limit and sort filled in
func (c FilterCriteria) WithDefaults() FilterCriteria {
	if c.Page == 0 {
		c.Page = DefaultPage
	}
	if c.Limit == 0 {
		c.Limit = DefaultLimit
	}
	if c.SortBy == "" {
		c.SortBy = db.JobSortDate
	}
	return c
}

// Normalize returns a copy with text filters trimmed and every spelling of
// AnyValue cleared, so enum validation sees only real values.
func (c FilterCriteria) Normalize() FilterCriteria {
	for _, f := range []*string{&c.Keywords, &c.City, &c.Distance, &c.IR35Status, &c.WorkLocationType, &c.Seniority, &c.DatePosted} {
		*f, _ = filterValue(*f)
	}
	c.SortBy = db.JobSort(strings.ToLower(strings.TrimSpace(string(c.SortBy))))
	return c
}

// Validate checks bounds and enum values. It is meant for the boundary:
// criteria that fail here must not reach Service.Search.
func (c *FilterCriteria) Validate() error {
	return types.ValidateStruct(c)
}

// ParseDayRateBand expands a UI day-rate band such as "500-750" into its
// bounds. AnyValue and "" yield two nils.
func ParseDayRateBand(band string) (minRate, maxRate *int, err error) {
	band = strings.TrimSpace(band)
	if band == "" || isAny(band) {
		return nil, nil, nil
	}

	lo, hi, ok := strings.Cut(band, "-")
	if !ok {
		return nil, nil, fmt.Errorf("day rate band %q must look like MIN-MAX", band)
	}
	loVal, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid day rate band minimum %q", lo)
	}
	hiVal, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid day rate band maximum %q", hi)
	}
	if loVal < 0 || hiVal < 0 {
		return nil, nil, fmt.Errorf("day rate band %q must not be negative", band)
	}
	return &loVal, &hiVal, nil
}

// isAny reports whether s is the "no filter" sentinel
func isAny(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), AnyValue)
}

// filterValue returns the trimmed value and whether it actually filters
func filterValue(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || isAny(s) {
		return "", false
	}
	return s, true
}
