package server

import (
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/contract-board/internal/db"
	"github.com/jonathan/contract-board/internal/search"
	"github.com/jonathan/contract-board/internal/types"
)

// parseSearchQuery builds validated criteria from GET /jobs query parameters.
// Absent page, limit and sortBy take their defaults; present values must be
// valid. A dayRate band only supplies the bounds not given explicitly.
func parseSearchQuery(q url.Values) (search.FilterCriteria, error) {
	c := search.FilterCriteria{
		Keywords:         q.Get("keywords"),
		City:             q.Get("city"),
		Distance:         q.Get("distance"),
		IR35Status:       q.Get("ir35Status"),
		WorkLocationType: q.Get("workLocationType"),
		Seniority:        q.Get("seniority"),
		DatePosted:       q.Get("datePosted"),
		Page:             search.DefaultPage,
		Limit:            search.DefaultLimit,
		SortBy:           db.JobSortDate,
	}

	var err error
	if c.Page, err = queryInt(q, "page", c.Page); err != nil {
		return c, err
	}
	if c.Limit, err = queryInt(q, "limit", c.Limit); err != nil {
		return c, err
	}
	if q.Has("sortBy") {
		c.SortBy = db.JobSort(q.Get("sortBy"))
	}
	if c.DayRateMin, err = queryIntPtr(q, "dayRateMin"); err != nil {
		return c, err
	}
	if c.DayRateMax, err = queryIntPtr(q, "dayRateMax"); err != nil {
		return c, err
	}

	bandMin, bandMax, err := search.ParseDayRateBand(q.Get("dayRate"))
	if err != nil {
		return c, &ErrValidation{Field: "dayRate", Message: err.Error()}
	}
	if c.DayRateMin == nil {
		c.DayRateMin = bandMin
	}
	if c.DayRateMax == nil {
		c.DayRateMax = bandMax
	}

	c = c.Normalize()
	if err := c.Validate(); err != nil {
		return c, validationError(err)
	}
	return c, nil
}

// queryInt parses an integer parameter, returning def when it is absent
func queryInt(q url.Values, key string, def int) (int, error) {
	if !q.Has(key) {
		return def, nil
	}
	val, err := strconv.Atoi(strings.TrimSpace(q.Get(key)))
	if err != nil {
		return 0, &ErrValidation{Field: key, Message: "must be an integer"}
	}
	return val, nil
}

// queryIntPtr parses an optional integer parameter; empty and "Any" are unset
func queryIntPtr(q url.Values, key string) (*int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" || strings.EqualFold(raw, search.AnyValue) {
		return nil, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &ErrValidation{Field: key, Message: "must be an integer"}
	}
	return &val, nil
}

// handleSearchJobs serves one page of filtered jobs
func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseSearchQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	page, err := s.search.Search(r.Context(), criteria)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, page)
}

// handleGetJob retrieves a job with its company
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.search.ByID(r.Context(), jobID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleCreateJob ingests a scraped job
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var input db.JobCreateInput
	if err := decodeJSON(w, r, &input); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := types.ValidateStruct(&input); err != nil {
		s.writeError(w, r, validationError(err))
		return
	}
	if !input.SalaryRangeValid() {
		s.writeError(w, r, db.ErrSalaryRange)
		return
	}

	job, err := s.store.CreateJob(r.Context(), &input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	log.Printf("[jobs] created %s %q for company %s", job.ID, job.Title, job.CompanyID)
	s.jsonResponse(w, http.StatusCreated, job)
}
