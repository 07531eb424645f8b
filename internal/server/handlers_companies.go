package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/contract-board/internal/db"
	"github.com/jonathan/contract-board/internal/types"
)

// companyFromPath resolves the {id} path value to an existing company.
// It writes the 400/404 response itself and returns nil in that case.
func (s *Server) companyFromPath(w http.ResponseWriter, r *http.Request) *db.Company {
	companyID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid company ID")
		return nil
	}

	company, err := s.store.GetCompanyByID(r.Context(), companyID)
	if err != nil {
		s.writeError(w, r, err)
		return nil
	}
	if company == nil {
		s.errorResponse(w, http.StatusNotFound, "Company not found")
		return nil
	}
	return company
}

// handleListCompanies lists every company, newest id first
func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.store.ListCompanies(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if companies == nil {
		companies = []db.Company{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"companies": companies,
		"count":     len(companies),
	})
}

// handleCreateCompany registers a company to scrape
func (s *Server) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	var input db.CompanyCreateInput
	if err := decodeJSON(w, r, &input); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := types.ValidateStruct(&input); err != nil {
		s.writeError(w, r, validationError(err))
		return
	}

	company, err := s.store.CreateCompany(r.Context(), &input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	log.Printf("[companies] created %s %q", company.ID, company.Name)
	s.jsonResponse(w, http.StatusCreated, company)
}

// handleDeleteCompany removes a company together with its jobs
func (s *Server) handleDeleteCompany(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid company ID")
		return
	}

	if err := s.store.DeleteCompany(r.Context(), companyID); err != nil {
		if errors.Is(err, db.ErrCompanyNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Company not found")
			return
		}
		s.writeError(w, r, err)
		return
	}

	log.Printf("[companies] deleted %s", companyID)
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleListCompanyJobs lists one company's jobs, most recently posted first
func (s *Server) handleListCompanyJobs(w http.ResponseWriter, r *http.Request) {
	company := s.companyFromPath(w, r)
	if company == nil {
		return
	}

	jobs, err := s.store.ListJobsByCompany(r.Context(), company.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if jobs == nil {
		jobs = []db.Job{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"company": company.Summary(),
		"jobs":    jobs,
		"count":   len(jobs),
	})
}

// ignoredJobRequest is the body of POST /companies/{id}/ignored-jobs
type ignoredJobRequest struct {
	URL    string `json:"url"`
	Reason string `json:"reason,omitempty"`
}

// handleCreateIgnoredJob adds a posting to a company's ignore list
func (s *Server) handleCreateIgnoredJob(w http.ResponseWriter, r *http.Request) {
	company := s.companyFromPath(w, r)
	if company == nil {
		return
	}

	var req ignoredJobRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	input := db.IgnoredJobCreateInput{CompanyID: company.ID, URL: req.URL, Reason: req.Reason}
	if err := types.ValidateStruct(&input); err != nil {
		s.writeError(w, r, validationError(err))
		return
	}

	ignored, err := s.store.CreateIgnoredJob(r.Context(), &input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	log.Printf("[companies] ignoring %s for %s", ignored.URL, company.ID)
	s.jsonResponse(w, http.StatusCreated, ignored)
}

// handleListIgnoredJobs lists a company's ignored postings
func (s *Server) handleListIgnoredJobs(w http.ResponseWriter, r *http.Request) {
	company := s.companyFromPath(w, r)
	if company == nil {
		return
	}

	ignored, err := s.store.ListIgnoredJobsByCompany(r.Context(), company.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ignored == nil {
		ignored = []db.IgnoredJob{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"ignoredJobs": ignored,
		"count":       len(ignored),
	})
}
