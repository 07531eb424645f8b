package server

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/contract-board/internal/db"
)

func newCompany(name string) db.Company {
	return db.Company{Name: name, ScrapeURL: "https://" + uuid.NewString() + ".example.com/careers"}
}

type companyList struct {
	Companies []db.Company `json:"companies"`
	Count     int          `json:"count"`
}

type companyJobs struct {
	Company db.CompanySummary `json:"company"`
	Jobs    []db.Job          `json:"jobs"`
	Count   int               `json:"count"`
}

type ignoredList struct {
	IgnoredJobs []db.IgnoredJob `json:"ignoredJobs"`
	Count       int             `json:"count"`
}

func TestHandleCreateCompany(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/companies", map[string]any{
		"name":      "Example Ltd",
		"scrapeUrl": "https://example.com/careers",
		"logoUrl":   "https://example.com/logo.png",
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	company := decodeBody[db.Company](t, w)
	assert.NotEqual(t, uuid.Nil, company.ID)
	assert.Equal(t, "Example Ltd", company.Name)
	require.NotNil(t, company.LogoURL)

	stored, err := ts.store.GetCompanyByID(t.Context(), company.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestHandleCreateCompany_Validation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name      string
		body      any
		wantField string
	}{
		{"missing name", map[string]any{"scrapeUrl": "https://example.com"}, "name"},
		{"missing scrape url", map[string]any{"name": "Acme"}, "scrapeUrl"},
		{"bad scrape url", map[string]any{"name": "Acme", "scrapeUrl": "careers page"}, "scrapeUrl"},
		{"bad logo url", map[string]any{"name": "Acme", "scrapeUrl": "https://example.com", "logoUrl": "logo"}, "logoUrl"},
		{"malformed json", "[", "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, "/companies", tt.body, true)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decodeBody[map[string]string](t, w)["error"], tt.wantField)
		})
	}
}

func TestHandleListCompanies(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/companies", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	empty := decodeBody[map[string]any](t, w)
	assert.Equal(t, []any{}, empty["companies"])

	low := ts.store.AddCompany(db.Company{ID: uuid.MustParse("00000000-0000-4000-8000-000000000001"), Name: "Low"})
	high := ts.store.AddCompany(db.Company{ID: uuid.MustParse("ffffffff-0000-4000-8000-000000000001"), Name: "High"})

	w = ts.do(t, http.MethodGet, "/companies", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeBody[companyList](t, w)
	require.Equal(t, 2, list.Count)
	assert.Equal(t, high.ID, list.Companies[0].ID)
	assert.Equal(t, low.ID, list.Companies[1].ID)
}

func TestHandleDeleteCompany(t *testing.T) {
	ts := newTestServer(t)
	company := ts.store.AddCompany(newCompany("Acme"))
	job := seedJobs(ts, company, 1)[0]

	w := ts.do(t, http.MethodDelete, "/companies/"+company.ID.String(), nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "deleted", decodeBody[map[string]string](t, w)["status"])

	w = ts.do(t, http.MethodGet, "/jobs/"+job.ID.String(), nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code, "jobs are removed with their company")

	w = ts.do(t, http.MethodDelete, "/companies/"+company.ID.String(), nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodDelete, "/companies/not-a-uuid", nil, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody[map[string]string](t, w)["error"], "Invalid company ID")
}

func TestHandleListCompanyJobs(t *testing.T) {
	ts := newTestServer(t)
	company := ts.store.AddCompany(newCompany("Acme"))
	other := ts.store.AddCompany(newCompany("Other"))
	jobs := seedJobs(ts, company, 3)
	seedJobs(ts, other, 2)

	w := ts.do(t, http.MethodGet, "/companies/"+company.ID.String()+"/jobs", nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody[companyJobs](t, w)
	assert.Equal(t, "Acme", resp.Company.Name)
	assert.Equal(t, 3, resp.Count)
	for i, j := range resp.Jobs {
		assert.Equal(t, jobs[i].ID, j.ID, "most recently posted first")
	}

	w = ts.do(t, http.MethodGet, "/companies/"+uuid.NewString()+"/jobs", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodGet, "/companies/nope/jobs", nil, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleIgnoredJobs(t *testing.T) {
	ts := newTestServer(t)
	company := ts.store.AddCompany(newCompany("Acme"))
	path := "/companies/" + company.ID.String() + "/ignored-jobs"

	w := ts.do(t, http.MethodGet, path, nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{}, decodeBody[map[string]any](t, w)["ignoredJobs"])

	w = ts.do(t, http.MethodPost, path, map[string]string{
		"url":    "https://acme.example.com/jobs/permanent-role",
		"reason": "permanent position",
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody[db.IgnoredJob](t, w)
	assert.Equal(t, company.ID, created.CompanyID)

	ignored, err := ts.store.IsJobIgnored(t.Context(), company.ID, "https://acme.example.com/jobs/permanent-role")
	require.NoError(t, err)
	assert.True(t, ignored)

	w = ts.do(t, http.MethodGet, path, nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeBody[ignoredList](t, w)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, created.ID, list.IgnoredJobs[0].ID)

	w = ts.do(t, http.MethodPost, path, map[string]string{"url": "not a url"}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	unknown := "/companies/" + uuid.NewString() + "/ignored-jobs"
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodPost, unknown, map[string]string{"url": "https://x.example.com"}, true).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, unknown, nil, true).Code)
}
