package searchtest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/contract-board/internal/db"
)

func TestLexemes(t *testing.T) {
	assert.Equal(t, []string{"senior", "frontend", "develop", "contract"}, lexemes("Senior Frontend Developer (Contract)"))
	assert.Equal(t, []string{"develop"}, lexemes("the developers"))
	assert.Empty(t, lexemes("and the of"))
}

func TestMatchesText_StopWordsOnlyMatchesNothing(t *testing.T) {
	j := &db.Job{Title: "The Best Job"}
	assert.False(t, matchesText(j, "the"))
	assert.True(t, matchesText(j, "best job"))
}

func TestCreateJob_Constraints(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore()
	c, err := m.CreateCompany(ctx, &db.CompanyCreateInput{Name: "Acme", ScrapeURL: "https://acme.test"})
	require.NoError(t, err)

	_, err = m.CreateJob(ctx, &db.JobCreateInput{CompanyID: uuid.New(), Title: "x"})
	assert.ErrorIs(t, err, db.ErrCompanyNotFound)

	lo, hi := 900, 100
	_, err = m.CreateJob(ctx, &db.JobCreateInput{CompanyID: c.ID, Title: "x", SalaryMin: &lo, SalaryMax: &hi})
	assert.ErrorIs(t, err, db.ErrSalaryRange)

	j, err := m.CreateJob(ctx, &db.JobCreateInput{CompanyID: c.ID, Title: "Go", TechStack: []string{" Go ", "", "gRPC"}})
	require.NoError(t, err)
	require.NotNil(t, j.TechStackText)
	assert.Equal(t, "Go gRPC", *j.TechStackText)
}

func TestDeleteCompany_Cascades(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore()
	keep := m.AddCompany(db.Company{Name: "Keep"})
	drop := m.AddCompany(db.Company{Name: "Drop"})
	m.AddJob(db.Job{CompanyID: keep.ID, Title: "kept"})
	m.AddJob(db.Job{CompanyID: drop.ID, Title: "dropped"})
	_, err := m.CreateIgnoredJob(ctx, &db.IgnoredJobCreateInput{CompanyID: drop.ID, URL: "https://drop.test/1"})
	require.NoError(t, err)

	require.NoError(t, m.DeleteCompany(ctx, drop.ID))
	assert.ErrorIs(t, m.DeleteCompany(ctx, drop.ID), db.ErrCompanyNotFound)

	n, err := m.CountJobs(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	ignored, err := m.IsJobIgnored(ctx, drop.ID, "https://drop.test/1")
	require.NoError(t, err)
	assert.False(t, ignored)
}

func TestCreateProfile_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore()

	_, err := m.CreateProfile(ctx, &db.ProfileCreateInput{ID: uuid.New(), Email: "Dev@Example.com"})
	require.NoError(t, err)

	_, err = m.CreateProfile(ctx, &db.ProfileCreateInput{ID: uuid.New(), Email: "dev@example.com "})
	assert.ErrorIs(t, err, db.ErrDuplicateEmail)
}
