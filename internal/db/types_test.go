package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTechStackText(t *testing.T) {
	tests := []struct {
		name  string
		stack []string
		want  *string
	}{
		{"nil", nil, nil},
		{"only blanks", []string{" ", ""}, nil},
		{"joined", []string{"Go", "PostgreSQL"}, strPtr("Go PostgreSQL")},
		{"trimmed", []string{" React ", "", "TypeScript"}, strPtr("React TypeScript")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TechStackText(tt.stack))
		})
	}
}

func TestJob_EffectivePostedAt(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	posted := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	j := Job{CreatedAt: created}
	assert.Equal(t, created, j.EffectivePostedAt())

	j.PostedAt = &posted
	assert.Equal(t, posted, j.EffectivePostedAt())
}

func TestJobCreateInput_SalaryRangeValid(t *testing.T) {
	lo, hi := 500, 750
	assert.True(t, (&JobCreateInput{}).SalaryRangeValid())
	assert.True(t, (&JobCreateInput{SalaryMin: &lo}).SalaryRangeValid())
	assert.True(t, (&JobCreateInput{SalaryMin: &lo, SalaryMax: &hi}).SalaryRangeValid())
	assert.True(t, (&JobCreateInput{SalaryMin: &lo, SalaryMax: &lo}).SalaryRangeValid())
	assert.False(t, (&JobCreateInput{SalaryMin: &hi, SalaryMax: &lo}).SalaryRangeValid())
}

func TestEnumValid(t *testing.T) {
	assert.True(t, WorkLocationOnsite.Valid())
	assert.False(t, WorkLocationType("office").Valid())
	assert.True(t, IR35Outside.Valid())
	assert.False(t, IR35Status("").Valid())
	assert.True(t, SeniorityJunior.Valid())
	assert.False(t, Seniority("Senior").Valid())
}

func TestCompany_Summary(t *testing.T) {
	var nilCompany *Company
	assert.Nil(t, nilCompany.Summary())

	logo := "https://example.com/logo.png"
	c := &Company{Name: "Example Ltd", LogoURL: &logo}
	s := c.Summary()
	require.NotNil(t, s)
	assert.Equal(t, "Example Ltd", s.Name)
	assert.Equal(t, &logo, s.LogoURL)
}

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@localhost:5432/jobs", migrateURL("postgres://u:p@localhost:5432/jobs"))
	assert.Equal(t, "pgx5://localhost/jobs", migrateURL("postgresql://localhost/jobs"))
	assert.Equal(t, "pgx5://localhost/jobs", migrateURL("pgx5://localhost/jobs"))
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	assert.Nil(t, nullIfEmpty("   "))
	require.NotNil(t, nullIfEmpty(" x "))
	assert.Equal(t, "x", *nullIfEmpty(" x "))
}

func strPtr(s string) *string { return &s }
