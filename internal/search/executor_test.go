package search

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/contract-board/internal/db"
	"github.com/jonathan/contract-board/internal/search/searchtest"
)

func TestExecutor_CountIgnoresPagination(t *testing.T) {
	store := searchtest.NewMemStore()
	for i := 0; i < 7; i++ {
		store.AddJob(db.Job{Title: "Go Engineer", IR35Status: db.IR35Outside})
	}

	exec := NewExecutor(store)
	res, err := exec.Execute(context.Background(), nil, db.JobSortDate, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, res.Total)
	assert.Len(t, res.Items, 1)

	res, err = exec.Execute(context.Background(), nil, db.JobSortDate, 9, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, res.Total, "total must reflect the full match set past the last page")
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)

	assert.Equal(t, 2, store.CountCalls)
	assert.Equal(t, 2, store.FindCalls)
}

func TestExecutor_OverflowingOffsetIsPastTheEnd(t *testing.T) {
	store := searchtest.NewMemStore()
	for i := 0; i < 3; i++ {
		store.AddJob(db.Job{Title: "Go Engineer", IR35Status: db.IR35Outside})
	}

	for _, page := range []int{math.MaxInt, math.MaxInt/100 + 2} {
		res, err := NewExecutor(store).Execute(context.Background(), nil, db.JobSortDate, page, 100)
		require.NoError(t, err)
		assert.Equal(t, 3, res.Total)
		assert.NotNil(t, res.Items)
		assert.Empty(t, res.Items, "page %d", page)
	}
	assert.Zero(t, store.FindCalls)
}

func TestExecutor_RejectsNonPositivePaging(t *testing.T) {
	store := searchtest.NewMemStore()

	_, err := NewExecutor(store).Execute(context.Background(), nil, db.JobSortDate, 0, 10)
	assert.Error(t, err)
	_, err = NewExecutor(store).Execute(context.Background(), nil, db.JobSortDate, 1, 0)
	assert.Error(t, err)
	assert.Zero(t, store.CountCalls)
}

func TestPageOffset(t *testing.T) {
	off, ok := pageOffset(3, 10)
	assert.True(t, ok)
	assert.Equal(t, 20, off)

	_, ok = pageOffset(math.MaxInt, 2)
	assert.False(t, ok)

	off, ok = pageOffset(math.MaxInt, 1)
	assert.True(t, ok)
	assert.Equal(t, math.MaxInt-1, off)
}

func TestExecutor_StoreErrors(t *testing.T) {
	countErr := errors.New("count failed")
	findErr := errors.New("find failed")

	tests := []struct {
		name      string
		failCount error
		failFind  error
		want      error
	}{
		{"count fails", countErr, nil, countErr},
		{"find fails", nil, findErr, findErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := searchtest.NewMemStore()
			store.FailCount = tt.failCount
			store.FailFind = tt.failFind

			res, err := NewExecutor(store).Execute(context.Background(), nil, db.JobSortDate, 1, 10)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExecutor_JobWithoutCompanyIsKept(t *testing.T) {
	store := searchtest.NewMemStore()
	orphan := store.AddJob(db.Job{Title: "Orphan"})

	res, err := NewExecutor(store).Execute(context.Background(), nil, db.JobSortDate, 1, 10)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, orphan.ID, res.Items[0].ID)
	assert.Nil(t, res.Items[0].Company)
}
