package search

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/contract-board/internal/db"
)

// Store is the store capability search needs. *db.DB implements it; tests
// use searchtest.MemStore.
type Store interface {
	// CountJobs counts jobs matching every predicate
	CountJobs(ctx context.Context, preds []db.Predicate) (int, error)
	// FindJobs returns one sorted page of matching jobs joined to their company
	FindJobs(ctx context.Context, preds []db.Predicate, sort db.JobSort, limit, offset int) ([]db.JobWithCompany, error)
	// GetJobWithCompany returns one job or nil, nil when it does not exist
	GetJobWithCompany(ctx context.Context, id uuid.UUID) (*db.JobWithCompany, error)
}

// Result is the raw outcome of one executed search
type Result struct {
	Items []db.JobWithCompany
	Total int
}

// Executor runs a conjoined predicate against a Store
type Executor struct {
	store Store
}

// NewExecutor creates an executor over the given store
func NewExecutor(store Store) *Executor {
	return &Executor{store: store}
}

// Execute counts and fetches one page of the matching jobs. The page is not
// clamped and the count ignores pagination, so Total still reflects the full
// match set when the page is past the end. A page whose offset does not fit
// in an int is past the end of any store and is not fetched. The two store
// calls run concurrently and share no snapshot.
func (e *Executor) Execute(ctx context.Context, preds []db.Predicate, sort db.JobSort, page, limit int) (*Result, error) {
	if page < 1 || limit < 1 {
		return nil, fmt.Errorf("invalid page %d or limit %d", page, limit)
	}
	offset, ok := pageOffset(page, limit)

	var (
		total int
		items []db.JobWithCompany
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := e.store.CountJobs(gctx, preds)
		if err != nil {
			return err
		}
		total = n
		return nil
	})
	g.Go(func() error {
		if !ok {
			return nil
		}
		found, err := e.store.FindJobs(gctx, preds, sort, limit, offset)
		if err != nil {
			return err
		}
		items = found
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if items == nil {
		items = []db.JobWithCompany{}
	}
	return &Result{Items: items, Total: total}, nil
}

// pageOffset returns (page-1)*limit, or false when it overflows int
func pageOffset(page, limit int) (int, bool) {
	if page-1 > math.MaxInt/limit {
		return 0, false
	}
	return (page - 1) * limit, true
}
