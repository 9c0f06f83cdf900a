package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/mrivarola/ofertas/internal/models"
	"github.com/mrivarola/ofertas/internal/store"
)

// ErrNoWatchedQueries is returned by CheckAll when there is nothing to check.
var ErrNoWatchedQueries = errors.New("no watched queries to check")

// ErrCheckInProgress is returned when a batch check is already running.
var ErrCheckInProgress = errors.New("alert check already in progress")

// Searcher is the backend surface the checker needs.
type Searcher interface {
	Search(ctx context.Context, query string) (*models.Envelope, error)
}

// Checker re-runs every watched query against the backend and feeds the
// results through the detector.
type Checker struct {
	backend  Searcher
	watch    *WatchSet
	detector *Detector
	store    *store.Store
	now      func() int64

	busy atomic.Bool
}

func NewChecker(backend Searcher, w *WatchSet, d *Detector, s *store.Store) *Checker {
	return &Checker{
		backend:  backend,
		watch:    w,
		detector: d,
		store:    s,
		now:      nowMillis,
	}
}

// CheckAll processes the watched queries sequentially and returns the total
// number of new alerts recorded. A failed backend call for one query is
// skipped and the loop continues with the next; per-query failures are never
// surfaced, only the aggregate count of what succeeded. The last-check
// timestamp is updated once the loop finishes.
func (c *Checker) CheckAll(ctx context.Context) (int, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return 0, ErrCheckInProgress
	}
	defer c.busy.Store(false)

	watched := c.watch.List()
	if len(watched) == 0 {
		return 0, ErrNoWatchedQueries
	}

	added := 0
	for i, item := range watched {
		if err := ctx.Err(); err != nil {
			return added, err
		}

		ReportProgress(ctx, fmt.Sprintf("Checking %q (%d/%d)...", item.Query, i+1, len(watched)))

		env, err := c.backend.Search(ctx, item.Query)
		if err != nil {
			// Keep going with the next query.
			continue
		}
		added += c.detector.Process(item.Query, env)
	}

	_ = c.store.SetLastCheck(c.now())
	return added, nil
}
