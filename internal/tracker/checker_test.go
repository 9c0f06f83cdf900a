package tracker

import (
	"context"
	"errors"
	"testing"

	"github.com/mrivarola/ofertas/internal/models"
)

// fakeBackend serves canned envelopes per query and fails on demand.
type fakeBackend struct {
	envelopes map[string]*models.Envelope
	failing   map[string]bool
	calls     []string
}

func (f *fakeBackend) Search(ctx context.Context, query string) (*models.Envelope, error) {
	f.calls = append(f.calls, query)
	if f.failing[query] {
		return nil, errors.New("provider unavailable")
	}
	return f.envelopes[query], nil
}

func TestCheckAllAggregatesAcrossQueries(t *testing.T) {
	st := newTestStore()
	w := NewWatchSet(st)
	w.Toggle("gpu")
	w.Toggle("ssd")

	fb := &fakeBackend{
		envelopes: map[string]*models.Envelope{
			"gpu": envelopeFor("gpu", "c1", dropProduct("rtx", 900, 1000)),
			"ssd": envelopeFor("ssd", "c2", dropProduct("nvme", 80, 100), dropProduct("sata", 40, 60)),
		},
	}

	c := NewChecker(fb, w, NewDetector(st, w), st)
	added, err := c.CheckAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if added != 3 {
		t.Errorf("expected 3 new alerts across queries, got %d", added)
	}
	if len(fb.calls) != 2 {
		t.Errorf("expected 2 sequential backend calls, got %v", fb.calls)
	}
	if _, ok := st.LastCheck(); !ok {
		t.Error("expected last-check timestamp to be recorded")
	}
}

func TestCheckAllSkipsFailedQueries(t *testing.T) {
	st := newTestStore()
	w := NewWatchSet(st)
	w.Toggle("broken")
	w.Toggle("working")

	fb := &fakeBackend{
		envelopes: map[string]*models.Envelope{
			"working": envelopeFor("working", "c1", dropProduct("item", 45, 50)),
		},
		failing: map[string]bool{"broken": true},
	}

	c := NewChecker(fb, w, NewDetector(st, w), st)
	added, err := c.CheckAll(context.Background())
	if err != nil {
		t.Fatalf("per-query failure must not surface: %v", err)
	}
	if added != 1 {
		t.Errorf("expected 1 alert from the surviving query, got %d", added)
	}
	if len(fb.calls) != 2 {
		t.Errorf("expected the loop to continue past the failure, calls: %v", fb.calls)
	}
}

func TestCheckAllWithoutWatchedQueries(t *testing.T) {
	st := newTestStore()
	w := NewWatchSet(st)

	c := NewChecker(&fakeBackend{}, w, NewDetector(st, w), st)
	_, err := c.CheckAll(context.Background())
	if !errors.Is(err, ErrNoWatchedQueries) {
		t.Errorf("expected ErrNoWatchedQueries, got %v", err)
	}
	if _, ok := st.LastCheck(); ok {
		t.Error("last-check timestamp must not be set when nothing ran")
	}
}

func TestCheckAllRejectsReentrantStart(t *testing.T) {
	st := newTestStore()
	w := NewWatchSet(st)
	w.Toggle("gpu")

	c := NewChecker(&fakeBackend{}, w, NewDetector(st, w), st)
	c.busy.Store(true)

	_, err := c.CheckAll(context.Background())
	if !errors.Is(err, ErrCheckInProgress) {
		t.Errorf("expected ErrCheckInProgress, got %v", err)
	}
}

func TestCheckAllStopsOnCancelledContext(t *testing.T) {
	st := newTestStore()
	w := NewWatchSet(st)
	w.Toggle("gpu")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fb := &fakeBackend{}
	c := NewChecker(fb, w, NewDetector(st, w), st)
	if _, err := c.CheckAll(ctx); err == nil {
		t.Error("expected context error")
	}
	if len(fb.calls) != 0 {
		t.Errorf("expected no backend calls after cancellation, got %v", fb.calls)
	}
}
