package tracker

import (
	"strings"

	"github.com/mrivarola/ofertas/internal/models"
	"github.com/mrivarola/ofertas/internal/store"
)

// WatchSet manages the queries monitored for price drops. Membership is
// case-insensitive; the stored list keeps the most recently added query first.
type WatchSet struct {
	store *store.Store
	now   func() int64
}

func NewWatchSet(s *store.Store) *WatchSet {
	return &WatchSet{store: s, now: nowMillis}
}

// Toggle flips the watch state of query and reports whether it is watched
// afterwards. There is no way to force a state; callers can only flip it.
func (w *WatchSet) Toggle(query string) (bool, error) {
	current := w.store.Watched()
	for i, q := range current {
		if strings.EqualFold(q.Query, query) {
			kept := append(current[:i:i], current[i+1:]...)
			return false, w.store.SetWatched(kept)
		}
	}

	added := append([]models.WatchedQuery{{Query: query, CreatedAt: w.now()}}, current...)
	return true, w.store.SetWatched(added)
}

// IsWatched reports case-insensitive membership.
func (w *WatchSet) IsWatched(query string) bool {
	for _, q := range w.store.Watched() {
		if strings.EqualFold(q.Query, query) {
			return true
		}
	}
	return false
}

// Remove unwatches query explicitly. Equivalent to the remove branch of Toggle.
func (w *WatchSet) Remove(query string) error {
	current := w.store.Watched()
	kept := make([]models.WatchedQuery, 0, len(current))
	for _, q := range current {
		if strings.EqualFold(q.Query, query) {
			continue
		}
		kept = append(kept, q)
	}
	if len(kept) == len(current) {
		return nil
	}
	return w.store.SetWatched(kept)
}

// List returns the watched queries, most recently added first.
func (w *WatchSet) List() []models.WatchedQuery {
	return w.store.Watched()
}
