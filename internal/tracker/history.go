package tracker

import (
	"strings"
	"time"

	"github.com/mrivarola/ofertas/internal/models"
	"github.com/mrivarola/ofertas/internal/store"
)

const maxHistoryItems = 10

// HistoryManager keeps the bounded, recency-ordered list of past searches.
type HistoryManager struct {
	store *store.Store
	now   func() int64
}

func NewHistoryManager(s *store.Store) *HistoryManager {
	return &HistoryManager{store: s, now: nowMillis}
}

// Record upserts a search into the history: any existing entry matching the
// query case-insensitively is replaced by a fresh entry at the front, and the
// list is capped at maxHistoryItems. The original casing is what gets stored.
func (h *HistoryManager) Record(query string) (models.HistoryEntry, error) {
	entry := models.HistoryEntry{Query: query, Timestamp: h.now()}

	current := h.store.History()
	kept := make([]models.HistoryEntry, 0, len(current)+1)
	kept = append(kept, entry)
	for _, e := range current {
		if strings.EqualFold(e.Query, query) {
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) > maxHistoryItems {
		kept = kept[:maxHistoryItems]
	}

	return entry, h.store.SetHistory(kept)
}

// Remove drops the entry at the given position in the current list.
// Out-of-range indexes are a no-op.
func (h *HistoryManager) Remove(index int) error {
	current := h.store.History()
	if index < 0 || index >= len(current) {
		return nil
	}
	kept := append(current[:index:index], current[index+1:]...)
	return h.store.SetHistory(kept)
}

// Clear empties the history.
func (h *HistoryManager) Clear() error {
	return h.store.SetHistory(nil)
}

// List returns the history, most recent first.
func (h *HistoryManager) List() []models.HistoryEntry {
	return h.store.History()
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
