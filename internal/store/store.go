// Package store provides the durable local state of the tracker: search
// history, watched queries, detected price-drop alerts, the last batch-check
// timestamp and the last search envelope.
//
// Every collection lives under its own key as one JSON document. Reads fail
// soft: a missing, unreadable or corrupt value degrades to the collection's
// empty default and is never surfaced to the caller. Writes are always a
// full-collection overwrite; callers read, compute a new list, then write it
// back in a single synchronous step.
package store

import (
	"encoding/json"
	"strconv"

	"github.com/mrivarola/ofertas/internal/models"
)

// Key names mirror the original browser localStorage layout so that the
// persisted documents stay recognizable across implementations.
const (
	keyHistory    = "searchHistory"
	keyWatched    = "alertQueries"
	keyAlerts     = "priceAlerts"
	keyLastCheck  = "alertsLastCheck"
	keyLastSearch = "lastSearch"
)

// Store exposes typed access to the persisted collections.
type Store struct {
	backend Backend
}

// New wraps a Backend in a typed Store.
func New(b Backend) *Store {
	return &Store{backend: b}
}

// Open opens a SQLite-backed store at path.
func Open(path string) (*Store, error) {
	b, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	return New(b), nil
}

func (s *Store) Close() error {
	return s.backend.Close()
}

// readList decodes a JSON array key into out. Any failure leaves out untouched.
func (s *Store) readList(key string, out any) {
	raw, ok, err := s.backend.Read(key)
	if err != nil || !ok {
		return
	}
	_ = json.Unmarshal(raw, out)
}

func (s *Store) writeJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.backend.Write(key, raw)
}

// History returns the recorded searches, most recent first.
func (s *Store) History() []models.HistoryEntry {
	var entries []models.HistoryEntry
	s.readList(keyHistory, &entries)
	return entries
}

func (s *Store) SetHistory(entries []models.HistoryEntry) error {
	if len(entries) == 0 {
		return s.backend.Delete(keyHistory)
	}
	return s.writeJSON(keyHistory, entries)
}

// Watched returns the watched queries, most recently added first.
func (s *Store) Watched() []models.WatchedQuery {
	var queries []models.WatchedQuery
	s.readList(keyWatched, &queries)
	return queries
}

func (s *Store) SetWatched(queries []models.WatchedQuery) error {
	if len(queries) == 0 {
		return s.backend.Delete(keyWatched)
	}
	return s.writeJSON(keyWatched, queries)
}

// Alerts returns the stored alert records, newest first.
func (s *Store) Alerts() []models.AlertRecord {
	var alerts []models.AlertRecord
	s.readList(keyAlerts, &alerts)
	return alerts
}

func (s *Store) SetAlerts(alerts []models.AlertRecord) error {
	if len(alerts) == 0 {
		return s.backend.Delete(keyAlerts)
	}
	return s.writeJSON(keyAlerts, alerts)
}

// LastCheck returns the epoch-ms timestamp of the last batch alert check.
func (s *Store) LastCheck() (int64, bool) {
	raw, ok, err := s.backend.Read(keyLastCheck)
	if err != nil || !ok {
		return 0, false
	}
	ms, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return ms, true
}

func (s *Store) SetLastCheck(ms int64) error {
	return s.backend.Write(keyLastCheck, []byte(strconv.FormatInt(ms, 10)))
}

// LastSearch returns the most recent successful search envelope, or nil.
func (s *Store) LastSearch() *models.Envelope {
	raw, ok, err := s.backend.Read(keyLastSearch)
	if err != nil || !ok {
		return nil
	}
	var env models.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil
	}
	return &env
}

func (s *Store) SetLastSearch(env *models.Envelope) error {
	if env == nil {
		return s.backend.Delete(keyLastSearch)
	}
	return s.writeJSON(keyLastSearch, env)
}
