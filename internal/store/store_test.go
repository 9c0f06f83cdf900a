package store

import (
	"testing"

	"github.com/mrivarola/ofertas/internal/models"
)

func TestCollectionsRoundTrip(t *testing.T) {
	s := New(NewMemoryBackend())

	history := []models.HistoryEntry{{Query: "rtx 4070", Timestamp: 1000}}
	if err := s.SetHistory(history); err != nil {
		t.Fatal(err)
	}
	if got := s.History(); len(got) != 1 || got[0].Query != "rtx 4070" {
		t.Errorf("unexpected history: %+v", got)
	}

	watched := []models.WatchedQuery{{Query: "ssd", CreatedAt: 2000}}
	if err := s.SetWatched(watched); err != nil {
		t.Fatal(err)
	}
	if got := s.Watched(); len(got) != 1 || got[0].Query != "ssd" {
		t.Errorf("unexpected watched list: %+v", got)
	}

	alerts := []models.AlertRecord{{ID: "a123", Query: "ssd", Delta: -20}}
	if err := s.SetAlerts(alerts); err != nil {
		t.Fatal(err)
	}
	if got := s.Alerts(); len(got) != 1 || got[0].ID != "a123" {
		t.Errorf("unexpected alerts: %+v", got)
	}
}

func TestEmptyDefaults(t *testing.T) {
	s := New(NewMemoryBackend())

	if got := s.History(); len(got) != 0 {
		t.Errorf("expected empty history, got %+v", got)
	}
	if got := s.Watched(); len(got) != 0 {
		t.Errorf("expected empty watched list, got %+v", got)
	}
	if got := s.Alerts(); len(got) != 0 {
		t.Errorf("expected empty alerts, got %+v", got)
	}
	if _, ok := s.LastCheck(); ok {
		t.Error("expected no last-check timestamp")
	}
	if got := s.LastSearch(); got != nil {
		t.Errorf("expected nil last search, got %+v", got)
	}
}

func TestCorruptValuesDegradeToEmpty(t *testing.T) {
	b := NewMemoryBackend()
	s := New(b)

	for _, key := range []string{keyHistory, keyWatched, keyAlerts, keyLastSearch} {
		if err := b.Write(key, []byte("{not json")); err != nil {
			t.Fatal(err)
		}
	}
	b.Write(keyLastCheck, []byte("yesterday"))

	if got := s.History(); len(got) != 0 {
		t.Errorf("corrupt history should read empty, got %+v", got)
	}
	if got := s.Watched(); len(got) != 0 {
		t.Errorf("corrupt watched list should read empty, got %+v", got)
	}
	if got := s.Alerts(); len(got) != 0 {
		t.Errorf("corrupt alerts should read empty, got %+v", got)
	}
	if got := s.LastSearch(); got != nil {
		t.Errorf("corrupt last search should read nil, got %+v", got)
	}
	if _, ok := s.LastCheck(); ok {
		t.Error("corrupt last-check should read as unset")
	}

	// Recovery: writing a fresh value replaces the corrupt one.
	if err := s.SetHistory([]models.HistoryEntry{{Query: "ok", Timestamp: 1}}); err != nil {
		t.Fatal(err)
	}
	if got := s.History(); len(got) != 1 {
		t.Errorf("expected recovery after rewrite, got %+v", got)
	}
}

func TestClearingRemovesKeys(t *testing.T) {
	b := NewMemoryBackend()
	s := New(b)

	s.SetAlerts([]models.AlertRecord{{ID: "a1"}})
	if err := s.SetAlerts(nil); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := b.Read(keyAlerts); ok {
		t.Error("expected alerts key deleted when cleared")
	}
}

func TestLastCheckRoundTrip(t *testing.T) {
	s := New(NewMemoryBackend())

	if err := s.SetLastCheck(1714500000000); err != nil {
		t.Fatal(err)
	}
	ms, ok := s.LastCheck()
	if !ok || ms != 1714500000000 {
		t.Errorf("unexpected last check: %d, %v", ms, ok)
	}
}

func TestLastSearchRoundTrip(t *testing.T) {
	s := New(NewMemoryBackend())

	env := &models.Envelope{
		Query:  "gpu",
		Merged: []models.Product{{Name: "rtx", Price: 900, Link: "https://tienda.example/rtx"}},
		Total:  1,
	}
	if err := s.SetLastSearch(env); err != nil {
		t.Fatal(err)
	}

	got := s.LastSearch()
	if got == nil || got.Query != "gpu" || got.Total != 1 || got.Merged[0].Name != "rtx" {
		t.Errorf("unexpected last search: %+v", got)
	}

	if err := s.SetLastSearch(nil); err != nil {
		t.Fatal(err)
	}
	if got := s.LastSearch(); got != nil {
		t.Errorf("expected nil after clearing, got %+v", got)
	}
}
