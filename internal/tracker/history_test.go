package tracker

import (
	"fmt"
	"testing"
)

func TestHistoryUpsertIsCaseInsensitive(t *testing.T) {
	st := newTestStore()
	h := NewHistoryManager(st)

	ts := int64(1000)
	h.now = func() int64 { ts += 1000; return ts }

	if _, err := h.Record("RTX 4070"); err != nil {
		t.Fatal(err)
	}
	if _, err := h.Record("rtx 4070"); err != nil {
		t.Fatal(err)
	}

	entries := h.List()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after case-insensitive upsert, got %d", len(entries))
	}
	if entries[0].Query != "rtx 4070" {
		t.Errorf("expected most recent casing stored, got %q", entries[0].Query)
	}
	if entries[0].Timestamp != 3000 {
		t.Errorf("expected most recent timestamp, got %d", entries[0].Timestamp)
	}
}

func TestHistoryOrderAndBound(t *testing.T) {
	st := newTestStore()
	h := NewHistoryManager(st)

	for i := 0; i < 12; i++ {
		if _, err := h.Record(fmt.Sprintf("query-%d", i)); err != nil {
			t.Fatal(err)
		}
	}

	entries := h.List()
	if len(entries) != maxHistoryItems {
		t.Fatalf("expected %d entries, got %d", maxHistoryItems, len(entries))
	}
	if entries[0].Query != "query-11" {
		t.Errorf("expected most recent first, got %q", entries[0].Query)
	}
	if entries[len(entries)-1].Query != "query-2" {
		t.Errorf("expected oldest surviving entry to be query-2, got %q", entries[len(entries)-1].Query)
	}
}

func TestHistoryRemoveByIndex(t *testing.T) {
	st := newTestStore()
	h := NewHistoryManager(st)

	h.Record("first")
	h.Record("second")
	h.Record("third") // list: third, second, first

	if err := h.Remove(1); err != nil {
		t.Fatal(err)
	}

	entries := h.List()
	if len(entries) != 2 || entries[0].Query != "third" || entries[1].Query != "first" {
		t.Errorf("unexpected entries after remove: %+v", entries)
	}

	// Out-of-range indexes are a no-op.
	if err := h.Remove(10); err != nil {
		t.Fatal(err)
	}
	if err := h.Remove(-1); err != nil {
		t.Fatal(err)
	}
	if got := len(h.List()); got != 2 {
		t.Errorf("out-of-range remove changed the list: %d entries", got)
	}
}

func TestHistoryClear(t *testing.T) {
	st := newTestStore()
	h := NewHistoryManager(st)

	h.Record("anything")
	if err := h.Clear(); err != nil {
		t.Fatal(err)
	}
	if got := len(h.List()); got != 0 {
		t.Errorf("expected empty history, got %d entries", got)
	}
}
