package tracker

import "testing"

func TestWatchToggle(t *testing.T) {
	st := newTestStore()
	w := NewWatchSet(st)

	watched, err := w.Toggle("placa de video")
	if err != nil {
		t.Fatal(err)
	}
	if !watched {
		t.Error("expected first toggle to watch the query")
	}
	if !w.IsWatched("placa de video") {
		t.Error("expected query to be watched")
	}

	watched, err = w.Toggle("PLACA DE VIDEO")
	if err != nil {
		t.Fatal(err)
	}
	if watched {
		t.Error("expected case-insensitive second toggle to unwatch")
	}
	if w.IsWatched("placa de video") {
		t.Error("expected query to be unwatched")
	}
}

func TestWatchOrderNewestFirst(t *testing.T) {
	st := newTestStore()
	w := NewWatchSet(st)

	w.Toggle("first")
	w.Toggle("second")

	queries := w.List()
	if len(queries) != 2 || queries[0].Query != "second" || queries[1].Query != "first" {
		t.Errorf("unexpected order: %+v", queries)
	}
}

func TestWatchRemove(t *testing.T) {
	st := newTestStore()
	w := NewWatchSet(st)

	w.Toggle("keep")
	w.Toggle("drop")

	if err := w.Remove("DROP"); err != nil {
		t.Fatal(err)
	}
	if w.IsWatched("drop") {
		t.Error("expected query removed")
	}
	if !w.IsWatched("keep") {
		t.Error("unrelated query removed")
	}

	// Removing an absent query is a no-op.
	if err := w.Remove("missing"); err != nil {
		t.Fatal(err)
	}
}
