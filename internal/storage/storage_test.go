package storage

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/openchess/entrywatch/internal/event"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func testSnapshot(id, name string, dates ...string) *event.Snapshot {
	return &event.Snapshot{
		EventID:      id,
		EventName:    name,
		Dates:        dates,
		LastChecked:  "2025-06-01T12:00:00Z",
		Participants: []event.Participant{{Name: "Alice Adams"}},
		Count:        1,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	saved := testSnapshot("123", "Spring Open", "2025-06-02", "2025-06-03")
	if err := store.Save("123", saved); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.Load("123")
	if err != nil {
		t.Fatal(err)
	}
	if loaded == nil {
		t.Fatal("expected a snapshot back")
	}
	if loaded.EventName != "Spring Open" || loaded.Count != 1 {
		t.Errorf("unexpected snapshot: %+v", loaded)
	}
	if len(loaded.Dates) != 2 || loaded.Dates[0] != "2025-06-02" {
		t.Errorf("unexpected dates: %v", loaded.Dates)
	}
	if len(loaded.Participants) != 1 || loaded.Participants[0].Name != "Alice Adams" {
		t.Errorf("unexpected participants: %v", loaded.Participants)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := newTestStore(t)

	snap, err := store.Load("999")
	if err != nil {
		t.Fatal(err)
	}
	if snap != nil {
		t.Errorf("expected nil for missing snapshot, got %+v", snap)
	}
}

func TestStoreLoadCorrupt(t *testing.T) {
	store := newTestStore(t)
	path := filepath.Join(store.Dir(), "123.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	snap, err := store.Load("123")
	if err != nil {
		t.Fatal(err)
	}
	if snap != nil {
		t.Errorf("corrupt snapshot must read as absent, got %+v", snap)
	}
}

func TestStoreSaveLeavesNoTempFile(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save("123", testSnapshot("123", "Spring Open", "2025-06-02")); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(store.Dir())
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestStoreDelete(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save("123", testSnapshot("123", "Spring Open", "2025-06-02")); err != nil {
		t.Fatal(err)
	}

	if err := store.Delete("123"); err != nil {
		t.Fatal(err)
	}
	snap, err := store.Load("123")
	if err != nil || snap != nil {
		t.Errorf("expected snapshot gone, got %+v, %v", snap, err)
	}

	// Deleting again is fine.
	if err := store.Delete("123"); err != nil {
		t.Errorf("deleting a missing snapshot must not error: %v", err)
	}
}

func TestStoreIDs(t *testing.T) {
	store := newTestStore(t)
	for _, id := range []string{"3", "1", "2"} {
		if err := store.Save(id, testSnapshot(id, "Event "+id, "2025-06-02")); err != nil {
			t.Fatal(err)
		}
	}
	// Non-snapshot files are ignored.
	if err := os.WriteFile(filepath.Join(store.Dir(), "debug_entry_1.html"), []byte("<html>"), 0644); err != nil {
		t.Fatal(err)
	}

	ids, err := store.IDs()
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(ids)
	if len(ids) != 3 || ids[0] != "1" || ids[2] != "3" {
		t.Errorf("unexpected IDs: %v", ids)
	}
}

func TestSweepExpired(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC)

	snapshots := map[string]*event.Snapshot{
		"past":   testSnapshot("past", "Ended Event", "2025-06-01", "2025-06-02"),
		"future": testSnapshot("future", "Upcoming Event", "2025-06-01", "2025-06-15"),
		"today":  testSnapshot("today", "Running Event", "2025-06-10"),
		"undated": {
			EventID:   "undated",
			EventName: "Mystery Event",
		},
	}
	for id, snap := range snapshots {
		if err := store.Save(id, snap); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(store.Dir(), "broken.json"), []byte("oops"), 0644); err != nil {
		t.Fatal(err)
	}

	removed, err := store.SweepExpired(now)
	if err != nil {
		t.Fatal(err)
	}

	sort.Strings(removed)
	want := []string{"broken", "past", "undated"}
	if len(removed) != len(want) {
		t.Fatalf("removed %v, want %v", removed, want)
	}
	for i := range want {
		if removed[i] != want[i] {
			t.Fatalf("removed %v, want %v", removed, want)
		}
	}

	ids, err := store.IDs()
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(ids)
	if len(ids) != 2 || ids[0] != "future" || ids[1] != "today" {
		t.Errorf("expected only future and today to survive, got %v", ids)
	}
}

func TestStoreAll(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save("1", testSnapshot("1", "One", "2025-06-02")); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(store.Dir(), "bad.json"), []byte("oops"), 0644); err != nil {
		t.Fatal(err)
	}

	snaps, err := store.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 1 || snaps[0].EventName != "One" {
		t.Errorf("unexpected snapshots: %+v", snaps)
	}
}
