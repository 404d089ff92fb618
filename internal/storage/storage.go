package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/openchess/entrywatch/internal/event"
)

// Store keeps per-event snapshots in a directory of JSON files keyed by
// event ID.
type Store struct {
	dataDir string
}

// New creates a Store rooted at dataDir, creating the directory if needed.
// A leading ~/ expands to the user's home directory.
func New(dataDir string) (*Store, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{dataDir: dataDir}, nil
}

// Dir returns the resolved data directory.
func (s *Store) Dir() string {
	return s.dataDir
}

func (s *Store) snapshotPath(eventID string) string {
	// Event IDs come from URL digits, but never trust them as path input.
	return filepath.Join(s.dataDir, filepath.Base(eventID)+".json")
}

// Load returns the stored snapshot for an event, or nil when none exists or
// the stored content no longer parses. Corruption is absence, not an error.
func (s *Store) Load(eventID string) (*event.Snapshot, error) {
	data, err := os.ReadFile(s.snapshotPath(eventID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading snapshot %s: %w", eventID, err)
	}

	var snap event.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, nil
	}
	return &snap, nil
}

// Save atomically replaces the stored snapshot for an event: the new content
// is written to a temp file and renamed over the old one, so a reader never
// observes a partial record.
func (s *Store) Save(eventID string, snap *event.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot %s: %w", eventID, err)
	}

	path := s.snapshotPath(eventID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot %s: %w", eventID, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("committing snapshot %s: %w", eventID, err)
	}
	return nil
}

// Delete removes the stored snapshot for an event. Deleting a snapshot that
// does not exist is not an error.
func (s *Store) Delete(eventID string) error {
	err := os.Remove(s.snapshotPath(eventID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting snapshot %s: %w", eventID, err)
	}
	return nil
}

// IDs enumerates every event ID with a stored snapshot.
func (s *Store) IDs() ([]string, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("listing data directory: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	return ids, nil
}

// All loads every stored snapshot, skipping unreadable entries.
func (s *Store) All() ([]*event.Snapshot, error) {
	ids, err := s.IDs()
	if err != nil {
		return nil, err
	}

	snaps := make([]*event.Snapshot, 0, len(ids))
	for _, id := range ids {
		snap, err := s.Load(id)
		if err != nil || snap == nil {
			continue
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

// SweepExpired deletes every snapshot whose known dates are all strictly in
// the past relative to now (or that has no dates at all) and returns the
// removed event IDs.
func (s *Store) SweepExpired(now time.Time) ([]string, error) {
	ids, err := s.IDs()
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, id := range ids {
		snap, err := s.Load(id)
		if err != nil {
			continue
		}
		if snap == nil {
			// Unparseable leftovers are useless; clear them too.
			if s.Delete(id) == nil {
				removed = append(removed, id)
			}
			continue
		}
		if event.Expired(snap.DatesParsed(), now) {
			if err := s.Delete(id); err == nil {
				removed = append(removed, id)
			}
		}
	}
	return removed, nil
}
