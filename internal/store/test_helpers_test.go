package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/startlist/internal/model"
)

// createTestStore creates a new temp-dir store for testing.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestEntries builds n consecutive entries starting at 5m with a 1m gap.
func createTestEntries(eventID int64, n int) []model.Entry {
	entries := make([]model.Entry, n)
	for i := range entries {
		entries[i] = model.Entry{
			EventID:       eventID,
			ParticipantID: int64(100 + i),
			StartSequence: i + 1,
			StartTime:     model.DurationPtr(5*time.Minute + time.Duration(i)*time.Minute),
		}
	}
	return entries
}

// createTestSeeding returns an audit row for entries.
func createTestSeeding(t *testing.T, id string, eventID int64, entries []model.Entry) model.Seeding {
	t.Helper()
	fp, err := model.Fingerprint(entries)
	if err != nil {
		t.Fatalf("Fingerprint() failed: %v", err)
	}
	return model.Seeding{
		GenerationID: id,
		EventID:      eventID,
		Entries:      len(entries),
		Fingerprint:  fp,
		CreatedAt:    time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}
