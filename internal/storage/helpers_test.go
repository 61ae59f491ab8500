package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xolan/billable/internal/entry"
)

var baseTime = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func clock(hour, minute int) time.Time {
	return baseTime.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func finished(id string, start, end time.Time) entry.Entry {
	return entry.Entry{ID: id, PhaseID: "support", Start: start, End: &end, Description: "work " + id}
}

// newTestStore returns a store in a temp dir, optionally seeded with raw content
func newTestStore(t *testing.T, content string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), EntriesFile)
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create temp storage file: %v", err)
		}
	}
	s := NewStore(path)
	s.now = func() time.Time { return clock(18, 0) }
	return s
}

func appendAll(t *testing.T, s *Store, entries ...entry.Entry) {
	t.Helper()
	for _, e := range entries {
		if err := s.Append(e); err != nil {
			t.Fatalf("Append(%s) failed: %v", e.ID, err)
		}
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
