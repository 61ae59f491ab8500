package storage

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/xolan/billable/internal/entry"
	"github.com/xolan/billable/internal/osutil"
)

const (
	// EntriesFile is the name of the JSON Lines storage file
	EntriesFile = "entries.jsonl"
	// DeletedRetention is how long soft-deleted entries are kept
	DeletedRetention = 7 * 24 * time.Hour
)

var (
	// ErrEntryNotFound is returned when no entry has the requested id
	ErrEntryNotFound = errors.New("entry not found")
	// ErrNoDeletedEntries is returned when there is nothing to restore
	ErrNoDeletedEntries = errors.New("no deleted entries found")
)

// ParseWarning represents a warning about a corrupted or malformed entry
type ParseWarning struct {
	LineNumber int    // Line number in the file (1-indexed)
	Content    string // Raw content of the corrupted line
	Error      string // Description of the parsing error
}

// ReadResult contains the successfully parsed entries and a warning per
// corrupted line
type ReadResult struct {
	Entries  []entry.Entry
	Warnings []ParseWarning
}

// Store is the JSON Lines file holding raw entries, one per line, in the
// order they were logged
type Store struct {
	path string
	now  func() time.Time
}

// NewStore returns a store backed by the file at path
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// GetStoragePath returns the default location of the entries file
func GetStoragePath() (string, error) {
	return osutil.AppPath(EntriesFile)
}

// Path returns the storage file path
func (s *Store) Path() string {
	return s.path
}

// Append appends a single entry. O_APPEND keeps concurrent appends whole.
func (s *Store) Append(e entry.Entry) error {
	line, err := json.Marshal(e)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	_, err = file.Write(append(line, '\n'))
	return err
}

// Read returns all entries, including soft-deleted ones, and warnings about
// lines that could not be parsed. A missing file reads as empty.
func (s *Store) Read() (ReadResult, error) {
	result := ReadResult{
		Entries:  []entry.Entry{},
		Warnings: []ParseWarning{},
	}

	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return result, err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var e entry.Entry
		if err := json.Unmarshal(line, &e); err != nil {
			result.Warnings = append(result.Warnings, ParseWarning{
				LineNumber: lineNumber,
				Content:    string(line),
				Error:      err.Error(),
			})
			continue
		}
		if e.ID == "" {
			result.Warnings = append(result.Warnings, ParseWarning{
				LineNumber: lineNumber,
				Content:    string(line),
				Error:      "entry has no id",
			})
			continue
		}
		result.Entries = append(result.Entries, e)
	}

	return result, scanner.Err()
}

// ReadActive returns entries that are not soft-deleted
func (s *Store) ReadActive() ([]entry.Entry, error) {
	result, err := s.Read()
	if err != nil {
		return nil, err
	}

	active := make([]entry.Entry, 0, len(result.Entries))
	for _, e := range result.Entries {
		if e.DeletedAt == nil {
			active = append(active, e)
		}
	}
	return active, nil
}

// Update applies fn to the entry with the given id and saves the file.
// An error from fn aborts the update.
func (s *Store) Update(id string, fn func(*entry.Entry) error) (entry.Entry, error) {
	result, err := s.Read()
	if err != nil {
		return entry.Entry{}, err
	}

	entries := result.Entries
	for i := range entries {
		if entries[i].ID != id {
			continue
		}
		if err := fn(&entries[i]); err != nil {
			return entry.Entry{}, err
		}
		if err := s.rewrite(entries); err != nil {
			return entry.Entry{}, err
		}
		return entries[i], nil
	}
	return entry.Entry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
}

// SoftDelete marks the entry as deleted. It stays in the file until
// CleanupOldDeleted removes it.
func (s *Store) SoftDelete(id string) (entry.Entry, error) {
	now := s.now()
	return s.Update(id, func(e *entry.Entry) error {
		e.DeletedAt = &now
		return nil
	})
}

// MostRecentDeleted returns the entry with the latest deletion mark
func (s *Store) MostRecentDeleted() (entry.Entry, error) {
	result, err := s.Read()
	if err != nil {
		return entry.Entry{}, err
	}

	var latest *entry.Entry
	for i := range result.Entries {
		e := &result.Entries[i]
		if e.DeletedAt != nil && (latest == nil || e.DeletedAt.After(*latest.DeletedAt)) {
			latest = e
		}
	}
	if latest == nil {
		return entry.Entry{}, ErrNoDeletedEntries
	}
	return *latest, nil
}

// RestoreMostRecent clears the deletion mark of the most recently deleted entry
func (s *Store) RestoreMostRecent() (entry.Entry, error) {
	latest, err := s.MostRecentDeleted()
	if err != nil {
		return entry.Entry{}, err
	}
	return s.Restore(latest.ID)
}

// Restore clears the deletion mark of the entry with the given ID
func (s *Store) Restore(id string) (entry.Entry, error) {
	return s.Update(id, func(e *entry.Entry) error {
		e.DeletedAt = nil
		return nil
	})
}

// CleanupOldDeleted permanently removes entries deleted longer than
// DeletedRetention ago and returns how many were removed
func (s *Store) CleanupOldDeleted() (int, error) {
	result, err := s.Read()
	if err != nil {
		return 0, err
	}

	cutoff := s.now().Add(-DeletedRetention)
	kept := make([]entry.Entry, 0, len(result.Entries))
	for _, e := range result.Entries {
		if e.DeletedAt == nil || !e.DeletedAt.Before(cutoff) {
			kept = append(kept, e)
		}
	}

	removed := len(result.Entries) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := s.rewrite(kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// rewrite backs up the current file and atomically replaces it with entries
func (s *Store) rewrite(entries []entry.Entry) error {
	if err := s.CreateBackup(); err != nil {
		return fmt.Errorf("failed to back up storage: %w", err)
	}

	tmpFile := s.path + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(file)
	for _, e := range entries {
		line, err := json.Marshal(e)
		if err == nil {
			_, err = writer.Write(append(line, '\n'))
		}
		if err != nil {
			_ = file.Close()
			_ = os.Remove(tmpFile)
			return err
		}
	}
	if err := writer.Flush(); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return err
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, s.path)
}

// StorageHealth summarises the state of the storage file
type StorageHealth struct {
	TotalLines       int
	ValidEntries     int
	DeletedEntries   int
	CorruptedEntries int
	Warnings         []ParseWarning
}

// Validate reports the health of the storage file. A missing file is healthy.
func (s *Store) Validate() (StorageHealth, error) {
	health := StorageHealth{Warnings: []ParseWarning{}}

	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return health, nil
		}
		return health, err
	}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		health.TotalLines++
	}
	_ = file.Close()
	if err := scanner.Err(); err != nil {
		return health, err
	}

	result, err := s.Read()
	if err != nil {
		return health, err
	}
	health.ValidEntries = len(result.Entries)
	health.CorruptedEntries = len(result.Warnings)
	health.Warnings = result.Warnings
	for _, e := range result.Entries {
		if e.DeletedAt != nil {
			health.DeletedEntries++
		}
	}
	return health, nil
}
