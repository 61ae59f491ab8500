package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xolan/billable/internal/entry"
	"github.com/xolan/billable/internal/filter"
	"github.com/xolan/billable/internal/storage"
	"github.com/xolan/billable/internal/timeutil"
)

// Common errors for the entry service
var (
	ErrMissingTimeRange = errors.New("missing 'HH:MM-HH:MM' time range in input")
	ErrInvalidIndex     = errors.New("invalid entry index")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrNoEntries        = errors.New("no entries found")
	ErrNoDeletedEntries = errors.New("no deleted entries to restore")
)

// EntryService provides operations for managing raw entries
type EntryService struct {
	store    *storage.Store
	validate *validator
	loc      *time.Location
	log      *zap.Logger
	now      func() time.Time
	newID    func() string
}

// Create creates a new entry on day from raw input.
// Input format: "<description> [@phase] [#worktype] HH:MM-HH:MM"
// (e.g., "triage tickets @acme-support #support 09:03-09:58")
func (s *EntryService) Create(ctx context.Context, rawInput string, day time.Time) (*entry.Entry, error) {
	rawInput = strings.TrimSpace(rawInput)
	fields := strings.Fields(rawInput)
	if len(fields) == 0 || !entry.IsClockRange(fields[len(fields)-1]) {
		return nil, ErrMissingTimeRange
	}
	clock := fields[len(fields)-1]
	description := strings.TrimSpace(strings.TrimSuffix(rawInput, clock))

	cleanDesc, phaseID, worktypeID := entry.ParsePhaseAndWorktype(description)
	if cleanDesc == "" {
		return nil, ErrEmptyDescription
	}

	start, end, err := entry.ParseClockRange(clock, day.In(s.loc))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}

	e := entry.Entry{
		ID:          s.newID(),
		PhaseID:     phaseID,
		WorktypeID:  worktypeID,
		Start:       start,
		End:         &end,
		Description: cleanDesc,
		RawInput:    rawInput,
	}
	if err := s.validate.Entry(ctx, e); err != nil {
		return nil, err
	}

	if err := s.store.Append(e); err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}
	s.log.Debug("entry created", zap.String("id", e.ID), zap.Time("start", start), zap.Time("end", end))

	return &e, nil
}

// List returns the active entries starting within r that match f, in time
// order
func (s *EntryService) List(r timeutil.Range, f *filter.Filter) (*ListResult, error) {
	active, warnings, err := s.readIndexed()
	if err != nil {
		return nil, err
	}

	var filtered []IndexedEntry
	for _, ie := range active {
		if r.Contains(ie.Entry.Start) && f.Matches(ie.Entry) {
			filtered = append(filtered, ie)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Entry.Start.Before(filtered[j].Entry.Start)
	})

	total := 0
	for _, ie := range filtered {
		total += int(ie.Entry.Duration() / time.Minute)
	}

	return &ListResult{
		Entries:  filtered,
		Warnings: warnings,
		Range:    r,
		Total:    total,
	}, nil
}

// Delete soft-deletes the entry at the given user index (1-based). Entries
// of confirmed days cannot be deleted.
func (s *EntryService) Delete(ctx context.Context, userIndex int) (*entry.Entry, error) {
	ie, err := s.GetByIndex(userIndex)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Unlocked(ctx, ie.Entry.Start); err != nil {
		return nil, err
	}

	deleted, err := s.store.SoftDelete(ie.Entry.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete entry: %w", err)
	}

	// Clean up old deleted entries (>7 days old)
	if n, err := s.store.CleanupOldDeleted(); err != nil {
		s.log.Warn("cleanup of deleted entries failed", zap.Error(err))
	} else if n > 0 {
		s.log.Debug("purged deleted entries", zap.Int("count", n))
	}

	return &deleted, nil
}

// Restore restores the most recently deleted entry unless its day is
// confirmed
func (s *EntryService) Restore(ctx context.Context) (*entry.Entry, error) {
	latest, err := s.store.MostRecentDeleted()
	if err != nil {
		if errors.Is(err, storage.ErrNoDeletedEntries) {
			return nil, ErrNoDeletedEntries
		}
		return nil, fmt.Errorf("failed to restore entry: %w", err)
	}
	if err := s.validate.Unlocked(ctx, latest.Start); err != nil {
		return nil, err
	}

	restored, err := s.store.Restore(latest.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to restore entry: %w", err)
	}
	return &restored, nil
}

// GetByIndex returns the entry at the given user index (1-based)
func (s *EntryService) GetByIndex(userIndex int) (*IndexedEntry, error) {
	if userIndex < 1 {
		return nil, ErrInvalidIndex
	}

	active, _, err := s.readIndexed()
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, ErrNoEntries
	}
	if userIndex > len(active) {
		return nil, fmt.Errorf("%w: valid range is 1-%d", ErrIndexOutOfRange, len(active))
	}
	return &active[userIndex-1], nil
}

// readIndexed numbers the active entries in storage order
func (s *EntryService) readIndexed() ([]IndexedEntry, []storage.ParseWarning, error) {
	result, err := s.store.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read entries: %w", err)
	}

	var active []IndexedEntry
	for _, e := range result.Entries {
		if e.DeletedAt == nil {
			active = append(active, IndexedEntry{Entry: e, ActiveIndex: len(active) + 1})
		}
	}
	return active, result.Warnings, nil
}
