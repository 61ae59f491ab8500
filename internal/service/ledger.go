package service

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xolan/billable/internal/billing"
	"github.com/xolan/billable/internal/ledger"
	"github.com/xolan/billable/internal/timeutil"
)

// LedgerService manages confirmed days and exported records. The ledger is
// opened on first use.
type LedgerService struct {
	path string
	loc  *time.Location
	log  *zap.Logger

	mu sync.Mutex
	db *ledger.Ledger
}

// NewLedgerService creates a new LedgerService for the ledger at path
func NewLedgerService(path string, loc *time.Location, log *zap.Logger) *LedgerService {
	if log == nil {
		log = zap.NewNop()
	}
	return &LedgerService{path: path, loc: loc, log: log.Named("ledger")}
}

// Path returns the ledger location
func (s *LedgerService) Path() string {
	return s.path
}

func (s *LedgerService) open() (*ledger.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db, nil
	}
	db, err := ledger.Open(s.path, s.log)
	if err != nil {
		return nil, err
	}
	s.db = db
	return db, nil
}

// Close closes the ledger if it was opened
func (s *LedgerService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// DayKey returns the ledger key of the day containing t
func (s *LedgerService) DayKey(t time.Time) string {
	return ledger.DayKey(t.In(s.loc))
}

// Confirm locks the day containing day
func (s *LedgerService) Confirm(ctx context.Context, day time.Time) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	return db.Confirm(ctx, s.DayKey(day))
}

// Unconfirm unlocks the day containing day and reports whether it was locked
func (s *LedgerService) Unconfirm(ctx context.Context, day time.Time) (bool, error) {
	db, err := s.open()
	if err != nil {
		return false, err
	}
	return db.Unconfirm(ctx, s.DayKey(day))
}

// IsLocked reports whether the day containing t is confirmed. A ledger that
// does not exist yet has no confirmed days and is not created.
func (s *LedgerService) IsLocked(ctx context.Context, t time.Time) (bool, error) {
	if !s.isOpen() {
		if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
	}
	db, err := s.open()
	if err != nil {
		return false, err
	}
	return db.IsConfirmed(ctx, s.DayKey(t))
}

// List returns all confirmed days in day order
func (s *LedgerService) List(ctx context.Context) ([]ledger.ConfirmedDay, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	return db.ListConfirmed(ctx)
}

// Exports returns the records exported for r
func (s *LedgerService) Exports(ctx context.Context, r timeutil.Range) ([]ledger.ExportRecord, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	return db.ListExports(ctx, r.FromDay(), r.ToDay())
}

// Unconfirmed returns the days of r that are not confirmed
func (s *LedgerService) Unconfirmed(ctx context.Context, r timeutil.Range) ([]string, error) {
	confirmed, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	locked := make(map[string]bool, len(confirmed))
	for _, d := range confirmed {
		locked[d.Day] = true
	}

	var days []string
	for _, d := range timeutil.Days(r.Start, r.End) {
		key := s.DayKey(d)
		if !locked[key] {
			days = append(days, key)
		}
	}
	return days, nil
}

func (s *LedgerService) replaceExport(ctx context.Context, r timeutil.Range, records []billing.Record) (string, error) {
	db, err := s.open()
	if err != nil {
		return "", err
	}
	return db.ReplaceExport(ctx, r.FromDay(), r.ToDay(), records)
}

func (s *LedgerService) isOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db != nil
}
