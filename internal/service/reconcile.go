package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xolan/billable/internal/billing"
	"github.com/xolan/billable/internal/entry"
	"github.com/xolan/billable/internal/filter"
	"github.com/xolan/billable/internal/stats"
	"github.com/xolan/billable/internal/storage"
	"github.com/xolan/billable/internal/timer"
	"github.com/xolan/billable/internal/timeutil"
)

// ReconcileService turns the raw entries of a range into billable records
type ReconcileService struct {
	store     *storage.Store
	timerPath string
	catalog   *CatalogService
	loc       *time.Location
	log       *zap.Logger
	now       func() time.Time
}

// Location returns the timezone days are evaluated in
func (s *ReconcileService) Location() *time.Location {
	return s.loc
}

// Run reconciles the active entries starting within r. The running timer
// takes part as an ongoing entry: it produces no record but bounds padding.
// Padding looks at every active entry, including those outside r, so a
// range edge never lets padding run into work logged just after it.
// f narrows the resulting records, not the input.
func (s *ReconcileService) Run(r timeutil.Range, f *filter.Filter) (*ReconcileResult, error) {
	result, err := s.store.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}

	running, err := timer.LoadTimerState(s.timerPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load timer state: %w", err)
	}

	var active, inRange []entry.Entry
	for _, e := range result.Entries {
		if e.DeletedAt != nil {
			continue
		}
		active = append(active, e)
		if r.Contains(e.Start) {
			inRange = append(inRange, e)
		}
	}
	if running != nil {
		ongoing := running.Entry()
		active = append(active, ongoing)
		if r.Contains(ongoing.Start) {
			inRange = append(inRange, ongoing)
		}
	}

	cat := s.catalog.Get()
	reconciler := billing.NewReconciler(cat, cat, storage.NewIndex(active),
		billing.WithLocation(s.loc),
		billing.WithLogger(s.log),
	)
	res := reconciler.Reconcile(inRange)

	records := filter.FilterRecords(res.Records, f)
	entries := filter.FilterEntries(inRange, f)

	s.log.Debug("reconciled range",
		zap.Stringer("range", r),
		zap.Int("entries", len(inRange)),
		zap.Int("records", len(records)),
		zap.Int("skipped", len(res.Skipped)),
	)

	return &ReconcileResult{
		Range:    r,
		Location: s.loc,
		Records:  records,
		Skipped:  res.Skipped,
		Summary:  billing.Totals(records),
		Cases:    billing.ByCase(records),
		Days:     stats.ByDay(entries, records, s.loc),
		Phases:   stats.ByPhase(entries),
		Stats:    stats.Calculate(entries, records, r.Start, r.End),
		Running:  running,
		Warnings: result.Warnings,
	}, nil
}
