// Package service provides the business logic layer for the billable
// application. It wraps storage, timer, catalog, ledger and the billing
// engine behind one API for the CLI.
package service

import (
	"time"

	"github.com/xolan/billable/internal/billing"
	"github.com/xolan/billable/internal/entry"
	"github.com/xolan/billable/internal/stats"
	"github.com/xolan/billable/internal/storage"
	"github.com/xolan/billable/internal/timer"
	"github.com/xolan/billable/internal/timeutil"
)

// IndexedEntry represents an entry with its display index
type IndexedEntry struct {
	Entry       entry.Entry
	ActiveIndex int // 1-based user-facing index (among active entries)
}

// ListResult contains the results of listing entries
type ListResult struct {
	Entries  []IndexedEntry
	Warnings []storage.ParseWarning
	Range    timeutil.Range
	Total    int // Total logged minutes of finished entries
}

// TimerStatus represents the current state of the timer
type TimerStatus struct {
	Running     bool
	State       *timer.TimerState
	ElapsedTime time.Duration
}

// ReconcileResult holds the billable records of a range and the figures
// derived from them
type ReconcileResult struct {
	Range    timeutil.Range
	Location *time.Location
	Records  []billing.Record
	// Skipped lists the ids of entries that produced no record
	Skipped  []string
	Summary  billing.Summary
	Cases    []billing.CaseSummary
	Days     []stats.DayStats
	Phases   []stats.PhaseBreakdown
	Stats    stats.Statistics
	Running  *timer.TimerState
	Warnings []storage.ParseWarning
}

// ExportResult describes a finished export
type ExportResult struct {
	Range   timeutil.Range
	Records int
	Minutes int
	// RunID is set for ledger exports
	RunID string
	// UnconfirmedDays lists days in the export that are not confirmed yet
	UnconfirmedDays []string
}
