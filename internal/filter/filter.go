// Package filter narrows entries and billable records by description
// keyword, phase and worktype.
package filter

import (
	"strings"

	"github.com/xolan/billable/internal/billing"
	"github.com/xolan/billable/internal/entry"
)

// Filter holds optional criteria; empty fields match everything
type Filter struct {
	Keyword    string // Case-insensitive substring of the description
	PhaseID    string // Exact phase id (case-insensitive)
	WorktypeID string // Exact worktype id (case-insensitive)
}

// NewFilter creates a Filter with the given criteria
func NewFilter(keyword, phaseID, worktypeID string) *Filter {
	return &Filter{
		Keyword:    strings.TrimSpace(keyword),
		PhaseID:    strings.TrimPrefix(strings.TrimSpace(phaseID), "@"),
		WorktypeID: strings.TrimPrefix(strings.TrimSpace(worktypeID), "#"),
	}
}

// IsEmpty returns true if all filter fields are empty (matches all entries)
func (f *Filter) IsEmpty() bool {
	return f == nil || (f.Keyword == "" && f.PhaseID == "" && f.WorktypeID == "")
}

// Matches reports whether the entry satisfies every criterion
func (f *Filter) Matches(e entry.Entry) bool {
	return f.match(e.Description, e.PhaseID, e.WorktypeID)
}

// MatchesRecord reports whether a billable record satisfies every criterion
func (f *Filter) MatchesRecord(r billing.Record) bool {
	return f.match(r.Description, r.PhaseID, r.WorktypeID)
}

func (f *Filter) match(description, phaseID, worktypeID string) bool {
	if f.IsEmpty() {
		return true
	}
	if f.Keyword != "" && !strings.Contains(strings.ToLower(description), strings.ToLower(f.Keyword)) {
		return false
	}
	if f.PhaseID != "" && !strings.EqualFold(phaseID, f.PhaseID) {
		return false
	}
	if f.WorktypeID != "" && !strings.EqualFold(worktypeID, f.WorktypeID) {
		return false
	}
	return true
}

// FilterEntries returns the entries matching f. An empty filter returns the
// input unchanged.
func FilterEntries(entries []entry.Entry, f *Filter) []entry.Entry {
	if f.IsEmpty() {
		return entries
	}
	filtered := make([]entry.Entry, 0, len(entries))
	for _, e := range entries {
		if f.Matches(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// FilterRecords returns the records matching f
func FilterRecords(records []billing.Record, f *Filter) []billing.Record {
	if f.IsEmpty() {
		return records
	}
	filtered := make([]billing.Record, 0, len(records))
	for _, r := range records {
		if f.MatchesRecord(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
