package storage

import (
	"sort"
	"time"

	"github.com/xolan/billable/internal/billing"
	"github.com/xolan/billable/internal/entry"
)

// Index answers next entry lookups for minimum billing from a snapshot of
// entries. It never touches the file and is safe for concurrent use.
type Index struct {
	spans []span
}

type span struct {
	id    string
	start time.Time
	// end is zero for ongoing entries
	end time.Time
}

// NewIndex builds an index over entries. Deleted entries are ignored and
// starts are floored onto the rounding grid, matching what the rounder bills.
func NewIndex(entries []entry.Entry) *Index {
	spans := make([]span, 0, len(entries))
	for _, e := range entries {
		if e.DeletedAt != nil {
			continue
		}
		s := span{id: e.ID, start: billing.FloorToGrid(e.Start)}
		if e.End != nil {
			s.end = billing.CeilToGrid(*e.End)
		}
		spans = append(spans, s)
	}
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].start.Before(spans[j].start) })
	return &Index{spans: spans}
}

// NextEntryStart returns the earliest entry start at or after after,
// skipping the excluded ids. A finished entry that is still running at after
// blocks immediately, so after itself is returned. Ongoing entries only
// count by their start.
func (x *Index) NextEntryStart(after time.Time, exclude []string) (time.Time, bool) {
	skip := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}

	for _, s := range x.spans {
		if skip[s.id] {
			continue
		}
		if !s.start.Before(after) {
			// spans are sorted, so nothing later can beat this one
			return s.start, true
		}
		if !s.end.IsZero() && s.end.After(after) {
			return after, true
		}
	}
	return time.Time{}, false
}

// Len returns the number of indexed entries
func (x *Index) Len() int {
	return len(x.spans)
}

var _ billing.NextEntryFinder = (*Index)(nil)
