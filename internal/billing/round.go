package billing

import (
	"sort"
	"time"

	"github.com/xolan/billable/internal/entry"
)

// Rounded is a raw entry whose boundaries were moved onto the rounding grid
type Rounded struct {
	EntryID     string
	PhaseID     string
	WorktypeID  string
	Description string

	Start time.Time
	End   time.Time

	OriginalStart time.Time
	OriginalEnd   time.Time

	// StartRounded and EndRounded report whether the boundary actually moved
	StartRounded bool
	EndRounded   bool

	Source Source
}

// Duration returns the rounded duration
func (r Rounded) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// FloorToGrid rounds t down to the previous grid line
func FloorToGrid(t time.Time) time.Time {
	return t.Truncate(RoundingInterval)
}

// CeilToGrid rounds t up to the next grid line. Times already on the grid are
// returned unchanged.
func CeilToGrid(t time.Time) time.Time {
	floor := t.Truncate(RoundingInterval)
	if floor.Equal(t) {
		return floor
	}
	return floor.Add(RoundingInterval)
}

// Round rounds every finished entry outward onto the grid: start down, end up.
// The rounded interval always contains the original one. Ongoing entries are
// skipped. The result is sorted by rounded start; ties keep input order.
func Round(entries []entry.Entry) []Rounded {
	rounded := make([]Rounded, 0, len(entries))
	for _, e := range entries {
		if e.End == nil {
			continue
		}

		start := FloorToGrid(e.Start)
		end := CeilToGrid(*e.End)
		if !start.Before(end) {
			continue
		}

		rounded = append(rounded, Rounded{
			EntryID:       e.ID,
			PhaseID:       e.PhaseID,
			WorktypeID:    e.WorktypeID,
			Description:   e.Description,
			Start:         start,
			End:           end,
			OriginalStart: e.Start,
			OriginalEnd:   *e.End,
			StartRounded:  !start.Equal(e.Start),
			EndRounded:    !end.Equal(*e.End),
			Source:        SourceRounded,
		})
	}

	sortByStart(rounded)
	return rounded
}

func sortByStart(rounded []Rounded) {
	sort.SliceStable(rounded, func(i, j int) bool {
		return rounded[i].Start.Before(rounded[j].Start)
	})
}
