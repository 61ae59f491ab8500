package billing

import (
	"sort"
	"time"

	"github.com/xolan/billable/internal/entry"
)

var testDay = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return testDay.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func raw(id, phase string, start, end time.Time) entry.Entry {
	return entry.Entry{ID: id, PhaseID: phase, Start: start, End: &end, Description: "work " + id}
}

func ongoing(id, phase string, start time.Time) entry.Entry {
	return entry.Entry{ID: id, PhaseID: phase, Start: start, Description: "work " + id}
}

// testCatalog maps phases to customers and cases the way the catalog does
type testCatalog struct {
	customers map[string]string
	cases     map[string]CaseConfig
}

func (c testCatalog) CustomerForPhase(phaseID string) (string, bool) {
	id, ok := c.customers[phaseID]
	return id, ok
}

func (c testCatalog) CaseForPhase(phaseID string) (CaseConfig, bool) {
	cfg, ok := c.cases[phaseID]
	return cfg, ok
}

// startsOf answers next entry lookups from a fixed entry list
func startsOf(entries ...entry.Entry) NextEntryFinder {
	return NextEntryFinderFunc(func(after time.Time, exclude []string) (time.Time, bool) {
		skip := make(map[string]bool, len(exclude))
		for _, id := range exclude {
			skip[id] = true
		}
		var starts []time.Time
		for _, e := range entries {
			if skip[e.ID] || e.Start.Before(after) {
				continue
			}
			starts = append(starts, e.Start)
		}
		if len(starts) == 0 {
			return time.Time{}, false
		}
		sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
		return starts[0], true
	})
}

func noNextEntry() NextEntryFinder {
	return NextEntryFinderFunc(func(time.Time, []string) (time.Time, bool) {
		return time.Time{}, false
	})
}
