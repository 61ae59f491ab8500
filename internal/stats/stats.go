// Package stats compares logged time with billed time, per day and per phase.
package stats

import (
	"sort"
	"time"

	"github.com/xolan/billable/internal/billing"
	"github.com/xolan/billable/internal/entry"
)

// Statistics contains aggregated statistics for a period
type Statistics struct {
	LoggedMinutes       int
	BilledMinutes       int
	OvertimeMinutes     int
	PaddingMinutes      int
	EntryCount          int
	DaysWithEntries     int
	AverageBilledPerDay float64
}

// Uplift returns how many minutes billing added on top of the logged time
func (s Statistics) Uplift() int {
	return s.BilledMinutes - s.LoggedMinutes
}

// DayStats holds the logged and billed minutes of one day
type DayStats struct {
	Day             string
	LoggedMinutes   int
	BilledMinutes   int
	OvertimeMinutes int
	PaddingMinutes  int
	EntryCount      int
}

// PhaseBreakdown contains the logged minutes of one phase
type PhaseBreakdown struct {
	PhaseID      string
	TotalMinutes int
	EntryCount   int
}

// NoPhase labels entries without a phase
const NoPhase = "(no phase)"

// ByDay returns a row per day that has entries or records, in day order.
// Days are evaluated in loc. Ongoing entries are counted but have no
// logged time yet.
func ByDay(entries []entry.Entry, records []billing.Record, loc *time.Location) []DayStats {
	if loc == nil {
		loc = time.Local
	}

	days := make(map[string]*DayStats)
	get := func(t time.Time) *DayStats {
		key := t.In(loc).Format("2006-01-02")
		d, ok := days[key]
		if !ok {
			d = &DayStats{Day: key}
			days[key] = d
		}
		return d
	}

	for _, e := range entries {
		if e.DeletedAt != nil {
			continue
		}
		d := get(e.Start)
		d.EntryCount++
		d.LoggedMinutes += minutes(e.Duration())
	}

	for _, r := range records {
		d := get(r.Start)
		m := minutes(r.Duration())
		d.BilledMinutes += m
		switch r.Source {
		case billing.SourceRoundedOverlapping:
			d.OvertimeMinutes += m
		case billing.SourceMinimumBillableTime:
			d.PaddingMinutes += m
		}
	}

	out := make([]DayStats, 0, len(days))
	for _, d := range days {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// Calculate totals the period start..end. The average is over every day of
// the period, not only the days with entries.
func Calculate(entries []entry.Entry, records []billing.Record, start, end time.Time) Statistics {
	var s Statistics

	for _, d := range ByDay(entries, records, start.Location()) {
		s.LoggedMinutes += d.LoggedMinutes
		s.BilledMinutes += d.BilledMinutes
		s.OvertimeMinutes += d.OvertimeMinutes
		s.PaddingMinutes += d.PaddingMinutes
		s.EntryCount += d.EntryCount
		if d.EntryCount > 0 {
			s.DaysWithEntries++
		}
	}

	if totalDays := int(end.Sub(start).Hours()/24) + 1; totalDays > 0 {
		s.AverageBilledPerDay = float64(s.BilledMinutes) / float64(totalDays)
	}
	return s
}

// ByPhase groups logged time by phase, largest first
func ByPhase(entries []entry.Entry) []PhaseBreakdown {
	phaseMap := make(map[string]*PhaseBreakdown)
	for _, e := range entries {
		if e.DeletedAt != nil {
			continue
		}
		phase := e.PhaseID
		if phase == "" {
			phase = NoPhase
		}
		b, ok := phaseMap[phase]
		if !ok {
			b = &PhaseBreakdown{PhaseID: phase}
			phaseMap[phase] = b
		}
		b.TotalMinutes += minutes(e.Duration())
		b.EntryCount++
	}

	breakdowns := make([]PhaseBreakdown, 0, len(phaseMap))
	for _, b := range phaseMap {
		breakdowns = append(breakdowns, *b)
	}
	sort.Slice(breakdowns, func(i, j int) bool {
		if breakdowns[i].TotalMinutes != breakdowns[j].TotalMinutes {
			return breakdowns[i].TotalMinutes > breakdowns[j].TotalMinutes
		}
		return breakdowns[i].PhaseID < breakdowns[j].PhaseID
	})
	return breakdowns
}

func minutes(d time.Duration) int {
	return int(d / time.Minute)
}
