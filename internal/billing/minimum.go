package billing

import (
	"sort"
	"time"
)

// Padding is a synthetic interval that tops a short block up to the minimum
// billable time of its case
type Padding struct {
	// EntryID is the first entry of the padded block
	EntryID     string
	CaseID      string
	PhaseID     string
	WorktypeID  string
	Description string

	Start time.Time
	End   time.Time
}

// Duration returns the padded duration
func (p Padding) Duration() time.Duration {
	return p.End.Sub(p.Start)
}

// DayEnd returns the padding cutoff (23:55) of the day a block ending at t
// belongs to. A block ending exactly at midnight belongs to the day before.
func DayEnd(t time.Time) time.Time {
	last := t.Add(-time.Nanosecond)
	return time.Date(last.Year(), last.Month(), last.Day(), DayEndHour, DayEndMinute, 0, 0, t.Location())
}

// Pad creates padding for every block that is shorter than the minimum
// billable time of its case. Padding starts at the block end and is cut at
// 23:55 of the block's day and at the next known entry start. Entries without
// a case, and cases without a minimum, are skipped.
func Pad(entries []Rounded, cases CaseResolver, next NextEntryFinder) []Padding {
	if cases == nil {
		return nil
	}

	var order []string
	configs := make(map[string]CaseConfig)
	grouped := make(map[string][]Rounded)

	for _, e := range entries {
		if e.PhaseID == "" {
			continue
		}
		cfg, ok := cases.CaseForPhase(e.PhaseID)
		if !ok || cfg.MinBillableMinutes <= 0 {
			continue
		}
		if _, seen := grouped[cfg.CaseID]; !seen {
			order = append(order, cfg.CaseID)
			configs[cfg.CaseID] = cfg
		}
		grouped[cfg.CaseID] = append(grouped[cfg.CaseID], e)
	}

	var paddings []Padding
	for _, caseID := range order {
		minimum := configs[caseID].MinBillable()
		for _, block := range Combine(grouped[caseID]) {
			if p, ok := padBlock(block, caseID, minimum, next); ok {
				paddings = append(paddings, p)
			}
		}
	}

	sort.SliceStable(paddings, func(i, j int) bool {
		if !paddings[i].Start.Equal(paddings[j].Start) {
			return paddings[i].Start.Before(paddings[j].Start)
		}
		return paddings[i].CaseID < paddings[j].CaseID
	})
	return paddings
}

func padBlock(block Block, caseID string, minimum time.Duration, next NextEntryFinder) (Padding, bool) {
	duration := block.Duration()
	if duration >= minimum {
		return Padding{}, false
	}

	start := block.End
	end := start.Add(minimum - duration)

	if cutoff := DayEnd(block.End); end.After(cutoff) {
		end = cutoff
	}

	if next != nil {
		if nextStart, ok := next.NextEntryStart(block.End, block.EntryIDs()); ok && nextStart.Before(end) {
			end = nextStart
		}
	}

	if !start.Before(end) {
		return Padding{}, false
	}

	anchor := block.Entries[0]
	return Padding{
		EntryID:     anchor.EntryID,
		CaseID:      caseID,
		PhaseID:     anchor.PhaseID,
		WorktypeID:  anchor.WorktypeID,
		Description: anchor.Description,
		Start:       start,
		End:         end,
	}, true
}
