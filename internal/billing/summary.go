package billing

import (
	"sort"
	"time"
)

// Summary totals billed time per source
type Summary struct {
	Rounded     time.Duration
	Overtime    time.Duration
	Padding     time.Duration
	RecordCount int
}

// Total returns all billed time including overtime and padding
func (s Summary) Total() time.Duration {
	return s.Rounded + s.Overtime + s.Padding
}

// CaseSummary totals billed time of one case. Records without a case are
// collected under an empty CaseID.
type CaseSummary struct {
	CaseID string
	Summary
}

// Totals sums record durations per source
func Totals(records []Record) Summary {
	var s Summary
	for _, r := range records {
		s.add(r)
	}
	return s
}

// ByCase sums record durations per case, largest total first. Ties are
// ordered by case id.
func ByCase(records []Record) []CaseSummary {
	index := make(map[string]int)
	var summaries []CaseSummary
	for _, r := range records {
		i, ok := index[r.CaseID]
		if !ok {
			i = len(summaries)
			index[r.CaseID] = i
			summaries = append(summaries, CaseSummary{CaseID: r.CaseID})
		}
		summaries[i].add(r)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Total() != summaries[j].Total() {
			return summaries[i].Total() > summaries[j].Total()
		}
		return summaries[i].CaseID < summaries[j].CaseID
	})
	return summaries
}

func (s *Summary) add(r Record) {
	switch r.Source {
	case SourceRoundedOverlapping:
		s.Overtime += r.Duration()
	case SourceMinimumBillableTime:
		s.Padding += r.Duration()
	default:
		s.Rounded += r.Duration()
	}
	s.RecordCount++
}
