package billing

import "time"

// Postpone resolves overlaps that rounding introduced between entries of the
// same customer. Candidates are visited in start order and compared with the
// entries already placed. When a candidate overlaps a placed entry of the same
// known customer by exactly one rounding interval, its start moves forward by
// that interval; if that leaves nothing, the candidate is dropped because the
// earlier entry already bills the time. Larger overlaps are left alone.
func Postpone(rounded []Rounded, customers CustomerResolver) []Rounded {
	candidates := make([]Rounded, len(rounded))
	copy(candidates, rounded)
	sortByStart(candidates)

	placed := make([]Rounded, 0, len(candidates))
	placedCustomers := make([]Customer, 0, len(candidates))

	for _, candidate := range candidates {
		customer := customerOf(customers, candidate.PhaseID)

		for i, p := range placed {
			if !customer.Same(placedCustomers[i]) {
				continue
			}
			if overlapOf(p.Start, p.End, candidate.Start, candidate.End) != RoundingInterval {
				continue
			}
			candidate.Start = candidate.Start.Add(RoundingInterval)
			candidate.StartRounded = !candidate.Start.Equal(candidate.OriginalStart)
			break
		}

		if !candidate.Start.Before(candidate.End) {
			continue
		}

		placed = append(placed, candidate)
		placedCustomers = append(placedCustomers, customer)
	}

	return placed
}

// MarkOverlaps re-tags every entry that intersects an earlier accepted entry
// as overtime. Nothing is moved, shortened or dropped: double-booked time is
// reported, not prevented.
func MarkOverlaps(rounded []Rounded) []Rounded {
	accepted := append([]Rounded(nil), rounded...)
	sortByStart(accepted)

	for i := range accepted {
		for j := 0; j < i; j++ {
			if intersects(accepted[j].Start, accepted[j].End, accepted[i].Start, accepted[i].End) {
				accepted[i].Source = SourceRoundedOverlapping
				break
			}
		}
	}

	return accepted
}

// overlapOf returns how long [aStart, aEnd) and [bStart, bEnd) share, or zero
func overlapOf(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !start.Before(end) {
		return 0
	}
	return end.Sub(start)
}

// intersects reports a strictly positive overlap; touching intervals do not intersect
func intersects(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
