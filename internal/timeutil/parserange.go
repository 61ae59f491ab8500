package timeutil

import (
	"fmt"
	"time"
)

// Range is an inclusive time range
type Range struct {
	Start time.Time
	End   time.Time
}

// FromDay returns the day key of the first day
func (r Range) FromDay() string {
	return r.Start.Format(DayLayout)
}

// ToDay returns the day key of the last day
func (r Range) ToDay() string {
	return r.End.Format(DayLayout)
}

// Contains reports whether t lies within the range
func (r Range) Contains(t time.Time) bool {
	return IsInRange(t, r.Start, r.End)
}

// String implements fmt.Stringer
func (r Range) String() string {
	if r.FromDay() == r.ToDay() {
		return r.FromDay()
	}
	return r.FromDay() + " to " + r.ToDay()
}

// RangeFlags holds the range selection flags shared by the commands
type RangeFlags struct {
	Date  string
	From  string
	To    string
	Last  int
	Week  bool
	Month bool
}

// IsEmpty reports whether no range flag was given
func (f RangeFlags) IsEmpty() bool {
	return f.Date == "" && f.From == "" && f.To == "" && f.Last == 0 && !f.Week && !f.Month
}

// ParseRange resolves flags to a range in loc. Without flags the range is
// today. Only one of --date, --from/--to, --last, --week and --month may be
// used at a time.
func ParseRange(flags RangeFlags, now time.Time, loc *time.Location, weekStart time.Weekday) (Range, error) {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)

	selected := 0
	for _, set := range []bool{flags.Date != "", flags.From != "" || flags.To != "", flags.Last != 0, flags.Week, flags.Month} {
		if set {
			selected++
		}
	}
	if selected > 1 {
		return Range{}, fmt.Errorf("use only one of --date, --from/--to, --last, --week or --month")
	}

	switch {
	case flags.Date != "":
		day, err := ParseDate(flags.Date, now, loc)
		if err != nil {
			return Range{}, fmt.Errorf("invalid --date: %w", err)
		}
		return Range{Start: day, End: EndOfDay(day)}, nil

	case flags.Last < 0:
		return Range{}, fmt.Errorf("invalid --last value %d: must be positive", flags.Last)

	case flags.Last > 0:
		return Range{Start: StartOfDay(now.AddDate(0, 0, -(flags.Last - 1))), End: EndOfDay(now)}, nil

	case flags.Week:
		return Range{Start: StartOfWeek(now, weekStart), End: EndOfWeek(now, weekStart)}, nil

	case flags.Month:
		return Range{Start: StartOfMonth(now), End: EndOfMonth(now)}, nil

	case flags.From != "" || flags.To != "":
		return parseFromTo(flags.From, flags.To, now, loc)
	}

	return Range{Start: StartOfDay(now), End: EndOfDay(now)}, nil
}

// parseFromTo handles --from/--to. A missing --from starts at the --to day,
// a missing --to ends today.
func parseFromTo(fromStr, toStr string, now time.Time, loc *time.Location) (Range, error) {
	var r Range

	if toStr != "" {
		to, err := ParseDate(toStr, now, loc)
		if err != nil {
			return Range{}, fmt.Errorf("invalid --to date: %w", err)
		}
		r.End = EndOfDay(to)
	} else {
		r.End = EndOfDay(now)
	}

	if fromStr != "" {
		from, err := ParseDate(fromStr, now, loc)
		if err != nil {
			return Range{}, fmt.Errorf("invalid --from date: %w", err)
		}
		r.Start = from
	} else {
		r.Start = StartOfDay(r.End)
	}

	if r.Start.After(r.End) {
		return Range{}, fmt.Errorf("--from date (%s) is after --to date (%s)", r.FromDay(), r.ToDay())
	}
	return r, nil
}
