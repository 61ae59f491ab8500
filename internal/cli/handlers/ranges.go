package handlers

import (
	"fmt"
	"time"

	"github.com/xolan/billable/internal/cli"
	"github.com/xolan/billable/internal/timeutil"
)

// resolveRange turns range flags into a range in the configured timezone.
// It reports the error and exits on invalid flags.
func resolveRange(deps *cli.Deps, flags timeutil.RangeFlags) (timeutil.Range, bool) {
	loc := deps.Services.Reconcile.Location()
	weekStart := deps.Services.Config.Get().WeekStart()

	r, err := timeutil.ParseRange(flags, deps.Now(), loc, weekStart)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use --date, --from/--to, --last N, --week or --month")
		deps.Exit(1)
		return timeutil.Range{}, false
	}
	return r, true
}

// resolveDay parses a single date argument; empty means today
func resolveDay(deps *cli.Deps, input string) (time.Time, bool) {
	loc := deps.Services.Reconcile.Location()
	now := deps.Now().In(loc)
	if input == "" {
		return timeutil.StartOfDay(now), true
	}

	day, err := timeutil.ParseDate(input, now, loc)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid date '%s'\n", input)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return time.Time{}, false
	}
	return day, true
}

// periodName describes r, naming today when it is today
func periodName(deps *cli.Deps, r timeutil.Range) string {
	today := deps.Now().In(r.Start.Location()).Format(timeutil.DayLayout)
	if r.FromDay() == today && r.ToDay() == today {
		return "today"
	}
	return cli.FormatRange(r)
}
