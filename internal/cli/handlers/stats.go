package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/billable/internal/cli"
	"github.com/xolan/billable/internal/filter"
	"github.com/xolan/billable/internal/timeutil"
)

// ShowStats compares logged and billed time per day for a range
func ShowStats(deps *cli.Deps, flags timeutil.RangeFlags, f *filter.Filter) {
	if flags.IsEmpty() {
		flags.Week = true
	}
	r, ok := resolveRange(deps, flags)
	if !ok {
		return
	}

	res, err := deps.Services.Reconcile.Run(r, f)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	s := res.Stats
	period := cli.BuildPeriodWithFilters(cli.FormatRange(r), f)
	_, _ = fmt.Fprintf(deps.Stdout, "Statistics for %s:\n", period)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Logged time:     %s\n", cli.FormatDuration(s.LoggedMinutes))
	_, _ = fmt.Fprintf(deps.Stdout, "Billed time:     %s\n", cli.FormatDuration(s.BilledMinutes))
	_, _ = fmt.Fprintf(deps.Stdout, "  overtime:      %s\n", cli.FormatDuration(s.OvertimeMinutes))
	_, _ = fmt.Fprintf(deps.Stdout, "  minimum:       %s\n", cli.FormatDuration(s.PaddingMinutes))
	_, _ = fmt.Fprintf(deps.Stdout, "Total entries:   %d %s\n", s.EntryCount, cli.Pluralize("entry", s.EntryCount))
	_, _ = fmt.Fprintf(deps.Stdout, "Days with work:  %d %s\n", s.DaysWithEntries, cli.Pluralize("day", s.DaysWithEntries))
	_, _ = fmt.Fprintf(deps.Stdout, "Billed per day:  %s\n", cli.FormatDuration(int(s.AverageBilledPerDay)))

	if len(res.Days) > 0 {
		_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
		_, _ = fmt.Fprintf(deps.Stdout, "%-12s %9s %9s %9s\n", "Day", "Logged", "Billed", "Uplift")
		for _, d := range res.Days {
			_, _ = fmt.Fprintf(deps.Stdout, "%-12s %9s %9s %9s\n",
				d.Day,
				cli.FormatDuration(d.LoggedMinutes),
				cli.FormatDuration(d.BilledMinutes),
				signedDuration(d.BilledMinutes-d.LoggedMinutes))
		}
	}

	if len(res.Phases) > 0 {
		_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
		_, _ = fmt.Fprintln(deps.Stdout, "Logged by phase:")
		for _, p := range res.Phases {
			_, _ = fmt.Fprintf(deps.Stdout, "  %-20s %9s  (%d %s)\n",
				p.PhaseID, cli.FormatDuration(p.TotalMinutes), p.EntryCount, cli.Pluralize("entry", p.EntryCount))
		}
	}
}

func signedDuration(minutes int) string {
	if minutes < 0 {
		return "-" + cli.FormatDuration(-minutes)
	}
	return "+" + cli.FormatDuration(minutes)
}
