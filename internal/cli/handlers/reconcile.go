package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/xolan/billable/internal/billing"
	"github.com/xolan/billable/internal/cli"
	"github.com/xolan/billable/internal/filter"
	"github.com/xolan/billable/internal/timeutil"
)

// Reconcile prints the billable records of a range with their provenance,
// followed by a summary per case
func Reconcile(deps *cli.Deps, flags timeutil.RangeFlags, f *filter.Filter) {
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

	cli.PrintWarnings(deps, res.Warnings)
	period := cli.BuildPeriodWithFilters(periodName(deps, r), f)

	if len(res.Records) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "Nothing to bill for %s\n", period)
		printRunning(deps, res.Running != nil)
		return
	}

	styles := deps.Styles
	_, _ = fmt.Fprintf(deps.Stdout, "Billable time for %s:\n", period)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))

	lastDay := ""
	for _, rec := range res.Records {
		day := rec.Start.Format("2006-01-02")
		if day != lastDay {
			if lastDay != "" {
				_, _ = fmt.Fprintln(deps.Stdout)
			}
			_, _ = fmt.Fprintln(deps.Stdout, styles.Heading.Render(rec.Start.Format("Mon 2006-01-02")))
			lastDay = day
		}
		_, _ = fmt.Fprintf(deps.Stdout, "  %s  %s %6s  %-14s %s\n",
			cli.FormatClockSpan(rec.Start, rec.End),
			styles.Source(rec.Source),
			cli.FormatDuration(int(rec.Duration()/time.Minute)),
			caseLabel(rec.CaseID),
			cli.FormatEntryForLog(rec.Description, rec.PhaseID, rec.WorktypeID))
	}

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	printCaseSummary(deps, res.Cases)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	printTotals(deps, res.Summary, res.Stats.LoggedMinutes)
	printRunning(deps, res.Running != nil)
}

func printCaseSummary(deps *cli.Deps, cases []billing.CaseSummary) {
	_, _ = fmt.Fprintf(deps.Stdout, "%-16s %9s %9s %9s %9s\n", "Case", "Rounded", "Overtime", "Minimum", "Total")
	for _, c := range cases {
		_, _ = fmt.Fprintf(deps.Stdout, "%-16s %9s %9s %9s %9s\n",
			caseLabel(c.CaseID),
			minutesOf(c.Rounded),
			minutesOf(c.Overtime),
			minutesOf(c.Padding),
			minutesOf(c.Total()))
	}
}

func printTotals(deps *cli.Deps, s billing.Summary, loggedMinutes int) {
	billed := int(s.Total() / time.Minute)
	_, _ = fmt.Fprintf(deps.Stdout, "Logged: %s  Billed: %s in %d %s\n",
		cli.FormatDuration(loggedMinutes),
		cli.FormatDuration(billed),
		s.RecordCount, cli.Pluralize("record", s.RecordCount))
	if s.Overtime > 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "%s\n", deps.Styles.Warning.Render(
			fmt.Sprintf("Overtime: %s overlaps other work", minutesOf(s.Overtime))))
	}
}

func printRunning(deps *cli.Deps, running bool) {
	if running {
		_, _ = fmt.Fprintln(deps.Stdout, deps.Styles.Muted.Render("A timer is running; it is billed once stopped"))
	}
}

func caseLabel(caseID string) string {
	if caseID == "" {
		return "(no case)"
	}
	return caseID
}

func minutesOf(d time.Duration) string {
	return cli.FormatDuration(int(d / time.Minute))
}
