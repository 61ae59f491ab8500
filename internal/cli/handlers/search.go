package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/xolan/billable/internal/cli"
	"github.com/xolan/billable/internal/filter"
	"github.com/xolan/billable/internal/timeutil"
)

// Search lists entries whose description contains keyword. Without range
// flags every entry is searched.
func Search(deps *cli.Deps, keyword string, flags timeutil.RangeFlags, f *filter.Filter) {
	r := timeutil.Range{Start: time.Unix(0, 0), End: time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)}
	if !flags.IsEmpty() {
		var ok bool
		if r, ok = resolveRange(deps, flags); !ok {
			return
		}
	}

	criteria := filter.NewFilter(keyword, "", "")
	if f != nil {
		criteria.PhaseID = f.PhaseID
		criteria.WorktypeID = f.WorktypeID
	}

	result, err := deps.Services.Entry.List(r, criteria)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	cli.PrintWarnings(deps, result.Warnings)

	if len(result.Entries) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No entries found matching '%s'\n", keyword)
		return
	}

	n := len(result.Entries)
	_, _ = fmt.Fprintf(deps.Stdout, "Search results for '%s' (%d %s):\n", keyword, n, cli.Pluralize("result", n))
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	printEntries(deps, result.Entries)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %s\n", cli.FormatDuration(result.Total))
}
