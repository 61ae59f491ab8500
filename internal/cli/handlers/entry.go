package handlers

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xolan/billable/internal/cli"
	"github.com/xolan/billable/internal/filter"
	"github.com/xolan/billable/internal/service"
	"github.com/xolan/billable/internal/timeutil"
)

// CreateEntry logs a new entry from raw input on date (empty means today)
func CreateEntry(deps *cli.Deps, rawInput, date string) {
	day, ok := resolveDay(deps, date)
	if !ok {
		return
	}

	e, err := deps.Services.Entry.Create(context.Background(), rawInput, day)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingTimeRange):
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Invalid format. Missing 'HH:MM-HH:MM' time range")
			_, _ = fmt.Fprintln(deps.Stderr, "Usage: billable <description> [@phase] [#worktype] HH:MM-HH:MM")
			_, _ = fmt.Fprintln(deps.Stderr, "Example: billable triage tickets @acme-support #support 09:00-10:30")
		case errors.Is(err, service.ErrEmptyDescription):
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Description cannot be empty")
		default:
			printValidationError(deps, err)
		}
		deps.Exit(1)
		return
	}

	minutes := int(e.Duration() / time.Minute)
	_, _ = fmt.Fprintf(deps.Stdout, "Logged: %s %s (%s)\n",
		cli.FormatClockSpan(e.Start, *e.End), cli.FormatEntry(*e), cli.FormatDuration(minutes))
}

// printValidationError explains an entry the service refused
func printValidationError(deps *cli.Deps, err error) {
	_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
	switch {
	case errors.Is(err, service.ErrDayLocked):
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Unlock the day with 'billable unconfirm <date>' first")
	case errors.Is(err, service.ErrUnknownPhase), errors.Is(err, service.ErrUnknownWorktype):
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: List the known phases and worktypes with 'billable catalog'")
	case errors.Is(err, service.ErrPhaseInactive), errors.Is(err, service.ErrWorktypeInactive):
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Inactive phases and worktypes cannot receive new time")
	case errors.Is(err, service.ErrInvalidTimeRange):
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: The end must be after the start on the same day (24:00 ends at midnight)")
	}
}

// ListEntries lists entries for the given range and filter
func ListEntries(deps *cli.Deps, flags timeutil.RangeFlags, f *filter.Filter) {
	r, ok := resolveRange(deps, flags)
	if !ok {
		return
	}

	result, err := deps.Services.Entry.List(r, f)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	cli.PrintWarnings(deps, result.Warnings)
	period := cli.BuildPeriodWithFilters(periodName(deps, r), f)

	if len(result.Entries) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No entries found for %s\n", period)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Entries for %s:\n", period)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	printEntries(deps, result.Entries)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %s\n", cli.FormatDuration(result.Total))
}

func printEntries(deps *cli.Deps, entries []service.IndexedEntry) {
	maxIndex := 0
	for _, ie := range entries {
		if ie.ActiveIndex > maxIndex {
			maxIndex = ie.ActiveIndex
		}
	}
	maxIndexWidth := len(strconv.Itoa(maxIndex))
	showDate := cli.SpansMultipleDaysIndexed(entries)

	for _, ie := range entries {
		e := ie.Entry
		span := e.Start.Format("15:04") + "-     "
		duration := "running"
		if e.End != nil {
			span = cli.FormatClockSpan(e.Start, *e.End)
			duration = cli.FormatDuration(int(e.Duration() / time.Minute))
		}
		if showDate {
			span = e.Start.Format("2006-01-02") + " " + span
		}
		_, _ = fmt.Fprintf(deps.Stdout, "[%*d] %s  %s (%s)\n",
			maxIndexWidth, ie.ActiveIndex, span, cli.FormatEntry(e), duration)
	}
}

// DeleteEntry deletes an entry with optional confirmation
func DeleteEntry(deps *cli.Deps, indexStr string, skipConfirm bool) {
	userIndex, err := strconv.Atoi(indexStr)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid index '%s'. Index must be a number\n", indexStr)
		deps.Exit(1)
		return
	}

	if userIndex < 1 {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Index must be 1 or greater (got %d)\n", userIndex)
		deps.Exit(1)
		return
	}

	ie, err := deps.Services.Entry.GetByIndex(userIndex)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: List entries with 'billable list' to see available indices")
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Entry to delete:")
	_, _ = fmt.Fprintf(deps.Stdout, "  %s %s  %s\n",
		ie.Entry.Start.Format("2006-01-02"),
		spanOf(ie),
		cli.FormatEntry(ie.Entry))

	if !skipConfirm {
		if !promptConfirmation(deps.Stdout, deps.Stdin) {
			_, _ = fmt.Fprintln(deps.Stdout, "Deletion cancelled")
			return
		}
	}

	deleted, err := deps.Services.Entry.Delete(context.Background(), userIndex)
	if err != nil {
		printValidationError(deps, err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Deleted: %s\n", cli.FormatEntry(*deleted))
	_, _ = fmt.Fprintln(deps.Stdout, "Tip: Use 'billable undo' to recover this entry if needed")
}

func spanOf(ie *service.IndexedEntry) string {
	if ie.Entry.End == nil {
		return ie.Entry.Start.Format("15:04") + "-"
	}
	return cli.FormatClockSpan(ie.Entry.Start, *ie.Entry.End)
}

// RestoreEntry restores the most recently deleted entry
func RestoreEntry(deps *cli.Deps) {
	restored, err := deps.Services.Entry.Restore(context.Background())
	if err != nil {
		if errors.Is(err, service.ErrNoDeletedEntries) {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: no deleted entries found")
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: No entries to restore. Delete an entry first with 'billable delete <index>'")
		} else {
			printValidationError(deps, err)
		}
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Restored: %s\n", cli.FormatEntry(*restored))
	_, _ = fmt.Fprintf(deps.Stdout, "  Date: %s\n", restored.Start.Format("2006-01-02 15:04"))
}

// promptConfirmation asks the user to confirm deletion
func promptConfirmation(stdout io.Writer, stdin io.Reader) bool {
	_, _ = fmt.Fprint(stdout, "Delete this entry? [y/N]: ")

	scanner := bufio.NewScanner(stdin)
	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(scanner.Text())
	return response == "y" || response == "Y"
}
