// Package cli provides the CLI presentation layer for the billable
// application. It handles command-line output formatting and user
// interaction.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/xolan/billable/internal/entry"
	"github.com/xolan/billable/internal/filter"
	"github.com/xolan/billable/internal/service"
	"github.com/xolan/billable/internal/storage"
	"github.com/xolan/billable/internal/timeutil"
)

// FormatDuration formats minutes as a human-readable string
// Examples: "30m", "2h", "1h 30m"
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// FormatPhaseAndWorktype formats phase and worktype for display.
// Returns format like: "@phase", "#worktype" or "@phase #worktype".
// Returns empty string if neither is set.
func FormatPhaseAndWorktype(phaseID, worktypeID string) string {
	var parts []string
	if phaseID != "" {
		parts = append(parts, "@"+phaseID)
	}
	if worktypeID != "" {
		parts = append(parts, "#"+worktypeID)
	}
	return strings.Join(parts, " ")
}

// FormatEntryForLog formats a description with optional phase and worktype.
// Returns format like: "description" or "description [@phase #worktype]"
func FormatEntryForLog(description, phaseID, worktypeID string) string {
	metadata := FormatPhaseAndWorktype(phaseID, worktypeID)
	if metadata == "" {
		return description
	}
	return fmt.Sprintf("%s [%s]", description, metadata)
}

// FormatEntry formats an entry for display
func FormatEntry(e entry.Entry) string {
	return FormatEntryForLog(e.Description, e.PhaseID, e.WorktypeID)
}

// FormatClockSpan formats start and end as "HH:MM-HH:MM". An end at the
// following midnight is shown as 24:00.
func FormatClockSpan(start, end time.Time) string {
	endStr := end.Format("15:04")
	if endStr == "00:00" && end.After(start) {
		endStr = "24:00"
	}
	return start.Format("15:04") + "-" + endStr
}

// FormatElapsedTime formats a duration as human-readable elapsed time
// Examples: "5m", "1h 23m", "2h"
func FormatElapsedTime(d time.Duration) string {
	return FormatDuration(int(d.Minutes()))
}

// FormatRange formats a range for human-readable display
func FormatRange(r timeutil.Range) string {
	start, end := r.Start, r.End
	if start.Format("2006-01-02") == end.Format("2006-01-02") {
		return start.Format("Mon, Jan 2, 2006")
	}
	if start.Year() == end.Year() {
		return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("%s - %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
}

// FormatCorruptionWarning formats a ParseWarning into a human-readable string
func FormatCorruptionWarning(warning storage.ParseWarning) string {
	content := warning.Content
	if len(content) > 50 {
		content = content[:47] + "..."
	}
	return fmt.Sprintf("  Line %d: %s (error: %s)", warning.LineNumber, content, warning.Error)
}

// BuildPeriodWithFilters appends filter information to the period description.
// Example: "today" -> "today (@support #dev "deploy")"
func BuildPeriodWithFilters(period string, f *filter.Filter) string {
	if f.IsEmpty() {
		return period
	}

	filters := FormatPhaseAndWorktype(f.PhaseID, f.WorktypeID)
	if f.Keyword != "" {
		filters = strings.TrimSpace(fmt.Sprintf("%s %q", filters, f.Keyword))
	}
	return fmt.Sprintf("%s (%s)", period, filters)
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	if n := len(word); n > 1 && word[n-1] == 'y' && !strings.ContainsRune("aeiou", rune(word[n-2])) {
		return word[:n-1] + "ies"
	}
	return word + "s"
}

// SpansMultipleDaysIndexed checks if indexed entries span multiple calendar days
func SpansMultipleDaysIndexed(entries []service.IndexedEntry) bool {
	if len(entries) < 2 {
		return false
	}
	firstDay := entries[0].Entry.Start.Format("2006-01-02")
	for _, ie := range entries[1:] {
		if ie.Entry.Start.Format("2006-01-02") != firstDay {
			return true
		}
	}
	return false
}

// FormatTimerStartTime formats the timer start time relative to now
func FormatTimerStartTime(startedAt, now time.Time) string {
	startTime := startedAt.Format("15:04")

	isToday := startedAt.Year() == now.Year() &&
		startedAt.Month() == now.Month() &&
		startedAt.Day() == now.Day()

	if isToday {
		return fmt.Sprintf("today at %s", startTime)
	}
	return fmt.Sprintf("%s at %s", startedAt.Format("Mon Jan 2"), startTime)
}

// PrintWarnings reports corrupted storage lines on stderr
func PrintWarnings(d *Deps, warnings []storage.ParseWarning) {
	if len(warnings) == 0 {
		return
	}
	_, _ = fmt.Fprintf(d.Stderr, "Warning: Found %d corrupted line(s) in storage file:\n", len(warnings))
	for _, warning := range warnings {
		_, _ = fmt.Fprintln(d.Stderr, FormatCorruptionWarning(warning))
	}
	_, _ = fmt.Fprintln(d.Stderr)
}
