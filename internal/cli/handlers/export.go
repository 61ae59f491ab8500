package handlers

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xolan/billable/internal/cli"
	"github.com/xolan/billable/internal/filter"
	"github.com/xolan/billable/internal/service"
	"github.com/xolan/billable/internal/timeutil"
)

// Export writes the billable records of a range in formatName. File formats
// go to output, or stdout when output is empty; the ledger format writes to
// the ledger database.
func Export(deps *cli.Deps, formatName string, flags timeutil.RangeFlags, f *filter.Filter, output string) {
	format, err := service.ParseFormat(formatName)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	r, ok := resolveRange(deps, flags)
	if !ok {
		return
	}
	ctx := context.Background()

	if !format.IsFile() {
		if !f.IsEmpty() {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Filters cannot be used with the ledger export")
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: The ledger always receives complete days")
			deps.Exit(1)
			return
		}
		result, err := deps.Services.Export.ToLedger(ctx, r)
		if err != nil {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to export to the ledger")
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			deps.Exit(1)
			return
		}
		_, _ = fmt.Fprintf(deps.Stdout, "Exported %d %s (%s) for %s to %s\n",
			result.Records, cli.Pluralize("record", result.Records), cli.FormatDuration(result.Minutes),
			r, deps.Services.Ledger.Path())
		_, _ = fmt.Fprintf(deps.Stdout, "Run: %s\n", result.RunID)
		warnUnconfirmed(deps, result.UnconfirmedDays)
		return
	}

	if format == service.FormatXLSX && output == "" {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: The xlsx format needs an output file")
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Add --output hours.xlsx")
		deps.Exit(1)
		return
	}

	var w io.Writer = deps.Stdout
	var file *os.File
	if output != "" {
		file, err = os.Create(output)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to create output file '%s'\n", output)
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			deps.Exit(1)
			return
		}
		w = file
	}

	result, err := deps.Services.Export.Write(ctx, format, w, r, f)
	if file != nil {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to export %s\n", format)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	// Stdout carries the export itself, so status goes to stderr
	status := deps.Stderr
	if output != "" {
		status = deps.Stdout
		_, _ = fmt.Fprintf(status, "Exported %d %s (%s) to %s\n",
			result.Records, cli.Pluralize("record", result.Records), cli.FormatDuration(result.Minutes), output)
	}
	warnUnconfirmedTo(deps, status, result.UnconfirmedDays)
}

func warnUnconfirmed(deps *cli.Deps, days []string) {
	warnUnconfirmedTo(deps, deps.Stdout, days)
}

func warnUnconfirmedTo(deps *cli.Deps, w io.Writer, days []string) {
	if len(days) == 0 {
		return
	}
	shown := days
	if len(shown) > 5 {
		shown = append(shown[:5:5], "...")
	}
	_, _ = fmt.Fprintln(w, deps.Styles.Warning.Render(fmt.Sprintf("Warning: %d unconfirmed %s: %s",
		len(days), cli.Pluralize("day", len(days)), strings.Join(shown, ", "))))
}
