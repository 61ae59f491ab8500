package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xolan/billable/internal/cli"
	"github.com/xolan/billable/internal/service"
)

// StartTimer starts a new timer
func StartTimer(deps *cli.Deps, description string, force bool) {
	state, existingTimer, err := deps.Services.Timer.Start(context.Background(), description, force)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTimerAlreadyRunning) && existingTimer != nil:
			_, _ = fmt.Fprintln(deps.Stderr, "Warning: A timer is already running")
			_, _ = fmt.Fprintf(deps.Stderr, "Current timer: %s\n",
				cli.FormatEntryForLog(existingTimer.Description, existingTimer.PhaseID, existingTimer.WorktypeID))
			_, _ = fmt.Fprintf(deps.Stderr, "Started: %s\n", cli.FormatTimerStartTime(existingTimer.StartedAt, deps.Now()))
			_, _ = fmt.Fprintln(deps.Stderr)
			_, _ = fmt.Fprintln(deps.Stderr, "Options:")
			_, _ = fmt.Fprintln(deps.Stderr, "  - Stop the current timer with 'billable stop'")
			_, _ = fmt.Fprintln(deps.Stderr, "  - Override with 'billable start <description> --force'")
		case errors.Is(err, service.ErrEmptyDescription):
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Description cannot be empty")
			_, _ = fmt.Fprintln(deps.Stderr, "Usage: billable start <description> [@phase] [#worktype]")
			_, _ = fmt.Fprintln(deps.Stderr, "Example: billable start triage tickets @acme-support")
		default:
			printValidationError(deps, err)
		}
		deps.Exit(1)
		return
	}

	desc := cli.FormatEntryForLog(state.Description, state.PhaseID, state.WorktypeID)
	_, _ = fmt.Fprintf(deps.Stdout, "Timer started: %s\n", desc)
	if force && existingTimer != nil {
		_, _ = fmt.Fprintln(deps.Stdout, "(Previous timer was overwritten)")
	}
}

// StopTimer stops the current timer and creates an entry
func StopTimer(deps *cli.Deps) {
	e, state, err := deps.Services.Timer.Stop(context.Background())
	if err != nil {
		if errors.Is(err, service.ErrNoTimerRunning) {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: No timer is running")
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Start a timer with 'billable start <description>'")
		} else {
			printValidationError(deps, err)
			if state != nil {
				_, _ = fmt.Fprintln(deps.Stderr, "The timer is still running; discard it with 'billable stop --cancel'")
			}
		}
		deps.Exit(1)
		return
	}

	desc := cli.FormatEntryForLog(state.Description, state.PhaseID, state.WorktypeID)
	_, _ = fmt.Fprintf(deps.Stdout, "Stopped: %s %s (%s)\n",
		cli.FormatClockSpan(e.Start, *e.End), desc, cli.FormatDuration(int(e.Duration()/time.Minute)))
}

// CancelTimer discards the running timer
func CancelTimer(deps *cli.Deps) {
	state, err := deps.Services.Timer.Cancel()
	if err != nil {
		if errors.Is(err, service.ErrNoTimerRunning) {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: No timer is running")
		} else {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		}
		deps.Exit(1)
		return
	}

	desc := cli.FormatEntryForLog(state.Description, state.PhaseID, state.WorktypeID)
	_, _ = fmt.Fprintf(deps.Stdout, "Cancelled: %s\n", desc)
}

// ShowTimerStatus shows the current timer status
func ShowTimerStatus(deps *cli.Deps) {
	status, err := deps.Services.Timer.Status()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	if !status.Running || status.State == nil {
		_, _ = fmt.Fprintln(deps.Stdout, "No timer running")
		_, _ = fmt.Fprintln(deps.Stdout, "Start a timer with: billable start <description>")
		return
	}

	state := status.State
	desc := cli.FormatEntryForLog(state.Description, state.PhaseID, state.WorktypeID)

	_, _ = fmt.Fprintln(deps.Stdout, "Timer running:")
	_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", desc)
	_, _ = fmt.Fprintf(deps.Stdout, "  Started: %s\n", cli.FormatTimerStartTime(state.StartedAt, deps.Now()))
	_, _ = fmt.Fprintf(deps.Stdout, "  Elapsed: %s\n", cli.FormatElapsedTime(status.ElapsedTime))
}
