package handlers

import (
	"context"
	"fmt"

	"github.com/xolan/billable/internal/cli"
)

// ConfirmDay locks a day so its entries can no longer change
func ConfirmDay(deps *cli.Deps, date string) {
	day, ok := resolveDay(deps, date)
	if !ok {
		return
	}

	if err := deps.Services.Ledger.Confirm(context.Background(), day); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to confirm day")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Confirmed %s\n", deps.Services.Ledger.DayKey(day))
}

// UnconfirmDay unlocks a confirmed day
func UnconfirmDay(deps *cli.Deps, date string) {
	day, ok := resolveDay(deps, date)
	if !ok {
		return
	}

	key := deps.Services.Ledger.DayKey(day)
	was, err := deps.Services.Ledger.Unconfirm(context.Background(), day)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to unconfirm day")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	if !was {
		_, _ = fmt.Fprintf(deps.Stdout, "%s was not confirmed\n", key)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Unconfirmed %s\n", key)
}

// ListConfirmed lists the confirmed days
func ListConfirmed(deps *cli.Deps) {
	days, err := deps.Services.Ledger.List(context.Background())
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	if len(days) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No confirmed days")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Confirmed days (%d):\n", len(days))
	for _, d := range days {
		_, _ = fmt.Fprintf(deps.Stdout, "  %s  confirmed %s\n",
			d.Day, d.ConfirmedAt.In(deps.Services.Reconcile.Location()).Format("2006-01-02 15:04"))
	}
}
