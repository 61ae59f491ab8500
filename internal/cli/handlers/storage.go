package handlers

import (
	"fmt"
	"strconv"

	"github.com/xolan/billable/internal/cli"
	"github.com/xolan/billable/internal/storage"
)

// ValidateStorage reports the health of the entries file and the catalog
func ValidateStorage(deps *cli.Deps) {
	health, err := deps.Services.Storage.Validate()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to read storage file")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Storage file: %s\n", deps.Services.Storage.Path())
	_, _ = fmt.Fprintf(deps.Stdout, "Total lines:  %d\n", health.TotalLines)
	_, _ = fmt.Fprintf(deps.Stdout, "Valid:        %d %s\n", health.ValidEntries, cli.Pluralize("entry", health.ValidEntries))
	_, _ = fmt.Fprintf(deps.Stdout, "Deleted:      %d\n", health.DeletedEntries)
	_, _ = fmt.Fprintf(deps.Stdout, "Corrupted:    %d\n", health.CorruptedEntries)

	catalogErr := deps.Services.Catalog.Reload()
	if catalogErr != nil {
		_, _ = fmt.Fprintf(deps.Stdout, "Catalog:      %v\n", catalogErr)
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Catalog:      ok (%s)\n", deps.Services.Catalog.Path())
	}

	if health.CorruptedEntries > 0 {
		_, _ = fmt.Fprintln(deps.Stdout)
		_, _ = fmt.Fprintln(deps.Stdout, "Corrupted lines:")
		for _, w := range health.Warnings {
			_, _ = fmt.Fprintln(deps.Stdout, cli.FormatCorruptionWarning(w))
		}
		_, _ = fmt.Fprintln(deps.Stdout)
		_, _ = fmt.Fprintln(deps.Stdout, "Hint: Restore a backup with 'billable restore [n]'")
	}

	if health.CorruptedEntries > 0 || catalogErr != nil {
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, "Status: healthy")
}

// RestoreBackup restores the entries file from a backup (default: most recent)
func RestoreBackup(deps *cli.Deps, args []string) {
	backups, err := deps.Services.Storage.Backups()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to list backups: %v\n", err)
		deps.Exit(1)
		return
	}

	if len(backups) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No backups available")
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Available backups:")
	for _, backup := range backups {
		suffix := ""
		if backup.Number == 1 {
			suffix = ", most recent"
		}
		_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s (%d %s%s)\n", backup.Number, backup.Path,
			backup.Entries, cli.Pluralize("entry", backup.Entries), suffix)
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	backupNum := 1
	if len(args) > 0 {
		num, err := strconv.Atoi(args[0])
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid backup number '%s'\n", args[0])
			deps.Exit(1)
			return
		}
		if num < 1 || num > storage.MaxBackupCount {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Backup number must be between 1 and %d (got %d)\n", storage.MaxBackupCount, num)
			deps.Exit(1)
			return
		}
		backupNum = num
	}

	if err := deps.Services.Storage.RestoreBackup(backupNum); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Successfully restored from backup %d\n", backupNum)
}
