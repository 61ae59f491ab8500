package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/billable/internal/cli"
	"github.com/xolan/billable/internal/config"
)

// ShowConfig displays the current configuration
func ShowConfig(deps *cli.Deps) {
	cfg := deps.Services.Config.Get()
	path := deps.Services.Config.GetPath()

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Config file: %s\n", path)
	if deps.Services.Config.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: File exists")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: Using defaults (no config file)")
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "week_start_day: %s\n", cfg.WeekStartDay)
	_, _ = fmt.Fprintf(deps.Stdout, "timezone:       %s\n", cfg.Timezone)
	_, _ = fmt.Fprintf(deps.Stdout, "catalog_path:   %s\n", deps.Services.Catalog.Path())
	_, _ = fmt.Fprintf(deps.Stdout, "ledger_path:    %s\n", deps.Services.Ledger.Path())
	_, _ = fmt.Fprintf(deps.Stdout, "log_level:      %s\n", cfg.LogLevel)
	_, _ = fmt.Fprintf(deps.Stdout, "log_format:     %s\n", cfg.LogFormat)
}

// InitConfig creates a sample config file
func InitConfig(deps *cli.Deps) {
	err := deps.Services.Config.Init()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	path := deps.Services.Config.GetPath()
	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", path)
	_, _ = fmt.Fprintln(deps.Stdout, "Edit this file to customize your settings.")
}

// SetConfig applies a key=value assignment to the config file
func SetConfig(deps *cli.Deps, assignment string) {
	key, value, ok := strings.Cut(assignment, "=")
	if !ok || strings.TrimSpace(key) == "" {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid assignment '%s'\n", assignment)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use key=value, e.g. --set timezone=Europe/Oslo")
		deps.Exit(1)
		return
	}

	cfg, err := deps.Services.Config.Set(key, value)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		if errors.Is(err, config.ErrUnknownKey) {
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run 'billable config' to see the available keys")
		}
		deps.Exit(1)
		return
	}

	key = strings.ToLower(strings.TrimSpace(key))
	stored, _ := cfg.Get(key)
	_, _ = fmt.Fprintf(deps.Stdout, "Set %s = %q in %s\n", key, stored, deps.Services.Config.GetPath())
	if key == "catalog_path" || key == "ledger_path" || key == "log_level" || key == "log_format" {
		_, _ = fmt.Fprintln(deps.Stdout, "The new value takes effect on the next run.")
	}
}
