package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/billable/internal/cli"
)

// ShowCatalog lists customers with their cases and phases, then worktypes
func ShowCatalog(deps *cli.Deps) {
	cat := deps.Services.Catalog.Get()
	if cat.IsEmpty() {
		_, _ = fmt.Fprintf(deps.Stdout, "No catalog found at %s\n", deps.Services.Catalog.Path())
		_, _ = fmt.Fprintln(deps.Stdout, "Phases and worktypes are not checked until a catalog is synced")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Catalog: %s\n", deps.Services.Catalog.Path())
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))

	for _, customer := range cat.Customers {
		_, _ = fmt.Fprintln(deps.Stdout, deps.Styles.Heading.Render(nameOrID(customer.ID, customer.Name)))
		for _, c := range cat.Cases {
			if c.Customer != customer.ID {
				continue
			}
			minimum := ""
			if c.MinBillableMinutes > 0 {
				minimum = fmt.Sprintf(" (minimum %s)", cli.FormatDuration(c.MinBillableMinutes))
			}
			_, _ = fmt.Fprintf(deps.Stdout, "  %s%s\n", nameOrID(c.ID, c.Name), minimum)
			for _, p := range cat.PhasesOfCase(c.ID) {
				_, _ = fmt.Fprintf(deps.Stdout, "    @%s%s\n", p.ID, inactive(p.Active, deps))
			}
		}
	}

	if len(cat.Worktypes) > 0 {
		_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
		_, _ = fmt.Fprintln(deps.Stdout, "Worktypes:")
		for _, w := range cat.Worktypes {
			_, _ = fmt.Fprintf(deps.Stdout, "  #%s%s\n", w.ID, inactive(w.Active, deps))
		}
	}
}

func nameOrID(id, name string) string {
	if name == "" || name == id {
		return id
	}
	return fmt.Sprintf("%s (%s)", id, name)
}

func inactive(active bool, deps *cli.Deps) string {
	if active {
		return ""
	}
	return " " + deps.Styles.Muted.Render("[inactive]")
}
