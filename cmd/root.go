package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/billable/internal/cli"
	"github.com/xolan/billable/internal/cli/handlers"
	"github.com/xolan/billable/internal/timeutil"
)

var rootCmd = &cobra.Command{
	Use:   "billable",
	Short: "Turn logged hours into billable time",
	Long: `billable logs work against project phases and turns it into billable time.

Usage:
  billable <description> [@phase] [#worktype] HH:MM-HH:MM    Log an entry for today
  billable <...> HH:MM-HH:MM --date 2024-03-14              Log an entry for another day
  billable                                                  List today's entries
  billable --date yesterday                                 List yesterday's entries
  billable list --week                                      List this week's entries
  billable reconcile                                        Show today's billable time
  billable export csv --month --output hours.csv            Export the billable records
  billable confirm                                          Lock today against changes

Times are clock times on a 5-minute billing grid: starts round down, ends
round up. 24:00 ends an entry at midnight. Cases with a minimum billable
time are padded up to it.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		date, _ := cmd.Flags().GetString("date")
		withDeps(func(d *cli.Deps) {
			if len(args) == 0 {
				handlers.ListEntries(d, timeutil.RangeFlags{Date: date}, nil)
				return
			}
			handlers.CreateEntry(d, strings.Join(args, " "), date)
		})
	},
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries",
	Long: `List the logged entries of a range, today by default.

Examples:
  billable list                          Today's entries
  billable list --date yesterday         Yesterday's entries
  billable list --week --phase support   This week's entries on @support
  billable list --from 2024-03-01 --to 2024-03-15`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withDeps(func(d *cli.Deps) {
			handlers.ListEntries(d, rangeFlags(cmd), filterFlags(cmd))
		})
	},
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check storage file health",
	Long:  `Validate the storage file and the catalog and report corrupted lines.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withDeps(handlers.ValidateStorage)
	},
}

func init() {
	rootCmd.Flags().String("date", "", "Day to log on or list (YYYY-MM-DD, DD/MM/YYYY, today or yesterday)")

	addRangeFlags(listCmd)
	addFilterFlags(listCmd)

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"billable version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// withDeps loads the services and runs fn. Commands that need no services,
// like completion, skip it so they never touch the data directory.
func withDeps(fn func(d *cli.Deps)) {
	d := cli.GetDeps()
	if err := d.Init(); err != nil {
		_, _ = fmt.Fprintln(d.Stderr, "Error: Failed to initialize")
		_, _ = fmt.Fprintf(d.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(d.Stderr, "Hint: Check the config file with 'billable config'")
		d.Exit(1)
		return
	}
	defer func() { _ = d.Close() }()
	fn(d)
}
