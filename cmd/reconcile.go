package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/billable/internal/cli"
	"github.com/xolan/billable/internal/cli/handlers"
)

// reconcileCmd represents the reconcile command
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Show the billable time of a range",
	Long: `Turn the logged entries of a range into billable records, today by
default.

Each record is labelled with where it came from:
  rounded    logged time snapped to the 5-minute grid
  overtime   time that overlaps work for another customer
  minimum    padding up to the case's minimum billable time

Examples:
  billable reconcile
  billable reconcile --week
  billable reconcile --date yesterday --phase support`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withDeps(func(d *cli.Deps) {
			handlers.Reconcile(d, rangeFlags(cmd), filterFlags(cmd))
		})
	},
}

func init() {
	addRangeFlags(reconcileCmd)
	addFilterFlags(reconcileCmd)
	rootCmd.AddCommand(reconcileCmd)
}
