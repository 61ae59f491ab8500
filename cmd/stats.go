package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/billable/internal/cli"
	"github.com/xolan/billable/internal/cli/handlers"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Compare logged and billed time",
	Long: `Show logged time next to billed time for a range, the current week by
default. The difference is the overtime and minimum billable time the
reconciliation added.

Examples:
  billable stats                 This week
  billable stats --month         This month
  billable stats --last 30       The last 30 days`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withDeps(func(d *cli.Deps) {
			handlers.ShowStats(d, rangeFlags(cmd), filterFlags(cmd))
		})
	},
}

func init() {
	addRangeFlags(statsCmd)
	addFilterFlags(statsCmd)
	rootCmd.AddCommand(statsCmd)
}
