package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/billable/internal/filter"
	"github.com/xolan/billable/internal/timeutil"
)

// addRangeFlags adds the range selection flags shared by list, reconcile,
// stats, export and search
func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("date", "", "Single day (YYYY-MM-DD, DD/MM/YYYY, today or yesterday)")
	cmd.Flags().String("from", "", "Start date of the range (YYYY-MM-DD or DD/MM/YYYY)")
	cmd.Flags().String("to", "", "End date of the range (YYYY-MM-DD or DD/MM/YYYY)")
	cmd.Flags().Int("last", 0, "Last N days including today")
	cmd.Flags().BoolP("week", "w", false, "Current week")
	cmd.Flags().BoolP("month", "m", false, "Current month")
}

func rangeFlags(cmd *cobra.Command) timeutil.RangeFlags {
	var f timeutil.RangeFlags
	f.Date, _ = cmd.Flags().GetString("date")
	f.From, _ = cmd.Flags().GetString("from")
	f.To, _ = cmd.Flags().GetString("to")
	f.Last, _ = cmd.Flags().GetInt("last")
	f.Week, _ = cmd.Flags().GetBool("week")
	f.Month, _ = cmd.Flags().GetBool("month")
	return f
}

// addFilterFlags adds the --phase and --worktype filters
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("phase", "p", "", "Only @phase")
	cmd.Flags().String("worktype", "", "Only #worktype")
}

func filterFlags(cmd *cobra.Command) *filter.Filter {
	phase, _ := cmd.Flags().GetString("phase")
	worktype, _ := cmd.Flags().GetString("worktype")
	f := filter.NewFilter("", phase, worktype)
	if f.IsEmpty() {
		return nil
	}
	return f
}
