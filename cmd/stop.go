package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/billable/internal/cli"
	"github.com/xolan/billable/internal/cli/handlers"
)

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the current timer and create an entry",
	Long: `Stop the running timer and log it as an entry.

The entry is validated like a logged one. If it is refused, for example
because its phase was retired meanwhile, the timer keeps running and can
be discarded with --cancel.

Examples:
  billable stop
  billable stop --cancel`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cancel, _ := cmd.Flags().GetBool("cancel")
		withDeps(func(d *cli.Deps) {
			if cancel {
				handlers.CancelTimer(d)
				return
			}
			handlers.StopTimer(d)
		})
	},
}

func init() {
	stopCmd.Flags().Bool("cancel", false, "discard the timer without logging an entry")
	rootCmd.AddCommand(stopCmd)
}
