package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/billable/internal/cli"
	"github.com/xolan/billable/internal/cli/handlers"
)

// confirmCmd represents the confirm command
var confirmCmd = &cobra.Command{
	Use:   "confirm [date]",
	Short: "Lock a day against changes",
	Long: `Confirm a day, today by default. Entries on a confirmed day can no
longer be logged, deleted or restored, and timers cannot start or stop on
it. Days are evaluated in the configured timezone.

Examples:
  billable confirm
  billable confirm 2024-03-14
  billable confirm --list`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		list, _ := cmd.Flags().GetBool("list")
		withDeps(func(d *cli.Deps) {
			if list {
				handlers.ListConfirmed(d)
				return
			}
			handlers.ConfirmDay(d, firstArg(args))
		})
	},
}

// unconfirmCmd represents the unconfirm command
var unconfirmCmd = &cobra.Command{
	Use:   "unconfirm [date]",
	Short: "Unlock a confirmed day",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withDeps(func(d *cli.Deps) {
			handlers.UnconfirmDay(d, firstArg(args))
		})
	},
}

func init() {
	confirmCmd.Flags().Bool("list", false, "list the confirmed days")
	rootCmd.AddCommand(confirmCmd)
	rootCmd.AddCommand(unconfirmCmd)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
