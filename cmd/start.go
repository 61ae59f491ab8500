package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/billable/internal/cli"
	"github.com/xolan/billable/internal/cli/handlers"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start <description>",
	Short: "Start a timer for a task",
	Long: `Start a timer for a task with the given description.
The timer will run until you stop it with 'billable stop'.

The description takes @phase and #worktype like a logged entry.
Timer state persists across terminal sessions. While it runs, the
timer keeps minimum billable padding from running into it.

Examples:
  billable start triage tickets @support
  billable start release @ops #dev`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")
		withDeps(func(d *cli.Deps) {
			handlers.StartTimer(d, strings.Join(args, " "), force)
		})
	},
}

func init() {
	startCmd.Flags().BoolP("force", "f", false, "override existing timer if one is already running")
	rootCmd.AddCommand(startCmd)
}
