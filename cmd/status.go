package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/billable/internal/cli/handlers"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of the current timer",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withDeps(handlers.ShowTimerStatus)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
