package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/billable/internal/cli/handlers"
)

// undoCmd represents the undo command
var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Restore the most recently deleted entry",
	Long: `Restore the most recently deleted entry.
Deleted entries are kept for 7 days before they are removed for good.
An entry of a confirmed day stays deleted until the day is unconfirmed.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withDeps(handlers.RestoreEntry)
	},
}

func init() {
	rootCmd.AddCommand(undoCmd)
}
