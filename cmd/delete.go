package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/billable/internal/cli"
	"github.com/xolan/billable/internal/cli/handlers"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Delete an entry by index",
	Long: `Delete an entry by its index number.
The index is the number shown by 'billable list'. Entries on a confirmed
day cannot be deleted. A confirmation prompt will be shown unless --yes
is specified.

Example:
  billable delete 3
  billable delete 3 --yes`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		yes, _ := cmd.Flags().GetBool("yes")
		withDeps(func(d *cli.Deps) {
			handlers.DeleteEntry(d, args[0], yes)
		})
	},
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}
