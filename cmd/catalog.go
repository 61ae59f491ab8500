package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/billable/internal/cli/handlers"
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List customers, cases, phases and worktypes",
	Long: `List the synced catalog: customers with their cases, the minimum
billable time of each case, the phases booked on them and the worktypes.

The catalog is a YAML file dropped in place by the project management
sync, catalog.yaml next to the config file unless catalog_path is set.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withDeps(handlers.ShowCatalog)
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
