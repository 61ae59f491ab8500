package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/billable/internal/cli"
	"github.com/xolan/billable/internal/cli/handlers"
	"github.com/xolan/billable/internal/service"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <json|csv|xlsx|ledger>",
	Short: "Export billable records",
	Long: `Export the billable records of a range, today by default.

Formats:
  json     Records with export metadata, to stdout or --output
  csv      One row per record, to stdout or --output
  xlsx     A workbook with records and a per-case summary; needs --output
  ledger   Replaces the ledger's records for every day of the range

The ledger always receives complete days, so it takes no --phase or
--worktype filter. Days in the range that are not confirmed are listed
as a warning.

Examples:
  billable export csv --week
  billable export xlsx --month --output march.xlsx
  billable export ledger --from 2024-03-01 --to 2024-03-31`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		withDeps(func(d *cli.Deps) {
			handlers.Export(d, args[0], rangeFlags(cmd), filterFlags(cmd), output)
		})
	},
}

func init() {
	addRangeFlags(exportCmd)
	addFilterFlags(exportCmd)
	exportCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)

	for _, f := range service.Formats {
		exportCmd.ValidArgs = append(exportCmd.ValidArgs, string(f))
	}
}
