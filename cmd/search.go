package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/billable/internal/cli"
	"github.com/xolan/billable/internal/cli/handlers"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search for entries by keyword",
	Long: `Search for entries containing a keyword in their description.

The search is case-insensitive and covers every entry unless a range
flag narrows it.

Examples:
  billable search triage                     Search all entries
  billable search "code review" --month      Search this month
  billable search deploy --last 7 --phase ops`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		keyword := strings.Join(args, " ")
		withDeps(func(d *cli.Deps) {
			handlers.Search(d, keyword, rangeFlags(cmd), filterFlags(cmd))
		})
	},
}

func init() {
	addRangeFlags(searchCmd)
	addFilterFlags(searchCmd)
	rootCmd.AddCommand(searchCmd)
}
