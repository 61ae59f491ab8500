package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/billable/internal/cli"
	"github.com/xolan/billable/internal/cli/handlers"
)

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore [backup_number]",
	Short: "Restore from a backup file",
	Long: `Restore the entries file from one of its automatic backups.

A backup is taken whenever the file is rewritten. Backup 1 is the most
recent and the default.

Examples:
  billable restore       Restore the most recent backup
  billable restore 2     Restore the second most recent backup`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withDeps(func(d *cli.Deps) {
			handlers.RestoreBackup(d, args)
		})
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}
