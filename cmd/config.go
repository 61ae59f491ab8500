package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/billable/internal/cli"
	"github.com/xolan/billable/internal/cli/handlers"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for billable.

billable works without a configuration file. The defaults are:
  - week_start_day: monday
  - timezone: Local (system timezone)
  - catalog_path: catalog.yaml next to the config file
  - ledger_path: ledger.db next to the config file
  - log_level: warn
  - log_format: console

The timezone decides which day an entry belongs to, where the 23:55
padding cutoff falls and which day 'billable confirm' locks.

Configuration file location:
  ~/.config/billable/config.toml     Linux
  %APPDATA%\billable\config.toml     Windows

Examples:
  billable config            Show all current settings
  billable config --init     Create a commented sample config file
  billable config --set timezone=Europe/Oslo
                             Change one setting and rewrite the file`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		initFlag, _ := cmd.Flags().GetBool("init")
		assignment, _ := cmd.Flags().GetString("set")
		withDeps(func(d *cli.Deps) {
			if initFlag {
				handlers.InitConfig(d)
				return
			}
			if assignment != "" {
				handlers.SetConfig(d, assignment)
				return
			}
			handlers.ShowConfig(d)
		})
	},
}

func init() {
	configCmd.Flags().Bool("init", false, "create a sample config file")
	configCmd.Flags().String("set", "", "set one key, as key=value")
	configCmd.MarkFlagsMutuallyExclusive("init", "set")
	rootCmd.AddCommand(configCmd)
}
