package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/stt/internal/cli/handlers"
	"github.com/xolan/stt/internal/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config [document]",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for stt.

Shows the configuration file location, whether it exists, and all current settings.
Configuration values are merged from the config file with sensible defaults.
Given a document, its frontmatter overrides are applied and marked.

By default, stt works without any configuration file. All settings have defaults:
  - timestamp_format: 06-01-02 15:04:05
  - csv_delimiter: ,
  - fine_grained_durations: true
  - timezone: Local (system timezone)

Documents can override the display settings in YAML frontmatter:

  ---
  time-tracker:
    reverse_segment_order: true
    csv_delimiter: ";"
  ---

Configuration file location:
  ~/.config/stt/config.toml          Linux
  %APPDATA%\stt\config.toml          Windows`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doc := ""
		if len(args) == 1 {
			var ok bool
			if doc, ok = documentPath(args[0]); !ok {
				return
			}
		}
		handlers.ShowConfig(cmd.Context(), deps(), doc)
	},
}

// configSetCmd represents the config set command
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting in the config file",
	Long: `Change one setting in the config file. The value is validated before the
file is written.

Examples:
  stt config set csv_delimiter ";"
  stt config set reverse_segment_order true
  stt config set timezone Europe/Berlin`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: config.Keys,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.SetConfig(deps(), args[0], args[1])
	},
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sample config file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")
		handlers.InitConfig(deps(), force)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configSetCmd)

	configInitCmd.Flags().BoolP("force", "f", false, "replace an existing config file")
}
