package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/xolan/stt/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   app.Name,
	Short: "A time tracker that lives in your markdown notes",
	Long: `stt tracks time in fenced "simple-time-tracker" blocks inside markdown documents.
Each block holds a tree of entries: a finished entry can be continued, which
turns it into a container of parts whose durations add up.

Usage:
  stt init <document>                        Add an empty tracker block
  stt start <document> [name]                Start a new entry
  stt stop <document>                        Stop the running entry
  stt continue <document> <path> [name]      Continue an entry with a new part
  stt remove <document> <path>               Remove an entry (with confirmation)
  stt edit <document> <path> --name 'text'   Rename or retime an entry
  stt show <document>                        Show the tracker as a table
  stt export table|csv <document>            Export the tracker
  stt status <document>                      Show what is running and the totals
  stt migrate <document>                     Rewrite blocks in canonical form
  stt tui <document>                         Open the live tracker
  stt config set <key> <value>               Change a setting

Entries are addressed by dotted paths in stored order: 2 is the second
entry, 2.1 its first part. Use --block to pick a tracker when a document
has several.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().IntP("block", "b", 1, "tracker block to use (1-based)")
}

// configureLogging routes debug logs to stderr when --verbose is set.
func configureLogging(cmd *cobra.Command) {
	level := slog.LevelWarn
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		app.Name + " version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
