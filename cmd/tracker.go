package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/stt/internal/cli/handlers"
	"github.com/xolan/stt/internal/service"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init <document>",
	Short: "Add an empty tracker block to a document",
	Long: `Append an empty simple-time-tracker block to a markdown document.
The document is created when it does not exist.

Example:
  stt init ~/notes/today.md`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doc, ok := documentPath(args[0])
		if !ok {
			return
		}
		handlers.InitTracker(cmd.Context(), deps(), doc)
	},
}

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start <document> [name]",
	Short: "Start a new entry",
	Long: `Start a new top-level entry. Without a name the entry is called
"Segment N". Fails while another entry is running.

Examples:
  stt start notes.md
  stt start notes.md code review`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tgt, ok := target(cmd, args[0])
		if !ok {
			return
		}
		handlers.StartEntry(cmd.Context(), deps(), tgt, strings.Join(args[1:], " "))
	},
}

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop <document>",
	Short: "Stop the running entry",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tgt, ok := target(cmd, args[0])
		if !ok {
			return
		}
		handlers.StopEntry(cmd.Context(), deps(), tgt)
	},
}

// continueCmd represents the continue command
var continueCmd = &cobra.Command{
	Use:   "continue <document> <path> [name]",
	Short: "Continue an entry with a new running part",
	Long: `Continue a finished entry. A single entry is split into a container
whose "Part 1" keeps the original times, then a new running part is added.

Examples:
  stt continue notes.md 2
  stt continue notes.md 2.1 second pass`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		tgt, ok := target(cmd, args[0])
		if !ok {
			return
		}
		handlers.ContinueEntry(cmd.Context(), deps(), tgt, args[1], strings.Join(args[2:], " "))
	},
}

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:     "remove <document> <path>",
	Aliases: []string{"rm"},
	Short:   "Remove an entry",
	Long: `Remove an entry and its parts. A container left with a single part
folds back into a plain entry. A confirmation prompt is shown unless --yes
is specified.

Examples:
  stt remove notes.md 3
  stt remove notes.md 2.1 --yes`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		tgt, ok := target(cmd, args[0])
		if !ok {
			return
		}
		yes, _ := cmd.Flags().GetBool("yes")
		handlers.RemoveEntry(cmd.Context(), deps(), tgt, args[1], yes)
	},
}

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit <document> <path>",
	Short: "Rename or retime an entry",
	Long: `Change the name, start or end time of an entry. Times use the configured
timestamp_format; RFC 3339 and "2006-01-02 15:04" are accepted too.
Containers can only be renamed.

Examples:
  stt edit notes.md 1 --name 'planning'
  stt edit notes.md 2.1 --start '24-03-04 09:00:00' --end '24-03-04 10:30:00'`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		tgt, ok := target(cmd, args[0])
		if !ok {
			return
		}
		handlers.EditEntry(cmd.Context(), deps(), tgt, args[1], editInput(cmd))
	},
}

// editInput collects the edit flags that were given.
func editInput(cmd *cobra.Command) service.EditInput {
	var in service.EditInput
	get := func(name string) *string {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		v, _ := cmd.Flags().GetString(name)
		return &v
	}
	in.Name = get("name")
	in.Start = get("start")
	in.End = get("end")
	return in
}

// collapseCmd represents the collapse command
var collapseCmd = &cobra.Command{
	Use:   "collapse <document> <path>",
	Short: "Collapse or expand a container in the live tracker",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		tgt, ok := target(cmd, args[0])
		if !ok {
			return
		}
		expand, _ := cmd.Flags().GetBool("expand")
		handlers.CollapseEntry(cmd.Context(), deps(), tgt, args[1], !expand)
	},
}

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <document>",
	Short: "Show the tracker as a table",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tgt, ok := target(cmd, args[0])
		if !ok {
			return
		}
		render, _ := cmd.Flags().GetBool("render")
		width, _ := cmd.Flags().GetInt("width")
		handlers.ShowTracker(cmd.Context(), deps(), tgt, render, width)
	},
}

// exportCmd groups the export formats
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a tracker as a table or CSV",
	Long: `Export a tracker. The table lists every entry with container totals and
a final total row; CSV lists only leaf entries, separated by csv_delimiter.

Examples:
  stt export table notes.md
  stt export csv notes.md --copy`,
}

func newExportFormatCmd(format, short string) *cobra.Command {
	c := &cobra.Command{
		Use:   format + " <document>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			tgt, ok := target(cmd, args[0])
			if !ok {
				return
			}
			copyOut, _ := cmd.Flags().GetBool("copy")
			handlers.ExportTracker(cmd.Context(), deps(), tgt, format, copyOut)
		},
	}
	c.Flags().BoolP("copy", "c", false, "copy to the clipboard instead of printing")
	return c
}

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status <document>",
	Short: "Show what is running and the totals",
	Long: `Show the running entry, its current duration and the today and total
durations of every tracker block in a document, or only the one given
with --block.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doc, ok := documentPath(args[0])
		if !ok {
			return
		}
		block := 0
		if cmd.Flags().Changed("block") {
			tgt, ok := target(cmd, args[0])
			if !ok {
				return
			}
			block = tgt.Block
		}
		handlers.ShowStatus(cmd.Context(), deps(), doc, block)
	},
}

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate <document>",
	Short: "Rewrite tracker blocks in canonical form",
	Long: `Rewrite every tracker block with legacy content (epoch timestamps, null
fields, empty part lists) in the canonical form. Blocks that are not valid
tracker JSON are left unchanged. The document is backed up first unless
--no-backup is given.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doc, ok := documentPath(args[0])
		if !ok {
			return
		}
		noBackup, _ := cmd.Flags().GetBool("no-backup")
		handlers.MigrateDocument(cmd.Context(), deps(), doc, !noBackup)
	},
}

func init() {
	rootCmd.AddCommand(initCmd, startCmd, stopCmd, continueCmd, removeCmd, editCmd,
		collapseCmd, showCmd, exportCmd, statusCmd, migrateCmd)

	exportCmd.AddCommand(
		newExportFormatCmd(handlers.FormatTable, "Export as a padded markdown table"),
		newExportFormatCmd(handlers.FormatCSV, "Export leaf entries as delimited text"),
	)

	removeCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")

	editCmd.Flags().String("name", "", "new name for the entry")
	editCmd.Flags().String("start", "", "new start time")
	editCmd.Flags().String("end", "", "new end time")

	collapseCmd.Flags().Bool("expand", false, "expand instead of collapse")

	showCmd.Flags().Bool("render", false, "render the table as formatted markdown")
	showCmd.Flags().Int("width", 100, "word-wrap width for --render")

	migrateCmd.Flags().Bool("no-backup", false, "do not back up the document first")
}
