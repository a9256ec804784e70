package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/stt/internal/cli/handlers"
	"github.com/xolan/stt/internal/tui"
)

// runTUI starts the terminal UI; tests replace it.
var runTUI handlers.TUIRunner = tui.Run

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui <document>",
	Short: "Open the live tracker",
	Long: `Open an interactive view of a tracker block. Durations refresh every
second and the view reloads when the document changes on disk, following it
when it is renamed.

Keyboard shortcuts:
  - j/k or arrows: Select an entry
  - s / x: Start a new entry / stop the running one
  - c: Continue the selected entry with a new part
  - e / d: Rename / remove the selected entry
  - space: Fold or unfold a container
  - y / Y: Copy the table / CSV to the clipboard
  - t: Next theme
  - ?: Show help
  - q: Quit`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tgt, ok := target(cmd, args[0])
		if !ok {
			return
		}
		handlers.OpenTUI(cmd.Context(), deps(), tgt.Doc(), tgt.Block, runTUI)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
