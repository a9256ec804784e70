package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/stt/internal/osutil"
	"github.com/xolan/stt/internal/service"
	"github.com/xolan/stt/internal/tracker"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate a shell completion script for stt.

Document arguments complete to markdown files. Entry path arguments of
continue, remove, edit and collapse complete to the paths of the chosen
tracker block, with entry names as descriptions where the shell shows them.

Load completions for the current session:
  source <(stt completion bash)
  source <(stt completion zsh)
  stt completion fish | source
  stt completion powershell | Out-String | Invoke-Expression

Install them for new sessions:
  stt completion bash > ~/.local/share/bash-completion/completions/stt
  stt completion zsh > "${fpath[1]}/_stt"
  stt completion fish > ~/.config/fish/completions/stt.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.ExactValidArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		generateCompletion(args[0])
	},
}

// documentExts are the file extensions offered for a document argument.
var documentExts = []string{"md", "markdown"}

func init() {
	rootCmd.AddCommand(completionCmd)

	for _, c := range []*cobra.Command{initCmd, startCmd, stopCmd, showCmd, statusCmd, migrateCmd, tuiCmd, configCmd} {
		c.ValidArgsFunction = completeDocument
	}
	for _, c := range []*cobra.Command{continueCmd, removeCmd, editCmd, collapseCmd} {
		c.ValidArgsFunction = completeEntryPath
	}
}

// generateCompletion generates the appropriate completion script based on shell type
func generateCompletion(shell string) {
	d := deps()
	var err error

	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletion(d.Stdout)
	case "zsh":
		err = rootCmd.GenZshCompletion(d.Stdout)
	case "fish":
		err = rootCmd.GenFishCompletion(d.Stdout, true)
	case "powershell":
		err = rootCmd.GenPowerShellCompletionWithDesc(d.Stdout)
	default:
		_, _ = fmt.Fprintf(d.Stderr, "Error: Unsupported shell '%s'\n", shell)
		_, _ = fmt.Fprintln(d.Stderr, "Supported shells: bash, zsh, fish, powershell")
		d.Exit(1)
		return
	}

	if err != nil {
		_, _ = fmt.Fprintf(d.Stderr, "Error: Failed to generate %s completion: %v\n", shell, err)
		d.Exit(1)
		return
	}
}

// completeDocument offers markdown files for the document argument.
func completeDocument(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return documentExts, cobra.ShellCompDirectiveFilterFileExt
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// completeEntryPath offers markdown files for the document argument and
// the entry paths of its tracker block for the path argument.
func completeEntryPath(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 1 {
		return completeDocument(cmd, args, toComplete)
	}

	doc, err := osutil.ExpandPath(args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	block, err := cmd.Flags().GetInt("block")
	if err != nil || block < 1 {
		block = 1
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	snap, err := deps().Services.Tracker.Load(ctx, service.NewTarget(doc, block))
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var paths []string
	snap.Tracker.Walk(func(e *tracker.Entry, p tracker.Path) bool {
		if s := p.String(); strings.HasPrefix(s, toComplete) {
			paths = append(paths, s+"\t"+e.Name)
		}
		return true
	})
	return paths, cobra.ShellCompDirectiveNoFileComp
}
