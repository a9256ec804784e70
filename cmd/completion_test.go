package cmd

import (
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestGenerateCompletion(t *testing.T) {
	tests := []struct {
		shell  string
		marker string
	}{
		{"bash", "bash completion"},
		{"zsh", "#compdef"},
		{"fish", "complete -c stt"},
		{"powershell", "Register-ArgumentCompleter"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			env := setupCmdTest(t, "")

			generateCompletion(tt.shell)

			if *env.exitCode != 0 {
				t.Errorf("expected exit code 0, got %d", *env.exitCode)
			}
			if env.stderr.String() != "" {
				t.Errorf("expected no errors, got: %s", env.stderr.String())
			}
			if !strings.Contains(env.stdout.String(), tt.marker) {
				t.Errorf("expected %q in %s completion script", tt.marker, tt.shell)
			}
		})
	}
}

func TestGenerateCompletion_InvalidShell(t *testing.T) {
	for _, shell := range []string{"", "tcsh", "Bash", " bash", "bash-completion"} {
		t.Run(shell, func(t *testing.T) {
			env := setupCmdTest(t, "")

			generateCompletion(shell)

			if *env.exitCode != 1 {
				t.Errorf("expected exit code 1, got %d", *env.exitCode)
			}
			if env.stdout.String() != "" {
				t.Errorf("expected no output, got %d bytes", env.stdout.Len())
			}
			if !strings.Contains(env.stderr.String(), "Supported shells: bash, zsh, fish, powershell") {
				t.Errorf("unexpected stderr: %q", env.stderr.String())
			}
		})
	}
}

func TestCompletionCmd_ValidArgs(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		if !slices.Contains(completionCmd.ValidArgs, shell) {
			t.Errorf("expected ValidArg %q", shell)
		}
	}
}

func TestCompletionCmd_HelpText(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		if !strings.Contains(completionCmd.Long, "stt completion "+shell) {
			t.Errorf("expected a usage example for %s", shell)
		}
	}
}

func TestCompletionCmd_ListsCommands(t *testing.T) {
	env := setupCmdTest(t, "")

	generateCompletion("bash")

	for _, name := range []string{"start", "continue", "export"} {
		if !strings.Contains(env.stdout.String(), name) {
			t.Errorf("expected %q in the completion script", name)
		}
	}
}

func TestCompleteDocument(t *testing.T) {
	exts, directive := completeDocument(startCmd, nil, "")
	if directive != cobra.ShellCompDirectiveFilterFileExt || !slices.Equal(exts, documentExts) {
		t.Errorf("completeDocument() = %v, %v; expected markdown extensions", exts, directive)
	}

	got, directive := completeDocument(startCmd, []string{"notes.md"}, "")
	if len(got) != 0 || directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("entry names should not complete to files, got %v, %v", got, directive)
	}
}

func TestCompleteEntryPath(t *testing.T) {
	doc := "```simple-time-tracker\n" +
		`{"entries":[{"name":"A","subEntries":[` +
		`{"name":"Part 1","startTime":"2024-03-04T07:00:00.000Z","endTime":"2024-03-04T08:00:00.000Z"},` +
		`{"name":"Part 2","startTime":"2024-03-04T08:10:00.000Z","endTime":"2024-03-04T08:40:00.000Z"}]},` +
		`{"name":"B","startTime":"2024-03-04T08:45:00.000Z"}]}` +
		"\n```\n"

	tests := []struct {
		name       string
		toComplete string
		expected   []string
	}{
		{"all", "", []string{"1\tA", "1.1\tPart 1", "1.2\tPart 2", "2\tB"}},
		{"prefix", "1.", []string{"1.1\tPart 1", "1.2\tPart 2"}},
		{"no match", "3", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupCmdTest(t, doc)

			got, directive := completeEntryPath(removeCmd, []string{env.doc}, tt.toComplete)

			if directive != cobra.ShellCompDirectiveNoFileComp {
				t.Errorf("directive = %v", directive)
			}
			if !slices.Equal(got, tt.expected) {
				t.Errorf("completeEntryPath() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestCompleteEntryPath_MissingDocument(t *testing.T) {
	env := setupCmdTest(t, "")

	got, _ := completeEntryPath(editCmd, []string{env.doc}, "")
	if len(got) != 0 {
		t.Errorf("expected no completions for a missing document, got %q", got)
	}
	if env.stderr.Len() != 0 {
		t.Errorf("completion should stay silent, stderr: %q", env.stderr.String())
	}
}
