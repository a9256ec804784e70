package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/xolan/stt/internal/cli"
	"github.com/xolan/stt/internal/config"
	"github.com/xolan/stt/internal/document"
	"github.com/xolan/stt/internal/host"
	"github.com/xolan/stt/internal/service"
)

var testNow = time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)

type cmdEnv struct {
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	exitCode *int
	doc      string
	deps     *cli.Deps
}

// setupCmdTest installs buffered deps over a temporary document.
func setupCmdTest(t *testing.T, content string) *cmdEnv {
	t.Helper()
	tmpDir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"
	cfg.FineGrainedDurations = false

	env := &cmdEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		doc:    filepath.Join(tmpDir, "notes.md"),
	}
	if content != "" {
		if err := os.WriteFile(env.doc, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	exitCode := 0
	env.exitCode = &exitCode
	env.deps = &cli.Deps{
		Stdout:    env.stdout,
		Stderr:    env.stderr,
		Stdin:     strings.NewReader(""),
		Exit:      func(code int) { exitCode = code },
		Services:  service.NewServicesWith(filepath.Join(tmpDir, "config.toml"), cfg, document.FileStore{}, host.FixedClock(testNow)),
		Clipboard: func(string) error { return nil },
		Config:    cfg,
	}
	SetDeps(env.deps)
	t.Cleanup(ResetDeps)
	return env
}

// execute runs the root command with args after resetting every flag.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	return rootCmd.Execute()
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func readDoc(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
