package handlers

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/xolan/stt/internal/cli"
	"github.com/xolan/stt/internal/config"
	"github.com/xolan/stt/internal/document"
	"github.com/xolan/stt/internal/service"
)

var t0 = time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testEnv struct {
	deps     *cli.Deps
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	exitCode *int
	clock    *testClock
	doc      string
	copied   []string
}

func (e *testEnv) target() service.Target {
	return service.NewTarget(e.doc, 1)
}

func (e *testEnv) read(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(e.doc)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

const emptyDoc = "# Log\n\n```simple-time-tracker\n{\"entries\":[]}\n```\n"

// setupEnv creates deps over a temporary document holding content.
func setupEnv(t *testing.T, content string) *testEnv {
	t.Helper()
	tmpDir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"
	cfg.FineGrainedDurations = false

	env := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		clock:  &testClock{now: t0},
		doc:    filepath.Join(tmpDir, "notes.md"),
	}
	if content != "" {
		if err := os.WriteFile(env.doc, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	exitCode := 0
	env.exitCode = &exitCode
	services := service.NewServicesWith(filepath.Join(tmpDir, "config.toml"), cfg, document.FileStore{}, env.clock)
	env.deps = &cli.Deps{
		Stdout:   env.stdout,
		Stderr:   env.stderr,
		Stdin:    strings.NewReader(""),
		Exit:     func(code int) { exitCode = code },
		Services: services,
		Clipboard: func(text string) error {
			env.copied = append(env.copied, text)
			return nil
		},
		Config: cfg,
	}
	return env
}

// setupTestDeps creates deps over an empty tracker document
func setupTestDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	env := setupEnv(t, emptyDoc)
	return env.deps, env.stdout, env.stderr, env.exitCode
}

// setupBrokenConfigDeps creates deps whose config path is inside a missing directory
func setupBrokenConfigDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	deps, stdout, stderr, exitCode := setupTestDeps(t)
	configPath := filepath.Join(t.TempDir(), "missing", "config.toml")
	deps.Services.Config = service.NewConfigService(configPath, deps.Config)
	return deps, stdout, stderr, exitCode
}
