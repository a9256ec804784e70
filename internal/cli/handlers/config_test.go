package handlers

import (
	"context"
	"os"
	"strings"
	"testing"
)

const overrideDoc = "---\ntitle: Log\ntime-tracker:\n  csv_delimiter: \";\"\n  reverse_segment_order: true\n---\n\n" +
	"```simple-time-tracker\n{\"entries\":[]}\n```\n"

func TestShowConfig(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		withDoc  bool
		expected []string
		absent   []string
	}{
		{
			name:     "defaults",
			content:  emptyDoc,
			expected: []string{"Configuration:", "Config file:", "Using defaults", "timestamp_format:", "timezone:               UTC", "theme:"},
			absent:   []string{"Document:", "(document)"},
		},
		{
			name:    "document overrides",
			content: overrideDoc,
			withDoc: true,
			expected: []string{
				"Document: ",
				`csv_delimiter:          ";"  (document)`,
				"reverse_segment_order:  true  (document)",
				"fine_grained_durations: false\n",
			},
		},
		{
			name:     "document without frontmatter",
			content:  emptyDoc,
			withDoc:  true,
			expected: []string{"Document: "},
			absent:   []string{"(document)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupEnv(t, tt.content)
			doc := ""
			if tt.withDoc {
				doc = env.doc
			}

			ShowConfig(context.Background(), env.deps, doc)

			if *env.exitCode != 0 {
				t.Fatalf("exit code = %d, stderr: %s", *env.exitCode, env.stderr.String())
			}
			out := env.stdout.String()
			for _, want := range tt.expected {
				if !strings.Contains(out, want) {
					t.Errorf("expected %q in output:\n%s", want, out)
				}
			}
			for _, unwanted := range tt.absent {
				if strings.Contains(out, unwanted) {
					t.Errorf("unexpected %q in output:\n%s", unwanted, out)
				}
			}
		})
	}
}

func TestShowConfig_MissingDocument(t *testing.T) {
	env := setupEnv(t, "")

	ShowConfig(context.Background(), env.deps, env.doc)

	if *env.exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *env.exitCode)
	}
	if !strings.Contains(env.stderr.String(), "Document not found") {
		t.Errorf("stderr = %q", env.stderr.String())
	}
}

func TestShowConfig_WithFile(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)

	InitConfig(deps, false)
	stdout.Reset()
	ShowConfig(context.Background(), deps, "")

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "File exists") {
		t.Errorf("expected 'File exists' in output, got %q", stdout.String())
	}
}

func TestSetConfig(t *testing.T) {
	env := setupEnv(t, emptyDoc)

	SetConfig(env.deps, "csv_delimiter", ";")

	if *env.exitCode != 0 {
		t.Fatalf("exit code = %d, stderr: %s", *env.exitCode, env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), `Set csv_delimiter = ";"`) {
		t.Errorf("stdout = %q", env.stdout.String())
	}
	if env.deps.Config.CSVDelimiter != ";" {
		t.Errorf("deps config not refreshed: %q", env.deps.Config.CSVDelimiter)
	}

	ctx := context.Background()
	if _, err := env.deps.Services.Tracker.Start(ctx, env.target(), "Work"); err != nil {
		t.Fatal(err)
	}
	csv, err := env.deps.Services.Tracker.CSV(ctx, env.target())
	if err != nil {
		t.Fatalf("CSV() error = %v", err)
	}
	if !strings.HasPrefix(csv, "Work;") {
		t.Errorf("tracker service should use the new delimiter, got:\n%s", csv)
	}
}

func TestSetConfig_Errors(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		expected []string
	}{
		{"unknown key", "week_start_day", "monday", []string{"Failed to set week_start_day", "unknown setting", "stt config"}},
		{"bad value", "timestamp_durations", "maybe", []string{"Failed to set timestamp_durations", "true or false"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, _, stderr, exitCode := setupTestDeps(t)

			SetConfig(deps, tt.key, tt.value)

			if *exitCode != 1 {
				t.Errorf("expected exit code 1, got %d", *exitCode)
			}
			for _, want := range tt.expected {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("expected %q in stderr, got %q", want, stderr.String())
				}
			}
			if deps.Services.Config.Exists() {
				t.Error("a rejected setting should not write the config file")
			}
		})
	}
}

func TestInitConfig(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)

	InitConfig(deps, false)
	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Created config file:") {
		t.Errorf("stdout = %q", stdout.String())
	}

	InitConfig(deps, false)
	if *exitCode != 1 {
		t.Errorf("expected exit code 1 for an existing file, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "--force") {
		t.Errorf("expected a --force hint, got %q", stderr.String())
	}

	*exitCode = 0
	if err := os.WriteFile(deps.Services.Config.GetPath(), []byte("theme = \"nord\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	InitConfig(deps, true)
	if *exitCode != 0 {
		t.Errorf("expected --force to succeed, got exit code %d", *exitCode)
	}
}

func TestInitConfig_Error(t *testing.T) {
	deps, _, stderr, exitCode := setupBrokenConfigDeps(t)

	InitConfig(deps, false)

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "Error:") {
		t.Errorf("expected 'Error:' in stderr, got %q", stderr.String())
	}
}
