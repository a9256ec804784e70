package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/stt/internal/app"
	"github.com/xolan/stt/internal/cli"
	"github.com/xolan/stt/internal/config"
	"github.com/xolan/stt/internal/service"
)

// ShowConfig prints the settings in effect. With a document, frontmatter
// overrides are applied and marked.
func ShowConfig(ctx context.Context, deps *cli.Deps, doc string) {
	cfg := deps.Services.Config.Get()
	effective := cfg
	if doc != "" {
		var err error
		if effective, err = deps.Services.Tracker.Config(ctx, doc); err != nil {
			fail(ctx, deps, doc, err)
			return
		}
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Config file: %s\n", deps.Services.Config.GetPath())
	if deps.Services.Config.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: File exists")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: Using defaults (no config file)")
	}
	if doc != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "Document: %s\n", doc)
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))

	base := cfg.Settings()
	for i, s := range effective.Settings() {
		line := fmt.Sprintf("%-24s%s", s.Key+":", s.Value)
		if s.Value != base[i].Value {
			line += "  (document)"
		}
		_, _ = fmt.Fprintln(deps.Stdout, line)
	}
}

// SetConfig changes one setting in the config file.
func SetConfig(deps *cli.Deps, key, value string) {
	cfg, err := deps.Services.Config.Set(key, value)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to set %s\n", key)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		if errors.Is(err, config.ErrUnknownKey) {
			_, _ = fmt.Fprintf(deps.Stderr, "Hint: List the settings with '%s config'\n", app.Name)
		}
		deps.Exit(1)
		return
	}
	deps.Config = cfg

	shown, _ := cfg.Get(key)
	_, _ = fmt.Fprintf(deps.Stdout, "Set %s = %s\n", key, shown)
}

// InitConfig creates a sample config file
func InitConfig(deps *cli.Deps, force bool) {
	if err := deps.Services.Config.Init(force); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		if errors.Is(err, service.ErrConfigExists) {
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use --force to replace it with the sample")
		}
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", deps.Services.Config.GetPath())
	_, _ = fmt.Fprintln(deps.Stdout, "Every setting is commented out; uncomment the ones you want to change.")
}
