package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/xolan/stt/internal/app"
	"github.com/xolan/stt/internal/cli"
	"github.com/xolan/stt/internal/document"
	"github.com/xolan/stt/internal/service"
	"github.com/xolan/stt/internal/timeutil"
	"github.com/xolan/stt/internal/tracker"
)

// fail prints err with a hint for the known failure kinds and exits 1.
func fail(ctx context.Context, deps *cli.Deps, doc string, err error) {
	switch {
	case errors.Is(err, os.ErrNotExist):
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Document not found: %s\n", doc)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Create it with '%s init %s'\n", app.Name, doc)
	case errors.Is(err, document.ErrNoTracker):
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Add a tracker block with '%s init %s'\n", app.Name, doc)
	case errors.Is(err, tracker.ErrStateConflict):
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check what is running with '%s status %s'\n", app.Name, doc)
	case errors.Is(err, tracker.ErrEntryNotFound), errors.Is(err, tracker.ErrInvalidPath):
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: List entries and their paths with '%s show %s'\n", app.Name, doc)
	case errors.Is(err, tracker.ErrInvalidEdit):
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		layout, example := timestampHint(ctx, deps, doc)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Timestamps use the format %q (e.g., %s)\n", layout, example)
	case errors.Is(err, document.ErrSectionMoved):
		_, _ = fmt.Fprintln(deps.Stderr, "Error: The document changed while saving")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run the command again")
	case errors.Is(err, service.ErrNoChangesSpecified):
		_, _ = fmt.Fprintln(deps.Stderr, "Error: No changes specified")
		_, _ = fmt.Fprintf(deps.Stderr, "Usage: %s edit <document> <path> --name 'text' --start '...' --end '...'\n", app.Name)
	default:
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
	}
	deps.Exit(1)
}

// timestampHint returns the timestamp layout in effect for doc, with the
// current time written in it. Frontmatter overrides apply when the
// document can be read.
func timestampHint(ctx context.Context, deps *cli.Deps, doc string) (string, string) {
	cfg := deps.Config
	if effective, err := deps.Services.Tracker.Config(ctx, doc); err == nil {
		cfg = effective
	}
	now := deps.Services.Tracker.Now()
	if loc, err := timeutil.LoadLocation(cfg.Timezone); err == nil {
		now = now.In(loc)
	}
	return cfg.TimestampFormat, now.Format(cfg.TimestampFormat)
}

// parsePath parses a dotted entry path, reporting bad input.
func parsePath(deps *cli.Deps, raw string) (tracker.Path, bool) {
	path, err := tracker.ParsePath(raw)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid entry path '%s'\n", raw)
		_, _ = fmt.Fprintln(deps.Stderr, "Paths are 1-based positions separated by dots (e.g., 2 or 2.1)")
		deps.Exit(1)
		return nil, false
	}
	return path, true
}
