package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/stt/internal/app"
	"github.com/xolan/stt/internal/cli"
	"github.com/xolan/stt/internal/host"
	"github.com/xolan/stt/internal/service"
	"github.com/xolan/stt/internal/tracker"
)

// InitTracker appends an empty tracker block to a document
func InitTracker(ctx context.Context, deps *cli.Deps, doc string) {
	n, err := deps.Services.Tracker.Init(ctx, doc)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to add a tracker block")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Added tracker block #%d to %s\n", n, doc)
	_, _ = fmt.Fprintf(deps.Stdout, "Start tracking with '%s start %s <name>'\n", app.Name, doc)
}

// StartEntry starts a new top-level entry
func StartEntry(ctx context.Context, deps *cli.Deps, tgt service.Target, name string) {
	e, err := deps.Services.Tracker.Start(ctx, tgt, name)
	if err != nil {
		fail(ctx, deps, tgt.Doc(), err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Started: %s\n", e.Name)
}

// StopEntry ends the running entry
func StopEntry(ctx context.Context, deps *cli.Deps, tgt service.Target) {
	e, err := deps.Services.Tracker.Stop(ctx, tgt)
	if err != nil {
		if errors.Is(err, tracker.ErrStateConflict) {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: No entry is running")
			_, _ = fmt.Fprintf(deps.Stderr, "Hint: Start one with '%s start %s <name>'\n", app.Name, tgt.Doc())
			deps.Exit(1)
			return
		}
		fail(ctx, deps, tgt.Doc(), err)
		return
	}
	d := tracker.Duration(e, *e.EndTime)
	_, _ = fmt.Fprintf(deps.Stdout, "Stopped: %s (%s)\n", e.Name, cli.FormatDuration(d, deps.Config))
}

// ContinueEntry starts a new part under the entry at path
func ContinueEntry(ctx context.Context, deps *cli.Deps, tgt service.Target, rawPath, name string) {
	path, ok := parsePath(deps, rawPath)
	if !ok {
		return
	}
	e, err := deps.Services.Tracker.Continue(ctx, tgt, path, name)
	if err != nil {
		fail(ctx, deps, tgt.Doc(), err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Continued %s: %s\n", path, e.Name)
}

// RemoveEntry deletes the entry at path, asking first unless skipConfirm is set
func RemoveEntry(ctx context.Context, deps *cli.Deps, tgt service.Target, rawPath string, skipConfirm bool) {
	path, ok := parsePath(deps, rawPath)
	if !ok {
		return
	}

	var confirm host.Confirmer = deps.Confirmer()
	if skipConfirm {
		confirm = host.AlwaysConfirm
	}

	e, err := deps.Services.Tracker.Remove(ctx, tgt, path, confirm)
	if err != nil {
		if errors.Is(err, service.ErrRemoveCancelled) {
			_, _ = fmt.Fprintln(deps.Stdout, "Removal cancelled")
			return
		}
		fail(ctx, deps, tgt.Doc(), err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Removed: %s\n", cli.FormatEntryLabel(path, e))
}

// EditEntry changes the name or timestamps of the entry at path
func EditEntry(ctx context.Context, deps *cli.Deps, tgt service.Target, rawPath string, in service.EditInput) {
	path, ok := parsePath(deps, rawPath)
	if !ok {
		return
	}
	e, err := deps.Services.Tracker.Edit(ctx, tgt, path, in)
	if err != nil {
		fail(ctx, deps, tgt.Doc(), err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Updated: %s\n", cli.FormatEntryLabel(path, e))
}

// CollapseEntry sets the collapsed display flag of the container at path
func CollapseEntry(ctx context.Context, deps *cli.Deps, tgt service.Target, rawPath string, collapsed bool) {
	path, ok := parsePath(deps, rawPath)
	if !ok {
		return
	}
	if err := deps.Services.Tracker.SetCollapsed(ctx, tgt, path, collapsed); err != nil {
		fail(ctx, deps, tgt.Doc(), err)
		return
	}
	verb := "Expanded"
	if collapsed {
		verb = "Collapsed"
	}
	_, _ = fmt.Fprintf(deps.Stdout, "%s %s\n", verb, path)
}

// ShowTracker prints the tracker as a table with entry paths, rendered as
// markdown when render is set
func ShowTracker(ctx context.Context, deps *cli.Deps, tgt service.Target, render bool, width int) {
	table, err := deps.Services.Tracker.Listing(ctx, tgt)
	if err != nil {
		fail(ctx, deps, tgt.Doc(), err)
		return
	}
	if render {
		_, _ = fmt.Fprintln(deps.Stdout, cli.RenderMarkdown(table, width))
		return
	}
	_, _ = fmt.Fprint(deps.Stdout, table)
}

// Export formats
const (
	FormatTable = "table"
	FormatCSV   = "csv"
)

// ExportTracker writes the tracker in the given format to stdout, or to the
// clipboard when copy is set
func ExportTracker(ctx context.Context, deps *cli.Deps, tgt service.Target, format string, copy bool) {
	var (
		out string
		err error
	)
	switch strings.ToLower(format) {
	case FormatTable:
		out, err = deps.Services.Tracker.Table(ctx, tgt)
	case FormatCSV:
		out, err = deps.Services.Tracker.CSV(ctx, tgt)
	default:
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Unsupported format '%s'\n", format)
		_, _ = fmt.Fprintln(deps.Stderr, "Supported formats: table, csv")
		deps.Exit(1)
		return
	}
	if err != nil {
		fail(ctx, deps, tgt.Doc(), err)
		return
	}

	if !copy {
		_, _ = fmt.Fprint(deps.Stdout, out)
		return
	}
	if err := deps.Clipboard(out); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to copy to the clipboard")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Drop --copy to print the export instead")
		deps.Exit(1)
		return
	}
	lines := strings.Count(out, "\n")
	_, _ = fmt.Fprintf(deps.Stdout, "Copied %d %s to the clipboard\n", lines, cli.Pluralize("line", lines))
}

// ShowStatus prints running state and totals. Block 0 summarizes every
// tracker block in the document.
func ShowStatus(ctx context.Context, deps *cli.Deps, doc string, block int) {
	var (
		statuses []*service.Status
		err      error
	)
	if block == 0 {
		statuses, err = deps.Services.Tracker.StatusAll(ctx, doc)
	} else {
		var st *service.Status
		st, err = deps.Services.Tracker.Status(ctx, service.NewTarget(doc, block))
		statuses = []*service.Status{st}
	}
	if err != nil {
		fail(ctx, deps, doc, err)
		return
	}
	if len(statuses) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No tracker blocks in %s\n", doc)
		_, _ = fmt.Fprintf(deps.Stdout, "Add one with: %s init %s\n", app.Name, doc)
		return
	}
	cfg, err := deps.Services.Tracker.Config(ctx, doc)
	if err != nil {
		cfg = deps.Config
	}
	cli.WriteStatus(deps.Stdout, statuses, cfg)
}

// MigrateDocument rewrites every tracker block of a document in canonical form
func MigrateDocument(ctx context.Context, deps *cli.Deps, doc string, backup bool) {
	result, err := deps.Services.Tracker.Migrate(ctx, doc, backup)
	if err != nil {
		fail(ctx, deps, doc, err)
		return
	}

	if result.Migrated == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "Nothing to migrate: %d %s already canonical\n",
			result.Blocks-len(result.Skipped), cli.Pluralize("block", result.Blocks-len(result.Skipped)))
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Migrated %d of %d %s\n", result.Migrated, result.Blocks, cli.Pluralize("block", result.Blocks))
	}
	if result.Backup != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "Backup: %s\n", result.Backup)
	}
	for _, n := range result.Skipped {
		_, _ = fmt.Fprintf(deps.Stderr, "Warning: Block #%d is not valid tracker JSON and was left unchanged\n", n)
	}
}
