package handlers

import (
	"context"
	"fmt"

	"github.com/xolan/stt/internal/cli"
	"github.com/xolan/stt/internal/host"
	"github.com/xolan/stt/internal/service"
)

// TUIRunner starts the interactive tracker for block of the document loc
// points at.
type TUIRunner func(ctx context.Context, services *service.Services, loc *host.MovableLocator, block int, copy func(string) error) error

// OpenTUI checks that the document holds the tracker block and hands it to
// run.
func OpenTUI(ctx context.Context, deps *cli.Deps, doc string, block int, run TUIRunner) {
	loc := host.NewMovableLocator(doc)
	if _, err := deps.Services.Tracker.Load(ctx, service.Target{Locator: loc, Block: block}); err != nil {
		fail(ctx, deps, doc, err)
		return
	}

	if err := run(ctx, deps.Services, loc, block, deps.Clipboard); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to run the terminal UI")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
	}
}
