package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/stt/internal/cli"
	"github.com/xolan/stt/internal/osutil"
	"github.com/xolan/stt/internal/service"
)

// deps returns the dependencies shared by commands and handlers.
func deps() *cli.Deps {
	return cli.GetDeps()
}

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *cli.Deps) {
	cli.SetDeps(d)
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	cli.ResetDeps()
}

// documentPath expands the document argument to an absolute path. It
// reports failures itself and returns false.
func documentPath(raw string) (string, bool) {
	d := deps()
	path, err := osutil.ExpandPath(raw)
	if err != nil {
		_, _ = fmt.Fprintf(d.Stderr, "Error: Invalid document path '%s'\n", raw)
		_, _ = fmt.Fprintf(d.Stderr, "Details: %v\n", err)
		d.Exit(1)
		return "", false
	}
	return path, true
}

// target resolves the document argument and the --block flag.
func target(cmd *cobra.Command, raw string) (service.Target, bool) {
	doc, ok := documentPath(raw)
	if !ok {
		return service.Target{}, false
	}
	block, _ := cmd.Flags().GetInt("block")
	if block < 1 {
		d := deps()
		_, _ = fmt.Fprintf(d.Stderr, "Error: Invalid block number %d\n", block)
		_, _ = fmt.Fprintln(d.Stderr, "Blocks are numbered from 1 in document order")
		d.Exit(1)
		return service.Target{}, false
	}
	return service.NewTarget(doc, block), true
}
