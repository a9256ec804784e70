// Package service provides the business logic layer for the stt application.
// It loads trackers from documents, applies tracker operations and saves
// the result, providing one API for both CLI and TUI frontends.
package service

import (
	"errors"
	"time"

	"github.com/xolan/stt/internal/config"
	"github.com/xolan/stt/internal/host"
	"github.com/xolan/stt/internal/tracker"
)

// Common errors for the tracker service
var (
	ErrRemoveCancelled    = errors.New("removal cancelled")
	ErrNoChangesSpecified = errors.New("at least one change must be specified")
)

// Target identifies one tracker block of a document.
type Target struct {
	Locator host.Locator
	// Block is the 1-based index of the tracker block in the document.
	Block int
}

// NewTarget returns a Target for block n of the document at path.
func NewTarget(path string, n int) Target {
	return Target{Locator: host.StaticLocator(path), Block: n}
}

// Doc returns the document's current location.
func (t Target) Doc() string {
	return t.Locator.Current()
}

// Snapshot is a tracker as loaded from its document, with the settings in
// effect for that document.
type Snapshot struct {
	Tracker *tracker.Tracker
	Block   int
	Config  config.Config
	Now     time.Time
}

// Status summarizes a tracker at one instant.
type Status struct {
	Block int
	// Running is nil when nothing runs.
	Running     *tracker.Entry
	RunningPath tracker.Path
	// Current is the running entry's duration.
	Current time.Duration
	Total   time.Duration
	Today   time.Duration
	Entries int
	Now     time.Time
}

// EditInput holds the raw values of a manual edit. Nil fields stay unchanged.
type EditInput struct {
	Name  *string
	Start *string
	End   *string
}

// MigrateResult reports what a migration did to a document.
type MigrateResult struct {
	Blocks   int
	Migrated int
	Skipped  []int
	Backup   string
}
