// Package cli provides the CLI presentation layer for the stt application.
// It handles command-line output formatting and user interaction.
package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/xolan/stt/internal/config"
	"github.com/xolan/stt/internal/timeutil"
	"github.com/xolan/stt/internal/tracker"
)

// FormatDuration formats a duration in the configured style
// Examples: "1h 30m", "1d 2h", "01:30:00"
func FormatDuration(d time.Duration, cfg config.Config) string {
	return timeutil.FormatDuration(d, cfg.DurationStyle())
}

// FormatEntryLabel formats an entry with its path for display.
// Example: `2.1 "Part 1"`
func FormatEntryLabel(path tracker.Path, e *tracker.Entry) string {
	if len(path) == 0 {
		return fmt.Sprintf("%q", e.Name)
	}
	return fmt.Sprintf("%s %q", path, e.Name)
}

// FormatStartTime formats when an entry started relative to now
// Examples: "today at 9:05 AM", "Mon Mar 4 at 9:05 AM"
func FormatStartTime(startedAt, now time.Time, loc *time.Location) string {
	startedAt = startedAt.In(loc)
	now = now.In(loc)
	startTime := startedAt.Format("3:04 PM")

	if timeutil.StartOfDay(startedAt).Equal(timeutil.StartOfDay(now)) {
		return fmt.Sprintf("today at %s", startTime)
	}
	return fmt.Sprintf("%s at %s", startedAt.Format("Mon Jan 2"), startTime)
}

// FormatAgo formats t relative to now
// Examples: "3 minutes ago", "2 hours ago"
func FormatAgo(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
