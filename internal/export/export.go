// Package export flattens a tracker into rows and renders them as a padded
// (markdown-style) table or as delimited text.
package export

import (
	"strings"
	"time"

	"github.com/xolan/stt/internal/timeutil"
	"github.com/xolan/stt/internal/tracker"
)

// Header is the column header of the padded table.
var Header = []string{"Segment", "Start time", "End time", "Duration"}

// Options controls ordering and cell formatting.
type Options struct {
	// Reverse lists newest entries first at every level.
	Reverse         bool
	TimestampFormat string
	Location        *time.Location
	Durations       timeutil.DurationStyle
	// Delimiter separates fields in delimited output.
	Delimiter rune
	// Pipes brackets table lines with a leading and trailing "|".
	Pipes bool
}

// DefaultOptions returns the options matching the default configuration.
func DefaultOptions() Options {
	return Options{
		TimestampFormat: timeutil.DefaultTimestampFormat,
		Location:        time.Local,
		Durations:       timeutil.DurationStyle{FineGrained: true},
		Delimiter:       ',',
		Pipes:           true,
	}
}

// Row is one flattened line of a tracker.
type Row struct {
	// Entry is nil for the total row.
	Entry *tracker.Entry
	Depth int
	// Path is the dotted stored-order path of the entry, whatever the
	// display order.
	Path      string
	Name      string
	Start     string
	End       string
	Duration  string
	Container bool
	Total     bool
}

// Cells returns the row's columns in header order.
func (r Row) Cells() []string {
	return []string{r.Name, r.Start, r.End, r.Duration}
}

// Rows flattens t in display order. Children follow their parent directly;
// a trailing total row carries the tracker's total duration.
func Rows(t *tracker.Tracker, opts Options, now time.Time) []Row {
	paths := make(map[*tracker.Entry]string)
	t.Walk(func(e *tracker.Entry, p tracker.Path) bool {
		paths[e] = p.String()
		return true
	})

	var rows []Row
	rows = appendRows(rows, t.Entries, 0, paths, opts, now)
	rows = append(rows, Row{
		Duration: timeutil.FormatDuration(t.Total(now), opts.Durations),
		Total:    true,
	})
	return rows
}

func appendRows(rows []Row, entries []*tracker.Entry, depth int, paths map[*tracker.Entry]string, opts Options, now time.Time) []Row {
	for _, e := range tracker.OrderedEntries(entries, opts.Reverse) {
		row := Row{
			Entry:     e,
			Depth:     depth,
			Path:      paths[e],
			Name:      displayName(e.Name, depth),
			Start:     timeutil.FormatTimestamp(tracker.EffectiveStart(e), opts.TimestampFormat, opts.Location),
			End:       timeutil.FormatTimestamp(tracker.EffectiveEnd(e), opts.TimestampFormat, opts.Location),
			Container: e.IsContainer(),
		}
		// A running leaf has no final duration yet.
		if e.IsContainer() || e.EndTime != nil {
			row.Duration = timeutil.FormatDuration(tracker.Duration(e, now), opts.Durations)
		}
		rows = append(rows, row)
		if e.IsContainer() {
			rows = appendRows(rows, e.SubEntries, depth+1, paths, opts, now)
		}
	}
	return rows
}

func displayName(name string, depth int) string {
	if depth == 0 {
		return name
	}
	return strings.Repeat("-", depth) + " " + name
}
