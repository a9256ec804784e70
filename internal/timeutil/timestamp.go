package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// DefaultTimestampFormat is the layout used when none is configured.
const DefaultTimestampFormat = "06-01-02 15:04:05"

// fallbackLayouts are tried after the configured layout.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// FormatTimestamp renders t in loc using layout. A nil time renders as "".
func FormatTimestamp(t *time.Time, layout string, loc *time.Location) string {
	if t == nil {
		return ""
	}
	if layout == "" {
		layout = DefaultTimestampFormat
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(layout)
}

// ParseTimestamp parses input with the configured layout, falling back to
// ISO-8601 forms. Layouts without a zone are read in loc.
//
// Valid inputs (with the default layout):
//   - "24-03-04 09:30:00"
//   - "2024-03-04 09:30"
//   - "2024-03-04T09:30:00+01:00"
func ParseTimestamp(input, layout string, loc *time.Location) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, fmt.Errorf("timestamp cannot be empty (use format %s, e.g., %s)",
			layoutOrDefault(layout), time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC).Format(layoutOrDefault(layout)))
	}
	if loc == nil {
		loc = time.Local
	}

	for _, l := range append([]string{layoutOrDefault(layout)}, fallbackLayouts...) {
		if t, err := time.ParseInLocation(l, input, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp '%s' (use %s or YYYY-MM-DD HH:MM)", input, layoutOrDefault(layout))
}

// LoadLocation resolves a timezone name. "" and "Local" mean the system zone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

func layoutOrDefault(layout string) string {
	if layout == "" {
		return DefaultTimestampFormat
	}
	return layout
}
