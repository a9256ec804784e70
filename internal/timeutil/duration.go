package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	day   = 24 * time.Hour
	month = 30 * day
	year  = 365 * day
)

// DurationStyle selects how FormatDuration renders a duration.
type DurationStyle struct {
	// FineGrained adds years, months and days to the unit style and a day
	// prefix to the clock style. Otherwise hours are unbounded.
	FineGrained bool
	// Clock renders "02:05:03" instead of "2h 5m 3s".
	Clock bool
}

// FormatDuration renders d rounded to whole seconds. Negative durations
// render as zero.
//
// Unit style: "2h 5m 3s", "1m 5s", "0s"; fine-grained adds "1y 2M 3d".
// Clock style: "02:05:03", or "1.02:05:03" when fine-grained and at least
// one day long.
func FormatDuration(d time.Duration, style DurationStyle) string {
	d = d.Round(time.Second)
	if d < 0 {
		d = 0
	}
	if style.Clock {
		return formatClock(d, style.FineGrained)
	}
	return formatUnits(d, style.FineGrained)
}

func formatUnits(d time.Duration, fine bool) string {
	type unit struct {
		size   time.Duration
		suffix string
	}
	units := []unit{{time.Hour, "h"}, {time.Minute, "m"}, {time.Second, "s"}}
	if fine {
		units = append([]unit{{year, "y"}, {month, "M"}, {day, "d"}}, units...)
	}

	var parts []string
	for _, u := range units {
		n := d / u.size
		if n == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d%s", n, u.suffix))
		d -= n * u.size
	}
	if len(parts) == 0 {
		return "0s"
	}
	return strings.Join(parts, " ")
}

func formatClock(d time.Duration, fine bool) string {
	var days time.Duration
	if fine {
		days = d / day
		d -= days * day
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	clock := fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	if days > 0 {
		return fmt.Sprintf("%d.%s", days, clock)
	}
	return clock
}
