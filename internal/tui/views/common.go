package views

import (
	"github.com/mattn/go-runewidth"

	"github.com/xolan/stt/internal/export"
)

// columns holds the widths of the tracker table's text columns.
type columns struct {
	name, start, end, duration int
}

// measure computes column widths over rows, limiting the name column so a
// row fits in width.
func measure(rows []export.Row, width int) columns {
	var c columns
	for _, r := range rows {
		c.name = max(c.name, runewidth.StringWidth(r.Name))
		c.start = max(c.start, runewidth.StringWidth(r.Start))
		c.end = max(c.end, runewidth.StringWidth(r.End))
		c.duration = max(c.duration, runewidth.StringWidth(r.Duration))
	}
	// fold marker, cursor and three separators
	fixed := 4 + c.start + c.end + c.duration + 3*2
	if width > 0 && fixed+c.name > width {
		c.name = max(width-fixed, 12)
	}
	return c
}

// fit pads or truncates s to exactly width cells.
func fit(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// fitLeft pads s on the left to width cells.
func fitLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}

func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
