// Package document finds tracker blocks in a markdown document and writes
// tracker snapshots back into them.
//
// A tracker block is a fenced code block tagged with Fence whose body is
// the tracker's JSON:
//
//	```simple-time-tracker
//	{"entries":[...]}
//	```
package document

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xolan/stt/internal/tracker"
)

// Fence is the info string that marks a tracker block.
const Fence = "simple-time-tracker"

const fenceMarker = "```"

var (
	// ErrNoTracker means the document has no tracker block at the requested index.
	ErrNoTracker = errors.New("no tracker block")
	// ErrSectionMoved means a section's bounds no longer delimit a tracker
	// block, usually because the document changed since it was scanned.
	ErrSectionMoved = errors.New("tracker block moved")
)

// Section holds the 0-based line numbers of a block's opening and closing
// fence lines.
type Section struct {
	LineStart int
	LineEnd   int
}

// Body returns the lines strictly between the fences.
func (s Section) Body(lines []string) string {
	return strings.Join(lines[s.LineStart+1:s.LineEnd], "\n")
}

// Block is one tracker block of a document.
type Block struct {
	Section
	// Index is the 1-based position of the block in the document.
	Index   int
	Tracker *tracker.Tracker
}

// Sections returns the bounds of every complete tracker block in content.
// An opening fence without a closing fence is ignored, as is anything
// inside an ordinary ``` or ~~~ code block.
func Sections(content string) []Section {
	var sections []Section
	lines := splitLines(content)
	open := -1
	plain := ""
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case plain != "":
			if closesFence(trimmed, plain) {
				plain = ""
			}
		case open >= 0:
			if trimmed == fenceMarker {
				sections = append(sections, Section{LineStart: open, LineEnd: i})
				open = -1
			}
		case isOpeningFence(trimmed):
			open = i
		default:
			plain = fenceRun(trimmed)
		}
	}
	if open >= 0 {
		logger().Warn("unterminated tracker block", slog.Int("line", open+1))
	}
	return sections
}

// LoadAllTrackers parses every tracker block in content. Malformed blocks
// are skipped with a warning; the remaining blocks keep their document
// index.
func LoadAllTrackers(content string) []Block {
	lines := splitLines(content)
	var blocks []Block
	for i, s := range Sections(content) {
		t, err := tracker.Parse(s.Body(lines))
		if err != nil {
			logger().Warn("skipping malformed tracker block",
				slog.Int("block", i+1),
				slog.Int("line", s.LineStart+1),
				slog.String("error", err.Error()))
			continue
		}
		blocks = append(blocks, Block{Section: s, Index: i + 1, Tracker: t})
	}
	return blocks
}

// BlockAt returns the n-th (1-based) tracker block of content. A malformed
// block loads as an empty tracker.
func BlockAt(content string, n int) (Block, error) {
	sections := Sections(content)
	if len(sections) == 0 {
		return Block{}, fmt.Errorf("%w: the document has no %q block", ErrNoTracker, Fence)
	}
	if n < 1 || n > len(sections) {
		return Block{}, fmt.Errorf("%w: block %d (the document has %d)", ErrNoTracker, n, len(sections))
	}
	s := sections[n-1]
	return Block{
		Section: s,
		Index:   n,
		Tracker: tracker.Load(s.Body(splitLines(content))),
	}, nil
}

// ReplaceSection replaces the body of the block at s with text, leaving
// every other line untouched.
func ReplaceSection(content string, s Section, text string) (string, error) {
	lines := splitLines(content)
	if s.LineStart < 0 || s.LineEnd >= len(lines) || s.LineStart >= s.LineEnd ||
		!isOpeningFence(strings.TrimSpace(lines[s.LineStart])) ||
		strings.TrimSpace(lines[s.LineEnd]) != fenceMarker {
		return "", fmt.Errorf("%w: lines %d-%d", ErrSectionMoved, s.LineStart+1, s.LineEnd+1)
	}

	out := make([]string, 0, s.LineStart+2+len(lines)-s.LineEnd)
	out = append(out, lines[:s.LineStart+1]...)
	out = append(out, text)
	out = append(out, lines[s.LineEnd:]...)
	return strings.Join(out, "\n"), nil
}

// AppendBlock adds a new tracker block holding text at the end of content.
func AppendBlock(content, text string) string {
	block := fenceMarker + Fence + "\n" + text + "\n" + fenceMarker

	if strings.TrimSpace(content) == "" {
		return block + "\n"
	}
	if strings.HasSuffix(content, "\n") {
		return content + "\n" + block + "\n"
	}
	return content + "\n\n" + block + "\n"
}

func isOpeningFence(trimmed string) bool {
	return strings.TrimSpace(strings.TrimPrefix(trimmed, fenceMarker)) == Fence &&
		strings.HasPrefix(trimmed, fenceMarker)
}

// fenceRun returns the run of backticks or tildes that opens a code block
// on the line, or "" when the line opens none.
func fenceRun(trimmed string) string {
	if trimmed == "" || (trimmed[0] != '`' && trimmed[0] != '~') {
		return ""
	}
	n := len(trimmed) - len(strings.TrimLeft(trimmed, trimmed[:1]))
	if n < 3 {
		return ""
	}
	return trimmed[:n]
}

// closesFence reports whether the line ends a code block opened by run.
func closesFence(trimmed, run string) bool {
	return len(trimmed) >= len(run) && strings.Trim(trimmed, run[:1]) == ""
}

func splitLines(content string) []string {
	return strings.Split(content, "\n")
}

func logger() *slog.Logger {
	return slog.Default().With("component", "document")
}
