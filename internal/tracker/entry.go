// Package tracker implements the time tracking tree: a Tracker holds an ordered
// list of entries, each either a timed leaf or a container of sub-entries.
//
// Durations are always derived from the stored timestamps plus an injected
// "now"; nothing in this package samples the wall clock.
package tracker

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// SegmentPrefix names top-level entries started without a name.
	SegmentPrefix = "Segment"
	// PartPrefix names sub-entries created by a split without a name.
	PartPrefix = "Part"
)

// ID identifies an entry for the lifetime of the in-memory tree.
// It is not persisted.
type ID string

// Entry is one node of the tree. An entry with sub-entries is a container:
// its own StartTime and EndTime are unused and its duration is the sum of
// its children.
type Entry struct {
	Name       string
	StartTime  *time.Time
	EndTime    *time.Time
	SubEntries []*Entry
	// Collapsed only affects tree rendering.
	Collapsed bool

	id ID
}

// Tracker is the root collection of top-level entries for one tracking block.
type Tracker struct {
	Entries []*Entry
}

// New returns an empty tracker.
func New() *Tracker {
	return &Tracker{Entries: []*Entry{}}
}

// ID returns the entry's identity, assigning one on first use.
func (e *Entry) ID() ID {
	if e.id == "" {
		e.id = ID(uuid.NewString())
	}
	return e.id
}

// IsContainer reports whether the entry has at least one sub-entry.
func (e *Entry) IsContainer() bool {
	return len(e.SubEntries) > 0
}

// IsRunning reports whether the entry is a leaf with a start and no end.
func (e *Entry) IsRunning() bool {
	return !e.IsContainer() && e.StartTime != nil && e.EndTime == nil
}

// newLeaf creates a running leaf. Blank names get the positional default.
func newLeaf(name, prefix string, siblings int, now time.Time) *Entry {
	if name == "" {
		name = defaultName(prefix, siblings)
	}
	return &Entry{Name: name, StartTime: stamp(now)}
}

func defaultName(prefix string, siblings int) string {
	return fmt.Sprintf("%s %d", prefix, siblings+1)
}

// stamp truncates to the persisted precision so the in-memory value and the
// stored value compare equal.
func stamp(t time.Time) *time.Time {
	s := t.Truncate(time.Millisecond)
	return &s
}

// split converts a leaf into a container whose first part carries the
// leaf's own timestamps. It is a no-op on containers.
func (e *Entry) split() {
	if e.IsContainer() {
		return
	}
	first := &Entry{
		Name:      defaultName(PartPrefix, 0),
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
	}
	e.SubEntries = []*Entry{first}
	e.StartTime = nil
	e.EndTime = nil
}

// collapse folds a container with exactly one child back into its parent.
// A surviving leaf gives the parent its timestamps; a surviving container
// hands its children up so no time is lost.
func (e *Entry) collapse() {
	if len(e.SubEntries) != 1 {
		return
	}
	only := e.SubEntries[0]
	if only.IsContainer() {
		e.SubEntries = only.SubEntries
		return
	}
	e.StartTime = only.StartTime
	e.EndTime = only.EndTime
	e.SubEntries = nil
	e.Collapsed = false
}
