package tracker

import (
	"fmt"
	"slices"
	"time"
)

// StartNewEntry appends a running top-level entry. A blank name becomes
// "Segment N". It fails with ErrStateConflict while another entry runs.
func (t *Tracker) StartNewEntry(name string, now time.Time) (*Entry, error) {
	if running := t.Running(); running != nil {
		return nil, fmt.Errorf("%w: %q is already running", ErrStateConflict, running.Name)
	}
	e := newLeaf(name, SegmentPrefix, len(t.Entries), now)
	t.Entries = append(t.Entries, e)
	return e, nil
}

// EndRunningEntry stops the running entry and returns it. It fails with
// ErrStateConflict when nothing runs.
func (t *Tracker) EndRunningEntry(now time.Time) (*Entry, error) {
	running := t.Running()
	if running == nil {
		return nil, fmt.Errorf("%w: no entry is running", ErrStateConflict)
	}
	running.EndTime = stamp(now)
	return running, nil
}

// StartSubEntry continues a finished entry with a new running part.
// It refuses while anything in the tracker runs.
func (t *Tracker) StartSubEntry(target *Entry, name string, now time.Time) (*Entry, error) {
	if running := t.Running(); running != nil {
		return nil, fmt.Errorf("%w: %q is already running", ErrStateConflict, running.Name)
	}
	return StartSubEntry(target, name, now)
}

// StartSubEntry continues entry e. A leaf is first split into a container
// whose "Part 1" keeps the leaf's timestamps; then a running child named
// name (or "Part N") is appended. A leaf that was never started splits the
// same way; its "Part 1" stays unstarted and adds nothing to the duration.
func StartSubEntry(e *Entry, name string, now time.Time) (*Entry, error) {
	if e.IsRunning() {
		return nil, fmt.Errorf("%w: %q is already running", ErrStateConflict, e.Name)
	}
	e.split()
	child := newLeaf(name, PartPrefix, len(e.SubEntries), now)
	e.SubEntries = append(e.SubEntries, child)
	return child, nil
}

// RemoveEntry deletes the entry with the given id from the tracker.
// It reports false when no such entry exists.
func (t *Tracker) RemoveEntry(id ID) bool {
	entries, ok := RemoveEntry(t.Entries, id)
	t.Entries = entries
	return ok
}

// RemoveEntry searches entries depth-first for id and deletes it. A
// container left with a single child is collapsed back into a leaf.
// The returned slice replaces the input.
func RemoveEntry(entries []*Entry, id ID) ([]*Entry, bool) {
	for i, e := range entries {
		if e.ID() == id {
			return slices.Delete(entries, i, i+1), true
		}
	}
	for _, e := range entries {
		if !e.IsContainer() {
			continue
		}
		subs, ok := RemoveEntry(e.SubEntries, id)
		if !ok {
			continue
		}
		e.SubEntries = subs
		switch len(subs) {
		case 0:
			e.SubEntries = nil
		case 1:
			e.collapse()
		}
		return entries, true
	}
	return entries, false
}

// Edit holds the fields to change on an entry. Nil fields stay untouched.
type Edit struct {
	Name      *string
	StartTime *time.Time
	EndTime   *time.Time
}

// EditEntry applies edit to e. Containers accept only a new name; leaves
// must keep start before end. Nothing changes when validation fails.
func EditEntry(e *Entry, edit Edit) error {
	if e.IsContainer() && (edit.StartTime != nil || edit.EndTime != nil) {
		return fmt.Errorf("%w: %q has sub-entries, only its name can change", ErrInvalidEdit, e.Name)
	}

	start, end := e.StartTime, e.EndTime
	if edit.StartTime != nil {
		start = stamp(*edit.StartTime)
	}
	if edit.EndTime != nil {
		end = stamp(*edit.EndTime)
	}
	if end != nil && start == nil {
		return fmt.Errorf("%w: end time needs a start time", ErrInvalidEdit)
	}
	if start != nil && end != nil && !end.After(*start) {
		return fmt.Errorf("%w: end time must be after start time", ErrInvalidEdit)
	}

	if edit.Name != nil {
		e.Name = *edit.Name
	}
	e.StartTime = start
	e.EndTime = end
	return nil
}

// EditEntry edits the entry with the given id. Giving a never-started entry
// a start time makes it run, which is refused while another entry runs.
func (t *Tracker) EditEntry(id ID, edit Edit) (*Entry, error) {
	e := t.Find(id)
	if e == nil {
		return nil, ErrEntryNotFound
	}
	startsRunning := !e.IsContainer() && e.StartTime == nil &&
		edit.StartTime != nil && edit.EndTime == nil && e.EndTime == nil
	if running := t.Running(); startsRunning && running != nil {
		return nil, fmt.Errorf("%w: %q is already running", ErrStateConflict, running.Name)
	}
	if err := EditEntry(e, edit); err != nil {
		return nil, err
	}
	return e, nil
}

// SetCollapsed toggles the display-only collapsed flag of a container.
func (t *Tracker) SetCollapsed(id ID, collapsed bool) error {
	e := t.Find(id)
	if e == nil {
		return ErrEntryNotFound
	}
	e.Collapsed = collapsed && e.IsContainer()
	return nil
}
