package tracker

import (
	"fmt"
	"strconv"
	"strings"
)

// Path addresses an entry by 1-based positions in stored order, from the
// top level down: Path{2, 1} is the first sub-entry of the second entry.
type Path []int

// ParsePath parses a dotted path such as "2.1".
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	parts := strings.Split(s, ".")
	p := make(Path, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: %q (expected positive numbers like 2 or 2.1)", ErrInvalidPath, s)
		}
		p = append(p, n)
	}
	return p, nil
}

// String renders the path in dotted form.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Lookup resolves a path to an entry.
func (t *Tracker) Lookup(p Path) (*Entry, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	level := t.Entries
	var e *Entry
	for depth, n := range p {
		if n < 1 || n > len(level) {
			return nil, fmt.Errorf("%w: %s (no entry at position %d)", ErrEntryNotFound, p, p[depth])
		}
		e = level[n-1]
		level = e.SubEntries
	}
	return e, nil
}

// Find returns the entry with the given id, or nil.
func (t *Tracker) Find(id ID) *Entry {
	var found *Entry
	t.Walk(func(e *Entry, _ Path) bool {
		if e.ID() == id {
			found = e
			return false
		}
		return true
	})
	return found
}

// PathOf returns the stored-order path of the entry with the given id.
func (t *Tracker) PathOf(id ID) (Path, bool) {
	var found Path
	t.Walk(func(e *Entry, p Path) bool {
		if e.ID() == id {
			found = p
			return false
		}
		return true
	})
	return found, found != nil
}

// Walk visits every entry depth-first in stored order until fn returns false.
func (t *Tracker) Walk(fn func(e *Entry, p Path) bool) {
	walk(t.Entries, nil, fn)
}

func walk(entries []*Entry, prefix Path, fn func(*Entry, Path) bool) bool {
	for i, e := range entries {
		p := append(prefix[:len(prefix):len(prefix)], i+1)
		if !fn(e, p) {
			return false
		}
		if !walk(e.SubEntries, p, fn) {
			return false
		}
	}
	return true
}
