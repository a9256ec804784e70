package tracker

// OrderedEntries returns entries in stored order, or reversed when reverse
// is set. The input slice is never modified. Reversal applies to this level
// only; callers recurse with the same flag for nested levels.
func OrderedEntries(entries []*Entry, reverse bool) []*Entry {
	out := make([]*Entry, len(entries))
	if !reverse {
		copy(out, entries)
		return out
	}
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out
}
