package tracker

import "time"

// Duration returns the elapsed time of an entry at now. Containers sum their
// children; a leaf without a start is zero; a running leaf counts up to now.
// Negative spans (end before start, or now before start) count as zero.
func Duration(e *Entry, now time.Time) time.Duration {
	if e.IsContainer() {
		return TotalDuration(e.SubEntries, now)
	}
	if e.StartTime == nil {
		return 0
	}
	end := now
	if e.EndTime != nil {
		end = *e.EndTime
	}
	return positive(end.Sub(*e.StartTime))
}

// DurationToday is Duration clipped to [todayStart, now].
func DurationToday(e *Entry, now, todayStart time.Time) time.Duration {
	if e.IsContainer() {
		return TotalDurationToday(e.SubEntries, now, todayStart)
	}
	if e.StartTime == nil {
		return 0
	}
	end := now
	if e.EndTime != nil && e.EndTime.Before(now) {
		end = *e.EndTime
	}
	if end.Before(todayStart) {
		return 0
	}
	start := *e.StartTime
	if start.Before(todayStart) {
		start = todayStart
	}
	return positive(end.Sub(start))
}

// TotalDuration sums Duration over a sibling list.
func TotalDuration(entries []*Entry, now time.Time) time.Duration {
	var total time.Duration
	for _, e := range entries {
		total += Duration(e, now)
	}
	return total
}

// TotalDurationToday sums DurationToday over a sibling list.
func TotalDurationToday(entries []*Entry, now, todayStart time.Time) time.Duration {
	var total time.Duration
	for _, e := range entries {
		total += DurationToday(e, now, todayStart)
	}
	return total
}

// FindRunning returns the first running leaf in depth-first stored order,
// or nil when nothing runs.
func FindRunning(entries []*Entry) *Entry {
	for _, e := range entries {
		if e.IsContainer() {
			if r := FindRunning(e.SubEntries); r != nil {
				return r
			}
			continue
		}
		if e.IsRunning() {
			return e
		}
	}
	return nil
}

// Running returns the tracker's running entry, or nil.
func (t *Tracker) Running() *Entry {
	return FindRunning(t.Entries)
}

// IsRunning reports whether any entry in the tracker is running.
func (t *Tracker) IsRunning() bool {
	return t.Running() != nil
}

// Total returns the tracker's total duration at now.
func (t *Tracker) Total(now time.Time) time.Duration {
	return TotalDuration(t.Entries, now)
}

// TotalToday returns the tracker's duration since todayStart.
func (t *Tracker) TotalToday(now, todayStart time.Time) time.Duration {
	return TotalDurationToday(t.Entries, now, todayStart)
}

// EffectiveStart is the entry's start for display: a leaf's own start, or
// the earliest start among a container's descendants.
func EffectiveStart(e *Entry) *time.Time {
	if !e.IsContainer() {
		return e.StartTime
	}
	var earliest *time.Time
	for _, sub := range e.SubEntries {
		s := EffectiveStart(sub)
		if s != nil && (earliest == nil || s.Before(*earliest)) {
			earliest = s
		}
	}
	return earliest
}

// EffectiveEnd is the entry's end for display: a leaf's own end, or the
// latest end among a container's descendants. It is nil while anything
// below the entry is still running.
func EffectiveEnd(e *Entry) *time.Time {
	if !e.IsContainer() {
		return e.EndTime
	}
	if FindRunning(e.SubEntries) != nil {
		return nil
	}
	var latest *time.Time
	for _, sub := range e.SubEntries {
		end := EffectiveEnd(sub)
		if end != nil && (latest == nil || end.After(*latest)) {
			latest = end
		}
	}
	return latest
}

func positive(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
