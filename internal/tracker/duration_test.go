package tracker

import (
	"testing"
	"time"
)

var t0 = time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := t0.Add(d)
	return &t
}

func leaf(name string, start, end *time.Time) *Entry {
	return &Entry{Name: name, StartTime: start, EndTime: end}
}

func TestDuration(t *testing.T) {
	now := t0.Add(2 * time.Hour)

	tests := []struct {
		name     string
		entry    *Entry
		expected time.Duration
	}{
		{"finished leaf", leaf("a", at(0), at(30*time.Minute)), 30 * time.Minute},
		{"running leaf counts to now", leaf("a", at(time.Hour), nil), time.Hour},
		{"template leaf without start", leaf("a", nil, nil), 0},
		{"end before start is zero", leaf("a", at(time.Hour), at(0)), 0},
		{
			"container sums children and ignores own timestamps",
			&Entry{
				Name:      "c",
				StartTime: at(0),
				EndTime:   at(10 * time.Hour),
				SubEntries: []*Entry{
					leaf("p1", at(0), at(10*time.Minute)),
					leaf("p2", at(time.Hour), at(time.Hour+5*time.Minute)),
				},
			},
			15 * time.Minute,
		},
		{
			"nested container",
			&Entry{SubEntries: []*Entry{
				leaf("p1", at(0), at(time.Minute)),
				{SubEntries: []*Entry{
					leaf("q1", at(0), at(2*time.Minute)),
					leaf("q2", at(90*time.Minute), nil),
				}},
			}},
			time.Minute + 2*time.Minute + 30*time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Duration(tt.entry, now); got != tt.expected {
				t.Errorf("Duration() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestDuration_MonotonicWhileRunning(t *testing.T) {
	e := leaf("a", at(0), nil)
	prev := time.Duration(-1)
	for i := 0; i < 10; i++ {
		d := Duration(e, t0.Add(time.Duration(i)*time.Minute))
		if d < prev {
			t.Fatalf("duration decreased from %v to %v", prev, d)
		}
		prev = d
	}

	e.EndTime = at(5 * time.Minute)
	first := Duration(e, t0.Add(time.Hour))
	second := Duration(e, t0.Add(48*time.Hour))
	if first != second || first != 5*time.Minute {
		t.Errorf("finished duration changed with now: %v vs %v", first, second)
	}
}

func TestDurationToday(t *testing.T) {
	todayStart := t0.Add(12 * time.Hour)
	now := todayStart.Add(3 * time.Hour)

	tests := []struct {
		name     string
		entry    *Entry
		expected time.Duration
	}{
		{"ended before today", leaf("a", at(0), at(time.Hour)), 0},
		{"started before today is clipped", leaf("a", at(11*time.Hour), at(13*time.Hour)), time.Hour},
		{"running across midnight", leaf("a", at(10*time.Hour), nil), 3 * time.Hour},
		{"entirely today", leaf("a", at(13*time.Hour), at(14*time.Hour)), time.Hour},
		{"no start", leaf("a", nil, nil), 0},
		{
			"container recurses",
			&Entry{SubEntries: []*Entry{
				leaf("old", at(0), at(time.Hour)),
				leaf("new", at(12*time.Hour), at(12*time.Hour+20*time.Minute)),
			}},
			20 * time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DurationToday(tt.entry, now, todayStart); got != tt.expected {
				t.Errorf("DurationToday() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestFindRunning(t *testing.T) {
	running := leaf("deep", at(time.Hour), nil)
	entries := []*Entry{
		leaf("done", at(0), at(time.Minute)),
		{
			Name:      "container",
			StartTime: at(0), // ignored on containers
			SubEntries: []*Entry{
				leaf("p1", at(0), at(time.Minute)),
				{SubEntries: []*Entry{leaf("q1", at(0), at(time.Minute)), running}},
			},
		},
	}

	if got := FindRunning(entries); got != running {
		t.Errorf("FindRunning() = %v, expected the nested running leaf", got)
	}

	running.EndTime = at(2 * time.Hour)
	if got := FindRunning(entries); got != nil {
		t.Errorf("FindRunning() = %q, expected nil", got.Name)
	}

	tr := &Tracker{Entries: entries}
	if tr.IsRunning() {
		t.Error("IsRunning() = true, expected false")
	}
}

func TestFindRunning_ContainerTimestampsIgnored(t *testing.T) {
	c := &Entry{
		Name:       "c",
		StartTime:  at(0),
		SubEntries: []*Entry{leaf("p1", at(0), at(time.Minute))},
	}
	if FindRunning([]*Entry{c}) != nil {
		t.Error("a container with a start and no end must not count as running")
	}
}

func TestEffectiveStartEnd(t *testing.T) {
	c := &Entry{SubEntries: []*Entry{
		leaf("p1", at(time.Hour), at(2*time.Hour)),
		leaf("p2", at(0), at(30*time.Minute)),
	}}

	if s := EffectiveStart(c); s == nil || !s.Equal(t0) {
		t.Errorf("EffectiveStart() = %v, expected %v", s, t0)
	}
	if e := EffectiveEnd(c); e == nil || !e.Equal(*at(2 * time.Hour)) {
		t.Errorf("EffectiveEnd() = %v, expected %v", e, at(2*time.Hour))
	}

	c.SubEntries = append(c.SubEntries, leaf("p3", at(3*time.Hour), nil))
	if e := EffectiveEnd(c); e != nil {
		t.Errorf("EffectiveEnd() = %v, expected nil while a part runs", e)
	}
}
