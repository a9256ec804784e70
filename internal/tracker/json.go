package tracker

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// TimestampLayout is the persisted timestamp form (UTC, millisecond precision).
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type entryJSON struct {
	Name       string   `json:"name"`
	StartTime  string   `json:"startTime,omitempty"`
	EndTime    string   `json:"endTime,omitempty"`
	SubEntries []*Entry `json:"subEntries,omitempty"`
	Collapsed  bool     `json:"collapsed,omitempty"`
}

type entryWire struct {
	Name       string          `json:"name"`
	StartTime  json.RawMessage `json:"startTime"`
	EndTime    json.RawMessage `json:"endTime"`
	SubEntries []*Entry        `json:"subEntries"`
	Collapsed  bool            `json:"collapsed"`
}

type trackerJSON struct {
	Entries []*Entry `json:"entries"`
}

// MarshalJSON writes the durable entry form. Absent timestamps and empty
// sub-entry lists are omitted.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{
		Name:       e.Name,
		StartTime:  formatStamp(e.StartTime),
		EndTime:    formatStamp(e.EndTime),
		SubEntries: e.SubEntries,
		Collapsed:  e.Collapsed,
	})
}

// UnmarshalJSON reads both the current form and legacy forms: numeric
// epoch timestamps are converted, null timestamps mean absent.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var w entryWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	start, err := decodeTimestamp(w.StartTime)
	if err != nil {
		return fmt.Errorf("startTime: %w", err)
	}
	end, err := decodeTimestamp(w.EndTime)
	if err != nil {
		return fmt.Errorf("endTime: %w", err)
	}
	*e = Entry{
		Name:       w.Name,
		StartTime:  start,
		EndTime:    end,
		SubEntries: w.SubEntries,
		Collapsed:  w.Collapsed,
	}
	return nil
}

// MarshalJSON writes {"entries":[...]}, never null.
func (t Tracker) MarshalJSON() ([]byte, error) {
	entries := t.Entries
	if entries == nil {
		entries = []*Entry{}
	}
	return json.Marshal(trackerJSON{Entries: entries})
}

// UnmarshalJSON reads a tracker and normalizes it.
func (t *Tracker) UnmarshalJSON(data []byte) error {
	var w trackerJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	t.Entries = Normalize(w.Entries)
	return nil
}

// Parse decodes persisted tracker JSON. Blank input is an empty tracker.
func Parse(data string) (*Tracker, error) {
	if strings.TrimSpace(data) == "" {
		return New(), nil
	}
	t := New()
	if err := json.Unmarshal([]byte(data), t); err != nil {
		return nil, fmt.Errorf("parse tracker: %w", err)
	}
	return t, nil
}

// Load is Parse that degrades to an empty tracker on malformed input.
func Load(data string) *Tracker {
	t, err := Parse(data)
	if err != nil {
		slog.Default().With("component", "tracker").Warn("failed to parse tracker, using an empty one",
			slog.String("error", err.Error()))
		return New()
	}
	return t
}

// Marshal returns the compact JSON snapshot that is written back to the host.
func (t *Tracker) Marshal() (string, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func formatStamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(TimestampLayout)
}
