package tracker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// epochMillisThreshold separates legacy epoch seconds from epoch
// milliseconds: 1e11 seconds is far in the future, 1e11 ms is 1973.
const epochMillisThreshold = 1e11

// Normalize brings a decoded tree into canonical shape: nil entries are
// dropped and empty sub-entry lists become absent. It returns the cleaned
// slice and is idempotent.
func Normalize(entries []*Entry) []*Entry {
	out := entries[:0:0]
	for _, e := range entries {
		if e == nil {
			continue
		}
		e.SubEntries = Normalize(e.SubEntries)
		if len(e.SubEntries) == 0 {
			e.SubEntries = nil
			e.Collapsed = false
		}
		out = append(out, e)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Migrate rewrites persisted tracker JSON into canonical form. changed
// reports whether the canonical form differs from the input.
func Migrate(data string) (canonical string, changed bool, err error) {
	t, err := Parse(data)
	if err != nil {
		return "", false, err
	}
	canonical, err = t.Marshal()
	if err != nil {
		return "", false, err
	}
	return canonical, canonical != string(bytes.TrimSpace([]byte(data))), nil
}

// decodeTimestamp accepts an absent/null value, an ISO-8601 string, or a
// legacy bare number of epoch seconds (or milliseconds).
func decodeTimestamp(raw json.RawMessage) (*time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		if s == "" {
			return nil, nil
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return fromEpoch(n), nil
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp %q: %w", s, err)
		}
		return stamp(t.UTC()), nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, fmt.Errorf("invalid timestamp %s: %w", raw, err)
	}
	return fromEpoch(n), nil
}

func fromEpoch(n float64) *time.Time {
	var t time.Time
	if math.Abs(n) >= epochMillisThreshold {
		t = time.UnixMilli(int64(n))
	} else {
		sec, frac := math.Modf(n)
		t = time.Unix(int64(sec), int64(frac*1e9))
	}
	return stamp(t.UTC())
}
