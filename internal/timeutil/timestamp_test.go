package timeutil

import (
	"strings"
	"testing"
	"time"
)

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, time.March, 4, 9, 30, 15, 0, time.UTC)

	tests := []struct {
		name     string
		input    *time.Time
		layout   string
		expected string
	}{
		{"nil renders empty", nil, "", ""},
		{"default layout", &ts, "", "24-03-04 09:30:15"},
		{"custom layout", &ts, "15:04", "09:30"},
		{"iso layout", &ts, time.RFC3339, "2024-03-04T09:30:15Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTimestamp(tt.input, tt.layout, time.UTC); got != tt.expected {
				t.Errorf("FormatTimestamp() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	expected := time.Date(2024, time.March, 4, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		input  string
		layout string
	}{
		{"configured default layout", "24-03-04 09:30:00", ""},
		{"custom layout", "04.03.2024 09:30", "02.01.2006 15:04"},
		{"iso fallback", "2024-03-04T09:30:00Z", ""},
		{"iso with offset", "2024-03-04T10:30:00+01:00", ""},
		{"date and minutes", "2024-03-04 09:30", ""},
		{"surrounding space", "  2024-03-04 09:30:00 ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input, tt.layout, time.UTC)
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equal(expected) {
				t.Errorf("ParseTimestamp(%q) = %v, expected %v", tt.input, got, expected)
			}
		})
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		errorSubstring string
	}{
		{"empty", "", "cannot be empty"},
		{"garbage", "yesterday-ish", "invalid timestamp"},
		{"date only", "2024-03-04", "invalid timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTimestamp(tt.input, "", time.UTC)
			if err == nil {
				t.Fatalf("ParseTimestamp(%q) expected error", tt.input)
			}
			if !strings.Contains(err.Error(), tt.errorSubstring) {
				t.Errorf("error should contain %q, got: %v", tt.errorSubstring, err)
			}
		})
	}
}

func TestParseTimestamp_RoundTrip(t *testing.T) {
	ts := time.Date(2024, time.March, 4, 9, 30, 15, 0, time.UTC)
	text := FormatTimestamp(&ts, DefaultTimestampFormat, time.UTC)

	got, err := ParseTimestamp(text, DefaultTimestampFormat, time.UTC)
	if err != nil {
		t.Fatalf("ParseTimestamp(%q) error: %v", text, err)
	}
	if !got.Equal(ts) {
		t.Errorf("round trip = %v, expected %v", got, ts)
	}
}

func TestLoadLocation(t *testing.T) {
	for _, name := range []string{"", "Local"} {
		loc, err := LoadLocation(name)
		if err != nil || loc != time.Local {
			t.Errorf("LoadLocation(%q) = %v, %v, expected time.Local", name, loc, err)
		}
	}

	if loc, err := LoadLocation("UTC"); err != nil || loc.String() != "UTC" {
		t.Errorf("LoadLocation(UTC) = %v, %v", loc, err)
	}

	_, err := LoadLocation("Mars/Olympus")
	if err == nil || !strings.Contains(err.Error(), "invalid timezone") {
		t.Errorf("LoadLocation(Mars/Olympus) error = %v, expected invalid timezone", err)
	}
}
