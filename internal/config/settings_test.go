package config

import (
	"errors"
	"strings"
	"testing"
)

func TestSettings_Order(t *testing.T) {
	settings := DefaultConfig().Settings()
	if len(settings) != len(Keys) {
		t.Fatalf("Settings() returned %d entries, expected %d", len(settings), len(Keys))
	}
	for i, s := range settings {
		if s.Key != Keys[i] {
			t.Errorf("settings[%d] = %q, expected %q", i, s.Key, Keys[i])
		}
	}
	if settings[1].Value != `","` {
		t.Errorf("csv_delimiter = %s, expected a quoted comma", settings[1].Value)
	}
}

func TestConfig_Set(t *testing.T) {
	tests := []struct {
		key   string
		value string
		check func(Config) bool
	}{
		{"timestamp_format", "2006-01-02 15:04", func(c Config) bool { return c.TimestampFormat == "2006-01-02 15:04" }},
		{"csv_delimiter", ";", func(c Config) bool { return c.CSVDelimiter == ";" }},
		{"fine_grained_durations", "false", func(c Config) bool { return !c.FineGrainedDurations }},
		{"timestamp_durations", "true", func(c Config) bool { return c.TimestampDurations }},
		{"reverse_segment_order", " 1 ", func(c Config) bool { return c.ReverseSegmentOrder }},
		{"markdown_table_pipes", "FALSE", func(c Config) bool { return !c.MarkdownTablePipes }},
		{"timezone", "Europe/Berlin", func(c Config) bool { return c.Timezone == "Europe/Berlin" }},
		{"theme", " Nord ", func(c Config) bool { return c.Theme == "nord" }},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cfg := DefaultConfig()
			if err := cfg.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set(%q, %q) error = %v", tt.key, tt.value, err)
			}
			if !tt.check(cfg) {
				t.Errorf("Set(%q, %q) left %+v", tt.key, tt.value, cfg)
			}
		})
	}
}

func TestConfig_SetInvalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"unknown key", "week_start_day", "monday", "unknown setting"},
		{"bad bool", "timestamp_durations", "sometimes", "must be true or false"},
		{"long delimiter", "csv_delimiter", ";;", "single character"},
		{"bad timezone", "timezone", "Mars/Olympus", "timezone"},
		{"empty format", "timestamp_format", "  ", "timestamp_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.Set(tt.key, tt.value)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Set(%q, %q) error = %v, expected %q", tt.key, tt.value, err, tt.wantErr)
			}
			if cfg != DefaultConfig() {
				t.Errorf("a failed Set changed the config: %+v", cfg)
			}
		})
	}

	cfg := DefaultConfig()
	if err := cfg.Set("nope", "1"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("expected ErrUnknownKey, got %v", err)
	}
}
