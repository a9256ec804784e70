package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"github.com/xolan/stt/internal/app"
	"github.com/xolan/stt/internal/osutil"
	"github.com/xolan/stt/internal/timeutil"
)

const (
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
	// DefaultTheme is the bubbletint theme used by the TUI
	DefaultTheme = "dracula"
)

// Config represents the application configuration
type Config struct {
	// TimestampFormat is the Go time layout used to display and parse timestamps
	TimestampFormat string `toml:"timestamp_format"`
	// CSVDelimiter separates fields in CSV exports (a single character)
	CSVDelimiter string `toml:"csv_delimiter"`
	// FineGrainedDurations adds years, months and days to durations
	FineGrainedDurations bool `toml:"fine_grained_durations"`
	// TimestampDurations renders durations as a clock ("02:05:03")
	TimestampDurations bool `toml:"timestamp_durations"`
	// ReverseSegmentOrder lists the newest entries first
	ReverseSegmentOrder bool `toml:"reverse_segment_order"`
	// MarkdownTablePipes brackets table lines with leading and trailing pipes
	MarkdownTablePipes bool `toml:"markdown_table_pipes"`
	// Timezone defines the timezone for displayed times (IANA timezone name, e.g., "America/New_York")
	Timezone string `toml:"timezone"`
	// Theme is the TUI color theme
	Theme string `toml:"theme"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		TimestampFormat:      timeutil.DefaultTimestampFormat,
		CSVDelimiter:         ",",
		FineGrainedDurations: true,
		TimestampDurations:   false,
		ReverseSegmentOrder:  false,
		MarkdownTablePipes:   true,
		Timezone:             "Local",
		Theme:                DefaultTheme,
	}
}

// Load reads the config file at path. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config file, or returns DefaultConfig when it
// does not exist. Any other failure is returned.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("failed to access config file: %w", err)
	}
	return Load(path)
}

// Normalize trims whitespace and lowercases case-insensitive values.
func (c *Config) Normalize() {
	c.TimestampFormat = strings.TrimSpace(c.TimestampFormat)
	c.Timezone = strings.TrimSpace(c.Timezone)
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
}

// Validate checks every field.
func (c *Config) Validate() error {
	if c.TimestampFormat == "" {
		return fmt.Errorf("invalid timestamp_format: must not be empty (e.g., %q)", timeutil.DefaultTimestampFormat)
	}
	if err := validateDelimiter(c.CSVDelimiter); err != nil {
		return err
	}
	if _, err := timeutil.LoadLocation(c.Timezone); err != nil {
		return err
	}
	return nil
}

// Delimiter returns the CSV delimiter as a rune.
func (c Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSVDelimiter)
	return r
}

// DurationStyle returns the configured duration display style.
func (c Config) DurationStyle() timeutil.DurationStyle {
	return timeutil.DurationStyle{
		FineGrained: c.FineGrainedDurations,
		Clock:       c.TimestampDurations,
	}
}

func validateDelimiter(d string) error {
	if utf8.RuneCountInString(d) != 1 {
		return fmt.Errorf("invalid csv_delimiter %q: must be a single character", d)
	}
	switch d {
	case "\"", "\r", "\n":
		return fmt.Errorf("invalid csv_delimiter %q: quotes and line breaks are not allowed", d)
	}
	return nil
}

// GetConfigPath returns the path to the config file.
// Uses the user config directory (XDG-compliant on Linux).
// Creates the config directory if it doesn't exist.
func GetConfigPath() (string, error) {
	configDir, err := osutil.Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, app.Name)

	// Create config directory if it doesn't exist
	if err := osutil.Provider.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, ConfigFile), nil
}

// GenerateSampleConfig returns a commented sample config file.
func GenerateSampleConfig() string {
	return `# stt configuration file
# Uncomment and edit the settings you want to change.

# Timestamp layout in Go reference-time notation (Mon Jan 2 15:04:05 2006)
# timestamp_format = "06-01-02 15:04:05"

# Field delimiter for "stt export csv" (a single character, e.g. "," or ";")
# csv_delimiter = ","

# Show years, months and days in durations ("1d 2h" instead of "26h")
# fine_grained_durations = true

# Show durations as a clock ("02:05:03" instead of "2h 5m 3s")
# timestamp_durations = false

# List the newest segments first
# reverse_segment_order = false

# Start and end table lines with a pipe for markdown tables
# markdown_table_pipes = true

# Timezone: IANA timezone name (e.g., "America/New_York", "Europe/London", "Asia/Tokyo") or "Local"
# timezone = "Local"

# TUI color theme (e.g., "dracula", "nord", "gruvbox_dark")
# theme = "dracula"
`
}

// Render returns cfg as TOML.
func Render(cfg Config) (string, error) {
	var b strings.Builder
	b.WriteString("# stt configuration file\n\n")
	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return b.String(), nil
}
