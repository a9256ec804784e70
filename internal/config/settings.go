package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownKey is returned for a setting name that does not exist.
var ErrUnknownKey = errors.New("unknown setting")

// Setting is one named config value in display form.
type Setting struct {
	Key   string
	Value string
}

// Keys lists the setting names in file order.
var Keys = []string{
	"timestamp_format",
	"csv_delimiter",
	"fine_grained_durations",
	"timestamp_durations",
	"reverse_segment_order",
	"markdown_table_pipes",
	"timezone",
	"theme",
}

// Settings returns every setting of c in file order.
func (c Config) Settings() []Setting {
	out := make([]Setting, 0, len(Keys))
	for _, k := range Keys {
		v, _ := c.Get(k)
		out = append(out, Setting{Key: k, Value: v})
	}
	return out
}

// Get returns the value of the setting named key.
func (c Config) Get(key string) (string, error) {
	switch key {
	case "timestamp_format":
		return c.TimestampFormat, nil
	case "csv_delimiter":
		return strconv.Quote(c.CSVDelimiter), nil
	case "fine_grained_durations":
		return strconv.FormatBool(c.FineGrainedDurations), nil
	case "timestamp_durations":
		return strconv.FormatBool(c.TimestampDurations), nil
	case "reverse_segment_order":
		return strconv.FormatBool(c.ReverseSegmentOrder), nil
	case "markdown_table_pipes":
		return strconv.FormatBool(c.MarkdownTablePipes), nil
	case "timezone":
		return c.Timezone, nil
	case "theme":
		return c.Theme, nil
	}
	return "", fmt.Errorf("%w %q (valid: %s)", ErrUnknownKey, key, strings.Join(Keys, ", "))
}

// Set parses value into the setting named key. The result is normalized
// and validated; on error c is left unchanged.
func (c *Config) Set(key, value string) error {
	next := *c
	var err error
	switch key {
	case "timestamp_format":
		next.TimestampFormat = value
	case "csv_delimiter":
		next.CSVDelimiter = value
	case "fine_grained_durations":
		next.FineGrainedDurations, err = parseBool(key, value)
	case "timestamp_durations":
		next.TimestampDurations, err = parseBool(key, value)
	case "reverse_segment_order":
		next.ReverseSegmentOrder, err = parseBool(key, value)
	case "markdown_table_pipes":
		next.MarkdownTablePipes, err = parseBool(key, value)
	case "timezone":
		next.Timezone = value
	case "theme":
		next.Theme = value
	default:
		_, err = c.Get(key)
	}
	if err != nil {
		return err
	}

	next.Normalize()
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: must be true or false", key, value)
	}
	return b, nil
}
