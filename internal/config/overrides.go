package config

// Overrides are per-document settings read from a document's frontmatter
// under the "time-tracker" key. Nil fields keep the configured value.
type Overrides struct {
	ReverseSegmentOrder  *bool   `yaml:"reverse_segment_order"`
	TimestampFormat      *string `yaml:"timestamp_format"`
	CSVDelimiter         *string `yaml:"csv_delimiter"`
	FineGrainedDurations *bool   `yaml:"fine_grained_durations"`
	TimestampDurations   *bool   `yaml:"timestamp_durations"`
}

// IsZero reports whether no override is set.
func (o Overrides) IsZero() bool {
	return o == Overrides{}
}

// WithOverrides returns a copy of c with o applied. An override that would
// make the config invalid is rejected.
func (c Config) WithOverrides(o Overrides) (Config, error) {
	if o.ReverseSegmentOrder != nil {
		c.ReverseSegmentOrder = *o.ReverseSegmentOrder
	}
	if o.TimestampFormat != nil {
		c.TimestampFormat = *o.TimestampFormat
	}
	if o.CSVDelimiter != nil {
		c.CSVDelimiter = *o.CSVDelimiter
	}
	if o.FineGrainedDurations != nil {
		c.FineGrainedDurations = *o.FineGrainedDurations
	}
	if o.TimestampDurations != nil {
		c.TimestampDurations = *o.TimestampDurations
	}
	c.Normalize()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
