package document

import (
	"testing"
)

func TestSplitFrontmatter(t *testing.T) {
	meta, body, err := SplitFrontmatter("---\ntitle: Monday\n---\n# Notes\n")
	if err != nil {
		t.Fatalf("SplitFrontmatter() error = %v", err)
	}
	if meta["title"] != "Monday" {
		t.Errorf("title = %v, expected Monday", meta["title"])
	}
	if body != "# Notes\n" {
		t.Errorf("body = %q", body)
	}

	meta, body, err = SplitFrontmatter("# Notes\n")
	if err != nil || len(meta) != 0 || body != "# Notes\n" {
		t.Errorf("SplitFrontmatter() without frontmatter = %v, %q, %v", meta, body, err)
	}

	if _, _, err := SplitFrontmatter("---\ntitle: x\n# no end\n"); err == nil {
		t.Error("SplitFrontmatter() expected an error for a missing closing separator")
	}
}

func TestReadOverrides(t *testing.T) {
	doc := "---\n" +
		"title: Monday\n" +
		"time-tracker:\n" +
		"  reverse_segment_order: true\n" +
		"  csv_delimiter: \";\"\n" +
		"  timestamp_durations: false\n" +
		"---\n" +
		"body\n"

	o, err := ReadOverrides(doc)
	if err != nil {
		t.Fatalf("ReadOverrides() error = %v", err)
	}
	if o.ReverseSegmentOrder == nil || !*o.ReverseSegmentOrder {
		t.Error("reverse_segment_order should be true")
	}
	if o.CSVDelimiter == nil || *o.CSVDelimiter != ";" {
		t.Errorf("csv_delimiter = %v, expected ;", o.CSVDelimiter)
	}
	if o.TimestampDurations == nil || *o.TimestampDurations {
		t.Error("timestamp_durations should be set to false")
	}
	if o.FineGrainedDurations != nil || o.TimestampFormat != nil {
		t.Error("unset keys should stay nil")
	}
}

func TestReadOverrides_None(t *testing.T) {
	for _, doc := range []string{"# no frontmatter\n", "---\ntitle: x\n---\n", "---\ntime-tracker:\n---\n"} {
		o, err := ReadOverrides(doc)
		if err != nil {
			t.Fatalf("ReadOverrides(%q) error = %v", doc, err)
		}
		if !o.IsZero() {
			t.Errorf("ReadOverrides(%q) = %+v, expected none", doc, o)
		}
	}
}

func TestReadOverrides_Invalid(t *testing.T) {
	doc := "---\ntime-tracker:\n  reverse_segment_order: [1, 2]\n---\n"
	if _, err := ReadOverrides(doc); err == nil {
		t.Error("ReadOverrides() expected an error for a list where a bool belongs")
	}
}
