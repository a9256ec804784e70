package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xolan/stt/internal/config"
	"github.com/xolan/stt/internal/service"
	"github.com/xolan/stt/internal/tracker"
)

func TestWriteStatus(t *testing.T) {
	now := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	start := now.Add(-30 * time.Minute)
	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"
	cfg.FineGrainedDurations = false

	statuses := []*service.Status{
		{Block: 1, Total: 2 * time.Hour, Today: time.Hour, Now: now},
		{
			Block:       2,
			Running:     &tracker.Entry{Name: "Review", StartTime: &start},
			RunningPath: tracker.Path{1, 2},
			Current:     30 * time.Minute,
			Total:       45 * time.Minute,
			Today:       45 * time.Minute,
			Now:         now,
		},
	}

	out := &bytes.Buffer{}
	WriteStatus(out, statuses, cfg)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[1], "#1") || !strings.Contains(lines[1], "idle") || !strings.Contains(lines[1], "2h") {
		t.Errorf("idle row = %q", lines[1])
	}
	for _, want := range []string{"#2", `1.2 "Review"`, "30m (since today at 9:30 AM)", "45m"} {
		if !strings.Contains(lines[2], want) {
			t.Errorf("running row %q missing %q", lines[2], want)
		}
	}
}
