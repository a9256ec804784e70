package cli

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	md := "| Segment | Duration |\n| ------- | -------- |\n| Review  | 1h       |\n"

	out := RenderMarkdown(md, 80)
	if !strings.Contains(out, "Review") || !strings.Contains(out, "Segment") {
		t.Errorf("rendered table lost its cells:\n%s", out)
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("expected trailing newlines to be trimmed")
	}
}

func TestRenderMarkdown_Empty(t *testing.T) {
	if got := RenderMarkdown("  \n", 80); got != "" {
		t.Errorf("RenderMarkdown(blank) = %q, want empty", got)
	}
}
