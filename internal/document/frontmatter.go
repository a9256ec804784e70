package document

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/xolan/stt/internal/config"
)

const (
	frontmatterSeparator = "---\n"
	// OverridesKey is the frontmatter key holding per-document settings.
	OverridesKey = "time-tracker"
)

// SplitFrontmatter separates a leading YAML frontmatter block from the
// body. A document without frontmatter yields an empty map.
func SplitFrontmatter(content string) (map[string]any, string, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, frontmatterSeparator) {
		return map[string]any{}, content, nil
	}
	rest := strings.TrimPrefix(content, frontmatterSeparator)
	idx := strings.Index(rest, "\n---\n")
	if idx < 0 {
		return nil, "", fmt.Errorf("invalid frontmatter: missing closing separator")
	}
	raw := rest[:idx]
	body := rest[idx+len("\n---\n"):]

	decoded := map[string]any{}
	if err := yaml.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, "", fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return decoded, body, nil
}

// ReadOverrides returns the settings under the "time-tracker" frontmatter
// key. Documents without frontmatter or without the key have none.
func ReadOverrides(content string) (config.Overrides, error) {
	meta, _, err := SplitFrontmatter(content)
	if err != nil {
		return config.Overrides{}, err
	}
	section, ok := meta[OverridesKey]
	if !ok || section == nil {
		return config.Overrides{}, nil
	}

	// Round-trip through YAML so the typed struct does the field checking.
	raw, err := yaml.Marshal(section)
	if err != nil {
		return config.Overrides{}, fmt.Errorf("marshal %s: %w", OverridesKey, err)
	}
	var o config.Overrides
	if err := yaml.Unmarshal(raw, &o); err != nil {
		return config.Overrides{}, fmt.Errorf("invalid %s settings: %w", OverridesKey, err)
	}
	return o, nil
}
