package ui

import (
	"slices"
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestDefaultKeyMap(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
	}{
		{"Up", keys.Up},
		{"Down", keys.Down},
		{"Top", keys.Top},
		{"Bottom", keys.Bottom},
		{"Toggle", keys.Toggle},
		{"Back", keys.Back},
		{"Quit", keys.Quit},
		{"Help", keys.Help},
		{"Refresh", keys.Refresh},
		{"Theme", keys.Theme},
		{"Start", keys.Start},
		{"Stop", keys.Stop},
		{"Continue", keys.Continue},
		{"Rename", keys.Rename},
		{"Delete", keys.Delete},
		{"CopyTable", keys.CopyTable},
		{"CopyCSV", keys.CopyCSV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.binding.Keys()) == 0 {
				t.Errorf("expected keys for binding %s", tt.name)
			}
			help := tt.binding.Help()
			if help.Key == "" {
				t.Errorf("expected help key for binding %s", tt.name)
			}
			if help.Desc == "" {
				t.Errorf("expected help description for binding %s", tt.name)
			}
		})
	}
}

func TestKeyBindingsMatch(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		key     string
	}{
		{"Quit q", keys.Quit, "q"},
		{"Quit ctrl+c", keys.Quit, "ctrl+c"},
		{"Up k", keys.Up, "k"},
		{"Up arrow", keys.Up, "up"},
		{"Down j", keys.Down, "j"},
		{"Down arrow", keys.Down, "down"},
		{"Toggle space", keys.Toggle, " "},
		{"Toggle enter", keys.Toggle, "enter"},
		{"Back esc", keys.Back, "esc"},
		{"Help ?", keys.Help, "?"},
		{"Start s", keys.Start, "s"},
		{"Stop x", keys.Stop, "x"},
		{"Continue c", keys.Continue, "c"},
		{"Delete d", keys.Delete, "d"},
		{"CopyTable y", keys.CopyTable, "y"},
		{"CopyCSV Y", keys.CopyCSV, "Y"},
		{"Theme t", keys.Theme, "t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !slices.Contains(tt.binding.Keys(), tt.key) {
				t.Errorf("expected binding %s to include key %s, got keys %v", tt.name, tt.key, tt.binding.Keys())
			}
		})
	}
}

func TestKeyBindingsDoNotOverlap(t *testing.T) {
	keys := DefaultKeyMap()

	seen := make(map[string]string)
	for _, group := range keys.FullHelp() {
		for _, b := range group {
			for _, k := range b.Keys() {
				if other, ok := seen[k]; ok {
					t.Errorf("key %q bound to both %q and %q", k, other, b.Help().Desc)
				}
				seen[k] = b.Help().Desc
			}
		}
	}
}

func TestShortHelpIsSubsetOfFullHelp(t *testing.T) {
	keys := DefaultKeyMap()

	var full []string
	for _, group := range keys.FullHelp() {
		for _, b := range group {
			full = append(full, b.Help().Desc)
		}
	}
	for _, b := range keys.ShortHelp() {
		if !slices.Contains(full, b.Help().Desc) {
			t.Errorf("short help binding %q missing from full help", b.Help().Desc)
		}
	}
}
