package ui

import (
	"testing"
)

func TestNewThemeProvider(t *testing.T) {
	tests := []struct {
		name      string
		theme     string
		wantKnown bool
		expected  string
	}{
		{"empty uses default", "", true, DefaultTheme},
		{"known theme", "nord", true, "nord"},
		{"unknown falls back", "nonexistent-theme-xyz", false, DefaultTheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp, known := NewThemeProvider(tt.theme)
			if known != tt.wantKnown {
				t.Errorf("NewThemeProvider(%q) known = %v, expected %v", tt.theme, known, tt.wantKnown)
			}
			if tp.CurrentName() != tt.expected {
				t.Errorf("CurrentName() = %q, expected %q", tp.CurrentName(), tt.expected)
			}
			if tp.DisplayName() == "" {
				t.Error("expected a display name")
			}
		})
	}
}

func TestThemeProvider_SetTheme(t *testing.T) {
	tests := []struct {
		name     string
		theme    string
		wantOK   bool
		expected string
	}{
		{"known theme", "nord", true, "nord"},
		{"unknown theme keeps current", "nonexistent-theme-xyz", false, DefaultTheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp, _ := NewThemeProvider("")
			if ok := tp.SetTheme(tt.theme); ok != tt.wantOK {
				t.Errorf("SetTheme(%q) = %v, expected %v", tt.theme, ok, tt.wantOK)
			}
			if tp.CurrentName() != tt.expected {
				t.Errorf("CurrentName() = %q, expected %q", tp.CurrentName(), tt.expected)
			}
		})
	}
}

func TestThemeProvider_NextTheme(t *testing.T) {
	tp, _ := NewThemeProvider("dracula")

	next := tp.NextTheme()
	if next == "dracula" {
		t.Error("NextTheme() did not move off the initial theme")
	}
	if tp.CurrentName() != next {
		t.Errorf("CurrentName() = %q, expected %q", tp.CurrentName(), next)
	}
}

func TestThemeProvider_Changed(t *testing.T) {
	tp, _ := NewThemeProvider("nord")

	msg := tp.Changed()
	if msg.ThemeName != "nord" {
		t.Errorf("ThemeName = %q, expected nord", msg.ThemeName)
	}
	if msg.Styles.App.GetPaddingTop() == 0 {
		t.Error("expected the broadcast styles to be populated")
	}
}
