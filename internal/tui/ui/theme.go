package ui

import (
	"slices"

	tint "github.com/lrstanley/bubbletint"
)

// DefaultTheme is the bubbletint id used when the configured theme is
// empty or unknown.
const DefaultTheme = "dracula"

// ThemeChangedMsg is broadcast to all views when the theme changes.
type ThemeChangedMsg struct {
	ThemeName string
	Styles    Styles
}

// ThemeProvider holds the bubbletint registry the TUI styles are built from.
type ThemeProvider struct {
	registry *tint.Registry
}

// NewThemeProvider selects theme from the bundled tints. It reports false
// when theme is set but unknown; DefaultTheme is selected then.
func NewThemeProvider(theme string) (*ThemeProvider, bool) {
	tints := tint.DefaultTints()
	i := slices.IndexFunc(tints, func(t tint.Tint) bool { return t.ID() == DefaultTheme })
	if i < 0 {
		i = 0
	}

	tp := &ThemeProvider{registry: tint.NewRegistry(tints[i], tints...)}
	if theme == "" || theme == DefaultTheme {
		return tp, true
	}
	return tp, tp.SetTheme(theme)
}

// SetTheme switches to the tint with the given id; unknown ids leave the
// current theme selected and return false.
func (tp *ThemeProvider) SetTheme(name string) bool {
	return tp.registry.SetTintID(name)
}

// NextTheme cycles to the next theme and returns its id.
func (tp *ThemeProvider) NextTheme() string {
	tp.registry.NextTint()
	return tp.registry.ID()
}

// CurrentName returns the id of the current theme, as stored in the config.
func (tp *ThemeProvider) CurrentName() string {
	return tp.registry.ID()
}

// DisplayName returns the human-readable name of the current theme.
func (tp *ThemeProvider) DisplayName() string {
	return tp.registry.DisplayName()
}

// Styles builds the TUI styles from the current theme's palette.
func (tp *ThemeProvider) Styles() Styles {
	return NewStylesFromRegistry(tp.registry)
}

// Changed returns the message announcing the current theme to the views.
func (tp *ThemeProvider) Changed() ThemeChangedMsg {
	return ThemeChangedMsg{ThemeName: tp.CurrentName(), Styles: tp.Styles()}
}
