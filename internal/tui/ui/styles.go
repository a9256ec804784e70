package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	// Base styles
	App lipgloss.Style

	// Header
	Title    lipgloss.Style
	Document lipgloss.Style

	// Content area
	Content   lipgloss.Style
	ViewTitle lipgloss.Style

	// Status bar
	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style
	StatusHelp  lipgloss.Style

	// Tracker rows
	RowSelected  lipgloss.Style
	RowNormal    lipgloss.Style
	RowContainer lipgloss.Style
	RowRunning   lipgloss.Style
	RowTotal     lipgloss.Style
	RowTime      lipgloss.Style
	RowDuration  lipgloss.Style
	FoldMarker   lipgloss.Style

	// Countdown
	TimerRunning lipgloss.Style
	TimerStopped lipgloss.Style
	TimerElapsed lipgloss.Style

	// Stats
	StatLabel lipgloss.Style
	StatValue lipgloss.Style

	// Help
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Input
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Dialog
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	// Errors and warnings
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// palette maps semantic roles to terminal colors.
type palette struct {
	primary    lipgloss.TerminalColor
	secondary  lipgloss.TerminalColor
	accent     lipgloss.TerminalColor
	muted      lipgloss.TerminalColor
	success    lipgloss.TerminalColor
	warning    lipgloss.TerminalColor
	errorColor lipgloss.TerminalColor
	fg         lipgloss.TerminalColor
	bg         lipgloss.TerminalColor
	highlight  lipgloss.TerminalColor
}

// DefaultStyles returns the default TUI styles
func DefaultStyles() Styles {
	return newStyles(palette{
		primary:    lipgloss.Color("99"),  // Purple
		secondary:  lipgloss.Color("39"),  // Cyan
		accent:     lipgloss.Color("212"), // Pink
		muted:      lipgloss.Color("240"), // Gray
		success:    lipgloss.Color("82"),  // Green
		warning:    lipgloss.Color("214"), // Orange
		errorColor: lipgloss.Color("196"), // Red
		fg:         lipgloss.Color("252"),
		bg:         lipgloss.Color("236"),
		highlight:  lipgloss.Color("237"),
	})
}

// NewStylesFromRegistry creates a Styles struct using colors from a bubbletint registry.
// This maps theme colors to semantic UI elements:
// - Primary: Purple (titles, containers)
// - Secondary: Cyan (timestamps, keys)
// - Accent: BrightPurple (durations, elapsed time)
// - Muted: BrightBlack (inactive elements, labels)
// - Success/Warning/Error: Green/Yellow/Red
func NewStylesFromRegistry(r *tint.Registry) Styles {
	return newStyles(palette{
		primary:    r.Purple(),
		secondary:  r.Cyan(),
		accent:     r.BrightPurple(),
		muted:      r.BrightBlack(),
		success:    r.Green(),
		warning:    r.Yellow(),
		errorColor: r.Red(),
		fg:         r.Fg(),
		bg:         r.Bg(),
		highlight:  r.BrightBlack(),
	})
}

func newStyles(p palette) Styles {
	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		Title: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),
		Document: lipgloss.NewStyle().
			Foreground(p.muted),

		Content: lipgloss.NewStyle().
			Padding(0, 1),
		ViewTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.fg).
			Background(p.bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		StatusValue: lipgloss.NewStyle().
			Foreground(p.fg),
		StatusHelp: lipgloss.NewStyle().
			Foreground(p.muted),

		RowSelected: lipgloss.NewStyle().
			Background(p.highlight).
			Bold(true),
		RowNormal: lipgloss.NewStyle().
			Foreground(p.fg),
		RowContainer: lipgloss.NewStyle().
			Foreground(p.primary),
		RowRunning: lipgloss.NewStyle().
			Foreground(p.success).
			Bold(true),
		RowTotal: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),
		RowTime: lipgloss.NewStyle().
			Foreground(p.secondary),
		RowDuration: lipgloss.NewStyle().
			Foreground(p.accent).
			Align(lipgloss.Right),
		FoldMarker: lipgloss.NewStyle().
			Foreground(p.muted),

		TimerRunning: lipgloss.NewStyle().
			Foreground(p.success).
			Bold(true),
		TimerStopped: lipgloss.NewStyle().
			Foreground(p.muted),
		TimerElapsed: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),

		StatLabel: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(10),
		StatValue: lipgloss.NewStyle().
			Foreground(p.fg).
			Bold(true),

		HelpKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(p.muted),

		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.muted).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.primary).
			Padding(0, 1),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2).
			Width(50),
		DialogTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		Error: lipgloss.NewStyle().
			Foreground(p.errorColor),
		Warning: lipgloss.NewStyle().
			Foreground(p.warning),
		Success: lipgloss.NewStyle().
			Foreground(p.success),
	}
}
