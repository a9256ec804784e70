// Package tui provides the Terminal User Interface for the stt application:
// a live view of one tracker block that follows its document on disk.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/stt/internal/app"
	"github.com/xolan/stt/internal/host"
	"github.com/xolan/stt/internal/service"
	"github.com/xolan/stt/internal/tui/ui"
	"github.com/xolan/stt/internal/tui/views"
	"github.com/xolan/stt/internal/watch"
)

// Model is the root TUI model
type Model struct {
	// Services
	services *service.Services
	locator  *host.MovableLocator
	block    int
	events   <-chan watch.Event

	// UI state
	width    int
	height   int
	showHelp bool

	// View models
	trackerView views.TrackerModel
	help        help.Model

	// Theme and styles
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap

	logger *slog.Logger
}

// documentEventMsg carries a change of the document reported by the watcher
type documentEventMsg watch.Event

// themeSavedMsg is sent after the theme has been written to the config file
type themeSavedMsg struct {
	err error
}

// New creates a new TUI model for block of the document loc points at.
// events may be nil when the document is not watched.
func New(ctx context.Context, services *service.Services, loc *host.MovableLocator, block int, events <-chan watch.Event, copy func(string) error) Model {
	logger := slog.Default().With("component", "tui")
	theme := services.Config.Get().Theme
	themeProvider, known := ui.NewThemeProvider(theme)
	if !known {
		logger.Warn("unknown theme, using default", slog.String("theme", theme), slog.String("default", ui.DefaultTheme))
	}
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	target := service.Target{Locator: loc, Block: block}
	return Model{
		services:      services,
		locator:       loc,
		block:         block,
		events:        events,
		trackerView:   views.NewTrackerModel(ctx, services, target, styles, keys, copy),
		help:          newHelp(styles),
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		logger:        logger,
	}
}

func newHelp(styles ui.Styles) help.Model {
	h := help.New()
	h.Styles.ShortKey = styles.StatusKey
	h.Styles.ShortDesc = styles.StatusHelp
	h.Styles.ShortSeparator = styles.StatusHelp
	h.Styles.FullKey = styles.HelpKey
	h.Styles.FullDesc = styles.HelpDesc
	h.Styles.FullSeparator = styles.HelpDesc
	return h
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.trackerView.Init(),
		m.waitForEvent(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// A name prompt or dialog takes every key except ctrl+c.
		capturing := m.trackerView.IsInputMode()

		switch {
		case msg.String() == "ctrl+c":
			return m, tea.Quit

		case key.Matches(msg, m.keys.Quit) && !capturing:
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help) && !capturing:
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.Back) && m.showHelp:
			m.showHelp = false
			return m, nil

		case key.Matches(msg, m.keys.Theme) && !capturing:
			name := m.themeProvider.NextTheme()
			changed := m.themeProvider.Changed()
			return m, tea.Batch(
				func() tea.Msg { return changed },
				m.saveThemeConfig(name),
			)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// App padding, header and status bar
		m.trackerView.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case documentEventMsg:
		return m.handleDocumentEvent(watch.Event(msg))

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		m.help = newHelp(msg.Styles)
		m.help.Width = m.width

	case themeSavedMsg:
		if msg.err != nil {
			m.logger.Warn("failed to save theme", slog.String("error", msg.err.Error()))
			m.trackerView.SetError(fmt.Errorf("failed to save theme: %w", msg.err))
		} else {
			m.trackerView.SetNotice("Theme: " + m.themeProvider.CurrentName())
		}
		return m, nil
	}

	m.trackerView, cmd = m.trackerView.Update(msg)
	return m, cmd
}

// handleDocumentEvent reloads the tracker after an external change and
// keeps listening for the next one.
func (m Model) handleDocumentEvent(e watch.Event) (tea.Model, tea.Cmd) {
	m.logger.Debug("document event", slog.String("kind", e.Kind.String()), slog.String("path", e.Path))

	switch e.Kind {
	case watch.Changed:
		return m, tea.Batch(m.trackerView.Reload("Document changed on disk"), m.waitForEvent())
	case watch.Moved:
		return m, tea.Batch(m.trackerView.Reload("Document moved to "+e.Path), m.waitForEvent())
	case watch.Removed:
		m.trackerView.SetError(fmt.Errorf("document %s was removed", e.Path))
	}
	return m, m.waitForEvent()
}

// waitForEvent creates a command that blocks until the watcher reports a
// change. It yields nothing once the watcher is stopped.
func (m Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return nil
		}
		return documentEventMsg(e)
	}
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.showHelp {
		b.WriteString(m.renderHelpOverlay())
	} else {
		b.WriteString(m.trackerView.View())
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderStatusBar())

	return m.styles.App.Render(b.String())
}

// renderHeader renders the application name and the tracked document
func (m Model) renderHeader() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Title.Render(app.Name),
		" ",
		m.styles.Document.Render(fmt.Sprintf("%s #%d", m.locator.Current(), m.block)),
	)
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	var content string
	if m.trackerView.IsInputMode() {
		content = strings.Join([]string{
			m.renderKeyHelp("enter", "confirm"),
			m.renderKeyHelp("esc", "cancel"),
		}, "  ")
	} else {
		content = m.help.ShortHelpView(m.keys.ShortHelp())
	}

	// Fill to width
	padding := m.width - 4 - lipgloss.Width(content)
	if padding > 0 {
		content += strings.Repeat(" ", padding)
	}

	return m.styles.StatusBar.Render(content)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// saveThemeConfig saves the theme to the config file
func (m Model) saveThemeConfig(themeName string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.services.Config.Set("theme", themeName)
		return themeSavedMsg{err: err}
	}
}

// renderHelpOverlay renders the key bindings in place of the tracker
func (m Model) renderHelpOverlay() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(m.styles.StatLabel.UnsetWidth().Render("Theme: " + m.themeProvider.DisplayName()))
	b.WriteString("\n")
	b.WriteString(m.styles.StatLabel.UnsetWidth().Render("Press ? or Esc to close"))

	return m.styles.Dialog.UnsetWidth().Render(b.String())
}

// Run starts the TUI for block of the document loc points at. The document
// is watched for external edits and renames while the TUI runs.
func Run(ctx context.Context, services *service.Services, loc *host.MovableLocator, block int, copy func(string) error) error {
	w, err := watch.New(loc)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	model := New(ctx, services, loc, block, w.Events, copy)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
