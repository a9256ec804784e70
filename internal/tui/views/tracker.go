package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/stt/internal/document"
	"github.com/xolan/stt/internal/export"
	"github.com/xolan/stt/internal/host"
	"github.com/xolan/stt/internal/service"
	"github.com/xolan/stt/internal/timeutil"
	"github.com/xolan/stt/internal/tracker"
	"github.com/xolan/stt/internal/tui/ui"
)

// TickInterval is how often the running durations are recomputed.
const TickInterval = time.Second

type trackerMode int

const (
	modeNormal trackerMode = iota
	modeStart
	modeRename
	modeConfirmDelete
)

// TrackerModel is the live view of one tracker block.
type TrackerModel struct {
	ctx      context.Context
	services *service.Services
	target   service.Target
	styles   ui.Styles
	keys     ui.KeyMap
	copy     func(string) error

	// UI state
	width  int
	height int
	snap   *service.Snapshot
	status *service.Status
	rows   []export.Row
	total  export.Row
	now    time.Time
	cursor int
	offset int
	err    error
	notice string

	mode  trackerMode
	input textinput.Model
}

// NewTrackerModel creates the view for target. copy receives exported text
// for the clipboard.
func NewTrackerModel(ctx context.Context, services *service.Services, target service.Target, styles ui.Styles, keys ui.KeyMap, copy func(string) error) TrackerModel {
	ti := textinput.New()
	ti.Placeholder = "Name (empty for the default)"
	ti.CharLimit = 200
	ti.Width = 50

	return TrackerModel{
		ctx:      ctx,
		services: services,
		target:   target,
		styles:   styles,
		keys:     keys,
		copy:     copy,
		input:    ti,
	}
}

// snapshotMsg is sent when the tracker has been (re)loaded
type snapshotMsg struct {
	snap   *service.Snapshot
	err    error
	notice string
}

// tickMsg is sent every TickInterval to refresh durations
type tickMsg time.Time

// copiedMsg is sent after exported text went to the clipboard
type copiedMsg struct {
	what  string
	lines int
	err   error
}

// Init implements tea.Model
func (m TrackerModel) Init() tea.Cmd {
	return tea.Batch(
		m.Reload(""),
		m.tick(),
	)
}

// Update implements tea.Model
func (m TrackerModel) Update(msg tea.Msg) (TrackerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeStart, modeRename:
			return m.handleInputMode(msg)
		case modeConfirmDelete:
			return m.handleDeleteMode(msg)
		}
		return m.handleKey(msg)

	case snapshotMsg:
		m.err = msg.err
		if msg.err == nil {
			m.snap = msg.snap
			m.notice = msg.notice
			m.refresh(msg.snap.Now)
		}
		return m, nil

	case tickMsg:
		if m.snap != nil {
			m.refresh(m.services.Tracker.Now())
		}
		return m, m.tick()

	case copiedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("failed to copy %s: %w", msg.what, msg.err)
			return m, nil
		}
		m.err = nil
		m.notice = fmt.Sprintf("Copied %s (%d %s)", msg.what, msg.lines, pluralize("line", msg.lines))
		return m, nil

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.mode == modeStart || m.mode == modeRename {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m TrackerModel) handleKey(msg tea.KeyMsg) (TrackerModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.moveCursor(-len(m.rows))
	case key.Matches(msg, m.keys.Bottom):
		m.moveCursor(len(m.rows))
	case key.Matches(msg, m.keys.Refresh):
		return m, m.Reload("Reloaded")

	case key.Matches(msg, m.keys.Start):
		if m.status != nil && m.status.Running != nil {
			m.notice = "Stop the running entry first"
			return m, nil
		}
		return m.openInput(modeStart, "")
	case key.Matches(msg, m.keys.Stop):
		if m.status == nil || m.status.Running == nil {
			m.notice = "No entry is running"
			return m, nil
		}
		return m, m.stop()
	case key.Matches(msg, m.keys.Continue):
		if p, ok := m.selectedPath(); ok {
			return m, m.continueEntry(p)
		}
	case key.Matches(msg, m.keys.Rename):
		if row, ok := m.selected(); ok {
			return m.openInput(modeRename, row.Entry.Name)
		}
	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.selected(); ok {
			m.mode = modeConfirmDelete
		}
	case key.Matches(msg, m.keys.Toggle):
		if row, ok := m.selected(); ok && row.Container {
			p, _ := m.selectedPath()
			return m, m.setCollapsed(p, !row.Entry.Collapsed)
		}

	case key.Matches(msg, m.keys.CopyTable):
		return m, m.copyExport("table", m.services.Tracker.Table)
	case key.Matches(msg, m.keys.CopyCSV):
		return m, m.copyExport("CSV", m.services.Tracker.CSV)
	}
	return m, nil
}

func (m TrackerModel) openInput(mode trackerMode, value string) (TrackerModel, tea.Cmd) {
	m.mode = mode
	m.input.SetValue(value)
	m.input.CursorEnd()
	cmd := m.input.Focus()
	return m, cmd
}

// handleInputMode handles key events while a name is being entered
func (m TrackerModel) handleInputMode(msg tea.KeyMsg) (TrackerModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		name := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.mode = modeNormal
		m.input.Blur()
		if mode == modeStart {
			return m, m.start(name)
		}
		if name == "" {
			m.notice = "Names cannot be empty"
			return m, nil
		}
		if p, ok := m.selectedPath(); ok {
			return m, m.rename(p, name)
		}
		return m, nil
	case tea.KeyEsc:
		m.mode = modeNormal
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleDeleteMode handles key events in the delete confirmation dialog
func (m TrackerModel) handleDeleteMode(msg tea.KeyMsg) (TrackerModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = modeNormal
		if p, ok := m.selectedPath(); ok {
			return m, m.remove(p)
		}
	case "n", "N", "esc":
		m.mode = modeNormal
		m.notice = "Removal cancelled"
	}
	return m, nil
}

// refresh recomputes rows and totals from the loaded tracker at now.
func (m *TrackerModel) refresh(now time.Time) {
	m.now = now
	status, err := service.Summarize(m.snap.Tracker, m.snap.Block, m.snap.Config, now)
	if err != nil {
		m.err = err
		return
	}
	m.status = status
	m.rows, m.total = visibleRows(export.Rows(m.snap.Tracker, service.Options(m.snap.Config), now))
	m.moveCursor(0)
}

// visibleRows drops the descendants of collapsed containers and splits off
// the total row.
func visibleRows(rows []export.Row) ([]export.Row, export.Row) {
	var visible []export.Row
	var total export.Row
	hideBelow := -1
	for _, r := range rows {
		if r.Total {
			total = r
			continue
		}
		if hideBelow >= 0 && r.Depth > hideBelow {
			continue
		}
		hideBelow = -1
		if r.Container && r.Entry.Collapsed {
			hideBelow = r.Depth
		}
		visible = append(visible, r)
	}
	return visible, total
}

func (m *TrackerModel) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	visible := m.visibleLines()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

// visibleLines is the number of rows that fit below the summary.
func (m TrackerModel) visibleLines() int {
	if m.height <= 0 {
		return len(m.rows) + 1
	}
	// summary (4), header, total and notice lines
	return max(m.height-8, 1)
}

func (m TrackerModel) selected() (export.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return export.Row{}, false
	}
	return m.rows[m.cursor], true
}

// selectedPath resolves the selected row to its path in stored order.
func (m TrackerModel) selectedPath() (tracker.Path, bool) {
	row, ok := m.selected()
	if !ok || m.snap == nil {
		return nil, false
	}
	return m.snap.Tracker.PathOf(row.Entry.ID())
}

// SetSize sets the view dimensions
func (m *TrackerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.moveCursor(0)
}

// IsInputMode returns true when the view is capturing keyboard input
func (m TrackerModel) IsInputMode() bool {
	return m.mode != modeNormal
}

// SetNotice replaces the notice line.
func (m *TrackerModel) SetNotice(notice string) {
	m.notice = notice
}

// SetError shows err in place of the notice line.
func (m *TrackerModel) SetError(err error) {
	m.err = err
}

// Reload creates a command that reads the tracker from its document again.
func (m TrackerModel) Reload(notice string) tea.Cmd {
	return m.afterMutation(notice, nil)
}

// afterMutation runs fn and reloads the tracker. An error from fn is
// reported instead of the notice.
func (m TrackerModel) afterMutation(notice string, fn func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		if fn != nil {
			msg, err := fn()
			if err != nil {
				return snapshotMsg{err: err}
			}
			notice = msg
		}
		snap, err := m.services.Tracker.Load(m.ctx, m.target)
		return snapshotMsg{snap: snap, err: err, notice: notice}
	}
}

// tick returns a command that sends a tick every TickInterval
func (m TrackerModel) tick() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m TrackerModel) start(name string) tea.Cmd {
	return m.afterMutation("", func() (string, error) {
		e, err := m.services.Tracker.Start(m.ctx, m.target, name)
		if err != nil {
			return "", err
		}
		return "Started: " + e.Name, nil
	})
}

func (m TrackerModel) stop() tea.Cmd {
	return m.afterMutation("", func() (string, error) {
		e, err := m.services.Tracker.Stop(m.ctx, m.target)
		if err != nil {
			return "", err
		}
		d := tracker.Duration(e, m.services.Tracker.Now())
		return fmt.Sprintf("Stopped: %s (%s)", e.Name, m.formatDuration(d)), nil
	})
}

func (m TrackerModel) continueEntry(p tracker.Path) tea.Cmd {
	return m.afterMutation("", func() (string, error) {
		e, err := m.services.Tracker.Continue(m.ctx, m.target, p, "")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Continued %s: %s", p, e.Name), nil
	})
}

func (m TrackerModel) rename(p tracker.Path, name string) tea.Cmd {
	return m.afterMutation("", func() (string, error) {
		if _, err := m.services.Tracker.Edit(m.ctx, m.target, p, service.EditInput{Name: &name}); err != nil {
			return "", err
		}
		return fmt.Sprintf("Renamed %s to %q", p, name), nil
	})
}

// remove deletes the entry at p. The dialog already asked, so the service
// is given a confirmer that always agrees.
func (m TrackerModel) remove(p tracker.Path) tea.Cmd {
	return m.afterMutation("", func() (string, error) {
		e, err := m.services.Tracker.Remove(m.ctx, m.target, p, host.AlwaysConfirm)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Removed: %s %q", p, e.Name), nil
	})
}

func (m TrackerModel) setCollapsed(p tracker.Path, collapsed bool) tea.Cmd {
	return m.afterMutation("", func() (string, error) {
		if err := m.services.Tracker.SetCollapsed(m.ctx, m.target, p, collapsed); err != nil {
			return "", err
		}
		if collapsed {
			return "Collapsed " + p.String(), nil
		}
		return "Expanded " + p.String(), nil
	})
}

func (m TrackerModel) copyExport(what string, render func(context.Context, service.Target) (string, error)) tea.Cmd {
	return func() tea.Msg {
		text, err := render(m.ctx, m.target)
		if err != nil {
			return copiedMsg{what: what, err: err}
		}
		if err := m.copy(text); err != nil {
			return copiedMsg{what: what, err: err}
		}
		return copiedMsg{what: what, lines: strings.Count(text, "\n")}
	}
}

func (m TrackerModel) formatDuration(d time.Duration) string {
	if m.snap == nil {
		return timeutil.FormatDuration(d, timeutil.DurationStyle{})
	}
	return timeutil.FormatDuration(d, m.snap.Config.DurationStyle())
}

// View implements tea.Model
func (m TrackerModel) View() string {
	var b strings.Builder

	if m.snap == nil {
		if m.err != nil {
			b.WriteString(m.styles.Error.Render(describeError(m.err)))
			return b.String()
		}
		b.WriteString("Loading...")
		return b.String()
	}

	switch m.mode {
	case modeConfirmDelete:
		return m.renderDeleteConfirm()
	case modeStart, modeRename:
		return m.renderInput()
	}

	b.WriteString(m.renderSummary())
	b.WriteString("\n\n")
	b.WriteString(m.renderRows())
	b.WriteString("\n")
	b.WriteString(m.renderNotice())
	return b.String()
}

// renderSummary renders the running entry and the current, today and
// total durations.
func (m TrackerModel) renderSummary() string {
	var b strings.Builder
	st := m.status
	if st == nil {
		return ""
	}

	if st.Running != nil {
		b.WriteString(m.styles.TimerRunning.Render("● " + st.Running.Name))
		b.WriteString(" ")
		b.WriteString(m.styles.StatLabel.Render(st.RunningPath.String()))
	} else {
		b.WriteString(m.styles.TimerStopped.Render("○ idle"))
	}
	b.WriteString("\n")

	b.WriteString(m.styles.StatLabel.Render("Current"))
	if st.Running != nil {
		b.WriteString(m.styles.TimerElapsed.Render(m.formatDuration(st.Current)))
	} else {
		b.WriteString(m.styles.TimerStopped.Render("-"))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.StatLabel.Render("Today"))
	b.WriteString(m.styles.StatValue.Render(m.formatDuration(st.Today)))
	b.WriteString("\n")
	b.WriteString(m.styles.StatLabel.Render("Total"))
	b.WriteString(m.styles.StatValue.Render(m.formatDuration(st.Total)))
	return b.String()
}

// renderRows renders the visible rows with aligned columns.
func (m TrackerModel) renderRows() string {
	if len(m.rows) == 0 {
		return m.styles.TimerStopped.Render(fmt.Sprintf("No entries yet. Press '%s' to start one.", m.keys.Start.Help().Key))
	}

	all := append([]export.Row{{Name: export.Header[0], Start: export.Header[1], End: export.Header[2], Duration: export.Header[3]}}, m.rows...)
	cols := measure(append(all, m.total), m.width)

	var b strings.Builder
	b.WriteString(m.styles.StatLabel.UnsetWidth().Render("  " + m.formatCells(all[0], cols)))
	b.WriteString("\n")

	end := min(m.offset+m.visibleLines(), len(m.rows))
	for i := m.offset; i < end; i++ {
		row := m.rows[i]
		marker := "  "
		if row.Container {
			marker = "▾ "
			if row.Entry.Collapsed {
				marker = "▸ "
			}
		}

		style := m.styles.RowNormal
		switch {
		case row.Entry.IsRunning():
			style = m.styles.RowRunning
		case row.Container:
			style = m.styles.RowContainer
		}
		if i == m.cursor {
			style = style.Inherit(m.styles.RowSelected)
		}

		b.WriteString(m.styles.FoldMarker.Render(marker))
		b.WriteString(style.Render(m.formatCells(row, cols)))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.RowTotal.Render("  " + m.formatCells(export.Row{Name: "Total", Duration: m.total.Duration}, cols)))
	return b.String()
}

func (m TrackerModel) formatCells(r export.Row, c columns) string {
	return strings.Join([]string{
		fit(r.Name, c.name),
		fit(r.Start, c.start),
		fit(r.End, c.end),
		fitLeft(r.Duration, c.duration),
	}, "  ")
}

func (m TrackerModel) renderNotice() string {
	if m.err != nil {
		return m.styles.Error.Render(describeError(m.err))
	}
	if m.notice != "" {
		return m.styles.Success.Render(m.notice)
	}
	return ""
}

// renderInput renders the name prompt for starting or renaming
func (m TrackerModel) renderInput() string {
	var b strings.Builder
	title := "Start Entry"
	if m.mode == modeRename {
		title = "Rename Entry"
		if p, ok := m.selectedPath(); ok {
			title += " " + p.String()
		}
	}
	b.WriteString(m.styles.ViewTitle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.styles.InputFocused.Render(m.input.View()))
	b.WriteString("\n\n")
	b.WriteString(m.styles.HelpDesc.Render("Enter to confirm, Esc to cancel"))
	return b.String()
}

// renderDeleteConfirm renders the delete confirmation dialog
func (m TrackerModel) renderDeleteConfirm() string {
	var b strings.Builder
	b.WriteString(m.styles.DialogTitle.Render("Remove Entry"))
	b.WriteString("\n")

	if row, ok := m.selected(); ok {
		p, _ := m.selectedPath()
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf("Remove entry %s %q?", p, row.Entry.Name)))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("Duration"))
		b.WriteString(m.styles.StatValue.Render(m.formatDuration(tracker.Duration(row.Entry, m.now))))
		b.WriteString("\n")
		if n := len(row.Entry.SubEntries); n > 0 {
			b.WriteString(m.styles.StatLabel.Render("Parts"))
			b.WriteString(m.styles.StatValue.Render(fmt.Sprintf("%d", n)))
			b.WriteString("\n")
		}
		if row.Entry.IsRunning() {
			b.WriteString(m.styles.Warning.Render("This entry is running."))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.HelpDesc.Render("Press Y to confirm, N or Esc to cancel"))
	return m.styles.Dialog.Render(b.String())
}

// describeError turns service errors into a one-line message.
func describeError(err error) string {
	switch {
	case errors.Is(err, document.ErrNoTracker):
		return "Error: no tracker block here. Run 'stt init' on the document to add one."
	case errors.Is(err, document.ErrSectionMoved):
		return "Error: the document changed while saving. Press 'r' to reload and try again."
	}
	return "Error: " + err.Error()
}
