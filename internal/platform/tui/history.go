package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-ipod/internal/registry"
	"github.com/vovakirdan/tui-ipod/internal/storage"
)

// History table layout
const (
	wideHistoryWidth = 44 // Minimum width for the five-column layout
	cellPadding      = 2  // Horizontal padding the table adds per column
)

// newHistoryTable creates the session history table.
func newHistoryTable() table.Model {
	t := table.New(
		table.WithFocused(true),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("245")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("231")).
		Background(lipgloss.Color("38")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// historyColumns returns the columns that fit in width.
func historyColumns(width int) []table.Column {
	if width >= wideHistoryWidth {
		fixed := 11 + 7 + 5 + 7
		return []table.Column{
			{Title: "When", Width: 11},
			{Title: "App", Width: max(4, width-fixed-5*cellPadding)},
			{Title: "Result", Width: 7},
			{Title: "Drops", Width: 5},
			{Title: "Time", Width: 7},
		}
	}

	return []table.Column{
		{Title: "App", Width: max(2, width-14-3*cellPadding)},
		{Title: "Result", Width: 7},
		{Title: "Time", Width: 7},
	}
}

// historyRow formats one session for a column layout.
func historyRow(s storage.Session, wide bool) table.Row {
	app := registry.Title(s.AppID)
	dur := formatDuration(s.Duration)
	if !wide {
		return table.Row{app, string(s.Outcome), dur}
	}

	when := "-"
	if !s.CreatedAt.IsZero() {
		when = s.CreatedAt.Local().Format("01-02 15:04")
	}
	return table.Row{when, app, string(s.Outcome), strconv.Itoa(s.Drops), dur}
}

// formatDuration renders a session length compactly, e.g. "1m30s".
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}
	return d.Round(time.Second).String()
}

// sizeHistory fits the history table into the display below the title bar.
func (m *ShellModel) sizeHistory(width, height int) {
	wide := width >= wideHistoryWidth
	rows := m.history.Rows()
	if len(m.history.Columns()) > 0 && (len(m.history.Columns()) == 5) != wide {
		// Column count changes; rows must be rebuilt to match
		m.history.SetRows(nil)
		rows = nil
	}
	m.history.SetColumns(historyColumns(width))
	m.history.SetRows(rows)
	m.history.SetWidth(width)
	m.history.SetHeight(max(1, height))

	if rows == nil && m.view == viewHistory {
		m.loadHistory()
	}
}

// loadHistory fills the table from the journal.
func (m *ShellModel) loadHistory() {
	if m.journal == nil {
		m.history.SetRows(nil)
		return
	}

	sessions, err := m.journal.RecentSessions(historyLimit)
	if err != nil {
		m.logger.Warn("cannot load history", "err", err)
		sessions = nil
	}

	wide := len(m.history.Columns()) == 5
	rows := make([]table.Row, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, historyRow(s, wide))
	}
	m.history.SetRows(rows)
	m.history.GotoTop()
}

// openHistory shows the session history.
func (m *ShellModel) openHistory() {
	m.endDrag()
	m.view = viewHistory
	m.page = page{title: "History"}
	m.loadHistory()
}
