package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-ipod/internal/core"
)

// Display styles
var (
	displayStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("250"))
	titleBarStyle     = lipgloss.NewStyle().Background(lipgloss.Color("250")).Foreground(lipgloss.Color("16")).Bold(true).Align(lipgloss.Center)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(1)
	selectedItemStyle = itemStyle.Background(lipgloss.Color("38")).Foreground(lipgloss.Color("231"))
	previewStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Background(lipgloss.Color("194")).Padding(0, 1)
	pageStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// minPreviewWidth is the display width from which the preview pane shows.
const minPreviewWidth = 40

// View renders the device: display on top, wheel below, help line last.
func (m ShellModel) View() string {
	if m.quitting {
		return ""
	}
	if m.layout.TooSmall {
		return fmt.Sprintf("Terminal too small (%dx%d). Need at least %dx%d.",
			m.layout.Width, m.layout.Height,
			minDeviceWidth, minDisplayRows+2+wheelRows+helpRows)
	}

	d := m.layout.Display
	display := displayStyle.
		Width(d.W).
		Height(d.H).
		Render(m.renderDisplay())

	wheel := RenderScreen(m.renderWheel())
	body := lipgloss.JoinVertical(lipgloss.Left, display, wheel)
	body = lipgloss.NewStyle().MarginLeft(m.layout.Device.X).Render(body)

	return body + "\n" + m.help.View(m.keys)
}

// renderDisplay renders the inner display for the current view.
func (m ShellModel) renderDisplay() string {
	d := m.layout.Display

	switch m.view {
	case viewGame:
		if m.screen != nil {
			return RenderScreen(m.screen)
		}
	case viewPage:
		return m.renderPage(d.W, d.H)
	case viewHistory:
		return m.renderHistory(d.W, d.H)
	}
	return m.renderMenu(d.W, d.H)
}

// titleBar renders the top line of the display.
func titleBar(title string, width int) string {
	return titleBarStyle.Width(width).MaxWidth(width).Render(title)
}

// renderMenu draws the entry list with the preview pane beside it.
func (m ShellModel) renderMenu(width, height int) string {
	entries := m.cfg.Menu.Entries
	rows := height - 1

	listW := width
	showPreview := width >= minPreviewWidth
	if showPreview {
		listW = width / 2
	}

	// Scroll so the cursor stays visible
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := min(len(entries), start+rows)

	lines := make([]string, 0, rows)
	for i := start; i < end; i++ {
		label := entries[i].Title
		style := itemStyle
		if i == m.cursor {
			style = selectedItemStyle
			label += " >"
		}
		lines = append(lines, style.Width(listW).MaxWidth(listW).Render(label))
	}
	list := lipgloss.NewStyle().Width(listW).Height(rows).Render(strings.Join(lines, "\n"))

	content := list
	if showPreview && len(entries) > 0 {
		preview := previewStyle.
			Width(width - listW).
			Height(rows).
			MaxHeight(rows).
			Render(entries[m.cursor].Preview)
		content = lipgloss.JoinHorizontal(lipgloss.Top, list, preview)
	}

	return lipgloss.JoinVertical(lipgloss.Left, titleBar(m.cfg.Menu.Title, width), content)
}

// renderPage draws a sub page with its lines centered.
func (m ShellModel) renderPage(width, height int) string {
	body := lipgloss.Place(width, height-1, lipgloss.Center, lipgloss.Center,
		pageStyle.Render(strings.Join(m.page.lines, "\n")))
	return lipgloss.JoinVertical(lipgloss.Left, titleBar(m.page.title, width), body)
}

// renderHistory draws the session table.
func (m ShellModel) renderHistory(width, height int) string {
	var body string
	switch {
	case m.journal == nil:
		body = lipgloss.Place(width, height-1, lipgloss.Center, lipgloss.Center,
			pageStyle.Render("History unavailable"))
	case len(m.history.Rows()) == 0:
		body = lipgloss.Place(width, height-1, lipgloss.Center, lipgloss.Center,
			pageStyle.Render("No sessions yet"))
	default:
		body = lipgloss.NewStyle().MaxWidth(width).MaxHeight(height - 1).Render(m.history.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, titleBar("History", width), body)
}

// renderWheel draws the click wheel into its own cell buffer.
func (m ShellModel) renderWheel() *core.Screen {
	wg := m.layout.Wheel
	s := core.NewScreen(wg.Area.W, wg.Area.H)

	for y := range wg.Area.H {
		for x := range wg.Area.W {
			switch wg.Hit(wg.Area.X+x, wg.Area.Y+y) {
			case RegionRing:
				s.SetCell(x, y, core.Cell{Rune: ' ', Bg: core.ColorSilver})
			case RegionHub:
				s.SetCell(x, y, core.Cell{Rune: ' ', Bg: core.ColorWhite})
			}
		}
	}

	cx := int(wg.CX) - wg.Area.X
	cy := int(wg.CY) - wg.Area.Y
	reach := int(wg.Outer * 0.7)

	wheelLabel(s, cx-2, 1, "MENU")
	wheelLabel(s, cx-1, wg.Area.H-2, "▶❚❚")
	wheelLabel(s, cx-reach-1, cy, "◀◀")
	wheelLabel(s, cx+reach, cy, "▶▶")

	return s
}

// wheelLabel prints text over the wheel, keeping each cell's background.
func wheelLabel(s *core.Screen, x, y int, text string) {
	s.DrawText(x, y, text, core.ColorGray)
}
