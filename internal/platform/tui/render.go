package tui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-ipod/internal/core"
)

// cellColors is a foreground/background pair used as a style key.
type cellColors struct {
	fg, bg core.Color
}

var (
	stylesMu sync.Mutex
	styles   = map[cellColors]lipgloss.Style{}
)

// styleFor returns the cached lipgloss style for a color pair.
// ColorDefault leaves the terminal's own color in place.
func styleFor(fg, bg core.Color) lipgloss.Style {
	key := cellColors{fg, bg}

	stylesMu.Lock()
	defer stylesMu.Unlock()

	if s, ok := styles[key]; ok {
		return s
	}
	s := lipgloss.NewStyle()
	if fg != core.ColorDefault {
		s = s.Foreground(lipgloss.Color(strconv.Itoa(int(fg))))
	}
	if bg != core.ColorDefault {
		s = s.Background(lipgloss.Color(strconv.Itoa(int(bg))))
	}
	styles[key] = s
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same colors for efficiency
		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			// Collect consecutive cells with same colors
			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Fg != start.Fg || cell.Bg != start.Bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.Fg == core.ColorDefault && start.Bg == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(start.Fg, start.Bg).Render(run.String()))
		}
	}
	return sb.String()
}
