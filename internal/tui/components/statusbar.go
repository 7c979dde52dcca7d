package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/claudash/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar: key hints left, status right.
func RenderStatusBar(width int, hints, status string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	left := " " + hints
	right := status + " "

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	return style.Width(width).MaxWidth(width).Render(left + strings.Repeat(" ", padding) + right)
}
