package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/claudash/internal/tui/theme"
)

// NewProgress returns a solid progress bar in the active theme's accent.
func NewProgress(width int) progress.Model {
	t := theme.Active
	p := progress.New(
		progress.WithSolidFill(string(t.Accent)),
		progress.WithoutPercentage(),
		progress.WithWidth(width),
	)
	p.EmptyColor = string(t.TextDim)
	return p
}

// ProgressLine renders "bar current/total" for a load in progress.
func ProgressLine(p progress.Model, current, total int) string {
	t := theme.Active
	pct := 0.0
	if total > 0 {
		pct = float64(current) / float64(total)
	}
	if pct > 1 {
		pct = 1
	}
	countStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	return p.ViewAs(pct) + countStyle.Render(fmt.Sprintf(" %d/%d", current, total))
}

// ShareBar renders a fixed-width bar filled to share (0-1).
func ShareBar(share float64, width int) string {
	t := theme.Active
	if share < 0 {
		share = 0
	}
	if share > 1 {
		share = 1
	}
	filled := int(share * float64(width))

	filledStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	return filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", width-filled))
}
