package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/claudash/internal/pipeline"
	"github.com/theirongolddev/claudash/internal/tui/components"
	"github.com/theirongolddev/claudash/internal/tui/theme"
)

func (a App) renderHoursTab(cw, h int) string {
	t := theme.Active
	hours := pipeline.Hours(a.stats)

	peak, total := 0, 0
	for i, hc := range hours {
		total += hc.Count
		if hc.Count > hours[peak].Count {
			peak = i
		}
	}

	chartH := h - 6
	if chartH < 4 {
		chartH = 4
	}
	chart := components.HourChart(hours, t.Blue, components.CardInnerWidth(cw), chartH)

	summary := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
		Render(fmt.Sprintf("%d messages with a timestamp, busiest hour %02d:00", total, peak))
	if total == 0 {
		summary = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render("No timestamped messages.")
	}

	return components.ContentCard("Messages by hour of day", chart+"\n\n"+summary, cw)
}
