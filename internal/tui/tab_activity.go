package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/claudash/internal/cli"
	"github.com/theirongolddev/claudash/internal/pipeline"
	"github.com/theirongolddev/claudash/internal/tui/components"
	"github.com/theirongolddev/claudash/internal/tui/theme"
)

const activityTableRows = 10

func (a App) renderActivityTab(cw, h int) string {
	t := theme.Active
	inner := components.CardInnerWidth(cw)

	days := pipeline.RecentDays(a.stats, 0)
	if len(days) == 0 {
		return components.ContentCard("Daily activity", "No active days.", cw)
	}

	chartH := h - activityTableRows - 8
	if chartH < 4 {
		chartH = 4
	}
	chart := components.DayChart(days, t.Accent, inner, chartH)
	chartCard := components.ContentCard("Messages per day", chart, cw)

	headStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf("%-12s %10s %10s %10s", "Date", "Sessions", "Messages", "Tools")))
	recent := days
	if len(recent) > activityTableRows {
		recent = recent[len(recent)-activityTableRows:]
	}
	for i := len(recent) - 1; i >= 0; i-- {
		d := recent[i]
		b.WriteString("\n")
		b.WriteString(rowStyle.Render(fmt.Sprintf("%-12s %10s %10s %10s",
			d.Date,
			cli.FormatNumber(int64(d.SessionCount)),
			cli.FormatNumber(int64(d.MessageCount)),
			cli.FormatNumber(int64(d.ToolCallCount)))))
	}
	tableCard := components.ContentCard("Most recent days", b.String(), cw)

	return chartCard + "\n" + tableCard
}
