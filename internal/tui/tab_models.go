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

func (a App) renderModelsTab(cw int) string {
	t := theme.Active
	rows := pipeline.ModelBreakdown(a.stats)
	if len(rows) == 0 {
		return components.ContentCard("Models", "No model usage recorded.", cw)
	}

	inner := components.CardInnerWidth(cw)
	nameW := 22
	barW := inner - nameW - 48
	if barW < 8 {
		barW = 8
	}

	headStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	numStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf("%-*s %9s %9s %9s %9s  %s", nameW, "Model", "Input", "Output", "Cache rd", "Cost", "Share")))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(nameStyle.Render(fmt.Sprintf("%-*s", nameW, cli.Truncate(shortModel(r.Model), nameW))))
		b.WriteString(numStyle.Render(fmt.Sprintf(" %9s %9s %9s %9s  ",
			cli.FormatTokens(r.InputTokens),
			cli.FormatTokens(r.OutputTokens),
			cli.FormatTokens(r.CacheReadInputTokens),
			cli.FormatCost(r.CostUSD))))
		b.WriteString(components.ShareBar(r.Share, barW))
		b.WriteString(space)
		b.WriteString(numStyle.Render(cli.FormatPercent(r.Share)))
	}

	totals := pipeline.SumTokens(a.stats)
	foot := numStyle.Render(fmt.Sprintf("Total %s tokens, %s cache writes, %s web searches, %s",
		cli.FormatTokens(totals.Tokens),
		cli.FormatTokens(totals.CacheCreationTokens),
		cli.FormatNumber(totals.WebSearchRequests),
		cli.FormatCost(totals.CostUSD)))

	return components.ContentCard("Models", b.String()+"\n\n"+foot, cw)
}
