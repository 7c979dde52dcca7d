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

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	s := a.stats
	totals := pipeline.SumTokens(s)

	perSession := ""
	if s.TotalSessions > 0 {
		perSession = fmt.Sprintf("%.1f / session", float64(s.TotalMessages)/float64(s.TotalSessions))
	}

	row1 := components.MetricCardRow([]components.Metric{
		{Label: "Sessions", Value: cli.FormatNumber(int64(s.TotalSessions))},
		{Label: "Messages", Value: cli.FormatNumber(int64(s.TotalMessages)), Hint: perSession},
		{Label: "Tokens", Value: cli.FormatTokens(totals.Tokens), Hint: "in + out + cache read"},
		{Label: "Est. cost", Value: cli.FormatCost(totals.CostUSD)},
	}, cw)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	line := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-18s", label)) + valueStyle.Render(value)
	}

	var facts []string
	if s.FirstSessionDate != "" {
		facts = append(facts, line("First session", cli.FormatTimestamp(s.FirstSessionDate, a.opts.Load.Location)))
	}
	facts = append(facts,
		line("Active days", cli.FormatNumber(int64(len(s.DailyActivity)))),
		line("Tool calls", cli.FormatNumber(int64(s.TotalToolCalls()))),
		line("Models used", cli.FormatNumber(int64(len(s.ModelUsage)))),
	)
	if ls := s.LongestSession; ls != nil {
		facts = append(facts,
			line("Longest session", cli.FormatDurationMs(ls.DurationMs)),
			line("", fmt.Sprintf("%s, %d messages", ls.SessionID, ls.MessageCount)),
		)
	}

	widths := components.LayoutRow(cw, 2)
	factsCard := components.ContentCard("Highlights", strings.Join(facts, "\n"), widths[0])

	days := pipeline.RecentDays(s, 30)
	counts := make([]int, len(days))
	for i, d := range days {
		counts[i] = d.MessageCount
	}
	spark := components.Sparkline(counts, t.Accent)
	if spark == "" {
		spark = labelStyle.Render("no activity yet")
	}
	trendCard := components.ContentCard("Messages, last 30 active days", spark, widths[1])

	return row1 + "\n" + components.CardRow([]string{factsCard, trendCard})
}
