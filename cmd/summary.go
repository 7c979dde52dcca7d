package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/claudash/internal/cli"
	"github.com/theirongolddev/claudash/internal/pipeline"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Totals from the stats cache",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	stats, err := readStats()
	if err != nil || stats == nil {
		return err
	}

	if stats.TotalSessions == 0 {
		fmt.Println("\n  No Claude Code sessions found.")
		fmt.Println("  Use Claude Code first, then run `claudash compute` again.")
		return nil
	}

	totals := pipeline.SumTokens(stats)

	fmt.Println()
	fmt.Println(cli.RenderTitle("CLAUDE USAGE  computed " + stats.LastComputedDate))
	fmt.Println()

	rows := [][]string{
		{"Sessions", cli.FormatNumber(int64(stats.TotalSessions))},
		{"Messages", cli.FormatNumber(int64(stats.TotalMessages))},
		{"Tool calls", cli.FormatNumber(int64(stats.TotalToolCalls()))},
		{"Active days", cli.FormatNumber(int64(len(stats.DailyActivity)))},
		{cli.SeparatorRow},
		{"Input tokens", cli.FormatTokens(totals.InputTokens)},
		{"Output tokens", cli.FormatTokens(totals.OutputTokens)},
		{"Cache read", cli.FormatTokens(totals.CacheReadTokens)},
		{"Cache write", cli.FormatTokens(totals.CacheCreationTokens)},
		{"Total tokens", cli.FormatTokens(totals.Tokens)},
		{cli.SeparatorRow},
		{"Cost (est)", cli.FormatCost(totals.CostUSD)},
		{"Web searches", cli.FormatNumber(totals.WebSearchRequests)},
	}
	if stats.FirstSessionDate != "" {
		loc := loadOptions().Location
		rows = append(rows, []string{"First session", cli.FormatTimestamp(stats.FirstSessionDate, loc)})
	}
	if ls := stats.LongestSession; ls != nil {
		rows = append(rows, []string{"Longest session",
			fmt.Sprintf("%s (%d messages)", cli.FormatDurationMs(ls.DurationMs), ls.MessageCount)})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))
	return nil
}
