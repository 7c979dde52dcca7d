package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/claudash/internal/cli"
	"github.com/theirongolddev/claudash/internal/model"
	"github.com/theirongolddev/claudash/internal/pipeline"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Daily activity table",
	RunE:  runDaily,
}

func init() {
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(_ *cobra.Command, _ []string) error {
	stats, err := readStats()
	if err != nil || stats == nil {
		return err
	}

	days := pipeline.RecentDays(stats, flagDays)
	if len(days) == 0 {
		fmt.Println("\n  No active days recorded.")
		return nil
	}
	tokens := dayTokens(stats.DailyModelTokens)

	title := fmt.Sprintf("DAILY ACTIVITY  Last %d active days", len(days))
	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()

	rows := make([][]string, 0, len(days))
	counts := make([]int, 0, len(days))
	for i := len(days) - 1; i >= 0; i-- {
		d := days[i]
		rows = append(rows, []string{
			d.Date,
			cli.FormatDate(d.Date)[:3],
			cli.FormatNumber(int64(d.SessionCount)),
			cli.FormatNumber(int64(d.MessageCount)),
			cli.FormatNumber(int64(d.ToolCallCount)),
			cli.FormatTokens(tokens[d.Date]),
		})
	}
	for _, d := range days {
		counts = append(counts, d.MessageCount)
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:  []string{"Date", "Day", "Sessions", "Messages", "Tools", "Tokens"},
		Rows:     rows,
		TextCols: 2,
	}))
	fmt.Printf("\n  Messages  %s\n\n", cli.Sparkline(counts))
	return nil
}

// dayTokens sums each day's per-model input+output tokens.
func dayTokens(days []model.DailyModelTokens) map[string]int64 {
	out := make(map[string]int64, len(days))
	for _, d := range days {
		for _, n := range d.TokensByModel {
			out[d.Date] += n
		}
	}
	return out
}
