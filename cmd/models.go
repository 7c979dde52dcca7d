package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/claudash/internal/cli"
	"github.com/theirongolddev/claudash/internal/pipeline"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Token usage and cost by model",
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(_ *cobra.Command, _ []string) error {
	stats, err := readStats()
	if err != nil || stats == nil {
		return err
	}

	rows := pipeline.ModelBreakdown(stats)
	if len(rows) == 0 {
		fmt.Println("\n  No model usage recorded.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("MODEL USAGE"))
	fmt.Println()

	tableRows := make([][]string, 0, len(rows)+2)
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			strings.TrimPrefix(r.Model, "claude-"),
			cli.FormatTokens(r.InputTokens),
			cli.FormatTokens(r.OutputTokens),
			cli.FormatTokens(r.CacheReadInputTokens),
			cli.FormatTokens(r.CacheCreationInputTokens),
			cli.FormatCost(r.CostUSD),
			cli.FormatPercent(r.Share),
			cli.FormatTokens(r.ContextWindow),
		})
	}

	totals := pipeline.SumTokens(stats)
	tableRows = append(tableRows, []string{cli.SeparatorRow}, []string{
		"Total",
		cli.FormatTokens(totals.InputTokens),
		cli.FormatTokens(totals.OutputTokens),
		cli.FormatTokens(totals.CacheReadTokens),
		cli.FormatTokens(totals.CacheCreationTokens),
		cli.FormatCost(totals.CostUSD),
		"",
		"",
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Model", "Input", "Output", "Cache Rd", "Cache Wr", "Cost", "Share", "Context"},
		Rows:    tableRows,
	}))
	return nil
}
