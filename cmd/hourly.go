package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/claudash/internal/cli"
	"github.com/theirongolddev/claudash/internal/pipeline"
)

var hourlyCmd = &cobra.Command{
	Use:   "hourly",
	Short: "Messages by hour of day",
	RunE:  runHourly,
}

func init() {
	rootCmd.AddCommand(hourlyCmd)
}

func runHourly(_ *cobra.Command, _ []string) error {
	stats, err := readStats()
	if err != nil || stats == nil {
		return err
	}
	hours := pipeline.Hours(stats)

	fmt.Println()
	fmt.Println(cli.RenderTitle("ACTIVITY BY HOUR"))
	fmt.Println()

	labels := make([]string, len(hours))
	counts := make([]int, len(hours))
	peak := 0
	for i, h := range hours {
		labels[i] = fmt.Sprintf("%02d:00", h.Hour)
		counts[i] = h.Count
		if h.Count > hours[peak].Count {
			peak = i
		}
	}
	fmt.Print(cli.RenderHistogram(labels, counts, 40))

	if hours[peak].Count > 0 {
		fmt.Printf("\n  Peak: %02d:00 (%s messages)\n\n",
			peak, cli.FormatNumber(int64(hours[peak].Count)))
	}
	return nil
}
