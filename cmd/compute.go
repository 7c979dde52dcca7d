package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/claudash/internal/cli"
	"github.com/theirongolddev/claudash/internal/pipeline"
	"github.com/theirongolddev/claudash/internal/source"
	"github.com/theirongolddev/claudash/internal/store"
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Recompute the stats cache from session logs",
	RunE:  runCompute,
}

func init() {
	rootCmd.AddCommand(computeCmd)
}

func runCompute(cmd *cobra.Command, _ []string) error {
	dataDir := cfg.ResolveClaudeDir()
	cachePath := cfg.ResolveCachePath()

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Scanning %s...\n", dataDir)
	}
	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		if current%50 == 0 || current == total {
			fmt.Fprintf(os.Stderr, "\r  Reading %s", cli.RenderProgressBar(current, total, 30))
		}
	}

	start := time.Now()
	result, err := pipeline.Load(cmd.Context(), source.NewDirSource(dataDir), loadOptions(), progressFn)
	if err != nil {
		return fmt.Errorf("computing stats: %w", err)
	}
	if err := store.WriteStatsCache(cachePath, result.Stats); err != nil {
		return err
	}

	if !flagQuiet {
		if result.Requested > 0 {
			fmt.Fprintln(os.Stderr)
		}
		fmt.Fprintf(os.Stderr, "  %s sessions from %d projects in %.1fs\n",
			cli.FormatNumber(int64(len(result.Sessions))),
			len(result.Projects),
			time.Since(start).Seconds())
		if result.Skipped > 0 {
			fmt.Fprintln(os.Stderr, cli.RenderWarning(fmt.Sprintf("%d session logs could not be read", result.Skipped)))
		}
	}
	fmt.Printf("  Wrote %s\n", cachePath)
	return nil
}
