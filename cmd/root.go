// Package cmd implements the claudash CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/claudash/internal/config"
	"github.com/theirongolddev/claudash/internal/logging"
	"github.com/theirongolddev/claudash/internal/model"
	"github.com/theirongolddev/claudash/internal/pipeline"
	"github.com/theirongolddev/claudash/internal/source"
	"github.com/theirongolddev/claudash/internal/store"
)

var (
	flagDataDir  string
	flagCache    string
	flagQuiet    bool
	flagLogLevel string
	flagDays     int

	// cfg is the loaded configuration with flag overrides applied.
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:               "claudash",
	Short:             "Claude Code usage statistics",
	Long:              "Fold your local Claude Code session logs into a statistics cache and explore it.",
	SilenceUsage:      true,
	PersistentPreRunE: setupRoot,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Claude data directory (default ~/.claude)")
	rootCmd.PersistentFlags().StringVar(&flagCache, "cache", "", "Stats cache path (default <data-dir>/stats-cache.json)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().IntVarP(&flagDays, "days", "n", 30, "Days shown by the daily view (0 = all)")
}

func setupRoot(_ *cobra.Command, _ []string) error {
	if err := logging.Setup(os.Stderr, flagLogLevel); err != nil {
		return err
	}

	c, err := config.Load()
	if err != nil {
		log.Warn("using default configuration", "path", config.Path(), "err", err)
	}
	if flagDataDir != "" {
		c.General.ClaudeDir = flagDataDir
	}
	if flagCache != "" {
		c.General.CachePath = flagCache
	}
	config.ApplyPricingOverrides(c.Pricing)
	cfg = c
	return nil
}

// loadOptions builds pipeline options, falling back to local time when the
// configured timezone cannot be loaded.
func loadOptions() pipeline.Options {
	opts, err := pipeline.OptionsFromConfig(cfg)
	if err != nil {
		log.Warn("falling back to local time", "err", err)
	}
	return opts
}

// readStats reads the stats artifact. A missing artifact prints a hint and
// returns nil stats with a nil error.
func readStats() (*model.StatsCache, error) {
	stats, err := store.ReadStatsCache(cfg.ResolveCachePath())
	if errors.Is(err, store.ErrNoData) {
		fmt.Println("\n  No data. Run `claudash compute` first.")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// discoverProjects lists the projects under the data directory.
func discoverProjects(cmd *cobra.Command) []model.Project {
	src := source.NewDirSource(cfg.ResolveClaudeDir())
	return source.DiscoverProjects(cmd.Context(), src, cfg.General.WorkspacePrefix)
}
