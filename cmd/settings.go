package cmd

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/claudash/internal/cli"
	"github.com/theirongolddev/claudash/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show Claude Code settings and cache status",
	RunE:  runSettings,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}

func runSettings(_ *cobra.Command, _ []string) error {
	dataDir := cfg.ResolveClaudeDir()
	s, err := config.LoadClaudeSettings(dataDir)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SETTINGS"))
	fmt.Println()

	pairs := [][2]string{
		{"Data directory", dataDir},
		{"Settings file", filepath.Join(dataDir, "settings.json")},
		{"Language", orDash(s.Language)},
		{"Updates channel", orDash(s.AutoUpdatesChannel)},
		{"Minimum version", orDash(s.MinimumVersion)},
		{"Permission mode", orDash(s.Permissions.DefaultMode)},
	}
	keys := make([]string, 0, len(s.Env))
	for k := range s.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		pairs = append(pairs, [2]string{"env " + k, s.Env[k]})
	}
	fmt.Print(cli.RenderKeyValues(pairs))
	fmt.Println()

	stats, err := readStats()
	if err != nil || stats == nil {
		return err
	}
	fmt.Print(cli.RenderKeyValues([][2]string{
		{"Stats cache", cfg.ResolveCachePath()},
		{"Last computed", stats.LastComputedDate},
		{"Sessions", cli.FormatNumber(int64(stats.TotalSessions))},
		{"Messages", cli.FormatNumber(int64(stats.TotalMessages))},
	}))
	fmt.Println()
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
