package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/claudash/internal/cli"
	"github.com/theirongolddev/claudash/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	g := cfg.General
	sample := "all"
	if g.SessionsPerProject > 0 {
		sample = fmt.Sprintf("%d per project", g.SessionsPerProject)
	}
	workers := "GOMAXPROCS"
	if g.Workers > 0 {
		workers = fmt.Sprintf("%d", g.Workers)
	}
	timezone := g.Timezone
	if timezone == "" {
		timezone = "local"
	}

	fmt.Println("  [general]")
	fmt.Print(cli.RenderKeyValues([][2]string{
		{"  Claude directory", cfg.ResolveClaudeDir()},
		{"  Stats cache", cfg.ResolveCachePath()},
		{"  Workspace prefix", g.WorkspacePrefix},
		{"  Sessions read", sample},
		{"  Workers", workers},
		{"  Fetch timeout", g.FetchTimeout.String()},
		{"  Timezone", timezone},
	}))
	fmt.Println()

	fmt.Println("  [appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	if len(cfg.Pricing.Overrides) > 0 {
		fmt.Println("  [pricing.overrides]")
		models := make([]string, 0, len(cfg.Pricing.Overrides))
		for m := range cfg.Pricing.Overrides {
			models = append(models, m)
		}
		sort.Strings(models)
		for _, m := range models {
			p, _ := config.LookupPricing(m)
			fmt.Printf("    %s: $%.2f in / $%.2f out per MTok\n", m, p.InputPerMTok, p.OutputPerMTok)
		}
		fmt.Println()
	}

	fmt.Println("  Run `claudash setup` to reconfigure.")
	return nil
}
