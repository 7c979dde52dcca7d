package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/claudash/internal/cli"
	"github.com/theirongolddev/claudash/internal/config"
	"github.com/theirongolddev/claudash/internal/source"
	"github.com/theirongolddev/claudash/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	projects := discoverProjects(cmd)

	fmt.Println()
	fmt.Println("  Welcome to claudash!")
	fmt.Println()
	if n := source.CountSessions(projects); n > 0 {
		fmt.Printf("  Found %s sessions in %s (%d projects)\n\n",
			cli.FormatNumber(int64(n)), cfg.ResolveClaudeDir(), len(projects))
	}

	vals := tui.SetupValuesFrom(cfg)
	if err := tui.NewSetupForm(&vals).RunWithContext(cmd.Context()); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup canceled.")
			return nil
		}
		return err
	}

	if _, err := tui.SaveSetup(vals); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `claudash compute` to build the stats cache.")
	fmt.Println()
	return nil
}
