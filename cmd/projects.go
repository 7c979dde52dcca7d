package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/claudash/internal/cli"
	"github.com/theirongolddev/claudash/internal/source"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Projects found in the data directory",
	RunE:  runProjects,
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}

func runProjects(cmd *cobra.Command, _ []string) error {
	projects := discoverProjects(cmd)
	if len(projects) == 0 {
		fmt.Printf("\n  No projects found in %s.\n", cfg.ResolveClaudeDir())
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PROJECTS  %d found", len(projects))))
	fmt.Println()

	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			cli.Truncate(p.DisplayName, 40),
			source.ShortProjectName(p.ID),
			cli.FormatNumber(int64(len(p.Sessions))),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:  []string{"Project", "Short name", "Sessions"},
		Rows:     rows,
		TextCols: 2,
	}))
	fmt.Printf("\n  %s sessions total\n\n", cli.FormatNumber(int64(source.CountSessions(projects))))
	return nil
}
