package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/claudash/internal/cli"
	"github.com/theirongolddev/claudash/internal/model"
	"github.com/theirongolddev/claudash/internal/pipeline"
	"github.com/theirongolddev/claudash/internal/source"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions <project>",
	Short: "Sessions of one project",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessions,
}

var sessionsLimit int

func init() {
	sessionsCmd.Flags().IntVarP(&sessionsLimit, "limit", "l", 10, "Number of sessions to read (0 = all)")
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	project, err := resolveProject(cmd, args[0])
	if err != nil {
		return err
	}

	ids := project.Sessions
	if sessionsLimit > 0 && len(ids) > sessionsLimit {
		ids = ids[:sessionsLimit]
	}

	opts := loadOptions()
	asm := pipeline.NewAssembler(source.NewDirSource(cfg.ResolveClaudeDir()), opts.FetchTimeout)

	var sessions []*model.Session
	skipped := 0
	for _, id := range ids {
		s, ok := asm.LoadSession(cmd.Context(), project.ID, id)
		if !ok {
			skipped++
			continue
		}
		sessions = append(sessions, s)
	}
	if err := cmd.Context().Err(); err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("\n  No readable sessions.")
		return nil
	}

	// Most recent first; sessions without a start sort last.
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartTimestamp > sessions[j].StartTimestamp
	})

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SESSIONS  %s (%d of %d)",
		cli.Truncate(project.DisplayName, 30), len(sessions), len(project.Sessions))))
	fmt.Println()

	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		duration := "-"
		if s.DurationMs != nil {
			duration = cli.FormatDurationMs(*s.DurationMs)
		}
		rows = append(rows, []string{
			s.ID,
			cli.FormatTimestamp(s.StartTimestamp, opts.Location),
			cli.Truncate(cli.OneLine(firstPrompt(s)), 40),
			cli.FormatNumber(int64(s.MessageCount)),
			duration,
			cli.FormatNumber(int64(s.ToolCallCount())),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:  []string{"Session", "Start", "First prompt", "Messages", "Duration", "Tools"},
		Rows:     rows,
		TextCols: 3,
	}))
	if skipped > 0 {
		fmt.Println(cli.RenderWarning(fmt.Sprintf("%d session logs could not be read", skipped)))
	}
	return nil
}

func resolveProject(cmd *cobra.Command, ref string) (model.Project, error) {
	project, ok := source.FindProject(discoverProjects(cmd), ref)
	if !ok {
		return model.Project{}, fmt.Errorf("project %q not found (see `claudash projects`)", ref)
	}
	return project, nil
}

func firstPrompt(s *model.Session) string {
	for _, m := range s.Messages {
		if m.Role == model.RoleUser && m.Text != "" {
			return m.Text
		}
	}
	return ""
}
