package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/claudash/internal/cli"
	"github.com/theirongolddev/claudash/internal/model"
	"github.com/theirongolddev/claudash/internal/pipeline"
	"github.com/theirongolddev/claudash/internal/source"
)

var sessionCmd = &cobra.Command{
	Use:   "session <project> <session-id>",
	Short: "Transcript of one session",
	Args:  cobra.ExactArgs(2),
	RunE:  runSession,
}

var sessionFull bool

func init() {
	sessionCmd.Flags().BoolVar(&sessionFull, "full", false, "Print whole messages instead of one-line previews")
	rootCmd.AddCommand(sessionCmd)
}

func runSession(cmd *cobra.Command, args []string) error {
	project, err := resolveProject(cmd, args[0])
	if err != nil {
		return err
	}

	opts := loadOptions()
	asm := pipeline.NewAssembler(source.NewDirSource(cfg.ResolveClaudeDir()), opts.FetchTimeout)
	s, ok := asm.LoadSession(cmd.Context(), project.ID, args[1])
	if !ok {
		return fmt.Errorf("session %s could not be read", args[1])
	}

	duration := "-"
	if s.DurationMs != nil {
		duration = cli.FormatDurationMs(*s.DurationMs)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SESSION  " + s.ID))
	fmt.Println()
	fmt.Print(cli.RenderKeyValues([][2]string{
		{"Project", project.DisplayName},
		{"Started", cli.FormatTimestamp(s.StartTimestamp, opts.Location)},
		{"Messages", cli.FormatNumber(int64(s.MessageCount))},
		{"Duration", duration},
		{"Tool calls", cli.FormatNumber(int64(s.ToolCallCount()))},
	}))
	fmt.Println()

	for _, m := range s.Messages {
		fmt.Println(messageLine(m, opts))
	}
	fmt.Println()
	return nil
}

func messageLine(m model.Message, opts pipeline.Options) string {
	var b strings.Builder
	ts := "     "
	if t, ok := m.Time(); ok {
		if opts.Location != nil {
			t = t.In(opts.Location)
		}
		ts = t.Format("15:04")
	}
	fmt.Fprintf(&b, "  %s %-9s ", cli.RenderMuted(ts), m.Role)

	text := m.Text
	if !sessionFull {
		text = cli.Truncate(cli.OneLine(text), 90)
	}
	b.WriteString(text)
	if len(m.ToolCalls) > 0 {
		b.WriteString(cli.RenderMuted(" [" + strings.Join(m.ToolCalls, ", ") + "]"))
	}
	return b.String()
}
