package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/claudash/internal/cli"
	"github.com/theirongolddev/claudash/internal/config"
	"github.com/theirongolddev/claudash/internal/tui/components"
	"github.com/theirongolddev/claudash/internal/tui/theme"
)

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	line := func(label, value string) string {
		if value == "" {
			value = "-"
		}
		return labelStyle.Render(fmt.Sprintf("%-22s", label)) + valueStyle.Render(value)
	}

	cfg := a.opts.Config
	sample := "all"
	if cfg.General.SessionsPerProject > 0 {
		sample = fmt.Sprintf("%d per project", cfg.General.SessionsPerProject)
	}
	data := []string{
		line("Data directory", a.opts.ClaudeDir),
		line("Stats cache", a.opts.CachePath),
		line("Config file", config.Path()),
		line("Sessions read", sample),
		line("Timezone", a.opts.Load.Location.String()),
		line("Theme", t.Name),
	}
	if a.stats != nil {
		data = append(data,
			line("Last computed", a.stats.LastComputedDate),
			line("Sessions / messages", fmt.Sprintf("%s / %s",
				cli.FormatNumber(int64(a.stats.TotalSessions)),
				cli.FormatNumber(int64(a.stats.TotalMessages)))),
		)
	}
	if a.lastLoad != nil {
		data = append(data, line("Last run", fmt.Sprintf("%d projects, %d logs read, %d skipped",
			len(a.lastLoad.Projects), a.lastLoad.Requested, a.lastLoad.Skipped)))
	}

	s := a.settings
	claude := []string{
		line("Language", s.Language),
		line("Updates channel", s.AutoUpdatesChannel),
		line("Minimum version", s.MinimumVersion),
		line("Permission mode", s.Permissions.DefaultMode),
	}
	keys := make([]string, 0, len(s.Env))
	for k := range s.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		claude = append(claude, line("env "+k, s.Env[k]))
	}

	return components.ContentCard("claudash", strings.Join(data, "\n"), cw) + "\n" +
		components.ContentCard("Claude Code settings.json", strings.Join(claude, "\n"), cw)
}
