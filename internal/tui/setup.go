package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/claudash/internal/config"
	"github.com/theirongolddev/claudash/internal/tui/theme"
)

// SetupValues holds the answers of the setup form.
type SetupValues struct {
	ClaudeDir          string
	WorkspacePrefix    string
	SessionsPerProject int
	Theme              string
}

// SetupValuesFrom seeds the form with the current configuration.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		ClaudeDir:          cfg.ResolveClaudeDir(),
		WorkspacePrefix:    cfg.General.WorkspacePrefix,
		SessionsPerProject: cfg.General.SessionsPerProject,
		Theme:              theme.ByName(cfg.Appearance.Theme).Name,
	}
}

// Apply copies the answers into cfg.
func (v SetupValues) Apply(cfg *config.Config) {
	cfg.General.ClaudeDir = strings.TrimSpace(v.ClaudeDir)
	cfg.General.WorkspacePrefix = strings.TrimSpace(v.WorkspacePrefix)
	cfg.General.SessionsPerProject = v.SessionsPerProject
	cfg.Appearance.Theme = v.Theme
}

// NewSetupForm builds the first-run form writing into vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to claudash").
				Description("Usage statistics from your local Claude Code logs."),
			huh.NewInput().
				Title("Claude data directory").
				Description("Holds projects/<project>/<session>.jsonl").
				Value(&vals.ClaudeDir).
				Validate(validateDir),
			huh.NewInput().
				Title("Workspace prefix").
				Description("Stripped from project paths for display (optional)").
				Placeholder("/home/you/").
				Value(&vals.WorkspacePrefix),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Sessions read per project").
				Options(
					huh.NewOption("All sessions", 0),
					huh.NewOption("10", 10),
					huh.NewOption("50", 50),
					huh.NewOption("200", 200),
				).
				Value(&vals.SessionsPerProject),
			huh.NewSelect[string]().
				Title("Colour theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
	).WithTheme(huh.ThemeCharm())
}

func validateDir(dir string) error {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot read %s", dir)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

// SaveSetup writes the answers to the config file and activates the theme.
func SaveSetup(vals SetupValues) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	vals.Apply(&cfg)
	theme.SetActive(cfg.Appearance.Theme)
	if err := config.Save(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
