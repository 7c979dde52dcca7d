// Package tui provides the interactive Bubble Tea dashboard for claudash.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/claudash/internal/config"
	"github.com/theirongolddev/claudash/internal/model"
	"github.com/theirongolddev/claudash/internal/pipeline"
	"github.com/theirongolddev/claudash/internal/source"
	"github.com/theirongolddev/claudash/internal/store"
	"github.com/theirongolddev/claudash/internal/tui/components"
	"github.com/theirongolddev/claudash/internal/tui/theme"
)

// StatsLoadedMsg carries the artifact read at startup.
type StatsLoadedMsg struct {
	Stats *model.StatsCache
	Err   error
}

// ProgressMsg reports session loading progress.
type ProgressMsg struct {
	Current int
	Total   int
}

// ComputedMsg is sent when a recompute finishes and the artifact is written.
type ComputedMsg struct {
	Result  *pipeline.LoadResult
	Elapsed time.Duration
	Err     error
}

// Options configures the dashboard.
type Options struct {
	Config    config.Config
	ClaudeDir string
	CachePath string
	Load      pipeline.Options
	// NeedSetup shows the setup form before the dashboard.
	NeedSetup bool
}

// App is the root Bubble Tea model.
type App struct {
	opts     Options
	settings config.ClaudeSettings

	// Data
	stats    *model.StatsCache
	loaded   bool // artifact read attempted
	noData   bool
	loadErr  error
	lastLoad *pipeline.LoadResult
	elapsed  time.Duration

	// Recompute
	computing   bool
	progress    int
	progressMax int
	loadSub     chan tea.Msg
	spinner     spinner.Model
	bar         progress.Model

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	setupForm *huh.Form
	setupVals SetupValues
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 140
	minContentHeight = 5
)

// NewApp creates a new dashboard model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	settings, _ := config.LoadClaudeSettings(opts.ClaudeDir)

	a := App{
		opts:     opts,
		settings: settings,
		spinner:  sp,
		bar:      components.NewProgress(40),
		loadSub:  make(chan tea.Msg, 1),
	}
	if opts.NeedSetup {
		a.setupVals = SetupValuesFrom(opts.Config)
		a.setupForm = NewSetupForm(&a.setupVals)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseCellMotion,
		readStatsCmd(a.opts.CachePath),
		a.spinner.Tick,
	}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		return a.updateKeys(msg)

	case tea.MouseMsg:
		if a.setupForm != nil || a.showHelp {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := components.TabAtX(msg.X, a.activeTab); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case StatsLoadedMsg:
		a.loaded = true
		a.stats = msg.Stats
		a.noData = errors.Is(msg.Err, store.ErrNoData)
		if !a.noData {
			a.loadErr = msg.Err
		}
		return a, nil

	case ProgressMsg:
		a.progress = msg.Current
		a.progressMax = msg.Total
		return a, waitForLoadMsg(a.loadSub)

	case ComputedMsg:
		a.computing = false
		a.elapsed = msg.Elapsed
		if msg.Err != nil {
			a.loadErr = msg.Err
			return a, nil
		}
		a.loadErr = nil
		a.noData = false
		a.lastLoad = msg.Result
		a.stats = msg.Result.Stats
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q", "esc":
		return a, tea.Quit
	case "r":
		if a.computing {
			return a, nil
		}
		a.computing = true
		a.progress, a.progressMax = 0, 0
		return a, computeCmd(a.opts, a.loadSub)
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		if cfg, err := SaveSetup(a.setupVals); err == nil {
			a.opts.Config = cfg
		} else {
			a.loadErr = fmt.Errorf("saving config: %w", err)
		}
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

func (a App) contentWidth() int {
	if a.width > maxContentWidth {
		return maxContentWidth
	}
	return a.width
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols); claudash needs %d.\n", a.width, minTerminalWidth)
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	if !a.loaded || a.computing {
		return a.viewLoading()
	}
	return a.viewMain()
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ claudash"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	if a.computing {
		b.WriteString(mutedStyle.Render(" Reading sessions"))
		if a.progressMax > 0 {
			b.WriteString("\n\n")
			b.WriteString(components.ProgressLine(a.bar, a.progress, a.progressMax))
		}
	} else {
		b.WriteString(mutedStyle.Render(" Loading statistics"))
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	bindings := [][2]string{
		{"o a h m s", "Switch tab"},
		{"← → tab", "Previous / next tab"},
		{"r", "Recompute from session logs"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	var b strings.Builder
	for _, bind := range bindings {
		fmt.Fprintf(&b, "%s  %s\n", keyStyle.Render(fmt.Sprintf("%-10s", bind[0])), descStyle.Render(bind[1]))
	}
	card := components.ContentCard("Keys", strings.TrimRight(b.String(), "\n"), 50)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()

	header := components.RenderTabBar(a.activeTab, w)
	status := ""
	switch {
	case a.loadErr != nil:
		status = "error: " + a.loadErr.Error()
	case a.stats != nil:
		status = "computed " + a.stats.LastComputedDate
		if a.elapsed > 0 {
			status += fmt.Sprintf(" in %.1fs", a.elapsed.Seconds())
		}
	}
	statusBar := components.RenderStatusBar(w, "[r]ecompute  [?]help  [q]uit", status)

	contentH := a.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch {
	case a.activeTab == len(components.Tabs)-1:
		content = a.renderSettingsTab(cw)
	case a.noData || a.stats == nil:
		content = a.renderNoData(cw)
	default:
		switch a.activeTab {
		case 0:
			content = a.renderOverviewTab(cw)
		case 1:
			content = a.renderActivityTab(cw, contentH)
		case 2:
			content = a.renderHoursTab(cw, contentH)
		case 3:
			content = a.renderModelsTab(cw)
		}
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (a App) renderNoData(cw int) string {
	body := "No statistics have been computed yet.\n\n" +
		"Press r to read the session logs in " + a.opts.ClaudeDir + "\n" +
		"or run `claudash compute`."
	return components.ContentCard("No data", body, cw)
}

// readStatsCmd reads the artifact without recomputing.
func readStatsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		c, err := store.ReadStatsCache(path)
		return StatsLoadedMsg{Stats: c, Err: err}
	}
}

// computeCmd runs the pipeline in a background goroutine and writes the
// artifact. It streams ProgressMsg updates and a final ComputedMsg through sub.
func computeCmd(opts Options, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			start := time.Now()

			// Non-blocking send so workers aren't stalled; the next update catches up.
			progressFn := func(current, total int) {
				select {
				case sub <- ProgressMsg{Current: current, Total: total}:
				default:
				}
			}

			res, err := pipeline.Load(context.Background(), source.NewDirSource(opts.ClaudeDir), opts.Load, progressFn)
			if err == nil {
				err = store.WriteStatsCache(opts.CachePath, res.Stats)
			}
			sub <- ComputedMsg{Result: res, Elapsed: time.Since(start), Err: err}
		}()

		return <-sub
	}
}

// waitForLoadMsg blocks until the next message arrives from the loader goroutine.
func waitForLoadMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

func shortModel(name string) string {
	return strings.TrimPrefix(name, "claude-")
}
