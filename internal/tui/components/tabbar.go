package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/claudash/internal/tui/theme"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name string
	Key  rune // shortcut; always the lower-cased first letter
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o'},
	{Name: "Activity", Key: 'a'},
	{Name: "Hours", Key: 'h'},
	{Name: "Models", Key: 'm'},
	{Name: "Settings", Key: 's'},
}

func tabStyles() (active, inactive, key lipgloss.Style) {
	t := theme.Active
	active = lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true).Padding(0, 1)
	inactive = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Padding(0, 1)
	key = lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	return active, inactive, key
}

func renderTab(tab Tab, active bool) string {
	activeStyle, inactiveStyle, keyStyle := tabStyles()
	if active {
		return activeStyle.Render(tab.Name)
	}
	// Highlight the shortcut letter inside the padded label.
	pad := inactiveStyle.UnsetPadding()
	return pad.Render(" ") + keyStyle.Render(tab.Name[:1]) + pad.Render(tab.Name[1:]+" ")
}

// TabVisualWidth returns the rendered width of a tab.
func TabVisualWidth(tab Tab, active bool) int {
	return lipgloss.Width(renderTab(tab, active))
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active
	sep := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("│")

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		parts[i] = renderTab(tab, i == activeIdx)
	}
	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(strings.Join(parts, sep))
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}

// TabAtX returns the tab index at column x of the tab bar, or -1.
func TabAtX(x, activeIdx int) int {
	pos := 0
	for i, tab := range Tabs {
		w := TabVisualWidth(tab, i == activeIdx)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 1 // separator
	}
	return -1
}
