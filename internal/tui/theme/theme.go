// Package theme defines the colour themes of the claudash dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps colour roles to concrete colours.
type Theme struct {
	Name         string
	Background   lipgloss.Color
	Surface      lipgloss.Color // cards and bars
	Border       lipgloss.Color
	BorderAccent lipgloss.Color // focus and loading card
	TextDim      lipgloss.Color // hints, axes
	TextMuted    lipgloss.Color // labels
	TextPrimary  lipgloss.Color
	Accent       lipgloss.Color
	AccentBright lipgloss.Color
	Green        lipgloss.Color
	Orange       lipgloss.Color
	Blue         lipgloss.Color
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   "#100F0F",
	Surface:      "#1C1B1A",
	Border:       "#403E3C",
	BorderAccent: "#3AA99F",
	TextDim:      "#575653",
	TextMuted:    "#878580",
	TextPrimary:  "#FFFCF0",
	Accent:       "#3AA99F",
	AccentBright: "#5BC8BE",
	Green:        "#879A39",
	Orange:       "#DA702C",
	Blue:         "#4385BE",
}

// CatppuccinMocha is a pastel theme.
var CatppuccinMocha = Theme{
	Name:         "catppuccin-mocha",
	Background:   "#1E1E2E",
	Surface:      "#313244",
	Border:       "#585B70",
	BorderAccent: "#89B4FA",
	TextDim:      "#6C7086",
	TextMuted:    "#A6ADC8",
	TextPrimary:  "#CDD6F4",
	Accent:       "#89B4FA",
	AccentBright: "#B4D0FB",
	Green:        "#A6E3A1",
	Orange:       "#FAB387",
	Blue:         "#89B4FA",
}

// TokyoNight is a cool blue theme.
var TokyoNight = Theme{
	Name:         "tokyo-night",
	Background:   "#1A1B26",
	Surface:      "#24283B",
	Border:       "#565F89",
	BorderAccent: "#7AA2F7",
	TextDim:      "#565F89",
	TextMuted:    "#A9B1D6",
	TextPrimary:  "#C0CAF5",
	Accent:       "#7AA2F7",
	AccentBright: "#A9C1FF",
	Green:        "#9ECE6A",
	Orange:       "#FF9E64",
	Blue:         "#7AA2F7",
}

// Terminal uses the 16 ANSI colours only.
var Terminal = Theme{
	Name:         "terminal",
	Background:   "0",
	Surface:      "0",
	Border:       "8",
	BorderAccent: "6",
	TextDim:      "8",
	TextMuted:    "7",
	TextPrimary:  "15",
	Accent:       "6",
	AccentBright: "14",
	Green:        "2",
	Orange:       "3",
	Blue:         "4",
}

// All available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// Names lists the theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
