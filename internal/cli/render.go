package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Palette (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorOrange    = lipgloss.Color("#DA702C")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorText).Align(lipgloss.Center)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	valueStyle  = lipgloss.NewStyle().Foreground(ColorText)
	mutedStyle  = lipgloss.NewStyle().Foreground(ColorTextMuted)
	warnStyle   = lipgloss.NewStyle().Foreground(ColorOrange)
	dimStyle    = lipgloss.NewStyle().Foreground(ColorTextDim)
	barStyle    = lipgloss.NewStyle().Foreground(ColorAccent)
)

// SeparatorRow marks a horizontal rule between table rows.
const SeparatorRow = "---"

// Table is a bordered text table. The first TextCols columns are
// left-aligned (at least one); the rest hold figures and align right.
type Table struct {
	Headers  []string
	Rows     [][]string
	TextCols int
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(titleStyle.Render(title))
}

// RenderTable renders t with rounded borders. Column widths fit the widest
// cell in terminal cells, so wide runes stay aligned.
func RenderTable(t Table) string {
	if len(t.Headers) == 0 {
		return ""
	}
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}
	textCols := max(t.TextCols, 1)

	var b strings.Builder
	b.WriteString(rule(widths, "╭", "┬", "╮"))
	b.WriteString(tableRow(widths, t.Headers, len(widths), headerStyle))
	b.WriteString(rule(widths, "├", "┼", "┤"))
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == SeparatorRow {
			b.WriteString(rule(widths, "├", "┼", "┤"))
			continue
		}
		b.WriteString(tableRow(widths, row, textCols, valueStyle))
	}
	b.WriteString(rule(widths, "╰", "┴", "╯"))
	return b.String()
}

func rule(widths []int, left, mid, right string) string {
	segs := make([]string, len(widths))
	for i, w := range widths {
		segs[i] = strings.Repeat("─", w+2)
	}
	return dimStyle.Render(left+strings.Join(segs, mid)+right) + "\n"
}

func tableRow(widths []int, cells []string, textCols int, style lipgloss.Style) string {
	sep := dimStyle.Render("│")
	var b strings.Builder
	b.WriteString(sep)
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if i < textCols {
			cell = runewidth.FillRight(cell, w)
		} else {
			cell = runewidth.FillLeft(cell, w)
		}
		b.WriteString(style.Render(" " + cell + " "))
		b.WriteString(sep)
	}
	b.WriteString("\n")
	return b.String()
}

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// Sparkline maps counts onto eighth-height blocks scaled to the largest.
func Sparkline(values []int) string {
	peak := 0
	for _, v := range values {
		peak = max(peak, v)
	}
	var b strings.Builder
	for _, v := range values {
		idx := 0
		if peak > 0 && v > 0 {
			idx = v * (len(sparkBlocks) - 1) / peak
		}
		b.WriteRune(sparkBlocks[idx])
	}
	return b.String()
}

// RenderProgressBar renders "[████░░░░] current/total".
func RenderProgressBar(current, total, width int) string {
	if total <= 0 {
		return ""
	}
	filled := min(current*width/total, width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %s/%s", mutedStyle.Render(bar), FormatNumber(int64(current)), FormatNumber(int64(total)))
}

// RenderHistogram renders one labelled bar per count, each followed by the
// count itself. Bars are scaled so the largest spans width cells.
func RenderHistogram(labels []string, counts []int, width int) string {
	peak := 0
	for _, c := range counts {
		peak = max(peak, c)
	}
	labelW := 0
	for _, l := range labels {
		labelW = max(labelW, runewidth.StringWidth(l))
	}

	var b strings.Builder
	for i, c := range counts {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		n := 0
		if peak > 0 {
			n = c * width / peak
		}
		fmt.Fprintf(&b, "  %s %s %s %s\n",
			mutedStyle.Render(runewidth.FillRight(label, labelW)),
			dimStyle.Render("│"),
			barStyle.Render(strings.Repeat("█", n)),
			valueStyle.Render(FormatNumber(int64(c))))
	}
	return b.String()
}

// RenderWarning renders a highlighted one-line notice.
func RenderWarning(msg string) string {
	return "  " + warnStyle.Render(msg)
}

// RenderMuted renders secondary text.
func RenderMuted(msg string) string {
	return mutedStyle.Render(msg)
}

// RenderKeyValues renders aligned "key  value" lines.
func RenderKeyValues(pairs [][2]string) string {
	keyW := 0
	for _, p := range pairs {
		keyW = max(keyW, runewidth.StringWidth(p[0]))
	}
	var b strings.Builder
	for _, p := range pairs {
		fmt.Fprintf(&b, "  %s  %s\n", mutedStyle.Render(runewidth.FillRight(p[0], keyW)), valueStyle.Render(p[1]))
	}
	return b.String()
}
