package components

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/claudash/internal/cli"
	"github.com/theirongolddev/claudash/internal/model"
	"github.com/theirongolddev/claudash/internal/pipeline"
	"github.com/theirongolddev/claudash/internal/tui/theme"
)

// bar is one column of a chart; an empty label leaves the axis blank.
type bar struct {
	label string
	value int
}

// eighths are the partial-cell glyphs for the top of a bar.
var eighths = []rune(" ▁▂▃▄▅▆▇█")

const maxBarWidth = 4

// Sparkline renders counts as a one-line block sparkline in color.
func Sparkline(values []int, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	return lipgloss.NewStyle().Foreground(color).Background(theme.Active.Surface).Render(cli.Sparkline(values))
}

// HourChart plots the hour-of-day histogram with every sixth hour labelled.
func HourChart(hours []pipeline.HourCount, color lipgloss.Color, width, height int) string {
	bars := make([]bar, len(hours))
	for i, h := range hours {
		bars[i].value = h.Count
		if h.Hour%6 == 0 {
			bars[i].label = strconv.Itoa(h.Hour)
		}
	}
	return renderBars(bars, color, width, height)
}

// DayChart plots messages per day for ascending days. When the days do not
// fit the width, the oldest are dropped. The month name labels the first
// bar and each month boundary; other bars carry the day of month.
func DayChart(days []model.DailyActivity, color lipgloss.Color, width, height int) string {
	if fit := (width - axisWidth(days)) / 2; fit > 0 && len(days) > fit {
		days = days[len(days)-fit:]
	}
	bars := make([]bar, len(days))
	var prev time.Month
	for i, d := range days {
		bars[i].value = d.MessageCount
		dt, err := time.Parse("2006-01-02", d.Date)
		switch {
		case err != nil:
			bars[i].label = d.Date
		case i == 0 || dt.Month() != prev:
			bars[i].label = dt.Format("Jan")
		default:
			bars[i].label = strconv.Itoa(dt.Day())
		}
		prev = dt.Month()
	}
	return renderBars(bars, color, width, height)
}

// axisWidth is the y-axis gutter for a day series, label plus rule.
func axisWidth(days []model.DailyActivity) int {
	peak := 0
	for _, d := range days {
		peak = max(peak, d.MessageCount)
	}
	return len(axisLabel(axisCeiling(peak))) + 1
}

// axisCeiling rounds peak up to 1, 2 or 5 times a power of ten.
func axisCeiling(peak int) int {
	if peak <= 1 {
		return 1
	}
	for mag := 1; ; mag *= 10 {
		for _, m := range []int{1, 2, 5} {
			if m*mag >= peak {
				return m * mag
			}
		}
	}
}

func axisLabel(v int) string {
	return cli.FormatTokens(int64(v))
}

// renderBars draws bars bottom-aligned over height rows, with the ceiling
// and midpoint marked on the y-axis and the bar labels under the x-axis.
func renderBars(bars []bar, color lipgloss.Color, width, height int) string {
	if len(bars) == 0 {
		return ""
	}
	t := theme.Active
	height = max(height, 2)

	peak := 0
	for _, b := range bars {
		peak = max(peak, b.value)
	}
	ceiling := axisCeiling(peak)
	gutter := len(axisLabel(ceiling))

	n := len(bars)
	barW := min(max((width-gutter-1)/n-1, 1), maxBarWidth)
	step := barW + 1
	axisLen := n*step - 1

	surface := lipgloss.NewStyle().Background(t.Surface)
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var b strings.Builder
	for row := height; row >= 1; row-- {
		label := ""
		switch row {
		case height:
			label = axisLabel(ceiling)
		case height / 2:
			if height >= 4 {
				label = axisLabel(ceiling / 2)
			}
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", gutter, label)))

		var cells strings.Builder
		for i, br := range bars {
			if i > 0 {
				cells.WriteByte(' ')
			}
			// Eighths of a row this bar fills at this height, 0..8.
			fill := br.value*height*8/ceiling - (row-1)*8
			cells.WriteString(strings.Repeat(string(eighths[min(max(fill, 0), 8)]), barW))
		}
		b.WriteString(barStyle.Render(cells.String()))
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s└%s", gutter, "0", strings.Repeat("─", axisLen))))
	b.WriteString("\n")
	b.WriteString(surface.Render(strings.Repeat(" ", gutter+1)))
	b.WriteString(axisStyle.Render(xLabels(bars, step, axisLen)))
	return b.String()
}

// xLabels lays out bar labels left-aligned under their bars, skipping any
// that would touch the previous label or run past the axis.
func xLabels(bars []bar, step, axisLen int) string {
	line := []rune(strings.Repeat(" ", axisLen))
	next := 0
	for i, br := range bars {
		pos := i * step
		if br.label == "" || pos < next || pos+len(br.label) > axisLen {
			continue
		}
		copy(line[pos:], []rune(br.label))
		next = pos + len(br.label) + 1
	}
	return strings.TrimRight(string(line), " ")
}
