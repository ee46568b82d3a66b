package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Flexoki Dark, matching the dashboard's default theme.
var (
	colorBorder    = lipgloss.Color("#282726")
	colorTextDim   = lipgloss.Color("#575653")
	colorTextMuted = lipgloss.Color("#6F6E69")
	colorText      = lipgloss.Color("#FFFCF0")
	colorAccent    = lipgloss.Color("#3AA99F")
	colorOnTrack   = lipgloss.Color("#879A39")
	colorWarning   = lipgloss.Color("#DA702C")
	colorAtRisk    = lipgloss.Color("#D14D41")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	goodStyle = lipgloss.NewStyle().
			Foreground(colorOnTrack)

	badStyle = lipgloss.NewStyle().
			Foreground(colorAtRisk)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)
)

// Table represents a bordered text table for CLI output.
// A row of exactly {"---"} renders as a separator.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil

	// LeftCols is how many leading columns are left-aligned; the rest are
	// right-aligned. Zero means one.
	LeftCols int
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 62
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderHeading renders a section heading with an optional muted lead-in.
func RenderHeading(heading, narrative string) string {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(headerStyle.Render(heading))
	b.WriteString("\n")
	if narrative != "" {
		wrapped := lipgloss.NewStyle().Width(70).Render(narrative)
		for _, line := range strings.Split(wrapped, "\n") {
			b.WriteString("  ")
			b.WriteString(mutedStyle.Render(strings.TrimRight(line, " ")))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderStatus colors a goal status label.
func RenderStatus(status string, good bool) string {
	if good {
		return goodStyle.Render(status)
	}
	return badStyle.Render(status)
}

// RenderNote renders a muted informational line.
func RenderNote(msg string) string {
	return "  " + mutedStyle.Render("note: "+msg)
}

// RenderWarning renders a warning line.
func RenderWarning(msg string) string {
	return "  " + warnStyle.Render("! "+msg)
}

// RenderTable renders a bordered table with headers and rows.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	leftCols := t.LeftCols
	if leftCols <= 0 {
		leftCols = 1
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			widths[i] = max(widths[i], lipgloss.Width(h))
		}
		for _, row := range t.Rows {
			for i, cell := range row {
				if i < numCols {
					widths[i] = max(widths[i], lipgloss.Width(cell))
				}
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(pad(h, widths[i], i < leftCols)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		rule("├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			rule("├", "┼", "┤")
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(valueStyle.Render(pad(cell, widths[i], i < leftCols)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	rule("╰", "┴", "╯")

	return b.String()
}

// pad surrounds cell with one space each side and fills to width. Width is
// measured in cells so pre-styled content aligns.
func pad(cell string, width int, left bool) string {
	gap := width - lipgloss.Width(cell)
	if gap < 0 {
		gap = 0
	}
	if left {
		return " " + cell + strings.Repeat(" ", gap) + " "
	}
	return " " + strings.Repeat(" ", gap) + cell + " "
}

// RenderProgressBar renders a 0-1 fraction as a text bar with its
// percentage, green when onTrack and red otherwise.
func RenderProgressBar(fraction float64, width int, onTrack bool) string {
	fraction = max(0, min(fraction, 1))
	filled := min(int(fraction*float64(width)), width)

	style := badStyle
	if onTrack {
		style = goodStyle
	}
	bar := style.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("[%s] %s", bar, FormatPercent(fraction))
}

// RenderSparkline generates a unicode block sparkline from a series of values.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo

	var b strings.Builder
	for _, v := range values {
		idx := len(blocks) - 1
		if span > 0 {
			idx = int((v - lo) / span * float64(len(blocks)-1))
		}
		idx = max(0, min(idx, len(blocks)-1))
		b.WriteRune(blocks[idx])
	}

	return b.String()
}
