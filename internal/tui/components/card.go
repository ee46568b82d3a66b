// Package components provides reusable TUI widgets for the fidash dashboard.
package components

import (
	"strings"

	"github.com/selamanalytics/fidash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Metric is one KPI card's content.
type Metric struct {
	Label string
	Value string
	Delta string

	// Muted dims the value, for indicators missing from the data.
	Muted bool
	// DeltaColor overrides the delta's color when set.
	DeltaColor lipgloss.Color
}

// LayoutRow distributes totalWidth into n widths that sum to exactly totalWidth.
// First items absorb the remainder from integer division.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	base := totalWidth / n
	remainder := totalWidth % n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < remainder {
			widths[i]++
		}
	}
	return widths
}

// frame is the rounded, surface-filled box shared by every card.
// outerWidth includes the border.
func frame(outerWidth int) lipgloss.Style {
	t := theme.Active
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		BorderBackground(t.Background).
		Background(t.Surface).
		Width(max(outerWidth-2, 10)).
		Padding(0, 1)
}

// MetricCard renders one KPI: label, bold value, then the delta or caption.
func MetricCard(m Metric, outerWidth int) string {
	t := theme.Active
	on := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c).Background(t.Surface)
	}

	value := on(t.TextPrimary).Bold(true)
	if m.Muted {
		value = on(t.TextDim).Bold(true)
	}
	delta := on(t.TextDim)
	if m.DeltaColor != "" {
		delta = on(m.DeltaColor)
	}

	return frame(outerWidth).Render(strings.Join([]string{
		on(t.TextMuted).Render(m.Label),
		value.Render(m.Value),
		delta.Render(m.Delta),
	}, "\n"))
}

// MetricCardRow renders a row of metric cards side by side.
// totalWidth is the full row width; cards sum to exactly that.
func MetricCardRow(cards []Metric, totalWidth int) string {
	if len(cards) == 0 {
		return ""
	}

	widths := LayoutRow(totalWidth, len(cards))

	rendered := make([]string, 0, len(cards))
	for i, c := range cards {
		rendered = append(rendered, MetricCard(c, widths[i]))
	}

	return CardRow(rendered)
}

// ContentCard renders body inside a card, under an accent title when one
// is given.
func ContentCard(title, body string, outerWidth int) string {
	if title == "" {
		return frame(outerWidth).Render(body)
	}
	t := theme.Active
	heading := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	return frame(outerWidth).Render(heading.Render(title) + "\n" + body)
}

// CardRow joins pre-rendered cards horizontally. Shorter cards are padded
// with the background color so no unstyled cells show through.
func CardRow(cards []string) string {
	if len(cards) == 0 {
		return ""
	}
	t := theme.Active

	tallest := 0
	for _, c := range cards {
		tallest = max(tallest, lipgloss.Height(c))
	}

	padded := make([]string, len(cards))
	for i, c := range cards {
		padded[i] = lipgloss.Place(lipgloss.Width(c), tallest, lipgloss.Left, lipgloss.Top, c,
			lipgloss.WithWhitespaceBackground(t.Background))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, padded...)
}

// CardInnerWidth returns the usable text width inside a ContentCard
// given its outer width (subtracts border + padding).
func CardInnerWidth(outerWidth int) int {
	return max(outerWidth-4, 10)
}
