package tui

import (
	"fmt"
	"strings"

	"github.com/selamanalytics/fidash/internal/model"
	"github.com/selamanalytics/fidash/internal/tui/components"
	"github.com/selamanalytics/fidash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const (
	trendChartHeight = 10
	// Below this terminal height panels show sparklines instead of charts.
	trendChartMinTermHeight = 34
)

func (a App) renderTrendsTab(cw int) string {
	t := theme.Active
	tv := a.trends
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Background).Bold(true)
	b.WriteString(titleStyle.Render(" " + tv.Title))
	b.WriteString("\n")

	panels := []model.TrendPanel{tv.Paradox, tv.Ceiling}
	if a.isCompactLayout() {
		for _, p := range panels {
			b.WriteString(a.renderTrendPanel(p, cw))
			b.WriteString("\n")
		}
	} else {
		halves := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			a.renderTrendPanel(panels[0], halves[0]),
			a.renderTrendPanel(panels[1], halves[1]),
		}))
		b.WriteString("\n")
	}

	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background)
	switch {
	case tv.Correlation != nil:
		b.WriteString(dimStyle.Render(fmt.Sprintf(" Ownership vs. mobile penetration: r = %.2f over %d aligned years",
			*tv.Correlation, tv.AlignedYears)))
	case tv.AlignedYears > 0:
		b.WriteString(dimStyle.Render(fmt.Sprintf(" Only %d aligned years; correlation not reported", tv.AlignedYears)))
	}
	for _, w := range tv.Warnings {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(t.Warning).Background(t.Background).Render(" ! " + w))
	}

	return b.String()
}

// renderTrendPanel draws one panel. Series on the secondary (count) axis get
// their own chart below the primary one since a terminal grid has one scale.
func (a App) renderTrendPanel(p model.TrendPanel, outerW int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(outerW)

	var primary, secondary []components.ChartSeries
	for i, s := range p.Series {
		cs := components.ChartSeries{
			Name:   s.Name,
			Color:  t.Series(s.Color, i),
			Dashed: s.Dashed,
			Points: s.Points,
		}
		if s.Secondary {
			secondary = append(secondary, cs)
		} else {
			primary = append(primary, cs)
		}
	}

	narrStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Width(innerW)
	headStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	var body strings.Builder
	body.WriteString(headStyle.Render(p.Heading))
	body.WriteString("\n")
	body.WriteString(narrStyle.Render(p.Narrative))
	body.WriteString("\n\n")
	all := append(append([]components.ChartSeries{}, primary...), secondary...)
	if a.height < trendChartMinTermHeight {
		body.WriteString(sparkRows(all, innerW))
		return components.ContentCard(p.Title, body.String(), outerW)
	}
	body.WriteString(components.Legend(all))
	body.WriteString("\n")

	chartH := trendChartHeight
	if len(secondary) > 0 {
		chartH = trendChartHeight * 2 / 3
	}
	body.WriteString(components.LineChart(primary, components.ChartOpts{
		Width: innerW, Height: chartH, YMin: 0, YMax: 100,
	}))
	if len(secondary) > 0 {
		body.WriteString("\n")
		body.WriteString(components.LineChart(secondary, components.ChartOpts{
			Width: innerW, Height: chartH,
		}))
	}

	return components.ContentCard(p.Title, body.String(), outerW)
}

// sparkRows renders one "sparkline name" row per series.
func sparkRows(series []components.ChartSeries, width int) string {
	t := theme.Active
	nameStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	rows := make([]string, 0, len(series))
	for _, s := range series {
		vals := make([]float64, len(s.Points))
		for i, p := range s.Points {
			vals[i] = p.Value
		}
		spark := components.Sparkline(vals, s.Color)
		name := truncStr(s.Name, max(width-lipgloss.Width(spark)-1, 0))
		rows = append(rows, spark+nameStyle.Render(" "+name))
	}
	return strings.Join(rows, "\n")
}
