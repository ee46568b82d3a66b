package tui

import (
	"fmt"
	"strings"

	"github.com/selamanalytics/fidash/internal/cli"
	"github.com/selamanalytics/fidash/internal/model"
	"github.com/selamanalytics/fidash/internal/tui/components"
	"github.com/selamanalytics/fidash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// forecastOverhead is the lines the forecast tab spends outside the chart.
const forecastOverhead = 16

func (a App) renderForecastTab(cw, contentH int) string {
	t := theme.Active
	var b strings.Builder

	b.WriteString(a.renderSelectors(cw))
	b.WriteString("\n")

	if a.forecastErr != nil {
		b.WriteString(errorCard("Forecast unavailable", a.forecastErr, cw))
		return b.String()
	}
	fv := a.forecast
	unit := fv.Forecast.Unit
	innerW := components.CardInnerWidth(cw)

	series := []components.ChartSeries{
		{
			// History is black in exports; on a dark terminal it takes the text color
			Name:   fv.Historical.Name,
			Color:  t.TextPrimary,
			Points: fv.Historical.Points,
		},
		{
			Name:   fv.Forecast.Name,
			Color:  t.Series(fv.Forecast.Color, int(fv.Scenario)+1),
			Dashed: true,
			Points: fv.Forecast.Points,
		},
	}
	opts := components.ChartOpts{
		Width:  innerW,
		Height: max(contentH-forecastOverhead, 8),
		YMin:   fv.YMin,
		YMax:   fv.YMax,
	}
	if fv.BandVisible {
		opts.Upper, opts.Lower = fv.Upper, fv.Lower
		opts.BandColor = series[1].Color
	}

	annStyle := lipgloss.NewStyle().Foreground(series[1].Color).Background(t.Surface).Bold(true)
	var chart strings.Builder
	chart.WriteString(components.Legend(series))
	if fv.BandVisible {
		chart.WriteString(lipgloss.NewStyle().Foreground(series[1].Color).Background(t.Surface).Render("   ░ 95% CI"))
	}
	chart.WriteString("\n")
	chart.WriteString(components.LineChart(series, opts))
	chart.WriteString("\n")
	chart.WriteString(annStyle.Render(fmt.Sprintf("%s (%d)",
		cli.FormatValue(fv.Annotation.Value, unit), fv.Annotation.Date.Year())))

	b.WriteString(components.ContentCard(fv.Title, chart.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Forecast Data", renderForecastTable(fv), cw))

	if fv.ScenarioNote != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Background).
			Render(" " + truncStr(fv.ScenarioNote, cw-2)))
	}
	return b.String()
}

// renderSelectors shows the two select controls as pills.
func (a App) renderSelectors(cw int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background)
	pillStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Padding(0, 1)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Background).Bold(true)

	line := labelStyle.Render(" Indicator ") + keyStyle.Render("[i]") + labelStyle.Render(" ") +
		pillStyle.Render(a.indicator().Label) +
		labelStyle.Render("   Scenario ") + keyStyle.Render("[s]") + labelStyle.Render(" ") +
		pillStyle.Render(a.scenario.Label())
	return lipgloss.NewStyle().MaxWidth(cw).Render(line)
}

// renderForecastTable renders the yearly table with the selected scenario's
// column highlighted.
func renderForecastTable(fv model.ForecastView) string {
	t := theme.Active
	unit := fv.Forecast.Unit

	headStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	cellStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	selected := map[model.Scenario]int{
		model.ScenarioBase:        1,
		model.ScenarioPessimistic: 2,
		model.ScenarioOptimistic:  3,
	}[fv.Scenario]

	const colW = 14
	row := func(cells []string, header bool) string {
		var b strings.Builder
		for i, c := range cells {
			st := cellStyle
			switch {
			case header:
				st = headStyle
			case i == selected:
				st = selStyle
			}
			b.WriteString(st.Render(fmt.Sprintf("%*s", colW, c)))
		}
		return b.String()
	}

	lines := []string{row([]string{"Year", "Base", "Pessimistic", "Optimistic"}, true)}
	for _, r := range fv.Table {
		lines = append(lines, row([]string{
			fmt.Sprintf("%d", r.Year),
			cli.FormatValue(r.Base, unit),
			cli.FormatValue(r.Pessimistic, unit),
			cli.FormatValue(r.Optimistic, unit),
		}, false))
	}
	return strings.Join(lines, "\n")
}
