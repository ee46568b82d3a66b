package tui

import (
	"fmt"
	"strings"

	"github.com/selamanalytics/fidash/internal/cli"
	"github.com/selamanalytics/fidash/internal/tui/components"
	"github.com/selamanalytics/fidash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	if a.overviewErr != nil {
		return errorCard("Overview unavailable", a.overviewErr, cw)
	}
	t := theme.Active
	ov := a.overview
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Background).Bold(true)
	subStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background)
	b.WriteString(titleStyle.Render(" " + ov.Title))
	b.WriteString("\n")
	b.WriteString(subStyle.Render(" " + truncStr(ov.Subtitle, cw-2)))
	b.WriteString("\n")

	// Row 1: KPI cards
	cards := make([]components.Metric, 0, len(ov.KPIs))
	for _, k := range ov.KPIs {
		m := components.Metric{
			Label: k.Label,
			Value: cli.FormatKPI(k),
			Delta: k.Caption,
			Muted: !k.Available,
		}
		if k.HasDelta {
			m.Delta = cli.FormatPointDelta(k.Delta)
			m.DeltaColor = t.Status(k.Delta >= 0)
		}
		cards = append(cards, m)
	}
	if a.isCompactLayout() && len(cards) > 2 {
		b.WriteString(components.MetricCardRow(cards[:2], cw))
		b.WriteString("\n")
		b.WriteString(components.MetricCardRow(cards[2:], cw))
	} else {
		b.WriteString(components.MetricCardRow(cards, cw))
	}
	b.WriteString("\n")

	// Row 2: goal progress
	g := ov.Goal
	innerW := components.CardInnerWidth(cw)
	labelW := 8
	barW := max(innerW-labelW-6, 10)

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	statusStyle := lipgloss.NewStyle().Foreground(t.Status(g.OnTrack)).Background(t.Surface).Bold(true)

	var goal strings.Builder
	goal.WriteString(components.GoalBar("Current", g.Progress, g.OnTrack, labelW, barW))
	goal.WriteString("\n")
	goal.WriteString(mutedStyle.Render(fmt.Sprintf("Current: %s | Target: %s | Status: ",
		cli.FormatPct(g.Current), cli.FormatPct(g.TargetPct))))
	goal.WriteString(statusStyle.Render(g.Status))
	goal.WriteString("\n")
	goal.WriteString(mutedStyle.Render(fmt.Sprintf("Forecast %d: %s", g.TargetYear, cli.FormatPct(g.Forecast))))

	b.WriteString(components.ContentCard(
		fmt.Sprintf("Progress toward %.0f%% Inclusion Goal", g.TargetPct),
		goal.String(),
		cw,
	))

	// Row 3: notes and warnings
	if len(ov.Notes)+len(ov.Warnings) > 0 {
		noteStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
		warnStyle := lipgloss.NewStyle().Foreground(t.Warning).Background(t.Surface)

		lines := make([]string, 0, len(ov.Notes)+len(ov.Warnings))
		for _, n := range ov.Notes {
			lines = append(lines, noteStyle.Render(truncStr("note: "+n, innerW)))
		}
		for _, w := range ov.Warnings {
			lines = append(lines, warnStyle.Render(truncStr("! "+w, innerW)))
		}
		b.WriteString("\n")
		b.WriteString(components.ContentCard("", strings.Join(lines, "\n"), cw))
	}

	return b.String()
}
