package tui

import (
	"fmt"
	"strings"

	"github.com/selamanalytics/fidash/internal/tui/components"
	"github.com/selamanalytics/fidash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderPolicyTab(cw int) string {
	t := theme.Active
	pv := a.policy
	innerW := components.CardInnerWidth(cw)
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Background).Bold(true)
	bodyStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Width(innerW)
	bulletStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Background)

	b.WriteString(titleStyle.Render(" " + pv.Title))
	b.WriteString("\n")

	for i, in := range pv.Insights {
		body := bodyStyle.Render(in.Body)
		for _, bullet := range in.Bullets {
			body += "\n" + bulletStyle.Render(truncStr("  • "+bullet, innerW))
		}
		b.WriteString(components.ContentCard(fmt.Sprintf("%d. %s", i+1, in.Title), body, cw))
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render(" Data Sources: " + strings.Join(pv.Sources, ", ")))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(" " + pv.Footer))

	return b.String()
}
