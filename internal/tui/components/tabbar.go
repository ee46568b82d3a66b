package components

import (
	"strings"

	"github.com/selamanalytics/fidash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name
}

// Tabs defines the four dashboard views in navigation order.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Trends", Key: 't', KeyPos: 0},
	{Name: "Forecast", Key: 'f', KeyPos: 0},
	{Name: "Policy", Key: 'p', KeyPos: 0},
}

// tabPadding is the horizontal padding on each side of a tab label.
const tabPadding = 1

// TabVisualWidth returns the rendered cell width of a tab. Active and
// inactive tabs share a width; mouse hit-testing relies on this matching
// RenderTabBar exactly.
func TabVisualWidth(tab Tab) int {
	return lipgloss.Width(tab.Name) + 2*tabPadding
}

// RenderTabBar renders the tab bar with the given active index, padded to
// width. Tabs are separated by a single column.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Background(t.SurfaceHover).
		Bold(true).
		Padding(0, tabPadding)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true).
		Underline(true)

	padStyle := lipgloss.NewStyle().Background(t.Surface)
	sepStyle := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface)

	var b strings.Builder
	for i, tab := range Tabs {
		if i > 0 {
			b.WriteString(sepStyle.Render("│"))
		}
		if i == activeIdx {
			b.WriteString(activeStyle.Render(tab.Name))
			continue
		}
		pad := padStyle.Render(strings.Repeat(" ", tabPadding))
		b.WriteString(pad)
		if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
			b.WriteString(inactiveStyle.Render(tab.Name[:tab.KeyPos]))
			b.WriteString(keyStyle.Render(tab.Name[tab.KeyPos : tab.KeyPos+1]))
			b.WriteString(inactiveStyle.Render(tab.Name[tab.KeyPos+1:]))
		} else {
			b.WriteString(inactiveStyle.Render(tab.Name))
		}
		b.WriteString(pad)
	}

	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(b.String())
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
