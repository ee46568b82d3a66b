// Package theme holds the colour roles of the fidash dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme assigns a colour to every role the dashboard draws with.
type Theme struct {
	Name        string
	Description string

	Background   lipgloss.Color // behind cards
	Surface      lipgloss.Color // card and bar fill
	SurfaceHover lipgloss.Color // active tab, selected pill
	Border       lipgloss.Color
	BorderAccent lipgloss.Color // focused card, picker frame

	TextDim     lipgloss.Color // hints, axis ticks
	TextMuted   lipgloss.Color // labels
	TextPrimary lipgloss.Color

	Accent       lipgloss.Color
	AccentBright lipgloss.Color
	KeyHint      lipgloss.Color // key names in the help overlay

	OnTrack lipgloss.Color // goal met, positive delta
	AtRisk  lipgloss.Color // goal missed, errors
	Warning lipgloss.Color // degraded KPIs, notes

	// Palette replaces trace colours on themes that cannot show arbitrary
	// hex values. Empty means traces keep their own colour.
	Palette []lipgloss.Color
}

// Active is the theme every component renders with.
var Active = FlexokiDark

// FlexokiDark is the default.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Description:  "warm paper tones on near-black",
	Background:   "#100F0F",
	Surface:      "#1C1B1A",
	SurfaceHover: "#282726",
	Border:       "#403E3C",
	BorderAccent: "#3AA99F",
	TextDim:      "#575653",
	TextMuted:    "#878580",
	TextPrimary:  "#FFFCF0",
	Accent:       "#3AA99F",
	AccentBright: "#5BC8BE",
	KeyHint:      "#24837B",
	OnTrack:      "#879A39",
	AtRisk:       "#D14D41",
	Warning:      "#DA702C",
}

var CatppuccinMocha = Theme{
	Name:         "catppuccin-mocha",
	Description:  "soft pastels",
	Background:   "#1E1E2E",
	Surface:      "#313244",
	SurfaceHover: "#45475A",
	Border:       "#585B70",
	BorderAccent: "#89B4FA",
	TextDim:      "#6C7086",
	TextMuted:    "#A6ADC8",
	TextPrimary:  "#CDD6F4",
	Accent:       "#89B4FA",
	AccentBright: "#B4D0FB",
	KeyHint:      "#94E2D5",
	OnTrack:      "#A6E3A1",
	AtRisk:       "#F38BA8",
	Warning:      "#FAB387",
}

var TokyoNight = Theme{
	Name:         "tokyo-night",
	Description:  "cool blues and purples",
	Background:   "#1A1B26",
	Surface:      "#24283B",
	SurfaceHover: "#343A52",
	Border:       "#565F89",
	BorderAccent: "#7AA2F7",
	TextDim:      "#565F89",
	TextMuted:    "#A9B1D6",
	TextPrimary:  "#C0CAF5",
	Accent:       "#7AA2F7",
	AccentBright: "#A9C1FF",
	KeyHint:      "#7DCFFF",
	OnTrack:      "#9ECE6A",
	AtRisk:       "#F7768E",
	Warning:      "#FF9E64",
}

// Terminal sticks to the 16 ANSI colours.
var Terminal = Theme{
	Name:         "terminal",
	Description:  "ANSI 16 colours, follows your terminal palette",
	Background:   "0",
	Surface:      "0",
	SurfaceHover: "8",
	Border:       "8",
	BorderAccent: "6",
	TextDim:      "8",
	TextMuted:    "7",
	TextPrimary:  "15",
	Accent:       "6",
	AccentBright: "14",
	KeyHint:      "6",
	OnTrack:      "2",
	AtRisk:       "1",
	Warning:      "3",
	Palette:      []lipgloss.Color{"15", "2", "4", "1", "3", "5"},
}

// All lists the selectable themes in display order.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// ByName returns the named theme, or FlexokiDark when the name is unknown.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive switches Active to the named theme.
func SetActive(name string) {
	Active = ByName(name)
}

// Names returns every theme name in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// Status returns OnTrack or AtRisk.
func (t Theme) Status(good bool) lipgloss.Color {
	if good {
		return t.OnTrack
	}
	return t.AtRisk
}

// Series maps a trace's hex colour onto the theme. Themes with a Palette
// use the slot instead so lines stay visible.
func (t Theme) Series(hex string, slot int) lipgloss.Color {
	if len(t.Palette) == 0 {
		return lipgloss.Color(hex)
	}
	return t.Palette[slot%len(t.Palette)]
}
