// Package tui provides the interactive Bubble Tea dashboard for fidash.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/selamanalytics/fidash/internal/config"
	"github.com/selamanalytics/fidash/internal/model"
	"github.com/selamanalytics/fidash/internal/pipeline"
	"github.com/selamanalytics/fidash/internal/tui/components"
	"github.com/selamanalytics/fidash/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// dataLoadedMsg is sent when the loader finishes.
type dataLoadedMsg struct {
	result *pipeline.LoadResult
	err    error
}

const (
	tabOverview = iota
	tabTrends
	tabForecast
	tabPolicy
)

// App is the root Bubble Tea model.
type App struct {
	cfg    config.Config
	loader pipeline.Loader
	logger *zap.Logger

	// Data
	loaded   bool
	loadErr  error
	missing  []string
	loadTime time.Duration
	ds       *model.Dataset

	// Views, rebuilt by recompute
	overview    model.OverviewView
	overviewErr error
	trends      model.TrendsView
	policy      model.PolicyView
	forecast    model.ForecastView
	forecastErr error

	// Forecast selections
	indicatorIdx int
	scenario     model.Scenario

	// Indicator/scenario picker (huh form)
	picker     *huh.Form
	pickerVals *pickerValues

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	spinner   spinner.Model
}

const (
	minTerminalWidth = 60
	compactWidth     = 100
	maxContentWidth  = 160
	minContentHeight = 5
)

// NewApp creates a new TUI app model. The loader runs once, inside a
// command, after the first frame.
func NewApp(cfg config.Config, loader pipeline.Loader, logger *zap.Logger) App {
	if logger == nil {
		logger = zap.NewNop()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	a := App{
		cfg:     cfg,
		loader:  loader,
		logger:  logger,
		spinner: sp,
	}

	targets := config.ForecastTargets(cfg)
	want := config.NormalizeIndicatorCode(cfg.Forecast.DefaultIndicator)
	for i, t := range targets {
		if t.Code == want {
			a.indicatorIdx = i
		}
	}
	if sc, ok := model.LookupScenario(cfg.Forecast.DefaultScenario); ok {
		a.scenario = sc
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.loader),
		a.spinner.Tick,
	)
}

// loadDataCmd runs the loader off the event loop.
func loadDataCmd(l pipeline.Loader) tea.Cmd {
	return func() tea.Msg {
		r, err := l.Load()
		return dataLoadedMsg{result: r, err: err}
	}
}

func (a *App) recompute() {
	if a.ds == nil {
		return
	}
	a.overview, a.overviewErr = pipeline.BuildOverview(a.ds, a.cfg)
	a.trends = pipeline.BuildTrends(a.ds, a.cfg)
	a.policy = pipeline.BuildPolicy(a.ds, a.cfg)
	a.recomputeForecast()

	for _, ws := range [][]string{a.overview.Warnings, a.trends.Warnings} {
		for _, w := range ws {
			a.logger.Info("view warning", zap.String("detail", w))
		}
	}
}

func (a *App) recomputeForecast() {
	if a.ds == nil {
		return
	}
	code := a.indicator().Code
	a.forecast, a.forecastErr = pipeline.BuildForecast(a.ds, a.cfg, code, a.scenario)
	if a.forecastErr != nil {
		a.logger.Info("forecast unavailable", zap.String("indicator", code), zap.Error(a.forecastErr))
	}
}

func (a App) indicator() config.IndicatorInfo {
	targets := config.ForecastTargets(a.cfg)
	return targets[a.indicatorIdx%len(targets)]
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.picker != nil {
			a.picker = a.picker.WithWidth(min(msg.Width, 60)).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.ready() || a.showHelp || a.picker != nil {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if a.picker != nil {
			return a.updatePicker(msg)
		}

		if !a.loaded {
			return a, nil
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if key == "q" {
			return a, tea.Quit
		}

		if !a.ready() {
			return a, nil
		}

		if a.activeTab == tabForecast {
			switch key {
			case "i":
				a.indicatorIdx = (a.indicatorIdx + 1) % len(config.ForecastTargets(a.cfg))
				a.recomputeForecast()
				return a, nil
			case "s":
				a.scenario = model.Scenarios[(int(a.scenario)+1)%len(model.Scenarios)]
				a.recomputeForecast()
				return a, nil
			case "enter":
				return a.openPicker()
			}
		}

		switch key {
		case "left", "h":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right", "l", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		default:
			if len(msg.Runes) == 1 {
				if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil

	case dataLoadedMsg:
		a.loaded = true
		a.loadErr = msg.err
		if msg.err != nil {
			a.logger.Error("load failed", zap.Error(msg.err))
			return a, nil
		}
		a.loadTime = msg.result.Elapsed
		ds, err := msg.result.Require()
		if errors.Is(err, pipeline.ErrMissingData) {
			a.missing = msg.result.Missing
			a.logger.Info("input tables missing", zap.Strings("paths", a.missing))
			return a, nil
		}
		a.ds = ds
		a.recompute()
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Cursor blinks and other internal messages belong to the picker
	if a.picker != nil {
		return a.updatePicker(msg)
	}

	return a, nil
}

// ready reports whether the tables loaded and the views can render.
func (a App) ready() bool {
	return a.loaded && a.loadErr == nil && a.ds != nil
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.loadErr != nil {
		return a.viewBlocking(fmt.Sprintf("Could not load data: %v", a.loadErr))
	}
	if a.ds == nil {
		return a.viewBlocking(pipeline.MissingDataMessage)
	}

	if a.picker != nil {
		return a.viewPicker()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  fidash needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ fidash"))
	b.WriteString(subtitleStyle.Render(" · Ethiopia Financial Inclusion"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Loading indicator tables..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

// viewBlocking renders a single message in place of every view.
func (a App) viewBlocking(msg string) string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.AtRisk).
		Background(t.Surface).
		Padding(1, 3).
		Width(min(a.width-4, 72))

	msgStyle := lipgloss.NewStyle().Foreground(t.AtRisk).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	body := msgStyle.Render(msg)
	for _, p := range a.missing {
		body += "\n" + dimStyle.Render("  missing: "+p)
	}
	body += "\n\n" + dimStyle.Render("Press q to quit")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.KeyHint).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		name     string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o t f p", "Jump to view"},
			{"← →", "Previous / Next view"},
			{"click", "Select tab"},
		}},
		{"Forecast", []struct{ key, desc string }{
			{"i", "Next indicator"},
			{"s", "Next scenario"},
			{"Enter", "Pick indicator and scenario"},
			{"Esc", "Cancel picker"},
		}},
		{"General", []struct{ key, desc string }{
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(sec.name))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	hints := "[o/t/f/p] views  [?]help  [q]uit"
	if a.activeTab == tabForecast {
		hints = "[i]ndicator  [s]cenario  [enter] pick  [?]help  [q]uit"
	}
	info := fmt.Sprintf("%d obs · loaded in %s", len(a.ds.Observations), a.loadTime.Round(time.Millisecond))
	statusBar := components.RenderStatusBar(w, hints, info)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabTrends:
		content = a.renderTrendsTab(cw)
	case tabForecast:
		content = a.renderForecastTab(cw, contentH)
	case tabPolicy:
		content = a.renderPolicyTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

// errorCard renders a view-level error in place of the view's content.
func errorCard(title string, err error, cw int) string {
	t := theme.Active
	style := lipgloss.NewStyle().Foreground(t.Warning).Background(t.Surface)
	return components.ContentCard(title, style.Render(err.Error()), cw)
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color
// so gaps between cards don't show the terminal's own background.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
