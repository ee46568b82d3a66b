package tui

import (
	"github.com/selamanalytics/fidash/internal/config"
	"github.com/selamanalytics/fidash/internal/model"
	"github.com/selamanalytics/fidash/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// pickerValues holds the form fields for the forecast picker.
type pickerValues struct {
	indicator string
	scenario  string
}

func newForecastPicker(cfg config.Config, vals *pickerValues) *huh.Form {
	indicatorOpts := make([]huh.Option[string], 0)
	for _, t := range config.ForecastTargets(cfg) {
		indicatorOpts = append(indicatorOpts, huh.NewOption(t.Label, t.Code))
	}
	scenarioOpts := make([]huh.Option[string], 0, len(model.Scenarios))
	for _, sc := range model.Scenarios {
		scenarioOpts = append(scenarioOpts, huh.NewOption(sc.Label(), sc.Key()))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select Indicator to Forecast").
				Options(indicatorOpts...).
				Value(&vals.indicator),
			huh.NewSelect[string]().
				Title("Select Scenario").
				Options(scenarioOpts...).
				Value(&vals.scenario),
		),
	).WithShowHelp(true)
}

func (a App) openPicker() (tea.Model, tea.Cmd) {
	// Heap-allocated: App is copied on every Update, the form must keep
	// writing to the same values.
	a.pickerVals = &pickerValues{
		indicator: a.indicator().Code,
		scenario:  a.scenario.Key(),
	}
	a.picker = newForecastPicker(a.cfg, a.pickerVals)
	if a.width > 0 {
		a.picker = a.picker.WithWidth(min(a.width, 60)).WithHeight(a.height)
	}
	return a, a.picker.Init()
}

func (a App) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		a.picker = nil
		return a, nil
	}

	form, cmd := a.picker.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.picker = f
	}

	switch a.picker.State {
	case huh.StateCompleted:
		a.applyPicker(*a.pickerVals)
		a.picker = nil
		return a, nil
	case huh.StateAborted:
		a.picker = nil
		return a, nil
	}

	return a, cmd
}

// applyPicker sets the forecast selections from picked values. Unknown
// values leave the current selection in place.
func (a *App) applyPicker(v pickerValues) {
	for i, t := range config.ForecastTargets(a.cfg) {
		if t.Code == v.indicator {
			a.indicatorIdx = i
		}
	}
	if sc, ok := model.LookupScenario(v.scenario); ok {
		a.scenario = sc
	}
	a.recomputeForecast()
}

func (a App) viewPicker() string {
	t := theme.Active
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(a.picker.View()),
		lipgloss.WithWhitespaceBackground(t.Background))
}
