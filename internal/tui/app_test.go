package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selamanalytics/fidash/internal/config"
	"github.com/selamanalytics/fidash/internal/model"
	"github.com/selamanalytics/fidash/internal/pipeline"
	"github.com/selamanalytics/fidash/internal/tui/components"
)

type staticLoader struct{ result *pipeline.LoadResult }

func (l staticLoader) Load() (*pipeline.LoadResult, error) { return l.result, nil }

func testDataset() *model.Dataset {
	obs := func(code string, year int, v float64) model.Observation {
		return model.Observation{
			Date:          time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC),
			IndicatorCode: code,
			RecordType:    model.RecordTypeObservation,
			Value:         v,
		}
	}
	return &model.Dataset{
		Observations: []model.Observation{
			obs(config.IndicatorAccountOwnership, 2014, 22),
			obs(config.IndicatorAccountOwnership, 2017, 35),
			obs(config.IndicatorAccountOwnership, 2021, 46),
			obs(config.IndicatorAccountOwnership, 2024, 49),
			obs(config.IndicatorMobileMoney, 2024, 9.45),
			obs(config.IndicatorTelebirrUsers, 2022, 20e6),
			obs(config.IndicatorTelebirrUsers, 2024, 47.5e6),
		},
		Forecasts: []model.ForecastPoint{
			{Indicator: config.IndicatorAccountOwnership, Year: 2025, Value: 52, LowerCI: 49, UpperCI: 55},
			{Indicator: config.IndicatorAccountOwnership, Year: 2026, Value: 58, LowerCI: 53, UpperCI: 63},
			{Indicator: config.IndicatorAccountOwnership, Year: 2027, Value: 64.4, LowerCI: 58, UpperCI: 70},
			{Indicator: config.IndicatorMobileMoney, Year: 2025, Value: 12, LowerCI: 10, UpperCI: 14},
			{Indicator: config.IndicatorMobileMoney, Year: 2027, Value: 18, LowerCI: 14, UpperCI: 22},
		},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, a App, msgs ...tea.Msg) App {
	t.Helper()
	for _, msg := range msgs {
		m, _ := a.Update(msg)
		var ok bool
		a, ok = m.(App)
		require.True(t, ok)
	}
	return a
}

func loadedApp(t *testing.T) App {
	t.Helper()
	result := &pipeline.LoadResult{Data: testDataset(), Elapsed: 3 * time.Millisecond}
	a := NewApp(config.DefaultConfig(), staticLoader{result}, nil)
	return send(t, a,
		tea.WindowSizeMsg{Width: 120, Height: 50},
		dataLoadedMsg{result: result},
	)
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0

		for i, tab := range components.Tabs {
			w := len(tab.Name) + 2 // horizontal padding in tab renderer
			x := pos + w/2
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w + 1 // separator
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Fatalf("x past the last tab -> %d, want -1", got)
		}
	}
}

func TestTabBarWidthMatchesHitboxes(t *testing.T) {
	total := len(components.Tabs) - 1
	for _, tab := range components.Tabs {
		total += components.TabVisualWidth(tab)
	}
	bar := components.RenderTabBar(0, total)
	assert.Equal(t, total, lipgloss.Width(bar))
}

func TestLoadingThenLoaded(t *testing.T) {
	a := NewApp(config.DefaultConfig(), staticLoader{}, nil)
	a = send(t, a, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Contains(t, a.View(), "Loading indicator tables")

	a = loadedApp(t)
	assert.True(t, a.ready())
	require.NoError(t, a.overviewErr)
	assert.Contains(t, a.View(), "Progress toward 60% Inclusion Goal")
}

func TestMissingDataBlocksEveryView(t *testing.T) {
	result := &pipeline.LoadResult{Missing: []string{"data/processed/forecast_results.csv"}}
	a := NewApp(config.DefaultConfig(), staticLoader{result}, nil)
	a = send(t, a, tea.WindowSizeMsg{Width: 100, Height: 30}, dataLoadedMsg{result: result})

	for _, k := range []string{"o", "t", "f", "p", "right"} {
		a = send(t, a, key(k))
		out := a.View()
		assert.Contains(t, out, "Data missing!")
		assert.NotContains(t, out, "Inclusion Goal")
	}
}

func TestTabSwitching(t *testing.T) {
	a := loadedApp(t)
	assert.Equal(t, tabOverview, a.activeTab)

	a = send(t, a, key("t"))
	assert.Equal(t, tabTrends, a.activeTab)
	assert.Contains(t, a.View(), "The Gap Between Registration and Usage")

	a = send(t, a, key("p"))
	assert.Equal(t, tabPolicy, a.activeTab)

	a = send(t, a, key("right"))
	assert.Equal(t, tabOverview, a.activeTab)

	a = send(t, a, key("left"))
	assert.Equal(t, tabPolicy, a.activeTab)

	a = send(t, a, key("f"))
	assert.Equal(t, tabForecast, a.activeTab)
	assert.Contains(t, a.View(), "Forecast Data")
}

func TestForecastSelectionKeys(t *testing.T) {
	a := send(t, loadedApp(t), key("f"))
	require.NoError(t, a.forecastErr)
	assert.Equal(t, config.IndicatorAccountOwnership, a.forecast.Indicator)
	assert.True(t, a.forecast.BandVisible)

	a = send(t, a, key("s"))
	assert.Equal(t, model.ScenarioOptimistic, a.scenario)
	assert.False(t, a.forecast.BandVisible)
	assert.Equal(t, 70.0, a.forecast.Annotation.Value)

	a = send(t, a, key("i"))
	assert.Equal(t, config.IndicatorMobileMoney, a.forecast.Indicator)
	assert.Equal(t, 22.0, a.forecast.Annotation.Value)

	// Selection keys only act on the forecast tab
	a = send(t, a, key("o"), key("s"))
	assert.Equal(t, model.ScenarioOptimistic, a.scenario)
}

func TestPicker(t *testing.T) {
	a := send(t, loadedApp(t), key("f"), key("enter"))
	require.NotNil(t, a.picker)
	require.NotNil(t, a.pickerVals)
	assert.Equal(t, config.IndicatorAccountOwnership, a.pickerVals.indicator)
	assert.Equal(t, "base", a.pickerVals.scenario)

	a = send(t, a, key("esc"))
	assert.Nil(t, a.picker)

	a.applyPicker(pickerValues{indicator: config.IndicatorMobileMoney, scenario: "pessimistic"})
	assert.Equal(t, config.IndicatorMobileMoney, a.forecast.Indicator)
	assert.Equal(t, model.ScenarioPessimistic, a.forecast.Scenario)
	assert.Equal(t, 14.0, a.forecast.Annotation.Value)

	a.applyPicker(pickerValues{indicator: "NOPE", scenario: "nope"})
	assert.Equal(t, config.IndicatorMobileMoney, a.forecast.Indicator)
}

func TestHelpToggle(t *testing.T) {
	a := send(t, loadedApp(t), key("?"))
	assert.True(t, a.showHelp)
	assert.Contains(t, a.View(), "Keyboard Shortcuts")

	a = send(t, a, key("t"))
	assert.False(t, a.showHelp)
	assert.Equal(t, tabOverview, a.activeTab)
}

func TestNewApp_UsesConfiguredDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Forecast.DefaultIndicator = "acc_mm_account"
	cfg.Forecast.DefaultScenario = "Pessimistic"

	a := NewApp(cfg, staticLoader{}, nil)
	assert.Equal(t, config.IndicatorMobileMoney, a.indicator().Code)
	assert.Equal(t, model.ScenarioPessimistic, a.scenario)
}

func TestViewTooNarrow(t *testing.T) {
	a := send(t, loadedApp(t), tea.WindowSizeMsg{Width: 40, Height: 20})
	assert.Contains(t, a.View(), "Terminal too narrow")
}

func TestTrendsShortTerminalUsesSparklines(t *testing.T) {
	a := send(t, loadedApp(t), tea.WindowSizeMsg{Width: 100, Height: 30}, key("t"))
	out := a.View()
	assert.Contains(t, out, "Telebirr Users (Raw Count)")
	assert.Contains(t, out, "▁")
	assert.NotContains(t, out, "●")
}
