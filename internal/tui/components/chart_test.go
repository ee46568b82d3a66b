package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/selamanalytics/fidash/internal/model"
	"github.com/selamanalytics/fidash/internal/tui/theme"
)

func yearSeries(start int, values ...float64) []model.SeriesPoint {
	pts := make([]model.SeriesPoint, len(values))
	for i, v := range values {
		pts[i] = model.SeriesPoint{Date: model.YearEnd(start + i), Value: v}
	}
	return pts
}

func TestLineChart_Dimensions(t *testing.T) {
	theme.SetActive("flexoki-dark")

	series := []ChartSeries{
		{Name: "Historical", Color: "#000000", Points: yearSeries(2014, 22, 35, 46)},
		{Name: "Forecast", Color: "#27ae60", Dashed: true, Points: yearSeries(2025, 52, 58, 64.4)},
	}
	opts := ChartOpts{
		Width: 70, Height: 14, YMin: 0, YMax: 100,
		Upper: yearSeries(2025, 55, 63, 70), Lower: yearSeries(2025, 49, 53, 58), BandColor: "#27ae60",
	}

	out := LineChart(series, opts)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 14)
	for i, line := range lines {
		assert.Equal(t, 70, lipgloss.Width(line), "line %d", i)
	}
	assert.Contains(t, out, "●")
	assert.Contains(t, out, "░")
	assert.Contains(t, out, "100")
	assert.Contains(t, out, "2014")
}

func TestLineChart_Empty(t *testing.T) {
	out := LineChart(nil, ChartOpts{Width: 30, Height: 6})
	assert.Contains(t, out, "no data")
}

func TestLineChart_SinglePoint(t *testing.T) {
	out := LineChart([]ChartSeries{{Name: "x", Points: yearSeries(2024, 49)}}, ChartOpts{Width: 40, Height: 8})
	assert.Len(t, strings.Split(out, "\n"), 8)
	assert.Contains(t, out, "●")
}

func TestValueAt(t *testing.T) {
	pts := []model.SeriesPoint{
		{Date: model.YearEnd(2025), Value: 50},
		{Date: model.YearEnd(2027), Value: 60},
	}
	mid := model.YearEnd(2026).Unix()

	v, ok := valueAt(pts, mid)
	assert.True(t, ok)
	assert.InDelta(t, 55, v, 0.1)

	_, ok = valueAt(pts, model.YearEnd(2024).Unix())
	assert.False(t, ok)

	v, ok = valueAt(pts, pts[1].Date.Unix())
	assert.True(t, ok)
	assert.Equal(t, 60.0, v)
}

func TestYearLabels(t *testing.T) {
	out := yearLabels(model.YearEnd(2014).Unix(), model.YearEnd(2027).Unix(), 60)
	assert.Len(t, []rune(out), 60)
	assert.True(t, strings.HasPrefix(out, "2014"))
	assert.True(t, strings.HasSuffix(out, "2027"))
}

func TestFormatChartLabel(t *testing.T) {
	assert.Equal(t, "100", formatChartLabel(100))
	assert.Equal(t, "47.5M", formatChartLabel(47.5e6))
	assert.Equal(t, "2.5", formatChartLabel(2.5))
}

func TestSparkline(t *testing.T) {
	out := Sparkline([]float64{1, 2, 3}, "#ffffff")
	assert.Contains(t, out, "▁")
	assert.Contains(t, out, "█")
	assert.Empty(t, Sparkline(nil, "#ffffff"))
}
