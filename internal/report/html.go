package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/selamanalytics/fidash/internal/cli"
	"github.com/selamanalytics/fidash/internal/model"
)

const (
	chartWidth  = "1100px"
	chartHeight = "520px"
)

// WriteHTML renders the goal gauge, both trend panels and every forecast
// projection onto one echarts page.
func WriteHTML(w io.Writer, r Report) error {
	page := components.NewPage()
	page.PageTitle = pageTitle

	page.AddCharts(GoalGauge(r.Overview))
	page.AddCharts(TrendChart(r.Trends.Paradox), TrendChart(r.Trends.Ceiling))
	for _, fv := range r.Forecasts {
		page.AddCharts(ForecastChart(fv))
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("rendering html report: %w", err)
	}
	return nil
}

func initOpts() charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle: pageTitle,
		Width:     chartWidth,
		Height:    chartHeight,
	})
}

// GoalGauge shows progress toward the NFIS target as a gauge.
func GoalGauge(ov model.OverviewView) *charts.Gauge {
	g := charts.NewGauge()
	g.SetGlobalOptions(
		initOpts(),
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Progress toward %.0f%% Inclusion Goal", ov.Goal.TargetPct),
			Subtitle: fmt.Sprintf("Current: %s | Target: %s | Status: %s",
				cli.FormatPct(ov.Goal.Current), cli.FormatPct(ov.Goal.TargetPct), ov.Goal.Status),
		}),
	)
	g.AddSeries("Progress", []opts.GaugeData{
		{Name: "of goal", Value: round1(ov.Goal.Progress * 100)},
	})
	return g
}

// TrendChart draws one trend panel. Series flagged Secondary go on a second
// y axis, which echarts places on the right, for raw counts.
func TrendChart(p model.TrendPanel) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts(),
		charts.WithTitleOpts(opts.Title{Title: p.Heading, Subtitle: p.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "time"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Ownership %", Type: "value"}),
	)

	secondary := false
	for _, s := range p.Series {
		if s.Secondary {
			secondary = true
		}
	}
	if secondary {
		line.ExtendYAxis(opts.YAxis{Name: "Users (Count)", Type: "value"})
	}

	for _, s := range p.Series {
		seriesOpts := []charts.SeriesOpts{
			charts.WithLineStyleOpts(lineStyle(s.Color, s.Dashed, 3)),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
		}
		if s.Secondary {
			seriesOpts = append(seriesOpts, charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 1}))
		}
		line.AddSeries(s.Name, timeData(s.Points), seriesOpts...)
	}
	return line
}

// ForecastChart draws the historical series, the scenario trajectory and,
// for the base case, the shaded confidence interval.
func ForecastChart(fv model.ForecastView) *charts.Line {
	yAxis := opts.YAxis{Name: "Percentage (%)", Type: "value"}
	if fv.YMax > fv.YMin {
		yAxis.Min, yAxis.Max = fv.YMin, fv.YMax
	}

	subtitle := fmt.Sprintf("%s | final %s (%d)", fv.Scenario.Label(),
		cli.FormatValue(fv.Annotation.Value, fv.Forecast.Unit), fv.Annotation.Date.Year())

	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts(),
		charts.WithTitleOpts(opts.Title{Title: fv.Title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "time"}),
		charts.WithYAxisOpts(yAxis),
	)

	line.AddSeries(fv.Historical.Name, timeData(fv.Historical.Points),
		charts.WithLineStyleOpts(lineStyle(fv.Historical.Color, false, 3)),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: fv.Historical.Color}),
	)
	line.AddSeries(fv.Forecast.Name, timeData(fv.Forecast.Points),
		charts.WithLineStyleOpts(lineStyle(fv.Forecast.Color, true, 3)),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: fv.Forecast.Color}),
		charts.WithMarkPointNameCoordItemOpts(opts.MarkPointNameCoordItem{
			Name:       "final",
			Coordinate: []interface{}{isoDate(fv.Annotation), round1(fv.Annotation.Value)},
		}),
	)

	if fv.BandVisible {
		addBand(line, fv)
	}
	return line
}

// bandStack is the stack key shared by the two band series.
const bandStack = "ci"

// addBand shades the area between the bounds: an invisible Lower CI series
// sets the floor and the Upper-Lower width is stacked on top of it.
func addBand(line *charts.Line, fv model.ForecastView) {
	hidden := opts.LineStyle{Color: "transparent"}
	stacked := opts.LineChart{Stack: bandStack, ShowSymbol: opts.Bool(false)}

	line.AddSeries("Lower CI", timeData(fv.Lower),
		charts.WithLineChartOpts(stacked),
		charts.WithLineStyleOpts(hidden),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: fv.Forecast.Color}),
	)
	line.AddSeries("Confidence Interval", timeData(bandWidth(fv.Upper, fv.Lower)),
		charts.WithLineChartOpts(stacked),
		charts.WithLineStyleOpts(hidden),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: fv.Forecast.Color}),
		charts.WithAreaStyleOpts(opts.AreaStyle{Color: fv.Forecast.Color, Opacity: 0.2}),
	)
}

// bandWidth pairs bounds by position; both come from the same forecast rows.
func bandWidth(upper, lower []model.SeriesPoint) []model.SeriesPoint {
	n := min(len(upper), len(lower))
	out := make([]model.SeriesPoint, n)
	for i := 0; i < n; i++ {
		out[i] = model.SeriesPoint{Date: upper[i].Date, Value: upper[i].Value - lower[i].Value}
	}
	return out
}

func lineStyle(color string, dashed bool, width float32) opts.LineStyle {
	ls := opts.LineStyle{Color: color, Width: width}
	if dashed {
		ls.Type = "dashed"
	}
	return ls
}

// timeData converts points to [date, value] pairs for a time axis.
func timeData(points []model.SeriesPoint) []opts.LineData {
	data := make([]opts.LineData, 0, len(points))
	for _, p := range points {
		data = append(data, opts.LineData{Value: []interface{}{isoDate(p), p.Value}})
	}
	return data
}

func isoDate(p model.SeriesPoint) string {
	return cli.FormatDate(p.Date)
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
