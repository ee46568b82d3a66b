package pipeline

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/selamanalytics/fidash/internal/config"
	"github.com/selamanalytics/fidash/internal/model"
)

// Trace colours used by the trend and forecast charts.
const (
	colorOwnership  = "#2c3e50"
	colorTelebirr   = "#e67e22"
	colorMobilePen  = "#e74c3c"
	colorHistorical = "#000000"
)

// minAlignedYears is the fewest shared years worth correlating.
const minAlignedYears = 3

// BuildOverview assembles the executive overview: four KPI cards and progress
// toward the NFIS goal. Account ownership (actual and forecast) is required;
// the mobile money and Telebirr cards degrade to unavailable with a warning.
func BuildOverview(ds *model.Dataset, cfg config.Config) (model.OverviewView, error) {
	sum := NewSummarizer(ds)
	mode := cfg.Metrics.LatestMode
	year := cfg.Goal.TargetYear

	view := model.OverviewView{
		Title:      outlookTitle(ds),
		Subtitle:   "Tracking Ethiopia's progress toward the National Financial Inclusion Strategy (NFIS) goals.",
		LatestMode: mode,
	}

	own, err := sum.LatestWithMode(config.IndicatorAccountOwnership, mode)
	if err != nil {
		return view, fmt.Errorf("account ownership: %w", err)
	}
	fc, err := sum.ForecastAt(config.IndicatorAccountOwnership, year)
	if err != nil {
		return view, fmt.Errorf("account ownership forecast: %w", err)
	}

	ownKPI := model.KPI{
		Label:     "Account Ownership" + latestYearSuffix(sum, config.IndicatorAccountOwnership),
		Indicator: config.IndicatorAccountOwnership,
		Unit:      model.UnitPercent,
		Value:     own,
		Available: true,
		Caption:   "Base Baseline",
	}
	fcKPI := model.KPI{
		Label:     fmt.Sprintf("Forecast %d", year),
		Indicator: config.IndicatorAccountOwnership,
		Unit:      model.UnitPercent,
		Value:     fc,
		Available: true,
		Delta:     Delta(fc, own),
		HasDelta:  true,
	}
	mmKPI := optionalKPI(sum, &view, config.IndicatorMobileMoney, mode,
		"Mobile Money"+latestYearSuffix(sum, config.IndicatorMobileMoney), model.UnitPercent, "High Growth Segment")
	tbKPI := optionalKPI(sum, &view, config.IndicatorTelebirrUsers, mode,
		"Telebirr Users", model.UnitCount, "Registered Accounts")

	view.KPIs = []model.KPI{ownKPI, fcKPI, mmKPI, tbKPI}

	for _, code := range []string{config.IndicatorAccountOwnership, config.IndicatorMobileMoney, config.IndicatorTelebirrUsers} {
		if note := divergenceNote(sum, cfg, code); note != "" {
			view.Notes = append(view.Notes, note)
		}
	}

	onTrack := fc > cfg.Goal.TargetPct
	view.Goal = model.GoalProgress{
		TargetPct:  cfg.Goal.TargetPct,
		TargetYear: year,
		Current:    own,
		Forecast:   fc,
		Progress:   ProgressToGoal(own, cfg.Goal.TargetPct),
		OnTrack:    onTrack,
		Status:     model.StatusAtRisk,
	}
	if onTrack {
		view.Goal.Status = model.StatusOnTrack
	}

	return view, nil
}

func optionalKPI(sum *Summarizer, view *model.OverviewView, code, mode, label, unit, caption string) model.KPI {
	kpi := model.KPI{Label: label, Indicator: code, Unit: unit, Caption: caption}
	v, err := sum.LatestWithMode(code, mode)
	if err != nil {
		view.Warnings = append(view.Warnings, err.Error())
		return kpi
	}
	kpi.Value = v
	kpi.Available = true
	return kpi
}

// latestYearSuffix renders " (2024)" from the most recent observation.
func latestYearSuffix(sum *Summarizer, code string) string {
	o, err := sum.LatestByDate(code)
	if err != nil {
		return ""
	}
	return fmt.Sprintf(" (%d)", o.Date.Year())
}

// divergenceNote flags indicators whose maximum differs from their most
// recent observation, where the two latest-value readings disagree.
func divergenceNote(sum *Summarizer, cfg config.Config, code string) string {
	maxV, err := sum.MaxValue(code)
	if err != nil {
		return ""
	}
	last, err := sum.LatestByDate(code)
	if err != nil || last.Value == maxV {
		return ""
	}
	label := config.LookupIndicator(cfg, code).Label
	return fmt.Sprintf("%s: highest value %.4g differs from most recent %.4g (%s); showing %s",
		label, maxV, last.Value, last.Date.Format("2006-01-02"), cfg.Metrics.LatestMode)
}

func outlookTitle(ds *model.Dataset) string {
	rows := FilterForecast(ds.Forecasts, config.IndicatorAccountOwnership)
	if len(rows) == 0 {
		return "Financial Inclusion Outlook"
	}
	lo, hi := rows[0].Year, rows[0].Year
	for _, r := range rows[1:] {
		lo = min(lo, r.Year)
		hi = max(hi, r.Year)
	}
	return fmt.Sprintf("Financial Inclusion Outlook (%d-%d)", lo, hi)
}

// BuildTrends assembles the two trend panels. Missing series are dropped
// from their panel and reported as warnings.
func BuildTrends(ds *model.Dataset, cfg config.Config) model.TrendsView {
	view := model.TrendsView{Title: "Market Dynamics & Anomalies"}

	ownership := FilterByIndicator(ds.Observations, config.IndicatorAccountOwnership)
	telebirr := FilterByIndicator(ds.Observations, config.IndicatorTelebirrUsers)
	mobilePen := FilterByIndicatorContains(ds.Observations, config.MobilePenetrationFamily)

	ownSeries := model.Series{
		Name:      "Account Ownership (%)",
		Indicator: config.IndicatorAccountOwnership,
		Unit:      model.UnitPercent,
		Color:     colorOwnership,
		Points:    toSeries(ownership),
	}
	if ownSeries.Empty() {
		view.Warnings = append(view.Warnings,
			fmt.Sprintf("%v: %s", ErrIndicatorNotFound, config.IndicatorAccountOwnership))
	}

	view.Paradox = model.TrendPanel{
		Title:   "The Telebirr Paradox",
		Heading: "The Gap Between Registration and Usage",
		Narrative: "While app registrations (Telebirr) skyrocketed, official World Bank account ownership grew slowly. " +
			"This suggests many users are registered but not 'banked' in the traditional sense.",
		Series: []model.Series{ownSeries},
	}
	if len(telebirr) > 0 {
		view.Paradox.Series = append(view.Paradox.Series, model.Series{
			Name:      "Telebirr Users (Raw Count)",
			Indicator: config.IndicatorTelebirrUsers,
			Unit:      model.UnitCount,
			Color:     colorTelebirr,
			Dashed:    true,
			Secondary: true,
			Points:    toSeries(telebirr),
		})
	} else {
		view.Warnings = append(view.Warnings,
			fmt.Sprintf("%v: %s", ErrIndicatorNotFound, config.IndicatorTelebirrUsers))
	}

	view.Ceiling = model.TrendPanel{
		Title:     "Infrastructure Ceiling",
		Heading:   "The Mobile Ceiling",
		Narrative: "Financial inclusion cannot easily exceed mobile phone penetration. The two metrics track closely.",
		Series:    []model.Series{ownSeries},
	}
	if len(mobilePen) > 0 {
		view.Ceiling.Series = append(view.Ceiling.Series, model.Series{
			Name:   "Mobile Penetration",
			Unit:   model.UnitPercent,
			Color:  colorMobilePen,
			Dashed: true,
			Points: toSeries(mobilePen),
		})
		view.Correlation, view.AlignedYears = yearCorrelation(ownership, mobilePen)
	}

	return view
}

// yearCorrelation computes the Pearson correlation of two indicators over the
// years both were observed. Within a year the row later in the file wins.
func yearCorrelation(a, b []model.Observation) (*float64, int) {
	byYearA := lastByYear(a)
	byYearB := lastByYear(b)

	var years []int
	for y := range byYearA {
		if _, ok := byYearB[y]; ok {
			years = append(years, y)
		}
	}
	sort.Ints(years)
	if len(years) < minAlignedYears {
		return nil, len(years)
	}

	x := make([]float64, len(years))
	y := make([]float64, len(years))
	for i, yr := range years {
		x[i] = byYearA[yr]
		y[i] = byYearB[yr]
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return nil, len(years)
	}
	return &r, len(years)
}

func lastByYear(obs []model.Observation) map[int]float64 {
	m := make(map[int]float64, len(obs))
	for _, o := range obs {
		m[o.Date.Year()] = o.Value
	}
	return m
}

// BuildForecast resolves one indicator under one scenario into a chart-ready
// view with the historical series, the resolved trajectory and the data table.
func BuildForecast(ds *model.Dataset, cfg config.Config, code string, sc model.Scenario) (model.ForecastView, error) {
	code = config.NormalizeIndicatorCode(code)
	info := config.LookupIndicator(cfg, code)

	res, err := Resolve(sc, FilterForecast(ds.Forecasts, code))
	if err != nil {
		if errors.Is(err, ErrEmptySeries) {
			return model.ForecastView{}, fmt.Errorf("%w: no forecast rows for %s", ErrIndicatorNotFound, code)
		}
		return model.ForecastView{}, err
	}

	view := model.ForecastView{
		Title:     "Projection: " + info.Label,
		Indicator: code,
		Label:     info.Label,
		Scenario:  sc,
		Historical: model.Series{
			Name:      "Historical",
			Indicator: code,
			Unit:      info.Unit,
			Color:     colorHistorical,
			Points:    toSeries(FilterByIndicator(ds.Observations, code)),
		},
		Forecast: model.Series{
			Name:      fmt.Sprintf("Forecast (%s)", sc.Label()),
			Indicator: code,
			Unit:      info.Unit,
			Color:     res.Color,
			Dashed:    true,
			Points:    res.Series,
		},
		Upper:       res.Upper,
		Lower:       res.Lower,
		BandVisible: res.BandVisible,
		Band:        res.Band,
		Annotation:  res.Annotation,
		Table:       make([]model.ForecastTableRow, len(res.Rows)),
	}
	if info.Unit == model.UnitPercent {
		view.YMin, view.YMax = 0, 100
	}
	for i, r := range res.Rows {
		view.Table[i] = model.ForecastTableRow{
			Year:        r.Year,
			Base:        r.Value,
			Pessimistic: r.LowerCI,
			Optimistic:  r.UpperCI,
		}
	}
	if sc != model.ScenarioBase {
		view.ScenarioNote = "Optimistic and Pessimistic trajectories are the upper and lower confidence bounds " +
			"of the base forecast, not separately modelled scenarios."
	}

	return view, nil
}
