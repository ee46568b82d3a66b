package pipeline

import (
	"errors"
	"fmt"
	"sort"

	"github.com/selamanalytics/fidash/internal/model"
)

var (
	// ErrEmptySeries is returned when there are no forecast rows to resolve.
	ErrEmptySeries = errors.New("no forecast rows to resolve")
	// ErrUnknownScenario is returned for a scenario outside the known three.
	ErrUnknownScenario = errors.New("unknown scenario")
)

// Resolution is a scenario applied to one indicator's forecast rows.
type Resolution struct {
	Scenario model.Scenario

	// Rows are the input rows ordered by ascending year.
	Rows []model.ForecastPoint

	// Series is the headline trajectory for the scenario.
	Series []model.SeriesPoint
	Upper  []model.SeriesPoint
	Lower  []model.SeriesPoint
	Color  string

	// Band is the closed confidence polygon, filled only when BandVisible.
	BandVisible bool
	Band        []model.SeriesPoint

	// Annotation is the final point of Series.
	Annotation model.SeriesPoint
}

// ParseScenario accepts a full scenario label or its short key.
func ParseScenario(s string) (model.Scenario, error) {
	sc, ok := model.LookupScenario(s)
	if !ok {
		return 0, fmt.Errorf("%w %q (want base, optimistic or pessimistic)", ErrUnknownScenario, s)
	}
	return sc, nil
}

// scenarioColumn picks the forecast column drawn as the headline series.
// Optimistic and Pessimistic reuse the confidence bounds as trajectories.
func scenarioColumn(sc model.Scenario) (col func(model.ForecastPoint) float64, color string, band bool, ok bool) {
	switch sc {
	case model.ScenarioBase:
		return func(p model.ForecastPoint) float64 { return p.Value }, model.ColorBase, true, true
	case model.ScenarioOptimistic:
		return func(p model.ForecastPoint) float64 { return p.UpperCI }, model.ColorOptimistic, false, true
	case model.ScenarioPessimistic:
		return func(p model.ForecastPoint) float64 { return p.LowerCI }, model.ColorPessimistic, false, true
	}
	return nil, "", false, false
}

// Resolve maps a scenario onto forecast rows. Each year is placed at its
// December 31st so it shares the historical date axis. The input slice is
// not modified.
func Resolve(sc model.Scenario, rows []model.ForecastPoint) (Resolution, error) {
	col, color, band, ok := scenarioColumn(sc)
	if !ok {
		return Resolution{}, fmt.Errorf("%w %d", ErrUnknownScenario, int(sc))
	}
	if len(rows) == 0 {
		return Resolution{}, ErrEmptySeries
	}

	sorted := make([]model.ForecastPoint, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Year < sorted[j].Year
	})

	res := Resolution{
		Scenario:    sc,
		Rows:        sorted,
		Series:      make([]model.SeriesPoint, len(sorted)),
		Upper:       make([]model.SeriesPoint, len(sorted)),
		Lower:       make([]model.SeriesPoint, len(sorted)),
		Color:       color,
		BandVisible: band,
	}
	for i, p := range sorted {
		date := model.YearEnd(p.Year)
		res.Series[i] = model.SeriesPoint{Date: date, Value: col(p)}
		res.Upper[i] = model.SeriesPoint{Date: date, Value: p.UpperCI}
		res.Lower[i] = model.SeriesPoint{Date: date, Value: p.LowerCI}
	}
	if band {
		res.Band = BandPolygon(res.Upper, res.Lower)
	}
	res.Annotation = res.Series[len(res.Series)-1]

	return res, nil
}

// BandPolygon joins the upper edge walked forward with the lower edge walked
// backward, producing a closed, non-self-intersecting outline for area fill.
func BandPolygon(upper, lower []model.SeriesPoint) []model.SeriesPoint {
	poly := make([]model.SeriesPoint, 0, len(upper)+len(lower))
	poly = append(poly, upper...)
	for i := len(lower) - 1; i >= 0; i-- {
		poly = append(poly, lower[i])
	}
	return poly
}
