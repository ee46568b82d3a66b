package pipeline

import (
	"strings"
	"time"

	"github.com/selamanalytics/fidash/internal/model"
)

// FilterByIndicator returns the observations whose code equals code exactly,
// in file order. The result is never nil.
func FilterByIndicator(obs []model.Observation, code string) []model.Observation {
	result := make([]model.Observation, 0)
	for _, o := range obs {
		if o.IndicatorCode == code {
			result = append(result, o)
		}
	}
	return result
}

// FilterByIndicatorContains returns observations whose code contains substr,
// ignoring case. Used for indicator families such as MOBILE_PEN whose exact
// code varies.
func FilterByIndicatorContains(obs []model.Observation, substr string) []model.Observation {
	result := make([]model.Observation, 0)
	for _, o := range obs {
		if containsIgnoreCase(o.IndicatorCode, substr) {
			result = append(result, o)
		}
	}
	return result
}

// FilterByDateRange keeps observations dated in [since, until). A zero bound
// is open.
func FilterByDateRange(obs []model.Observation, since, until time.Time) []model.Observation {
	result := make([]model.Observation, 0, len(obs))
	for _, o := range obs {
		if !since.IsZero() && o.Date.Before(since) {
			continue
		}
		if !until.IsZero() && !o.Date.Before(until) {
			continue
		}
		result = append(result, o)
	}
	return result
}

// FilterForecast returns the forecast rows for indicator, in file order.
func FilterForecast(points []model.ForecastPoint, indicator string) []model.ForecastPoint {
	result := make([]model.ForecastPoint, 0)
	for _, p := range points {
		if p.Indicator == indicator {
			result = append(result, p)
		}
	}
	return result
}

// FilterForecastYear returns the forecast rows matching both indicator and year.
func FilterForecastYear(points []model.ForecastPoint, indicator string, year int) []model.ForecastPoint {
	result := make([]model.ForecastPoint, 0)
	for _, p := range points {
		if p.Indicator == indicator && p.Year == year {
			result = append(result, p)
		}
	}
	return result
}

// IndicatorCodes lists the distinct codes in order of first appearance.
func IndicatorCodes(obs []model.Observation) []string {
	seen := make(map[string]struct{})
	var codes []string
	for _, o := range obs {
		if _, ok := seen[o.IndicatorCode]; ok {
			continue
		}
		seen[o.IndicatorCode] = struct{}{}
		codes = append(codes, o.IndicatorCode)
	}
	return codes
}

// toSeries converts observations to chart points.
func toSeries(obs []model.Observation) []model.SeriesPoint {
	points := make([]model.SeriesPoint, len(obs))
	for i, o := range obs {
		points[i] = model.SeriesPoint{Date: o.Date, Value: o.Value}
	}
	return points
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
