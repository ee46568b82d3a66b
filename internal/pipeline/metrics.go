package pipeline

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/selamanalytics/fidash/internal/config"
	"github.com/selamanalytics/fidash/internal/model"
)

var (
	// ErrIndicatorNotFound is returned when an indicator has no matching rows.
	ErrIndicatorNotFound = errors.New("indicator not found")
	// ErrAmbiguousForecast is returned when more than one forecast row
	// matches an (indicator, year) pair.
	ErrAmbiguousForecast = errors.New("ambiguous forecast")
)

// Summarizer computes headline scalars over a loaded dataset.
type Summarizer struct {
	ds *model.Dataset
}

// NewSummarizer returns a Summarizer borrowing ds.
func NewSummarizer(ds *model.Dataset) *Summarizer {
	return &Summarizer{ds: ds}
}

// MaxValue returns the largest observed value for code.
func (s *Summarizer) MaxValue(code string) (float64, error) {
	rows := FilterByIndicator(s.ds.Observations, code)
	if len(rows) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrIndicatorNotFound, code)
	}
	values := make([]float64, len(rows))
	for i, o := range rows {
		values[i] = o.Value
	}
	return floats.Max(values), nil
}

// LatestByDate returns the most recent observation for code. On equal dates
// the row later in the file wins.
func (s *Summarizer) LatestByDate(code string) (model.Observation, error) {
	rows := FilterByIndicator(s.ds.Observations, code)
	if len(rows) == 0 {
		return model.Observation{}, fmt.Errorf("%w: %s", ErrIndicatorNotFound, code)
	}
	latest := rows[0]
	for _, o := range rows[1:] {
		if !o.Date.Before(latest.Date) {
			latest = o
		}
	}
	return latest, nil
}

// Latest returns the headline "latest actual" for code, which is the maximum
// observed value. This matches the most recent value only while the series
// never declines; LatestByDate gives the strict reading.
func (s *Summarizer) Latest(code string) (float64, error) {
	return s.MaxValue(code)
}

// LatestWithMode dispatches to Latest or LatestByDate per config.LatestMode*.
func (s *Summarizer) LatestWithMode(code, mode string) (float64, error) {
	if mode == config.LatestModeDate {
		o, err := s.LatestByDate(code)
		return o.Value, err
	}
	return s.Latest(code)
}

// ForecastAt returns the base forecast value for (code, year). Exactly one
// row must match.
func (s *Summarizer) ForecastAt(code string, year int) (float64, error) {
	rows := FilterForecastYear(s.ds.Forecasts, code, year)
	switch len(rows) {
	case 0:
		return 0, fmt.Errorf("%w: no %d forecast for %s", ErrIndicatorNotFound, year, code)
	case 1:
		return rows[0].Value, nil
	default:
		return 0, fmt.Errorf("%w: %d rows for %s in %d", ErrAmbiguousForecast, len(rows), code, year)
	}
}

// ProgressToGoal returns current/goal clamped to [0, 1]. A non-positive goal
// yields 0.
func ProgressToGoal(current, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	p := current / goal
	if p < 0 || math.IsNaN(p) {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Delta is the signed difference between a forecast and its baseline.
func Delta(forecast, baseline float64) float64 {
	return forecast - baseline
}
