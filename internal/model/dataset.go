package model

import "time"

// RecordTypeObservation marks a historical row as a true observation.
// Rows carrying any other record type are dropped at load time.
const RecordTypeObservation = "observation"

// Observation is a single historical measurement of an indicator.
type Observation struct {
	Date          time.Time `json:"date" yaml:"date"`
	IndicatorCode string    `json:"indicator_code" yaml:"indicator_code"`
	RecordType    string    `json:"record_type" yaml:"record_type"`
	Value         float64   `json:"value" yaml:"value"`
}

// ForecastPoint is one pre-computed forecast row for an indicator and year.
// LowerCI <= Value <= UpperCI is expected but never enforced.
type ForecastPoint struct {
	Indicator string  `json:"indicator" yaml:"indicator"`
	Year      int     `json:"year" yaml:"year"`
	Value     float64 `json:"value" yaml:"value"`
	LowerCI   float64 `json:"lower_ci" yaml:"lower_ci"`
	UpperCI   float64 `json:"upper_ci" yaml:"upper_ci"`
}

// Dataset holds both loaded tables. It is read-only once loaded; every
// derived view borrows from it.
type Dataset struct {
	Observations   []Observation
	Forecasts      []ForecastPoint
	HistoricalPath string
	ForecastPath   string
	LoadedAt       time.Time
}

// SeriesPoint is one (date, value) pair handed to a chart.
type SeriesPoint struct {
	Date  time.Time `json:"date" yaml:"date"`
	Value float64   `json:"value" yaml:"value"`
}

// YearEnd returns December 31st of year, used to place forecast years on the
// same date axis as historical observations.
func YearEnd(year int) time.Time {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}
