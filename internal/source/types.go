package source

import "github.com/selamanalytics/fidash/internal/model"

// Conventional locations of the two processed tables, relative to the data root.
const (
	HistoricalFile = "data/processed/ethiopia_fi_enriched.csv"
	ForecastFile   = "data/processed/forecast_results.csv"
)

// Paths locates the historical and forecast tables.
type Paths struct {
	Historical string
	Forecast   string
}

// ObservationResult holds the output of parsing the historical table.
type ObservationResult struct {
	Observations []model.Observation
	OtherRecords int // rows dropped because record_type != observation
	ParseErrors  int // observation rows with an unreadable date or value
}

// ForecastResult holds the output of parsing the forecast table.
type ForecastResult struct {
	Points      []model.ForecastPoint
	ParseErrors int
}
