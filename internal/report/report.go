// Package report exports the dashboard views as a standalone HTML page of
// interactive charts and as a printable PDF brief.
package report

import (
	"time"

	"github.com/selamanalytics/fidash/internal/model"
)

// Report bundles every view for export.
type Report struct {
	Overview    model.OverviewView
	Trends      model.TrendsView
	Forecasts   []model.ForecastView
	Policy      model.PolicyView
	GeneratedAt time.Time
}

const pageTitle = "Ethiopia Financial Inclusion Forecast"
