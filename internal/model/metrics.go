package model

// Units an indicator can be measured in.
const (
	UnitPercent = "percent"
	UnitCount   = "count"
)

// Goal status labels.
const (
	StatusOnTrack = "On Track"
	StatusAtRisk  = "At Risk"
)

// KPI is one headline metric card on the overview.
type KPI struct {
	Label     string  `json:"label" yaml:"label"`
	Indicator string  `json:"indicator" yaml:"indicator"`
	Unit      string  `json:"unit" yaml:"unit"`
	Value     float64 `json:"value" yaml:"value"`
	Available bool    `json:"available" yaml:"available"`

	// Delta is only meaningful when HasDelta is set (forecast vs. latest actual).
	Delta    float64 `json:"delta,omitempty" yaml:"delta,omitempty"`
	HasDelta bool    `json:"has_delta,omitempty" yaml:"has_delta,omitempty"`
	Caption  string  `json:"caption,omitempty" yaml:"caption,omitempty"`
}

// GoalProgress tracks the latest actual against the NFIS target.
type GoalProgress struct {
	TargetPct  float64 `json:"target_pct" yaml:"target_pct"`
	TargetYear int     `json:"target_year" yaml:"target_year"`
	Current    float64 `json:"current" yaml:"current"`
	Forecast   float64 `json:"forecast" yaml:"forecast"`
	Progress   float64 `json:"progress" yaml:"progress"` // 0-1
	Status     string  `json:"status" yaml:"status"`
	OnTrack    bool    `json:"on_track" yaml:"on_track"`
}

// OverviewView is the render model for the executive overview.
type OverviewView struct {
	Title      string       `json:"title" yaml:"title"`
	Subtitle   string       `json:"subtitle" yaml:"subtitle"`
	KPIs       []KPI        `json:"kpis" yaml:"kpis"`
	Goal       GoalProgress `json:"goal" yaml:"goal"`
	LatestMode string       `json:"latest_mode" yaml:"latest_mode"`
	Notes      []string     `json:"notes,omitempty" yaml:"notes,omitempty"`
	Warnings   []string     `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Series is a named, styled sequence of points for one chart trace.
type Series struct {
	Name      string        `json:"name" yaml:"name"`
	Indicator string        `json:"indicator,omitempty" yaml:"indicator,omitempty"`
	Unit      string        `json:"unit" yaml:"unit"`
	Color     string        `json:"color" yaml:"color"`
	Dashed    bool          `json:"dashed,omitempty" yaml:"dashed,omitempty"`
	Secondary bool          `json:"secondary_axis,omitempty" yaml:"secondary_axis,omitempty"`
	Points    []SeriesPoint `json:"points" yaml:"points"`
}

// Empty reports whether the series has nothing to draw.
func (s Series) Empty() bool { return len(s.Points) == 0 }

// TrendPanel is one chart of the trend analysis view.
type TrendPanel struct {
	Title     string   `json:"title" yaml:"title"`
	Heading   string   `json:"heading" yaml:"heading"`
	Narrative string   `json:"narrative" yaml:"narrative"`
	Series    []Series `json:"series" yaml:"series"`
}

// TrendsView is the render model for the trend analysis view.
type TrendsView struct {
	Title    string     `json:"title" yaml:"title"`
	Paradox  TrendPanel `json:"telebirr_paradox" yaml:"telebirr_paradox"`
	Ceiling  TrendPanel `json:"mobile_ceiling" yaml:"mobile_ceiling"`
	Warnings []string   `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Correlation between ownership and mobile penetration over years where
	// both were observed; nil when fewer than three such years exist.
	Correlation  *float64 `json:"correlation,omitempty" yaml:"correlation,omitempty"`
	AlignedYears int      `json:"aligned_years" yaml:"aligned_years"`
}

// ForecastTableRow is one line of the forecast data table.
type ForecastTableRow struct {
	Year        int     `json:"year" yaml:"year"`
	Base        float64 `json:"base" yaml:"base"`
	Pessimistic float64 `json:"pessimistic" yaml:"pessimistic"`
	Optimistic  float64 `json:"optimistic" yaml:"optimistic"`
}

// ForecastView is the render model for the forecast engine.
type ForecastView struct {
	Title     string   `json:"title" yaml:"title"`
	Indicator string   `json:"indicator" yaml:"indicator"`
	Label     string   `json:"label" yaml:"label"`
	Scenario  Scenario `json:"scenario" yaml:"scenario"`
	YMin      float64  `json:"y_min" yaml:"y_min"`
	YMax      float64  `json:"y_max" yaml:"y_max"`

	Historical Series `json:"historical" yaml:"historical"`
	Forecast   Series `json:"forecast" yaml:"forecast"`

	Upper       []SeriesPoint `json:"upper" yaml:"upper"`
	Lower       []SeriesPoint `json:"lower" yaml:"lower"`
	BandVisible bool          `json:"band_visible" yaml:"band_visible"`
	Band        []SeriesPoint `json:"band,omitempty" yaml:"band,omitempty"`
	Annotation  SeriesPoint   `json:"annotation" yaml:"annotation"`

	Table        []ForecastTableRow `json:"table" yaml:"table"`
	ScenarioNote string             `json:"scenario_note,omitempty" yaml:"scenario_note,omitempty"`
}

// Insight is one numbered policy recommendation.
type Insight struct {
	Title   string   `json:"title" yaml:"title"`
	Body    string   `json:"body" yaml:"body"`
	Bullets []string `json:"bullets,omitempty" yaml:"bullets,omitempty"`
}

// PolicyView is the render model for the policy insights page.
type PolicyView struct {
	Title    string    `json:"title" yaml:"title"`
	Insights []Insight `json:"insights" yaml:"insights"`
	Sources  []string  `json:"sources" yaml:"sources"`
	Footer   string    `json:"footer" yaml:"footer"`
}
