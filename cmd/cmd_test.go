package cmd

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selamanalytics/fidash/internal/config"
	"github.com/selamanalytics/fidash/internal/model"
	"github.com/selamanalytics/fidash/internal/pipeline"
)

func TestWriteStructured(t *testing.T) {
	kpi := model.KPI{Label: "Account Ownership", Unit: model.UnitPercent, Value: 49, Available: true}

	var buf bytes.Buffer
	ok, err := writeStructured(&buf, formatJSON, kpi)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, buf.String(), `"label": "Account Ownership"`)
	assert.Contains(t, buf.String(), `"value": 49`)

	buf.Reset()
	ok, err = writeStructured(&buf, formatYAML, kpi)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, buf.String(), "label: Account Ownership")

	buf.Reset()
	ok, err = writeStructured(&buf, formatTable, kpi)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, buf.Len())
}

func TestWriteStructured_ScenarioAsKey(t *testing.T) {
	var buf bytes.Buffer
	_, err := writeStructured(&buf, formatJSON, model.ForecastView{Scenario: model.ScenarioPessimistic})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"scenario": "pessimistic"`)
}

func TestValidateFormat(t *testing.T) {
	defer func(prev string) { flagFormat = prev }(flagFormat)

	for _, f := range []string{formatTable, formatJSON, formatYAML} {
		flagFormat = f
		assert.NoError(t, validateFormat())
	}
	flagFormat = "csv"
	assert.Error(t, validateFormat())
}

func TestSelection(t *testing.T) {
	cfg := config.DefaultConfig()

	code, sc, err := selection(cfg, "", "")
	require.NoError(t, err)
	assert.Equal(t, config.IndicatorAccountOwnership, code)
	assert.Equal(t, model.ScenarioBase, sc)

	code, sc, err = selection(cfg, " acc_mm_account ", "Pessimistic")
	require.NoError(t, err)
	assert.Equal(t, config.IndicatorMobileMoney, code)
	assert.Equal(t, model.ScenarioPessimistic, sc)

	_, _, err = selection(cfg, "USG_TELEBIRR_USERS", "")
	assert.Error(t, err)

	_, _, err = selection(cfg, "", "worst")
	assert.ErrorIs(t, err, pipeline.ErrUnknownScenario)
}

func TestParseWindow(t *testing.T) {
	from, to, err := parseWindow("2017", "2024-06-30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), to)

	from, to, err = parseWindow("", "")
	require.NoError(t, err)
	assert.True(t, from.IsZero())
	assert.True(t, to.IsZero())

	_, _, err = parseWindow("2024", "2020")
	assert.Error(t, err)

	_, _, err = parseWindow("someday", "")
	assert.Error(t, err)
}

func TestSetupValues_Apply(t *testing.T) {
	cfg := config.DefaultConfig()
	v := newSetupValues(cfg)
	assert.Equal(t, "60", v.targetPct)
	assert.Equal(t, "2027", v.targetYear)

	v.dataDir = "  /srv/fi  "
	v.targetPct = "70.5"
	v.targetYear = "2030"
	v.scenario = "optimistic"
	v.theme = "tokyo-night"
	require.NoError(t, v.apply(&cfg))

	assert.Equal(t, "/srv/fi", cfg.Data.Dir)
	assert.Equal(t, 70.5, cfg.Goal.TargetPct)
	assert.Equal(t, 2030, cfg.Goal.TargetYear)
	assert.Equal(t, "optimistic", cfg.Forecast.DefaultScenario)
	assert.Equal(t, "tokyo-night", cfg.Appearance.Theme)
}

func TestSetupValues_ApplyRejectsBadInput(t *testing.T) {
	cfg := config.DefaultConfig()

	v := newSetupValues(cfg)
	v.targetPct = "120"
	assert.Error(t, v.apply(&cfg))

	v = newSetupValues(cfg)
	v.targetYear = "next"
	assert.Error(t, v.apply(&cfg))

	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestRenderForecast(t *testing.T) {
	view := model.ForecastView{
		Title:    "Projection: Access (Account Ownership)",
		Scenario: model.ScenarioOptimistic,
		Forecast: model.Series{Unit: model.UnitPercent, Points: []model.SeriesPoint{
			{Date: model.YearEnd(2025), Value: 55}, {Date: model.YearEnd(2027), Value: 70},
		}},
		Annotation:   model.SeriesPoint{Date: model.YearEnd(2027), Value: 70},
		Table:        []model.ForecastTableRow{{Year: 2027, Base: 64.4, Pessimistic: 58, Optimistic: 70}},
		ScenarioNote: "bounds reused",
	}

	out := renderForecast(view)
	assert.Contains(t, out, "Optimistic")
	assert.Contains(t, out, "70.0% (2027)")
	assert.Contains(t, out, "64.4%")
	assert.Contains(t, out, "bounds reused")
}

func TestReportMissing_TableKeepsGoing(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := reportMissing(&stdout, &stderr, formatTable, []string{"a.csv"})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), pipeline.MissingDataMessage)
	assert.Zero(t, stderr.Len())
}

func TestReportMissing_StructuredFails(t *testing.T) {
	for _, format := range []string{formatJSON, formatYAML} {
		var stdout, stderr bytes.Buffer
		err := reportMissing(&stdout, &stderr, format, []string{"a.csv", "b.csv"})
		require.Error(t, err, format)
		assert.True(t, errors.Is(err, pipeline.ErrMissingData), format)
		assert.Contains(t, err.Error(), "a.csv, b.csv")
		assert.Zero(t, stdout.Len(), "stdout must stay parseable for %s", format)
		assert.Contains(t, stderr.String(), pipeline.MissingDataMessage)
	}
}

func TestRunOverview_JSONWithoutTablesFails(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("FIDASH_DATA_DIR", "")

	prevDir, prevFormat := flagDataDir, flagFormat
	t.Cleanup(func() { flagDataDir, flagFormat = prevDir, prevFormat })
	flagDataDir = t.TempDir()
	flagFormat = formatJSON

	err := runOverview(nil, nil)
	assert.ErrorIs(t, err, pipeline.ErrMissingData)
}
