package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/selamanalytics/fidash/internal/model"
	"github.com/selamanalytics/fidash/internal/source"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func obs(code string, date time.Time, v float64) model.Observation {
	return model.Observation{Date: date, IndicatorCode: code, RecordType: model.RecordTypeObservation, Value: v}
}

// testDataset is a small in-memory dataset shaped like the processed tables.
func testDataset() *model.Dataset {
	return &model.Dataset{
		Observations: []model.Observation{
			obs("ACC_OWNERSHIP", day(2014, 12, 31), 22),
			obs("ACC_OWNERSHIP", day(2017, 12, 31), 35),
			obs("ACC_MOBILE_PEN", day(2017, 12, 31), 41),
			obs("ACC_OWNERSHIP", day(2021, 12, 31), 46),
			obs("acc_mobile_pen", day(2021, 12, 31), 56),
			obs("ACC_MM_ACCOUNT", day(2021, 12, 31), 4.7),
			obs("USG_TELEBIRR_USERS", day(2023, 6, 30), 47_500_000),
			obs("ACC_OWNERSHIP", day(2024, 12, 31), 49),
			obs("ACC_MOBILE_PEN", day(2024, 12, 31), 64),
			obs("ACC_MM_ACCOUNT", day(2024, 12, 31), 9.45),
			obs("USG_TELEBIRR_USERS", day(2024, 6, 30), 54_000_000),
		},
		Forecasts: []model.ForecastPoint{
			{Indicator: "ACC_OWNERSHIP", Year: 2026, Value: 58.7, LowerCI: 54, UpperCI: 63},
			{Indicator: "ACC_OWNERSHIP", Year: 2025, Value: 53.2, LowerCI: 50, UpperCI: 56},
			{Indicator: "ACC_MM_ACCOUNT", Year: 2025, Value: 12.1, LowerCI: 10, UpperCI: 14},
			{Indicator: "ACC_OWNERSHIP", Year: 2027, Value: 64.4, LowerCI: 58, UpperCI: 70},
			{Indicator: "ACC_MM_ACCOUNT", Year: 2027, Value: 18.9, LowerCI: 14, UpperCI: 23},
		},
	}
}

// fakeLoader serves a fixed result and counts calls.
type fakeLoader struct {
	result *LoadResult
	err    error
	calls  int
}

func (f *fakeLoader) Load() (*LoadResult, error) {
	f.calls++
	return f.result, f.err
}

// writeTables writes both CSV tables under a temp data root.
func writeTables(t *testing.T, hist, fc []string) source.Paths {
	t.Helper()
	paths := source.DefaultPaths(t.TempDir())
	require.NoError(t, os.MkdirAll(filepath.Dir(paths.Historical), 0o755))
	require.NoError(t, os.WriteFile(paths.Historical, []byte(strings.Join(hist, "\n")+"\n"), 0o600))
	require.NoError(t, os.WriteFile(paths.Forecast, []byte(strings.Join(fc, "\n")+"\n"), 0o600))
	return paths
}

var (
	histCSV = []string{
		"record_id,record_type,category,indicator_code,observation_date,value_numeric",
		"REC_0001,observation,access,ACC_OWNERSHIP,2014-12-31,22",
		"REC_0002,observation,access,ACC_OWNERSHIP,2021-12-31,46",
		"EVT_0001,event,policy,,2021-05-11,",
		"REC_0003,observation,usage,ACC_MM_ACCOUNT,2024-12-31,9.45",
		"REC_0004,observation,usage,USG_TELEBIRR_USERS,2024-06-30,54000000",
		"TGT_0001,target,access,ACC_OWNERSHIP,2027-12-31,60",
		"REC_0005,observation,access,ACC_OWNERSHIP,2024-12-31,49",
	}
	fcCSV = []string{
		"indicator,year,value,lower_ci,upper_ci",
		"ACC_OWNERSHIP,2025,53.2,50,56",
		"ACC_OWNERSHIP,2026,58.7,54,63",
		"ACC_OWNERSHIP,2027,64.4,58,70",
		"ACC_MM_ACCOUNT,2027,18.9,14,23",
	}
)
