package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeCSV creates a temp CSV file from lines and returns its path.
func writeCSV(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600))
	return path
}

func TestParseObservations_FiltersRecordTypeAndKeepsOrder(t *testing.T) {
	path := writeCSV(t, "hist.csv",
		"record_id,record_type,indicator_code,observation_date,value_numeric,source_name",
		"R1,observation,ACC_OWNERSHIP,2014-12-31,22,Findex",
		"R2,target,ACC_OWNERSHIP,2027-12-31,60,NFIS",
		"R3,observation,USG_TELEBIRR_USERS,2023-06-30,47500000,EthioTelecom",
		"R4,event,,2021-05-11,,",
		"R5,observation,ACC_OWNERSHIP,2011-12-31,14,Findex",
	)

	res, err := ParseObservations(path)
	require.NoError(t, err)

	require.Len(t, res.Observations, 3)
	assert.Equal(t, 2, res.OtherRecords)
	assert.Zero(t, res.ParseErrors)

	// File order, not date order.
	assert.Equal(t, "ACC_OWNERSHIP", res.Observations[0].IndicatorCode)
	assert.InDelta(t, 22.0, res.Observations[0].Value, 1e-9)
	assert.Equal(t, "USG_TELEBIRR_USERS", res.Observations[1].IndicatorCode)
	assert.Equal(t, 2011, res.Observations[2].Date.Year())
	for _, o := range res.Observations {
		assert.Equal(t, "observation", o.RecordType)
	}
}

func TestParseObservations_SkipsMalformedObservationRows(t *testing.T) {
	path := writeCSV(t, "hist.csv",
		"observation_date,record_type,indicator_code,value_numeric",
		"2021-12-31,observation,ACC_OWNERSHIP,46",
		"not-a-date,observation,ACC_OWNERSHIP,47",
		"2024-12-31,observation,ACC_OWNERSHIP,",
		"2024-12-31,observation,ACC_OWNERSHIP,nan",
		"2024-12-31,observation,ACC_OWNERSHIP,49",
	)

	res, err := ParseObservations(path)
	require.NoError(t, err)
	assert.Len(t, res.Observations, 2)
	assert.Equal(t, 3, res.ParseErrors)
}

func TestParseObservations_MissingColumn(t *testing.T) {
	path := writeCSV(t, "hist.csv",
		"observation_date,record_type,value_numeric",
		"2021-12-31,observation,46",
	)

	_, err := ParseObservations(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Contains(t, err.Error(), "indicator_code")
}

func TestParseObservations_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := ParseObservations(path)
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestReadObservations_BOMHeader(t *testing.T) {
	in := "\ufeffobservation_date,record_type,indicator_code,value_numeric\n2024-12-31,observation,ACC_OWNERSHIP,49\n"
	res, err := ReadObservations(strings.NewReader(in))
	require.NoError(t, err)
	assert.Len(t, res.Observations, 1)
}

func TestParseForecasts_KeepsEveryRowInOrder(t *testing.T) {
	path := writeCSV(t, "fc.csv",
		"indicator,year,value,lower_ci,upper_ci",
		"ACC_OWNERSHIP,2025,52.1,49.0,55.3",
		"ACC_MM_ACCOUNT,2025,11.0,9.5,12.4",
		"ACC_OWNERSHIP,2027.0,64.4,58,70",
		"ACC_OWNERSHIP,soon,1,1,1",
	)

	res, err := ParseForecasts(path)
	require.NoError(t, err)
	require.Len(t, res.Points, 3)
	assert.Equal(t, 1, res.ParseErrors)

	last := res.Points[2]
	assert.Equal(t, "ACC_OWNERSHIP", last.Indicator)
	assert.Equal(t, 2027, last.Year)
	assert.InDelta(t, 64.4, last.Value, 1e-9)
	assert.InDelta(t, 58.0, last.LowerCI, 1e-9)
	assert.InDelta(t, 70.0, last.UpperCI, 1e-9)
	assert.Equal(t, "ACC_MM_ACCOUNT", res.Points[1].Indicator)
}

func TestParseForecasts_MissingFile(t *testing.T) {
	_, err := ParseForecasts(filepath.Join(t.TempDir(), "nope.csv"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-12-31", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"2024-12-31 00:00:00", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"2021-06-30T12:00:00Z", time.Date(2021, 6, 30, 12, 0, 0, 0, time.UTC)},
		{"2017/11/01", time.Date(2017, 11, 1, 0, 0, 0, 0, time.UTC)},
		{"12/31/2014", time.Date(2014, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"2023-06", time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)},
		{" 2011 ", time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-01-01T00:00:00+03:00", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2023-12-31T23:30:00-05:00", time.Date(2023, 12, 31, 23, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	for _, bad := range []string{"", "yesterday", "2024-13-40"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "ParseDate(%q)", bad)
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	paths := DefaultPaths(root)
	assert.Equal(t, []string{paths.Historical, paths.Forecast}, Discover(paths))

	require.NoError(t, os.MkdirAll(filepath.Dir(paths.Historical), 0o755))
	require.NoError(t, os.WriteFile(paths.Historical, []byte("x\n"), 0o600))
	assert.Equal(t, []string{paths.Forecast}, Discover(paths))

	require.NoError(t, os.WriteFile(paths.Forecast, []byte("x\n"), 0o600))
	assert.Empty(t, Discover(paths))
}

func TestPathsWithOverrides(t *testing.T) {
	p := DefaultPaths("/data").WithOverrides("", "/elsewhere/fc.csv")
	assert.Equal(t, filepath.Join("/data", "data", "processed", "ethiopia_fi_enriched.csv"), p.Historical)
	assert.Equal(t, "/elsewhere/fc.csv", p.Forecast)
}

// FuzzParseDate checks the layout loop never panics and that successful
// parses are always normalized to UTC.
func FuzzParseDate(f *testing.F) {
	f.Add("2024-12-31")
	f.Add("2024")
	f.Add("12/31/2014")
	f.Add("2021-06-30T12:00:00+03:00")
	f.Add("")
	f.Add("\x00\xff")

	f.Fuzz(func(t *testing.T, s string) {
		got, err := ParseDate(s)
		if err == nil && got.Location() != time.UTC {
			t.Errorf("ParseDate(%q) location = %v, want UTC", s, got.Location())
		}
	})
}
