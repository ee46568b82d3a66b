package pipeline

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selamanalytics/fidash/internal/config"
	"github.com/selamanalytics/fidash/internal/source"
)

func TestFileLoader_MissingFilesIsNotAnError(t *testing.T) {
	paths := source.DefaultPaths(t.TempDir())

	res, err := FileLoader{Paths: paths}.Load()
	require.NoError(t, err)
	assert.False(t, res.Available())
	assert.Nil(t, res.Data)
	assert.Equal(t, []string{paths.Historical, paths.Forecast}, res.Missing)

	_, err = res.Require()
	assert.True(t, errors.Is(err, ErrMissingData))
	assert.Contains(t, err.Error(), filepath.Base(paths.Forecast))
}

func TestFileLoader_OneFileMissing(t *testing.T) {
	paths := writeTables(t, histCSV, fcCSV)
	paths.Forecast = filepath.Join(filepath.Dir(paths.Forecast), "absent.csv")

	res, err := FileLoader{Paths: paths}.Load()
	require.NoError(t, err)
	assert.False(t, res.Available())
	assert.Equal(t, []string{paths.Forecast}, res.Missing)
}

func TestFileLoader_LoadsAndFilters(t *testing.T) {
	paths := writeTables(t, histCSV, fcCSV)

	var progress []int
	res, err := FileLoader{Paths: paths, Progress: func(cur, total int) {
		assert.Equal(t, 2, total)
		progress = append(progress, cur)
	}}.Load()
	require.NoError(t, err)
	require.True(t, res.Available())

	assert.Equal(t, []int{1, 2}, progress)
	assert.Len(t, res.Data.Observations, 5)
	assert.Len(t, res.Data.Forecasts, 4)
	assert.Equal(t, 2, res.OtherRecords)
	assert.Zero(t, res.ParseErrors)
	assert.Equal(t, paths.Historical, res.Data.HistoricalPath)

	// File order survives the record-type filter.
	codes := make([]string, 0, len(res.Data.Observations))
	for _, o := range res.Data.Observations {
		codes = append(codes, o.IndicatorCode)
	}
	assert.Equal(t, []string{"ACC_OWNERSHIP", "ACC_OWNERSHIP", "ACC_MM_ACCOUNT", "USG_TELEBIRR_USERS", "ACC_OWNERSHIP"}, codes)
}

func TestFileLoader_MissingColumnFails(t *testing.T) {
	paths := writeTables(t, []string{"observation_date,indicator_code,value_numeric", "2024-12-31,ACC_OWNERSHIP,49"}, fcCSV)

	_, err := FileLoader{Paths: paths}.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, source.ErrMissingColumn)
}

func TestMemo_ReturnsIdenticalResult(t *testing.T) {
	fake := &fakeLoader{result: &LoadResult{Data: testDataset()}}
	m := Memo(fake)

	first, err := m.Load()
	require.NoError(t, err)
	second, err := m.Load()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, fake.calls)
}

func TestMemo_CachesErrors(t *testing.T) {
	fake := &fakeLoader{err: errors.New("disk on fire")}
	m := Memo(fake)

	_, err1 := m.Load()
	_, err2 := m.Load()
	assert.EqualError(t, err1, "disk on fire")
	assert.Equal(t, err1, err2)
	assert.Equal(t, 1, fake.calls)
}

func TestLoadTwice_YieldsIdenticalKPIs(t *testing.T) {
	paths := writeTables(t, histCSV, fcCSV)
	cfg := config.DefaultConfig()

	build := func() []float64 {
		res, err := FileLoader{Paths: paths}.Load()
		require.NoError(t, err)
		ds, err := res.Require()
		require.NoError(t, err)
		view, err := BuildOverview(ds, cfg)
		require.NoError(t, err)
		out := []float64{view.Goal.Progress}
		for _, k := range view.KPIs {
			out = append(out, k.Value, k.Delta)
		}
		return out
	}

	assert.Equal(t, build(), build())
}
