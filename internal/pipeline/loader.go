// Package pipeline loads the two input tables and shapes them into the
// series and headline metrics each dashboard view renders.
package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/selamanalytics/fidash/internal/model"
	"github.com/selamanalytics/fidash/internal/source"
)

// ErrMissingData is returned by LoadResult.Require when either input table
// is absent from disk.
var ErrMissingData = errors.New("input data missing")

// MissingDataMessage is the single blocking message shown in place of every
// view when the input tables have not been generated.
const MissingDataMessage = "Data missing! Please run the notebooks to generate the CSV files in data/processed/."

// LoadResult holds the output of the table loading step.
type LoadResult struct {
	// Data is nil when Missing is non-empty.
	Data    *model.Dataset
	Missing []string

	OtherRecords int
	ParseErrors  int
	Elapsed      time.Duration
}

// Available reports whether both tables were found and loaded.
func (r *LoadResult) Available() bool {
	return r != nil && r.Data != nil && len(r.Missing) == 0
}

// Require returns the dataset, or ErrMissingData naming the absent files.
func (r *LoadResult) Require() (*model.Dataset, error) {
	if !r.Available() {
		var missing []string
		if r != nil {
			missing = r.Missing
		}
		return nil, fmt.Errorf("%w: %s", ErrMissingData, strings.Join(missing, ", "))
	}
	return r.Data, nil
}

// ProgressFunc is called during loading to report progress.
// current is the number of tables processed so far, total is the total count.
type ProgressFunc func(current, total int)

// Loader produces the loaded tables. Views depend on this interface so tests
// can substitute an in-memory dataset.
type Loader interface {
	Load() (*LoadResult, error)
}

// FileLoader reads the historical and forecast CSV tables from disk.
type FileLoader struct {
	Paths    source.Paths
	Progress ProgressFunc
}

// Load checks both tables exist, then parses them. A missing table is not an
// error: the result comes back with Missing set and Data nil.
func (l FileLoader) Load() (*LoadResult, error) {
	start := time.Now()

	result := &LoadResult{Missing: source.Discover(l.Paths)}
	if len(result.Missing) > 0 {
		return result, nil
	}

	hist, err := source.ParseObservations(l.Paths.Historical)
	if err != nil {
		return nil, fmt.Errorf("loading historical table: %w", err)
	}
	l.progress(1, 2)

	fc, err := source.ParseForecasts(l.Paths.Forecast)
	if err != nil {
		return nil, fmt.Errorf("loading forecast table: %w", err)
	}
	l.progress(2, 2)

	result.Data = &model.Dataset{
		Observations:   hist.Observations,
		Forecasts:      fc.Points,
		HistoricalPath: l.Paths.Historical,
		ForecastPath:   l.Paths.Forecast,
		LoadedAt:       start,
	}
	result.OtherRecords = hist.OtherRecords
	result.ParseErrors = hist.ParseErrors + fc.ParseErrors
	result.Elapsed = time.Since(start)

	return result, nil
}

func (l FileLoader) progress(current, total int) {
	if l.Progress != nil {
		l.Progress(current, total)
	}
}

// MemoLoader runs its inner loader at most once and hands every caller the
// same result. There is no invalidation: edits on disk are picked up only by
// a new process.
type MemoLoader struct {
	inner Loader

	once   sync.Once
	result *LoadResult
	err    error
}

// Memo wraps a loader so its result is computed once per process.
func Memo(l Loader) *MemoLoader {
	return &MemoLoader{inner: l}
}

// Load returns the memoized result, loading on first use.
func (m *MemoLoader) Load() (*LoadResult, error) {
	m.once.Do(func() {
		m.result, m.err = m.inner.Load()
	})
	return m.result, m.err
}
