// Package source locates and parses the historical and forecast CSV tables.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/selamanalytics/fidash/internal/model"
)

// ErrMissingColumn is returned when a table lacks a required header.
var ErrMissingColumn = errors.New("missing required column")

// Historical table columns.
const (
	colObservationDate = "observation_date"
	colRecordType      = "record_type"
	colIndicatorCode   = "indicator_code"
	colValueNumeric    = "value_numeric"
)

// Forecast table columns.
const (
	colIndicator = "indicator"
	colYear      = "year"
	colValue     = "value"
	colLowerCI   = "lower_ci"
	colUpperCI   = "upper_ci"
)

// dateLayouts are tried in order. Year-only and year-month values land on
// the first day of the period.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"2006-01",
	"2006",
}

// ParseObservations reads the historical table at path.
func ParseObservations(path string) (ObservationResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ObservationResult{}, err
	}
	defer func() { _ = f.Close() }()

	res, err := ReadObservations(f)
	if err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// ReadObservations parses a historical table, keeping only rows whose
// record_type is "observation". Surviving rows keep their file order.
// Observation rows with an unreadable date or value are skipped and counted.
func ReadObservations(r io.Reader) (ObservationResult, error) {
	var res ObservationResult

	cr := newReader(r)
	cols, err := readHeader(cr, colObservationDate, colRecordType, colIndicatorCode, colValueNumeric)
	if err != nil {
		return res, err
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				res.ParseErrors++
				continue
			}
			return res, fmt.Errorf("reading row: %w", err)
		}

		if strings.TrimSpace(field(rec, cols[colRecordType])) != model.RecordTypeObservation {
			res.OtherRecords++
			continue
		}

		date, err := ParseDate(field(rec, cols[colObservationDate]))
		if err != nil {
			res.ParseErrors++
			continue
		}
		value, ok := parseValue(field(rec, cols[colValueNumeric]))
		if !ok {
			res.ParseErrors++
			continue
		}

		res.Observations = append(res.Observations, model.Observation{
			Date:          date,
			IndicatorCode: strings.TrimSpace(field(rec, cols[colIndicatorCode])),
			RecordType:    model.RecordTypeObservation,
			Value:         value,
		})
	}

	return res, nil
}

// ParseForecasts reads the forecast table at path.
func ParseForecasts(path string) (ForecastResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ForecastResult{}, err
	}
	defer func() { _ = f.Close() }()

	res, err := ReadForecasts(f)
	if err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// ReadForecasts parses a forecast table. Every well-formed row is kept in
// file order; rows with unreadable numbers are skipped and counted.
func ReadForecasts(r io.Reader) (ForecastResult, error) {
	var res ForecastResult

	cr := newReader(r)
	cols, err := readHeader(cr, colIndicator, colYear, colValue, colLowerCI, colUpperCI)
	if err != nil {
		return res, err
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				res.ParseErrors++
				continue
			}
			return res, fmt.Errorf("reading row: %w", err)
		}

		year, ok := parseYear(field(rec, cols[colYear]))
		if !ok {
			res.ParseErrors++
			continue
		}
		value, ok1 := parseValue(field(rec, cols[colValue]))
		lower, ok2 := parseValue(field(rec, cols[colLowerCI]))
		upper, ok3 := parseValue(field(rec, cols[colUpperCI]))
		if !ok1 || !ok2 || !ok3 {
			res.ParseErrors++
			continue
		}

		res.Points = append(res.Points, model.ForecastPoint{
			Indicator: strings.TrimSpace(field(rec, cols[colIndicator])),
			Year:      year,
			Value:     value,
			LowerCI:   lower,
			UpperCI:   upper,
		})
	}

	return res, nil
}

// ParseDate parses an observation date in any of the accepted layouts.
// Offsets are dropped and the wall-clock reading kept in UTC, so a date
// never moves into a neighbouring day or year.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	return cr
}

// readHeader maps each required column name to its index.
func readHeader(cr *csv.Reader, required ...string) (map[string]int, error) {
	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	cols := make(map[string]int, len(required))
	for _, name := range required {
		i, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
		cols[name] = i
	}
	return cols, nil
}

func field(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

func parseValue(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseYear accepts "2027" as well as the "2027.0" that spreadsheet exports produce.
func parseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if y, err := strconv.Atoi(s); err == nil {
		return y, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > 1e6 {
		return 0, false
	}
	return int(f), true
}
