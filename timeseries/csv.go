package timeseries

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	DateColumn  string // Column name for dates (optional)
	ValueColumn string // Column name for values (takes precedence over ValueIndex)
	ValueIndex  int    // 0-based column index for values; negative counts from the right
	IDColumn    string // Column name for series ID (optional, for filtering)
	IDFilter    string // Value to filter by ID column
	DateFormat  string // Date format (default: "2006-01-02")
	HasHeader   bool   // Whether CSV has header row (default: true)
	Delimiter   rune   // Field delimiter (default: ',')
	SkipRows    int    // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for CSV loading: the rightmost
// column of a headed, comma-separated file.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		ValueIndex: -1,
		DateFormat: "2006-01-02",
		HasHeader:  true,
		Delimiter:  ',',
	}
}

// missingTokens are cell values read as NaN.
var missingTokens = map[string]bool{
	"": true, "NA": true, "NaN": true, "nan": true, "null": true, "NULL": true,
}

// dateHeaders are column names recognized as the time index.
var dateHeaders = map[string]bool{
	"ds": true, "date": true, "Date": true, "time": true, "timestamp": true, "Month": true, "Year": true,
}

// dateFormats are tried in order after the configured format.
var dateFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
	"2006-01",
	"2006",
}

// LoadCSV loads a time series from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	series, err := LoadCSVFromReader(file, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return series, nil
}

// LoadCSVFromReader loads a time series from an io.Reader. Rows keep their
// position: missing or unparseable cells become NaN so the sample spacing is
// preserved for later imputation.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}
	delimiter := opts.Delimiter
	if delimiter == 0 {
		delimiter = ','
	}

	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	valueIdx, dateIdx, idIdx := -1, -1, -1
	name := opts.ValueColumn
	var pending []string

	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, err
		}
		for i, h := range header {
			h = clean(h)
			switch {
			case opts.ValueColumn != "" && h == opts.ValueColumn:
				valueIdx = i
			case opts.DateColumn != "" && h == opts.DateColumn:
				dateIdx = i
			case opts.IDColumn != "" && h == opts.IDColumn:
				idIdx = i
			case opts.DateColumn == "" && dateIdx == -1 && dateHeaders[h]:
				dateIdx = i
			}
		}
		if opts.ValueColumn != "" && valueIdx == -1 {
			return nil, fmt.Errorf("column %q not found", opts.ValueColumn)
		}
		if valueIdx == -1 {
			valueIdx = resolveIndex(opts.ValueIndex, len(header))
			if valueIdx < 0 {
				return nil, fmt.Errorf("column index %d out of range", opts.ValueIndex)
			}
			name = clean(header[valueIdx])
		}
		if opts.DateColumn == "" && dateIdx == -1 && len(header) > 1 && valueIdx != 0 && idIdx != 0 {
			dateIdx = 0 // leading index column, as in most exported series
		}
	} else {
		first, err := reader.Read()
		if err != nil {
			return nil, err
		}
		valueIdx = resolveIndex(opts.ValueIndex, len(first))
		if valueIdx < 0 {
			return nil, fmt.Errorf("column index %d out of range", opts.ValueIndex)
		}
		if len(first) > 1 && valueIdx != 0 {
			dateIdx = 0
		}
		pending = first
	}

	var values []float64
	var timestamps []time.Time
	datesOK := dateIdx >= 0

	for {
		record := pending
		pending = nil
		if record == nil {
			var err error
			record, err = reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, err
			}
		}

		if opts.IDFilter != "" && idIdx >= 0 && idIdx < len(record) {
			if clean(record[idIdx]) != opts.IDFilter {
				continue
			}
		}

		val := math.NaN()
		if valueIdx < len(record) {
			cell := clean(record[valueIdx])
			if !missingTokens[cell] {
				if v, err := strconv.ParseFloat(cell, 64); err == nil {
					val = v
				}
			}
		}
		values = append(values, val)

		if datesOK {
			ts, ok := parseDate(record, dateIdx, opts.DateFormat)
			if ok {
				timestamps = append(timestamps, ts)
			} else {
				datesOK = false
			}
		}
	}

	if len(values) == 0 {
		return nil, errors.New("no data rows found in CSV")
	}

	series := &Series{Values: values, Name: name}
	if datesOK && len(timestamps) == len(values) {
		series.Timestamps = timestamps
	}
	return series, nil
}

// LoadCSVColumn loads a specific column from a CSV file as a series.
func LoadCSVColumn(filename string, column string) (*Series, error) {
	opts := DefaultCSVOptions()
	opts.ValueColumn = column
	return LoadCSV(filename, opts)
}

// SaveCSV saves a time series to a CSV file.
func SaveCSV(series *Series, filename string, includeIndex bool) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	writer := bufio.NewWriter(file)
	if err := WriteCSV(writer, series, includeIndex); err != nil {
		return err
	}
	return writer.Flush()
}

// WriteCSV writes a time series as CSV to w.
func WriteCSV(w io.Writer, series *Series, includeIndex bool) error {
	cw := csv.NewWriter(w)
	name := series.Name
	if name == "" {
		name = "y"
	}
	hasDates := len(series.Timestamps) == len(series.Values)

	header := []string{name}
	if includeIndex {
		if hasDates {
			header = []string{"ds", name}
		} else {
			header = []string{"index", name}
		}
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, v := range series.Values {
		row := []string{strconv.FormatFloat(v, 'f', -1, 64)}
		if includeIndex {
			idx := strconv.Itoa(i)
			if hasDates {
				idx = series.Timestamps[i].Format("2006-01-02")
			}
			row = append([]string{idx}, row...)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func clean(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\""))
}

func resolveIndex(idx, width int) int {
	if idx < 0 {
		idx += width
	}
	if idx < 0 || idx >= width {
		return -1
	}
	return idx
}

func parseDate(record []string, idx int, format string) (time.Time, bool) {
	if idx >= len(record) {
		return time.Time{}, false
	}
	s := clean(record[idx])
	if format != "" {
		if ts, err := time.Parse(format, s); err == nil {
			return ts, true
		}
	}
	for _, f := range dateFormats {
		if ts, err := time.Parse(f, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
