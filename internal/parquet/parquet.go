// Package parquet provides row types and functions for exporting goseasonal
// reports to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/sartorproj/goseasonal/internal/schema"
)

// SampleRow is one sample of a seasonal decomposition.
type SampleRow struct {
	// File is the input the sample was read from
	File string `parquet:"file,snappy"`

	// Index is the 0-based sample position
	Index int64 `parquet:"index,snappy"`

	// Timestamp is the sample time (nullable when the input had no time index)
	Timestamp *time.Time `parquet:"timestamp,optional,snappy"`

	Value     float64 `parquet:"value,snappy"`
	Trend     float64 `parquet:"trend,snappy"`
	Seasonal  float64 `parquet:"seasonal,snappy"`
	Detrended float64 `parquet:"detrended,snappy"`
	Adjusted  float64 `parquet:"adjusted,snappy"`
	Residual  float64 `parquet:"residual,snappy"`

	// Period is the fitted period, 0 when the fit was rejected
	Period int32 `parquet:"period,snappy"`
}

// TrendRow is one sample of a trend estimate.
type TrendRow struct {
	File      string     `parquet:"file,snappy"`
	Index     int64      `parquet:"index,snappy"`
	Timestamp *time.Time `parquet:"timestamp,optional,snappy"`
	Value     float64    `parquet:"value,snappy"`
	Trend     float64    `parquet:"trend,snappy"`
	Detrended float64    `parquet:"detrended,snappy"`
}

// PeakRow is one periodogram peak.
type PeakRow struct {
	File   string  `parquet:"file,snappy"`
	Period int32   `parquet:"period,snappy"`
	Lower  int32   `parquet:"lower,snappy"`
	Upper  int32   `parquet:"upper,snappy"`
	Score  float64 `parquet:"score,snappy"`
}

// SampleRows flattens fit reports into one row per sample.
func SampleRows(reports []schema.FitReport) []SampleRow {
	var rows []SampleRow
	for _, r := range reports {
		d := r.Decomposition
		if d == nil {
			continue
		}
		for i := range d.Value {
			rows = append(rows, SampleRow{
				File:      r.File,
				Index:     int64(i),
				Timestamp: schema.TimestampAt(r.Timestamps, i),
				Value:     d.Value[i],
				Trend:     d.Trend[i],
				Seasonal:  d.Seasonal[i],
				Detrended: d.Detrended[i],
				Adjusted:  d.Adjusted[i],
				Residual:  d.Residual[i],
				Period:    int32(r.Result.Period),
			})
		}
	}
	return rows
}

// TrendRows flattens trend reports into one row per sample.
func TrendRows(reports []schema.TrendReport) []TrendRow {
	var rows []TrendRow
	for _, r := range reports {
		for i := range r.Value {
			rows = append(rows, TrendRow{
				File:      r.File,
				Index:     int64(i),
				Timestamp: schema.TimestampAt(r.Timestamps, i),
				Value:     r.Value[i],
				Trend:     r.Trend[i],
				Detrended: r.Detrended[i],
			})
		}
	}
	return rows
}

// PeakRows flattens periodogram reports into one row per peak.
func PeakRows(reports []schema.PeriodogramReport) []PeakRow {
	var rows []PeakRow
	for _, r := range reports {
		for _, c := range r.Candidates {
			rows = append(rows, PeakRow{
				File:   r.File,
				Period: int32(c.Period),
				Lower:  int32(c.Lower),
				Upper:  int32(c.Upper),
				Score:  c.Score,
			})
		}
	}
	return rows
}

// WriteFile writes rows to a Parquet file at outputPath.
func WriteFile[T any](outputPath string, rows []T) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if len(rows) > 0 {
		if _, err := writer.Write(rows); err != nil {
			return fmt.Errorf("failed to write rows: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}
	return nil
}
