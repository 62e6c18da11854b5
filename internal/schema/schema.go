// Package schema holds the report types passed from the analysis core to
// the output writers.
package schema

import (
	"time"

	"github.com/sartorproj/goseasonal/periodogram"
	"github.com/sartorproj/goseasonal/seasonal"
	"github.com/sartorproj/goseasonal/stats"
	"github.com/sartorproj/goseasonal/trend"
)

// FitReport is the seasonal fit of one input file.
type FitReport struct {
	File          string                  `json:"file" yaml:"file"`
	Column        string                  `json:"column,omitempty" yaml:"column,omitempty"`
	Timestamps    []time.Time             `json:"timestamps,omitempty" yaml:"timestamps,omitempty"`
	Result        *seasonal.Result        `json:"result" yaml:"result"`
	Decomposition *seasonal.Decomposition `json:"decomposition,omitempty" yaml:"decomposition,omitempty"`
	LjungBox      *stats.LjungBoxResult   `json:"ljung_box,omitempty" yaml:"ljung_box,omitempty"` // on the residual
}

// TrendReport is the trend estimate of one input file.
type TrendReport struct {
	File       string      `json:"file" yaml:"file"`
	Column     string      `json:"column,omitempty" yaml:"column,omitempty"`
	Kind       trend.Kind  `json:"kind" yaml:"kind"`
	Period     int         `json:"period" yaml:"period"` // period the window was sized for
	EV         float64     `json:"ev" yaml:"ev"`
	N          int         `json:"n" yaml:"n"`
	Timestamps []time.Time `json:"timestamps,omitempty" yaml:"timestamps,omitempty"`
	Value      []float64   `json:"value,omitempty" yaml:"value,omitempty"`
	Trend      []float64   `json:"trend,omitempty" yaml:"trend,omitempty"`
	Detrended  []float64   `json:"detrended,omitempty" yaml:"detrended,omitempty"`
}

// PeriodogramReport holds the periodogram peaks of one input file.
type PeriodogramReport struct {
	File       string                  `json:"file" yaml:"file"`
	Column     string                  `json:"column,omitempty" yaml:"column,omitempty"`
	N          int                     `json:"n" yaml:"n"`
	Detrended  bool                    `json:"detrended" yaml:"detrended"`
	Average    int                     `json:"average_period" yaml:"average_period"`
	Candidates []periodogram.Candidate `json:"candidates" yaml:"candidates"`
}

// TimestampAt returns the i-th timestamp, or nil when the input had no
// time index.
func TimestampAt(timestamps []time.Time, i int) *time.Time {
	if i >= len(timestamps) {
		return nil
	}
	return &timestamps[i]
}
