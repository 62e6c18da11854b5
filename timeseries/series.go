// Package timeseries provides core time series data structures and operations.
package timeseries

import (
	"errors"
	"fmt"
	"math"
	"time"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Series represents an evenly spaced time series. Timestamps are optional;
// when present they have the same length as Values.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// New creates a new time series from values. The sample index is the only
// time axis.
func New(values []float64) *Series {
	return &Series{Values: values}
}

// NewWithTimestamps creates a time series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, errors.New("timestamps and values must have the same length")
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}, nil
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Mean calculates the arithmetic mean of the series.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return stat.Mean(s.Values, nil)
}

// Variance calculates the population variance of the series (divisor N).
// Explained-variance scores are ratios of population variances.
func (s *Series) Variance() float64 {
	return PopVariance(s.Values)
}

// Std calculates the population standard deviation of the series.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Min returns the minimum value in the series.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Min(s.Values)
}

// Max returns the maximum value in the series.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Max(s.Values)
}

// Median returns the median value of the series.
func (s *Series) Median() float64 {
	m, err := mstats.Median(s.Values)
	if err != nil {
		return math.NaN()
	}
	return m
}

// HasMissing reports whether any value is NaN.
func (s *Series) HasMissing() bool {
	return HasMissing(s.Values)
}

// Slice returns a slice of the series from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Values: []float64{}, Name: s.Name}
	}

	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	var timestamps []time.Time
	if len(s.Timestamps) >= end {
		timestamps = make([]time.Time, len(values))
		copy(timestamps, s.Timestamps[start:end])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Split returns the initial segment of the series. A split in (0, 1] keeps
// that fraction of the samples, a split above 1 keeps int(split) samples,
// and a split of 0 keeps everything.
func (s *Series) Split(split float64) (*Series, error) {
	switch {
	case split < 0 || math.IsNaN(split):
		return nil, fmt.Errorf("invalid split %v", split)
	case split == 0:
		return s.Copy(), nil
	case split <= 1:
		return s.Slice(0, int(split*float64(s.Len()))), nil
	default:
		return s.Slice(0, int(split)), nil
	}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	var timestamps []time.Time
	if s.Timestamps != nil {
		timestamps = make([]time.Time, len(s.Timestamps))
		copy(timestamps, s.Timestamps)
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Interpolate returns a copy of the series with missing values imputed.
func (s *Series) Interpolate() (*Series, error) {
	values, err := Interpolate(s.Values)
	if err != nil {
		return nil, err
	}
	out := s.Copy()
	out.Values = values
	return out, nil
}

// HasMissing reports whether any value in data is NaN.
func HasMissing(data []float64) bool {
	for _, v := range data {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// Interpolate returns a copy of data with NaN values imputed. Interior gaps
// are filled linearly between their valid neighbours; leading and trailing
// gaps take the nearest valid value. A series without any valid value is
// degenerate.
func Interpolate(data []float64) ([]float64, error) {
	out := make([]float64, len(data))
	copy(out, data)

	prev := -1
	for i, v := range out {
		if math.IsNaN(v) {
			continue
		}
		switch {
		case prev == -1:
			for j := 0; j < i; j++ {
				out[j] = v
			}
		case i-prev > 1:
			step := (v - out[prev]) / float64(i-prev)
			for j := prev + 1; j < i; j++ {
				out[j] = out[prev] + step*float64(j-prev)
			}
		}
		prev = i
	}
	if prev == -1 {
		return nil, fmt.Errorf("%w: no valid values among %d samples", ErrDegenerateInput, len(data))
	}
	for j := prev + 1; j < len(out); j++ {
		out[j] = out[prev]
	}
	return out, nil
}

// PopVariance returns the population variance (divisor N) of data.
func PopVariance(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	_, v := stat.PopMeanVariance(data, nil)
	return v
}

// Sub returns a - b elementwise. The slices must have equal length.
func Sub(a, b []float64) []float64 {
	out := make([]float64, len(a))
	floats.SubTo(out, a, b)
	return out
}
