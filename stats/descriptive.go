package stats

import (
	"math"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
)

// Median returns the median of data, averaging the two middle values for
// even lengths. It returns NaN for empty input.
func Median(data []float64) float64 {
	m, err := mstats.Median(data)
	if err != nil {
		return math.NaN()
	}
	return m
}

// IsConstant reports whether data carries no variation beyond rounding
// noise relative to its magnitude.
func IsConstant(data []float64) bool {
	if len(data) == 0 {
		return true
	}
	lo, hi := floats.Min(data), floats.Max(data)
	scale := math.Max(1, math.Max(math.Abs(lo), math.Abs(hi)))
	return hi-lo <= 1e-12*scale
}

// sortedMedian returns the median of an already sorted slice.
func sortedMedian(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}
