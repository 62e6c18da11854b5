package trend

import (
	"github.com/sartorproj/goseasonal/periodogram"
	"github.com/sartorproj/goseasonal/timeseries"
)

// guessThresh is the periodogram threshold used for period guessing.
const guessThresh = 0.9

// GuessPeriod returns a rough estimate of the dominant period of trended
// data: the score-weighted mean of the periodogram peaks once a broad
// median filter is removed. It falls back to min(n/3, 512).
func GuessPeriod(data []float64) int {
	n := len(data)
	maxPeriod := max(periodogram.DefaultMaxPeriod(n), 1)
	broad, err := medianTrend(data, Window(n, maxPeriod, DefaultPTimes), nil)
	if err != nil {
		return maxPeriod
	}
	peaks, err := periodogram.Peaks(timeseries.Sub(data, broad), guessThresh, nil)
	if err != nil || len(peaks) == 0 {
		return maxPeriod
	}
	if p := periodogram.AveragePeriod(peaks); p > 0 {
		return p
	}
	return maxPeriod
}
