package seasonal

import (
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/sartorproj/goseasonal/stats"
	"github.com/sartorproj/goseasonal/timeseries"
	log "github.com/sirupsen/logrus"
)

// tieTolerance is the relative difference below which two cross-validated
// errors are considered equal.
const tieTolerance = 1e-9

// zeroTolerance is the fraction of the series variance below which a
// cross-validated error counts as an exact fit.
const zeroTolerance = 1e-10

// CVResult scores one candidate period.
type CVResult struct {
	Period int     `json:"period" yaml:"period"`
	TEV    float64 `json:"tev" yaml:"tev"`       // In-sample explained variance
	EEV    float64 `json:"eev" yaml:"eev"`       // Leave-one-out explained variance
	MSE    float64 `json:"cv_mse" yaml:"cv_mse"` // Leave-one-out mean squared error
	N      int     `json:"n" yaml:"n"`
	Cycles int     `json:"cycles" yaml:"cycles"`
}

// Selection is the outcome of a period search.
type Selection struct {
	Best        CVResult
	Seasons     []float64  // Per-phase means of the best period
	Significant bool       // Whether Best explains at least MinEV of the variance
	Scores      []CVResult // Every feasible candidate, by ascending period
}

// SelectPeriod scores each candidate period by leave-one-out
// cross-validation and returns the best. An empty periods slice scans every
// period from cfg.MinPeriod to len(data)/2. Periods without two full cycles
// of data are skipped; if none remain the error is ErrInsufficientData.
//
// A best period that explains less than cfg.MinEV of the variance is
// reported with Significant set to false rather than as an error.
func SelectPeriod(data []float64, periods []int, cfg *Config) (*Selection, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	if timeseries.HasMissing(data) {
		return nil, ErrMissingValues
	}
	n := len(data)

	if len(periods) == 0 {
		for p := cfg.MinPeriod; p <= n/2; p++ {
			periods = append(periods, p)
		}
	}
	feasible := make([]int, 0, len(periods))
	for _, p := range periods {
		if p >= 2 && n >= 2*p {
			feasible = append(feasible, p)
		}
	}
	slices.Sort(feasible)
	feasible = slices.Compact(feasible)
	if len(feasible) == 0 {
		return nil, fmt.Errorf("%w: no candidate period has two full cycles in %d samples",
			ErrInsufficientData, n)
	}

	variance := timeseries.PopVariance(data)
	scores := make([]CVResult, len(feasible))
	seasons := make([][]float64, len(feasible))

	jobs := make(chan int, len(feasible))
	var wg sync.WaitGroup
	for range min(cfg.Workers, len(feasible)) {
		wg.Go(func() {
			for i := range jobs {
				// each worker owns index i, so the writes do not race
				scores[i], seasons[i] = crossValidate(data, feasible[i], variance)
			}
		})
	}
	for i := range feasible {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	best := 0
	for i := 1; i < len(scores); i++ {
		if betterFit(scores[i], scores[best]) {
			best = i
		}
	}

	sel := &Selection{
		Best:    scores[best],
		Seasons: seasons[best],
		Scores:  scores,
	}
	sel.Significant = !stats.IsConstant(data) && accept(sel.Best, variance, cfg.MinEV)
	cfg.Logger.WithFields(log.Fields{
		"candidates": len(feasible),
		"period":     sel.Best.Period,
		"eev":        sel.Best.EEV,
	}).Debug("period search finished")
	return sel, nil
}

// RSquaredCV returns the leave-one-out explained variance of data for the
// given period.
func RSquaredCV(data []float64, period int) (float64, error) {
	if timeseries.HasMissing(data) {
		return 0, ErrMissingValues
	}
	if period < 2 || period > len(data)/2 {
		return 0, fmt.Errorf("%w: period %d outside [2, %d]", ErrInvalidPeriod, period, len(data)/2)
	}
	cv, _ := crossValidate(data, period, timeseries.PopVariance(data))
	return cv.EEV, nil
}

// crossValidate fits per-phase means for period and scores them. The
// leave-one-out residual of a sample is its in-sample residual inflated by
// c/(c-1), where c is the number of samples sharing its phase, so the
// cross-validated error follows from per-phase sums without refitting.
func crossValidate(data []float64, period int, variance float64) (CVResult, []float64) {
	seasons := make([]float64, period)
	count := make([]float64, period)
	for i, v := range data {
		seasons[i%period] += v
		count[i%period]++
	}
	for p := range seasons {
		seasons[p] /= count[p]
	}

	phaseSSE := make([]float64, period)
	for i, v := range data {
		r := v - seasons[i%period]
		phaseSSE[i%period] += r * r
	}

	n := len(data)
	var sse, cvsse float64
	for p, s := range phaseSSE {
		c := count[p]
		inflate := c / (c - 1)
		sse += s
		cvsse += inflate * inflate * s
	}

	res := CVResult{
		Period: period,
		MSE:    cvsse / float64(n),
		N:      n,
		Cycles: n / period,
	}
	if res.MSE <= zeroTolerance*variance {
		res.MSE = 0
	}
	if variance > 0 {
		res.TEV = 1 - sse/float64(n)/variance
		res.EEV = 1 - res.MSE/variance
	}
	return res, seasons
}

// betterFit reports whether a has a clearly lower cross-validated error
// than b. Near ties keep b, which is the shorter period during a scan.
func betterFit(a, b CVResult) bool {
	diff := b.MSE - a.MSE
	scale := math.Max(math.Abs(a.MSE), math.Abs(b.MSE))
	return diff > tieTolerance*scale
}

func accept(cv CVResult, variance, minEV float64) bool {
	if variance <= 0 {
		return false
	}
	return cv.MSE == 0 || cv.EEV >= minEV
}
