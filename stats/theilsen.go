package stats

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/sartorproj/goseasonal/timeseries"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultMaxPairs bounds the number of pairwise slopes evaluated by TheilSen.
// Larger inputs are subsampled.
const DefaultMaxPairs = 250000

// TheilSenOptions controls the Theil-Sen estimator.
type TheilSenOptions struct {
	MaxPairs   int     // Pair budget before subsampling (default: DefaultMaxPairs)
	Seed       uint64  // Seed of the pair sampler, fixed for reproducible fits
	Confidence float64 // Confidence level of the slope interval (default: 0.95)
}

// DefaultTheilSenOptions returns the default estimator options.
func DefaultTheilSenOptions() *TheilSenOptions {
	return &TheilSenOptions{
		MaxPairs:   DefaultMaxPairs,
		Seed:       0x5eed,
		Confidence: 0.95,
	}
}

// LineFit is a robust straight-line fit y = Intercept + Slope*x.
type LineFit struct {
	Slope     float64
	Intercept float64
	Lower     float64 // Lower confidence bound of the slope
	Upper     float64 // Upper confidence bound of the slope
	Pairs     int     // Number of pairwise slopes used
	Sampled   bool    // Whether the pairs were subsampled
}

// At evaluates the fitted line at x.
func (f *LineFit) At(x float64) float64 {
	return f.Intercept + f.Slope*x
}

// Evaluate returns the fitted line at indices 0..n-1.
func (f *LineFit) Evaluate(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = f.At(float64(i))
	}
	return out
}

// HasSlope reports whether the slope confidence interval excludes zero.
func (f *LineFit) HasSlope() bool {
	return f.Lower > 0 || f.Upper < 0
}

// TheilSen fits a line by the Theil-Sen estimator: the slope is the median of
// all pairwise slopes (y[j]-y[i])/(x[j]-x[i]), and the intercept puts the
// line through median(y) - slope*median(x). Median slopes are insensitive to
// the phase at which a periodic signal is windowed, unlike least squares.
//
// The slope interval follows Sen (1968) with the normal approximation.
func TheilSen(x, y []float64, opts *TheilSenOptions) (*LineFit, error) {
	if opts == nil {
		opts = DefaultTheilSenOptions()
	}
	n := len(y)
	if len(x) != n {
		return nil, fmt.Errorf("theil-sen: %d x values for %d y values", len(x), n)
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: theil-sen needs at least 2 points, got %d", timeseries.ErrDegenerateInput, n)
	}
	if timeseries.HasMissing(x) || timeseries.HasMissing(y) {
		return nil, fmt.Errorf("theil-sen: %w", timeseries.ErrMissingValues)
	}
	if IsConstant(x) {
		return nil, fmt.Errorf("%w: all x values are equal", timeseries.ErrDegenerateInput)
	}
	if IsConstant(y) {
		return nil, fmt.Errorf("%w: constant series has no slope information", timeseries.ErrDegenerateInput)
	}

	maxPairs := opts.MaxPairs
	if maxPairs <= 0 {
		maxPairs = DefaultMaxPairs
	}
	total := n * (n - 1) / 2

	var slopes []float64
	sampled := total > maxPairs
	if sampled {
		slopes = samplePairSlopes(x, y, maxPairs, opts.Seed)
	} else {
		slopes = make([]float64, 0, total)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if dx := x[j] - x[i]; dx != 0 {
					slopes = append(slopes, (y[j]-y[i])/dx)
				}
			}
		}
	}
	slices.Sort(slopes)

	slope := sortedMedian(slopes)
	fit := &LineFit{
		Slope:     slope,
		Intercept: Median(y) - slope*Median(x),
		Pairs:     len(slopes),
		Sampled:   sampled,
	}
	sampledFrom := 0
	if sampled {
		sampledFrom = total
	}
	fit.Lower, fit.Upper = senInterval(slopes, x, sampledFrom, opts.Confidence)
	return fit, nil
}

// TheilSenSeries fits a Theil-Sen line against the sample index 0..N-1.
func TheilSenSeries(y []float64, opts *TheilSenOptions) (*LineFit, error) {
	x := make([]float64, len(y))
	for i := range x {
		x[i] = float64(i)
	}
	return TheilSen(x, y, opts)
}

// samplePairSlopes draws m pairs uniformly with replacement from a seeded
// generator, skipping pairs with equal x.
func samplePairSlopes(x, y []float64, m int, seed uint64) []float64 {
	n := len(x)
	rng := rand.New(rand.NewPCG(seed, uint64(n)))
	slopes := make([]float64, 0, m)
	for attempts := 0; len(slopes) < m && attempts < 4*m; attempts++ {
		i, j := rng.IntN(n), rng.IntN(n)
		if i == j {
			continue
		}
		if dx := x[j] - x[i]; dx != 0 {
			slopes = append(slopes, (y[j]-y[i])/dx)
		}
	}
	return slopes
}

// senInterval returns the confidence bounds of the median slope. The rank
// offsets come from the variance of Kendall's statistic, corrected for ties
// in x and rescaled when the slopes are a sample of sampledFrom pairs.
func senInterval(sorted, x []float64, sampledFrom int, confidence float64) (lower, upper float64) {
	nt := len(sorted)
	if nt == 0 {
		return math.NaN(), math.NaN()
	}
	if confidence <= 0 || confidence >= 1 {
		confidence = 0.95
	}
	z := distuv.UnitNormal.Quantile(1 - (1-confidence)/2)

	n := float64(len(x))
	sigsq := n * (n - 1) * (2*n + 5)
	for _, k := range tieCounts(x) {
		kf := float64(k)
		sigsq -= kf * (kf - 1) * (2*kf + 5)
	}
	sigma := math.Sqrt(sigsq / 18)
	if sampledFrom > 0 {
		sigma *= float64(nt) / float64(sampledFrom)
	}

	hi := min(int(math.RoundToEven((float64(nt)+z*sigma)/2)), nt-1)
	lo := max(int(math.RoundToEven((float64(nt)-z*sigma)/2))-1, 0)
	return sorted[lo], sorted[hi]
}

// tieCounts returns the sizes of groups of repeated values in x.
func tieCounts(x []float64) []int {
	sorted := slices.Clone(x)
	slices.Sort(sorted)
	var counts []int
	run := 1
	for i := 1; i <= len(sorted); i++ {
		if i < len(sorted) && sorted[i] == sorted[i-1] {
			run++
			continue
		}
		if run > 1 {
			counts = append(counts, run)
		}
		run = 1
	}
	return counts
}
