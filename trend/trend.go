package trend

import (
	"fmt"
	"math"

	"github.com/sartorproj/goseasonal/smooth"
	"github.com/sartorproj/goseasonal/stats"
	"github.com/sartorproj/goseasonal/timeseries"
	"gonum.org/v1/gonum/stat"
)

// DefaultPTimes is the default smoothing window as a multiple of the period.
const DefaultPTimes = 2.0

const (
	// minSpan is the narrowest smoothing window.
	minSpan = 3
	// spanDivisor bounds the span from below at n/spanDivisor, which caps
	// a spline trend at about spanDivisor/2 segments on long series.
	spanDivisor = 64
)

// Options configures trend estimation.
type Options struct {
	PTimes   float64                // Window size as a multiple of the period (default: 2)
	TheilSen *stats.TheilSenOptions // Robust line options for Line and the aglet ends
	Spline   *smooth.SplineOptions  // Spline penalty for Spline
}

// DefaultOptions returns the default estimation options.
func DefaultOptions() *Options {
	return &Options{
		PTimes:   DefaultPTimes,
		TheilSen: stats.DefaultTheilSenOptions(),
		Spline:   smooth.DefaultSplineOptions(),
	}
}

type estimator func(data []float64, window int, opts *Options) ([]float64, error)

var estimators = map[Kind]estimator{
	Spline: splineTrend,
	Line:   lineTrend,
	Mean:   meanTrend,
	Median: medianTrend,
	None:   noneTrend,
}

// Estimate fits a trend of the given kind to data. The smoothing window is
// derived from period; a period of 0 means the period is guessed from the
// data. Missing values are interpolated before fitting.
func Estimate(data []float64, kind Kind, period int, opts *Options) ([]float64, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	fit, ok := estimators[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	n := len(data)
	if n == 0 {
		return nil, fmt.Errorf("trend: %w: empty series", timeseries.ErrInsufficientData)
	}
	if period != 0 && (period < 2 || period > n/2) {
		return nil, fmt.Errorf("trend: %w: period %d outside [2, %d]",
			timeseries.ErrInvalidPeriod, period, n/2)
	}

	data, err := timeseries.Interpolate(data)
	if err != nil {
		return nil, fmt.Errorf("trend: %w", err)
	}
	if kind == None {
		return noneTrend(data, 0, opts)
	}
	if period == 0 {
		period = GuessPeriod(data)
	}
	if kind == Spline && Span(n, period, opts.PTimes) >= n {
		// a span covering the series leaves only a straight line
		return smooth.SplineFilter(data, n, opts.Spline)
	}
	return fit(data, Window(n, period, opts.PTimes), opts)
}

// MinSpan returns the narrowest smoothing span for n samples:
// max(3, n/64).
func MinSpan(n int) int {
	return max(minSpan, n/spanDivisor)
}

// Span returns the smoothing span for a period before it is made odd and
// clipped: max(ptimes*period, MinSpan(n)).
func Span(n, period int, ptimes float64) int {
	if ptimes <= 0 {
		ptimes = DefaultPTimes
	}
	return max(int(ptimes*float64(period)), MinSpan(n))
}

// Window returns Span made odd and clipped to n.
func Window(n, period int, ptimes float64) int {
	span := Span(n, period, ptimes)
	if span%2 == 0 {
		span++
	}
	if span > n {
		span = n
		if span%2 == 0 {
			span--
		}
	}
	return max(span, 1)
}

func splineTrend(data []float64, window int, opts *Options) ([]float64, error) {
	fitted, err := smooth.SplineFilter(data, window, opts.Spline)
	if err != nil {
		return nil, err
	}
	return smooth.Aglet(fitted, window), nil
}

func meanTrend(data []float64, window int, _ *Options) ([]float64, error) {
	filtered, err := smooth.MeanFilter(data, window)
	if err != nil {
		return nil, err
	}
	return smooth.Aglet(filtered, window), nil
}

func medianTrend(data []float64, window int, _ *Options) ([]float64, error) {
	filtered, err := smooth.MedianFilter(data, window)
	if err != nil {
		return nil, err
	}
	return smooth.Aglet(filtered, window), nil
}

// lineTrend fits a robust line to median-filtered data. The filter knocks
// down seasonal variation and its shortened boundary windows are discarded.
// A slope whose confidence interval contains zero yields a flat trend.
func lineTrend(data []float64, window int, opts *Options) ([]float64, error) {
	if stats.IsConstant(data) {
		return nil, fmt.Errorf("trend: line through constant series: %w", timeseries.ErrDegenerateInput)
	}
	n := len(data)
	filtered, err := smooth.MedianFilter(data, window)
	if err != nil {
		return nil, err
	}
	half := window / 2
	core := filtered[half : n-half]

	flat := func() []float64 { return constant(n, stats.Median(data)) }
	if len(core) < 2 || stats.IsConstant(core) {
		return flat(), nil
	}
	fit, err := stats.TheilSenSeries(core, opts.TheilSen)
	if err != nil || !fit.HasSlope() {
		return flat(), nil
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = fit.At(float64(i - half))
	}
	return out, nil
}

func noneTrend(data []float64, _ int, _ *Options) ([]float64, error) {
	return constant(len(data), stat.Mean(data, nil)), nil
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// EV returns the fraction of the variance of data removed by subtracting
// trend. A constant series has nothing to explain and yields 0.
func EV(data, trend []float64) float64 {
	v := timeseries.PopVariance(data)
	if v == 0 || math.IsNaN(v) {
		return 0
	}
	return 1 - timeseries.PopVariance(timeseries.Sub(data, trend))/v
}
