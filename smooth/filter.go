package smooth

import (
	"errors"
	"fmt"

	"github.com/sartorproj/goseasonal/stats"
	"gonum.org/v1/gonum/floats"
)

// ErrInvalidWindow is returned for non-positive window sizes.
var ErrInvalidWindow = errors.New("window must be a positive integer")

// OddWindow validates window and rounds even sizes up to the next odd value.
func OddWindow(window int) (int, error) {
	if window <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidWindow, window)
	}
	if window%2 == 0 {
		window++
	}
	return window, nil
}

// MedianFilter returns the centered moving median of data. Windows are
// clipped at the ends of the sequence, so boundary windows are shorter.
func MedianFilter(data []float64, window int) ([]float64, error) {
	window, err := OddWindow(window)
	if err != nil {
		return nil, err
	}
	half := window / 2
	n := len(data)
	out := make([]float64, n)
	for i := range out {
		lo, hi := max(0, i-half), min(n, i+half+1)
		out[i] = stats.Median(data[lo:hi])
	}
	return out, nil
}

// MeanFilter returns the centered moving mean of data with the same window
// clipping as MedianFilter.
func MeanFilter(data []float64, window int) ([]float64, error) {
	window, err := OddWindow(window)
	if err != nil {
		return nil, err
	}
	half := window / 2
	n := len(data)

	cum := make([]float64, n+1)
	floats.CumSum(cum[1:], data)

	out := make([]float64, n)
	for i := range out {
		lo, hi := max(0, i-half), min(n, i+half+1)
		out[i] = (cum[hi] - cum[lo]) / float64(hi-lo)
	}
	return out, nil
}

// Aglet straightens the ends of a windowed smoother's output. The window/2
// samples at each end are replaced by a Theil-Sen line fitted to the full
// window at that end and anchored at the first interior sample. Inputs
// shorter than the window are returned unchanged.
func Aglet(src []float64, window int) []float64 {
	dst := make([]float64, len(src))
	copy(dst, src)

	n := len(src)
	half := window / 2
	if half == 0 || window > n {
		return dst
	}

	leftSlope := endSlope(src[:window])
	rightSlope := endSlope(src[n-window:])

	for i := 0; i < half; i++ {
		dst[i] = float64(i-half)*leftSlope + src[half]
	}
	for k := 0; k < half; k++ {
		dst[n-half+k] = float64(k+1)*rightSlope + src[n-half-1]
	}
	return dst
}

// endSlope is the robust slope of an end segment; flat segments have none.
func endSlope(segment []float64) float64 {
	fit, err := stats.TheilSenSeries(segment, nil)
	if err != nil {
		return 0
	}
	return fit.Slope
}
