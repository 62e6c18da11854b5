package periodogram

import (
	"fmt"
	"math"

	"github.com/sartorproj/goseasonal/timeseries"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultMinPeriod is the shortest period scored by default.
	DefaultMinPeriod = 4
	// MaxFFTPeriod caps the default longest period.
	MaxFFTPeriod = 512
	// MinFFTCycles is the number of cycles assumed when sizing the
	// default longest period.
	MinFFTCycles = 3
)

// Options bounds the periods a periodogram reports. Zero values select
// the defaults.
type Options struct {
	MinPeriod int
	MaxPeriod int
}

// DefaultMaxPeriod returns min(n/3, 512).
func DefaultMaxPeriod(n int) int {
	return min(n/MinFFTCycles, MaxFFTPeriod)
}

func (o *Options) bounds(n int) (lo, hi int) {
	lo, hi = DefaultMinPeriod, DefaultMaxPeriod(n)
	if o == nil {
		return lo, hi
	}
	if o.MinPeriod > 0 {
		lo = o.MinPeriod
	}
	if o.MaxPeriod > 0 {
		hi = o.MaxPeriod
	}
	return lo, hi
}

// Periodogram estimates the spectral power of data at integer periods.
//
// Periods are returned in descending order, starting with the first FFT
// period at or above the maximum period so that the longest in-range
// period has an upper bracket. Powers at frequencies that round to the
// same period are merged by taking the maximum, and the artifact at the
// segment length is zeroed.
func Periodogram(data []float64, opts *Options) ([]int, []float64, error) {
	if timeseries.HasMissing(data) {
		return nil, nil, timeseries.ErrMissingValues
	}
	n := len(data)
	minPeriod, maxPeriod := opts.bounds(n)
	nperseg := min(2*maxPeriod, n/2)
	if nperseg < 2 {
		return nil, nil, fmt.Errorf("%w: %d samples are too few for a periodogram",
			timeseries.ErrInsufficientData, n)
	}

	power := welch(data, nperseg)

	// skip DC; bin k has period nperseg/k
	var periods []int
	var merged []float64
	for k := 1; k < len(power); k++ {
		p := int(math.RoundToEven(float64(nperseg) / float64(k)))
		if last := len(periods) - 1; last >= 0 && periods[last] == p {
			merged[last] = math.Max(merged[last], power[k])
			continue
		}
		periods = append(periods, p)
		merged = append(merged, power[k])
	}
	for i, p := range periods {
		if p == nperseg {
			merged[i] = 0
		}
	}

	start := 0
	for i, p := range periods {
		if p >= maxPeriod {
			start = i
		}
	}
	end := len(periods)
	for end > start && periods[end-1] < minPeriod {
		end--
	}
	return periods[start:end], merged[start:end], nil
}

// welch returns the one-sided power spectrum of data averaged over
// half-overlapping, Hann-windowed, mean-removed segments of length nperseg.
func welch(data []float64, nperseg int) []float64 {
	window := hann(nperseg)
	wsum := floats.Sum(window)
	scale := 1 / (wsum * wsum)

	fft := fourier.NewFFT(nperseg)
	nfreq := nperseg/2 + 1
	power := make([]float64, nfreq)
	coeffs := make([]complex128, nfreq)
	seg := make([]float64, nperseg)

	step := nperseg - nperseg/2
	nseg := 0
	for lo := 0; lo+nperseg <= len(data); lo += step {
		mean := stat.Mean(data[lo:lo+nperseg], nil)
		for i := range seg {
			seg[i] = (data[lo+i] - mean) * window[i]
		}
		fft.Coefficients(coeffs, seg)
		for k, c := range coeffs {
			re, im := real(c), imag(c)
			power[k] += (re*re + im*im) * scale
		}
		nseg++
	}

	floats.Scale(1/float64(nseg), power)
	// fold negative frequencies into the one-sided spectrum; DC and an
	// even-length Nyquist bin have no mirror
	last := nfreq
	if nperseg%2 == 0 {
		last--
	}
	floats.Scale(2, power[1:last])
	return power
}

// hann returns the periodic Hann window used for spectral estimation.
func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}
