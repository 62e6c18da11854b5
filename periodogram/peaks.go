package periodogram

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Candidate is a high-scoring period together with the FFT periods that
// bracket it. Score is the spectral power relative to the strongest peak.
type Candidate struct {
	Period int     `json:"period" yaml:"period"`
	Score  float64 `json:"score" yaml:"score"`
	Lower  int     `json:"lower" yaml:"lower"`
	Upper  int     `json:"upper" yaml:"upper"`
}

// zeroPower is the power below which a spectrum is treated as empty.
const zeroPower = 1e-8

// Peaks returns the periods whose power is at least thresh times the
// maximum, strongest first. An empty spectrum, such as that of a constant
// series, yields no candidates and no error.
func Peaks(data []float64, thresh float64, opts *Options) ([]Candidate, error) {
	periods, power, err := Periodogram(data, opts)
	if err != nil {
		return nil, err
	}
	if len(power) == 0 {
		return nil, nil
	}
	top := floats.Max(power)
	if top <= zeroPower {
		return nil, nil
	}

	power = slices.Clone(power)
	keep := top * thresh
	var cands []Candidate
	for {
		i := floats.MaxIdx(power)
		if power[i] < keep || power[i] == 0 {
			break
		}
		cands = append(cands, Candidate{
			Period: periods[i],
			Score:  power[i] / top,
			Lower:  periods[min(i+1, len(periods)-1)],
			Upper:  periods[max(i-1, 0)],
		})
		power[i] = 0
	}
	return cands, nil
}

// AveragePeriod returns the score-weighted mean period of cands, rounded
// to the nearest integer. It returns 0 when cands is empty.
func AveragePeriod(cands []Candidate) int {
	var sum, weight float64
	for _, c := range cands {
		sum += float64(c.Period) * c.Score
		weight += c.Score
	}
	if weight == 0 {
		return 0
	}
	return int(math.RoundToEven(sum / weight))
}
