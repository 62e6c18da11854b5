package periodogram

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/sartorproj/goseasonal/timeseries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHann(t *testing.T) {
	assert.InDeltaSlice(t, []float64{0, 0.5, 1, 0.5}, hann(4), 1e-12)
}

func TestPeriodogramAxis(t *testing.T) {
	data := timeseries.Sine(1, 20, 10, 0)

	periods, power, err := Periodogram(data, nil)
	require.NoError(t, err)
	require.Equal(t, len(periods), len(power))

	// nperseg = min(2*66, 200/2) = 100; the artifact at 100 heads the list
	assert.Equal(t, 100, periods[0])
	assert.Zero(t, power[0])
	assert.Equal(t, []int{100, 50, 33, 25, 20, 17, 14, 12}, periods[:8])

	for i := 1; i < len(periods); i++ {
		assert.Less(t, periods[i], periods[i-1], "periods must be unique and descending")
	}
	assert.GreaterOrEqual(t, periods[len(periods)-1], DefaultMinPeriod)
}

func TestPeriodogramBounds(t *testing.T) {
	data := timeseries.Sine(1, 20, 10, 0)

	periods, _, err := Periodogram(data, &Options{MinPeriod: 10, MaxPeriod: 30})
	require.NoError(t, err)
	// nperseg = 60; of the periods at or above the maximum only 30 is kept
	assert.Equal(t, []int{30, 20, 15, 12, 10}, periods)
}

func TestPeriodogramErrors(t *testing.T) {
	_, _, err := Periodogram([]float64{1, 2, 3}, nil)
	assert.ErrorIs(t, err, timeseries.ErrInsufficientData)

	data := timeseries.Sine(1, 20, 10, 0)
	data[7] = math.NaN()
	_, _, err = Periodogram(data, nil)
	assert.ErrorIs(t, err, timeseries.ErrMissingValues)
}

func TestPeaksSine(t *testing.T) {
	data := timeseries.Sine(1, 20, 10, 0)

	cands, err := Peaks(data, 0.9, nil)
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, Candidate{Period: 20, Score: 1, Lower: 17, Upper: 25}, cands[0])
}

func TestPeaksNoisySquare(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	data := timeseries.AddNoise(rng, timeseries.Square(1, 0.5, 16, 12, 0), 0.2)

	cands, err := Peaks(data, 0.5, nil)
	require.NoError(t, err)
	require.NotEmpty(t, cands)
	assert.Equal(t, 16, cands[0].Period)
	assert.Equal(t, 1.0, cands[0].Score)
	for i := 1; i < len(cands); i++ {
		assert.LessOrEqual(t, cands[i].Score, cands[i-1].Score)
		assert.GreaterOrEqual(t, cands[i].Score, 0.5)
	}
}

func TestPeaksLowThresholdTerminates(t *testing.T) {
	data := timeseries.Sine(1, 20, 10, 0)
	cands, err := Peaks(data, 0, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, cands)

	seen := map[int]bool{}
	for _, c := range cands {
		assert.False(t, seen[c.Period])
		seen[c.Period] = true
	}
}

func TestPeaksConstant(t *testing.T) {
	data := make([]float64, 100)
	for i := range data {
		data[i] = 7
	}
	cands, err := Peaks(data, 0.9, nil)
	require.NoError(t, err)
	assert.Empty(t, cands)
}

func TestAveragePeriod(t *testing.T) {
	assert.Equal(t, 0, AveragePeriod(nil))
	assert.Equal(t, 13, AveragePeriod([]Candidate{
		{Period: 10, Score: 1},
		{Period: 20, Score: 0.5},
	}))
	assert.Equal(t, 12, AveragePeriod([]Candidate{{Period: 12, Score: 1}}))
}
