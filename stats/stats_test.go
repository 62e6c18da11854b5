package stats

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/sartorproj/goseasonal/timeseries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTheilSenExactLine(t *testing.T) {
	y := make([]float64, 30)
	for i := range y {
		y[i] = 3 + 2*float64(i)
	}

	fit, err := TheilSenSeries(y, nil)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, fit.Slope, 1e-12)
	assert.InDelta(t, 3.0, fit.Intercept, 1e-12)
	assert.InDelta(t, 2.0, fit.Lower, 1e-12)
	assert.InDelta(t, 2.0, fit.Upper, 1e-12)
	assert.True(t, fit.HasSlope())
	assert.False(t, fit.Sampled)
	assert.Equal(t, 30*29/2, fit.Pairs)
	assert.InDeltaSlice(t, y, fit.Evaluate(len(y)), 1e-9)
}

func TestTheilSenResistsOutliers(t *testing.T) {
	y := make([]float64, 50)
	for i := range y {
		y[i] = 10 - 0.5*float64(i)
	}
	y[3] = 1e6
	y[17] = -1e6
	y[40] = 5e5

	fit, err := TheilSenSeries(y, nil)
	require.NoError(t, err)
	assert.InDelta(t, -0.5, fit.Slope, 1e-9)
	assert.InDelta(t, 10.0, fit.Intercept, 1e-6)
}

func TestTheilSenExplicitX(t *testing.T) {
	x := []float64{0, 2, 4, 4, 8}
	y := []float64{1, 5, 9, 9, 17}

	fit, err := TheilSen(x, y, nil)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, fit.Slope, 1e-12)
	assert.InDelta(t, 1.0, fit.Intercept, 1e-12)
	assert.Equal(t, 9, fit.Pairs, "pairs with equal x are skipped")
}

func TestTheilSenNoSlope(t *testing.T) {
	y := make([]float64, 21)
	for i := range y {
		y[i] = math.Abs(float64(i) - 10)
	}

	fit, err := TheilSenSeries(y, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, fit.Slope, 1e-12)
	assert.LessOrEqual(t, fit.Lower, 0.0)
	assert.GreaterOrEqual(t, fit.Upper, 0.0)
	assert.False(t, fit.HasSlope())
}

func TestTheilSenDegenerate(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
	}{
		{"constant y", []float64{0, 1, 2, 3}, []float64{5, 5, 5, 5}},
		{"equal x", []float64{1, 1, 1}, []float64{1, 2, 3}},
		{"single point", []float64{0}, []float64{1}},
		{"empty", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TheilSen(tt.x, tt.y, nil)
			assert.ErrorIs(t, err, timeseries.ErrDegenerateInput)
		})
	}

	t.Run("length mismatch", func(t *testing.T) {
		_, err := TheilSen([]float64{0, 1}, []float64{0, 1, 2}, nil)
		assert.Error(t, err)
	})

	t.Run("missing values", func(t *testing.T) {
		_, err := TheilSenSeries([]float64{0, math.NaN(), 2}, nil)
		assert.ErrorIs(t, err, timeseries.ErrMissingValues)
	})
}

func TestTheilSenSampledIsReproducible(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	y := make([]float64, 1000)
	for i := range y {
		y[i] = 0.25*float64(i) + rng.NormFloat64()
	}

	opts := DefaultTheilSenOptions()
	opts.MaxPairs = 20000

	a, err := TheilSenSeries(y, opts)
	require.NoError(t, err)
	b, err := TheilSenSeries(y, opts)
	require.NoError(t, err)

	assert.True(t, a.Sampled)
	assert.Equal(t, 20000, a.Pairs)
	assert.Equal(t, a, b, "a fixed seed must give identical fits")
	assert.InDelta(t, 0.25, a.Slope, 0.01)
	assert.True(t, a.HasSlope())
}

func TestMedianAndIsConstant(t *testing.T) {
	assert.Equal(t, 2.5, Median([]float64{4, 1, 3, 2}))
	assert.Equal(t, 3.0, Median([]float64{5, 3, 1}))
	assert.True(t, math.IsNaN(Median(nil)))

	assert.True(t, IsConstant([]float64{7, 7, 7}))
	assert.True(t, IsConstant([]float64{1e9, 1e9 + 1e-6}))
	assert.False(t, IsConstant([]float64{1, 1.001}))
}

func TestACF(t *testing.T) {
	n := 100
	values := make([]float64, n)
	for i := 1; i < n; i++ {
		values[i] = 0.8*values[i-1] + (float64(i%10)-5)/10
	}

	acf := ACF(timeseries.New(values), 10)
	require.Len(t, acf, 11)
	assert.InDelta(t, 1.0, acf[0], 1e-10)
	assert.Greater(t, acf[1], 0.5)

	assert.Nil(t, ACF(timeseries.New([]float64{3, 3, 3}), 2))
}

func TestLjungBox(t *testing.T) {
	n := 200
	rng := rand.New(rand.NewPCG(11, 13))
	white := make([]float64, n)
	for i := range white {
		white[i] = rng.NormFloat64()
	}

	autocorrelated := make([]float64, n)
	for i := 1; i < n; i++ {
		autocorrelated[i] = 0.9*autocorrelated[i-1] + rng.NormFloat64()
	}

	w := LjungBox(timeseries.New(white), 10, 0)
	a := LjungBox(timeseries.New(autocorrelated), 10, 0)
	require.NotNil(t, w)
	require.NotNil(t, a)

	assert.Equal(t, 10, a.DOF)
	assert.Less(t, a.PValue, 0.01)
	assert.Greater(t, a.Statistic, w.Statistic)
	assert.GreaterOrEqual(t, w.PValue, 0.0)
	assert.LessOrEqual(t, w.PValue, 1.0)

	assert.Nil(t, LjungBox(timeseries.New([]float64{1, 2, 3}), 2, 0))
}

func TestDefaultLjungBoxLags(t *testing.T) {
	assert.Equal(t, 10, DefaultLjungBoxLags(100, 0))
	assert.Equal(t, 24, DefaultLjungBoxLags(144, 12))
	assert.Equal(t, 1, DefaultLjungBoxLags(3, 0))
}
