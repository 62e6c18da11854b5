package timeseries

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	s := New(values)

	assert.Equal(t, 5, s.Len())
	assert.Equal(t, values, s.Values)
	assert.Nil(t, s.Timestamps)
}

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"simple", []float64{1, 2, 3, 4, 5}, 3.0},
		{"single", []float64{5}, 5.0},
		{"negative", []float64{-1, -2, -3}, -2.0},
		{"mixed", []float64{-1, 0, 1}, 0.0},
		{"empty", []float64{}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, New(tt.values).Mean(), 1e-10)
		})
	}
}

func TestVariance(t *testing.T) {
	s := New([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	assert.InDelta(t, 4.0, s.Variance(), 1e-10)
	assert.InDelta(t, 2.0, s.Std(), 1e-10)
	assert.Equal(t, 0.0, New(nil).Variance())
}

func TestMinMaxMedian(t *testing.T) {
	s := New([]float64{5, 2, 8, 1, 9, 3})

	assert.Equal(t, 1.0, s.Min())
	assert.Equal(t, 9.0, s.Max())
	assert.Equal(t, 4.0, s.Median())
	assert.True(t, math.IsNaN(New(nil).Min()))
	assert.True(t, math.IsNaN(New(nil).Median()))
}

func TestSliceAndSplit(t *testing.T) {
	s := New([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})

	assert.Equal(t, []float64{2, 3, 4}, s.Slice(2, 5).Values)
	assert.Equal(t, 0, s.Slice(5, 2).Len())
	assert.Equal(t, 10, s.Slice(-3, 40).Len())

	tests := []struct {
		name  string
		split float64
		want  int
	}{
		{"none", 0, 10},
		{"fraction", 0.2, 2},
		{"whole", 1, 10},
		{"count", 7, 7},
		{"count beyond length", 70, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Split(tt.split)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Len())
		})
	}

	_, err := s.Split(-1)
	assert.Error(t, err)
}

func TestCopyIsDeep(t *testing.T) {
	s := New([]float64{1, 2, 3})
	c := s.Copy()
	c.Values[0] = 100

	assert.Equal(t, 1.0, s.Values[0])
}

func TestInterpolate(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name     string
		values   []float64
		expected []float64
	}{
		{"complete", []float64{1, 2, 3}, []float64{1, 2, 3}},
		{"interior gap", []float64{1, nan, nan, 4}, []float64{1, 2, 3, 4}},
		{"leading gap", []float64{nan, nan, 5, 6}, []float64{5, 5, 5, 6}},
		{"trailing gap", []float64{1, 2, nan}, []float64{1, 2, 2}},
		{"single valid", []float64{nan, 7, nan}, []float64{7, 7, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Interpolate(tt.values)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.expected, got, 1e-12)
			assert.False(t, HasMissing(got))
		})
	}

	t.Run("all missing", func(t *testing.T) {
		_, err := Interpolate([]float64{nan, nan})
		assert.ErrorIs(t, err, ErrDegenerateInput)
	})

	t.Run("input untouched", func(t *testing.T) {
		in := []float64{1, nan, 3}
		_, err := New(in).Interpolate()
		require.NoError(t, err)
		assert.True(t, math.IsNaN(in[1]))
	})
}

func TestGenerators(t *testing.T) {
	t.Run("sine", func(t *testing.T) {
		s := Sine(2, 12, 3, 4)
		require.Len(t, s, 40)
		assert.InDelta(t, 0, s[0], 1e-12)
		assert.InDelta(t, 2, s[3], 1e-12)
		assert.Equal(t, s[:4], s[36:])
	})

	t.Run("square", func(t *testing.T) {
		s := Square(3, 0.25, 8, 2, 0)
		assert.Equal(t, []float64{3, 3, 0, 0, 0, 0, 0, 0, 3, 3, 0, 0, 0, 0, 0, 0}, s)
	})

	t.Run("sawtooth", func(t *testing.T) {
		s := Sawtooth(1, 4, 1, 0)
		assert.InDeltaSlice(t, []float64{0, 0.5, 1, 0.5}, s, 1e-12)
	})

	t.Run("seeded noise is reproducible", func(t *testing.T) {
		base := make([]float64, 50)
		a := AddNoise(rand.New(rand.NewPCG(1, 2)), base, 0.1)
		b := AddNoise(rand.New(rand.NewPCG(1, 2)), base, 0.1)
		assert.Equal(t, a, b)
		assert.NotEqual(t, base, a)
	})

	t.Run("aperiodic range", func(t *testing.T) {
		for _, v := range Aperiodic(1.5, 200) {
			assert.LessOrEqual(t, math.Abs(v), 1.5+1e-12)
		}
	})

	t.Run("brownian length", func(t *testing.T) {
		assert.Len(t, Brownian(rand.New(rand.NewPCG(3, 4)), 1, 30), 30)
	})
}
