package timeseries

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSVFromReader(t *testing.T) {
	csvData := `ds,y
2020-01-01,100
2020-01-02,101
2020-01-03,102
2020-01-04,103
2020-01-05,104`

	series, err := LoadCSVFromReader(strings.NewReader(csvData), DefaultCSVOptions())
	require.NoError(t, err)

	assert.Equal(t, []float64{100, 101, 102, 103, 104}, series.Values)
	assert.Equal(t, "y", series.Name)
	require.Len(t, series.Timestamps, 5)
	assert.Equal(t, 2020, series.Timestamps[0].Year())
}

func TestLoadCSVWithFilter(t *testing.T) {
	csvData := `unique_id,ds,y
A,2020-01-01,100
B,2020-01-01,200
A,2020-01-02,101
B,2020-01-02,201
A,2020-01-03,102`

	opts := DefaultCSVOptions()
	opts.IDColumn = "unique_id"
	opts.IDFilter = "A"

	series, err := LoadCSVFromReader(strings.NewReader(csvData), opts)
	require.NoError(t, err)

	assert.Equal(t, []float64{100, 101, 102}, series.Values)
	assert.Len(t, series.Timestamps, 3)
}

func TestLoadCSVKeepsMissingAsNaN(t *testing.T) {
	csvData := `ds,y
2020-01-01,100
2020-01-02,NA
2020-01-03,102
2020-01-04,NaN
2020-01-05,
2020-01-06,oops
2020-01-07,106`

	series, err := LoadCSVFromReader(strings.NewReader(csvData), DefaultCSVOptions())
	require.NoError(t, err)

	require.Equal(t, 7, series.Len(), "missing cells must keep their slot")
	assert.True(t, math.IsNaN(series.Values[1]))
	assert.True(t, math.IsNaN(series.Values[3]))
	assert.True(t, math.IsNaN(series.Values[4]))
	assert.True(t, math.IsNaN(series.Values[5]))
	assert.Equal(t, 106.0, series.Values[6])
	assert.True(t, series.HasMissing())
}

func TestLoadCSVColumnSelection(t *testing.T) {
	csvData := `Month,Beer,Cement
1990-01,164,465
1990-02,148,532
1990-03,152,561`

	t.Run("by name", func(t *testing.T) {
		opts := DefaultCSVOptions()
		opts.ValueColumn = "Beer"
		series, err := LoadCSVFromReader(strings.NewReader(csvData), opts)
		require.NoError(t, err)
		assert.Equal(t, []float64{164, 148, 152}, series.Values)
		assert.Equal(t, "Beer", series.Name)
	})

	t.Run("rightmost by default", func(t *testing.T) {
		series, err := LoadCSVFromReader(strings.NewReader(csvData), DefaultCSVOptions())
		require.NoError(t, err)
		assert.Equal(t, []float64{465, 532, 561}, series.Values)
		assert.Equal(t, "Cement", series.Name)
	})

	t.Run("by index", func(t *testing.T) {
		opts := DefaultCSVOptions()
		opts.ValueIndex = 1
		series, err := LoadCSVFromReader(strings.NewReader(csvData), opts)
		require.NoError(t, err)
		assert.Equal(t, "Beer", series.Name)
	})

	t.Run("unknown name", func(t *testing.T) {
		opts := DefaultCSVOptions()
		opts.ValueColumn = "Gas"
		_, err := LoadCSVFromReader(strings.NewReader(csvData), opts)
		assert.Error(t, err)
	})

	t.Run("index out of range", func(t *testing.T) {
		opts := DefaultCSVOptions()
		opts.ValueIndex = 7
		_, err := LoadCSVFromReader(strings.NewReader(csvData), opts)
		assert.Error(t, err)
	})
}

func TestLoadCSVNoHeader(t *testing.T) {
	csvData := `1,10
2,20
3,30`

	opts := DefaultCSVOptions()
	opts.HasHeader = false

	series, err := LoadCSVFromReader(strings.NewReader(csvData), opts)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30}, series.Values)
}

func TestLoadCSVEmpty(t *testing.T) {
	_, err := LoadCSVFromReader(strings.NewReader("ds,y\n"), DefaultCSVOptions())
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	series := New([]float64{1.5, 2, 3})
	series.Name = "load"

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, series, true))
	assert.Equal(t, "index,load\n0,1.5\n1,2\n2,3\n", buf.String())

	back, err := LoadCSVFromReader(&buf, DefaultCSVOptions())
	require.NoError(t, err)
	assert.Equal(t, series.Values, back.Values)
}

func TestSaveCSV(t *testing.T) {
	start := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	stamps := []time.Time{start, start.AddDate(0, 0, 1), start.AddDate(0, 0, 2)}
	series, err := NewWithTimestamps(stamps, []float64{4, 5.25, -1})
	require.NoError(t, err)
	series.Name = "visits"

	path := filepath.Join(t.TempDir(), "visits.csv")
	require.NoError(t, SaveCSV(series, path, true))

	back, err := LoadCSV(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "visits", back.Name)
	assert.Equal(t, series.Values, back.Values)
	require.Len(t, back.Timestamps, 3)
	assert.True(t, stamps[2].Equal(back.Timestamps[2]))

	assert.Error(t, SaveCSV(series, filepath.Join(t.TempDir(), "no", "dir.csv"), true))
}
