package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sartorproj/goseasonal/internal/contract"
	"github.com/sartorproj/goseasonal/internal/schema"
	"github.com/sartorproj/goseasonal/periodogram"
	"github.com/sartorproj/goseasonal/seasonal"
	"github.com/sartorproj/goseasonal/stats"
	"github.com/sartorproj/goseasonal/trend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func mockFitReports() []schema.FitReport {
	values := []float64{3, 5, 3, 5}
	res := &seasonal.Result{
		State:   seasonal.StateDone,
		Period:  2,
		Seasons: []float64{-1, 1},
		Trend:   []float64{4, 4, 4, 4},
		TEV:     1,
		EEV:     0.987654,
		N:       4,
		Cycles:  2,
	}
	dec, err := res.Decompose(values)
	if err != nil {
		panic(err)
	}
	return []schema.FitReport{
		{
			File: "seasonal.csv",
			Timestamps: []time.Time{
				time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			},
			Result:        res,
			Decomposition: dec,
			LjungBox:      &stats.LjungBoxResult{Statistic: 1.5, PValue: 0.4, Lags: 2, DOF: 2},
		},
		{
			File:   "noise.csv",
			Result: &seasonal.Result{State: seasonal.StateRejected, N: 30, Cycles: 1},
		},
	}
}

func readCSV(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteFitCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeFitCSV(&buf, mockFitReports(), 2))

	records := readCSV(t, &buf)
	require.Len(t, records, 3)
	assert.Equal(t, "file", records[0][0])
	assert.Equal(t, []string{"seasonal.csv", "done", "2", "1.00", "0.99", "0.00", "4", "2", "1.50", "0.4"}, records[1])
	// rejected fits report period 0 and a single cycle
	assert.Equal(t, []string{"noise.csv", "rejected", "0", "0.00", "0.00", "0.00", "30", "1", "", ""}, records[2])
}

func TestWriteFitDetailCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeFitDetailCSV(&buf, mockFitReports(), 1))

	records := readCSV(t, &buf)
	require.Len(t, records, 5) // header + 4 samples; the rejected fit has no decomposition
	assert.Equal(t, []string{"seasonal.csv", "1", "2024-02-01", "2", "5.0", "4.0", "1.0", "1.0", "4.0", "0.0"}, records[2])
}

func TestWriteFitTable(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Precision: 2, Detail: true}
	require.NoError(t, writeFitTable(&buf, mockFitReports(), cfg))

	out := buf.String()
	assert.Contains(t, out, "98.77")
	assert.Contains(t, out, "rejected")
	assert.Contains(t, out, "2024-03-01")
	assert.Contains(t, out, "seasonal.csv (period 2)")
	assert.NotContains(t, out, "\x1b[", "colors must be off")
}

func TestFitPayloadStripsDetail(t *testing.T) {
	reports := mockFitReports()

	stripped := fitPayload(reports, false)
	assert.Nil(t, stripped[0].Decomposition)
	assert.NotNil(t, reports[0].Decomposition, "input must not be modified")
	assert.Same(t, reports[0].Result, stripped[0].Result)

	assert.Equal(t, reports, fitPayload(reports, true))
}

func TestWriteFitJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, fitPayload(mockFitReports(), false)))

	var result []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	require.Len(t, result, 2)
	assert.Equal(t, "seasonal.csv", result[0]["file"])
	inner := result[0]["result"].(map[string]any)
	assert.Equal(t, "done", inner["state"])
	assert.Equal(t, float64(2), inner["period"])
	assert.NotContains(t, result[0], "decomposition")
	assert.Contains(t, result[0], "ljung_box")
	assert.Equal(t, "rejected", result[1]["result"].(map[string]any)["state"])
}

func TestWriteFitYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeYAML(&buf, fitPayload(mockFitReports(), false)))

	var result []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &result))
	require.Len(t, result, 2)
	assert.Equal(t, "noise.csv", result[1]["file"])
	assert.Equal(t, "rejected", result[1]["result"].(map[string]any)["state"])
}

func TestAdjustOutputs(t *testing.T) {
	reports := mockFitReports()

	series := adjustedSeries(reports)
	require.Len(t, series, 1)
	assert.Equal(t, []float64{4, 4, 4, 4}, series[0].Adjusted)

	var buf bytes.Buffer
	require.NoError(t, writeAdjustCSV(&buf, reports, 0))
	records := readCSV(t, &buf)
	require.Len(t, records, 5)
	assert.Equal(t, []string{"seasonal.csv", "0", "2024-01-01", "3", "4"}, records[1])

	buf.Reset()
	require.NoError(t, writeAdjustTable(&buf, reports, &contract.Config{Precision: 1}))
	assert.Contains(t, buf.String(), "seasonal.csv (period 2)")
	assert.Contains(t, buf.String(), "2024-04-01")
}

func mockTrendReports() []schema.TrendReport {
	return []schema.TrendReport{{
		File:      "line.csv",
		Kind:      trend.Line,
		Period:    5,
		EV:        0.5,
		N:         3,
		Value:     []float64{1, 3, 2},
		Trend:     []float64{1, 2, 3},
		Detrended: []float64{0, 1, -1},
	}}
}

func TestTrendOutputs(t *testing.T) {
	reports := mockTrendReports()

	var buf bytes.Buffer
	require.NoError(t, writeTrendCSV(&buf, reports, 3))
	records := readCSV(t, &buf)
	assert.Equal(t, []string{"line.csv", "line", "5", "0.500", "3"}, records[1])

	buf.Reset()
	require.NoError(t, writeTrendDetailCSV(&buf, reports, 0))
	records = readCSV(t, &buf)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"line.csv", "2", "", "2", "3", "-1"}, records[3])

	buf.Reset()
	require.NoError(t, writeTrendTable(&buf, reports, &contract.Config{Precision: 1, Detail: true}))
	assert.Contains(t, buf.String(), "50.0")
	assert.Contains(t, buf.String(), "line.csv (line trend)")

	stripped := trendPayload(reports, false)
	assert.Nil(t, stripped[0].Value)
	assert.NotNil(t, reports[0].Value)
}

func TestPeriodogramOutputs(t *testing.T) {
	reports := []schema.PeriodogramReport{
		{
			File:    "sine.csv",
			N:       200,
			Average: 20,
			Candidates: []periodogram.Candidate{
				{Period: 20, Score: 1, Lower: 17, Upper: 25},
			},
		},
		{File: "flat.csv", N: 50},
	}

	var buf bytes.Buffer
	require.NoError(t, writePeriodogramCSV(&buf, reports, 2))
	records := readCSV(t, &buf)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"sine.csv", "20", "17", "25", "1.00"}, records[1])

	buf.Reset()
	require.NoError(t, writePeriodogramTable(&buf, reports, &contract.Config{Precision: 2}))
	out := buf.String()
	assert.Contains(t, out, "sine.csv: average period 20 (200 samples)")
	assert.Contains(t, out, "17")
	assert.Contains(t, out, "flat.csv: average period 0")
	assert.Contains(t, out, "no periodogram peaks")
}

func TestPrintFitResultsToFile(t *testing.T) {
	dir := t.TempDir()
	for _, mode := range []contract.OutputMode{contract.TextOut, contract.CSVOut, contract.JSONOut, contract.YAMLOut, contract.ParquetOut} {
		t.Run(string(mode), func(t *testing.T) {
			path := filepath.Join(dir, "fit."+string(mode))
			cfg := &contract.Config{Output: mode, OutputFile: path, Precision: 2}
			require.NoError(t, PrintFitResults(mockFitReports(), cfg, time.Second))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		})
	}
}

func TestPrintTextFooter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trend.txt")
	cfg := &contract.Config{Output: contract.TextOut, OutputFile: path, Precision: 2}
	require.NoError(t, PrintTrendResults(mockTrendReports(), cfg, 1500*time.Millisecond))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(content), "Trend estimation completed in 1.5s for 1 file(s).\n"))
}

func TestCreateFormatters(t *testing.T) {
	fmtFloat, fmtPct := createFormatters(3)
	assert.Equal(t, "1.235", fmtFloat(1.23456))
	assert.Equal(t, "12.346", fmtPct(0.123456))
}

func TestSampleLabel(t *testing.T) {
	ts := []time.Time{time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2020-05-01", sampleLabel(ts, 0))
	assert.Equal(t, "1", sampleLabel(ts, 1))
	assert.Equal(t, "Date", sampleHeader(ts))
	assert.Equal(t, "#", sampleHeader(nil))
}
