// Package goseasonal estimates the trend and seasonal structure of noisy,
// evenly spaced time series without knowing the period in advance.
//
// The work is split across packages:
//
//   - timeseries: the Series type, CSV loading, imputation and synthetic generators
//   - stats: Theil-Sen robust lines, medians and the Ljung-Box test
//   - smooth: median, mean and penalized spline smoothers
//   - trend: trend estimators (spline, line, mean, median, none)
//   - periodogram: Welch periodogram and peak extraction
//   - seasonal: cross-validated period selection and the seasonal fit
//
// # Quick Start
//
// Search for a period and fit its offsets:
//
//	series, _ := timeseries.LoadCSV("airpassengers.csv", nil)
//	res, err := seasonal.FitSeries(series, seasonal.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	if res.Seasonal() {
//	    fmt.Printf("period %d, EEV %.2f\n", res.Period, res.EEV)
//	}
//
// Remove the seasonal component:
//
//	adjusted, _ := seasonal.Adjust(series.Values, res.Seasons, nil)
//
// The goseasonal command (cmd/goseasonal) exposes the same analyses on CSV
// files with text, CSV, JSON, YAML and Parquet output.
package goseasonal
