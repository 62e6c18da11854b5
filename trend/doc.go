// Package trend estimates the slowly varying level of a series.
//
// Trend is meant in the sense of a lowpass smoothing that, once subtracted,
// leaves the seasonal variation intact. Smoothing windows are sized from
// the seasonal period (a multiple of it, two by default) so that whole
// cycles are averaged away. When no period is known, a rough one is
// guessed from the periodogram of broadly median-filtered data.
//
// Basic usage:
//
//	level, err := trend.Estimate(values, trend.Spline, 12, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Kinds:
//   - Spline: penalized cubic B-spline with straightened ends (default)
//   - Line: robust Theil-Sen line through median-filtered data
//   - Mean, Median: moving mean or median with straightened ends
//   - None: the constant mean level
package trend
