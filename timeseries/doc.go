// Package timeseries provides time series data structures and utilities.
//
// This package includes the Series type for representing evenly spaced
// samples, missing-value imputation, CSV loading, synthetic test signals and
// the error values shared by the trend and seasonal packages.
//
// # Creating a Series
//
// Create a time series from a slice:
//
//	values := []float64{100, 102, 105, 103, 108, 110}
//	series := timeseries.New(values)
//
// # Loading from CSV
//
// Load time series data from CSV files. Missing cells (NA, NaN, empty) keep
// their position as NaN so the sample spacing is preserved:
//
//	// Load a specific column
//	series, err := timeseries.LoadCSVColumn("data.csv", "value")
//
//	// Rightmost column, first 80% of the rows
//	series, err := timeseries.LoadCSV("data.csv", nil)
//	head, err := series.Split(0.8)
//
// # Missing Values
//
// Spectral and cross-validation steps need a complete series:
//
//	filled, err := timeseries.Interpolate(series.Values)
//
// Interior gaps are filled linearly, edge gaps with the nearest valid value.
//
// # Synthetic Signals
//
// Generators return periodic test signals with an optional partial cycle:
//
//	s := timeseries.Sine(1.0, 25, 4, 0)        // 4 cycles of period 25
//	q := timeseries.Square(1.0, 0.3, 12, 3, 4) // 30% duty cycle
//	n := timeseries.AddNoise(rng, s, 0.1)
//
// # CSV Options
//
// Customize CSV loading:
//
//	opts := &timeseries.CSVOptions{
//	    DateColumn:  "date",
//	    ValueColumn: "value",
//	    DateFormat:  "2006-01-02",
//	    HasHeader:   true,
//	}
//	series, err := timeseries.LoadCSVFromReader(reader, opts)
package timeseries
