package timeseries

import "errors"

// Errors shared by every stage of the trend and seasonal pipeline.
var (
	// ErrInvalidPeriod is returned when a supplied period is outside [2, N/2],
	// or when the series is too short to hold any period.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrDegenerateInput is returned for constant input where a slope is
	// required, or for a series holding only missing values.
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrInsufficientData is returned when no candidate period has at least
	// two full cycles of data.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrMissingValues is returned when NaN values reach a stage that needs a
	// complete series.
	ErrMissingValues = errors.New("series contains missing values")
)
