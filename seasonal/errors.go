package seasonal

import (
	"errors"

	"github.com/sartorproj/goseasonal/timeseries"
)

var (
	ErrInvalidPeriod    = timeseries.ErrInvalidPeriod
	ErrDegenerateInput  = timeseries.ErrDegenerateInput
	ErrInsufficientData = timeseries.ErrInsufficientData
	ErrMissingValues    = timeseries.ErrMissingValues

	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrLengthMismatch = errors.New("length mismatch")
)
