package seasonal

import (
	"fmt"
	"io"
	"runtime"

	"github.com/sartorproj/goseasonal/trend"
	log "github.com/sirupsen/logrus"
)

// Config holds the parameters of a seasonal fit. A Config is read-only
// during a fit and may be shared between concurrent calls.
type Config struct {
	Period      int             // Seasonal period; 0 estimates it from the data
	Trend       trend.Kind      // Trend estimator (default: spline)
	TrendValues []float64       // Precomputed trend; overrides Trend when set
	Thresh      float64         // Periodogram peak threshold in [0, 1]; 0 scans every period (default: 0.9)
	MinEV       float64         // Minimum cross-validated explained variance (default: 0.05)
	MinPeriod   int             // Shortest period of the exhaustive scan (default: 2)
	PTimes      float64         // Trend window as a multiple of the period (default: 2)
	Workers     int             // Period search goroutines (default: GOMAXPROCS)
	Logger      log.FieldLogger // Debug tracing (default: discarded)
}

// DefaultConfig returns the default seasonal configuration.
func DefaultConfig() *Config {
	return &Config{
		Trend:     trend.Spline,
		Thresh:    0.9,
		MinEV:     0.05,
		MinPeriod: 2,
		PTimes:    trend.DefaultPTimes,
		Workers:   runtime.GOMAXPROCS(0),
		Logger:    discardLogger(),
	}
}

// withDefaults validates cfg and returns a copy with unset fields filled in.
func (cfg *Config) withDefaults() (*Config, error) {
	if cfg == nil {
		return DefaultConfig(), nil
	}
	c := *cfg
	if c.Thresh < 0 || c.Thresh > 1 {
		return nil, fmt.Errorf("%w: thresh %g outside [0, 1]", ErrInvalidConfig, c.Thresh)
	}
	if c.MinEV < 0 || c.MinEV > 1 {
		return nil, fmt.Errorf("%w: minev %g outside [0, 1]", ErrInvalidConfig, c.MinEV)
	}
	if c.Period < 0 {
		return nil, fmt.Errorf("%w: negative period %d", ErrInvalidPeriod, c.Period)
	}
	if _, err := c.Trend.MarshalText(); err != nil && c.TrendValues == nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.MinPeriod < 2 {
		c.MinPeriod = 2
	}
	if c.PTimes <= 0 {
		c.PTimes = trend.DefaultPTimes
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Logger == nil {
		c.Logger = discardLogger()
	}
	return &c, nil
}

// TrendOptions returns the trend estimation options implied by cfg.
func (cfg *Config) TrendOptions() *trend.Options {
	opts := trend.DefaultOptions()
	opts.PTimes = cfg.PTimes
	return opts
}

func discardLogger() log.FieldLogger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}
