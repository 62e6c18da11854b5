// Package core runs the analyses behind each CLI command: it loads the
// input files, fits them and hands the reports to the output writers.
package core

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sartorproj/goseasonal/internal/contract"
	"github.com/sartorproj/goseasonal/internal/outwriter"
	"github.com/sartorproj/goseasonal/internal/schema"
	"github.com/sartorproj/goseasonal/periodogram"
	"github.com/sartorproj/goseasonal/seasonal"
	"github.com/sartorproj/goseasonal/stats"
	"github.com/sartorproj/goseasonal/timeseries"
	"github.com/sartorproj/goseasonal/trend"
)

// ExecutorFunc defines the function signature for executing a command.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ExecuteFit fits every input file and prints the fit summaries.
func ExecuteFit(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	reports, err := runFits(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.PrintFitResults(reports, cfg, time.Since(start))
}

// ExecuteAdjust fits every input file and prints the seasonally adjusted series.
func ExecuteAdjust(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	reports, err := runFits(ctx, cfg)
	if err != nil {
		return err
	}
	if cfg.SaveDir != "" {
		saveAdjusted(reports, cfg.SaveDir)
	}
	return outwriter.PrintAdjustResults(reports, cfg, time.Since(start))
}

// saveAdjusted writes the adjusted series of each input to dir as
// <name>.adjusted.csv, in a layout LoadCSV reads back. A failed write is
// reported and does not stop the remaining inputs.
func saveAdjusted(reports []schema.FitReport, dir string) {
	for _, r := range reports {
		if r.Decomposition == nil {
			continue
		}
		series := &timeseries.Series{
			Timestamps: r.Timestamps,
			Values:     r.Decomposition.Adjusted,
			Name:       r.Column,
		}
		path := AdjustedPath(dir, r.File)
		if err := timeseries.SaveCSV(series, path, true); err != nil {
			contract.LogWarn(fmt.Sprintf("Cannot save adjusted series of %s", r.File), err)
		}
	}
}

// AdjustedPath returns the file saveAdjusted writes for input in dir.
func AdjustedPath(dir, input string) string {
	base := filepath.Base(input)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+".adjusted.csv")
}

// ExecuteTrend estimates the trend of every input file.
func ExecuteTrend(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	reports, err := forEachFile(ctx, cfg, trendReport)
	if err != nil {
		return err
	}
	return outwriter.PrintTrendResults(reports, cfg, time.Since(start))
}

// ExecutePeriodogram reports the periodogram peaks of every input file.
func ExecutePeriodogram(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	reports, err := forEachFile(ctx, cfg, periodogramReport)
	if err != nil {
		return err
	}
	return outwriter.PrintPeriodogramResults(reports, cfg, time.Since(start))
}

func runFits(ctx context.Context, cfg *contract.Config) ([]schema.FitReport, error) {
	return forEachFile(ctx, cfg, fitReport)
}

// forEachFile loads each input in order and builds its report. It stops at
// the first failure or when ctx is cancelled.
func forEachFile[R any](ctx context.Context, cfg *contract.Config, build func(string, *timeseries.Series, *contract.Config) (*R, error)) ([]R, error) {
	reports := make([]R, 0, len(cfg.Files))
	for _, path := range cfg.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		series, err := loadSeries(path, cfg)
		if err != nil {
			return nil, err
		}
		report, err := build(path, series, cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		reports = append(reports, *report)
	}
	return reports, nil
}

// loadSeries reads one CSV input, applies the split and imputes missing
// values.
func loadSeries(path string, cfg *contract.Config) (*timeseries.Series, error) {
	series, err := timeseries.LoadCSV(path, cfg.CSV)
	if err != nil {
		return nil, err
	}
	series, err = series.Split(cfg.Split)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if series.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", path, timeseries.ErrInsufficientData)
	}
	series, err = series.Interpolate()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return series, nil
}

// fileConfig tags the fit logger with the input path.
func fileConfig(path string, cfg *contract.Config) *seasonal.Config {
	sc := *cfg.Seasonal
	if sc.Logger != nil {
		sc.Logger = sc.Logger.WithField("file", path)
	}
	return &sc
}

func fitReport(path string, series *timeseries.Series, cfg *contract.Config) (*schema.FitReport, error) {
	res, err := seasonal.FitSeries(series, fileConfig(path, cfg))
	if err != nil {
		return nil, err
	}
	dec, err := res.Decompose(series.Values)
	if err != nil {
		return nil, err
	}
	lags := stats.DefaultLjungBoxLags(series.Len(), res.Period)
	return &schema.FitReport{
		File:          path,
		Column:        series.Name,
		Timestamps:    series.Timestamps,
		Result:        res,
		Decomposition: dec,
		LjungBox:      stats.LjungBox(timeseries.New(dec.Residual), lags, 0),
	}, nil
}

func trendReport(path string, series *timeseries.Series, cfg *contract.Config) (*schema.TrendReport, error) {
	sc := cfg.Seasonal
	values, err := trend.Estimate(series.Values, sc.Trend, sc.Period, sc.TrendOptions())
	if err != nil {
		return nil, err
	}
	period := sc.Period
	if period == 0 {
		period = trend.GuessPeriod(series.Values)
	}
	return &schema.TrendReport{
		File:       path,
		Column:     series.Name,
		Kind:       sc.Trend,
		Period:     period,
		EV:         trend.EV(series.Values, values),
		N:          series.Len(),
		Timestamps: series.Timestamps,
		Value:      series.Values,
		Trend:      values,
		Detrended:  timeseries.Sub(series.Values, values),
	}, nil
}

func periodogramReport(path string, series *timeseries.Series, cfg *contract.Config) (*schema.PeriodogramReport, error) {
	sc := cfg.Seasonal
	data := series.Values
	if cfg.Detrend {
		values, err := trend.Estimate(data, sc.Trend, sc.Period, sc.TrendOptions())
		if err != nil {
			return nil, fmt.Errorf("detrend: %w", err)
		}
		data = timeseries.Sub(data, values)
	}
	cands, err := periodogram.Peaks(data, sc.Thresh, &periodogram.Options{MinPeriod: sc.MinPeriod})
	if err != nil {
		return nil, err
	}
	return &schema.PeriodogramReport{
		File:       path,
		Column:     series.Name,
		N:          len(data),
		Detrended:  cfg.Detrend,
		Average:    periodogram.AveragePeriod(cands),
		Candidates: cands,
	}, nil
}
