// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/sartorproj/goseasonal/internal/contract"
	"github.com/sartorproj/goseasonal/internal/parquet"
	"github.com/sartorproj/goseasonal/internal/schema"
)

// PrintFitResults outputs seasonal fits, dispatching on the configured output format.
func PrintFitResults(reports []schema.FitReport, cfg *contract.Config, duration time.Duration) error {
	var err error
	switch cfg.Output {
	case contract.ParquetOut:
		err = parquet.WriteFile(cfg.OutputFile, parquet.SampleRows(reports))
	case contract.JSONOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, fitPayload(reports, cfg.Detail))
		}, "Wrote JSON fit results")
	case contract.YAMLOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, fitPayload(reports, cfg.Detail))
		}, "Wrote YAML fit results")
	case contract.CSVOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if cfg.Detail {
				return writeFitDetailCSV(w, reports, cfg.Precision)
			}
			return writeFitCSV(w, reports, cfg.Precision)
		}, "Wrote CSV fit results")
	default:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeFitTable(w, reports, cfg); err != nil {
				return err
			}
			footer(w, "Seasonal fit", len(reports), duration)
			return nil
		}, "Wrote fit table")
	}
	if err != nil {
		return fmt.Errorf("error writing %s fit output: %w", cfg.Output, err)
	}
	return nil
}

// PrintAdjustResults outputs the seasonally adjusted series of each fit.
func PrintAdjustResults(reports []schema.FitReport, cfg *contract.Config, duration time.Duration) error {
	var err error
	switch cfg.Output {
	case contract.ParquetOut:
		err = parquet.WriteFile(cfg.OutputFile, parquet.SampleRows(reports))
	case contract.JSONOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, adjustedSeries(reports))
		}, "Wrote JSON adjusted series")
	case contract.YAMLOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, adjustedSeries(reports))
		}, "Wrote YAML adjusted series")
	case contract.CSVOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAdjustCSV(w, reports, cfg.Precision)
		}, "Wrote CSV adjusted series")
	default:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeAdjustTable(w, reports, cfg); err != nil {
				return err
			}
			footer(w, "Seasonal adjustment", len(reports), duration)
			return nil
		}, "Wrote adjusted series table")
	}
	if err != nil {
		return fmt.Errorf("error writing %s adjust output: %w", cfg.Output, err)
	}
	return nil
}

// PrintTrendResults outputs trend estimates, dispatching on the configured output format.
func PrintTrendResults(reports []schema.TrendReport, cfg *contract.Config, duration time.Duration) error {
	var err error
	switch cfg.Output {
	case contract.ParquetOut:
		err = parquet.WriteFile(cfg.OutputFile, parquet.TrendRows(reports))
	case contract.JSONOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, trendPayload(reports, cfg.Detail))
		}, "Wrote JSON trend results")
	case contract.YAMLOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, trendPayload(reports, cfg.Detail))
		}, "Wrote YAML trend results")
	case contract.CSVOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if cfg.Detail {
				return writeTrendDetailCSV(w, reports, cfg.Precision)
			}
			return writeTrendCSV(w, reports, cfg.Precision)
		}, "Wrote CSV trend results")
	default:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeTrendTable(w, reports, cfg); err != nil {
				return err
			}
			footer(w, "Trend estimation", len(reports), duration)
			return nil
		}, "Wrote trend table")
	}
	if err != nil {
		return fmt.Errorf("error writing %s trend output: %w", cfg.Output, err)
	}
	return nil
}

// PrintPeriodogramResults outputs periodogram peaks, dispatching on the configured output format.
func PrintPeriodogramResults(reports []schema.PeriodogramReport, cfg *contract.Config, duration time.Duration) error {
	var err error
	switch cfg.Output {
	case contract.ParquetOut:
		err = parquet.WriteFile(cfg.OutputFile, parquet.PeakRows(reports))
	case contract.JSONOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, reports)
		}, "Wrote JSON periodogram results")
	case contract.YAMLOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, reports)
		}, "Wrote YAML periodogram results")
	case contract.CSVOut:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePeriodogramCSV(w, reports, cfg.Precision)
		}, "Wrote CSV periodogram results")
	default:
		err = writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writePeriodogramTable(w, reports, cfg); err != nil {
				return err
			}
			footer(w, "Periodogram", len(reports), duration)
			return nil
		}, "Wrote periodogram table")
	}
	if err != nil {
		return fmt.Errorf("error writing %s periodogram output: %w", cfg.Output, err)
	}
	return nil
}
