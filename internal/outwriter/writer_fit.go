package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/sartorproj/goseasonal/internal/contract"
	"github.com/sartorproj/goseasonal/internal/schema"
)

// lbAlpha is the Ljung-Box p-value below which a residual is flagged as
// still autocorrelated.
const lbAlpha = 0.05

// maxTablePathWidth bounds the file column of summary tables.
const maxTablePathWidth = 40

// fitPayload drops the per-sample decomposition unless detail was requested.
func fitPayload(reports []schema.FitReport, detail bool) []schema.FitReport {
	if detail {
		return reports
	}
	out := make([]schema.FitReport, len(reports))
	for i, r := range reports {
		r.Decomposition = nil
		r.Timestamps = nil
		out[i] = r
	}
	return out
}

// writeFitCSV writes one summary row per fit.
func writeFitCSV(w io.Writer, reports []schema.FitReport, precision int) error {
	fmtFloat, _ := createFormatters(precision)
	header := []string{"file", "state", "period", "tev", "eev", "trend_ev", "n", "cycles", "lb_q", "lb_pvalue"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range reports {
			res := r.Result
			q, p := "", ""
			if r.LjungBox != nil {
				q = fmtFloat(r.LjungBox.Statistic)
				p = strconv.FormatFloat(r.LjungBox.PValue, 'g', 4, 64)
			}
			row := []string{
				r.File,
				res.State.String(),
				strconv.Itoa(res.Period),
				fmtFloat(res.TEV),
				fmtFloat(res.EEV),
				fmtFloat(res.TrendEV),
				strconv.Itoa(res.N),
				strconv.Itoa(res.Cycles),
				q,
				p,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeFitDetailCSV writes one row per sample of each decomposition.
func writeFitDetailCSV(w io.Writer, reports []schema.FitReport, precision int) error {
	fmtFloat, _ := createFormatters(precision)
	header := []string{"file", "index", "date", "period", "value", "trend", "seasonal", "detrended", "adjusted", "residual"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range reports {
			d := r.Decomposition
			if d == nil {
				continue
			}
			for i := range d.Value {
				date := ""
				if ts := schema.TimestampAt(r.Timestamps, i); ts != nil {
					date = ts.Format(dateFormat)
				}
				row := []string{
					r.File,
					strconv.Itoa(i),
					date,
					strconv.Itoa(r.Result.Period),
					fmtFloat(d.Value[i]),
					fmtFloat(d.Trend[i]),
					fmtFloat(d.Seasonal[i]),
					fmtFloat(d.Detrended[i]),
					fmtFloat(d.Adjusted[i]),
					fmtFloat(d.Residual[i]),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// writeFitTable prints the fit summary, followed by the decomposition of
// each file when detail was requested.
func writeFitTable(w io.Writer, reports []schema.FitReport, cfg *contract.Config) error {
	fmtFloat, fmtPct := createFormatters(cfg.Precision)
	good := colorizer(cfg.UseColors, contract.SeasonalColor)
	rejected := colorizer(cfg.UseColors, contract.RejectedColor)
	weak := colorizer(cfg.UseColors, contract.WeakColor)

	table := newTable(w, []string{"Period", "%TEV", "%EEV", "N", "Cycles", "State", "LB p-value", "File"})
	var data [][]string
	for _, r := range reports {
		res := r.Result
		state := good(res.State.String())
		if !res.Seasonal() {
			state = rejected(res.State.String())
		}
		pvalue := "-"
		if r.LjungBox != nil {
			pvalue = strconv.FormatFloat(r.LjungBox.PValue, 'g', 3, 64)
			if r.LjungBox.PValue < lbAlpha {
				pvalue = weak(pvalue)
			}
		}
		data = append(data, []string{
			strconv.Itoa(res.Period),
			fmtPct(res.TEV),
			fmtPct(res.EEV),
			strconv.Itoa(res.N),
			strconv.Itoa(res.Cycles),
			state,
			pvalue,
			contract.ShortPath(r.File, maxTablePathWidth),
		})
	}
	if err := renderTable(table, data); err != nil {
		return err
	}

	if !cfg.Detail {
		return nil
	}
	for _, r := range reports {
		if r.Decomposition == nil {
			continue
		}
		_, _ = fmt.Fprintf(w, "\n%s (period %d)\n", r.File, r.Result.Period)
		if err := writeDecompositionTable(w, r, fmtFloat); err != nil {
			return err
		}
	}
	return nil
}

func writeDecompositionTable(w io.Writer, r schema.FitReport, fmtFloat func(float64) string) error {
	d := r.Decomposition
	table := newTable(w, []string{sampleHeader(r.Timestamps), "Value", "Trend", "Detrended", "Adjusted", "Residual"})
	data := make([][]string, 0, len(d.Value))
	for i := range d.Value {
		data = append(data, []string{
			sampleLabel(r.Timestamps, i),
			fmtFloat(d.Value[i]),
			fmtFloat(d.Trend[i]),
			fmtFloat(d.Detrended[i]),
			fmtFloat(d.Adjusted[i]),
			fmtFloat(d.Residual[i]),
		})
	}
	return renderTable(table, data)
}

// AdjustedSeries is the seasonally adjusted form of one input.
type AdjustedSeries struct {
	File       string      `json:"file" yaml:"file"`
	Period     int         `json:"period" yaml:"period"`
	Timestamps []time.Time `json:"timestamps,omitempty" yaml:"timestamps,omitempty"`
	Adjusted   []float64   `json:"adjusted" yaml:"adjusted"`
}

func adjustedSeries(reports []schema.FitReport) []AdjustedSeries {
	out := make([]AdjustedSeries, 0, len(reports))
	for _, r := range reports {
		if r.Decomposition == nil {
			continue
		}
		out = append(out, AdjustedSeries{
			File:       r.File,
			Period:     r.Result.Period,
			Timestamps: r.Timestamps,
			Adjusted:   r.Decomposition.Adjusted,
		})
	}
	return out
}

// writeAdjustCSV writes the adjusted series of every input as long-format rows.
func writeAdjustCSV(w io.Writer, reports []schema.FitReport, precision int) error {
	fmtFloat, _ := createFormatters(precision)
	return writeCSVWithHeader(w, []string{"file", "index", "date", "value", "adjusted"}, func(cw *csv.Writer) error {
		for _, r := range reports {
			d := r.Decomposition
			if d == nil {
				continue
			}
			for i := range d.Value {
				date := ""
				if ts := schema.TimestampAt(r.Timestamps, i); ts != nil {
					date = ts.Format(dateFormat)
				}
				if err := cw.Write([]string{r.File, strconv.Itoa(i), date, fmtFloat(d.Value[i]), fmtFloat(d.Adjusted[i])}); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func writeAdjustTable(w io.Writer, reports []schema.FitReport, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	for i, r := range reports {
		d := r.Decomposition
		if d == nil {
			continue
		}
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintf(w, "%s (period %d)\n", r.File, r.Result.Period)
		table := newTable(w, []string{sampleHeader(r.Timestamps), "Value", "Seasonal", "Adjusted"})
		data := make([][]string, 0, len(d.Value))
		for j := range d.Value {
			data = append(data, []string{
				sampleLabel(r.Timestamps, j),
				fmtFloat(d.Value[j]),
				fmtFloat(d.Seasonal[j]),
				fmtFloat(d.Adjusted[j]),
			})
		}
		if err := renderTable(table, data); err != nil {
			return err
		}
	}
	return nil
}
