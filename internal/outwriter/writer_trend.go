package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/sartorproj/goseasonal/internal/contract"
	"github.com/sartorproj/goseasonal/internal/schema"
)

// trendPayload drops the per-sample values unless detail was requested.
func trendPayload(reports []schema.TrendReport, detail bool) []schema.TrendReport {
	if detail {
		return reports
	}
	out := make([]schema.TrendReport, len(reports))
	for i, r := range reports {
		r.Timestamps, r.Value, r.Trend, r.Detrended = nil, nil, nil, nil
		out[i] = r
	}
	return out
}

func writeTrendCSV(w io.Writer, reports []schema.TrendReport, precision int) error {
	fmtFloat, _ := createFormatters(precision)
	return writeCSVWithHeader(w, []string{"file", "kind", "period", "ev", "n"}, func(cw *csv.Writer) error {
		for _, r := range reports {
			row := []string{r.File, r.Kind.String(), strconv.Itoa(r.Period), fmtFloat(r.EV), strconv.Itoa(r.N)}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeTrendDetailCSV(w io.Writer, reports []schema.TrendReport, precision int) error {
	fmtFloat, _ := createFormatters(precision)
	header := []string{"file", "index", "date", "value", "trend", "detrended"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range reports {
			for i := range r.Value {
				date := ""
				if ts := schema.TimestampAt(r.Timestamps, i); ts != nil {
					date = ts.Format(dateFormat)
				}
				row := []string{r.File, strconv.Itoa(i), date, fmtFloat(r.Value[i]), fmtFloat(r.Trend[i]), fmtFloat(r.Detrended[i])}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func writeTrendTable(w io.Writer, reports []schema.TrendReport, cfg *contract.Config) error {
	fmtFloat, fmtPct := createFormatters(cfg.Precision)

	table := newTable(w, []string{"%EV", "N", "Trend", "Period", "File"})
	var data [][]string
	for _, r := range reports {
		data = append(data, []string{
			fmtPct(r.EV),
			strconv.Itoa(r.N),
			r.Kind.String(),
			strconv.Itoa(r.Period),
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
		_, _ = fmt.Fprintf(w, "\n%s (%s trend)\n", r.File, r.Kind)
		table := newTable(w, []string{sampleHeader(r.Timestamps), "Value", "Trend", "Detrended"})
		rows := make([][]string, 0, len(r.Value))
		for i := range r.Value {
			rows = append(rows, []string{
				sampleLabel(r.Timestamps, i),
				fmtFloat(r.Value[i]),
				fmtFloat(r.Trend[i]),
				fmtFloat(r.Detrended[i]),
			})
		}
		if err := renderTable(table, rows); err != nil {
			return err
		}
	}
	return nil
}
