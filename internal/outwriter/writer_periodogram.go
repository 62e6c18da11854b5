package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/sartorproj/goseasonal/internal/contract"
	"github.com/sartorproj/goseasonal/internal/schema"
)

func writePeriodogramCSV(w io.Writer, reports []schema.PeriodogramReport, precision int) error {
	fmtFloat, _ := createFormatters(precision)
	return writeCSVWithHeader(w, []string{"file", "period", "pmin", "pmax", "score"}, func(cw *csv.Writer) error {
		for _, r := range reports {
			for _, c := range r.Candidates {
				row := []string{r.File, strconv.Itoa(c.Period), strconv.Itoa(c.Lower), strconv.Itoa(c.Upper), fmtFloat(c.Score)}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// writePeriodogramTable prints, per file, the score-weighted average period
// and the peaks with their bracketing periods.
func writePeriodogramTable(w io.Writer, reports []schema.PeriodogramReport, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	bold := colorizer(cfg.UseColors, contract.SeasonalColor)

	for i, r := range reports {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		detrended := ""
		if r.Detrended {
			detrended = ", detrended"
		}
		_, _ = fmt.Fprintf(w, "%s: average period %s (%d samples%s)\n", r.File, bold(r.Average), r.N, detrended)
		if len(r.Candidates) == 0 {
			_, _ = fmt.Fprintln(w, "no periodogram peaks")
			continue
		}
		table := newTable(w, []string{"Period", "PMin", "PMax", "Score"})
		data := make([][]string, 0, len(r.Candidates))
		for _, c := range r.Candidates {
			data = append(data, []string{
				strconv.Itoa(c.Period),
				strconv.Itoa(c.Lower),
				strconv.Itoa(c.Upper),
				fmtFloat(c.Score),
			})
		}
		if err := renderTable(table, data); err != nil {
			return err
		}
	}
	return nil
}
