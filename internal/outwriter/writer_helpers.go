package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/sartorproj/goseasonal/internal/contract"
	"github.com/sartorproj/goseasonal/internal/schema"
	"gopkg.in/yaml.v3"
)

// dateFormat renders sample timestamps in tables and CSV rows.
const dateFormat = "2006-01-02"

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(os.Stderr, "%s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeYAML encodes data as a YAML document.
func writeYAML(w io.Writer, data any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, fmtPct func(float64) string) {
	fmtFloat = func(v float64) string {
		return strconv.FormatFloat(v, 'f', precision, 64)
	}
	fmtPct = func(v float64) string {
		return strconv.FormatFloat(100*v, 'f', precision, 64)
	}
	return fmtFloat, fmtPct
}

// colorizer returns c.SprintFunc when colors are enabled and fmt.Sprint otherwise.
func colorizer(enabled bool, c *color.Color) func(a ...any) string {
	if !enabled {
		return fmt.Sprint
	}
	return c.SprintFunc()
}

// newTable returns a right-aligned table writing to w.
func newTable(w io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	return table
}

// renderTable bulk-loads rows and renders the table.
func renderTable(table *tablewriter.Table, rows [][]string) error {
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// sampleLabel is the date of sample i when the input had a time index,
// and its position otherwise.
func sampleLabel(timestamps []time.Time, i int) string {
	if ts := schema.TimestampAt(timestamps, i); ts != nil {
		return ts.Format(dateFormat)
	}
	return strconv.Itoa(i)
}

// sampleHeader names the first column of per-sample tables.
func sampleHeader(timestamps []time.Time) string {
	if len(timestamps) > 0 {
		return "Date"
	}
	return "#"
}

// footer prints the elapsed time after a text report.
func footer(w io.Writer, what string, files int, duration time.Duration) {
	_, _ = fmt.Fprintf(w, "%s completed in %v for %d file(s).\n", what, duration.Round(time.Millisecond), files)
}
