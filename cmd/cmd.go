// Package cmd defines the command-line interface for goseasonal.
package cmd

import (
	"github.com/sartorproj/goseasonal/internal/contract"
	"github.com/sartorproj/goseasonal/trend"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(fitCmd)
	rootCmd.AddCommand(adjustCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(periodogramCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	flags := rootCmd.PersistentFlags()
	flags.StringP("column", "c", "", "Value column name or 0-based index (default: rightmost column)")
	flags.String("date-format", "", "Layout of the date column, in Go time format")
	flags.Float64("split", 0, "Use only the first fraction (<= 1) or count (> 1) of samples")
	flags.StringP("trend", "t", trend.Spline.String(), "Trend estimator: spline or line or mean or median or none")
	flags.IntP("period", "p", 0, "Seasonal period; 0 searches for one")
	flags.Float64("thresh", contract.DefaultThresh, "Periodogram peak threshold in [0, 1]; 0 scans every period")
	flags.Float64("minev", contract.DefaultMinEV, "Minimum cross-validated explained variance for a period")
	flags.Int("min-period", contract.DefaultMinPeriod, "Shortest period of the exhaustive scan")
	flags.Float64("ptimes", trend.DefaultPTimes, "Trend window as a multiple of the period")
	flags.Int("workers", contract.DefaultWorkers, "Number of concurrent period search workers")
	flags.Bool("detail", false, "Print the per-sample decomposition")
	flags.StringP("output", "o", string(contract.TextOut), "Output format: text or csv or json or yaml or parquet")
	flags.String("output-file", "", "Optional path to write output to")
	flags.Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	flags.String("color", "auto", "Colored table output: auto or yes or no")
	flags.String("log-level", "warn", "Log level: debug or info or warn or error")
	flags.String("log-format", "text", "Log format: text or json")
	flags.String("config", "", "Path to config file")
	if err := viper.BindPFlags(flags); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of adjustCmd to Viper
	adjustCmd.Flags().String("save-dir", "", "Directory to save each adjusted series as <name>.adjusted.csv")
	if err := viper.BindPFlags(adjustCmd.Flags()); err != nil {
		contract.LogFatal("Error binding adjust flags", err)
	}

	// Bind all flags of periodogramCmd to Viper
	periodogramCmd.Flags().Bool("detrend", false, "Remove the trend before computing the periodogram")
	if err := viper.BindPFlags(periodogramCmd.Flags()); err != nil {
		contract.LogFatal("Error binding periodogram flags", err)
	}
}
