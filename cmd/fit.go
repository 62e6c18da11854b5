package cmd

import (
	"github.com/sartorproj/goseasonal/internal/contract"
	"github.com/sartorproj/goseasonal/internal/core"
	"github.com/spf13/cobra"
)

// fitCmd finds the period and seasonal offsets of each input.
var fitCmd = &cobra.Command{
	Use:   "fit FILE...",
	Short: "Detect the seasonal period of each series and fit its offsets.",
	Long: `Remove a trend from each series, search for the period that best explains
the remaining variance, and fit one additive offset per phase of that period.

The summary shows the period (0 when none is significant), the in-sample and
cross-validated explained variance, the sample and cycle counts, and the
Ljung-Box p-value of the residual. A small p-value means structure was left
behind.

Examples:
  # Search for a period in a monthly series
  goseasonal fit airpassengers.csv

  # Evaluate a known period with a median trend
  goseasonal fit --period 12 --trend median sales.csv

  # Full decomposition as CSV
  goseasonal fit --detail --output csv --output-file decomposition.csv sales.csv

  # Trace the fit
  goseasonal fit --log-level debug --log-format json sales.csv`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFit(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run seasonal fit", err)
		}
	},
}

// adjustCmd prints each input with its seasonal component removed.
var adjustCmd = &cobra.Command{
	Use:   "adjust FILE...",
	Short: "Print the seasonally adjusted series.",
	Long: `Fit each series as 'fit' does and print it with the seasonal offsets removed.
A series without a significant period is printed unchanged.

Examples:
  goseasonal adjust sales.csv
  goseasonal adjust --period 7 --output parquet --output-file adjusted.parquet daily.csv

  # Also save each adjusted series as a CSV that can be analysed again
  goseasonal adjust --save-dir out/ sales.csv`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAdjust(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run seasonal adjustment", err)
		}
	},
}
