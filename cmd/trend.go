package cmd

import (
	"github.com/sartorproj/goseasonal/internal/contract"
	"github.com/sartorproj/goseasonal/internal/core"
	"github.com/spf13/cobra"
)

// trendCmd estimates the trend of each input.
var trendCmd = &cobra.Command{
	Use:   "trend FILE...",
	Short: "Estimate the trend of each series.",
	Long: `Smooth each series with the chosen trend estimator and report how much of
its variance the trend explains.

The smoothing window is --ptimes times the period. Without --period the
period is guessed from the periodogram of the series.

Examples:
  goseasonal trend --trend line series.csv
  goseasonal trend --period 12 --detail sales.csv`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTrend(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run trend estimation", err)
		}
	},
}
