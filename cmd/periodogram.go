package cmd

import (
	"github.com/sartorproj/goseasonal/internal/contract"
	"github.com/sartorproj/goseasonal/internal/core"
	"github.com/spf13/cobra"
)

// periodogramCmd lists the periodogram peaks of each input.
var periodogramCmd = &cobra.Command{
	Use:   "periodogram FILE...",
	Short: "List the strongest periodogram peaks of each series.",
	Long: `Estimate the power spectrum of each series with Welch's method and list the
periods whose power is within --thresh of the strongest, with the FFT periods
that bracket them and their relative score.

Examples:
  goseasonal periodogram series.csv
  goseasonal periodogram --detrend --thresh 0.5 sales.csv`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePeriodogram(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run periodogram", err)
		}
	},
}
