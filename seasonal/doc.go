// Package seasonal estimates the period and seasonal offsets of a noisy,
// evenly sampled series.
//
// Fit first removes a trend, then looks for the period whose per-phase
// means best predict held-out samples. Candidate periods come from the
// periodogram of the detrended series (or every period when pruning is
// disabled) and are scored by leave-one-out cross-validation, computed in
// closed form from per-phase sums:
//
//	cfg := seasonal.DefaultConfig()
//	res, err := seasonal.Fit(values, cfg)
//	if err != nil {
//		return err
//	}
//	if res.State == seasonal.StateRejected {
//		// no seasonality; res.Trend is still valid
//	}
//	adjusted, err := seasonal.Adjust(values, res.Seasons, nil)
//
// The TEV of a period is the in-sample fraction of detrended variance
// explained by the per-phase means; the EEV is the cross-validated
// fraction and drives period selection. A period whose EEV falls below
// Config.MinEV is rejected.
//
// All functions are pure and safe for concurrent use. The period search
// spreads candidate evaluation over Config.Workers goroutines; the result
// does not depend on their scheduling.
package seasonal
