package stats

import (
	"github.com/sartorproj/goseasonal/timeseries"
	"gonum.org/v1/gonum/stat/distuv"
)

// LjungBoxResult represents the result of a Ljung-Box test.
type LjungBoxResult struct {
	Statistic float64 `json:"statistic" yaml:"statistic"`
	PValue    float64 `json:"p_value" yaml:"p_value"`
	Lags      int     `json:"lags" yaml:"lags"`
	DOF       int     `json:"dof" yaml:"dof"` // Degrees of freedom
}

// LjungBox performs the Ljung-Box test for autocorrelation left in a
// seasonally adjusted residual. The null hypothesis is that there is no
// autocorrelation up to lag h; a small p-value means trend or seasonal
// structure was left behind. fitdf is the number of fitted parameters.
func LjungBox(series *timeseries.Series, lags, fitdf int) *LjungBoxResult {
	n := series.Len()
	if n < 10 || lags < 1 {
		return nil
	}

	if lags >= n {
		lags = n - 1
	}

	acf := ACF(series, lags)
	if acf == nil {
		return nil
	}

	// Ljung-Box Q statistic
	q := 0.0
	for k := 1; k <= lags; k++ {
		q += (acf[k] * acf[k]) / float64(n-k)
	}
	q *= float64(n * (n + 2))

	dof := lags - fitdf
	if dof < 1 {
		dof = 1
	}

	chi := distuv.ChiSquared{K: float64(dof)}

	return &LjungBoxResult{
		Statistic: q,
		PValue:    chi.Survival(q),
		Lags:      lags,
		DOF:       dof,
	}
}

// DefaultLjungBoxLags returns the customary lag count min(10, n/5), raised to
// twice the period for seasonal residuals.
func DefaultLjungBoxLags(n, period int) int {
	lags := min(10, n/5)
	if period > 1 {
		lags = min(2*period, n/5)
	}
	return max(lags, 1)
}
