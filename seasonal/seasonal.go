package seasonal

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sartorproj/goseasonal/periodogram"
	"github.com/sartorproj/goseasonal/stats"
	"github.com/sartorproj/goseasonal/timeseries"
	"github.com/sartorproj/goseasonal/trend"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// backfitPasses is the number of trend refits on seasonally adjusted data.
const backfitPasses = 2

// State is a stage of a seasonal fit.
type State int

const (
	StateInit State = iota
	StateDetrend
	StatePeriodSearch
	StateSeasonalFit
	StateDone
	StateRejected
)

var stateNames = [...]string{
	StateInit:         "init",
	StateDetrend:      "detrend",
	StatePeriodSearch: "period_search",
	StateSeasonalFit:  "seasonal_fit",
	StateDone:         "done",
	StateRejected:     "rejected",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", text)
}

// Result is the outcome of Fit. A rejected fit has no period or seasons
// but still carries the trend.
type Result struct {
	State      State                   `json:"state" yaml:"state"`
	Period     int                     `json:"period" yaml:"period"`
	Seasons    []float64               `json:"seasons" yaml:"seasons"`
	Trend      []float64               `json:"trend" yaml:"trend"`
	TEV        float64                 `json:"tev" yaml:"tev"`           // In-sample seasonal explained variance
	EEV        float64                 `json:"eev" yaml:"eev"`           // Cross-validated seasonal explained variance
	TrendEV    float64                 `json:"trend_ev" yaml:"trend_ev"` // Variance removed by the trend
	N          int                     `json:"n" yaml:"n"`
	Cycles     int                     `json:"cycles" yaml:"cycles"`
	Candidates []periodogram.Candidate `json:"candidates,omitempty" yaml:"candidates,omitempty"`
	Scores     []CVResult              `json:"scores,omitempty" yaml:"scores,omitempty"`
}

// Seasonal reports whether a period was found.
func (r *Result) Seasonal() bool {
	return r.State == StateDone
}

// fit carries the intermediate values of one Fit call.
type fit struct {
	cfg    *Config
	logger log.FieldLogger
	data   []float64
	res    *Result

	residual  []float64
	variance  float64
	selection *Selection
}

// Fit estimates the trend, period and seasonal offsets of data. Missing
// values are interpolated first. When cfg.Period is zero the period is
// searched for; otherwise the given period is evaluated and rejected if it
// explains too little variance.
//
// Finding no significant period is not an error: the result has state
// StateRejected and only the trend is set.
//
// Unless cfg.TrendValues is set, the returned trend is refit with a window
// matched to the final period on the series less its seasonal offsets. It
// therefore differs from trend.Estimate(data, cfg.Trend, period, ...) on
// the raw series.
func Fit(data []float64, cfg *Config) (*Result, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	f := &fit{
		cfg:    cfg,
		logger: cfg.Logger,
		res:    &Result{State: StateInit, N: len(data)},
	}
	if err := f.init(data); err != nil {
		return nil, err
	}
	if err := f.detrend(); err != nil {
		return nil, err
	}
	if f.flat() {
		return f.reject("detrended series is constant"), nil
	}
	if cfg.Period == 0 {
		if err := f.searchPeriod(); err != nil {
			return nil, err
		}
		if !f.selection.Significant {
			return f.reject("no significant period"), nil
		}
	}
	return f.seasonalFit()
}

// FitSeries is Fit over the values of a series.
func FitSeries(series *timeseries.Series, cfg *Config) (*Result, error) {
	return Fit(series.Values, cfg)
}

func (f *fit) enter(state State, fields log.Fields) {
	f.res.State = state
	if fields == nil {
		fields = log.Fields{}
	}
	fields["state"] = state.String()
	f.logger.WithFields(fields).Debug("seasonal fit")
}

func (f *fit) init(data []float64) error {
	n := len(data)
	period := f.cfg.Period
	if period == 0 && n < 4 {
		return fmt.Errorf("%w: %d samples, need at least 4 to search for a period", ErrInsufficientData, n)
	}
	if period != 0 && (period < 2 || period > n/2) {
		return fmt.Errorf("%w: period %d outside [2, %d]", ErrInvalidPeriod, period, n/2)
	}
	if f.cfg.TrendValues != nil && len(f.cfg.TrendValues) != n {
		return fmt.Errorf("%w: trend has %d values for %d samples", ErrLengthMismatch, len(f.cfg.TrendValues), n)
	}
	imputed, err := timeseries.Interpolate(data)
	if err != nil {
		return err
	}
	f.data = imputed
	return nil
}

func (f *fit) detrend() error {
	f.enter(StateDetrend, log.Fields{"trend": f.trendName(), "period": f.cfg.Period})
	if f.cfg.TrendValues != nil {
		f.setTrend(slices.Clone(f.cfg.TrendValues))
		return nil
	}
	values, err := trend.Estimate(f.data, f.cfg.Trend, f.cfg.Period, f.cfg.TrendOptions())
	if err != nil {
		return fmt.Errorf("detrend: %w", err)
	}
	f.setTrend(values)
	return nil
}

func (f *fit) setTrend(values []float64) {
	f.res.Trend = values
	f.res.TrendEV = trend.EV(f.data, values)
	f.residual = timeseries.Sub(f.data, values)
	f.variance = timeseries.PopVariance(f.residual)
}

func (f *fit) flat() bool {
	return f.variance <= 0 || stats.IsConstant(f.residual)
}

func (f *fit) searchPeriod() error {
	f.enter(StatePeriodSearch, log.Fields{"thresh": f.cfg.Thresh})

	var periods []int
	if f.cfg.Thresh > 0 {
		opts := &periodogram.Options{MinPeriod: f.cfg.MinPeriod}
		cands, err := periodogram.Peaks(f.residual, f.cfg.Thresh, opts)
		switch {
		case errors.Is(err, ErrInsufficientData):
			f.logger.WithError(err).Debug("periodogram unavailable, scanning every period")
		case err != nil:
			return err
		}
		f.res.Candidates = cands
		periods = bracketPeriods(cands, f.cfg.MinPeriod)
	}

	sel, err := SelectPeriod(f.residual, periods, f.cfg)
	if errors.Is(err, ErrInsufficientData) && len(periods) > 0 {
		// every bracket is too long for the data
		sel, err = SelectPeriod(f.residual, nil, f.cfg)
	}
	if err != nil {
		return err
	}
	f.selection = sel
	f.res.Scores = sel.Scores
	return nil
}

// bracketPeriods expands periodogram peaks into the integer periods
// between their bracketing FFT periods.
func bracketPeriods(cands []periodogram.Candidate, minPeriod int) []int {
	var periods []int
	for _, c := range cands {
		for p := max(c.Lower, minPeriod); p <= c.Upper; p++ {
			periods = append(periods, p)
		}
	}
	slices.Sort(periods)
	return slices.Compact(periods)
}

func (f *fit) seasonalFit() (*Result, error) {
	period := f.cfg.Period
	if f.selection != nil {
		period = f.selection.Best.Period
	}
	f.enter(StateSeasonalFit, log.Fields{"period": period})

	if f.cfg.TrendValues == nil {
		f.backfit(period)
		if f.flat() {
			return f.reject("detrended series is constant"), nil
		}
	}

	cv, seasons := crossValidate(f.residual, period, f.variance)
	if !accept(cv, f.variance, f.cfg.MinEV) {
		return f.reject("period explains too little variance"), nil
	}

	f.res.Period = period
	f.res.Seasons = seasons
	f.res.TEV = cv.TEV
	f.res.EEV = cv.EEV
	f.res.Cycles = cv.Cycles
	f.enter(StateDone, log.Fields{"period": period, "eev": cv.EEV, "tev": cv.TEV})
	return f.res, nil
}

// backfit refits the trend with a window matched to period. Each pass
// smooths the series with the current seasonal offsets removed, so the
// trend is not pulled toward the seasonal swing.
func (f *fit) backfit(period int) {
	for pass := range backfitPasses {
		_, seasons := crossValidate(f.residual, period, f.variance)
		center := stat.Mean(seasons, nil)
		adjusted := make([]float64, len(f.data))
		for i, v := range f.data {
			adjusted[i] = v - (seasons[i%period] - center)
		}
		values, err := trend.Estimate(adjusted, f.cfg.Trend, period, f.cfg.TrendOptions())
		if err != nil {
			// a perfectly periodic series leaves nothing for a line to fit
			f.logger.WithError(err).WithField("pass", pass).Debug("keeping previous trend")
			return
		}
		f.setTrend(values)
	}
}

func (f *fit) reject(reason string) *Result {
	f.res.Period = 0
	f.res.Seasons = nil
	f.res.TEV = 0
	f.res.EEV = 0
	f.res.Cycles = 1
	f.enter(StateRejected, log.Fields{"reason": reason})
	return f.res
}

func (f *fit) trendName() string {
	if f.cfg.TrendValues != nil {
		return "supplied"
	}
	return f.cfg.Trend.String()
}

// Adjust removes seasonal offsets, and the trend when one is given, from
// data: data[i] - seasons[i mod P] - trend[i].
func Adjust(data, seasons, trendValues []float64) ([]float64, error) {
	if len(seasons) == 0 {
		return nil, fmt.Errorf("%w: no seasonal offsets", ErrInvalidPeriod)
	}
	if trendValues != nil && len(trendValues) != len(data) {
		return nil, fmt.Errorf("%w: trend has %d values for %d samples", ErrLengthMismatch, len(trendValues), len(data))
	}
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v - seasons[i%len(seasons)]
		if trendValues != nil {
			out[i] -= trendValues[i]
		}
	}
	return out, nil
}

// Decomposition splits a series into additive components.
type Decomposition struct {
	Value     []float64 `json:"value" yaml:"value"`
	Trend     []float64 `json:"trend" yaml:"trend"`
	Seasonal  []float64 `json:"seasonal" yaml:"seasonal"`
	Detrended []float64 `json:"detrended" yaml:"detrended"` // Value - Trend
	Adjusted  []float64 `json:"adjusted" yaml:"adjusted"`   // Value - Seasonal
	Residual  []float64 `json:"residual" yaml:"residual"`   // Value - Seasonal - Trend
}

// Decompose applies r to the series it was fitted on. For a rejected fit
// the seasonal component is zero.
func (r *Result) Decompose(data []float64) (*Decomposition, error) {
	if len(data) != len(r.Trend) {
		return nil, fmt.Errorf("%w: %d samples for a fit of %d", ErrLengthMismatch, len(data), len(r.Trend))
	}
	n := len(data)
	d := &Decomposition{
		Value:     slices.Clone(data),
		Trend:     slices.Clone(r.Trend),
		Seasonal:  make([]float64, n),
		Detrended: timeseries.Sub(data, r.Trend),
	}
	for i := range d.Seasonal {
		if len(r.Seasons) > 0 {
			d.Seasonal[i] = r.Seasons[i%len(r.Seasons)]
		}
	}
	d.Adjusted = timeseries.Sub(data, d.Seasonal)
	d.Residual = timeseries.Sub(d.Adjusted, r.Trend)
	return d, nil
}
