package smooth

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// DefaultPenalty is the second-difference penalty weight of SplineFilter.
const DefaultPenalty = 1e-2

// SplineOptions configures SplineFilter.
type SplineOptions struct {
	// Penalty weights the squared second differences of the spline
	// coefficients. Larger values pull the fit toward a straight line.
	Penalty float64
}

// DefaultSplineOptions returns the default spline options.
func DefaultSplineOptions() *SplineOptions {
	return &SplineOptions{Penalty: DefaultPenalty}
}

// SplineFilter fits a penalized cubic B-spline to data and returns the
// fitted values. The domain is cut into len(data)/(2*span)+1 equal segments.
// When span covers the whole sequence, or there are too few points for a
// cubic basis, the fit degenerates to a least-squares line.
func SplineFilter(data []float64, span int, opts *SplineOptions) ([]float64, error) {
	span, err := OddWindow(span)
	if err != nil {
		return nil, err
	}
	if opts == nil {
		opts = DefaultSplineOptions()
	}

	n := len(data)
	switch {
	case n == 0:
		return []float64{}, nil
	case n < 4 || span >= n:
		return lineFit(data), nil
	}

	nsegs := n/(2*span) + 1
	basis := bsplineBasis(n, nsegs)
	_, m := basis.Dims()

	// Stack the basis over the scaled difference penalty so that a single
	// least-squares solve minimizes |y - B a|^2 + penalty*|D a|^2.
	rows := n + m - 2
	design := mat.NewDense(rows, m, nil)
	design.Slice(0, n, 0, m).(*mat.Dense).Copy(basis)
	w := math.Sqrt(math.Max(opts.Penalty, 0))
	for r := 0; r < m-2; r++ {
		design.Set(n+r, r, w)
		design.Set(n+r, r+1, -2*w)
		design.Set(n+r, r+2, w)
	}

	target := mat.NewVecDense(rows, nil)
	for i, v := range data {
		target.SetVec(i, v)
	}

	var coef mat.VecDense
	if err := coef.SolveVec(design, target); err != nil {
		return lineFit(data), nil
	}

	var fitted mat.VecDense
	fitted.MulVec(basis, &coef)
	out := make([]float64, n)
	for i := range out {
		out[i] = fitted.AtVec(i)
	}
	return out, nil
}

// bsplineBasis evaluates nsegs+3 uniform cubic B-splines at x = 0..n-1.
// Knots are spaced (n-1)/nsegs apart and extended three intervals past
// each end so the basis sums to one over the whole domain.
func bsplineBasis(n, nsegs int) *mat.Dense {
	m := nsegs + 3
	h := float64(n-1) / float64(nsegs)
	basis := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		x := float64(i)
		seg := min(int(x/h), nsegs-1)
		for j := seg; j <= seg+3; j++ {
			u := x/h - float64(j-3)
			basis.Set(i, j, cubicBSpline(u))
		}
	}
	return basis
}

// cubicBSpline is the uniform cubic B-spline supported on [0, 4).
func cubicBSpline(u float64) float64 {
	switch {
	case u < 0 || u >= 4:
		return 0
	case u < 1:
		return u * u * u / 6
	case u < 2:
		return (-3*u*u*u + 12*u*u - 12*u + 4) / 6
	case u < 3:
		return (3*u*u*u - 24*u*u + 60*u - 44) / 6
	default:
		r := 4 - u
		return r * r * r / 6
	}
}

func lineFit(data []float64) []float64 {
	n := len(data)
	out := make([]float64, n)
	if n == 1 {
		out[0] = data[0]
		return out
	}
	xs := make([]float64, n)
	floats.Span(xs, 0, float64(n-1))
	alpha, beta := stat.LinearRegression(xs, data, nil, false)
	for i, x := range xs {
		out[i] = alpha + beta*x
	}
	return out
}
