// Package smooth provides stateless lowpass filters used for trend removal.
//
// Three filters are available:
//
//	med, err := smooth.MedianFilter(values, 25) // centered moving median
//	avg, err := smooth.MeanFilter(values, 25)   // centered moving mean
//	fit, err := smooth.SplineFilter(values, 25, nil) // penalized cubic B-spline
//
// Windows are centered and clipped at the boundaries; even windows are
// rounded up to the next odd size. Aglet replaces the half-window at each
// end with a robust line, which detrends better than the shortened
// boundary windows:
//
//	trend := smooth.Aglet(med, 25)
package smooth
