// Package periodogram scores candidate periods by spectral power.
//
// Periodogram uses Welch's method of averaged, windowed periodograms,
// trading frequency precision for noise resistance. Frequencies are mapped
// onto integer periods, so long periods are sparsely sampled; Peaks reports
// each high-scoring period with the neighbouring periods that bracket it,
// and callers refine the exact period inside those brackets.
//
//	cands, err := periodogram.Peaks(detrended, 0.9, nil)
//	if err != nil {
//		return err
//	}
//	for _, c := range cands {
//		fmt.Println(c.Period, c.Lower, c.Upper, c.Score)
//	}
package periodogram
