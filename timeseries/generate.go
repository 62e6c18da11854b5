package timeseries

import (
	"math"
	"math/rand/v2"
)

// Synthetic periodic sequences for exercising period and trend estimation.
// Every generator appends `partial` extra samples taken from the start of
// the sequence, so the result need not hold a whole number of cycles.

// Impulses returns a train of impulses wid samples wide, one per period.
func Impulses(wid, period, cycles, partial int) []float64 {
	seq := make([]float64, 0, period*cycles+partial)
	for c := 0; c < cycles; c++ {
		for i := 0; i < period; i++ {
			if i < wid {
				seq = append(seq, 1)
			} else {
				seq = append(seq, 0)
			}
		}
	}
	return appendPartial(seq, partial)
}

// Square returns a square wave with the given duty cycle in (0, 1).
func Square(amp, duty float64, period, cycles, partial int) []float64 {
	seq := Impulses(int(duty*float64(period)), period, cycles, partial)
	for i := range seq {
		seq[i] *= amp
	}
	return seq
}

// Sawtooth returns a triangle wave ranging over 0..amp.
func Sawtooth(amp float64, period, cycles, partial int) []float64 {
	up := period / 2
	down := period - up
	tooth := make([]float64, 0, period)
	for i := 0; i < up; i++ {
		tooth = append(tooth, float64(i)*amp/float64(up))
	}
	for i := 0; i < down; i++ {
		tooth = append(tooth, amp-float64(i)*amp/float64(down))
	}
	return tile(tooth, cycles, partial)
}

// Sine returns a sine wave ranging over -amp..amp.
func Sine(amp float64, period, cycles, partial int) []float64 {
	cycle := make([]float64, period)
	for i := range cycle {
		cycle[i] = amp * math.Sin(float64(i)*2*math.Pi/float64(period))
	}
	return tile(cycle, cycles, partial)
}

// AddNoise returns seq plus zero-centered normal noise with stdev scale.
func AddNoise(rng *rand.Rand, seq []float64, scale float64) []float64 {
	out := make([]float64, len(seq))
	copy(out, seq)
	if scale == 0 {
		return out
	}
	for i := range out {
		out[i] += rng.NormFloat64() * scale
	}
	return out
}

// Mix replaces each sample of seq by val with probability prob.
func Mix(rng *rand.Rand, seq []float64, val, prob float64) []float64 {
	out := make([]float64, len(seq))
	for i, v := range seq {
		if rng.Float64() <= prob {
			out[i] = val
		} else {
			out[i] = v
		}
	}
	return out
}

// Brownian returns a random walk of normal steps with stdev scale.
func Brownian(rng *rand.Rand, scale float64, samples int) []float64 {
	out := make([]float64, samples)
	sum := 0.0
	for i := range out {
		sum += rng.NormFloat64() * scale
		out[i] = sum
	}
	return out
}

// Aperiodic returns an oscillating signal whose period drifts over the
// sequence, ranging over -amp..amp.
func Aperiodic(amp float64, samples int) []float64 {
	n := float64(samples)
	out := make([]float64, samples)
	for i := range out {
		period := math.Abs(n*math.Sin(float64(i)*2*math.Pi/n)) + n/10
		out[i] = amp * math.Sin(float64(i)*2*math.Pi/period)
	}
	return out
}

func tile(cycle []float64, cycles, partial int) []float64 {
	seq := make([]float64, 0, len(cycle)*cycles+partial)
	for c := 0; c < cycles; c++ {
		seq = append(seq, cycle...)
	}
	return appendPartial(seq, partial)
}

func appendPartial(seq []float64, partial int) []float64 {
	if partial > len(seq) {
		partial = len(seq)
	}
	return append(seq, seq[:partial]...)
}
