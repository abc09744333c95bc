package source

import "math"

// Chirp synthesizes n samples of a linear sweep from 20 Hz up to 90% of
// the Nyquist frequency. Deterministic for a given n and rate.
func Chirp(n, rate int) []float64 {
	out := make([]float64, n)
	if n == 0 || rate <= 0 {
		return out
	}

	f0 := 20.0
	f1 := 0.9 * float64(rate) / 2
	k := (f1 - f0) / (float64(n) / float64(rate))

	for i := range out {
		t := float64(i) / float64(rate)
		out[i] = 0.8 * math.Sin(2*math.Pi*(f0+k/2*t)*t)
	}
	return out
}
