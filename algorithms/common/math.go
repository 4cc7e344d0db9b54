package common

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Int16ToFloat64 widens PCM samples without rescaling
func Int16ToFloat64(samples []int16) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s)
	}
	return out
}

// Float64ToInt16 scales samples in [-1, 1] to full-range PCM, clipping
// anything outside that range. Scaling truncates toward zero.
func Float64ToInt16(samples []float64) []int16 {
	clipped := make([]float64, len(samples))
	copy(clipped, samples)
	floats.Scale(math.MaxInt16, clipped)

	out := make([]int16, len(clipped))
	for i, v := range clipped {
		switch {
		case v > math.MaxInt16:
			out[i] = math.MaxInt16
		case v < math.MinInt16:
			out[i] = math.MinInt16
		default:
			out[i] = int16(v)
		}
	}
	return out
}

// NextPowerOfTwo returns the smallest power of two >= n
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
