package stats

import (
	"fmt"
	"math"
	"strings"

	"github.com/RyanBlaney/monopitch/algorithms/common"
	"github.com/RyanBlaney/monopitch/algorithms/spectral"
)

// CorrelationMethod represents different computational approaches
type CorrelationMethod int

const (
	// Direct time-domain calculation with exact integer accumulation
	TimeDomain CorrelationMethod = iota

	// FFT-based frequency domain (faster for large chunks, rounded to integers)
	FrequencyDomain
)

func (m CorrelationMethod) String() string {
	switch m {
	case TimeDomain:
		return "direct"
	case FrequencyDomain:
		return "fft"
	default:
		return "unknown"
	}
}

// ParseCorrelationMethod maps a configuration name to a method
func ParseCorrelationMethod(name string) (CorrelationMethod, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "direct", "time", "time_domain":
		return TimeDomain, nil
	case "fft", "frequency", "frequency_domain":
		return FrequencyDomain, nil
	default:
		return TimeDomain, fmt.Errorf("unsupported correlation method %q", name)
	}
}

// EnergyCurve is the un-normalized autocorrelation of a chunk indexed by lag.
// Index 0 is the zero baseline, not the signal energy at lag 0; lags 1..n-1
// hold the sum of x[k]*x[k+lag] over the overlapping region.
type EnergyCurve []int64

// Lags returns the number of computed lags, excluding the baseline
func (c EnergyCurve) Lags() int {
	if len(c) == 0 {
		return 0
	}
	return len(c) - 1
}

// AutoCorrelation computes energy curves for fixed-pitch analysis
//
// References:
// - Rabiner, L.R. (1977). "On the use of autocorrelation analysis for pitch detection"
// - Oppenheim, A.V., Schafer, R.W. (2010). "Discrete-Time Signal Processing"
type AutoCorrelation struct {
	method CorrelationMethod
	fft    *spectral.FFT
}

// NewAutoCorrelation creates an autocorrelation calculator
func NewAutoCorrelation(method CorrelationMethod) *AutoCorrelation {
	return &AutoCorrelation{
		method: method,
		fft:    spectral.NewFFT(),
	}
}

// Method returns the computational approach in use
func (ac *AutoCorrelation) Method() CorrelationMethod {
	return ac.method
}

// Compute returns the energy curve of chunk
func (ac *AutoCorrelation) Compute(chunk []int16) EnergyCurve {
	switch ac.method {
	case FrequencyDomain:
		return energyCurveFFT(ac.fft, chunk)
	default:
		return EnergyCurveDirect(chunk)
	}
}

// EnergyCurveDirect computes the energy curve in O(n^2) with int64 sums.
// A 16-bit product is at most 2^30, so int64 holds chunks of up to 2^33 samples.
func EnergyCurveDirect(chunk []int16) EnergyCurve {
	n := len(chunk)
	if n == 0 {
		return EnergyCurve{}
	}

	curve := make(EnergyCurve, n)
	for lag := 1; lag < n; lag++ {
		shifted := chunk[lag:]
		var sum int64
		for k, b := range shifted {
			sum += int64(chunk[k]) * int64(b)
		}
		curve[lag] = sum
	}
	return curve
}

// EnergyCurveFFT computes the same curve through the power spectrum.
// The chunk is zero padded to at least twice its length so the circular
// correlation equals the linear one, then each lag is rounded to the nearest
// integer. Rounding error grows with chunk length and amplitude; for very
// flat curves the peak set can differ from EnergyCurveDirect.
func EnergyCurveFFT(chunk []int16) EnergyCurve {
	return energyCurveFFT(spectral.NewFFT(), chunk)
}

func energyCurveFFT(f *spectral.FFT, chunk []int16) EnergyCurve {
	n := len(chunk)
	if n == 0 {
		return EnergyCurve{}
	}

	size := common.NextPowerOfTwo(2 * n)
	padded := make([]float64, size)
	copy(padded, common.Int16ToFloat64(chunk))

	correlation := f.AutoCorrelate(padded)

	curve := make(EnergyCurve, n)
	for lag := 1; lag < n; lag++ {
		curve[lag] = int64(math.Round(correlation[lag]))
	}
	return curve
}
