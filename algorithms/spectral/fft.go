package spectral

import (
	"github.com/mjibson/go-dsp/fft"
)

// FFT wraps mjibson/go-dsp for real-valued input
type FFT struct{}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// Compute returns the spectrum of x. go-dsp handles any length; power-of-two
// sizes take the radix-2 path.
func (f *FFT) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}
	return fft.FFTReal(x)
}

// ComputeInverseReal computes the inverse FFT and returns the real part only
func (f *FFT) ComputeInverseReal(x []complex128) []float64 {
	if len(x) == 0 {
		return []float64{}
	}

	result := fft.IFFT(x)
	realResult := make([]float64, len(result))
	for i, val := range result {
		realResult[i] = real(val)
	}
	return realResult
}

// AutoCorrelate returns the circular autocorrelation of x via its power
// spectrum. Callers zero pad x to avoid wrap-around.
func (f *FFT) AutoCorrelate(x []float64) []float64 {
	spectrum := f.Compute(x)
	for i, c := range spectrum {
		re, im := real(c), imag(c)
		spectrum[i] = complex(re*re+im*im, 0)
	}
	return f.ComputeInverseReal(spectrum)
}
