package spectral_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RyanBlaney/monopitch/algorithms/spectral"
)

func TestAutoCorrelate(t *testing.T) {
	f := spectral.NewFFT()

	// [1 2 3 0 0 0 0 0]: lag0=14, lag1=8, lag2=3
	got := f.AutoCorrelate([]float64{1, 2, 3, 0, 0, 0, 0, 0})
	assert.Len(t, got, 8)
	assert.InDelta(t, 14.0, got[0], 1e-9)
	assert.InDelta(t, 8.0, got[1], 1e-9)
	assert.InDelta(t, 3.0, got[2], 1e-9)
	assert.InDelta(t, 0.0, got[4], 1e-9)
}

func TestEmptyInput(t *testing.T) {
	f := spectral.NewFFT()
	assert.Empty(t, f.Compute(nil))
	assert.Empty(t, f.ComputeInverseReal(nil))
	assert.Empty(t, f.AutoCorrelate(nil))
}
