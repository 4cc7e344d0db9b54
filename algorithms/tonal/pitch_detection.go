package tonal

import (
	"fmt"

	"github.com/RyanBlaney/monopitch/algorithms/common"
	"github.com/RyanBlaney/monopitch/algorithms/stats"
)

// minPeaks is the smallest peak count that leaves two distances once the
// first one is discarded
const minPeaks = 3

// PitchEstimate contains the result of analyzing one chunk
type PitchEstimate struct {
	Frequency  float64 `json:"frequency"`   // Estimated fundamental (Hz)
	Period     float64 `json:"period"`      // Average period in samples
	Peaks      []int   `json:"peaks"`       // Lags of the autocorrelation maxima
	SampleRate int     `json:"sample_rate"` // Sample rate the frequency refers to
}

// PitchDetector estimates the fundamental of a monotonic signal from the
// spacing of its autocorrelation peaks
//
// References:
// - Rabiner, L.R. (1977). "On the use of autocorrelation analysis for pitch detection"
//
// The detector holds no per-call state and is safe for concurrent use.
type PitchDetector struct {
	sampleRate int
	autocorr   *stats.AutoCorrelation
}

// NewPitchDetector creates a detector using the direct time-domain curve
func NewPitchDetector(sampleRate int) *PitchDetector {
	return NewPitchDetectorWithMethod(sampleRate, stats.TimeDomain)
}

// NewPitchDetectorWithMethod creates a detector with an explicit curve method
func NewPitchDetectorWithMethod(sampleRate int, method stats.CorrelationMethod) *PitchDetector {
	return &PitchDetector{
		sampleRate: sampleRate,
		autocorr:   stats.NewAutoCorrelation(method),
	}
}

// SampleRate returns the sample rate frequencies are computed against
func (pd *PitchDetector) SampleRate() int {
	return pd.sampleRate
}

// DetectPitch estimates the pitch of a single chunk
func (pd *PitchDetector) DetectPitch(chunk []int16) (*PitchEstimate, error) {
	if pd.sampleRate <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSampleRate, pd.sampleRate)
	}
	if len(chunk) == 0 {
		return nil, ErrEmptyChunk
	}

	curve := pd.autocorr.Compute(chunk)
	peaks := FindPeaks(curve)

	period, err := AveragePeriod(peaks)
	if err != nil {
		return nil, err
	}

	return &PitchEstimate{
		Frequency:  float64(pd.sampleRate) / period,
		Period:     period,
		Peaks:      peaks,
		SampleRate: pd.sampleRate,
	}, nil
}

// EstimateFrequency returns the fundamental of chunk in Hz
func EstimateFrequency(chunk []int16, sampleRate int) (float64, error) {
	est, err := NewPitchDetector(sampleRate).DetectPitch(chunk)
	if err != nil {
		return 0, err
	}
	return est.Frequency, nil
}

// FindPeaks returns the lags at which the curve stops rising and falls.
// The walk starts from the zero baseline at index 0, so a positive energy at
// lag 1 followed by a drop counts as a peak at lag 1. Plateaus reset the
// rising state and are not reported.
func FindPeaks(curve stats.EnergyCurve) []int {
	var peaks []int
	if len(curve) < 2 {
		return peaks
	}

	prev := curve[0]
	increasing := false
	for lag := 1; lag < len(curve); lag++ {
		energy := curve[lag]
		if increasing && energy < prev {
			peaks = append(peaks, lag-1)
		}
		increasing = energy > prev
		prev = energy
	}
	return peaks
}

// AveragePeriod averages the distances between consecutive peaks after
// dropping the first one, which usually spans the lag-1 edge peak.
func AveragePeriod(peaks []int) (float64, error) {
	if len(peaks) < minPeaks {
		return 0, fmt.Errorf("%w: found %d", ErrInsufficientPeaks, len(peaks))
	}

	distances := make([]float64, 0, len(peaks)-2)
	for i := 2; i < len(peaks); i++ {
		distances = append(distances, float64(peaks[i]-peaks[i-1]))
	}
	return common.Mean(distances), nil
}
