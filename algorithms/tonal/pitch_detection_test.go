package tonal_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/monopitch/algorithms/stats"
	"github.com/RyanBlaney/monopitch/algorithms/tonal"
)

const (
	sampleRate = 44100
	chunkSize  = 11025
)

func sine(freq float64, rate, n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		t := float64(i) / float64(rate)
		out[i] = int16(math.Sin(2*math.Pi*freq*t) * math.MaxInt16)
	}
	return out
}

func TestEstimateFrequencySine(t *testing.T) {
	for _, freq := range []float64{55, 110, 220, 261.63, 440, 880, 1760, 3520, 4186.01} {
		t.Run(fmt.Sprintf("%.2fHz", freq), func(t *testing.T) {
			got, err := tonal.EstimateFrequency(sine(freq, sampleRate, chunkSize), sampleRate)
			require.NoError(t, err)
			assert.InEpsilon(t, freq, got, 0.02, "estimate should be within 2%% of the tone")
		})
	}
}

// TestEstimateA440: the reference scenario, 440 Hz in an 11025 sample chunk.
func TestEstimateA440(t *testing.T) {
	got, err := tonal.EstimateFrequency(sine(440, sampleRate, chunkSize), sampleRate)
	require.NoError(t, err)
	require.InDelta(t, 440.0, got, 5.0)

	if math.Abs(got-440) < 1 {
		assert.Equal(t, tonal.A, tonal.ClassifyNote(got, tonal.DefaultNoteTable(), 1.0))
	}
}

func TestDetectPitchDetails(t *testing.T) {
	pd := tonal.NewPitchDetector(sampleRate)
	require.Equal(t, sampleRate, pd.SampleRate())

	est, err := pd.DetectPitch(sine(440, sampleRate, chunkSize))
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(est.Peaks), 3)
	assert.Equal(t, 1, est.Peaks[0], "first peak sits on the lag-1 edge")
	assert.InDelta(t, float64(sampleRate)/440, est.Period, 1.0)
	assert.InDelta(t, float64(sampleRate)/est.Period, est.Frequency, 1e-9)
	assert.Equal(t, sampleRate, est.SampleRate)
	assert.IsIncreasing(t, est.Peaks)
}

func TestDetectPitchFFTMatchesDirect(t *testing.T) {
	chunk := sine(440, sampleRate, chunkSize)

	direct, err := tonal.NewPitchDetectorWithMethod(sampleRate, stats.TimeDomain).DetectPitch(chunk)
	require.NoError(t, err)
	viaFFT, err := tonal.NewPitchDetectorWithMethod(sampleRate, stats.FrequencyDomain).DetectPitch(chunk)
	require.NoError(t, err)

	assert.InEpsilon(t, direct.Frequency, viaFFT.Frequency, 0.02)
	assert.InDelta(t, 440.0, viaFFT.Frequency, 5.0)
}

func TestDetectPitchFailures(t *testing.T) {
	cases := []struct {
		name  string
		chunk []int16
		rate  int
		want  error
	}{
		{"empty", nil, sampleRate, tonal.ErrEmptyChunk},
		{"silence", make([]int16, chunkSize), sampleRate, tonal.ErrInsufficientPeaks},
		{"below amplitude resolution", quiet(chunkSize), sampleRate, tonal.ErrInsufficientPeaks},
		{"constant offset", constant(100, 1000), sampleRate, tonal.ErrInsufficientPeaks},
		{"below detectable range", sine(2, sampleRate, chunkSize), sampleRate, tonal.ErrInsufficientPeaks},
		{"three samples", []int16{1, 2, 3}, sampleRate, tonal.ErrInsufficientPeaks},
		{"zero sample rate", sine(440, sampleRate, 1000), 0, tonal.ErrInvalidSampleRate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			est, err := tonal.NewPitchDetector(tc.rate).DetectPitch(tc.chunk)
			require.ErrorIs(t, err, tc.want)
			require.Nil(t, est)
		})
	}
}

func TestPolyphonicInputDoesNotPanic(t *testing.T) {
	a := sine(440, sampleRate, chunkSize)
	e := sine(659.25, sampleRate, chunkSize)
	mixed := make([]int16, chunkSize)
	for i := range mixed {
		mixed[i] = a[i]/2 + e[i]/2
	}

	require.NotPanics(t, func() {
		_, _ = tonal.EstimateFrequency(mixed, sampleRate)
	})
}

func TestFindPeaks(t *testing.T) {
	cases := []struct {
		name  string
		curve stats.EnergyCurve
		want  []int
	}{
		{"empty", stats.EnergyCurve{}, nil},
		{"baseline only", stats.EnergyCurve{0}, nil},
		{"edge peak", stats.EnergyCurve{0, 5, 3}, []int{1}},
		{"rising tail is not a peak", stats.EnergyCurve{0, 1, 2, 3}, nil},
		{"two humps", stats.EnergyCurve{0, 4, 1, 2, 6, 5, 7, 3}, []int{1, 4, 6}},
		{"plateau resets", stats.EnergyCurve{0, 2, 2, 1}, nil},
		{"negative energies", stats.EnergyCurve{0, -5, -2, -4}, []int{2}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tonal.FindPeaks(tc.curve))
		})
	}
}

func TestAveragePeriodDropsFirstDistance(t *testing.T) {
	period, err := tonal.AveragePeriod([]int{1, 100, 200, 301})
	require.NoError(t, err)
	assert.InDelta(t, 100.5, period, 1e-12)

	_, err = tonal.AveragePeriod([]int{1, 100})
	require.ErrorIs(t, err, tonal.ErrInsufficientPeaks)
}

func quiet(n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(0.9 * math.Sin(2*math.Pi*440*float64(i)/sampleRate))
	}
	return out
}

func constant(n int, v int16) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = v
	}
	return out
}
