// Package synth generates test tones as 16-bit PCM.
package synth

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/monopitch/algorithms/common"
)

// DefaultSweepFrequencies is the stepped test sweep: C3 to D4, then D7 to G#8
var DefaultSweepFrequencies = []float64{
	130.81, 138.59, 146.83, 155.56, 164.81, 174.61, 185.00, 196.00, 207.65, 220.00, 233.08,
	246.94, 261.63, 277.18, 293.66, 2349.32, 2489.02, 2637.02, 2793.83, 2959.96, 3135.96,
	3322.44, 3520.00, 3729.31, 3951.07, 4186.01, 4434.92, 4698.63, 4978.03, 5274.04,
	5587.65, 5919.91, 6271.93, 6644.88,
}

// Sine returns n samples of a full-scale sine at freq Hz
func Sine(freq float64, sampleRate, n int) []int16 {
	return Sweep([]float64{freq}, sampleRate, n)
}

// Sweep returns n samples stepping through freqs, each held for an equal
// share of the output. Phase is taken from absolute time, so the waveform
// jumps at step boundaries rather than continuing smoothly.
func Sweep(freqs []float64, sampleRate, n int) []int16 {
	if len(freqs) == 0 || sampleRate <= 0 || n <= 0 {
		return []int16{}
	}

	wave := make([]float64, n)
	for i := range wave {
		step := len(freqs) * i / n
		t := float64(i) / float64(sampleRate)
		wave[i] = math.Sin(2*math.Pi*freqs[step]*t)
	}
	return common.Float64ToInt16(wave)
}

// SweepSamples returns the sample count for duration seconds at sampleRate
func SweepSamples(sampleRate int, seconds float64) (int, error) {
	if sampleRate <= 0 || !(seconds > 0) {
		return 0, fmt.Errorf("invalid sweep length: %d Hz for %gs", sampleRate, seconds)
	}
	return int(math.Round(float64(sampleRate) * seconds)), nil
}
