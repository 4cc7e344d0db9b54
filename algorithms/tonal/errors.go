package tonal

import (
	"errors"
	"fmt"
)

var (
	errInsufficientPeaks = errors.New("fewer than 3 autocorrelation peaks")
	errEmptyChunk        = errors.New("empty chunk")
	errInvalidSampleRate = errors.New("sample rate must be positive")
)

// ErrInsufficientPeaks is returned when a chunk is silent, noisy or too low
// in pitch to yield two usable peak distances.
var ErrInsufficientPeaks = fmt.Errorf("tonal: %w", errInsufficientPeaks)

// ErrEmptyChunk is returned for zero-length input.
var ErrEmptyChunk = fmt.Errorf("tonal: %w", errEmptyChunk)

// ErrInvalidSampleRate is returned when the sample rate is not positive.
var ErrInvalidSampleRate = fmt.Errorf("tonal: %w", errInvalidSampleRate)
