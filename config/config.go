package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/RyanBlaney/monopitch/algorithms/stats"
)

var errInvalidConfiguration = errors.New("invalid configuration")

// ErrInvalidConfiguration is returned when a value cannot produce a usable
// chunk size or classifier tolerance.
var ErrInvalidConfiguration = fmt.Errorf("config: %w", errInvalidConfiguration)

// AnalysisConfig configures segmentation, estimation and classification
type AnalysisConfig struct {
	SampleRate        int     `json:"sample_rate" yaml:"sample_rate"`                 // Hz
	MinDetectableFreq float64 `json:"min_detectable_freq" yaml:"min_detectable_freq"` // Lowest pitch of interest (Hz)
	FudgeFactor       int     `json:"fudge_factor" yaml:"fudge_factor"`               // Periods of MinDetectableFreq per chunk
	NoteEpsilon       float64 `json:"note_epsilon" yaml:"note_epsilon"`               // Classifier tolerance (Hz)

	// Method selects the autocorrelation computation: "direct" or "fft"
	Method string `json:"method" yaml:"method"`

	// Workers bounds concurrent chunk analysis; 0 or 1 runs sequentially
	Workers int `json:"workers" yaml:"workers"`
}

// DefaultAnalysisConfig returns the defaults: 44.1 kHz, 40 Hz floor, ten
// periods per chunk and a 1 Hz tolerance
func DefaultAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		SampleRate:        44100,
		MinDetectableFreq: 40,
		FudgeFactor:       10,
		NoteEpsilon:       1.0,
		Method:            stats.TimeDomain.String(),
		Workers:           1,
	}
}

// Load reads a YAML file and overlays it on the defaults. Keys missing from
// the file keep their default values.
func Load(path string) (*AnalysisConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes YAML into a validated configuration
func Parse(raw []byte) (*AnalysisConfig, error) {
	cfg := DefaultAnalysisConfig()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field and the derived chunk size
func (c *AnalysisConfig) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfiguration)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample_rate must be positive, got %d", ErrInvalidConfiguration, c.SampleRate)
	}
	if !(c.MinDetectableFreq > 0) || math.IsInf(c.MinDetectableFreq, 0) {
		return fmt.Errorf("%w: min_detectable_freq must be positive, got %g", ErrInvalidConfiguration, c.MinDetectableFreq)
	}
	if c.FudgeFactor <= 0 {
		return fmt.Errorf("%w: fudge_factor must be positive, got %d", ErrInvalidConfiguration, c.FudgeFactor)
	}
	if !(c.NoteEpsilon > 0) || math.IsInf(c.NoteEpsilon, 0) {
		return fmt.Errorf("%w: note_epsilon must be positive, got %g", ErrInvalidConfiguration, c.NoteEpsilon)
	}
	if _, err := stats.ParseCorrelationMethod(c.Method); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfiguration, c.Workers)
	}
	_, err := c.ChunkSize()
	return err
}

// ChunkSize returns ceil(FudgeFactor * SampleRate / MinDetectableFreq), the
// number of samples holding FudgeFactor periods of the lowest pitch.
// A floor above the Nyquist frequency cannot be detected and is rejected.
func (c *AnalysisConfig) ChunkSize() (int, error) {
	if c.SampleRate <= 0 || c.FudgeFactor <= 0 || !(c.MinDetectableFreq > 0) {
		return 0, fmt.Errorf("%w: chunk size needs positive sample_rate, fudge_factor and min_detectable_freq", ErrInvalidConfiguration)
	}

	if c.MinDetectableFreq > float64(c.SampleRate)/2 {
		return 0, fmt.Errorf("%w: min_detectable_freq %g is above the Nyquist frequency of %d Hz", ErrInvalidConfiguration, c.MinDetectableFreq, c.SampleRate)
	}

	size := math.Ceil(float64(c.FudgeFactor) * float64(c.SampleRate) / c.MinDetectableFreq)
	if size < 1 || size > math.MaxInt32 {
		return 0, fmt.Errorf("%w: chunk size %g out of range", ErrInvalidConfiguration, size)
	}
	return int(size), nil
}

// CorrelationMethod returns the parsed Method
func (c *AnalysisConfig) CorrelationMethod() stats.CorrelationMethod {
	method, _ := stats.ParseCorrelationMethod(c.Method)
	return method
}
