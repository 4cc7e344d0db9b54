package transcode

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/go-audio/wav"

	"github.com/RyanBlaney/monopitch/logging"
)

var errUnsupportedFormat = errors.New("unsupported audio format")

// ErrUnsupportedFormat is returned for input that is not 16-bit PCM WAV with
// an accepted channel layout.
var ErrUnsupportedFormat = fmt.Errorf("transcode: %w", errUnsupportedFormat)

// SampleBuffer represents decoded single-channel 16-bit audio
type SampleBuffer struct {
	Samples    []int16 `json:"-"`
	SampleRate int     `json:"sample_rate"`
}

// Duration returns the playing time of the buffer
func (b *SampleBuffer) Duration() time.Duration {
	if b == nil || b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(b.Samples)) * time.Second / time.Duration(b.SampleRate)
}

// DecoderConfig holds decoder configuration
type DecoderConfig struct {
	// Downmix averages multi-channel input to mono instead of rejecting it
	Downmix bool `json:"downmix"`
}

// DefaultDecoderConfig returns default decoder configuration
func DefaultDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		Downmix: false,
	}
}

// Decoder reads 16-bit PCM WAV files into sample buffers
type Decoder struct {
	config *DecoderConfig
	logger logging.Logger
}

// NewDecoder creates a decoder; a nil config uses the defaults
func NewDecoder(config *DecoderConfig) *Decoder {
	if config == nil {
		config = DefaultDecoderConfig()
	}
	return &Decoder{
		config: config,
		logger: logging.WithFields(logging.Fields{
			"component": "wav_decoder",
		}),
	}
}

// ReadWAV decodes a WAV file with the default decoder
func ReadWAV(filename string) (*SampleBuffer, error) {
	return NewDecoder(nil).DecodeFile(filename)
}

// DecodeFile decodes the WAV file at filename
func (d *Decoder) DecodeFile(filename string) (*SampleBuffer, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer f.Close()

	buf, err := d.DecodeReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return buf, nil
}

// DecodeReader decodes WAV data from r
func (d *Decoder) DecodeReader(r io.ReadSeeker) (*SampleBuffer, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a valid WAV stream", ErrUnsupportedFormat)
	}
	if dec.BitDepth != 16 {
		return nil, fmt.Errorf("%w: %d-bit samples, want 16", ErrUnsupportedFormat, dec.BitDepth)
	}
	channels := int(dec.NumChans)
	if channels < 1 || (channels > 1 && !d.config.Downmix) {
		return nil, fmt.Errorf("%w: %d channels, want mono", ErrUnsupportedFormat, channels)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read PCM data: %w", err)
	}

	samples := make([]int16, len(pcm.Data)/channels)
	for i := range samples {
		sum := 0
		for c := range channels {
			sum += pcm.Data[i*channels+c]
		}
		samples[i] = clampInt16(sum / channels)
	}

	buf := &SampleBuffer{
		Samples:    samples,
		SampleRate: int(dec.SampleRate),
	}

	d.logger.Debug("WAV decode completed", logging.Fields{
		"sample_rate": buf.SampleRate,
		"channels":    channels,
		"samples":     len(samples),
		"duration":    buf.Duration().String(),
	})

	return buf, nil
}

func clampInt16(v int) int16 {
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	default:
		return int16(v)
	}
}
