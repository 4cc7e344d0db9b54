package pitchfinder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/RyanBlaney/monopitch/algorithms/common"
	"github.com/RyanBlaney/monopitch/algorithms/tonal"
	"github.com/RyanBlaney/monopitch/config"
	"github.com/RyanBlaney/monopitch/logging"
	"github.com/RyanBlaney/monopitch/transcode"
)

var (
	// ErrNilBuffer is returned when Analyze is given no audio
	ErrNilBuffer = errors.New("pitchfinder: sample buffer cannot be nil")

	// ErrSampleRateMismatch is returned when the audio and the configuration disagree
	ErrSampleRateMismatch = errors.New("pitchfinder: sample rate mismatch")
)

// ChunkResult is the outcome for one analysis window
type ChunkResult struct {
	Index     int              `json:"index"`
	Offset    int              `json:"offset"` // First sample of the chunk
	Start     time.Duration    `json:"start"`
	Frequency float64          `json:"frequency,omitempty"`
	Note      tonal.PitchClass `json:"note"`
	Octave    int              `json:"octave,omitempty"`
	Err       error            `json:"-"`
	Error     string           `json:"error,omitempty"`
}

// HasEstimate reports whether the estimator produced a frequency
func (r ChunkResult) HasEstimate() bool {
	return r.Err == nil
}

// Report holds the ordered results of one Analyze call
type Report struct {
	ID         string        `json:"id"`
	SampleRate int           `json:"sample_rate"`
	ChunkSize  int           `json:"chunk_size"`
	Dropped    int           `json:"dropped"` // Trailing samples not analyzed
	Chunks     []ChunkResult `json:"chunks"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Estimated returns how many chunks produced a frequency
func (r *Report) Estimated() int {
	n := 0
	for _, c := range r.Chunks {
		if c.HasEstimate() {
			n++
		}
	}
	return n
}

// Analyzer drives segmentation, estimation and classification over a buffer
type Analyzer struct {
	config    *config.AnalysisConfig
	chunkSize int
	detector  *tonal.PitchDetector
	table     *tonal.NoteTable
	logger    logging.Logger
}

// NewAnalyzer validates config and builds an analyzer using the default note
// table. A nil config uses the defaults.
func NewAnalyzer(cfg *config.AnalysisConfig) (*Analyzer, error) {
	return NewAnalyzerWithTable(cfg, tonal.DefaultNoteTable())
}

// NewAnalyzerWithTable builds an analyzer classifying against table
func NewAnalyzerWithTable(cfg *config.AnalysisConfig, table *tonal.NoteTable) (*Analyzer, error) {
	if cfg == nil {
		cfg = config.DefaultAnalysisConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	chunkSize, err := cfg.ChunkSize()
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		config:    cfg,
		chunkSize: chunkSize,
		detector:  tonal.NewPitchDetectorWithMethod(cfg.SampleRate, cfg.CorrelationMethod()),
		table:     table,
		logger: logging.WithFields(logging.Fields{
			"component": "pitch_analyzer",
		}),
	}, nil
}

// ChunkSize returns the analysis window length in samples
func (a *Analyzer) ChunkSize() int {
	return a.chunkSize
}

// Analyze estimates and classifies every whole chunk of buf in order. A
// chunk whose estimate fails keeps its error in ChunkResult.Err and the
// remaining chunks are still analyzed.
func (a *Analyzer) Analyze(ctx context.Context, buf *transcode.SampleBuffer) (*Report, error) {
	if buf == nil {
		return nil, ErrNilBuffer
	}
	if buf.SampleRate != a.config.SampleRate {
		return nil, fmt.Errorf("%w: audio is %d Hz, analyzer expects %d Hz",
			ErrSampleRateMismatch, buf.SampleRate, a.config.SampleRate)
	}

	start := time.Now()
	report := &Report{
		ID:         uuid.New().String(),
		SampleRate: buf.SampleRate,
		ChunkSize:  a.chunkSize,
		Dropped:    len(buf.Samples) % a.chunkSize,
		Chunks:     make([]ChunkResult, common.ChunkCount(len(buf.Samples), a.chunkSize)),
	}

	logger := a.logger.WithFields(logging.Fields{"report": report.ID})
	logger.Debug("Starting pitch analysis", logging.Fields{
		"samples":    len(buf.Samples),
		"chunk_size": a.chunkSize,
		"chunks":     len(report.Chunks),
		"method":     a.config.CorrelationMethod().String(),
		"workers":    a.config.Workers,
	})

	var err error
	if a.config.Workers <= 1 {
		err = a.analyzeSequential(ctx, buf.Samples, report)
	} else {
		err = a.analyzeConcurrent(ctx, buf.Samples, report)
	}
	if err != nil {
		return nil, err
	}

	for _, c := range report.Chunks {
		if !c.HasEstimate() {
			logger.Debug("No estimate for chunk", logging.Fields{
				"chunk": c.Index,
				"error": c.Error,
			})
		}
	}

	report.Elapsed = time.Since(start)
	logger.Info("Pitch analysis completed", logging.Fields{
		"chunks":    len(report.Chunks),
		"estimated": report.Estimated(),
		"elapsed":   report.Elapsed.String(),
	})

	return report, nil
}

func (a *Analyzer) analyzeSequential(ctx context.Context, samples []int16, report *Report) error {
	for i, chunk := range common.Segment(samples, a.chunkSize) {
		if err := ctx.Err(); err != nil {
			return err
		}
		report.Chunks[i] = a.analyzeChunk(i, chunk)
	}
	return nil
}

// analyzeConcurrent fans chunks out to a bounded pool. Each goroutine writes
// only its own slot, so the report order matches the sequential run.
func (a *Analyzer) analyzeConcurrent(ctx context.Context, samples []int16, report *Report) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.Workers)

	for i, chunk := range common.Segment(samples, a.chunkSize) {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report.Chunks[i] = a.analyzeChunk(i, chunk)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (a *Analyzer) analyzeChunk(index int, chunk []int16) ChunkResult {
	offset := index * a.chunkSize
	result := ChunkResult{
		Index:  index,
		Offset: offset,
		Start:  time.Duration(offset) * time.Second / time.Duration(a.config.SampleRate),
		Note:   tonal.Unknown,
	}

	est, err := a.detector.DetectPitch(chunk)
	if err != nil {
		result.Err = err
		result.Error = err.Error()
		return result
	}

	result.Frequency = est.Frequency
	if ref, ok := a.table.Match(est.Frequency, a.config.NoteEpsilon); ok {
		result.Note = ref.Class
		result.Octave = ref.Octave
	}
	return result
}
