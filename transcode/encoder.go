package transcode

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavFormatPCM is the WAVE_FORMAT_PCM format tag
const wavFormatPCM = 1

// WriteWAV writes buf to filename as 16-bit mono PCM, replacing any existing file
func WriteWAV(filename string, buf *SampleBuffer) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}

	if err := EncodeWAV(f, buf); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", filename, err)
	}
	return f.Close()
}

// EncodeWAV writes buf to w as 16-bit mono PCM. The encoder seeks back to
// patch the RIFF header sizes after the data is written.
func EncodeWAV(w io.WriteSeeker, buf *SampleBuffer) error {
	if buf == nil {
		return fmt.Errorf("sample buffer cannot be nil")
	}
	if buf.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate %d", buf.SampleRate)
	}

	data := make([]int, len(buf.Samples))
	for i, s := range buf.Samples {
		data[i] = int(s)
	}

	enc := wav.NewEncoder(w, buf.SampleRate, 16, 1, wavFormatPCM)
	pcm := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  buf.SampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(pcm); err != nil {
		return fmt.Errorf("failed to write PCM data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV header: %w", err)
	}
	return nil
}
