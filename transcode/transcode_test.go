package transcode_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/monopitch/transcode"
)

func TestWAVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	in := &transcode.SampleBuffer{
		Samples:    []int16{0, 1, -1, 32767, -32768, 1234, -4321, 7},
		SampleRate: 22050,
	}

	require.NoError(t, transcode.WriteWAV(path, in))

	out, err := transcode.ReadWAV(path)
	require.NoError(t, err)
	assert.Equal(t, in.SampleRate, out.SampleRate)
	assert.Equal(t, in.Samples, out.Samples)
}

func TestDuration(t *testing.T) {
	buf := &transcode.SampleBuffer{Samples: make([]int16, 44100/2), SampleRate: 44100}
	assert.Equal(t, 500*time.Millisecond, buf.Duration())

	var nilBuf *transcode.SampleBuffer
	assert.Zero(t, nilBuf.Duration())
}

func TestDecodeRejectsNonWAV(t *testing.T) {
	_, err := transcode.NewDecoder(nil).DecodeReader(bytes.NewReader([]byte("definitely not RIFF data")))
	require.ErrorIs(t, err, transcode.ErrUnsupportedFormat)
}

func TestDecodeChannelLayout(t *testing.T) {
	path := writeRaw(t, 2, 16, []int{100, 300, -50, -150})

	_, err := transcode.ReadWAV(path)
	require.ErrorIs(t, err, transcode.ErrUnsupportedFormat)

	buf, err := transcode.NewDecoder(&transcode.DecoderConfig{Downmix: true}).DecodeFile(path)
	require.NoError(t, err)
	assert.Equal(t, []int16{200, -100}, buf.Samples)
	assert.Equal(t, 8000, buf.SampleRate)
}

func TestDecodeRejectsBitDepth(t *testing.T) {
	path := writeRaw(t, 1, 8, []int{10, 20, 30})

	_, err := transcode.ReadWAV(path)
	require.ErrorIs(t, err, transcode.ErrUnsupportedFormat)
}

func TestWriteErrors(t *testing.T) {
	dir := t.TempDir()
	require.Error(t, transcode.WriteWAV(filepath.Join(dir, "nil.wav"), nil))
	require.Error(t, transcode.WriteWAV(filepath.Join(dir, "rate.wav"), &transcode.SampleBuffer{Samples: []int16{1}}))
	_, err := transcode.ReadWAV(filepath.Join(dir, "missing.wav"))
	require.Error(t, err)
}

func writeRaw(t *testing.T, channels, bitDepth int, data []int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "raw.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, 8000, bitDepth, channels, 1)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: 8000},
		Data:           data,
		SourceBitDepth: bitDepth,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())
	return path
}
