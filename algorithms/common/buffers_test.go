package common_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/monopitch/algorithms/common"
)

func ramp(n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(i)
	}
	return out
}

func TestSegmentDropsRemainder(t *testing.T) {
	samples := ramp(23)
	chunks := common.Chunks(samples, 5)

	require.Len(t, chunks, 4)
	for i, chunk := range chunks {
		require.Len(t, chunk, 5)
		assert.Equal(t, samples[i*5:(i+1)*5], chunk, "chunk %d", i)
	}
	assert.Equal(t, int16(19), chunks[3][4], "samples 20..22 are dropped")
}

func TestSegmentCounts(t *testing.T) {
	cases := []struct {
		length, size, want int
	}{
		{0, 5, 0},
		{4, 5, 0},
		{5, 5, 1},
		{11025 * 3, 11025, 3},
		{11025*3 + 11024, 11025, 3},
		{10, 0, 0},
		{10, -1, 0},
	}

	for _, tc := range cases {
		got := 0
		for range common.Segment(ramp(tc.length), tc.size) {
			got++
		}
		assert.Equal(t, tc.want, got, "length=%d size=%d", tc.length, tc.size)
		assert.Equal(t, tc.want, common.ChunkCount(tc.length, tc.size))
	}
}

func TestSegmentIsRestartableAndLazy(t *testing.T) {
	seq := common.Segment(ramp(30), 10)

	var first, second []int
	for i := range seq {
		first = append(first, i)
	}
	for i := range seq {
		second = append(second, i)
		if i == 1 {
			break
		}
	}

	assert.Equal(t, []int{0, 1, 2}, first)
	assert.Equal(t, []int{0, 1}, second)
}

func TestSegmentChunksCannotGrowIntoNeighbours(t *testing.T) {
	samples := ramp(10)
	chunks := common.Chunks(samples, 5)

	_ = append(chunks[0], 99)
	assert.Equal(t, int16(5), samples[5])
}

func TestMathHelpers(t *testing.T) {
	assert.Equal(t, 0.0, common.Mean(nil))
	assert.InDelta(t, 2.5, common.Mean([]float64{1, 2, 3, 4}), 1e-12)
	assert.Equal(t, []float64{-3, 0, 7}, common.Int16ToFloat64([]int16{-3, 0, 7}))
	assert.Equal(t, []int16{32767, -32767, 0, 16383, 32767, -32768}, common.Float64ToInt16([]float64{1, -1, 0, 0.5, 2, -2}))

	for n, want := range map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 1000: 1024, 22050: 32768} {
		assert.Equal(t, want, common.NextPowerOfTwo(n), "n=%d", n)
	}
}
