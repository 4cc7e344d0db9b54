package common

import "iter"

// Segment splits samples into consecutive, non-overlapping chunks of exactly
// size samples and yields them with their index. A trailing remainder shorter
// than size is dropped.
//
// Chunks alias the input slice and must be treated as read-only. The returned
// sequence is lazy and can be ranged over any number of times.
func Segment(samples []int16, size int) iter.Seq2[int, []int16] {
	return func(yield func(int, []int16) bool) {
		if size <= 0 {
			return
		}
		n := ChunkCount(len(samples), size)
		for i := range n {
			start := i * size
			// Cap the capacity so an append on a chunk can never bleed into its neighbour
			if !yield(i, samples[start:start+size:start+size]) {
				return
			}
		}
	}
}

// ChunkCount returns how many whole chunks of size fit into length samples
func ChunkCount(length, size int) int {
	if size <= 0 || length <= 0 {
		return 0
	}
	return length / size
}

// Chunks collects the output of Segment into a slice
func Chunks(samples []int16, size int) [][]int16 {
	chunks := make([][]int16, 0, ChunkCount(len(samples), size))
	for _, chunk := range Segment(samples, size) {
		chunks = append(chunks, chunk)
	}
	return chunks
}
