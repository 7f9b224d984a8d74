package paging

import "fmt"

// Chunk splits items into contiguous groups of at most size elements; the
// last group may be smaller. Concatenating the groups in order reproduces
// items exactly. The groups alias the input slice. Chunk panics if size is
// less than 1.
func Chunk[T any](items []T, size int) [][]T {
	if size < 1 {
		panic(fmt.Sprintf("paging: chunk size %d, must be at least 1", size))
	}
	var chunks [][]T
	for len(items) > size {
		chunks = append(chunks, items[:size:size])
		items = items[size:]
	}
	if len(items) > 0 {
		chunks = append(chunks, items)
	}
	return chunks
}
