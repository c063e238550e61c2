// Package chunker partitions a word sequence into bounded contiguous chunks.
package chunker

import "fmt"

// Split partitions words into contiguous chunks of at most maxWords each,
// in original order, with no word dropped, duplicated, or reordered.
// Concatenating the chunks reproduces the input exactly; the last chunk may
// be shorter than maxWords. An empty input yields no chunks.
func Split(words []string, maxWords int) ([][]string, error) {
	if maxWords <= 0 {
		return nil, fmt.Errorf("max chunk size must be positive (got %d)", maxWords)
	}

	if len(words) == 0 {
		return nil, nil
	}

	chunks := make([][]string, 0, count(len(words), maxWords))
	for start := 0; start < len(words); start += maxWords {
		end := min(start+maxWords, len(words))
		chunks = append(chunks, words[start:end])
	}

	return chunks, nil
}

func count(n, maxWords int) int {
	return (n + maxWords - 1) / maxWords
}
