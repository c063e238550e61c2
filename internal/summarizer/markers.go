package summarizer

import (
	"errors"
	"fmt"
	"strings"
)

// Sequence-boundary markers emitted by the generation model around decoded
// text. They must never leak into user-visible output.
const (
	startMarker = "<s>"
	endMarker   = "</s>"
)

var ErrMalformedOutput = errors.New("generation output lacks boundary markers")

// extractGenerated returns the trimmed text between the last end marker and
// the last start marker preceding it. Raw output with multiple marker pairs
// yields the content of the last pair only.
func extractGenerated(raw string) (string, error) {
	end := strings.LastIndex(raw, endMarker)
	if end < 0 {
		return "", fmt.Errorf("%w: missing %q", ErrMalformedOutput, endMarker)
	}

	start := strings.LastIndex(raw[:end], startMarker)
	if start < 0 {
		return "", fmt.Errorf("%w: missing %q before %q", ErrMalformedOutput, startMarker, endMarker)
	}

	return strings.TrimSpace(raw[start+len(startMarker) : end]), nil
}
