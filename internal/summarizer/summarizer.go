package summarizer

import (
	"context"
	"fmt"
)

// LengthBounds carries the requested output length window, in tokens. The
// bounds are decoding hints, not guarantees: actual output length may fall
// outside the window.
type LengthBounds struct {
	Min int
	Max int
}

func (b LengthBounds) Validate() error {
	if b.Min < 0 {
		return fmt.Errorf("min length must be non-negative (got %d)", b.Min)
	}

	if b.Min > b.Max {
		return fmt.Errorf("min length must not exceed max length (got %d > %d)", b.Min, b.Max)
	}

	return nil
}

// DecodingParams are the fixed decoding policy shared by all generation
// calls. They are configured once per backend, never per call.
type DecodingParams struct {
	NumBeams      int
	LengthPenalty float64
	EarlyStopping bool
}

func DefaultDecodingParams() DecodingParams {
	return DecodingParams{
		NumBeams:      4,
		LengthPenalty: 1.0,
		EarlyStopping: true,
	}
}

// Generator is the external generation capability. Generate returns the raw
// decoded sequence, including the start and end boundary markers, for the
// caller to clean. Implementations may truncate input beyond the model's
// token capacity; failures propagate unchanged.
type Generator interface {
	Generate(ctx context.Context, text string, bounds LengthBounds) (string, error)
}
