package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"pagegist/internal/chunker"
	"pagegist/internal/domain"
)

const (
	// DefaultModelCapacityTokens matches the input window of the reference
	// seq2seq models; input beyond it is silently truncated by the backend.
	DefaultModelCapacityTokens = 1024

	tokenEstimateEncoding = "cl100k_base"
)

type DriverConfig struct {
	MaxChunkWords       int
	ModelCapacityTokens int
}

// Driver runs the chunked summarization loop: split the document into
// bounded word chunks, generate a summary for each chunk strictly in order,
// clean the boundary markers, and join the cleaned texts. Chunks are
// processed sequentially; there is no parallelism and no retry.
type Driver struct {
	gen           Generator
	maxChunkWords int
	modelCapacity int
	encoding      *tiktoken.Tiktoken
	log           *slog.Logger
}

func NewDriver(gen Generator, cfg DriverConfig, log *slog.Logger) (*Driver, error) {
	if gen == nil {
		return nil, fmt.Errorf("generator is required")
	}

	if cfg.MaxChunkWords <= 0 {
		return nil, fmt.Errorf("max chunk words must be positive (got %d)", cfg.MaxChunkWords)
	}

	if cfg.ModelCapacityTokens <= 0 {
		cfg.ModelCapacityTokens = DefaultModelCapacityTokens
	}

	encoding, err := tiktoken.GetEncoding(tokenEstimateEncoding)
	if err != nil {
		log.Warn("Token estimation is unavailable",
			"error", err,
			"encoding", tokenEstimateEncoding)

		encoding = nil
	}

	return &Driver{
		gen:           gen,
		maxChunkWords: cfg.MaxChunkWords,
		modelCapacity: cfg.ModelCapacityTokens,
		encoding:      encoding,
		log:           log,
	}, nil
}

// Summarize partitions doc into word chunks and summarizes each one,
// returning the space-joined concatenation of the cleaned per-chunk outputs
// in document order. An empty document yields an empty summary.
func (d *Driver) Summarize(
	ctx context.Context,
	doc domain.Document,
	bounds LengthBounds,
) (string, error) {
	if err := bounds.Validate(); err != nil {
		return "", err
	}

	chunks, err := chunker.Split(doc.Words(), d.maxChunkWords)
	if err != nil {
		return "", fmt.Errorf("split document: %w", err)
	}

	var summary strings.Builder
	for i, chunk := range chunks {
		cleaned, summarizeErr := d.summarizeChunk(ctx, chunk, bounds)
		if summarizeErr != nil {
			return "", fmt.Errorf("summarize chunk %d of %d: %w", i+1, len(chunks), summarizeErr)
		}

		if summary.Len() > 0 {
			summary.WriteString(" ")
		}
		summary.WriteString(cleaned)
	}

	return summary.String(), nil
}

// SummarizeTruncated issues a single generation call over the whole
// document. Input beyond the model capacity is truncated by the backend's
// tokenizer; the loss is accepted and only logged here.
func (d *Driver) SummarizeTruncated(
	ctx context.Context,
	doc domain.Document,
	bounds LengthBounds,
) (string, error) {
	if err := bounds.Validate(); err != nil {
		return "", err
	}

	if doc.Len() == 0 {
		return "", nil
	}

	text := doc.Text()

	if tokens := d.estimateTokens(text); tokens > d.modelCapacity {
		d.log.WarnContext(ctx, "Input exceeds model capacity and will be truncated",
			"estimatedTokens", tokens,
			"modelCapacityTokens", d.modelCapacity,
			"words", doc.Len())
	}

	return d.summarizeChunk(ctx, doc.Words(), bounds)
}

func (d *Driver) summarizeChunk(
	ctx context.Context,
	words []string,
	bounds LengthBounds,
) (string, error) {
	raw, err := d.gen.Generate(ctx, strings.Join(words, " "), bounds)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	cleaned, err := extractGenerated(raw)
	if err != nil {
		return "", fmt.Errorf("clean output: %w", err)
	}

	return cleaned, nil
}

func (d *Driver) estimateTokens(text string) int {
	if d.encoding == nil {
		return 0
	}

	return len(d.encoding.Encode(text, nil, nil))
}
