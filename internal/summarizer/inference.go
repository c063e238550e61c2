package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const inferenceClientTimeout = 120 * time.Second

// InferenceConfig points at a hosted seq2seq inference endpoint. The
// endpoint must decode without skipping special tokens so that the returned
// text retains the sequence-boundary markers.
type InferenceConfig struct {
	Endpoint string
	Model    string
	Token    string
	Decoding DecodingParams
}

// InferenceGenerator calls a hosted sequence-to-sequence model over HTTP.
type InferenceGenerator struct {
	cfg    InferenceConfig
	client *http.Client
	log    *slog.Logger
}

type inferenceParameters struct {
	MinLength     int     `json:"min_length"`
	MaxLength     int     `json:"max_length"`
	NumBeams      int     `json:"num_beams"`
	LengthPenalty float64 `json:"length_penalty"`
	EarlyStopping bool    `json:"early_stopping"`
}

type inferenceOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
	Options    inferenceOptions    `json:"options"`
}

type inferenceResult struct {
	GeneratedText string `json:"generated_text"`
	SummaryText   string `json:"summary_text"`
}

func NewInferenceGenerator(cfg InferenceConfig, log *slog.Logger) (*InferenceGenerator, error) {
	cfg.Endpoint = strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if cfg.Endpoint == "" {
		return nil, errors.New("inference endpoint is empty")
	}

	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.Model == "" {
		return nil, errors.New("model name is empty")
	}

	return &InferenceGenerator{
		cfg:    cfg,
		client: &http.Client{Timeout: inferenceClientTimeout},
		log:    log,
	}, nil
}

func (g *InferenceGenerator) Generate(
	ctx context.Context,
	text string,
	bounds LengthBounds,
) (string, error) {
	body, err := json.Marshal(inferenceRequest{
		Inputs: text,
		Parameters: inferenceParameters{
			MinLength:     bounds.Min,
			MaxLength:     bounds.Max,
			NumBeams:      g.cfg.Decoding.NumBeams,
			LengthPenalty: g.cfg.Decoding.LengthPenalty,
			EarlyStopping: g.cfg.Decoding.EarlyStopping,
		},
		Options: inferenceOptions{WaitForModel: true},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	requestURL := fmt.Sprintf("%s/models/%s", g.cfg.Endpoint, g.cfg.Model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if g.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+g.cfg.Token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			g.log.ErrorContext(ctx, "Failed to close response body",
				"error", closeErr,
				"model", g.cfg.Model)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

		return "", fmt.Errorf("do request: unexpected status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var results []inferenceResult
	if err = json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(results) == 0 {
		return "", errors.New("empty response")
	}

	raw := results[0].GeneratedText
	if raw == "" {
		raw = results[0].SummaryText
	}

	return raw, nil
}
