package summarizer_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"pagegist/internal/summarizer"
)

func TestInferenceGeneratorGenerate(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")

		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`[{"generated_text": "</s><s>machine summary</s>"}]`)); err != nil {
			t.Errorf("failed to write response: %v", err)
		}
	}))
	defer server.Close()

	gen, err := summarizer.NewInferenceGenerator(summarizer.InferenceConfig{
		Endpoint: server.URL,
		Model:    "facebook/bart-large-cnn",
		Token:    "secret",
		Decoding: summarizer.DefaultDecodingParams(),
	}, slog.Default())
	if err != nil {
		t.Fatalf("failed to create generator: %v", err)
	}

	raw, err := gen.Generate(
		context.Background(),
		"some article text",
		summarizer.LengthBounds{Min: 25, Max: 100},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if raw != "</s><s>machine summary</s>" {
		t.Fatalf("unexpected raw output: %q", raw)
	}

	if gotPath != "/models/facebook/bart-large-cnn" {
		t.Fatalf("unexpected request path: %q", gotPath)
	}

	if gotAuth != "Bearer secret" {
		t.Fatalf("unexpected authorization header: %q", gotAuth)
	}

	params, ok := gotBody["parameters"].(map[string]any)
	if !ok {
		t.Fatalf("request body lacks parameters: %v", gotBody)
	}

	if got := params["min_length"].(float64); got != 25 {
		t.Fatalf("unexpected min_length: %v", got)
	}

	if got := params["max_length"].(float64); got != 100 {
		t.Fatalf("unexpected max_length: %v", got)
	}

	if got := params["num_beams"].(float64); got != 4 {
		t.Fatalf("unexpected num_beams: %v", got)
	}

	if got := params["length_penalty"].(float64); got != 1.0 {
		t.Fatalf("unexpected length_penalty: %v", got)
	}

	if got := params["early_stopping"].(bool); !got {
		t.Fatal("expected early_stopping to be enabled")
	}
}

func TestInferenceGeneratorUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": "model overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	gen, err := summarizer.NewInferenceGenerator(summarizer.InferenceConfig{
		Endpoint: server.URL,
		Model:    "facebook/bart-large-cnn",
		Decoding: summarizer.DefaultDecodingParams(),
	}, slog.Default())
	if err != nil {
		t.Fatalf("failed to create generator: %v", err)
	}

	if _, err = gen.Generate(
		context.Background(),
		"some article text",
		summarizer.LengthBounds{Min: 25, Max: 100},
	); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestNewInferenceGeneratorValidation(t *testing.T) {
	if _, err := summarizer.NewInferenceGenerator(summarizer.InferenceConfig{
		Model: "facebook/bart-large-cnn",
	}, slog.Default()); err == nil {
		t.Fatal("expected error for empty endpoint")
	}

	if _, err := summarizer.NewInferenceGenerator(summarizer.InferenceConfig{
		Endpoint: "https://example.com",
	}, slog.Default()); err == nil {
		t.Fatal("expected error for empty model")
	}
}
