package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	BackendInference = "inference"
	BackendOpenAI    = "openai"
)

type Config struct {
	Backend           string `env:"BACKEND"            envDefault:"inference"`
	Model             string `env:"MODEL"              envDefault:"facebook/bart-large-cnn"`
	InferenceEndpoint string `env:"INFERENCE_ENDPOINT" envDefault:"https://api-inference.huggingface.co"`
	InferenceToken    string `env:"INFERENCE_TOKEN"`
	OpenAIAPIKey      string `env:"OPENAI_API_KEY"`
	DBPath            string `env:"DB_PATH"            envDefault:"pagegist.sqlite"`
	MinLength         int    `env:"MIN_LENGTH"         envDefault:"25"`
	MaxLength         int    `env:"MAX_LENGTH"         envDefault:"100"`
	MaxChunkWords     int    `env:"MAX_CHUNK_WORDS"    envDefault:"1024"`
	TelegramToken     string `env:"TELEGRAM_TOKEN"`
	TelegramChatID    int64  `env:"TELEGRAM_CHAT_ID"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.Backend != BackendInference && c.Backend != BackendOpenAI {
		return fmt.Errorf("BACKEND must be %q or %q (got %q)",
			BackendInference, BackendOpenAI, c.Backend)
	}

	if c.MinLength < 0 {
		return fmt.Errorf("MIN_LENGTH must be non-negative (got %d)", c.MinLength)
	}

	if c.MinLength > c.MaxLength {
		return fmt.Errorf("MIN_LENGTH must not exceed MAX_LENGTH (got %d > %d)",
			c.MinLength, c.MaxLength)
	}

	if c.MaxChunkWords <= 0 {
		return fmt.Errorf("MAX_CHUNK_WORDS must be positive (got %d)", c.MaxChunkWords)
	}

	if c.Backend == BackendOpenAI && c.OpenAIAPIKey == "" {
		return errors.New("OPENAI_API_KEY is required for the openai backend")
	}

	return nil
}
