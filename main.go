package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pagegist/internal/config"
	"pagegist/internal/domain"
	"pagegist/internal/extract"
	"pagegist/internal/notify"
	"pagegist/internal/store"
	"pagegist/internal/summarizer"
)

const (
	modeChunked  = "chunked"
	modeTruncate = "truncate"

	runTimeout = 10 * time.Minute
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	mode := flag.String("mode", modeChunked,
		fmt.Sprintf("summarization mode: %q or %q", modeChunked, modeTruncate))
	noCache := flag.Bool("no-cache", false, "bypass the summary cache")
	flag.Parse()

	if err := run(*mode, *noCache, strings.Join(flag.Args(), " "), logger); err != nil {
		logger.Error("Run failed",
			"error", err)
		os.Exit(1)
	}
}

func run(mode string, noCache bool, input string, log *slog.Logger) error {
	if mode != modeChunked && mode != modeTruncate {
		return fmt.Errorf("mode must be %q or %q (got %q)", modeChunked, modeTruncate, mode)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env file: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	articleURL, err := extract.FindArticleURL(input)
	if err != nil {
		return fmt.Errorf("find article URL: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	db, err := store.New(ctx, cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("Failed to close store",
				"error", closeErr,
				"dbPath", cfg.DBPath)
		}
	}()

	gen, err := newGenerator(cfg, log)
	if err != nil {
		return fmt.Errorf("initialize generator: %w", err)
	}

	driver, err := summarizer.NewDriver(gen, summarizer.DriverConfig{
		MaxChunkWords: cfg.MaxChunkWords,
	}, log)
	if err != nil {
		return fmt.Errorf("initialize driver: %w", err)
	}

	fetcher := extract.NewFetcher(log)

	article, err := fetcher.Fetch(ctx, articleURL)
	if err != nil {
		return fmt.Errorf("fetch article: %w", err)
	}

	doc := domain.NewDocument(article.Text)
	log.InfoContext(ctx, "Article is fetched",
		"url", article.URL,
		"title", article.Title,
		"words", doc.Len())

	bounds := summarizer.LengthBounds{Min: cfg.MinLength, Max: cfg.MaxLength}
	key := store.SummaryKey{
		URL:         article.URL,
		ContentHash: store.HashContent(article.Text),
		MinLength:   bounds.Min,
		MaxLength:   bounds.Max,
		Mode:        mode,
	}

	if !noCache {
		cached, found, getErr := db.GetSummary(ctx, key)
		if getErr != nil {
			return fmt.Errorf("look up cached summary: %w", getErr)
		}
		if found {
			log.InfoContext(ctx, "Using cached summary",
				"url", article.URL)
			deliver(ctx, cfg, cached, log)

			return nil
		}
	}

	var summary string
	switch mode {
	case modeChunked:
		summary, err = driver.Summarize(ctx, doc, bounds)
	case modeTruncate:
		summary, err = driver.SummarizeTruncated(ctx, doc, bounds)
	}
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	if summary != "" {
		if saveErr := db.SaveSummary(ctx, key, summary); saveErr != nil {
			log.WarnContext(ctx, "Failed to cache summary",
				"error", saveErr,
				"url", article.URL)
		}
	}

	deliver(ctx, cfg, summary, log)

	return nil
}

func newGenerator(cfg config.Config, log *slog.Logger) (summarizer.Generator, error) {
	switch cfg.Backend {
	case config.BackendOpenAI:
		return summarizer.NewOpenAIGenerator(cfg.OpenAIAPIKey)
	default:
		return summarizer.NewInferenceGenerator(summarizer.InferenceConfig{
			Endpoint: cfg.InferenceEndpoint,
			Model:    cfg.Model,
			Token:    cfg.InferenceToken,
			Decoding: summarizer.DefaultDecodingParams(),
		}, log)
	}
}

// deliver prints the summary and, when a Telegram chat is configured, sends
// it there too. Delivery failure does not fail the run.
func deliver(ctx context.Context, cfg config.Config, summary string, log *slog.Logger) {
	fmt.Println(summary)

	if cfg.TelegramToken == "" || cfg.TelegramChatID == 0 {
		return
	}

	tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		log.WarnContext(ctx, "Failed to initialize Telegram delivery",
			"error", err)

		return
	}

	if err := tg.Send(ctx, summary); err != nil {
		log.WarnContext(ctx, "Failed to deliver summary to Telegram",
			"error", err,
			"chatID", cfg.TelegramChatID)

		return
	}

	log.InfoContext(ctx, "Summary is delivered to Telegram",
		"chatID", cfg.TelegramChatID)
}
