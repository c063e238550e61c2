// Package extract fetches a web page and reduces it to readable article text.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"pagegist/internal/domain"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"

	fetchTimeout = 20 * time.Second

	maxBodyBytes = 10 << 20
)

type Fetcher struct {
	client     *http.Client
	feedParser *gofeed.Parser
	log        *slog.Logger
}

func NewFetcher(log *slog.Logger) *Fetcher {
	return &Fetcher{
		client:     &http.Client{Timeout: fetchTimeout},
		feedParser: gofeed.NewParser(),
		log:        log,
	}
}

// Fetch issues a single GET for rawURL and extracts the article. HTML pages
// yield the joined paragraph text; RSS/Atom responses yield the newest
// item's content. There are no retries.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*domain.Article, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, errors.New("URL is empty")
	}

	if _, err := url.Parse(rawURL); err != nil {
		return nil, fmt.Errorf("parse URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			f.log.ErrorContext(ctx, "Failed to close response body",
				"error", closeErr,
				"url", rawURL)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("do request: unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if isFeed(resp.Header.Get("Content-Type"), body) {
		return f.parseFeed(rawURL, body)
	}

	return parseHTML(rawURL, body)
}

func isFeed(contentType string, body []byte) bool {
	contentType = strings.ToLower(contentType)
	if strings.Contains(contentType, "rss") ||
		strings.Contains(contentType, "atom") ||
		strings.Contains(contentType, "xml") {
		return true
	}

	head := body
	if len(head) > 512 {
		head = head[:512]
	}

	return bytes.Contains(head, []byte("<rss")) || bytes.Contains(head, []byte("<feed"))
}

func parseHTML(rawURL string, body []byte) (*domain.Article, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create document from reader: %w", err)
	}

	title := strings.TrimSpace(doc.Find("meta[property='og:title']").AttrOr("content", ""))
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	var textBuilder strings.Builder
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		fragment := strings.TrimSpace(s.Text())
		if fragment == "" {
			return
		}
		if textBuilder.Len() > 0 {
			textBuilder.WriteString("\n")
		}
		textBuilder.WriteString(fragment)
	})

	text := strings.TrimSpace(textBuilder.String())
	if text == "" {
		return nil, fmt.Errorf("no paragraph text found (URL = %s)", rawURL)
	}

	return &domain.Article{URL: rawURL, Title: title, Text: text}, nil
}

func (f *Fetcher) parseFeed(rawURL string, body []byte) (*domain.Article, error) {
	feed, err := f.feedParser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	if len(feed.Items) == 0 {
		return nil, fmt.Errorf("feed has no items (URL = %s)", rawURL)
	}

	item := feed.Items[0]

	content := strings.TrimSpace(item.Content)
	if content == "" {
		content = strings.TrimSpace(item.Description)
	}
	if content == "" {
		return nil, fmt.Errorf("feed item has no content (URL = %s)", rawURL)
	}

	text, err := stripHTML(content)
	if err != nil {
		return nil, fmt.Errorf("strip item HTML: %w", err)
	}

	itemURL := strings.TrimSpace(item.Link)
	if itemURL == "" {
		itemURL = rawURL
	}

	return &domain.Article{
		URL:   itemURL,
		Title: strings.TrimSpace(item.Title),
		Text:  text,
	}, nil
}

func stripHTML(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("create document from reader: %w", err)
	}

	return strings.TrimSpace(doc.Text()), nil
}
