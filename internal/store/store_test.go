package store_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"pagegist/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.sqlite")

	s, err := store.New(context.Background(), dbPath, slog.Default())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := s.Close(); closeErr != nil {
			t.Errorf("failed to close store: %v", closeErr)
		}
	})

	return s
}

func testKey() store.SummaryKey {
	return store.SummaryKey{
		URL:         "https://example.com/story",
		ContentHash: store.HashContent("article body"),
		MinLength:   25,
		MaxLength:   100,
		Mode:        "chunked",
	}
}

func TestSummaryRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	key := testKey()

	if _, found, err := s.GetSummary(ctx, key); err != nil {
		t.Fatalf("unexpected error on miss: %v", err)
	} else if found {
		t.Fatal("expected cache miss before save")
	}

	if err := s.SaveSummary(ctx, key, "cached summary"); err != nil {
		t.Fatalf("failed to save summary: %v", err)
	}

	summary, found, err := s.GetSummary(ctx, key)
	if err != nil {
		t.Fatalf("unexpected error on hit: %v", err)
	}
	if !found {
		t.Fatal("expected cache hit after save")
	}
	if summary != "cached summary" {
		t.Fatalf("unexpected summary: %q", summary)
	}
}

func TestSummaryKeyedByBoundsAndContent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	key := testKey()

	if err := s.SaveSummary(ctx, key, "cached summary"); err != nil {
		t.Fatalf("failed to save summary: %v", err)
	}

	otherBounds := key
	otherBounds.MaxLength = 200
	if _, found, err := s.GetSummary(ctx, otherBounds); err != nil {
		t.Fatalf("unexpected error: %v", err)
	} else if found {
		t.Fatal("expected miss for different bounds")
	}

	otherContent := key
	otherContent.ContentHash = store.HashContent("edited article body")
	if _, found, err := s.GetSummary(ctx, otherContent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	} else if found {
		t.Fatal("expected miss for edited content")
	}
}

func TestSaveSummaryReplaces(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	key := testKey()

	if err := s.SaveSummary(ctx, key, "first"); err != nil {
		t.Fatalf("failed to save summary: %v", err)
	}
	if err := s.SaveSummary(ctx, key, "second"); err != nil {
		t.Fatalf("failed to replace summary: %v", err)
	}

	summary, found, err := s.GetSummary(ctx, key)
	if err != nil || !found {
		t.Fatalf("expected hit, got found=%v err=%v", found, err)
	}
	if summary != "second" {
		t.Fatalf("unexpected summary: %q", summary)
	}
}

func TestSummaryKeyValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveSummary(ctx, store.SummaryKey{}, "summary"); err == nil {
		t.Fatal("expected validation error for empty key")
	}

	if err := s.SaveSummary(ctx, testKey(), ""); err == nil {
		t.Fatal("expected validation error for empty summary")
	}

	if _, _, err := s.GetSummary(ctx, store.SummaryKey{}); err == nil {
		t.Fatal("expected validation error for empty key")
	}
}

func TestHashContentTrimsWhitespace(t *testing.T) {
	if store.HashContent("  article body  ") != store.HashContent("article body") {
		t.Fatal("expected hash to ignore surrounding whitespace")
	}

	if store.HashContent("article body") == store.HashContent("other body") {
		t.Fatal("expected different content to hash differently")
	}
}
