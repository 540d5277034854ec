package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/hricks/onpage"
	"github.com/hricks/onpage/mock"
	onpageslog "github.com/hricks/onpage/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		logger, buf := newTestLogger()
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>content</html>", nil
			},
		}

		fetcher := onpageslog.NewLoggingFetcher(inner, logger)
		html, err := fetcher.Fetch(context.Background(), "https://example.com/docs")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "url=https://example.com/docs")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		logger, buf := newTestLogger()
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("network error")
			},
		}

		fetcher := onpageslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://example.com/docs")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "network error")
	})
}

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	logger, buf := newTestLogger()
	inner := &mock.Extractor{
		ExtractFn: func(html string) (*onpage.Document, error) {
			return &onpage.Document{
				Blocks: []onpage.Block{
					onpage.Heading{Level: 1, Text: "Title"},
					onpage.Paragraph{Text: "Body text."},
				},
				Validation: onpage.Validation{Status: onpage.ValidationPass, H1Count: 1},
			}, nil
		},
	}

	extractor := onpageslog.NewLoggingExtractor(inner, logger)
	doc, err := extractor.Extract("<html></html>")

	require.NoError(t, err)
	require.Len(t, doc.Blocks, 2)
	output := buf.String()
	assert.Contains(t, output, "extract")
	assert.Contains(t, output, "blocks=2")
	assert.Contains(t, output, "validation=pass")
}

func TestLoggingSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	logger, buf := newTestLogger()
	inner := &mock.SitemapService{
		DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *onpage.URLFilter) ([]string, error) {
			return []string{"https://example.com/a", "https://example.com/b"}, nil
		},
	}

	svc := onpageslog.NewLoggingSitemapService(inner, logger)
	urls, err := svc.DiscoverURLs(context.Background(), "https://example.com", nil)

	require.NoError(t, err)
	assert.Len(t, urls, 2)
	output := buf.String()
	assert.Contains(t, output, "sitemap discovery")
	assert.Contains(t, output, "count=2")
}
