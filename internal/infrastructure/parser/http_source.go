package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"ArticleSummarizer/internal/extractor"
	"ArticleSummarizer/internal/ports"
)

// Fetch defaults used when the caller leaves a setting empty.
const (
	DefaultFetchTimeout = 10 * time.Second
	DefaultMaxBodyBytes = 10 << 20
	DefaultUserAgent    = "ArticleSummarizer/1.0"
)

var errBodyTooLarge = errors.New("response body exceeds limit")

// SourceOptions tunes the HTTP side of the text source.
type SourceOptions struct {
	UserAgent    string
	MaxBodyBytes int64
}

// HTTPSource implements TextSource by downloading a page and running one extractor over it.
type HTTPSource struct {
	client    *http.Client
	extractor extractor.Extractor
	opts      SourceOptions
	logger    *slog.Logger
}

var _ ports.TextSource = (*HTTPSource)(nil)

// NewHTTPSource wires an HTTP client with the chosen extractor; a nil client gets the 10s default timeout.
func NewHTTPSource(client *http.Client, ext extractor.Extractor, opts SourceOptions, log *slog.Logger) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &HTTPSource{
		client:    client,
		extractor: ext,
		opts:      opts,
		logger:    log,
	}
}

// Fetch returns cleaned article text, or "" when anything along the way fails.
func (s *HTTPSource) Fetch(ctx context.Context, rawURL string) string {
	text, err := s.fetch(ctx, rawURL)
	if err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "failed to fetch article", "url", rawURL, "error", err)
		}
		return ""
	}

	s.debug("article fetched", "url", rawURL, "chars", len([]rune(text)))
	return text
}

func (s *HTTPSource) fetch(ctx context.Context, rawURL string) (string, error) {
	if s.extractor == nil {
		return "", fmt.Errorf("extractor is not configured")
	}

	pageURL, err := validateURL(rawURL)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", s.opts.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.opts.MaxBodyBytes+1))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > s.opts.MaxBodyBytes {
		return "", fmt.Errorf("%w: %d bytes", errBodyTooLarge, s.opts.MaxBodyBytes)
	}

	if resp.Request != nil && resp.Request.URL != nil {
		pageURL = resp.Request.URL
	}

	s.debug("extract text", "url", rawURL, "extractor", s.extractor.Name(), "bytes", len(body))
	text, err := s.extractor.Extract(bytes.NewReader(body), pageURL)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", s.extractor.Name(), err)
	}
	return text, nil
}

func validateURL(rawURL string) (*url.URL, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid url %q: scheme must be http or https", rawURL)
	}
	if parsed.Hostname() == "" {
		return nil, fmt.Errorf("invalid url %q: empty host", rawURL)
	}
	return parsed, nil
}

func (s *HTTPSource) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
