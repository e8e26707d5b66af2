package parser

import (
	"fmt"
	"io"
	"net/url"

	"github.com/go-shiori/go-readability"

	"ArticleSummarizer/internal/extractor"
)

// ReadabilityExtractor runs Mozilla's Readability heuristics and keeps the plain text content.
type ReadabilityExtractor struct{}

var _ extractor.Extractor = ReadabilityExtractor{}

// NewReadabilityExtractor returns the readability-based strategy.
func NewReadabilityExtractor() ReadabilityExtractor {
	return ReadabilityExtractor{}
}

// Name identifies the strategy inside the registry.
func (ReadabilityExtractor) Name() string {
	return "readability"
}

// Extract returns the whitespace-normalized TextContent of the main article node.
func (ReadabilityExtractor) Extract(body io.Reader, pageURL *url.URL) (string, error) {
	article, err := readability.FromReader(body, pageURL)
	if err != nil {
		return "", fmt.Errorf("readability: %w", err)
	}
	return extractor.NormalizeSpace(article.TextContent), nil
}
