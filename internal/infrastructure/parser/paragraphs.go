package parser

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ArticleSummarizer/internal/extractor"
)

// ParagraphExtractor keeps the text of every <p> element, in document order.
type ParagraphExtractor struct{}

var _ extractor.Extractor = ParagraphExtractor{}

// NewParagraphExtractor returns the default extraction strategy.
func NewParagraphExtractor() ParagraphExtractor {
	return ParagraphExtractor{}
}

// Name identifies the strategy inside the registry.
func (ParagraphExtractor) Name() string {
	return "paragraphs"
}

// Extract joins trimmed paragraph texts with single spaces and normalizes whitespace.
func (ParagraphExtractor) Extract(body io.Reader, _ *url.URL) (string, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", fmt.Errorf("parse document: %w", err)
	}

	var parts []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		parts = append(parts, strings.TrimSpace(p.Text()))
	})

	return extractor.NormalizeSpace(strings.Join(parts, " ")), nil
}
