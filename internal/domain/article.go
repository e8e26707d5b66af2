package domain

import (
	"strings"
	"time"
)

// Article is the cleaned text resolved from a single URL.
type Article struct {
	URL       string
	Text      string
	FetchedAt time.Time
}

// Words counts whitespace-separated words in the article text.
func (a Article) Words() int {
	return len(strings.Fields(a.Text))
}

// Summary is the final output of one run, before it is written anywhere.
type Summary struct {
	RunID     string
	URL       string
	Model     string
	Text      string
	Chunks    int
	CreatedAt time.Time
}

// SavedSummary is a Summary that has been persisted to the local output file.
type SavedSummary struct {
	Summary
	Path string
}
