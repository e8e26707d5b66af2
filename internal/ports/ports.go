package ports

import (
	"context"

	"ArticleSummarizer/internal/domain"
)

// TextSource resolves a URL to cleaned article text.
// Failures are reported as an empty string, never as an error.
type TextSource interface {
	Fetch(ctx context.Context, url string) string
}

// Capability is a pretrained summarization model consumed as a single call.
// maxLen and minLen are in the model's token units.
type Capability interface {
	SummarizeOnce(ctx context.Context, text string, maxLen, minLen int) (string, error)
}

// SummaryWriter persists the final summary and reports where it was written.
type SummaryWriter interface {
	Write(ctx context.Context, summary domain.Summary) (string, error)
}

// Publisher mirrors a saved summary to a secondary destination (database, bucket, chat).
type Publisher interface {
	Name() string
	Publish(ctx context.Context, summary domain.SavedSummary) error
}
