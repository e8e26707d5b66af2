package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"ArticleSummarizer/internal/domain"
	"ArticleSummarizer/internal/ports"
	"ArticleSummarizer/internal/summarizer"
)

// ErrNoArticleText reports that the source returned no text for the URL.
var ErrNoArticleText = errors.New("failed to retrieve article content")

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source     ports.TextSource
	Summarizer *summarizer.Chunked
	Writer     ports.SummaryWriter
	Publishers []ports.Publisher
	// Model names the checkpoint recorded with published summaries.
	Model  string
	Logger *slog.Logger
	Now    func() time.Time
	NewID  func() string
}

// Pipeline implements the fetch, summarize, persist workflow for one URL.
type Pipeline struct {
	source     ports.TextSource
	summarizer *summarizer.Chunked
	writer     ports.SummaryWriter
	publishers []ports.Publisher
	model      string
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string
}

// Result describes a completed run.
type Result struct {
	Article domain.Article
	Saved   domain.SavedSummary
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	p := &Pipeline{
		source:     deps.Source,
		summarizer: deps.Summarizer,
		writer:     deps.Writer,
		publishers: deps.Publishers,
		model:      deps.Model,
		logger:     deps.Logger,
		now:        deps.Now,
		newID:      deps.NewID,
	}
	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.newID == nil {
		p.newID = uuid.NewString
	}
	return p
}

// Run fetches the article, summarizes it, and writes the summary.
// An empty fetch returns ErrNoArticleText before any model call or write.
// Model failures abort the run and nothing is written.
func (p *Pipeline) Run(ctx context.Context, url string) (Result, error) {
	if p.source == nil || p.summarizer == nil || p.writer == nil {
		return Result{}, errors.New("pipeline is not fully configured")
	}

	runID := p.newID()
	logger := p.logger.With("run_id", runID)

	text := p.source.Fetch(ctx, url)
	if text == "" {
		logger.WarnContext(ctx, "no article text", "url", url)
		return Result{}, ErrNoArticleText
	}

	article := domain.Article{URL: url, Text: text, FetchedAt: p.now()}
	logger.InfoContext(ctx, "article fetched", "url", url, "words", article.Words())

	summaryText, err := p.summarizer.Summarize(ctx, text)
	if err != nil {
		return Result{}, fmt.Errorf("summarize article: %w", err)
	}

	summary := domain.Summary{
		RunID:     runID,
		URL:       url,
		Model:     p.model,
		Text:      summaryText,
		Chunks:    p.chunkCount(text),
		CreatedAt: p.now(),
	}

	path, err := p.writer.Write(ctx, summary)
	if err != nil {
		return Result{}, fmt.Errorf("write summary: %w", err)
	}
	logger.InfoContext(ctx, "summary saved", "path", path, "chunk_count", summary.Chunks)

	saved := domain.SavedSummary{Summary: summary, Path: path}
	p.publish(ctx, logger, saved)

	return Result{Article: article, Saved: saved}, nil
}

// publish mirrors the saved summary; the local file stays the system of record.
func (p *Pipeline) publish(ctx context.Context, logger *slog.Logger, saved domain.SavedSummary) {
	for _, pub := range p.publishers {
		if err := pub.Publish(ctx, saved); err != nil {
			logger.WarnContext(ctx, "publish summary failed", "publisher", pub.Name(), "error", err)
			continue
		}
		logger.DebugContext(ctx, "summary published", "publisher", pub.Name())
	}
}

func (p *Pipeline) chunkCount(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return summarizer.CountChunks(text, p.summarizer.Options().MaxChunkChars)
}
