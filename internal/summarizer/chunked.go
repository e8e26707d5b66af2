// Package summarizer implements chunk-and-reduce summarization over a model
// with a bounded input size.
package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"ArticleSummarizer/internal/ports"
)

// EmptyInputSentinel is returned instead of a summary when there is no text to summarize.
const EmptyInputSentinel = "[ERROR] No text provided for summarization."

// Defaults tuned for BART-family checkpoints: output bounds in tokens, chunk size in characters.
const (
	DefaultMaxLen        = 300
	DefaultMinLen        = 30
	DefaultMaxChunkChars = 3500
)

// Options bounds the model output and the size of each chunk.
// MaxChunkChars counts characters (runes) and only approximates the model's token budget.
type Options struct {
	MaxLen        int
	MinLen        int
	MaxChunkChars int
}

// DefaultOptions returns the limits tuned for BART-family checkpoints.
func DefaultOptions() Options {
	return Options{
		MaxLen:        DefaultMaxLen,
		MinLen:        DefaultMinLen,
		MaxChunkChars: DefaultMaxChunkChars,
	}
}

// Chunked splits oversized text into chunks, summarizes each, and reduces
// the partial summaries with one more model call when there is more than one.
type Chunked struct {
	model  ports.Capability
	opts   Options
	logger *slog.Logger
}

// New wires the model capability; a non-positive MaxChunkChars falls back to the default.
func New(model ports.Capability, opts Options, logger *slog.Logger) *Chunked {
	if opts.MaxChunkChars <= 0 {
		opts.MaxChunkChars = DefaultMaxChunkChars
	}
	return &Chunked{model: model, opts: opts, logger: logger}
}

// Options reports the effective limits.
func (c *Chunked) Options() Options {
	return c.opts
}

// Summarize returns the final summary for text.
// Whitespace-only input yields EmptyInputSentinel without calling the model.
// Model failures are returned as *ModelInvocationError and are never retried.
func (c *Chunked) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		c.debug("empty input, skipping model")
		return EmptyInputSentinel, nil
	}
	if c.model == nil {
		return "", fmt.Errorf("summarization model is not configured")
	}

	chunks := Split(text, c.opts.MaxChunkChars)
	c.debug("summarize", "chunk_count", len(chunks), "max_chunk_chars", c.opts.MaxChunkChars)

	partials := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		stage := fmt.Sprintf("chunk %d/%d", i+1, len(chunks))
		partial, err := c.invoke(ctx, stage, chunk)
		if err != nil {
			return "", err
		}
		partials = append(partials, partial)
	}

	if len(partials) == 1 {
		return partials[0], nil
	}

	return c.invoke(ctx, StageReduce, strings.Join(partials, " "))
}

func (c *Chunked) invoke(ctx context.Context, stage, input string) (string, error) {
	c.debug("invoke model", "stage", stage, "input_chars", len([]rune(input)))
	out, err := c.model.SummarizeOnce(ctx, input, c.opts.MaxLen, c.opts.MinLen)
	if err != nil {
		return "", &ModelInvocationError{Stage: stage, Err: err}
	}
	return out, nil
}

// Split slices text every maxChunkChars runes, in order and without overlap.
// Concatenating the result reproduces text exactly. Empty text yields no chunks.
func Split(text string, maxChunkChars int) []string {
	if maxChunkChars <= 0 {
		maxChunkChars = DefaultMaxChunkChars
	}

	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+maxChunkChars-1)/maxChunkChars)
	for start := 0; start < len(runes); start += maxChunkChars {
		end := min(start+maxChunkChars, len(runes))
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// CountChunks reports how many chunks Split would produce, without allocating them.
func CountChunks(text string, maxChunkChars int) int {
	if maxChunkChars <= 0 {
		maxChunkChars = DefaultMaxChunkChars
	}
	n := utf8.RuneCountInString(text)
	return (n + maxChunkChars - 1) / maxChunkChars
}

func (c *Chunked) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
