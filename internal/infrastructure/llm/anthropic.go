package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"ArticleSummarizer/internal/ports"
)

const DefaultAnthropicModel = string(anthropic.ModelClaudeSonnet4_5_20250929)

// Anthropic implements ports.Capability with the Claude Messages API.
type Anthropic struct {
	client anthropic.Client
	model  string
}

var _ ports.Capability = (*Anthropic)(nil)

// NewAnthropic builds a capability; extra request options are appended after the API key.
// SDK retries are disabled: a failed call surfaces to the summarizer as is.
func NewAnthropic(apiKey, model string, opts ...option.RequestOption) *Anthropic {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)
	return &Anthropic{
		client: anthropic.NewClient(opts...),
		model:  safeModel(model, DefaultAnthropicModel),
	}
}

// Model returns the model identifier sent with every request.
func (a *Anthropic) Model() string {
	return a.model
}

// SummarizeOnce sends one chunk and concatenates the text blocks of the reply.
func (a *Anthropic) SummarizeOnce(ctx context.Context, text string, maxLen, minLen int) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errors.New("input is empty")
	}

	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: outputBudget(maxLen),
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(text, maxLen, minLen))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude api error: %w", err)
	}

	var b strings.Builder
	for _, block := range message.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(tb.Text)
		}
	}

	summary := strings.TrimSpace(b.String())
	if summary == "" {
		return "", fmt.Errorf("claude api returned no text (stop reason = %s)", message.StopReason)
	}
	return summary, nil
}
