package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
	"github.com/cohere-ai/cohere-go/v2/option"

	"ArticleSummarizer/internal/ports"
)

const DefaultCohereModel = "command-r"

// Cohere implements ports.Capability with the Cohere Chat API.
type Cohere struct {
	client *cohereclient.Client
	model  string
}

var _ ports.Capability = (*Cohere)(nil)

// NewCohere builds a capability; extra request options are appended after the API key.
// Only one attempt is made per call.
func NewCohere(apiKey, model string, opts ...option.RequestOption) *Cohere {
	opts = append([]option.RequestOption{
		cohereclient.WithToken(apiKey),
		cohereclient.WithMaxAttempts(1),
	}, opts...)
	return &Cohere{
		client: cohereclient.NewClient(opts...),
		model:  safeModel(model, DefaultCohereModel),
	}
}

// Model returns the model identifier sent with every request.
func (c *Cohere) Model() string {
	return c.model
}

// SummarizeOnce sends one chunk as a single-turn chat.
func (c *Cohere) SummarizeOnce(ctx context.Context, text string, maxLen, minLen int) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errors.New("input is empty")
	}

	model := c.model
	preamble := systemPrompt
	maxTokens := int(outputBudget(maxLen))

	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Message:   buildPrompt(text, maxLen, minLen),
		Model:     &model,
		Preamble:  &preamble,
		MaxTokens: &maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil {
		return "", errors.New("cohere chat returned empty response")
	}

	summary := strings.TrimSpace(resp.Text)
	if summary == "" {
		return "", errors.New("cohere chat returned no text")
	}
	return summary, nil
}
