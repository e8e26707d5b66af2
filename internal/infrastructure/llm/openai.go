package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"

	"ArticleSummarizer/internal/ports"
)

const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAI implements ports.Capability with the OpenAI Responses API.
type OpenAI struct {
	client openai.Client
	model  string
}

var _ ports.Capability = (*OpenAI)(nil)

// NewOpenAI builds a capability; extra request options are appended after the API key.
// SDK retries are disabled: a failed call surfaces to the summarizer as is.
func NewOpenAI(apiKey, model string, opts ...option.RequestOption) *OpenAI {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)
	return &OpenAI{
		client: openai.NewClient(opts...),
		model:  safeModel(model, DefaultOpenAIModel),
	}
}

// Model returns the model identifier sent with every request.
func (o *OpenAI) Model() string {
	return o.model
}

// SummarizeOnce sends one chunk and returns the model's text output.
func (o *OpenAI) SummarizeOnce(ctx context.Context, text string, maxLen, minLen int) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errors.New("input is empty")
	}

	resp, err := o.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:           openai.ChatModel(o.model),
		MaxOutputTokens: openai.Int(outputBudget(maxLen)),
		Instructions:    openai.String(systemPrompt),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(buildPrompt(text, maxLen, minLen)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}

	if resp.Status == "incomplete" {
		return "", fmt.Errorf("response is incomplete (reason = %s)", resp.IncompleteDetails.Reason)
	}

	summary := strings.TrimSpace(resp.OutputText())
	if summary == "" {
		return "", fmt.Errorf("output text is missing (status = %s)", resp.Status)
	}
	return summary, nil
}
