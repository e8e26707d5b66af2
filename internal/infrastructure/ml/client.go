package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"ArticleSummarizer/internal/ports"
)

const (
	DefaultEndpoint = "https://api-inference.huggingface.co/models"
	DefaultModel    = "facebook/bart-large-cnn"
)

var errEmptySummary = errors.New("model returned no summary")

// Client talks to a Hugging Face style inference endpoint hosting a summarization pipeline.
type Client struct {
	endpoint string
	model    string
	apiKey   string
	http     *http.Client
}

var _ ports.Capability = (*Client)(nil)

// NewClient creates a reusable HTTP client. Model calls are not bounded by a timeout:
// cold starts of large checkpoints can take minutes.
func NewClient(endpoint, model, apiKey string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		model:    model,
		apiKey:   apiKey,
		http:     &http.Client{},
	}
}

// Model returns the checkpoint identifier used for every request.
func (c *Client) Model() string {
	return c.model
}

type summarizeRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters summarizeParameters `json:"parameters"`
}

type summarizeParameters struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

type summarizeResult struct {
	SummaryText string `json:"summary_text"`
}

// SummarizeOnce runs greedy decoding with the given length bounds and returns the first summary.
func (c *Client) SummarizeOnce(ctx context.Context, text string, maxLen, minLen int) (string, error) {
	payload := summarizeRequest{
		Inputs: text,
		Parameters: summarizeParameters{
			MaxLength: maxLen,
			MinLength: minLen,
			DoSample:  false,
		},
	}

	var results []summarizeResult
	if err := c.post(ctx, "/"+c.model, payload, &results); err != nil {
		return "", err
	}

	if len(results) == 0 {
		return "", errEmptySummary
	}
	summary := strings.TrimSpace(results[0].SummaryText)
	if summary == "" {
		return "", errEmptySummary
	}
	return summary, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
