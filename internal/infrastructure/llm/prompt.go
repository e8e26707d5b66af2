package llm

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a news summarization model.
Rules:
- Write an abridged version of the text you receive, in the language of the text.
- Keep only facts stated in the text; do not add opinions or outside knowledge.
- Plain prose, no headings, no bullet points, no preamble.
- The text may start or end mid-sentence; summarize what is there.`

const minOutputTokens = 256

// buildPrompt frames the text with the token bounds the caller asked for.
func buildPrompt(text string, maxLen, minLen int) string {
	var b strings.Builder
	switch {
	case minLen > 0 && maxLen > 0:
		fmt.Fprintf(&b, "Summarize the following text in %d to %d tokens.\n", minLen, maxLen)
	case maxLen > 0:
		fmt.Fprintf(&b, "Summarize the following text in at most %d tokens.\n", maxLen)
	default:
		b.WriteString("Summarize the following text.\n")
	}
	b.WriteString("Text:\n")
	b.WriteString(text)
	return b.String()
}

// outputBudget leaves headroom over maxLen for models that spend tokens on reasoning.
func outputBudget(maxLen int) int64 {
	return max(int64(maxLen)*2, minOutputTokens)
}

func safeModel(model, fallback string) string {
	if model = strings.TrimSpace(model); model == "" {
		return fallback
	}
	return model
}
