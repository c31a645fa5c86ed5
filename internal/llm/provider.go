// Package llm turns content changes into short structured summaries.
// It tries at most one configured generative provider per invocation
// and recovers from any provider failure with a deterministic
// rule-based fallback, so summarization itself never fails.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/opportunities-radar/radar/internal/diff"
	"github.com/opportunities-radar/radar/internal/model"
)

// SummaryResult is the structured summary shape shared by the
// generative providers and the rule-based fallback.
type SummaryResult struct {
	Title   string   `json:"title"`
	Bullets []string `json:"bullets"`
	Action  string   `json:"action,omitempty"`
}

// Provider generates a structured summary of a content change.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Configured reports whether the provider has the credential it
	// needs. Unconfigured providers are skipped, never called.
	Configured() bool

	// Summarize generates a summary for the added content of d.
	Summarize(ctx context.Context, source model.Source, d diff.Result) (*SummaryResult, error)
}

// Config holds summarization provider settings.
type Config struct {
	// AnthropicAPIKey enables the Anthropic provider.
	AnthropicAPIKey string

	// OpenAIAPIKey enables the OpenAI provider.
	OpenAIAPIKey string

	// Model overrides each provider's default model.
	Model string

	// BaseURL overrides the provider endpoint (tests, proxies).
	BaseURL string

	// Timeout for API requests, in seconds.
	Timeout int

	// MaxTokens limits response length.
	MaxTokens int
}

// BuildPrompt constructs the summarization prompt. The reply must be a
// bare JSON object so it can be parsed directly; the prompt says so
// explicitly to keep models from wrapping it in markdown fences.
func BuildPrompt(source model.Source, sections []string) string {
	return fmt.Sprintf(`You are summarizing updates from %q (%s).

New content added:
%s

Provide a JSON response with:
- title: A concise title (max 80 chars)
- bullets: 2-4 key points as an array
- action: Optional recommended action (e.g., "Apply", "Vote", "Review")

Respond ONLY with valid JSON, no markdown.`, source.Name, source.Category, strings.Join(sections, "\n\n"))
}

// parseSummary parses a provider reply as the structured summary.
func parseSummary(raw string) (*SummaryResult, error) {
	var result SummaryResult
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &result); err != nil {
		return nil, fmt.Errorf("parse summary JSON: %w", err)
	}
	if result.Title == "" {
		return nil, fmt.Errorf("summary reply missing title")
	}
	return &result, nil
}
