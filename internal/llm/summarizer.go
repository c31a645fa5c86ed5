package llm

import (
	"context"
	"log/slog"

	"github.com/opportunities-radar/radar/internal/diff"
	"github.com/opportunities-radar/radar/internal/model"
)

// Summarizer produces digest summaries. Providers are tried in a fixed
// order and the first one holding a credential is used; the others are
// never consulted in the same invocation.
type Summarizer struct {
	providers []Provider
	logger    *slog.Logger
}

// NewSummarizer builds the standard provider chain: Anthropic first,
// then OpenAI.
func NewSummarizer(cfg Config, logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{
		providers: []Provider{
			NewAnthropicProvider(cfg),
			NewOpenAIProvider(cfg),
		},
		logger: logger,
	}
}

// NewSummarizerWithProviders builds a summarizer over an explicit
// provider chain.
func NewSummarizerWithProviders(logger *slog.Logger, providers ...Provider) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{providers: providers, logger: logger}
}

// Summarize returns a summary for the change. Provider failures are
// logged and recovered locally with the rule-based fallback; the
// caller never sees them.
func (s *Summarizer) Summarize(ctx context.Context, source model.Source, d diff.Result) SummaryResult {
	for _, provider := range s.providers {
		if !provider.Configured() {
			continue
		}

		result, err := provider.Summarize(ctx, source, d)
		if err == nil {
			return *result
		}

		s.logger.Warn("summarization provider failed, using fallback",
			"provider", provider.Name(),
			"source", source.Name,
			"error", err)
		// At most one provider is tried per invocation.
		break
	}

	return FallbackSummary(source, d)
}
