package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/opportunities-radar/radar/internal/diff"
	"github.com/opportunities-radar/radar/internal/model"
)

// OpenAIProvider summarizes changes via the Chat Completions API.
type OpenAIProvider struct {
	client    *openai.Client
	apiKey    string
	model     string
	maxTokens int
	timeout   time.Duration
}

// NewOpenAIProvider creates an OpenAI provider. A provider built
// without an API key reports itself unconfigured.
func NewOpenAIProvider(cfg Config) *OpenAIProvider {
	model := cfg.Model
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 500
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	var client *openai.Client
	if cfg.OpenAIAPIKey != "" {
		clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
		if cfg.BaseURL != "" {
			clientConfig.BaseURL = cfg.BaseURL
		}
		client = openai.NewClientWithConfig(clientConfig)
	}

	return &OpenAIProvider{
		client:    client,
		apiKey:    cfg.OpenAIAPIKey,
		model:     model,
		maxTokens: maxTokens,
		timeout:   timeout,
	}
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Configured reports whether an API key is set.
func (p *OpenAIProvider) Configured() bool {
	return p.apiKey != ""
}

// Summarize asks the model for a structured summary of the added
// content.
func (p *OpenAIProvider) Summarize(ctx context.Context, source model.Source, d diff.Result) (*SummaryResult, error) {
	if p.client == nil {
		return nil, fmt.Errorf("openai API key not set")
	}

	prompt := BuildPrompt(source, diff.GroupSections(d.Additions))

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You summarize content updates into structured JSON. Respond only with valid JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   p.maxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("openai request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from openai")
	}

	return parseSummary(resp.Choices[0].Message.Content)
}
