package model

import "time"

// Config holds the full runtime configuration.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Database    DatabaseConfig    `yaml:"database"`
	LLM         LLMConfig         `yaml:"llm"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}

// HTTPConfig controls outbound fetches.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// LLMConfig holds summarization provider settings. Provider selection
// is credential-driven: Anthropic is preferred when both keys are set.
type LLMConfig struct {
	AnthropicAPIKey string `yaml:"-"`
	OpenAIAPIKey    string `yaml:"-"`
	Model           string `yaml:"model"`
	BaseURL         string `yaml:"base_url"`
	Timeout         int    `yaml:"timeout"` // seconds
	MaxTokens       int    `yaml:"max_tokens"`
}

// CacheConfig controls the in-memory fetch cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// ConcurrencyConfig controls parallel source processing and outbound
// request pacing.
type ConcurrencyConfig struct {
	Workers           int     `yaml:"workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "OpportunitiesRadar/1.0 (+https://github.com/opportunities-radar/radar)",
			MaxBodyBytes: 2_000_000,
		},
		Database: DatabaseConfig{
			DSN: "postgres://localhost:5432/radar?sslmode=disable",
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 500,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     5 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			Workers:           1,
			RequestsPerSecond: 1,
			Burst:             3,
		},
	}
}
