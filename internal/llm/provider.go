package llm

import (
	"context"
	"fmt"
	"strings"

	"alcyxob/fitness-ai/internal/config"
	"alcyxob/fitness-ai/internal/metrics"
)

// New builds the configured provider wrapped in a RetryingGenerator.
func New(ctx context.Context, cfg config.LLMConfig, m *metrics.Manager) (Generator, error) {
	var (
		provider string
		gen      Generator
		err      error
	)
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderGemini:
		provider = ProviderGemini
		gen, err = NewGeminiGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	case ProviderAnthropic:
		provider = ProviderAnthropic
		gen, err = NewAnthropicGenerator(cfg.Anthropic.APIKey, cfg.Anthropic.Model)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return NewRetryingGenerator(gen, provider, cfg.MaxRetries,
		WithAttemptTimeout(cfg.Timeout),
		WithMetrics(m),
	), nil
}
