package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const ProviderAnthropic = "anthropic"

// AnthropicGenerator calls the Messages API.
type AnthropicGenerator struct {
	client anthropic.Client
	model  anthropic.Model
}

func NewAnthropicGenerator(apiKey, model string) (*AnthropicGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: anthropic", ErrAPIKeyRequired)
	}
	if model == "" {
		model = "claude-3-5-haiku-latest"
	}
	return &AnthropicGenerator{
		// Retries are handled by RetryingGenerator.
		client: anthropic.NewClient(option.WithAPIKey(apiKey), option.WithMaxRetries(0)),
		model:  anthropic.Model(model),
	}, nil
}

func (g *AnthropicGenerator) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	message, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       g.model,
		MaxTokens:   int64(opts.MaxTokens),
		Temperature: anthropic.Float(float64(opts.Temperature)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", &StatusError{Provider: ProviderAnthropic, Code: apiErr.StatusCode, Err: err}
		}
		return "", fmt.Errorf("anthropic generate: %w", err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
