// Package llm wraps the text-generation providers behind a single Generator
// interface.
package llm

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrEmptyResponse  = errors.New("llm: empty response")
	ErrAPIKeyRequired = errors.New("API key required")
)

// Options tune a single generation call.
type Options struct {
	MaxTokens   int
	Temperature float32
}

// Generator turns a prompt into raw model text. Implementations return
// ErrEmptyResponse when the provider answers without any text.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

type GeneratorFunc func(ctx context.Context, prompt string, opts Options) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	return f(ctx, prompt, opts)
}

// StatusError carries the HTTP status a provider rejected the call with.
type StatusError struct {
	Provider string
	Code     int
	Err      error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %v", e.Provider, e.Code, e.Err)
}

func (e *StatusError) Unwrap() error { return e.Err }

// Retryable reports whether repeating the call could succeed: rate limits and
// server-side failures are retried, everything else is not.
func (e *StatusError) Retryable() bool {
	return e.Code == 429 || e.Code >= 500
}
