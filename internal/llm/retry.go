package llm

import (
	"context"
	"errors"
	"net"
	"time"

	"alcyxob/fitness-ai/internal/metrics"

	"github.com/cenkalti/backoff/v4"
)

// RetryingGenerator retries transient provider failures with exponential
// backoff and records every attempt. Each attempt gets its own timeout.
type RetryingGenerator struct {
	next       Generator
	provider   string
	maxRetries uint64
	timeout    time.Duration
	newBackOff func() backoff.BackOff
	metrics    *metrics.Manager
}

type RetryOption func(*RetryingGenerator)

func WithBackOff(newBackOff func() backoff.BackOff) RetryOption {
	return func(r *RetryingGenerator) { r.newBackOff = newBackOff }
}

func WithMetrics(m *metrics.Manager) RetryOption {
	return func(r *RetryingGenerator) { r.metrics = m }
}

func WithAttemptTimeout(d time.Duration) RetryOption {
	return func(r *RetryingGenerator) { r.timeout = d }
}

func NewRetryingGenerator(next Generator, provider string, maxRetries uint64, opts ...RetryOption) *RetryingGenerator {
	r := &RetryingGenerator{
		next:       next,
		provider:   provider,
		maxRetries: maxRetries,
		newBackOff: defaultBackOff,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func defaultBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	bo.MaxInterval = 8 * time.Second
	bo.MaxElapsedTime = 30 * time.Second
	return bo
}

func (r *RetryingGenerator) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	var text string
	operation := func() error {
		attemptCtx := ctx
		if r.timeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, r.timeout)
			defer cancel()
		}

		start := time.Now()
		out, err := r.next.Generate(attemptCtx, prompt, opts)
		r.metrics.ObserveLLMCall(r.provider, callStatus(err), time.Since(start))
		if err != nil {
			if ctx.Err() != nil || !IsRetryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		text = out
		return nil
	}

	bo := backoff.WithMaxRetries(r.newBackOff(), r.maxRetries)
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return "", err
	}
	return text, nil
}

// IsRetryable reports whether a failed Generate call is worth repeating.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, ErrEmptyResponse) || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		// per-attempt timeout
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Retryable()
	}
	return false
}

func callStatus(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrEmptyResponse):
		return "empty"
	case IsRetryable(err):
		return "transient"
	}
	return "error"
}
