package llm_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"alcyxob/fitness-ai/internal/llm"
	"alcyxob/fitness-ai/internal/metrics"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zeroBackOff() backoff.BackOff { return &backoff.ZeroBackOff{} }

type scripted struct {
	errs  []error
	calls int
}

func (s *scripted) Generate(context.Context, string, llm.Options) (string, error) {
	defer func() { s.calls++ }()
	if s.calls < len(s.errs) {
		return "", s.errs[s.calls]
	}
	return "ok", nil
}

func TestRetryingGenerator_RetriesTransient(t *testing.T) {
	next := &scripted{errs: []error{
		&llm.StatusError{Provider: "gemini", Code: 503, Err: errors.New("unavailable")},
		&llm.StatusError{Provider: "gemini", Code: 429, Err: errors.New("slow down")},
	}}
	m := metrics.NewTestManager()
	g := llm.NewRetryingGenerator(next, "gemini", 3, llm.WithBackOff(zeroBackOff), llm.WithMetrics(m))

	out, err := g.Generate(context.Background(), "p", llm.Options{MaxTokens: 10})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 3, next.calls)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterLLMCalls.WithLabelValues("gemini", "transient")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterLLMCalls.WithLabelValues("gemini", "ok")))
}

func TestRetryingGenerator_StopsOnPermanent(t *testing.T) {
	bad := &llm.StatusError{Provider: "anthropic", Code: 400, Err: errors.New("bad request")}
	next := &scripted{errs: []error{bad, bad}}
	g := llm.NewRetryingGenerator(next, "anthropic", 3, llm.WithBackOff(zeroBackOff))

	_, err := g.Generate(context.Background(), "p", llm.Options{})
	require.Error(t, err)
	var statusErr *llm.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 400, statusErr.Code)
	assert.Equal(t, 1, next.calls)
}

func TestRetryingGenerator_EmptyResponseIsNotRetried(t *testing.T) {
	next := &scripted{errs: []error{llm.ErrEmptyResponse}}
	g := llm.NewRetryingGenerator(next, "gemini", 3, llm.WithBackOff(zeroBackOff))

	_, err := g.Generate(context.Background(), "p", llm.Options{})
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)
	assert.Equal(t, 1, next.calls)
}

func TestRetryingGenerator_GivesUpAfterMaxRetries(t *testing.T) {
	transient := &llm.StatusError{Provider: "gemini", Code: 500, Err: errors.New("boom")}
	next := &scripted{errs: []error{transient, transient, transient, transient}}
	g := llm.NewRetryingGenerator(next, "gemini", 2, llm.WithBackOff(zeroBackOff))

	_, err := g.Generate(context.Background(), "p", llm.Options{})
	assert.Error(t, err)
	assert.Equal(t, 3, next.calls)
}

func TestRetryingGenerator_AttemptTimeout(t *testing.T) {
	calls := 0
	slow := llm.GeneratorFunc(func(ctx context.Context, _ string, _ llm.Options) (string, error) {
		calls++
		if calls == 1 {
			<-ctx.Done()
			return "", ctx.Err()
		}
		return "second try", nil
	})
	g := llm.NewRetryingGenerator(slow, "gemini", 1, llm.WithBackOff(zeroBackOff), llm.WithAttemptTimeout(20*time.Millisecond))

	out, err := g.Generate(context.Background(), "p", llm.Options{})
	require.NoError(t, err)
	assert.Equal(t, "second try", out)
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, llm.IsRetryable(nil))
	assert.False(t, llm.IsRetryable(context.Canceled))
	assert.False(t, llm.IsRetryable(errors.New("plain")))
	assert.True(t, llm.IsRetryable(&llm.StatusError{Code: 502}))
	assert.False(t, llm.IsRetryable(&llm.StatusError{Code: 401}))
}
