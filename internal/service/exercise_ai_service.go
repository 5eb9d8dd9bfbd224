package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"alcyxob/fitness-ai/internal/domain"
	"alcyxob/fitness-ai/internal/llm"
	"alcyxob/fitness-ai/internal/metrics"
	"alcyxob/fitness-ai/internal/recovery"
	"alcyxob/fitness-ai/internal/repository"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultVariationCount = 3
	maxVariationCount     = 5
)

var (
	searchOptions     = llm.Options{MaxTokens: 600, Temperature: 0.3}
	variationsOptions = llm.Options{MaxTokens: 800, Temperature: 0.4}
)

type SearchResult struct {
	Found    bool                      `json:"found"`
	Exercise *domain.GeneratedExercise `json:"exercise,omitempty"`
}

type VariationsResult struct {
	BaseExercise string            `json:"baseExercise"`
	Variations   []domain.Exercise `json:"variations"`
}

// ExerciseAIService looks exercises up through the model. Upstream problems
// surface as *recovery.UpstreamFailure and unusable replies as
// *recovery.ValidationFailure or *recovery.ExtractionFailure.
type ExerciseAIService interface {
	Search(ctx context.Context, userID primitive.ObjectID, query string) (*SearchResult, error)
	Variations(ctx context.Context, userID primitive.ObjectID, exerciseName string, count int) (*VariationsResult, error)
}

type exerciseAIService struct {
	gen       llm.Generator
	pipeline  *recovery.Pipeline
	generated repository.GeneratedExerciseRepository
	usage     UsageLimiter
	metrics   *metrics.Manager
}

func NewExerciseAIService(gen llm.Generator, pipeline *recovery.Pipeline, generated repository.GeneratedExerciseRepository, usage UsageLimiter, m *metrics.Manager) ExerciseAIService {
	return &exerciseAIService{
		gen:       gen,
		pipeline:  pipeline,
		generated: generated,
		usage:     usage,
		metrics:   m,
	}
}

func (s *exerciseAIService) Search(ctx context.Context, userID primitive.ObjectID, query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < 2 {
		return nil, fmt.Errorf("%w: search query must be at least 2 characters", ErrInvalidInput)
	}
	if err := s.usage.Consume(ctx, userID, domain.UsageExerciseSearch); err != nil {
		return nil, err
	}

	prompt, err := llm.ExerciseSearchPrompt(llm.ExerciseSearchData{Query: query})
	if err != nil {
		return nil, fmt.Errorf("render search prompt: %w", err)
	}

	raw, err := s.gen.Generate(ctx, prompt, searchOptions)
	if err != nil && !errors.Is(err, llm.ErrEmptyResponse) {
		s.metrics.ObserveRecovery("exercise", "upstream_error", "", "")
		return nil, &recovery.UpstreamFailure{Err: err}
	}

	res, err := s.pipeline.RecoverExercise(raw)
	if err != nil {
		s.metrics.ObserveRecovery("exercise", outcomeOf(err), "", "")
		logrus.WithFields(logrus.Fields{"query": query}).WithError(err).Warn("exercise search reply unusable")
		return nil, err
	}
	s.metrics.ObserveRecovery("exercise", foundOutcome(res.NotFound), string(res.Strategy), "")
	if res.NotFound {
		return &SearchResult{Found: false}, nil
	}

	record := &domain.GeneratedExercise{
		UserID:   userID,
		Query:    query,
		Exercise: res.Exercise,
		Strategy: string(res.Strategy),
	}
	if _, err := s.generated.Create(ctx, record); err != nil {
		// the exercise is still usable
		logrus.WithFields(logrus.Fields{"query": query, "user": userID.Hex()}).WithError(err).Error("failed to save generated exercise")
	}
	return &SearchResult{Found: true, Exercise: record}, nil
}

func (s *exerciseAIService) Variations(ctx context.Context, userID primitive.ObjectID, exerciseName string, count int) (*VariationsResult, error) {
	exerciseName = strings.TrimSpace(exerciseName)
	if exerciseName == "" {
		return nil, fmt.Errorf("%w: exerciseName is required", ErrInvalidInput)
	}
	if count <= 0 {
		count = defaultVariationCount
	}
	count = min(count, maxVariationCount)

	if err := s.usage.Consume(ctx, userID, domain.UsageExerciseSearch); err != nil {
		return nil, err
	}

	prompt, err := llm.VariationsPrompt(llm.VariationsData{Exercise: exerciseName, Count: count})
	if err != nil {
		return nil, fmt.Errorf("render variations prompt: %w", err)
	}

	raw, err := s.gen.Generate(ctx, prompt, variationsOptions)
	if err != nil && !errors.Is(err, llm.ErrEmptyResponse) {
		s.metrics.ObserveRecovery("variations", "upstream_error", "", "")
		return nil, &recovery.UpstreamFailure{Err: err}
	}

	exercises, strategy, err := s.pipeline.RecoverExerciseList(raw)
	if err != nil {
		s.metrics.ObserveRecovery("variations", outcomeOf(err), string(strategy), "")
		return nil, err
	}
	s.metrics.ObserveRecovery("variations", "recovered", string(strategy), "")

	if len(exercises) > count {
		exercises = exercises[:count]
	}
	return &VariationsResult{BaseExercise: exerciseName, Variations: exercises}, nil
}

func foundOutcome(notFound bool) string {
	if notFound {
		return "not_found"
	}
	return "recovered"
}

func outcomeOf(err error) string {
	var (
		extraction *recovery.ExtractionFailure
		validation *recovery.ValidationFailure
		upstream   *recovery.UpstreamFailure
	)
	switch {
	case errors.As(err, &extraction):
		return "extraction_failed"
	case errors.As(err, &validation):
		return "invalid"
	case errors.As(err, &upstream):
		return "upstream_error"
	}
	return "error"
}
