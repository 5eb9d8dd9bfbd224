package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"alcyxob/fitness-ai/internal/cache"
	"alcyxob/fitness-ai/internal/domain"
	"alcyxob/fitness-ai/internal/fallback"
	"alcyxob/fitness-ai/internal/metrics"
	"alcyxob/fitness-ai/internal/repository"

	"github.com/sirupsen/logrus"
)

const (
	maxSimilarExercises     = 10
	maxRecommendedExercises = 12
	maxSearchResults        = 8
	maxSuggestions          = 3
	libraryCacheKey         = "all"
)

// defaultSimilarGroups is used when a similar-exercise query names no muscles.
var defaultSimilarGroups = []string{"Upper Body", "Lower Body", "Core"}

// levelMatch lists the library difficulty labels suitable for each fitness level.
var levelMatch = map[string][]string{
	"beginner":     {"beginner", "easy"},
	"intermediate": {"beginner", "intermediate", "moderate"},
	"advanced":     {"intermediate", "advanced", "expert"},
}

type SimilarQuery struct {
	Muscles   []string
	Equipment []string
	Exclude   []string
}

type SimilarResult struct {
	Exercises    []domain.Exercise `json:"exercises"`
	FallbackUsed bool              `json:"fallbackUsed"`
}

type RecommendQuery struct {
	Muscles      []string
	Equipment    []string
	FitnessLevel string
	Exclude      []string
}

// WorkoutSuggestion is a themed set of library exercises.
type WorkoutSuggestion struct {
	Type           string                   `json:"type"`
	Name           string                   `json:"name"`
	Description    string                   `json:"description"`
	RecommendedFor []string                 `json:"recommendedFor"`
	Exercises      []domain.LibraryExercise `json:"exercises"`
}

type LibraryHealth struct {
	Healthy       bool      `json:"healthy"`
	ExerciseCount int64     `json:"exerciseCount"`
	CheckedAt     time.Time `json:"checkedAt"`
}

type suggestionSet struct {
	WorkoutSuggestion
	limit int
	keep  func(domain.LibraryExercise) bool
}

var suggestionSets = []suggestionSet{
	{
		WorkoutSuggestion: WorkoutSuggestion{
			Type:           "strength",
			Name:           "Upper Body Strength Focus",
			Description:    "Build upper body strength with compound movements",
			RecommendedFor: []string{"muscle_gain", "strength"},
		},
		limit: 6,
		keep: func(e domain.LibraryExercise) bool {
			return anyContainsFold(e.PrimaryMuscles, "chest", "back", "shoulders", "arms")
		},
	},
	{
		WorkoutSuggestion: WorkoutSuggestion{
			Type:           "cardio",
			Name:           "High Intensity Cardio Circuit",
			Description:    "Boost cardiovascular fitness with interval training",
			RecommendedFor: []string{"weight_loss", "endurance"},
		},
		limit: 5,
		keep: func(e domain.LibraryExercise) bool {
			return strings.EqualFold(string(e.Category), string(domain.CategoryCardio)) ||
				anyContainsFold([]string{e.Name}, "cardio")
		},
	},
	{
		WorkoutSuggestion: WorkoutSuggestion{
			Type:           "functional",
			Name:           "Functional Movement Training",
			Description:    "Improve daily movement patterns and stability",
			RecommendedFor: []string{"general_fitness", "flexibility"},
		},
		limit: 6,
		keep: func(e domain.LibraryExercise) bool {
			return strings.EqualFold(string(e.Category), string(domain.CategoryFunctional)) ||
				anyContainsFold([]string{e.Name}, "squat", "lunge", "plank", "deadlift")
		},
	},
}

// LibraryService answers questions about the curated exercise library.
type LibraryService interface {
	Similar(ctx context.Context, q SimilarQuery) SimilarResult
	Recommend(ctx context.Context, q RecommendQuery) ([]domain.LibraryExercise, error)
	// Search matches query against names, descriptions and primary muscles.
	Search(ctx context.Context, query string) ([]domain.LibraryExercise, error)
	// Suggestions returns up to limit themed workouts built from the library.
	Suggestions(ctx context.Context, limit int) ([]WorkoutSuggestion, error)
	// Health reads the library size straight from the store.
	Health(ctx context.Context) LibraryHealth
}

type libraryService struct {
	repo      repository.ExerciseLibraryRepository
	exercises *cache.ReadThrough[string, []domain.LibraryExercise]
	synth     *fallback.Synthesizer
	metrics   *metrics.Manager
	now       func() time.Time
}

// NewLibraryService reads the whole library through a TTL cache and filters
// in memory.
func NewLibraryService(repo repository.ExerciseLibraryRepository, ttl time.Duration, synth *fallback.Synthesizer, m *metrics.Manager, opts ...cache.Option) LibraryService {
	load := func(ctx context.Context, _ string) ([]domain.LibraryExercise, error) {
		return repo.List(ctx, repository.ExerciseFilter{})
	}
	return &libraryService{
		repo:      repo,
		exercises: cache.New(ttl, load, opts...),
		synth:     synth,
		metrics:   m,
		now:       time.Now,
	}
}

// Similar matches on muscles first and broadens to the whole library when
// nothing matches. An empty result or a store error falls back to the
// built-in catalog.
func (s *libraryService) Similar(ctx context.Context, q SimilarQuery) SimilarResult {
	muscles := cleanStrings(q.Muscles)
	if len(muscles) == 0 {
		muscles = defaultSimilarGroups
	}

	all, err := s.exercises.Get(ctx, libraryCacheKey)
	if err != nil {
		logrus.WithError(err).Warn("exercise library unavailable, using fallback catalog")
	}

	candidates := filterLibrary(all, func(e domain.LibraryExercise) bool { return targetsAny(e.Exercise, muscles) })
	if len(candidates) == 0 {
		candidates = all
	}

	var out []domain.Exercise
	for _, e := range candidates {
		if len(out) == maxSimilarExercises {
			break
		}
		if containsFold(q.Exclude, e.Name) || !usesAvailable(e.Equipment, q.Equipment) {
			continue
		}
		out = append(out, e.Exercise)
	}
	if len(out) > 0 {
		return SimilarResult{Exercises: out}
	}

	s.metrics.ObserveRecovery("similar", "fallback", "", "empty_library")
	return SimilarResult{
		Exercises: s.synth.Exercises(fallback.Context{
			TargetMuscleGroups: muscles,
			AvailableEquipment: q.Equipment,
			ExcludeNames:       q.Exclude,
		}),
		FallbackUsed: true,
	}
}

// Recommend returns up to 12 library exercises for the workout prompt.
func (s *libraryService) Recommend(ctx context.Context, q RecommendQuery) ([]domain.LibraryExercise, error) {
	all, err := s.exercises.Get(ctx, libraryCacheKey)
	if err != nil {
		return nil, err
	}

	muscles := cleanStrings(q.Muscles)
	levels := levelMatch[strings.ToLower(strings.TrimSpace(q.FitnessLevel))]

	out := []domain.LibraryExercise{}
	for _, e := range all {
		if len(out) == maxRecommendedExercises {
			break
		}
		if containsFold(q.Exclude, e.Name) {
			continue
		}
		if len(muscles) > 0 && !targetsAny(e.Exercise, muscles) {
			continue
		}
		if !usesAvailable(e.Equipment, q.Equipment) {
			continue
		}
		if level := levelOf(e); level != "" && levels != nil && !slices.Contains(levels, level) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *libraryService) Search(ctx context.Context, query string) ([]domain.LibraryExercise, error) {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrInvalidInput)
	}
	all, err := s.exercises.Get(ctx, libraryCacheKey)
	if err != nil {
		return nil, err
	}

	out := []domain.LibraryExercise{}
	for _, e := range all {
		if len(out) == maxSearchResults {
			break
		}
		if strings.Contains(strings.ToLower(e.Name), term) ||
			strings.Contains(strings.ToLower(e.Description), term) ||
			anyContainsFold(e.PrimaryMuscles, term) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *libraryService) Suggestions(ctx context.Context, limit int) ([]WorkoutSuggestion, error) {
	if limit <= 0 || limit > maxSuggestions {
		limit = maxSuggestions
	}
	all, err := s.exercises.Get(ctx, libraryCacheKey)
	if err != nil {
		return nil, err
	}

	out := make([]WorkoutSuggestion, 0, limit)
	for _, set := range suggestionSets[:limit] {
		sug := set.WorkoutSuggestion
		sug.RecommendedFor = slices.Clone(set.RecommendedFor)
		sug.Exercises = []domain.LibraryExercise{}
		for _, e := range all {
			if len(sug.Exercises) == set.limit {
				break
			}
			if set.keep(e) {
				sug.Exercises = append(sug.Exercises, e)
			}
		}
		out = append(out, sug)
	}
	return out, nil
}

func (s *libraryService) Health(ctx context.Context) LibraryHealth {
	h := LibraryHealth{CheckedAt: s.now().UTC()}
	count, err := s.repo.Count(ctx)
	if err != nil {
		logrus.WithError(err).Warn("exercise library health check failed")
		return h
	}
	h.Healthy = true
	h.ExerciseCount = count
	return h
}

// anyContainsFold reports whether any value contains any of the terms,
// ignoring case.
func anyContainsFold(values []string, terms ...string) bool {
	for _, v := range values {
		v = strings.ToLower(v)
		for _, t := range terms {
			if strings.Contains(v, strings.ToLower(t)) {
				return true
			}
		}
	}
	return false
}

func levelOf(e domain.LibraryExercise) string {
	if e.FitnessLevel != "" {
		return strings.ToLower(e.FitnessLevel)
	}
	return strings.ToLower(string(e.Difficulty))
}

func filterLibrary(in []domain.LibraryExercise, keep func(domain.LibraryExercise) bool) []domain.LibraryExercise {
	var out []domain.LibraryExercise
	for _, e := range in {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// targetsAny is a case-insensitive substring overlap between the requested
// terms and the exercise's muscles, regions and group.
func targetsAny(e domain.Exercise, terms []string) bool {
	tags := append(append(slices.Clone(e.PrimaryMuscles), e.TargetRegion...), string(e.MuscleGroup))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		for _, t := range terms {
			t = strings.ToLower(t)
			if strings.Contains(tag, t) || strings.Contains(t, tag) {
				return true
			}
		}
	}
	return false
}

// usesAvailable reports whether every piece of required equipment is either
// bodyweight or available. No available equipment means no constraint.
func usesAvailable(required, available []string) bool {
	if len(cleanStrings(available)) == 0 {
		return true
	}
	for _, r := range required {
		if strings.EqualFold(r, "Bodyweight") {
			continue
		}
		if !containsFold(available, r) {
			return false
		}
	}
	return true
}

func containsFold(list []string, s string) bool {
	s = strings.TrimSpace(s)
	return slices.ContainsFunc(list, func(x string) bool {
		return strings.EqualFold(strings.TrimSpace(x), s)
	})
}

func cleanStrings(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
