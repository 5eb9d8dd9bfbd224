// Package recovery turns raw model replies into schema-valid exercises and
// workouts: extract, classify, normalize, validate, and fall back when needed.
// Everything here is CPU-only and safe for concurrent use.
package recovery

import (
	"strings"

	"alcyxob/fitness-ai/internal/domain"
	"alcyxob/fitness-ai/internal/fallback"
)

// Context is the request context consulted for defaults and fallbacks.
type Context = fallback.Context

// ExerciseResult is the outcome of the single-exercise path. NotFound is a
// valid outcome, not an error.
type ExerciseResult struct {
	Exercise domain.Exercise
	NotFound bool
	Strategy Strategy
}

// AlternativesResult always carries at least one alternative.
type AlternativesResult struct {
	Alternatives []domain.Alternative
	FallbackUsed bool
	ParseError   bool
	RawText      string
	Strategy     Strategy
	Rejected     []string // validation errors of suggestions that were dropped
}

// WorkoutResult always carries a usable workout.
type WorkoutResult struct {
	Workout          domain.Workout
	FallbackUsed     bool
	ParseError       bool
	RawText          string
	Strategy         Strategy
	ValidationErrors []string
}

// Pipeline wires extraction, normalization, validation and the fallback
// synthesizer into the per-path recover operations. It is safe for concurrent use.
type Pipeline struct {
	extractor  *Extractor
	normalizer *Normalizer
	validator  *Validator
	synth      *fallback.Synthesizer
}

// Option configures a Pipeline.
type Option func(*pipelineOptions)

type pipelineOptions struct {
	warmups WarmupPolicy
}

// WithWarmupPolicy replaces the default warm-up exclusion policy.
func WithWarmupPolicy(p WarmupPolicy) Option {
	return func(o *pipelineOptions) { o.warmups = p }
}

// NewPipeline builds a pipeline with the default warm-up policy unless an
// option replaces it.
func NewPipeline(opts ...Option) *Pipeline {
	o := pipelineOptions{warmups: DefaultWarmupPolicy()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Pipeline{
		extractor:  NewExtractor(),
		normalizer: NewNormalizer(o.warmups),
		validator:  NewValidator(),
		synth:      fallback.NewSynthesizer(),
	}
}

// Accessors for the stages, used by tools that run a single stage.
func (p *Pipeline) Extractor() *Extractor              { return p.extractor }
func (p *Pipeline) Normalizer() *Normalizer            { return p.normalizer }
func (p *Pipeline) Validator() *Validator              { return p.validator }
func (p *Pipeline) Synthesizer() *fallback.Synthesizer { return p.synth }

// RecoverExercise handles the single-exercise path. Replies without any
// structure are read as the model declining the query.
func (p *Pipeline) RecoverExercise(raw string) (ExerciseResult, error) {
	if strings.TrimSpace(raw) == "" {
		return ExerciseResult{}, &UpstreamFailure{Err: ErrEmptyOutput}
	}
	parsed, err := p.extractor.Extract(raw, ShapeExercise)
	if err != nil {
		return ExerciseResult{NotFound: true}, nil
	}

	switch doc := Classify(parsed.Value, ShapeExercise).(type) {
	case NotFound:
		return ExerciseResult{NotFound: true, Strategy: parsed.Strategy}, nil
	case PartialExercise:
		ex := p.normalizer.Exercise(doc)
		if first := p.validator.Exercise(doc.Fields); !first.Valid {
			if second := p.validator.Exercise(ExerciseFields(ex)); !second.Valid {
				return ExerciseResult{}, &ValidationFailure{Errors: second.Errors}
			}
		}
		return ExerciseResult{Exercise: ex, Strategy: parsed.Strategy}, nil
	}
	return ExerciseResult{}, &ValidationFailure{Errors: []string{"Exercise data must be a valid object"}}
}

// RecoverExerciseList handles the strict list path used for variations.
func (p *Pipeline) RecoverExerciseList(raw string) ([]domain.Exercise, Strategy, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, "", &UpstreamFailure{Err: ErrEmptyOutput}
	}
	parsed, err := p.extractor.Extract(raw, ShapeExerciseList)
	if err != nil {
		return nil, "", err
	}
	list, ok := Classify(parsed.Value, ShapeExerciseList).(PartialExerciseList)
	if !ok {
		return nil, parsed.Strategy, &ValidationFailure{Errors: []string{"Exercises must be a non-empty array"}}
	}

	exercises := make([]domain.Exercise, len(list.Items))
	fields := make([]Fields, len(list.Items))
	for i, item := range list.Items {
		exercises[i] = p.normalizer.Exercise(item)
		fields[i] = ExerciseFields(exercises[i])
	}
	if res := p.validator.ExerciseList(fields); !res.Valid {
		return nil, parsed.Strategy, &ValidationFailure{Errors: res.Errors}
	}
	return exercises, parsed.Strategy, nil
}

// RecoverAlternatives keeps up to MaxAlternatives valid suggestions and falls
// back to the catalog when none survive.
func (p *Pipeline) RecoverAlternatives(raw string, ctx Context) AlternativesResult {
	if strings.TrimSpace(raw) == "" {
		return p.fallbackAlternatives(ctx, AlternativesResult{})
	}
	parsed, err := p.extractor.Extract(raw, ShapeExerciseList)
	if err != nil {
		return p.fallbackAlternatives(ctx, AlternativesResult{ParseError: true, RawText: raw})
	}

	res := AlternativesResult{Strategy: parsed.Strategy}
	list, ok := Classify(parsed.Value, ShapeExerciseList).(PartialExerciseList)
	if !ok {
		res.RawText = raw
		return p.fallbackAlternatives(ctx, res)
	}
	for _, item := range list.Items {
		if len(res.Alternatives) == fallback.MaxAlternatives {
			break
		}
		alt := p.normalizer.Alternative(item)
		if isExcluded(alt.Name, ctx.ExcludeNames) {
			continue
		}
		if v := p.validator.Exercise(ExerciseFields(alt.Exercise)); !v.Valid {
			res.Rejected = append(res.Rejected, v.Errors...)
			continue
		}
		res.Alternatives = append(res.Alternatives, alt)
	}
	if len(res.Alternatives) == 0 {
		res.RawText = raw
		return p.fallbackAlternatives(ctx, res)
	}
	return res
}

// RecoverWorkout never fails: anything unusable resolves to a fallback workout.
func (p *Pipeline) RecoverWorkout(raw string, ctx Context) WorkoutResult {
	if strings.TrimSpace(raw) == "" {
		return p.fallbackWorkout(ctx, WorkoutResult{})
	}
	parsed, err := p.extractor.Extract(raw, ShapeWorkout)
	if err != nil {
		return p.fallbackWorkout(ctx, WorkoutResult{ParseError: true, RawText: raw})
	}

	doc, ok := Classify(parsed.Value, ShapeWorkout).(PartialWorkout)
	if !ok {
		return p.fallbackWorkout(ctx, WorkoutResult{RawText: raw, Strategy: parsed.Strategy})
	}
	w := p.normalizer.Workout(doc, ctx)
	if v := p.validator.Workout(WorkoutFields(w)); !v.Valid {
		return p.fallbackWorkout(ctx, WorkoutResult{RawText: raw, Strategy: parsed.Strategy, ValidationErrors: v.Errors})
	}
	return WorkoutResult{Workout: w, Strategy: parsed.Strategy}
}

func (p *Pipeline) fallbackAlternatives(ctx Context, res AlternativesResult) AlternativesResult {
	res.Alternatives = p.synth.Alternatives(ctx)
	res.FallbackUsed = true
	return res
}

func (p *Pipeline) fallbackWorkout(ctx Context, res WorkoutResult) WorkoutResult {
	res.Workout = p.synth.Workout(ctx)
	res.FallbackUsed = true
	return res
}

func isExcluded(name string, exclude []string) bool {
	for _, x := range exclude {
		if strings.EqualFold(strings.TrimSpace(x), strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}
