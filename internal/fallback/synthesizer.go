// Package fallback builds usable exercises and workouts from a static
// in-process catalog when model output cannot be recovered.
package fallback

import (
	"slices"
	"strings"

	"alcyxob/fitness-ai/internal/domain"
)

// Caps on how many entries a synthesized list holds.
const (
	MaxExercises    = 10
	MaxAlternatives = 3
)

// Context carries what the caller knows about the request.
type Context struct {
	TargetMuscleGroups       []string
	AvailableEquipment       []string
	ExcludeNames             []string
	RequestedDurationMinutes int
	RecentWorkoutNames       []string
	Goal                     string
}

// Synthesizer never fails and never returns an empty result. It only reads the
// static catalog, so it is safe for concurrent use.
type Synthesizer struct{}

// NewSynthesizer returns a synthesizer over the built-in catalog.
func NewSynthesizer() *Synthesizer { return &Synthesizer{} }

// Exercises returns up to MaxExercises catalog exercises for ctx.
func (s *Synthesizer) Exercises(ctx Context) []domain.Exercise {
	matched := s.match(ctx, MaxExercises)
	out := make([]domain.Exercise, len(matched))
	for i, e := range matched {
		out[i] = cloneExercise(e.exercise)
	}
	return out
}

// Alternatives returns up to MaxAlternatives replacement suggestions.
func (s *Synthesizer) Alternatives(ctx Context) []domain.Alternative {
	matched := s.match(ctx, MaxAlternatives)
	out := make([]domain.Alternative, len(matched))
	for i, e := range matched {
		out[i] = domain.Alternative{
			Exercise:    cloneExercise(e.exercise),
			Sets:        repeatSet(e.sets, e.reps),
			RestSeconds: e.restSeconds,
		}
	}
	return out
}

func (s *Synthesizer) match(ctx Context, limit int) []entry {
	targets := cleanTerms(ctx.TargetMuscleGroups)
	var out []entry
	for _, e := range catalog {
		if len(out) == limit {
			break
		}
		if isExcluded(e.exercise.Name, ctx.ExcludeNames) || !hasEquipment(e.exercise.Equipment, ctx.AvailableEquipment) {
			continue
		}
		if len(targets) == 0 || overlaps(e.exercise.PrimaryMuscles, targets) {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		out = append(out, generic)
	}
	return out
}

// Workout picks a template, trims it to the requested duration and makes sure
// at least one exercise works a requested muscle group.
func (s *Synthesizer) Workout(ctx Context) domain.Workout {
	tmpl := SelectTemplate(ctx.RecentWorkoutNames)
	minutes := ctx.RequestedDurationMinutes
	if minutes <= 0 {
		minutes = domain.DefaultWorkoutDuration
	}

	var picked []domain.WorkoutExercise
	for _, te := range tmpl.exercises {
		if !isExcluded(te.name, ctx.ExcludeNames) {
			picked = append(picked, te.workoutExercise())
		}
	}
	if len(picked) == 0 {
		for _, te := range tmpl.exercises {
			picked = append(picked, te.workoutExercise())
		}
	}
	if n := ExerciseCountFor(minutes); len(picked) > n {
		picked = picked[:n]
	}

	targets := cleanTerms(ctx.TargetMuscleGroups)
	if len(targets) > 0 && !coversAny(picked, targets) {
		picked[len(picked)-1] = s.coveringExercise(ctx, picked)
	}

	groups := cleanList(ctx.TargetMuscleGroups)
	if len(groups) == 0 {
		groups = unionMuscles(picked)
	}
	return domain.Workout{
		Name:               tmpl.Name,
		Description:        tmpl.Description,
		EstimatedDuration:  minutes,
		TargetMuscleGroups: groups,
		Difficulty:         string(domain.DifficultyBeginner),
		Exercises:          picked,
	}
}

func (s *Synthesizer) coveringExercise(ctx Context, picked []domain.WorkoutExercise) domain.WorkoutExercise {
	exclude := append(slices.Clone(ctx.ExcludeNames), namesOf(picked)...)
	e := s.match(Context{TargetMuscleGroups: ctx.TargetMuscleGroups, AvailableEquipment: ctx.AvailableEquipment, ExcludeNames: exclude}, 1)[0]
	return domain.WorkoutExercise{
		Name:         e.exercise.Name,
		Type:         string(e.exercise.Category),
		MuscleGroups: slices.Clone(e.exercise.PrimaryMuscles),
		Instructions: e.instructions,
		Sets:         repeatSet(e.sets, e.reps),
		RestSeconds:  e.restSeconds,
	}
}

// SelectTemplate returns the first template whose name does not overlap a
// recent workout name, or the first template when all of them do.
func SelectTemplate(recent []string) Template {
	for _, t := range templates {
		if !overlapsRecent(t.Name, recent) {
			return t
		}
	}
	return templates[0]
}

// Templates lists the template names in selection order.
func Templates() []string {
	names := make([]string, len(templates))
	for i, t := range templates {
		names[i] = t.Name
	}
	return names
}

// ExerciseCountFor maps a duration in minutes to a template exercise count.
func ExerciseCountFor(minutes int) int {
	switch {
	case minutes <= 30:
		return 3
	case minutes <= 45:
		return 4
	}
	return 5
}

// GroupFor derives a muscle group from a list of muscle names.
func GroupFor(muscles []string) domain.MuscleGroup {
	for _, m := range muscles {
		if g, ok := domain.ParseMuscleGroup(m); ok {
			return g
		}
		if g, ok := groupAliases[strings.ToLower(strings.TrimSpace(m))]; ok {
			return g
		}
	}
	return domain.MuscleGroupFullBody
}

func overlapsRecent(name string, recent []string) bool {
	lowerName := strings.ToLower(name)
	first := firstWord(lowerName)
	for _, r := range recent {
		r = strings.ToLower(strings.TrimSpace(r))
		if r == "" {
			continue
		}
		if strings.Contains(r, first) || strings.Contains(lowerName, firstWord(r)) {
			return true
		}
	}
	return false
}

func firstWord(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return s
}

// overlaps is a case-insensitive substring test in both directions.
// targets must already be lower-cased.
func overlaps(tags []string, targets []string) bool {
	for _, tag := range tags {
		tag = strings.ToLower(tag)
		for _, t := range targets {
			if strings.Contains(tag, t) || strings.Contains(t, tag) {
				return true
			}
		}
	}
	return false
}

func coversAny(exercises []domain.WorkoutExercise, targets []string) bool {
	for _, ex := range exercises {
		if overlaps(ex.MuscleGroups, targets) {
			return true
		}
	}
	return false
}

func isExcluded(name string, exclude []string) bool {
	for _, x := range exclude {
		if strings.TrimSpace(x) == name {
			return true
		}
	}
	return false
}

// hasEquipment reports whether an exercise can be done with what is available.
// Bodyweight exercises always can; no listed equipment means no constraint.
func hasEquipment(required, available []string) bool {
	if len(cleanTerms(available)) == 0 {
		return true
	}
	for _, r := range required {
		if strings.EqualFold(r, "Bodyweight") || slices.ContainsFunc(available, func(a string) bool {
			return strings.EqualFold(strings.TrimSpace(a), r)
		}) {
			return true
		}
	}
	return false
}

func cleanTerms(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func cleanList(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func namesOf(exercises []domain.WorkoutExercise) []string {
	names := make([]string, len(exercises))
	for i, ex := range exercises {
		names[i] = ex.Name
	}
	return names
}

func unionMuscles(exercises []domain.WorkoutExercise) []string {
	var out []string
	for _, ex := range exercises {
		for _, m := range ex.MuscleGroups {
			if !slices.Contains(out, m) {
				out = append(out, m)
			}
		}
	}
	return out
}

func cloneExercise(e domain.Exercise) domain.Exercise {
	e.Equipment = slices.Clone(e.Equipment)
	e.PrimaryMuscles = slices.Clone(e.PrimaryMuscles)
	e.SecondaryMuscles = slices.Clone(e.SecondaryMuscles)
	e.TargetRegion = slices.Clone(e.TargetRegion)
	return e
}
