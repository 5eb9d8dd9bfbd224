package recovery

import (
	"fmt"
	"math"
	"strings"

	"alcyxob/fitness-ai/internal/domain"
	"alcyxob/fitness-ai/internal/fallback"
)

const (
	maxSetsPerExercise = 10
	// maxModelInt bounds every integer lifted from model output; larger
	// values are treated as malformed.
	maxModelInt = math.MaxInt32
)

// WarmupPolicy decides which sections and exercises of a sectioned workout
// count as warm-up content and are dropped while flattening. Matching is a
// case-insensitive substring test.
type WarmupPolicy struct {
	Enabled       bool
	SectionTerms  []string
	ExerciseTerms []string
}

// DefaultWarmupPolicy drops sections mentioning "warm" and exercises
// mentioning "circle" or "warm".
func DefaultWarmupPolicy() WarmupPolicy {
	return WarmupPolicy{
		Enabled:       true,
		SectionTerms:  []string{"warm"},
		ExerciseTerms: []string{"circle", "warm"},
	}
}

func (p WarmupPolicy) skipsSection(name, kind string) bool {
	return p.Enabled && (containsAnyFold(name, p.SectionTerms) || containsAnyFold(kind, p.SectionTerms))
}

func (p WarmupPolicy) skipsExercise(name string) bool {
	return p.Enabled && containsAnyFold(name, p.ExerciseTerms)
}

// Normalizer repairs parsed-but-malformed documents. It is pure and total:
// every call returns a value and nothing is shared between calls.
type Normalizer struct {
	warmups WarmupPolicy
	names   NameRepairer
}

// NewNormalizer returns a normalizer applying warmups while flattening sections.
func NewNormalizer(warmups WarmupPolicy) *Normalizer {
	return &Normalizer{warmups: warmups, names: NewNameRepairer()}
}

// Exercise normalizes a single exercise. Category, difficulty and muscle group
// have no default: unrecognised values are kept so validation can report them.
func (n *Normalizer) Exercise(p PartialExercise) domain.Exercise {
	f := p.Fields
	ex := domain.Exercise{
		Name:             n.names.Repair(f.str("name", "exerciseName", "exercise_name", "title")),
		Equipment:        orDefault(f.strs("equipment", "equipmentNeeded"), domain.DefaultEquipment),
		PrimaryMuscles:   orDefault(f.strs("primaryMuscles", "primary_muscles", "muscles", "muscleGroups", "muscle_groups"), domain.DefaultPrimaryMuscles),
		SecondaryMuscles: f.strs("secondaryMuscles", "secondary_muscles"),
		TargetRegion:     orDefault(f.strs("targetRegion", "target_region", "targetRegions", "muscleGroups"), domain.DefaultTargetRegion),
		GripType:         stringOr(f.str("gripType", "grip_type"), domain.DefaultGripType),
		RangeOfMotion:    stringOr(f.str("rangeOfMotion", "range_of_motion"), domain.DefaultRangeOfMotion),
		Tempo:            stringOr(f.str("tempo"), domain.DefaultTempo),
		MovementPattern:  stringOr(f.str("movementPattern", "movement_pattern"), domain.DefaultMovementPattern),
		Description:      f.str("description"),
	}
	if ex.SecondaryMuscles == nil {
		ex.SecondaryMuscles = []string{}
	}

	category := f.str("category")
	if c, ok := domain.ParseCategory(category); ok {
		ex.Category = c
	} else if c, ok := domain.ParseCategory(f.str("type")); ok && category == "" {
		ex.Category = c
	} else {
		ex.Category = domain.Category(category)
	}

	difficulty := f.str("difficulty", "level")
	if d, ok := domain.ParseDifficulty(difficulty); ok {
		ex.Difficulty = d
	} else {
		ex.Difficulty = domain.Difficulty(difficulty)
	}

	group := f.str("muscleGroup", "muscle_group")
	if g, ok := domain.ParseMuscleGroup(group); ok {
		ex.MuscleGroup = g
	} else {
		ex.MuscleGroup = domain.MuscleGroup(group)
	}

	ex.MovementType = domain.MovementCompound
	if m, ok := domain.ParseMovementType(f.str("movementType", "movement_type")); ok {
		ex.MovementType = m
	}
	return ex
}

// Alternative normalizes a replacement suggestion. Unlike Exercise it also
// defaults the classification fields, since suggestions are never surfaced as
// errors.
func (n *Normalizer) Alternative(p PartialExercise) domain.Alternative {
	ex := n.Exercise(p)
	if !ex.Category.Valid() {
		ex.Category = domain.CategoryStrength
	}
	if !ex.Difficulty.Valid() {
		ex.Difficulty = domain.DifficultyBeginner
	}
	if !ex.MuscleGroup.Valid() {
		ex.MuscleGroup = fallback.GroupFor(ex.PrimaryMuscles)
	}
	return domain.Alternative{
		Exercise:    ex,
		Sets:        n.sets(p.Fields),
		RestSeconds: restOf(p.Fields),
	}
}

// Workout normalizes a workout. The context supplies defaults for fields the
// model left out; it never overrides fields that are present.
func (n *Normalizer) Workout(p PartialWorkout, ctx fallback.Context) domain.Workout {
	f := p.Fields
	w := domain.Workout{Exercises: n.workoutExercises(f)}

	w.EstimatedDuration = ctx.RequestedDurationMinutes
	if d, ok := f.number("estimatedDuration", "estimated_duration", "duration", "durationMinutes", "duration_minutes", "totalDuration"); ok {
		if minutes, ok := boundedInt(d, 1, maxModelInt); ok {
			w.EstimatedDuration = minutes
		}
	}
	if w.EstimatedDuration <= 0 {
		w.EstimatedDuration = domain.DefaultWorkoutDuration
	}

	w.TargetMuscleGroups = f.strs("targetMuscleGroups", "target_muscle_groups", "targetMuscles", "muscleGroups")
	if len(w.TargetMuscleGroups) == 0 {
		w.TargetMuscleGroups = cleanList(ctx.TargetMuscleGroups)
	}
	if len(w.TargetMuscleGroups) == 0 {
		w.TargetMuscleGroups = musclesOf(w.Exercises)
	}
	w.TargetMuscleGroups = orDefault(w.TargetMuscleGroups, domain.DefaultMuscleGroups)

	w.Name = f.str("name", "title", "workoutName", "workout_name")
	if w.Name == "" {
		w.Name = WorkoutName(ctx.Goal, cleanList(ctx.TargetMuscleGroups), w.EstimatedDuration)
	}
	w.Description = f.str("description", "summary")
	if w.Description == "" {
		w.Description = fmt.Sprintf("A %d-minute workout generated for your goals.", w.EstimatedDuration)
	}

	w.Difficulty = f.str("difficulty", "level")
	if d, ok := domain.ParseDifficulty(w.Difficulty); ok {
		w.Difficulty = string(d)
	}
	return w
}

// WorkoutName synthesizes a name like "Chest & Back Strength (45min)".
func WorkoutName(goal string, muscles []string, minutes int) string {
	goal = strings.TrimSpace(goal)
	switch {
	case goal == "":
		return "Custom Workout"
	case len(muscles) > 0:
		return fmt.Sprintf("%s %s (%dmin)", strings.Join(muscles, " & "), titleCase(goal), minutes)
	}
	return fmt.Sprintf("%s Workout (%dmin)", titleCase(goal), minutes)
}

func (n *Normalizer) workoutExercises(f Fields) []domain.WorkoutExercise {
	out := []domain.WorkoutExercise{}
	if items, ok := asSlice(f["exercises"]); ok && len(items) > 0 {
		for _, item := range items {
			if ex, ok := n.workoutExercise(item); ok {
				out = append(out, ex)
			}
		}
		return out
	}

	sections, _ := asSlice(f["sections"])
	for _, sec := range sections {
		sm, ok := asMap(sec)
		if !ok {
			continue
		}
		name, _ := asString(sm["name"])
		kind, _ := asString(sm["type"])
		if n.warmups.skipsSection(name, kind) {
			continue
		}
		items, _ := asSlice(sm["exercises"])
		for _, item := range items {
			ex, ok := n.workoutExercise(item)
			if !ok || n.warmups.skipsExercise(ex.Name) {
				continue
			}
			out = append(out, ex)
		}
	}
	return out
}

// workoutExercise accepts an object or a bare name.
func (n *Normalizer) workoutExercise(v any) (domain.WorkoutExercise, bool) {
	m, ok := asMap(v)
	if !ok {
		name, isString := v.(string)
		if !isString || strings.TrimSpace(name) == "" {
			return domain.WorkoutExercise{}, false
		}
		m = Fields{"name": name}
	}

	ex := domain.WorkoutExercise{
		Name:         stringOr(n.names.Repair(m.str("name", "exercise", "exerciseName", "exercise_name", "title")), domain.DefaultExerciseName),
		Type:         stringOr(m.str("type", "category"), domain.DefaultExerciseType),
		MuscleGroups: orDefault(m.strs("muscleGroups", "muscle_groups", "targetMuscles", "primaryMuscles", "muscles"), domain.DefaultMuscleGroups),
		Instructions: stringOr(instructionsOf(m), domain.DefaultExerciseInstructions),
		Sets:         n.sets(m),
		RestSeconds:  restOf(m),
		Equipment:    m.strs("equipment"),
		Notes:        m.str("notes", "tips"),
	}
	return ex, true
}

// sets understands both a list of set objects and the "sets: 3, reps: 10"
// shorthand.
func (n *Normalizer) sets(m Fields) []domain.Set {
	if items, ok := asSlice(m["sets"]); ok {
		out := make([]domain.Set, 0, len(items))
		for _, item := range items {
			out = append(out, normalizeSet(item))
		}
		if len(out) == 0 {
			return []domain.Set{domain.DefaultSet()}
		}
		return out
	}

	template := normalizeSet(map[string]any{"reps": m["reps"], "weight": m["weight"]})
	count := 1
	if c, ok := asNumber(m["sets"]); ok {
		if n, ok := boundedInt(c, 1, maxModelInt); ok {
			count = min(n, maxSetsPerExercise)
		}
	}
	out := make([]domain.Set, count)
	for i := range out {
		out[i] = template
	}
	return out
}

func normalizeSet(v any) domain.Set {
	m, ok := asMap(v)
	if !ok {
		return domain.DefaultSet()
	}
	set := domain.DefaultSet()
	if reps, ok := asNumber(m["reps"]); ok {
		if n, ok := boundedInt(reps, 1, maxModelInt); ok {
			set.Reps = n
		}
	}
	if weight, ok := asNumber(m["weight"]); ok && weight >= 0 {
		set.Weight = weight
	}
	return set
}

func restOf(m Fields) int {
	if r, ok := m.number("restSeconds", "rest_seconds", "restTime", "rest"); ok {
		if n, ok := boundedInt(r, 0, maxModelInt); ok {
			return n
		}
	}
	return domain.DefaultRestSeconds
}

func instructionsOf(m Fields) string {
	v, ok := m.lookup("instructions", "instruction", "description")
	if !ok {
		return ""
	}
	if s, ok := asString(v); ok {
		return s
	}
	return strings.Join(cleanList(asStrings(v)), " ")
}

func musclesOf(exercises []domain.WorkoutExercise) []string {
	seen := map[string]bool{}
	var out []string
	for _, ex := range exercises {
		for _, m := range ex.MuscleGroups {
			if key := strings.ToLower(m); !seen[key] {
				seen[key] = true
				out = append(out, m)
			}
		}
	}
	return out
}

func stringOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func containsAnyFold(s string, terms []string) bool {
	s = strings.ToLower(s)
	for _, t := range terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" && strings.Contains(s, t) {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[:1])) + string(r[1:])
	}
	return strings.Join(words, " ")
}
