package recovery

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"alcyxob/fitness-ai/internal/domain"
)

const (
	minNameLength = 2
	maxNameLength = 100
)

// Result is the outcome of a validation pass. Errors lists every violation.
type Result struct {
	Valid  bool     `json:"isValid"`
	Errors []string `json:"errors"`
}

// Validator checks documents against the schema without short-circuiting.
type Validator struct{}

// NewValidator returns a stateless validator.
func NewValidator() *Validator { return &Validator{} }

var requiredExerciseFields = []string{"name", "category", "equipment", "primaryMuscles", "difficulty", "muscleGroup"}

type listRule struct {
	field    string
	label    string
	nonEmpty bool
}

var exerciseListRules = []listRule{
	{"equipment", "Equipment", true},
	{"primaryMuscles", "Primary muscles", true},
	{"secondaryMuscles", "Secondary muscles", false},
	{"targetRegion", "Target region", true},
}

// Exercise validates a single exercise.
func (v *Validator) Exercise(f Fields) Result {
	if f == nil {
		return invalid("Exercise data must be a valid object")
	}
	var errs []string
	for _, field := range requiredExerciseFields {
		if isMissing(f[field]) {
			errs = append(errs, "Missing required field: "+field)
		}
	}

	if raw, ok := f["name"]; ok && !isMissing(raw) {
		if name, isString := raw.(string); !isString {
			errs = append(errs, "Name must be a string")
		} else {
			n := utf8.RuneCountInString(strings.TrimSpace(name))
			if n < minNameLength {
				errs = append(errs, fmt.Sprintf("Exercise name must be at least %d characters long", minNameLength))
			}
			if n > maxNameLength {
				errs = append(errs, fmt.Sprintf("Exercise name must be less than %d characters", maxNameLength))
			}
		}
	}

	for _, rule := range exerciseListRules {
		raw, ok := f[rule.field]
		if !ok || raw == nil {
			continue
		}
		items, isList := raw.([]any)
		if !isList {
			errs = append(errs, rule.label+" must be an array")
			continue
		}
		nonBlank := 0
		for _, item := range items {
			s, isString := item.(string)
			if !isString {
				errs = append(errs, rule.label+" must contain only strings")
				break
			}
			if strings.TrimSpace(s) != "" {
				nonBlank++
			}
		}
		if rule.nonEmpty && nonBlank == 0 {
			errs = append(errs, rule.label+" array cannot be empty")
		}
	}

	errs = appendEnumError(errs, f, "category", "Category", domain.JoinValues(domain.Categories), func(s string) bool {
		return domain.Category(s).Valid()
	})
	errs = appendEnumError(errs, f, "difficulty", "Difficulty", domain.JoinValues(domain.Difficulties), func(s string) bool {
		return domain.Difficulty(s).Valid()
	})
	errs = appendEnumError(errs, f, "movementType", "Movement type", domain.JoinValues(domain.MovementTypes), func(s string) bool {
		return domain.MovementType(s).Valid()
	})
	errs = appendEnumError(errs, f, "muscleGroup", "Muscle group", domain.JoinValues(domain.MuscleGroups), func(s string) bool {
		return domain.MuscleGroup(s).Valid()
	})
	return result(errs)
}

// ExerciseList validates every item, prefixing errors with the 1-based index.
func (v *Validator) ExerciseList(items []Fields) Result {
	if len(items) == 0 {
		return invalid("Exercises must be a non-empty array")
	}
	var errs []string
	for i, item := range items {
		for _, e := range v.Exercise(item).Errors {
			errs = append(errs, fmt.Sprintf("Exercise %d: %s", i+1, e))
		}
	}
	return result(errs)
}

// Workout validates a workout and every nested exercise and set.
func (v *Validator) Workout(f Fields) Result {
	if f == nil {
		return invalid("Workout data is missing or not an object")
	}
	var errs []string
	if !isNonBlankString(f["name"]) {
		errs = append(errs, "Workout name is required and must be a non-empty string")
	}
	if !isNonBlankString(f["description"]) {
		errs = append(errs, "Workout description is required and must be a non-empty string")
	}
	if !isNonEmptyStringList(f["targetMuscleGroups"]) {
		errs = append(errs, "Target muscle groups must be a non-empty array")
	}
	duration, ok := f.lookup("estimatedDuration", "duration")
	if d, isNumber := isJSONNumber(duration); !ok || !isNumber || d <= 0 {
		errs = append(errs, "Estimated duration must be a positive number")
	}

	exercises, ok := f["exercises"].([]any)
	if !ok || len(exercises) == 0 {
		return result(append(errs, "Exercises must be a non-empty array"))
	}
	for i, item := range exercises {
		errs = append(errs, workoutExerciseErrors(i+1, item)...)
	}
	return result(errs)
}

func workoutExerciseErrors(index int, item any) []string {
	ex, ok := asMap(item)
	if !ok {
		return []string{fmt.Sprintf("Exercise %d: must be an object", index)}
	}
	var errs []string
	for _, field := range []string{"name", "type", "instructions"} {
		if !isNonBlankString(ex[field]) {
			errs = append(errs, fmt.Sprintf("Exercise %d: %s is required and must be a non-empty string", index, field))
		}
	}
	if !isNonEmptyStringList(ex["muscleGroups"]) {
		errs = append(errs, fmt.Sprintf("Exercise %d: muscleGroups must be a non-empty array", index))
	}

	sets, ok := ex["sets"].([]any)
	if !ok || len(sets) == 0 {
		return append(errs, fmt.Sprintf("Exercise %d: sets must be a non-empty array", index))
	}
	for j, raw := range sets {
		set, ok := asMap(raw)
		if !ok {
			errs = append(errs, fmt.Sprintf("Exercise %d, Set %d: must be an object", index, j+1))
			continue
		}
		if reps, isNumber := isJSONNumber(set["reps"]); !isNumber || reps < 1 || reps != math.Trunc(reps) {
			errs = append(errs, fmt.Sprintf("Exercise %d, Set %d: reps must be a positive number", index, j+1))
		}
		if weight, isNumber := isJSONNumber(set["weight"]); !isNumber || weight < 0 {
			errs = append(errs, fmt.Sprintf("Exercise %d, Set %d: weight must be a non-negative number", index, j+1))
		}
	}
	return errs
}

func appendEnumError(errs []string, f Fields, field, label, allowed string, valid func(string) bool) []string {
	raw, ok := f[field]
	if !ok || isMissing(raw) {
		return errs
	}
	if s, isString := raw.(string); isString && valid(s) {
		return errs
	}
	return append(errs, fmt.Sprintf("%s must be one of: %s", label, allowed))
}

// isMissing treats absent, null and blank strings alike.
func isMissing(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func isNonBlankString(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) != ""
}

func isNonEmptyStringList(v any) bool {
	items, ok := v.([]any)
	if !ok {
		return false
	}
	for _, item := range items {
		if isNonBlankString(item) {
			return true
		}
	}
	return false
}

func invalid(msg string) Result { return Result{Valid: false, Errors: []string{msg}} }

func result(errs []string) Result {
	return Result{Valid: len(errs) == 0, Errors: errs}
}
