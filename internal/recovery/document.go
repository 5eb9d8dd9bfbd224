package recovery

import "strings"

// Document is the classified form of an extracted value. Callers switch on the
// concrete type.
type Document interface {
	isDocument()
}

// Unknown holds a value that fits none of the expected shapes.
type Unknown struct {
	Value any
}

// NotFound is the model explicitly reporting that the query was not a
// valid fitness exercise, e.g. {"error": "not_found"}.
type NotFound struct{}

// PartialExercise is an object that still has to be normalized as an exercise.
type PartialExercise struct {
	Fields Fields
}

// PartialExerciseList holds the object entries of an array reply.
type PartialExerciseList struct {
	Items     []PartialExercise
	Discarded int // non-object entries
}

// PartialWorkout is an object, unwrapped from any known wrapper key, to be
// normalized as a workout.
type PartialWorkout struct {
	Fields Fields
}

func (Unknown) isDocument()             {}
func (NotFound) isDocument()            {}
func (PartialExercise) isDocument()     {}
func (PartialExerciseList) isDocument() {}
func (PartialWorkout) isDocument()      {}

var (
	workoutWrapperKeys  = []string{"workout_plan", "workoutPlan", "workout"}
	exerciseWrapperKeys = []string{"exercise"}
	listKeys            = []string{"exercises", "alternatives", "variations", "items"}
)

// Classify decodes a parsed value into the document expected for shape.
func Classify(v any, shape Shape) Document {
	if m, ok := asMap(v); ok && isNotFound(m) {
		return NotFound{}
	}
	switch shape {
	case ShapeExercise:
		return classifyExercise(v)
	case ShapeExerciseList:
		return classifyList(v)
	case ShapeWorkout:
		return classifyWorkout(v)
	}
	return Unknown{Value: v}
}

func isNotFound(m Fields) bool {
	s, ok := m["error"].(string)
	return ok && strings.EqualFold(strings.TrimSpace(s), "not_found")
}

func classifyExercise(v any) Document {
	if items, ok := asSlice(v); ok {
		for _, item := range items {
			if m, ok := asMap(item); ok {
				return PartialExercise{Fields: unwrap(m, exerciseWrapperKeys)}
			}
		}
		return Unknown{Value: v}
	}
	if m, ok := asMap(v); ok {
		return PartialExercise{Fields: unwrap(m, exerciseWrapperKeys)}
	}
	return Unknown{Value: v}
}

func classifyList(v any) Document {
	items, ok := asSlice(v)
	if !ok {
		m, isMap := asMap(v)
		if !isMap {
			return Unknown{Value: v}
		}
		items = []any{m}
		for _, k := range listKeys {
			if nested, ok := asSlice(m[k]); ok {
				items = nested
				break
			}
		}
	}
	var list PartialExerciseList
	for _, item := range items {
		if m, ok := asMap(item); ok {
			list.Items = append(list.Items, PartialExercise{Fields: m})
		} else {
			list.Discarded++
		}
	}
	if len(list.Items) == 0 {
		return Unknown{Value: v}
	}
	return list
}

func classifyWorkout(v any) Document {
	if items, ok := asSlice(v); ok {
		// A bare list is either a list of workouts or a list of exercises.
		for _, item := range items {
			m, ok := asMap(item)
			if !ok {
				continue
			}
			if _, hasExercises := m.lookup("exercises", "sections"); hasExercises {
				return PartialWorkout{Fields: unwrap(m, workoutWrapperKeys)}
			}
			return PartialWorkout{Fields: Fields{"exercises": items}}
		}
		return Unknown{Value: v}
	}
	if m, ok := asMap(v); ok {
		return PartialWorkout{Fields: unwrap(m, workoutWrapperKeys)}
	}
	return Unknown{Value: v}
}

// unwrap lifts the object stored under the first wrapper key present,
// keeping outer fields the inner object does not define.
func unwrap(m Fields, wrappers []string) Fields {
	for _, k := range wrappers {
		inner, ok := asMap(m[k])
		if !ok {
			continue
		}
		out := make(Fields, len(inner)+len(m))
		for key, val := range m {
			if key != k {
				out[key] = val
			}
		}
		for key, val := range inner {
			out[key] = val
		}
		return out
	}
	return m
}
