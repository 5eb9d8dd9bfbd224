package recovery_test

import (
	"strings"
	"testing"

	"alcyxob/fitness-ai/internal/recovery"

	"github.com/stretchr/testify/assert"
)

func TestValidator_ExerciseMissingFields(t *testing.T) {
	res := recovery.NewValidator().Exercise(fields(t, `{"name":"  "}`))

	assert.False(t, res.Valid)
	for _, field := range []string{"name", "category", "equipment", "primaryMuscles", "difficulty", "muscleGroup"} {
		assert.Contains(t, res.Errors, "Missing required field: "+field)
	}
}

func TestValidator_ExerciseRules(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{"short name", `{"name":"A"}`, "Exercise name must be at least 2 characters long"},
		{"long name", `{"name":"` + strings.Repeat("a", 101) + `"}`, "Exercise name must be less than 100 characters"},
		{"name type", `{"name":12}`, "Name must be a string"},
		{"empty equipment", `{"equipment":[]}`, "Equipment array cannot be empty"},
		{"blank equipment", `{"equipment":[" "]}`, "Equipment array cannot be empty"},
		{"equipment type", `{"equipment":"Mat"}`, "Equipment must be an array"},
		{"primary muscles empty", `{"primaryMuscles":[]}`, "Primary muscles array cannot be empty"},
		{"target region empty", `{"targetRegion":[]}`, "Target region array cannot be empty"},
		{"secondary muscles type", `{"secondaryMuscles":"Core"}`, "Secondary muscles must be an array"},
		{"category", `{"category":"Weights"}`, "Category must be one of: Strength, Cardio, Flexibility, Sports, Functional"},
		{"difficulty", `{"difficulty":"Expert"}`, "Difficulty must be one of: Beginner, Intermediate, Advanced"},
		{"movement type", `{"movementType":"Push"}`, "Movement type must be one of: Compound, Isolation"},
		{"muscle group", `{"muscleGroup":"Upper Body"}`, "Muscle group must be one of: Chest, Back, Shoulders, Arms, Legs, Core, Full Body"},
	}

	v := recovery.NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.Exercise(fields(t, tt.raw))
			assert.False(t, res.Valid)
			assert.Contains(t, res.Errors, tt.wantErr)
		})
	}
}

func TestValidator_ExerciseValid(t *testing.T) {
	res := recovery.NewValidator().Exercise(fields(t, `{
		"name":"Squat","category":"Strength","equipment":["Bodyweight"],"primaryMuscles":["Legs"],
		"secondaryMuscles":[],"targetRegion":["Lower Body"],"difficulty":"Beginner","muscleGroup":"Legs"
	}`))
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}

func TestValidator_NilInputs(t *testing.T) {
	v := recovery.NewValidator()
	assert.Equal(t, []string{"Exercise data must be a valid object"}, v.Exercise(nil).Errors)
	assert.Equal(t, []string{"Workout data is missing or not an object"}, v.Workout(nil).Errors)
	assert.Equal(t, []string{"Exercises must be a non-empty array"}, v.ExerciseList(nil).Errors)
}

func TestValidator_ExerciseList(t *testing.T) {
	res := recovery.NewValidator().ExerciseList([]recovery.Fields{
		fields(t, `{"name":"Squat","category":"Strength","equipment":["Bodyweight"],"primaryMuscles":["Legs"],"difficulty":"Beginner","muscleGroup":"Legs"}`),
		fields(t, `{"name":"Lunge","equipment":["Bodyweight"],"primaryMuscles":["Legs"],"difficulty":"Beginner","muscleGroup":"Legs"}`),
	})
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"Exercise 2: Missing required field: category"}, res.Errors)
}

func TestValidator_WorkoutMissingFields(t *testing.T) {
	res := recovery.NewValidator().Workout(fields(t, `{}`))
	assert.ElementsMatch(t, []string{
		"Workout name is required and must be a non-empty string",
		"Workout description is required and must be a non-empty string",
		"Target muscle groups must be a non-empty array",
		"Estimated duration must be a positive number",
		"Exercises must be a non-empty array",
	}, res.Errors)
}

func TestValidator_WorkoutNested(t *testing.T) {
	res := recovery.NewValidator().Workout(fields(t, `{
		"name": "Push Day", "description": "Chest focus", "duration": 30, "targetMuscleGroups": ["Chest"],
		"exercises": [
			{"name":"Push-ups","type":"Strength","instructions":"Go.","muscleGroups":["Chest"],"sets":[{"reps":10,"weight":0}]},
			{"name":"","type":"Strength","instructions":"Go.","muscleGroups":[],"sets":[{"reps":0,"weight":-1},"x",{"reps":"12","weight":5}]},
			{"name":"Dips","type":"Strength","instructions":"Go.","muscleGroups":["Arms"],"sets":[]}
		]}`))

	assert.False(t, res.Valid)
	assert.Equal(t, []string{
		"Exercise 2: name is required and must be a non-empty string",
		"Exercise 2: muscleGroups must be a non-empty array",
		"Exercise 2, Set 1: reps must be a positive number",
		"Exercise 2, Set 1: weight must be a non-negative number",
		"Exercise 2, Set 2: must be an object",
		"Exercise 2, Set 3: reps must be a positive number",
		"Exercise 3: sets must be a non-empty array",
	}, res.Errors)
}
